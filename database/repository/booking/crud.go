// File: database/repository/booking/crud.go
package bookingRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"futsal/models"
)

func (r *mongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		// The unique (slotId, date) index is the authoritative guard against
		// double booking; a duplicate key here means the slot was taken
		// between the conflict check and the insert.
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrSlotTaken
		}
		return err
	}
	return nil
}

func (r *mongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *mongoBookingRepo) GetByOTP(ctx context.Context, otp string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"otp": otp}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *mongoBookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	booking.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": booking.ID}, booking)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrSlotTaken
		}
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrBookingNotFound
	}
	return nil
}

// MarkUsed flips isUsed to true. The filter requires isUsed=false so the
// transition happens exactly once even under concurrent verification calls.
func (r *mongoBookingRepo) MarkUsed(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"isUsed": true, "updatedAt": time.Now()}}
	_, err := r.coll.UpdateOne(ctx, bson.M{"id": id, "isUsed": false}, update)
	return err
}

func (r *mongoBookingRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrBookingNotFound
	}
	return nil
}

func (r *mongoBookingRepo) DeleteBySubscription(ctx context.Context, subscriptionID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"subscriptionId": subscriptionID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
