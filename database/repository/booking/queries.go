// File: database/repository/booking/queries.go
package bookingRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"futsal/models"
)

func (r *mongoBookingRepo) ExistsBySlotAndDate(ctx context.Context, slotID string, date time.Time) (bool, error) {
	return r.exists(ctx, bson.M{"slotId": slotID, "date": date})
}

func (r *mongoBookingRepo) ExistsBySlot(ctx context.Context, slotID string) (bool, error) {
	return r.exists(ctx, bson.M{"slotId": slotID})
}

func (r *mongoBookingRepo) ExistsBySlotFrom(ctx context.Context, slotID string, from time.Time) (bool, error) {
	return r.exists(ctx, bson.M{"slotId": slotID, "date": bson.M{"$gte": from}})
}

func (r *mongoBookingRepo) OTPExists(ctx context.Context, otp string) (bool, error) {
	return r.exists(ctx, bson.M{"otp": otp})
}

func (r *mongoBookingRepo) exists(ctx context.Context, filter bson.M) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *mongoBookingRepo) ListByClient(ctx context.Context, clientID string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"clientId": clientID})
}

func (r *mongoBookingRepo) ListByDate(ctx context.Context, date time.Time) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"date": date})
}

func (r *mongoBookingRepo) ListBySubscription(ctx context.Context, subscriptionID string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"subscriptionId": subscriptionID})
}

func (r *mongoBookingRepo) ListAll(ctx context.Context) ([]models.Booking, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoBookingRepo) find(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}
