// File: database/repository/subscription/crud.go
package subscriptionRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"futsal/models"
)

func (r *mongoSubscriptionRepo) Create(ctx context.Context, sub *models.Subscription) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	now := time.Now()
	sub.CreatedAt = now
	sub.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, sub); err != nil {
		// The partial unique (slotId, weeklyDay, status=active) index closes
		// the read-then-write race between two concurrent creations.
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrSubscriptionConflict
		}
		return err
	}
	return nil
}

func (r *mongoSubscriptionRepo) GetByID(ctx context.Context, id string) (*models.Subscription, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *mongoSubscriptionRepo) GetActiveByIDAndClient(ctx context.Context, id, clientID string) (*models.Subscription, error) {
	return r.findOne(ctx, bson.M{"id": id, "clientId": clientID, "status": models.SubscriptionActive})
}

func (r *mongoSubscriptionRepo) findOne(ctx context.Context, filter bson.M) (*models.Subscription, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var sub models.Subscription
	err := r.coll.FindOne(ctx, filter).Decode(&sub)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *mongoSubscriptionRepo) Update(ctx context.Context, sub *models.Subscription) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	sub.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": sub.ID}, sub)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrSubscriptionConflict
		}
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrSubscriptionNotFound
	}
	return nil
}

func (r *mongoSubscriptionRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrSubscriptionNotFound
	}
	return nil
}

func (r *mongoSubscriptionRepo) FindConflict(ctx context.Context, slotID string, weeklyDay int, clientID string, start, end time.Time) (*models.Subscription, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"slotId":    slotID,
		"weeklyDay": weeklyDay,
		"status":    models.SubscriptionActive,
		"$or": bson.A{
			bson.M{"clientId": clientID},
			bson.M{
				"startDate": bson.M{"$lt": end},
				"endDate":   bson.M{"$gt": start},
			},
		},
	}

	var sub models.Subscription
	err := r.coll.FindOne(ctx, filter).Decode(&sub)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *mongoSubscriptionRepo) ListByClient(ctx context.Context, clientID, status string) ([]models.Subscription, error) {
	filter := bson.M{"clientId": clientID}
	if status != "" {
		filter["status"] = status
	}
	return r.find(ctx, filter)
}

func (r *mongoSubscriptionRepo) ListAll(ctx context.Context, status string) ([]models.Subscription, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return r.find(ctx, filter)
}

func (r *mongoSubscriptionRepo) find(ctx context.Context, filter bson.M) ([]models.Subscription, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subs []models.Subscription
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *mongoSubscriptionRepo) ExpireLapsed(ctx context.Context, before time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"status":  models.SubscriptionActive,
		"endDate": bson.M{"$lte": before},
	}
	update := bson.M{"$set": bson.M{
		"status":    models.SubscriptionExpired,
		"updatedAt": time.Now(),
	}}

	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
