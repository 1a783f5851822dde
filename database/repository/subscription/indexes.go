// FILE: database/repository/subscription/indexes.go
package subscriptionRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"futsal/models"
)

// EnsureIndexes creates the necessary indexes on the subscriptions collection.
func (r *mongoSubscriptionRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// One active subscription per (slot, weekday). Partial so expired and
		// cancelled records do not block new subscribers.
		{
			Keys: bson.D{{Key: "slotId", Value: 1}, {Key: "weeklyDay", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": models.SubscriptionActive}).
				SetName("unique_active_slot_weekday"),
		},
		{
			Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("client_status_idx"),
		},
		{
			Keys:    bson.D{{Key: "nextBillingDate", Value: 1}},
			Options: options.Index().SetName("next_billing_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create subscription indexes: %w", err)
	}
	return nil
}
