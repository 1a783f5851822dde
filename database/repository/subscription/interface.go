// File: database/repository/subscription/interface.go
package subscriptionRepo

import (
	"context"
	"time"

	"futsal/database"
	"futsal/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *models.Subscription) error
	GetByID(ctx context.Context, id string) (*models.Subscription, error)
	GetActiveByIDAndClient(ctx context.Context, id, clientID string) (*models.Subscription, error)
	Update(ctx context.Context, sub *models.Subscription) error
	Delete(ctx context.Context, id string) error

	// FindConflict returns an active subscription on (slotID, weeklyDay) that
	// either belongs to clientID or whose [startDate, endDate) range
	// intersects [start, end). Nil when no conflict exists.
	FindConflict(ctx context.Context, slotID string, weeklyDay int, clientID string, start, end time.Time) (*models.Subscription, error)

	ListByClient(ctx context.Context, clientID, status string) ([]models.Subscription, error)
	ListAll(ctx context.Context, status string) ([]models.Subscription, error)

	// ExpireLapsed marks active subscriptions whose endDate is not after the
	// given instant as expired, returning how many were flipped.
	ExpireLapsed(ctx context.Context, before time.Time) (int64, error)

	EnsureIndexes() error
}

type mongoSubscriptionRepo struct {
	coll *mongo.Collection
}

// NewMongoSubscriptionRepo constructs a new MongoDB SubscriptionRepository.
func NewMongoSubscriptionRepo() SubscriptionRepository {
	return &mongoSubscriptionRepo{
		coll: database.DB().Collection("subscriptions"),
	}
}
