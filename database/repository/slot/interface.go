// File: database/repository/slot/interface.go
package slotRepo

import (
	"context"

	"futsal/database"
	"futsal/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type SlotRepository interface {
	Create(ctx context.Context, slot *models.Slot) error
	GetByID(ctx context.Context, id string) (*models.Slot, error)
	GetAll(ctx context.Context) ([]models.Slot, error)
	Update(ctx context.Context, slot *models.Slot) error
	Delete(ctx context.Context, id string) error
	EnsureIndexes() error
}

type mongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo constructs a new MongoDB SlotRepository.
func NewMongoSlotRepo() SlotRepository {
	return &mongoSlotRepo{
		coll: database.DB().Collection("slots"),
	}
}
