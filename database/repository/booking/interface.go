// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"time"

	"futsal/database"
	"futsal/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByOTP(ctx context.Context, otp string) (*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	MarkUsed(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	DeleteBySubscription(ctx context.Context, subscriptionID string) (int64, error)

	ExistsBySlotAndDate(ctx context.Context, slotID string, date time.Time) (bool, error)
	ExistsBySlot(ctx context.Context, slotID string) (bool, error)
	ExistsBySlotFrom(ctx context.Context, slotID string, from time.Time) (bool, error)
	OTPExists(ctx context.Context, otp string) (bool, error)

	ListByClient(ctx context.Context, clientID string) ([]models.Booking, error)
	ListByDate(ctx context.Context, date time.Time) ([]models.Booking, error)
	ListBySubscription(ctx context.Context, subscriptionID string) ([]models.Booking, error)
	ListAll(ctx context.Context) ([]models.Booking, error)

	EnsureIndexes() error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	return &mongoBookingRepo{
		coll: database.DB().Collection("bookings"),
	}
}
