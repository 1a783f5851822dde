// File: services/subscription/interface.go
package subscription

import (
	"context"

	"futsal/calendar"
	bookingRepo "futsal/database/repository/booking"
	slotRepo "futsal/database/repository/slot"
	subscriptionRepo "futsal/database/repository/subscription"
	"futsal/models"
	"futsal/services/payment"
)

// SubscriptionService manages standing weekly reservations: billing them as
// one monthly charge and expanding them into dated bookings.
type SubscriptionService interface {
	// Create subscribes the client to slotID on one weekday for the given
	// number of months, charging the whole month up front. The pending
	// record is released on any failure.
	Create(ctx context.Context, clientID, phone, slotID, startDateStr string, weeklyDay, months int) (*models.SubscriptionResult, error)

	// Cancel marks an active subscription the client owns as cancelled.
	// Bookings already materialized stay on the ledger.
	Cancel(ctx context.Context, subID, clientID string) (*models.Subscription, error)

	ListForClient(ctx context.Context, clientID, status string) ([]models.SubscriptionWithSlot, error)

	// MaterializeBookings creates the dated bookings a paid subscription is
	// owed. It is idempotent and safe to re-run after a crash; the returned
	// count covers only newly created bookings.
	MaterializeBookings(ctx context.Context, subID string) (int, error)

	// Manager console.
	ListAll(ctx context.Context, status, search string) ([]models.SubscriptionWithSlot, error)
	CreateByManager(ctx context.Context, clientID, slotID, startDateStr string, weeklyDay, months int) (*models.SubscriptionResult, error)
	Update(ctx context.Context, id string, upd models.SubscriptionUpdate) (*models.Subscription, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// Enqueuer hands materialization work to the background queue so a crash
// between payment and booking creation is healed by the worker.
type Enqueuer interface {
	EnqueueMaterialize(subscriptionID string) error
}

// DefaultSubscriptionService is the production implementation. Queue may be
// nil, in which case materialization runs inline only.
type DefaultSubscriptionService struct {
	Repo     subscriptionRepo.SubscriptionRepository
	Bookings bookingRepo.BookingRepository
	Slots    slotRepo.SlotRepository
	Gateway  payment.Gateway
	Cal      *calendar.BusinessCalendar
	Queue    Enqueuer
}
