// File: services/booking/interface.go
package booking

import (
	"context"

	"futsal/calendar"
	bookingRepo "futsal/database/repository/booking"
	slotRepo "futsal/database/repository/slot"
	"futsal/models"
	"futsal/services/payment"
)

// BookingService owns the reservation ledger: direct client bookings paid
// through the gateway, plus the manager-side console operations.
type BookingService interface {
	// Create books slotID on dateStr for the client, charging their mobile
	// money account. The pending record is released on any failure.
	Create(ctx context.Context, clientID, phone, slotID, dateStr string) (*models.BookingResult, error)

	// ListForClient filters the client's bookings by status:
	// upcoming, past, paid, pending, or empty for all.
	ListForClient(ctx context.Context, clientID, status string) ([]models.BookingWithSlot, error)

	GetByID(ctx context.Context, id string) (*models.Booking, error)

	// Manager console.
	ListAll(ctx context.Context, dateStr, search string) ([]models.BookingWithSlot, error)
	CreateByManager(ctx context.Context, clientID, slotID, dateStr string) (*models.BookingResult, error)
	Update(ctx context.Context, id string, upd models.BookingUpdate) (*models.Booking, error)
	Delete(ctx context.Context, id string) error
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo    bookingRepo.BookingRepository
	Slots   slotRepo.SlotRepository
	Gateway payment.Gateway
	Cal     *calendar.BusinessCalendar
}
