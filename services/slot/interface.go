// File: services/slot/interface.go
package slot

import (
	"context"

	"futsal/calendar"
	bookingRepo "futsal/database/repository/booking"
	slotRepo "futsal/database/repository/slot"
	"futsal/models"
)

// SlotService manages the catalog of reservable daily time windows.
type SlotService interface {
	Create(ctx context.Context, startTime, endTime string, price float64) (*models.Slot, error)
	GetByID(ctx context.Context, id string) (*models.Slot, error)
	Update(ctx context.Context, id string, upd models.SlotUpdate) (*models.Slot, error)
	Delete(ctx context.Context, id string) error

	// List returns every slot sorted by start time.
	List(ctx context.Context) ([]models.Slot, error)

	// ListForDate returns the per-date availability view: every slot
	// annotated with whether a booking holds it on that business date.
	ListForDate(ctx context.Context, dateStr string) ([]models.SlotWithBookingStatus, error)
}

// DefaultSlotService is the production implementation.
type DefaultSlotService struct {
	Repo     slotRepo.SlotRepository
	Bookings bookingRepo.BookingRepository
	Cal      *calendar.BusinessCalendar
}
