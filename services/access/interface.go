// File: services/access/interface.go
package access

import (
	"context"

	"futsal/calendar"
	bookingRepo "futsal/database/repository/booking"
	slotRepo "futsal/database/repository/slot"
	"futsal/models"
)

// AccessService answers the gate's question: does this OTP admit its holder
// right now?
type AccessService interface {
	// Verify runs the full check chain against the booking behind the OTP.
	// Denials come back as *models.AccessError carrying the stable numeric
	// code; grants as *models.AccessGrant (code 6 first entry, 7 repeat).
	Verify(ctx context.Context, otp string) (*models.AccessGrant, error)
}

// DefaultAccessService is the production implementation.
type DefaultAccessService struct {
	Bookings bookingRepo.BookingRepository
	Slots    slotRepo.SlotRepository
	Cal      *calendar.BusinessCalendar
}
