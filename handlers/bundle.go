// File: handlers/bundle.go
package handlers

import (
	"futsal/services/access"
	"futsal/services/booking"
	"futsal/services/slot"
	"futsal/services/subscription"
)

// HandlerBundle groups all endpoint handlers over their services.
type HandlerBundle struct {
	SlotSvc         slot.SlotService
	BookingSvc      booking.BookingService
	SubscriptionSvc subscription.SubscriptionService
	AccessSvc       access.AccessService
}
