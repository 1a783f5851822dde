package models

import (
	"errors"
	"fmt"
)

var (
	// Slot errors
	ErrSlotNotFound    = errors.New("slot not found")
	ErrSlotExists      = errors.New("a slot with these exact times already exists")
	ErrSlotOverlap     = errors.New("this slot overlaps with an existing slot")
	ErrSlotHasBookings = errors.New("cannot modify slot times with existing future bookings")
	ErrSlotInUse       = errors.New("cannot delete slot with existing bookings")

	// Booking errors
	ErrBookingNotFound = errors.New("booking not found")
	ErrSlotTaken       = errors.New("slot is already booked for this date")

	// Subscription errors
	ErrSubscriptionNotFound = errors.New("subscription not found or not active")
	ErrSubscriptionConflict = errors.New("this slot is already subscribed for this day of the week")

	// Input errors
	ErrInvalidTime    = errors.New("invalid time format, use HH:MM in 24-hour format")
	ErrInvalidPrice   = errors.New("invalid price, must be a non-negative number with up to 2 decimal places")
	ErrInvalidDate    = errors.New("invalid date, use YYYY-MM-DD")
	ErrPastDate       = errors.New("cannot book slots for past dates")
	ErrInvalidWeekday = errors.New("invalid day of week (0-6, Sunday-Saturday)")
)

// PaymentError wraps a gateway rejection or transport failure. The booking or
// subscription it relates to has already been compensated away when this
// error surfaces.
type PaymentError struct {
	Reason string
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("payment failed: %s", e.Reason)
}

func NewPaymentError(reason string) error {
	return &PaymentError{Reason: reason}
}

// Access verification result codes. These are a stable machine-readable
// contract for gate hardware, independent of message text.
const (
	AccessCodeUnknown       = 0
	AccessCodeInvalidOTP    = 1
	AccessCodeUnpaid        = 3
	AccessCodeWrongDate     = 4
	AccessCodeOutsideWindow = 5
	AccessCodeGranted       = 6
	AccessCodeGrantedRepeat = 7
)

// AccessError is an access-verification failure with its numeric code.
type AccessError struct {
	Code    int
	Message string
}

func (e *AccessError) Error() string {
	return e.Message
}

// AccessGrant is the success payload of an OTP verification. Detail fields are
// populated on first access only.
type AccessGrant struct {
	Code    int                `json:"code"`
	Message string             `json:"message"`
	Detail  *AccessGrantDetail `json:"data,omitempty"`
}

type AccessGrantDetail struct {
	SlotTime         string `json:"slotTime"`
	RemainingMinutes int    `json:"duration"`
	FullDuration     int    `json:"fullDuration"`
	ClientID         string `json:"clientId"`
	Date             string `json:"date"`
	Timezone         string `json:"timezone"`
}
