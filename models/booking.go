package models

import "time"

// Payment status values shared by bookings and subscriptions.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// Booking represents a single reservation of one slot on one calendar date.
// Date is stored as the UTC instant of business-timezone midnight for that
// calendar date; consumers must convert back through the business timezone.
type Booking struct {
	ID                    string    `bson:"id" json:"id"`
	ClientID              string    `bson:"clientId" json:"clientId"`
	SlotID                string    `bson:"slotId" json:"slotId"`
	Date                  time.Time `bson:"date" json:"date"`
	Amount                float64   `bson:"amount" json:"amount"` // slot price snapshot at booking time
	PaymentStatus         string    `bson:"paymentStatus" json:"paymentStatus"`
	OTP                   string    `bson:"otp,omitempty" json:"otp,omitempty"`
	IsUsed                bool      `bson:"isUsed" json:"isUsed"`
	ReferenceID           string    `bson:"referenceId,omitempty" json:"referenceId,omitempty"`
	IsSubscriptionBooking bool      `bson:"isSubscriptionBooking" json:"isSubscriptionBooking"`
	SubscriptionID        string    `bson:"subscriptionId,omitempty" json:"subscriptionId,omitempty"`
	CreatedAt             time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time `bson:"updatedAt" json:"updatedAt"`
}

// BookingWithSlot pairs a booking with its slot for list views.
type BookingWithSlot struct {
	Booking `bson:",inline"`
	Slot    *Slot `bson:"slot,omitempty" json:"slot,omitempty"`
}

// BookingUpdate carries manager-editable booking fields. Nil means unchanged.
type BookingUpdate struct {
	Date          *time.Time `json:"date,omitempty"`
	PaymentStatus *string    `json:"paymentStatus,omitempty"`
	IsUsed        *bool      `json:"isUsed,omitempty"`
}

// PaymentSummary is the payment section of a creation response.
type PaymentSummary struct {
	ReferenceID   string  `json:"referenceId"`
	Status        string  `json:"status"`
	TransactionID string  `json:"transactionId,omitempty"`
	TotalAmount   float64 `json:"totalAmount,omitempty"`
	MonthlyAmount float64 `json:"monthlyAmount,omitempty"`
	Months        int     `json:"months,omitempty"`
}

// BookingResult is returned from a successful direct booking.
type BookingResult struct {
	Booking Booking        `json:"booking"`
	Payment PaymentSummary `json:"payment"`
	OTP     string         `json:"otp"`
}
