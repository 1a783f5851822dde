package models

import "time"

// Slot represents a recurring daily time window that can be booked per date.
type Slot struct {
	ID        string    `bson:"id" json:"id"`
	StartTime string    `bson:"startTime" json:"startTime"` // "HH:MM", 24-hour
	EndTime   string    `bson:"endTime" json:"endTime"`     // "HH:MM", 24-hour
	Price     float64   `bson:"price" json:"price"`         // non-negative, at most 2 decimal places
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SlotWithBookingStatus is the read-model view of a slot for a specific date.
// Booking fields are derived from the bookings collection, never stored on the slot.
type SlotWithBookingStatus struct {
	Slot                  `bson:",inline"`
	IsBooked              bool   `json:"isBooked"`
	BookedBy              string `json:"bookedBy,omitempty"`
	PaymentStatus         string `json:"paymentStatus,omitempty"`
	IsSubscriptionBooking bool   `json:"isSubscriptionBooking"`
}

// SlotUpdate carries the mutable slot fields for a partial update.
// Nil means "leave unchanged".
type SlotUpdate struct {
	StartTime *string  `json:"startTime,omitempty"`
	EndTime   *string  `json:"endTime,omitempty"`
	Price     *float64 `json:"price,omitempty"`
}
