package models

import "time"

// Subscription status values.
const (
	SubscriptionActive    = "active"
	SubscriptionExpired   = "expired"
	SubscriptionCancelled = "cancelled"
)

// Subscription is a client's standing weekly reservation of one slot over a
// bounded date range. StartDate and EndDate are stored as business-midnight
// UTC instants; EndDate is exclusive.
type Subscription struct {
	ID              string    `bson:"id" json:"id"`
	ClientID        string    `bson:"clientId" json:"clientId"`
	SlotID          string    `bson:"slotId" json:"slotId"`
	StartDate       time.Time `bson:"startDate" json:"startDate"`
	EndDate         time.Time `bson:"endDate" json:"endDate"`
	WeeklyDay       int       `bson:"weeklyDay" json:"weeklyDay"` // 0 = Sunday .. 6 = Saturday
	MonthlyAmount   float64   `bson:"monthlyAmount" json:"monthlyAmount"`
	Status          string    `bson:"status" json:"status"`
	AutoRenew       bool      `bson:"autoRenew" json:"autoRenew"`
	LastBillingDate time.Time `bson:"lastBillingDate" json:"lastBillingDate"`
	NextBillingDate time.Time `bson:"nextBillingDate" json:"nextBillingDate"`
	PaymentStatus   string    `bson:"paymentStatus" json:"paymentStatus"`
	ReferenceID     string    `bson:"referenceId,omitempty" json:"referenceId,omitempty"`
	Description     string    `bson:"description" json:"description"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SubscriptionWithSlot pairs a subscription with its slot for list views.
type SubscriptionWithSlot struct {
	Subscription `bson:",inline"`
	Slot         *Slot `bson:"slot,omitempty" json:"slot,omitempty"`
}

// SubscriptionUpdate carries manager-editable subscription fields.
type SubscriptionUpdate struct {
	Status        *string `json:"status,omitempty"`
	AutoRenew     *bool   `json:"autoRenew,omitempty"`
	PaymentStatus *string `json:"paymentStatus,omitempty"`
	Description   *string `json:"description,omitempty"`
}

// SubscriptionResult is returned from a successful subscription creation.
type SubscriptionResult struct {
	Subscription    Subscription   `json:"subscription"`
	Payment         PaymentSummary `json:"payment"`
	BookingsCreated int            `json:"bookingsCreated"`
}
