// File: database/repository/memory/booking.go
package memoryRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	bookingRepo "futsal/database/repository/booking"
	"futsal/models"
)

type memoryBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
}

// NewBookingRepo constructs an empty in-memory BookingRepository.
func NewBookingRepo() bookingRepo.BookingRepository {
	return &memoryBookingRepo{bookings: make(map[string]models.Booking)}
}

func (r *memoryBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	// Mirrors the unique (slotId,date) and otp indexes.
	for _, other := range r.bookings {
		if other.SlotID == booking.SlotID && other.Date.Equal(booking.Date) {
			return models.ErrSlotTaken
		}
		if booking.OTP != "" && other.OTP == booking.OTP {
			return models.ErrSlotTaken
		}
	}
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *memoryBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, models.ErrBookingNotFound
	}
	return &b, nil
}

func (r *memoryBookingRepo) GetByOTP(ctx context.Context, otp string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.OTP == otp {
			bCopy := b
			return &bCopy, nil
		}
	}
	return nil, models.ErrBookingNotFound
}

func (r *memoryBookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[booking.ID]; !ok {
		return models.ErrBookingNotFound
	}
	for id, other := range r.bookings {
		if id != booking.ID && other.SlotID == booking.SlotID && other.Date.Equal(booking.Date) {
			return models.ErrSlotTaken
		}
	}
	booking.UpdatedAt = time.Now()
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *memoryBookingRepo) MarkUsed(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok || b.IsUsed {
		return nil
	}
	b.IsUsed = true
	b.UpdatedAt = time.Now()
	r.bookings[id] = b
	return nil
}

func (r *memoryBookingRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[id]; !ok {
		return models.ErrBookingNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *memoryBookingRepo) DeleteBySubscription(ctx context.Context, subscriptionID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for id, b := range r.bookings {
		if b.SubscriptionID == subscriptionID {
			delete(r.bookings, id)
			removed++
		}
	}
	return removed, nil
}

func (r *memoryBookingRepo) ExistsBySlotAndDate(ctx context.Context, slotID string, date time.Time) (bool, error) {
	return r.exists(func(b models.Booking) bool {
		return b.SlotID == slotID && b.Date.Equal(date)
	})
}

func (r *memoryBookingRepo) ExistsBySlot(ctx context.Context, slotID string) (bool, error) {
	return r.exists(func(b models.Booking) bool { return b.SlotID == slotID })
}

func (r *memoryBookingRepo) ExistsBySlotFrom(ctx context.Context, slotID string, from time.Time) (bool, error) {
	return r.exists(func(b models.Booking) bool {
		return b.SlotID == slotID && !b.Date.Before(from)
	})
}

func (r *memoryBookingRepo) OTPExists(ctx context.Context, otp string) (bool, error) {
	return r.exists(func(b models.Booking) bool { return b.OTP == otp })
}

func (r *memoryBookingRepo) exists(match func(models.Booking) bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if match(b) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryBookingRepo) ListByClient(ctx context.Context, clientID string) ([]models.Booking, error) {
	return r.list(func(b models.Booking) bool { return b.ClientID == clientID })
}

func (r *memoryBookingRepo) ListByDate(ctx context.Context, date time.Time) ([]models.Booking, error) {
	return r.list(func(b models.Booking) bool { return b.Date.Equal(date) })
}

func (r *memoryBookingRepo) ListBySubscription(ctx context.Context, subscriptionID string) ([]models.Booking, error) {
	return r.list(func(b models.Booking) bool { return b.SubscriptionID == subscriptionID })
}

func (r *memoryBookingRepo) ListAll(ctx context.Context) ([]models.Booking, error) {
	return r.list(func(models.Booking) bool { return true })
}

func (r *memoryBookingRepo) list(match func(models.Booking) bool) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Booking
	for _, b := range r.bookings {
		if match(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *memoryBookingRepo) EnsureIndexes() error { return nil }
