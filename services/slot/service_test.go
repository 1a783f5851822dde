package slot_test

import (
	"context"
	"testing"
	"time"

	"futsal/calendar"
	bookingRepo "futsal/database/repository/booking"
	memoryRepo "futsal/database/repository/memory"
	"futsal/models"
	"futsal/services/slot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*slot.DefaultSlotService, bookingRepo.BookingRepository, *calendar.BusinessCalendar) {
	t.Helper()
	cal, err := calendar.NewFixed("Africa/Mogadishu", time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	bookings := memoryRepo.NewBookingRepo()
	svc := &slot.DefaultSlotService{
		Repo:     memoryRepo.NewSlotRepo(),
		Bookings: bookings,
		Cal:      cal,
	}
	return svc, bookings, cal
}

func TestCreateSlot(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	sl, err := svc.Create(ctx, "17:00", "18:00", 25)
	require.NoError(t, err)
	assert.NotEmpty(t, sl.ID)
	assert.Equal(t, "17:00", sl.StartTime)
	assert.Equal(t, "18:00", sl.EndTime)
	assert.Equal(t, 25.0, sl.Price)
}

func TestCreateSlotValidation(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "25:00", "26:00", 10)
	assert.ErrorIs(t, err, models.ErrInvalidTime)

	_, err = svc.Create(ctx, "18:00", "17:00", 10)
	assert.ErrorIs(t, err, models.ErrInvalidTime)

	_, err = svc.Create(ctx, "17:00", "17:00", 10)
	assert.ErrorIs(t, err, models.ErrInvalidTime)

	_, err = svc.Create(ctx, "17:00", "18:00", -5)
	assert.ErrorIs(t, err, models.ErrInvalidPrice)

	_, err = svc.Create(ctx, "17:00", "18:00", 10.999)
	assert.ErrorIs(t, err, models.ErrInvalidPrice)

	_, err = svc.Create(ctx, "17:00", "18:00", 10.99)
	assert.NoError(t, err)
}

func TestCreateSlotConflicts(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "10:00", "11:00", 10)
	require.NoError(t, err)

	_, err = svc.Create(ctx, "10:00", "11:00", 15)
	assert.ErrorIs(t, err, models.ErrSlotExists)

	_, err = svc.Create(ctx, "10:30", "11:30", 10)
	assert.ErrorIs(t, err, models.ErrSlotOverlap)

	_, err = svc.Create(ctx, "09:00", "10:30", 10)
	assert.ErrorIs(t, err, models.ErrSlotOverlap)

	// Back-to-back windows do not overlap.
	_, err = svc.Create(ctx, "11:00", "12:00", 10)
	assert.NoError(t, err)
	_, err = svc.Create(ctx, "09:00", "10:00", 10)
	assert.NoError(t, err)
}

func TestUpdateSlotTimeGuard(t *testing.T) {
	svc, bookings, cal := newService(t)
	ctx := context.Background()

	sl, err := svc.Create(ctx, "17:00", "18:00", 20)
	require.NoError(t, err)

	date, err := cal.MidnightUTC("2024-01-15")
	require.NoError(t, err)
	require.NoError(t, bookings.Create(ctx, &models.Booking{
		ClientID: "c1", SlotID: sl.ID, Date: date,
		PaymentStatus: models.PaymentPaid, OTP: "AAAA1111",
	}))

	// Price-only updates stay allowed.
	newPrice := 30.0
	updated, err := svc.Update(ctx, sl.ID, models.SlotUpdate{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, 30.0, updated.Price)
	assert.Equal(t, "17:00", updated.StartTime)

	// Time changes are blocked while future bookings exist.
	newStart := "16:00"
	_, err = svc.Update(ctx, sl.ID, models.SlotUpdate{StartTime: &newStart})
	assert.ErrorIs(t, err, models.ErrSlotHasBookings)
}

func TestUpdateSlotTimesWithoutBookings(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	sl, err := svc.Create(ctx, "17:00", "18:00", 20)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "18:00", "19:00", 20)
	require.NoError(t, err)

	// Moving into the neighbour's window is caught.
	newEnd := "18:30"
	_, err = svc.Update(ctx, sl.ID, models.SlotUpdate{EndTime: &newEnd})
	assert.ErrorIs(t, err, models.ErrSlotOverlap)

	newStart, newEnd2 := "15:00", "16:00"
	updated, err := svc.Update(ctx, sl.ID, models.SlotUpdate{StartTime: &newStart, EndTime: &newEnd2})
	require.NoError(t, err)
	assert.Equal(t, "15:00", updated.StartTime)
	assert.Equal(t, "16:00", updated.EndTime)
}

func TestDeleteSlotGuard(t *testing.T) {
	svc, bookings, cal := newService(t)
	ctx := context.Background()

	sl, err := svc.Create(ctx, "17:00", "18:00", 20)
	require.NoError(t, err)

	date, err := cal.MidnightUTC("2024-01-15")
	require.NoError(t, err)
	require.NoError(t, bookings.Create(ctx, &models.Booking{
		ClientID: "c1", SlotID: sl.ID, Date: date,
		PaymentStatus: models.PaymentPaid, OTP: "BBBB2222",
	}))

	assert.ErrorIs(t, svc.Delete(ctx, sl.ID), models.ErrSlotInUse)

	free, err := svc.Create(ctx, "19:00", "20:00", 20)
	require.NoError(t, err)
	assert.NoError(t, svc.Delete(ctx, free.ID))

	assert.ErrorIs(t, svc.Delete(ctx, "missing"), models.ErrSlotNotFound)
}

func TestListForDateAnnotatesBookings(t *testing.T) {
	svc, bookings, cal := newService(t)
	ctx := context.Background()

	booked, err := svc.Create(ctx, "17:00", "18:00", 20)
	require.NoError(t, err)
	free, err := svc.Create(ctx, "18:00", "19:00", 20)
	require.NoError(t, err)

	date, err := cal.MidnightUTC("2024-01-15")
	require.NoError(t, err)
	require.NoError(t, bookings.Create(ctx, &models.Booking{
		ClientID: "c1", SlotID: booked.ID, Date: date,
		PaymentStatus: models.PaymentPaid, OTP: "CCCC3333",
		IsSubscriptionBooking: true, SubscriptionID: "sub-1",
	}))

	view, err := svc.ListForDate(ctx, "2024-01-15")
	require.NoError(t, err)
	require.Len(t, view, 2)

	// Sorted by start time: the booked slot comes first.
	assert.Equal(t, booked.ID, view[0].ID)
	assert.True(t, view[0].IsBooked)
	assert.Equal(t, "c1", view[0].BookedBy)
	assert.Equal(t, models.PaymentPaid, view[0].PaymentStatus)
	assert.True(t, view[0].IsSubscriptionBooking)

	assert.Equal(t, free.ID, view[1].ID)
	assert.False(t, view[1].IsBooked)
	assert.Empty(t, view[1].BookedBy)

	// A different date shows everything free.
	view, err = svc.ListForDate(ctx, "2024-01-16")
	require.NoError(t, err)
	assert.False(t, view[0].IsBooked)
	assert.False(t, view[1].IsBooked)

	_, err = svc.ListForDate(ctx, "not-a-date")
	assert.ErrorIs(t, err, models.ErrInvalidDate)
}
