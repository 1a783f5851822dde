package booking_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"futsal/calendar"
	bookingRepo "futsal/database/repository/booking"
	memoryRepo "futsal/database/repository/memory"
	slotRepo "futsal/database/repository/slot"
	"futsal/models"
	"futsal/services/booking"
	"futsal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGateway records charge attempts and answers as configured.
type stubGateway struct {
	err      error
	declined bool
	panics   bool
	charges  []models.ChargeRequest
}

func (g *stubGateway) Charge(ctx context.Context, req models.ChargeRequest) (*models.ChargeResult, error) {
	g.charges = append(g.charges, req)
	if g.panics {
		panic("gateway blew up")
	}
	if g.err != nil {
		return nil, g.err
	}
	if g.declined {
		return &models.ChargeResult{Success: false, ResponseMsg: "insufficient balance"}, nil
	}
	return &models.ChargeResult{
		Success:       true,
		ReferenceID:   "REF-" + req.InvoiceID,
		TransactionID: "TXN-1",
		ResponseMsg:   "RCS_SUCCESS",
	}, nil
}

type fixture struct {
	svc      *booking.DefaultBookingService
	gateway  *stubGateway
	bookings bookingRepo.BookingRepository
	slots    slotRepo.SlotRepository
	cal      *calendar.BusinessCalendar
	slot     *models.Slot
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cal, err := calendar.NewFixed("Africa/Mogadishu", time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	f := &fixture{
		gateway:  &stubGateway{},
		bookings: memoryRepo.NewBookingRepo(),
		slots:    memoryRepo.NewSlotRepo(),
		cal:      cal,
	}
	f.svc = &booking.DefaultBookingService{
		Repo:    f.bookings,
		Slots:   f.slots,
		Gateway: f.gateway,
		Cal:     cal,
	}

	f.slot = &models.Slot{StartTime: "17:00", EndTime: "18:00", Price: 25}
	require.NoError(t, f.slots.Create(context.Background(), f.slot))
	return f
}

func TestCreateBookingSuccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.svc.Create(ctx, "client-1", "252611111111", f.slot.ID, "2024-01-15")
	require.NoError(t, err)

	assert.Equal(t, models.PaymentPaid, result.Booking.PaymentStatus)
	assert.Equal(t, 25.0, result.Booking.Amount)
	assert.Len(t, result.OTP, utils.OTPLength)
	assert.Equal(t, "REF-"+result.Booking.ID, result.Payment.ReferenceID)
	assert.Equal(t, "TXN-1", result.Payment.TransactionID)

	// The charge went to the caller's account for the slot price.
	require.Len(t, f.gateway.charges, 1)
	assert.Equal(t, "252611111111", f.gateway.charges[0].AccountNo)
	assert.Equal(t, 25.0, f.gateway.charges[0].Amount)

	stored, err := f.bookings.GetByID(ctx, result.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, stored.PaymentStatus)
	assert.False(t, stored.IsUsed)
}

func TestCreateBookingReleasesOnGatewayError(t *testing.T) {
	f := newFixture(t)
	f.gateway.err = errors.New("connection reset")
	ctx := context.Background()

	_, err := f.svc.Create(ctx, "client-1", "2526", f.slot.ID, "2024-01-15")
	var payErr *models.PaymentError
	require.ErrorAs(t, err, &payErr)

	date, _ := f.cal.MidnightUTC("2024-01-15")
	taken, err := f.bookings.ExistsBySlotAndDate(ctx, f.slot.ID, date)
	require.NoError(t, err)
	assert.False(t, taken, "pending booking must be released")
}

func TestCreateBookingReleasesOnDecline(t *testing.T) {
	f := newFixture(t)
	f.gateway.declined = true
	ctx := context.Background()

	_, err := f.svc.Create(ctx, "client-1", "2526", f.slot.ID, "2024-01-15")
	var payErr *models.PaymentError
	require.ErrorAs(t, err, &payErr)
	assert.Contains(t, payErr.Reason, "insufficient balance")

	date, _ := f.cal.MidnightUTC("2024-01-15")
	taken, _ := f.bookings.ExistsBySlotAndDate(ctx, f.slot.ID, date)
	assert.False(t, taken)

	// The slot is bookable again after the release.
	f.gateway.declined = false
	_, err = f.svc.Create(ctx, "client-2", "2526", f.slot.ID, "2024-01-15")
	assert.NoError(t, err)
}

func TestCreateBookingReleasesOnGatewayPanic(t *testing.T) {
	f := newFixture(t)
	f.gateway.panics = true
	ctx := context.Background()

	assert.Panics(t, func() {
		f.svc.Create(ctx, "client-1", "2526", f.slot.ID, "2024-01-15") //nolint:errcheck
	})

	date, _ := f.cal.MidnightUTC("2024-01-15")
	taken, err := f.bookings.ExistsBySlotAndDate(ctx, f.slot.ID, date)
	require.NoError(t, err)
	assert.False(t, taken, "release must also run when the gateway panics")
}

func TestCreateBookingRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, "c", "p", "missing-slot", "2024-01-15")
	assert.ErrorIs(t, err, models.ErrSlotNotFound)

	_, err = f.svc.Create(ctx, "c", "p", f.slot.ID, "2024-01-09")
	assert.ErrorIs(t, err, models.ErrPastDate)

	_, err = f.svc.Create(ctx, "c", "p", f.slot.ID, "15-01-2024")
	assert.ErrorIs(t, err, models.ErrInvalidDate)

	// Booking today is allowed.
	_, err = f.svc.Create(ctx, "c", "p", f.slot.ID, "2024-01-10")
	assert.NoError(t, err)

	// None of the rejections reached the gateway except the successful one.
	assert.Len(t, f.gateway.charges, 1)
}

func TestCreateBookingSlotTaken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, "client-1", "2526", f.slot.ID, "2024-01-15")
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, "client-2", "2526", f.slot.ID, "2024-01-15")
	assert.ErrorIs(t, err, models.ErrSlotTaken)
	assert.Len(t, f.gateway.charges, 1, "the losing booking must not be charged")

	// Same slot on another date is fine.
	_, err = f.svc.Create(ctx, "client-2", "2526", f.slot.ID, "2024-01-16")
	assert.NoError(t, err)
}

func TestListForClient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	seed := func(dateStr, status string, otp string) {
		date, err := f.cal.MidnightUTC(dateStr)
		require.NoError(t, err)
		require.NoError(t, f.bookings.Create(ctx, &models.Booking{
			ClientID: "client-1", SlotID: f.slot.ID, Date: date,
			PaymentStatus: status, OTP: otp,
		}))
	}
	seed("2024-01-05", models.PaymentPaid, "OTP00001")    // past
	seed("2024-01-10", models.PaymentPaid, "OTP00002")    // today counts as upcoming
	seed("2024-01-20", models.PaymentPending, "OTP00003") // upcoming

	all, err := f.svc.ListForClient(ctx, "client-1", "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Date descending.
	assert.Equal(t, "OTP00003", all[0].OTP)
	assert.Equal(t, "OTP00002", all[1].OTP)
	assert.Equal(t, "OTP00001", all[2].OTP)
	// Slots are joined.
	require.NotNil(t, all[0].Slot)
	assert.Equal(t, "17:00", all[0].Slot.StartTime)

	upcoming, err := f.svc.ListForClient(ctx, "client-1", "upcoming")
	require.NoError(t, err)
	assert.Len(t, upcoming, 2)

	past, err := f.svc.ListForClient(ctx, "client-1", "past")
	require.NoError(t, err)
	require.Len(t, past, 1)
	assert.Equal(t, "OTP00001", past[0].OTP)

	pending, err := f.svc.ListForClient(ctx, "client-1", models.PaymentPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "OTP00003", pending[0].OTP)

	none, err := f.svc.ListForClient(ctx, "other-client", "")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCreateByManager(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.svc.CreateByManager(ctx, "walk-in", f.slot.ID, "2024-01-15")
	require.NoError(t, err)

	assert.Equal(t, models.PaymentPaid, result.Booking.PaymentStatus)
	assert.True(t, strings.HasPrefix(result.Payment.ReferenceID, "MGR-"))
	assert.Len(t, result.OTP, utils.OTPLength)
	assert.Empty(t, f.gateway.charges, "front-desk bookings are never charged")

	_, err = f.svc.CreateByManager(ctx, "other", f.slot.ID, "2024-01-15")
	assert.ErrorIs(t, err, models.ErrSlotTaken)
}

func TestManagerUpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.svc.CreateByManager(ctx, "walk-in", f.slot.ID, "2024-01-15")
	require.NoError(t, err)

	newDate, err := f.cal.MidnightUTC("2024-01-16")
	require.NoError(t, err)
	used := true
	updated, err := f.svc.Update(ctx, result.Booking.ID, models.BookingUpdate{Date: &newDate, IsUsed: &used})
	require.NoError(t, err)
	assert.True(t, updated.Date.Equal(newDate))
	assert.True(t, updated.IsUsed)

	require.NoError(t, f.svc.Delete(ctx, result.Booking.ID))
	_, err = f.bookings.GetByID(ctx, result.Booking.ID)
	assert.ErrorIs(t, err, models.ErrBookingNotFound)

	assert.ErrorIs(t, f.svc.Delete(ctx, result.Booking.ID), models.ErrBookingNotFound)
}

func TestManagerUpdateDateMoveCollision(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	moved, err := f.svc.CreateByManager(ctx, "walk-in-1", f.slot.ID, "2024-01-15")
	require.NoError(t, err)
	_, err = f.svc.CreateByManager(ctx, "walk-in-2", f.slot.ID, "2024-01-16")
	require.NoError(t, err)

	// Moving the first booking onto the occupied date trips the
	// (slotId,date) uniqueness guard.
	takenDate, err := f.cal.MidnightUTC("2024-01-16")
	require.NoError(t, err)
	_, err = f.svc.Update(ctx, moved.Booking.ID, models.BookingUpdate{Date: &takenDate})
	assert.ErrorIs(t, err, models.ErrSlotTaken)

	// The losing booking keeps its original date.
	kept, err := f.bookings.GetByID(ctx, moved.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", f.cal.DateKey(kept.Date))
}

func TestListAllWithSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	seed := func(clientID, dateStr, otp string) *models.Booking {
		date, err := f.cal.MidnightUTC(dateStr)
		require.NoError(t, err)
		b := &models.Booking{
			ClientID: clientID, SlotID: f.slot.ID, Date: date,
			PaymentStatus: models.PaymentPaid, OTP: otp,
		}
		require.NoError(t, f.bookings.Create(ctx, b))
		return b
	}
	first := seed("ahmed", "2024-01-15", "Q2W3E4R5")
	seed("hodan", "2024-01-16", "T6Y7U2I3")

	all, err := f.svc.ListAll(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byDate, err := f.svc.ListAll(ctx, "2024-01-15", "")
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, "ahmed", byDate[0].ClientID)

	byClient, err := f.svc.ListAll(ctx, "", "AHM")
	require.NoError(t, err)
	require.Len(t, byClient, 1)
	assert.Equal(t, "ahmed", byClient[0].ClientID)

	byOTP, err := f.svc.ListAll(ctx, "", first.OTP)
	require.NoError(t, err)
	require.Len(t, byOTP, 1)
	assert.Equal(t, first.ID, byOTP[0].ID)
}
