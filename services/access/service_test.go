package access_test

import (
	"context"
	"testing"
	"time"

	"futsal/calendar"
	bookingRepo "futsal/database/repository/booking"
	memoryRepo "futsal/database/repository/memory"
	"futsal/models"
	"futsal/services/access"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFixture pins the clock to the given Mogadishu wall time on 2024-01-10
// and seeds one slot from 17:00 to 18:00.
func newFixture(t *testing.T, hour, minute int) (*access.DefaultAccessService, bookingRepo.BookingRepository, *calendar.BusinessCalendar) {
	t.Helper()
	loc, err := time.LoadLocation("Africa/Mogadishu")
	require.NoError(t, err)
	at := time.Date(2024, 1, 10, hour, minute, 0, 0, loc)

	cal, err := calendar.NewFixed("Africa/Mogadishu", at)
	require.NoError(t, err)

	bookings := memoryRepo.NewBookingRepo()
	slots := memoryRepo.NewSlotRepo()
	require.NoError(t, slots.Create(context.Background(), &models.Slot{
		ID: "slot-1", StartTime: "17:00", EndTime: "18:00", Price: 25,
	}))

	svc := &access.DefaultAccessService{Bookings: bookings, Slots: slots, Cal: cal}
	return svc, bookings, cal
}

func seedBooking(t *testing.T, repo bookingRepo.BookingRepository, cal *calendar.BusinessCalendar, dateStr, status, otp string) *models.Booking {
	t.Helper()
	date, err := cal.MidnightUTC(dateStr)
	require.NoError(t, err)
	b := &models.Booking{
		ClientID: "client-1", SlotID: "slot-1", Date: date,
		PaymentStatus: status, OTP: otp,
	}
	require.NoError(t, repo.Create(context.Background(), b))
	return b
}

func assertDenied(t *testing.T, err error, code int) {
	t.Helper()
	var accessErr *models.AccessError
	require.ErrorAs(t, err, &accessErr)
	assert.Equal(t, code, accessErr.Code)
}

func TestVerifyInvalidOTP(t *testing.T) {
	svc, _, _ := newFixture(t, 17, 30)

	_, err := svc.Verify(context.Background(), "NOPE0000")
	assertDenied(t, err, models.AccessCodeInvalidOTP)
}

func TestVerifyUnpaid(t *testing.T) {
	svc, bookings, cal := newFixture(t, 17, 30)
	seedBooking(t, bookings, cal, "2024-01-10", models.PaymentPending, "PEND0001")

	_, err := svc.Verify(context.Background(), "PEND0001")
	assertDenied(t, err, models.AccessCodeUnpaid)
}

func TestVerifyWrongDate(t *testing.T) {
	svc, bookings, cal := newFixture(t, 17, 30)
	seedBooking(t, bookings, cal, "2024-01-11", models.PaymentPaid, "NEXT0001")

	_, err := svc.Verify(context.Background(), "NEXT0001")
	assertDenied(t, err, models.AccessCodeWrongDate)
}

func TestVerifyEntryWindowBoundaries(t *testing.T) {
	cases := []struct {
		name    string
		hour    int
		minute  int
		granted bool
	}{
		{"one minute before start", 16, 59, false},
		{"exactly at start", 17, 0, true},
		{"mid window", 17, 30, true},
		{"last minute inside", 17, 59, true},
		{"exactly at end", 18, 0, false},
		{"after end", 19, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, bookings, cal := newFixture(t, tc.hour, tc.minute)
			seedBooking(t, bookings, cal, "2024-01-10", models.PaymentPaid, "WIND0001")

			grant, err := svc.Verify(context.Background(), "WIND0001")
			if tc.granted {
				require.NoError(t, err)
				assert.Equal(t, models.AccessCodeGranted, grant.Code)
			} else {
				assertDenied(t, err, models.AccessCodeOutsideWindow)
			}
		})
	}
}

func TestVerifyFirstAccessDetail(t *testing.T) {
	svc, bookings, cal := newFixture(t, 17, 15)
	b := seedBooking(t, bookings, cal, "2024-01-10", models.PaymentPaid, "GATE0001")

	grant, err := svc.Verify(context.Background(), "GATE0001")
	require.NoError(t, err)

	assert.Equal(t, models.AccessCodeGranted, grant.Code)
	require.NotNil(t, grant.Detail)
	assert.Equal(t, "17:00 - 18:00", grant.Detail.SlotTime)
	assert.Equal(t, 45, grant.Detail.RemainingMinutes)
	assert.Equal(t, 60, grant.Detail.FullDuration)
	assert.Equal(t, "client-1", grant.Detail.ClientID)
	assert.Equal(t, "2024-01-10", grant.Detail.Date)
	assert.Equal(t, "Africa/Mogadishu", grant.Detail.Timezone)

	stored, err := bookings.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsUsed, "first access must flip IsUsed")
}

func TestVerifyRepeatAccess(t *testing.T) {
	svc, bookings, cal := newFixture(t, 17, 15)
	seedBooking(t, bookings, cal, "2024-01-10", models.PaymentPaid, "GATE0002")

	first, err := svc.Verify(context.Background(), "GATE0002")
	require.NoError(t, err)
	require.Equal(t, models.AccessCodeGranted, first.Code)

	second, err := svc.Verify(context.Background(), "GATE0002")
	require.NoError(t, err)
	assert.Equal(t, models.AccessCodeGrantedRepeat, second.Code)
	assert.Nil(t, second.Detail, "repeat grants carry no detail payload")
}

func TestVerifyDenialsDoNotConsumeOTP(t *testing.T) {
	// Outside the window first, then inside: the denial must not mark the
	// booking used, so the later in-window entry still counts as first.
	svcEarly, bookings, cal := newFixture(t, 16, 0)
	b := seedBooking(t, bookings, cal, "2024-01-10", models.PaymentPaid, "GATE0003")

	_, err := svcEarly.Verify(context.Background(), "GATE0003")
	assertDenied(t, err, models.AccessCodeOutsideWindow)

	stored, err := bookings.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsUsed)

	svcLate := &access.DefaultAccessService{Bookings: bookings, Slots: svcEarly.Slots, Cal: mustFixed(t, 17, 30)}
	grant, err := svcLate.Verify(context.Background(), "GATE0003")
	require.NoError(t, err)
	assert.Equal(t, models.AccessCodeGranted, grant.Code)
}

func mustFixed(t *testing.T, hour, minute int) *calendar.BusinessCalendar {
	t.Helper()
	loc, err := time.LoadLocation("Africa/Mogadishu")
	require.NoError(t, err)
	cal, err := calendar.NewFixed("Africa/Mogadishu", time.Date(2024, 1, 10, hour, minute, 0, 0, loc))
	require.NoError(t, err)
	return cal
}
