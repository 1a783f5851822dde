// File: services/access/service.go
package access

import (
	"context"
	"errors"
	"fmt"

	"futsal/calendar"
	"futsal/models"
	"futsal/utils"

	"go.uber.org/zap"
)

func deny(code int, message string) error {
	return &models.AccessError{Code: code, Message: message}
}

// Verify checks OTP existence, payment, date and the entry window in order,
// stopping at the first failure. Denials never mutate the booking; only a
// first successful entry flips IsUsed.
func (s *DefaultAccessService) Verify(ctx context.Context, otp string) (*models.AccessGrant, error) {
	logger := utils.GetLogger()

	b, err := s.Bookings.GetByOTP(ctx, otp)
	if err != nil {
		if errors.Is(err, models.ErrBookingNotFound) {
			return nil, deny(models.AccessCodeInvalidOTP, "Invalid OTP")
		}
		return nil, err
	}

	if b.PaymentStatus != models.PaymentPaid {
		return nil, deny(models.AccessCodeUnpaid, "Booking payment is not completed")
	}

	bookedDate := s.Cal.DateKey(b.Date)
	if !s.Cal.IsToday(b.Date) {
		return nil, deny(models.AccessCodeWrongDate,
			fmt.Sprintf("This OTP is valid for %s, not today", bookedDate))
	}

	sl, err := s.Slots.GetByID(ctx, b.SlotID)
	if err != nil {
		return nil, err
	}
	startMin, err := calendar.TimeToMinutes(sl.StartTime)
	if err != nil {
		return nil, err
	}
	endMin, err := calendar.TimeToMinutes(sl.EndTime)
	if err != nil {
		return nil, err
	}

	// Entry window is [start, end): on the dot of the start time is in,
	// on the dot of the end time is out. No grace period.
	nowMin := s.Cal.NowMinutes()
	if nowMin < startMin || nowMin >= endMin {
		return nil, deny(models.AccessCodeOutsideWindow,
			fmt.Sprintf("Access only allowed between %s and %s", sl.StartTime, sl.EndTime))
	}

	if b.IsUsed {
		return &models.AccessGrant{
			Code:    models.AccessCodeGrantedRepeat,
			Message: "Access granted (repeat entry)",
		}, nil
	}

	if err := s.Bookings.MarkUsed(ctx, b.ID); err != nil {
		return nil, fmt.Errorf("failed to record first entry: %w", err)
	}
	logger.Info("Gate access granted",
		zap.String("bookingId", b.ID),
		zap.String("clientId", b.ClientID),
		zap.String("date", bookedDate))

	remaining := endMin - nowMin
	if remaining < 0 {
		remaining = 0
	}
	return &models.AccessGrant{
		Code:    models.AccessCodeGranted,
		Message: "Access granted",
		Detail: &models.AccessGrantDetail{
			SlotTime:         fmt.Sprintf("%s - %s", sl.StartTime, sl.EndTime),
			RemainingMinutes: remaining,
			FullDuration:     endMin - startMin,
			ClientID:         b.ClientID,
			Date:             bookedDate,
			Timezone:         s.Cal.Timezone(),
		},
	}, nil
}
