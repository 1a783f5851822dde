// File: services/booking/manager.go
package booking

import (
	"context"
	"fmt"
	"time"

	"futsal/models"
	"futsal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateByManager records a booking taken at the front desk. Payment is
// settled out of band (cash), so the record is paid immediately and no
// gateway charge is attempted.
func (s *DefaultBookingService) CreateByManager(ctx context.Context, clientID, slotID, dateStr string) (*models.BookingResult, error) {
	sl, err := s.Slots.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	date, err := s.Cal.MidnightUTC(dateStr)
	if err != nil {
		return nil, err
	}
	if s.Cal.IsPastDate(date) {
		return nil, models.ErrPastDate
	}
	taken, err := s.Repo.ExistsBySlotAndDate(ctx, slotID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to check slot availability: %w", err)
	}
	if taken {
		return nil, models.ErrSlotTaken
	}

	otp, err := NewUniqueOTP(ctx, s.Repo)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	referenceID := fmt.Sprintf("MGR-%d", now.UnixMilli())
	b := &models.Booking{
		ID:            uuid.New().String(),
		ClientID:      clientID,
		SlotID:        slotID,
		Date:          date,
		Amount:        sl.Price,
		PaymentStatus: models.PaymentPaid,
		OTP:           otp,
		ReferenceID:   referenceID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Repo.Create(ctx, b); err != nil {
		return nil, err
	}
	utils.InvalidateSlotStatusCache(ctx, s.Cal.DateKey(date))

	utils.GetLogger().Info("Manager booking recorded",
		zap.String("bookingId", b.ID),
		zap.String("slotId", slotID),
		zap.String("date", s.Cal.DateKey(date)))

	return &models.BookingResult{
		Booking: *b,
		Payment: models.PaymentSummary{
			ReferenceID: referenceID,
			Status:      models.PaymentPaid,
			TotalAmount: sl.Price,
		},
		OTP: otp,
	}, nil
}

func (s *DefaultBookingService) Update(ctx context.Context, id string, upd models.BookingUpdate) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldDateKey := s.Cal.DateKey(b.Date)
	if upd.Date != nil {
		b.Date = s.Cal.TruncateToMidnightUTC(*upd.Date)
	}
	if upd.PaymentStatus != nil {
		b.PaymentStatus = *upd.PaymentStatus
	}
	if upd.IsUsed != nil {
		b.IsUsed = *upd.IsUsed
	}
	b.UpdatedAt = time.Now().UTC()

	// A date move lands under the unique (slotId,date) index again, so a
	// collision surfaces as ErrSlotTaken from the repository.
	if err := s.Repo.Update(ctx, b); err != nil {
		return nil, err
	}

	utils.InvalidateSlotStatusCache(ctx, oldDateKey)
	if newKey := s.Cal.DateKey(b.Date); newKey != oldDateKey {
		utils.InvalidateSlotStatusCache(ctx, newKey)
	}
	return b, nil
}

func (s *DefaultBookingService) Delete(ctx context.Context, id string) error {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	utils.InvalidateSlotStatusCache(ctx, s.Cal.DateKey(b.Date))
	return nil
}
