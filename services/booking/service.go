// File: services/booking/service.go
package booking

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	bookingRepo "futsal/database/repository/booking"
	"futsal/models"
	"futsal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// otpMaxAttempts bounds collision retries when issuing a gate code.
const otpMaxAttempts = 5

// NewUniqueOTP issues a gate code that no live booking currently holds.
func NewUniqueOTP(ctx context.Context, repo bookingRepo.BookingRepository) (string, error) {
	for i := 0; i < otpMaxAttempts; i++ {
		otp, err := utils.GenerateOTP(utils.OTPLength)
		if err != nil {
			return "", err
		}
		exists, err := repo.OTPExists(ctx, otp)
		if err != nil {
			return "", fmt.Errorf("failed to check OTP uniqueness: %w", err)
		}
		if !exists {
			return otp, nil
		}
	}
	return "", fmt.Errorf("failed to generate a unique OTP after %d attempts", otpMaxAttempts)
}

func (s *DefaultBookingService) Create(ctx context.Context, clientID, phone, slotID, dateStr string) (*models.BookingResult, error) {
	logger := utils.GetLogger()

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
	b := &models.Booking{
		ID:            uuid.New().String(),
		ClientID:      clientID,
		SlotID:        slotID,
		Date:          date,
		Amount:        sl.Price,
		PaymentStatus: models.PaymentPending,
		OTP:           otp,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	// The unique (slotId,date) index closes the race between the check
	// above and this insert.
	if err := s.Repo.Create(ctx, b); err != nil {
		return nil, err
	}

	// Release the pending hold on every non-committed exit, panics included.
	committed := false
	defer func() {
		if committed {
			return
		}
		relCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Repo.Delete(relCtx, b.ID); err != nil {
			logger.Error("Failed to release pending booking",
				zap.String("bookingId", b.ID), zap.Error(err))
		}
		utils.InvalidateSlotStatusCache(relCtx, s.Cal.DateKey(date))
	}()

	res, err := s.Gateway.Charge(ctx, models.ChargeRequest{
		AccountNo:   phone,
		Amount:      sl.Price,
		InvoiceID:   b.ID,
		Description: "Futsal Slot Booking",
	})
	if err != nil {
		return nil, models.NewPaymentError(err.Error())
	}
	if !res.Success {
		return nil, models.NewPaymentError(res.ResponseMsg)
	}

	b.PaymentStatus = models.PaymentPaid
	b.ReferenceID = res.ReferenceID
	b.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to confirm booking after payment: %w", err)
	}
	committed = true
	utils.InvalidateSlotStatusCache(ctx, s.Cal.DateKey(date))

	logger.Info("Booking confirmed",
		zap.String("bookingId", b.ID),
		zap.String("slotId", slotID),
		zap.String("date", s.Cal.DateKey(date)),
		zap.String("referenceId", res.ReferenceID))

	return &models.BookingResult{
		Booking: *b,
		Payment: models.PaymentSummary{
			ReferenceID:   res.ReferenceID,
			Status:        models.PaymentPaid,
			TransactionID: res.TransactionID,
			TotalAmount:   sl.Price,
		},
		OTP: otp,
	}, nil
}

func (s *DefaultBookingService) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultBookingService) ListForClient(ctx context.Context, clientID, status string) ([]models.BookingWithSlot, error) {
	bookings, err := s.Repo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	today := s.Cal.Today()
	filtered := bookings[:0:0]
	for _, b := range bookings {
		switch status {
		case "upcoming":
			if s.Cal.DateKey(b.Date) < today {
				continue
			}
		case "past":
			if s.Cal.DateKey(b.Date) >= today {
				continue
			}
		case models.PaymentPaid, models.PaymentPending:
			if b.PaymentStatus != status {
				continue
			}
		}
		filtered = append(filtered, b)
	}
	return s.withSlots(ctx, filtered)
}

func (s *DefaultBookingService) ListAll(ctx context.Context, dateStr, search string) ([]models.BookingWithSlot, error) {
	var (
		bookings []models.Booking
		err      error
	)
	if dateStr != "" {
		date, derr := s.Cal.MidnightUTC(dateStr)
		if derr != nil {
			return nil, derr
		}
		bookings, err = s.Repo.ListByDate(ctx, date)
	} else {
		bookings, err = s.Repo.ListAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	if search != "" {
		needle := strings.ToLower(search)
		matched := bookings[:0:0]
		for _, b := range bookings {
			if strings.Contains(strings.ToLower(b.ClientID), needle) ||
				strings.Contains(strings.ToLower(b.OTP), needle) ||
				strings.Contains(strings.ToLower(b.ReferenceID), needle) {
				matched = append(matched, b)
			}
		}
		bookings = matched
	}
	return s.withSlots(ctx, bookings)
}

// withSlots joins bookings with their slots and applies the canonical list
// order: date descending, then slot start time ascending within a date.
func (s *DefaultBookingService) withSlots(ctx context.Context, bookings []models.Booking) ([]models.BookingWithSlot, error) {
	slots, err := s.Slots.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Slot, len(slots))
	for _, sl := range slots {
		byID[sl.ID] = sl
	}

	out := make([]models.BookingWithSlot, 0, len(bookings))
	for _, b := range bookings {
		entry := models.BookingWithSlot{Booking: b}
		if sl, ok := byID[b.SlotID]; ok {
			slCopy := sl
			entry.Slot = &slCopy
		}
		out = append(out, entry)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		var si, sj string
		if out[i].Slot != nil {
			si = out[i].Slot.StartTime
		}
		if out[j].Slot != nil {
			sj = out[j].Slot.StartTime
		}
		return si < sj
	})
	return out, nil
}
