// File: services/subscription/service.go
package subscription

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"futsal/models"
	"futsal/services/booking"
	"futsal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultDescription labels charge statements and subscription records.
const DefaultDescription = "Monthly Futsal Subscription"

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// prepare runs the shared validation pipeline and returns the priced,
// unsaved subscription plus its occurrence dates.
func (s *DefaultSubscriptionService) prepare(ctx context.Context, clientID, slotID, startDateStr string, weeklyDay, months int) (*models.Subscription, []time.Time, error) {
	if weeklyDay < 0 || weeklyDay > 6 {
		return nil, nil, models.ErrInvalidWeekday
	}
	if months < 1 {
		months = 1
	}

	sl, err := s.Slots.GetByID(ctx, slotID)
	if err != nil {
		return nil, nil, err
	}
	startDate, err := s.Cal.MidnightUTC(startDateStr)
	if err != nil {
		return nil, nil, err
	}
	if s.Cal.IsPastDate(startDate) {
		return nil, nil, models.ErrPastDate
	}

	dates, endDate := Occurrences(s.Cal, startDate, weeklyDay, months)
	if len(dates) == 0 {
		return nil, nil, models.ErrInvalidDate
	}

	conflict, err := s.Repo.FindConflict(ctx, slotID, weeklyDay, clientID, startDate, endDate)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check subscription conflicts: %w", err)
	}
	if conflict != nil {
		return nil, nil, models.ErrSubscriptionConflict
	}

	now := time.Now().UTC()
	sub := &models.Subscription{
		ID:              uuid.New().String(),
		ClientID:        clientID,
		SlotID:          slotID,
		StartDate:       startDate,
		EndDate:         endDate,
		WeeklyDay:       weeklyDay,
		MonthlyAmount:   round2(sl.Price * float64(len(dates))),
		Status:          models.SubscriptionActive,
		AutoRenew:       true,
		NextBillingDate: endDate,
		PaymentStatus:   models.PaymentPending,
		Description:     DefaultDescription,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return sub, dates, nil
}

func (s *DefaultSubscriptionService) Create(ctx context.Context, clientID, phone, slotID, startDateStr string, weeklyDay, months int) (*models.SubscriptionResult, error) {
	logger := utils.GetLogger()

	sub, dates, err := s.prepare(ctx, clientID, slotID, startDateStr, weeklyDay, months)
	if err != nil {
		return nil, err
	}
	// The partial unique (slotId,weeklyDay) index on active subscriptions
	// closes the race left open by the conflict query.
	if err := s.Repo.Create(ctx, sub); err != nil {
		return nil, err
	}

	// Release the pending record on every non-committed exit, panics included.
	committed := false
	defer func() {
		if committed {
			return
		}
		relCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Repo.Delete(relCtx, sub.ID); err != nil {
			logger.Error("Failed to release pending subscription",
				zap.String("subscriptionId", sub.ID), zap.Error(err))
		}
	}()

	res, err := s.Gateway.Charge(ctx, models.ChargeRequest{
		AccountNo:   phone,
		Amount:      sub.MonthlyAmount,
		InvoiceID:   sub.ID,
		Description: sub.Description,
	})
	if err != nil {
		return nil, models.NewPaymentError(err.Error())
	}
	if !res.Success {
		return nil, models.NewPaymentError(res.ResponseMsg)
	}

	now := time.Now().UTC()
	sub.PaymentStatus = models.PaymentPaid
	sub.ReferenceID = res.ReferenceID
	sub.LastBillingDate = now
	sub.UpdatedAt = now
	if err := s.Repo.Update(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to confirm subscription after payment: %w", err)
	}
	committed = true

	logger.Info("Subscription confirmed",
		zap.String("subscriptionId", sub.ID),
		zap.String("slotId", sub.SlotID),
		zap.Int("weeklyDay", sub.WeeklyDay),
		zap.Int("occurrences", len(dates)),
		zap.Float64("monthlyAmount", sub.MonthlyAmount))

	created, err := s.MaterializeBookings(ctx, sub.ID)
	if err != nil {
		// Payment is committed; the worker re-run fills the gap.
		logger.Error("Materialization incomplete, queued for retry",
			zap.String("subscriptionId", sub.ID), zap.Error(err))
	}
	s.enqueueMaterialize(sub.ID)

	return &models.SubscriptionResult{
		Subscription: *sub,
		Payment: models.PaymentSummary{
			ReferenceID:   res.ReferenceID,
			Status:        models.PaymentPaid,
			TransactionID: res.TransactionID,
			TotalAmount:   sub.MonthlyAmount,
			MonthlyAmount: sub.MonthlyAmount,
			Months:        months,
		},
		BookingsCreated: created,
	}, nil
}

func (s *DefaultSubscriptionService) enqueueMaterialize(subID string) {
	if s.Queue == nil {
		return
	}
	if err := s.Queue.EnqueueMaterialize(subID); err != nil {
		utils.GetLogger().Error("Failed to enqueue materialization task",
			zap.String("subscriptionId", subID), zap.Error(err))
	}
}

// MaterializeBookings walks the subscription's occurrence dates and creates
// the bookings that do not exist yet. Dates already held by this
// subscription are skipped, so re-runs converge; dates held by someone else
// are logged and left alone.
func (s *DefaultSubscriptionService) MaterializeBookings(ctx context.Context, subID string) (int, error) {
	logger := utils.GetLogger()

	sub, err := s.Repo.GetByID(ctx, subID)
	if err != nil {
		return 0, err
	}
	if sub.Status != models.SubscriptionActive || sub.PaymentStatus != models.PaymentPaid {
		return 0, nil
	}
	sl, err := s.Slots.GetByID(ctx, sub.SlotID)
	if err != nil {
		return 0, err
	}

	existing, err := s.Bookings.ListBySubscription(ctx, subID)
	if err != nil {
		return 0, fmt.Errorf("failed to list subscription bookings: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, b := range existing {
		have[s.Cal.DateKey(b.Date)] = true
	}

	created := 0
	var firstErr error
	for _, date := range occurrencesBetween(s.Cal, sub.StartDate, sub.EndDate, sub.WeeklyDay) {
		dateKey := s.Cal.DateKey(date)
		if have[dateKey] {
			continue
		}

		otp, err := booking.NewUniqueOTP(ctx, s.Bookings)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		now := time.Now().UTC()
		b := &models.Booking{
			ID:                    uuid.New().String(),
			ClientID:              sub.ClientID,
			SlotID:                sub.SlotID,
			Date:                  date,
			Amount:                sl.Price,
			PaymentStatus:         models.PaymentPaid,
			OTP:                   otp,
			ReferenceID:           fmt.Sprintf("%s-%s", sub.ReferenceID, dateKey),
			IsSubscriptionBooking: true,
			SubscriptionID:        sub.ID,
			CreatedAt:             now,
			UpdatedAt:             now,
		}
		if err := s.Bookings.Create(ctx, b); err != nil {
			if errors.Is(err, models.ErrSlotTaken) {
				logger.Warn("Subscription date already booked by someone else",
					zap.String("subscriptionId", sub.ID),
					zap.String("date", dateKey))
				continue
			}
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		created++
		utils.InvalidateSlotStatusCache(ctx, dateKey)
	}
	return created, firstErr
}

func (s *DefaultSubscriptionService) Cancel(ctx context.Context, subID, clientID string) (*models.Subscription, error) {
	sub, err := s.Repo.GetActiveByIDAndClient(ctx, subID, clientID)
	if err != nil {
		return nil, err
	}
	sub.Status = models.SubscriptionCancelled
	sub.AutoRenew = false
	sub.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, sub); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("Subscription cancelled",
		zap.String("subscriptionId", sub.ID), zap.String("clientId", clientID))
	return sub, nil
}

func (s *DefaultSubscriptionService) ListForClient(ctx context.Context, clientID, status string) ([]models.SubscriptionWithSlot, error) {
	subs, err := s.Repo.ListByClient(ctx, clientID, status)
	if err != nil {
		return nil, err
	}
	return s.withSlots(ctx, subs)
}

func (s *DefaultSubscriptionService) ListAll(ctx context.Context, status, search string) ([]models.SubscriptionWithSlot, error) {
	subs, err := s.Repo.ListAll(ctx, status)
	if err != nil {
		return nil, err
	}
	if search != "" {
		needle := strings.ToLower(search)
		matched := subs[:0:0]
		for _, sub := range subs {
			if strings.Contains(strings.ToLower(sub.ClientID), needle) ||
				strings.Contains(strings.ToLower(sub.ReferenceID), needle) {
				matched = append(matched, sub)
			}
		}
		subs = matched
	}
	return s.withSlots(ctx, subs)
}

func (s *DefaultSubscriptionService) withSlots(ctx context.Context, subs []models.Subscription) ([]models.SubscriptionWithSlot, error) {
	slots, err := s.Slots.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Slot, len(slots))
	for _, sl := range slots {
		byID[sl.ID] = sl
	}

	out := make([]models.SubscriptionWithSlot, 0, len(subs))
	for _, sub := range subs {
		entry := models.SubscriptionWithSlot{Subscription: sub}
		if sl, ok := byID[sub.SlotID]; ok {
			slCopy := sl
			entry.Slot = &slCopy
		}
		out = append(out, entry)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartDate.After(out[j].StartDate)
	})
	return out, nil
}
