// File: services/subscription/manager.go
package subscription

import (
	"context"
	"fmt"
	"time"

	"futsal/models"
	"futsal/utils"

	"go.uber.org/zap"
)

// CreateByManager records a subscription settled at the front desk: paid
// immediately, no gateway charge, bookings materialized inline.
func (s *DefaultSubscriptionService) CreateByManager(ctx context.Context, clientID, slotID, startDateStr string, weeklyDay, months int) (*models.SubscriptionResult, error) {
	sub, _, err := s.prepare(ctx, clientID, slotID, startDateStr, weeklyDay, months)
	if err != nil {
		return nil, err
	}
	if months < 1 {
		months = 1
	}

	now := time.Now().UTC()
	sub.PaymentStatus = models.PaymentPaid
	sub.ReferenceID = fmt.Sprintf("MGR-SUB-%d", now.UnixMilli())
	sub.LastBillingDate = now
	if err := s.Repo.Create(ctx, sub); err != nil {
		return nil, err
	}

	created, err := s.MaterializeBookings(ctx, sub.ID)
	if err != nil {
		utils.GetLogger().Error("Materialization incomplete, queued for retry",
			zap.String("subscriptionId", sub.ID), zap.Error(err))
	}
	s.enqueueMaterialize(sub.ID)

	return &models.SubscriptionResult{
		Subscription: *sub,
		Payment: models.PaymentSummary{
			ReferenceID:   sub.ReferenceID,
			Status:        models.PaymentPaid,
			TotalAmount:   sub.MonthlyAmount,
			MonthlyAmount: sub.MonthlyAmount,
			Months:        months,
		},
		BookingsCreated: created,
	}, nil
}

func (s *DefaultSubscriptionService) Update(ctx context.Context, id string, upd models.SubscriptionUpdate) (*models.Subscription, error) {
	sub, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Status != nil {
		switch *upd.Status {
		case models.SubscriptionActive, models.SubscriptionExpired, models.SubscriptionCancelled:
		default:
			return nil, fmt.Errorf("invalid subscription status %q", *upd.Status)
		}
		sub.Status = *upd.Status
	}
	if upd.AutoRenew != nil {
		sub.AutoRenew = *upd.AutoRenew
	}
	if upd.PaymentStatus != nil {
		sub.PaymentStatus = *upd.PaymentStatus
	}
	if upd.Description != nil {
		sub.Description = *upd.Description
	}
	sub.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Delete removes a subscription and cascade-deletes every booking it
// materialized, returning how many bookings went with it.
func (s *DefaultSubscriptionService) Delete(ctx context.Context, id string) (int64, error) {
	if _, err := s.Repo.GetByID(ctx, id); err != nil {
		return 0, err
	}
	removed, err := s.Bookings.DeleteBySubscription(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("failed to cascade-delete subscription bookings: %w", err)
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return removed, err
	}
	utils.InvalidateSlotStatusCache(ctx, s.Cal.Today())

	utils.GetLogger().Info("Subscription deleted",
		zap.String("subscriptionId", id), zap.Int64("bookingsRemoved", removed))
	return removed, nil
}
