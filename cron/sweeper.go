package cron

import (
	"context"
	"time"

	"futsal/calendar"
	subscriptionRepo "futsal/database/repository/subscription"
	"futsal/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartExpirySweeper schedules the daily pass that flips active
// subscriptions whose end date has passed to expired. It runs shortly after
// business midnight so "today" never shows lapsed subscriptions as active.
func StartExpirySweeper(repo subscriptionRepo.SubscriptionRepository, cal *calendar.BusinessCalendar) *cron.Cron {
	logger := utils.GetLogger()

	c := cron.New(cron.WithLocation(cal.Location()))
	if _, err := c.AddFunc("5 0 * * *", func() { sweepExpired(repo, cal) }); err != nil {
		logger.Fatal("Failed to schedule subscription expiry sweep", zap.Error(err))
	}
	c.Start()

	// Catch up immediately on boot in case the process was down at the
	// scheduled time.
	go sweepExpired(repo, cal)
	return c
}

func sweepExpired(repo subscriptionRepo.SubscriptionRepository, cal *calendar.BusinessCalendar) {
	logger := utils.GetLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	today, err := cal.MidnightUTC(cal.Today())
	if err != nil {
		logger.Error("Expiry sweep could not resolve business today", zap.Error(err))
		return
	}
	flipped, err := repo.ExpireLapsed(ctx, today)
	if err != nil {
		logger.Error("Subscription expiry sweep failed", zap.Error(err))
		return
	}
	if flipped > 0 {
		logger.Info("Expired lapsed subscriptions", zap.Int64("count", flipped))
	}
}
