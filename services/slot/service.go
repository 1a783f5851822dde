// File: services/slot/service.go
package slot

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"futsal/calendar"
	"futsal/models"
	"futsal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// validateWindow checks an HH:MM pair and returns its minute bounds.
func validateWindow(startTime, endTime string) (int, int, error) {
	startMin, err := calendar.TimeToMinutes(startTime)
	if err != nil {
		return 0, 0, err
	}
	endMin, err := calendar.TimeToMinutes(endTime)
	if err != nil {
		return 0, 0, err
	}
	if startMin >= endMin {
		return 0, 0, models.ErrInvalidTime
	}
	return startMin, endMin, nil
}

func validatePrice(price float64) error {
	if price < 0 {
		return models.ErrInvalidPrice
	}
	cents := price * 100
	if math.Abs(cents-math.Round(cents)) > 1e-9 {
		return models.ErrInvalidPrice
	}
	return nil
}

// overlaps reports whether [aStart,aEnd) intersects [bStart,bEnd) in minutes.
func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

func (s *DefaultSlotService) checkOverlap(ctx context.Context, startMin, endMin int, excludeID string) error {
	existing, err := s.Repo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch slots for overlap check: %w", err)
	}
	for _, other := range existing {
		if other.ID == excludeID {
			continue
		}
		oStart, err := calendar.TimeToMinutes(other.StartTime)
		if err != nil {
			return err
		}
		oEnd, err := calendar.TimeToMinutes(other.EndTime)
		if err != nil {
			return err
		}
		if oStart == startMin && oEnd == endMin {
			return models.ErrSlotExists
		}
		if overlaps(startMin, endMin, oStart, oEnd) {
			return models.ErrSlotOverlap
		}
	}
	return nil
}

func (s *DefaultSlotService) Create(ctx context.Context, startTime, endTime string, price float64) (*models.Slot, error) {
	startMin, endMin, err := validateWindow(startTime, endTime)
	if err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	if err := s.checkOverlap(ctx, startMin, endMin, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sl := &models.Slot{
		ID:        uuid.New().String(),
		StartTime: startTime,
		EndTime:   endTime,
		Price:     price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, sl); err != nil {
		return nil, err
	}
	return sl, nil
}

func (s *DefaultSlotService) GetByID(ctx context.Context, id string) (*models.Slot, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultSlotService) Update(ctx context.Context, id string, upd models.SlotUpdate) (*models.Slot, error) {
	sl, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	newStart := sl.StartTime
	newEnd := sl.EndTime
	if upd.StartTime != nil {
		newStart = *upd.StartTime
	}
	if upd.EndTime != nil {
		newEnd = *upd.EndTime
	}
	timesChanged := newStart != sl.StartTime || newEnd != sl.EndTime

	startMin, endMin, err := validateWindow(newStart, newEnd)
	if err != nil {
		return nil, err
	}
	if upd.Price != nil {
		if err := validatePrice(*upd.Price); err != nil {
			return nil, err
		}
	}

	if timesChanged {
		// Moving the window would orphan tickets already sold for it.
		today, err := s.Cal.MidnightUTC(s.Cal.Today())
		if err != nil {
			return nil, err
		}
		busy, err := s.Bookings.ExistsBySlotFrom(ctx, id, today)
		if err != nil {
			return nil, fmt.Errorf("failed to check slot bookings: %w", err)
		}
		if busy {
			return nil, models.ErrSlotHasBookings
		}
		if err := s.checkOverlap(ctx, startMin, endMin, id); err != nil {
			return nil, err
		}
	}

	sl.StartTime = newStart
	sl.EndTime = newEnd
	if upd.Price != nil {
		sl.Price = *upd.Price
	}
	sl.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, sl); err != nil {
		return nil, err
	}

	utils.InvalidateSlotStatusCache(ctx, s.Cal.Today())
	return sl, nil
}

func (s *DefaultSlotService) Delete(ctx context.Context, id string) error {
	if _, err := s.Repo.GetByID(ctx, id); err != nil {
		return err
	}
	referenced, err := s.Bookings.ExistsBySlot(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check slot bookings: %w", err)
	}
	if referenced {
		return models.ErrSlotInUse
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	utils.InvalidateSlotStatusCache(ctx, s.Cal.Today())
	return nil
}

func (s *DefaultSlotService) List(ctx context.Context) ([]models.Slot, error) {
	return s.Repo.GetAll(ctx)
}

func (s *DefaultSlotService) ListForDate(ctx context.Context, dateStr string) ([]models.SlotWithBookingStatus, error) {
	date, err := s.Cal.MidnightUTC(dateStr)
	if err != nil {
		return nil, err
	}
	dateKey := s.Cal.DateKey(date)

	logger := utils.GetLogger()
	cacheClient := utils.CacheClient // nil when caching is disabled
	cacheKey := utils.SlotStatusCachePrefix + dateKey
	if cacheClient != nil {
		if cached, err := cacheClient.Get(ctx, cacheKey).Result(); err == nil {
			var view []models.SlotWithBookingStatus
			if err := json.Unmarshal([]byte(cached), &view); err == nil {
				return view, nil
			}
			logger.Warn("Dropping unreadable slot status cache entry", zap.String("date", dateKey))
			cacheClient.Del(ctx, cacheKey)
		}
	}

	slots, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	bookings, err := s.Bookings.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings for %s: %w", dateKey, err)
	}

	bySlot := make(map[string]models.Booking, len(bookings))
	for _, b := range bookings {
		bySlot[b.SlotID] = b
	}

	view := make([]models.SlotWithBookingStatus, 0, len(slots))
	for _, sl := range slots {
		entry := models.SlotWithBookingStatus{Slot: sl}
		if b, ok := bySlot[sl.ID]; ok {
			entry.IsBooked = true
			entry.BookedBy = b.ClientID
			entry.PaymentStatus = b.PaymentStatus
			entry.IsSubscriptionBooking = b.IsSubscriptionBooking
		}
		view = append(view, entry)
	}

	if cacheClient != nil {
		if data, err := json.Marshal(view); err == nil {
			if err := cacheClient.Set(ctx, cacheKey, data, utils.SlotStatusCacheTTL).Err(); err != nil {
				logger.Warn("Failed to cache slot status view", zap.String("date", dateKey), zap.Error(err))
			}
		}
	}
	return view, nil
}
