// File: database/repository/memory/subscription.go
package memoryRepo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	subscriptionRepo "futsal/database/repository/subscription"
	"futsal/models"
)

type memorySubscriptionRepo struct {
	mu   sync.Mutex
	subs map[string]models.Subscription
}

// NewSubscriptionRepo constructs an empty in-memory SubscriptionRepository.
func NewSubscriptionRepo() subscriptionRepo.SubscriptionRepository {
	return &memorySubscriptionRepo{subs: make(map[string]models.Subscription)}
}

func (r *memorySubscriptionRepo) Create(ctx context.Context, sub *models.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	now := time.Now()
	sub.CreatedAt = now
	sub.UpdatedAt = now

	// Mirrors the partial unique (slotId,weeklyDay) index on active subs.
	if sub.Status == models.SubscriptionActive {
		for _, other := range r.subs {
			if other.Status == models.SubscriptionActive &&
				other.SlotID == sub.SlotID && other.WeeklyDay == sub.WeeklyDay {
				return models.ErrSubscriptionConflict
			}
		}
	}
	r.subs[sub.ID] = *sub
	return nil
}

func (r *memorySubscriptionRepo) GetByID(ctx context.Context, id string) (*models.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, ok := r.subs[id]
	if !ok {
		return nil, models.ErrSubscriptionNotFound
	}
	return &sub, nil
}

func (r *memorySubscriptionRepo) GetActiveByIDAndClient(ctx context.Context, id, clientID string) (*models.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, ok := r.subs[id]
	if !ok || sub.ClientID != clientID || sub.Status != models.SubscriptionActive {
		return nil, models.ErrSubscriptionNotFound
	}
	return &sub, nil
}

func (r *memorySubscriptionRepo) Update(ctx context.Context, sub *models.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.subs[sub.ID]; !ok {
		return models.ErrSubscriptionNotFound
	}
	sub.UpdatedAt = time.Now()
	r.subs[sub.ID] = *sub
	return nil
}

func (r *memorySubscriptionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.subs[id]; !ok {
		return models.ErrSubscriptionNotFound
	}
	delete(r.subs, id)
	return nil
}

func (r *memorySubscriptionRepo) FindConflict(ctx context.Context, slotID string, weeklyDay int, clientID string, start, end time.Time) (*models.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, sub := range r.subs {
		if sub.SlotID != slotID || sub.WeeklyDay != weeklyDay || sub.Status != models.SubscriptionActive {
			continue
		}
		if sub.ClientID == clientID ||
			(sub.StartDate.Before(end) && sub.EndDate.After(start)) {
			subCopy := sub
			return &subCopy, nil
		}
	}
	return nil, nil
}

func (r *memorySubscriptionRepo) ListByClient(ctx context.Context, clientID, status string) ([]models.Subscription, error) {
	return r.list(func(sub models.Subscription) bool {
		return sub.ClientID == clientID && (status == "" || sub.Status == status)
	})
}

func (r *memorySubscriptionRepo) ListAll(ctx context.Context, status string) ([]models.Subscription, error) {
	return r.list(func(sub models.Subscription) bool {
		return status == "" || sub.Status == status
	})
}

func (r *memorySubscriptionRepo) list(match func(models.Subscription) bool) ([]models.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Subscription
	for _, sub := range r.subs {
		if match(sub) {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (r *memorySubscriptionRepo) ExpireLapsed(ctx context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var flipped int64
	for id, sub := range r.subs {
		if sub.Status == models.SubscriptionActive && !sub.EndDate.After(before) {
			sub.Status = models.SubscriptionExpired
			sub.UpdatedAt = time.Now()
			r.subs[id] = sub
			flipped++
		}
	}
	return flipped, nil
}

func (r *memorySubscriptionRepo) EnsureIndexes() error { return nil }
