// File: database/repository/memory/slot.go

// Package memoryRepo holds in-memory repository implementations with the
// same sentinel-error semantics as the Mongo ones, for tests and local
// development without a database.
package memoryRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	slotRepo "futsal/database/repository/slot"
	"futsal/models"
)

type memorySlotRepo struct {
	mu    sync.Mutex
	slots map[string]models.Slot
}

// NewSlotRepo constructs an empty in-memory SlotRepository.
func NewSlotRepo() slotRepo.SlotRepository {
	return &memorySlotRepo{slots: make(map[string]models.Slot)}
}

func (r *memorySlotRepo) Create(ctx context.Context, slot *models.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if slot.ID == "" {
		slot.ID = uuid.New().String()
	}
	now := time.Now()
	slot.CreatedAt = now
	slot.UpdatedAt = now

	for _, other := range r.slots {
		if other.StartTime == slot.StartTime && other.EndTime == slot.EndTime {
			return models.ErrSlotExists
		}
	}
	r.slots[slot.ID] = *slot
	return nil
}

func (r *memorySlotRepo) GetByID(ctx context.Context, id string) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sl, ok := r.slots[id]
	if !ok {
		return nil, models.ErrSlotNotFound
	}
	return &sl, nil
}

func (r *memorySlotRepo) GetAll(ctx context.Context) ([]models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Slot, 0, len(r.slots))
	for _, sl := range r.slots {
		out = append(out, sl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func (r *memorySlotRepo) Update(ctx context.Context, slot *models.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.slots[slot.ID]; !ok {
		return models.ErrSlotNotFound
	}
	for id, other := range r.slots {
		if id != slot.ID && other.StartTime == slot.StartTime && other.EndTime == slot.EndTime {
			return models.ErrSlotExists
		}
	}
	slot.UpdatedAt = time.Now()
	r.slots[slot.ID] = *slot
	return nil
}

func (r *memorySlotRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.slots[id]; !ok {
		return models.ErrSlotNotFound
	}
	delete(r.slots, id)
	return nil
}

func (r *memorySlotRepo) EnsureIndexes() error { return nil }
