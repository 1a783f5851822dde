package memoryRepo_test

import (
	"context"
	"testing"
	"time"

	memoryRepo "futsal/database/repository/memory"
	"futsal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureIndexesAreNoOps(t *testing.T) {
	assert.NoError(t, memoryRepo.NewSlotRepo().EnsureIndexes())
	assert.NoError(t, memoryRepo.NewBookingRepo().EnsureIndexes())
	assert.NoError(t, memoryRepo.NewSubscriptionRepo().EnsureIndexes())
}

func TestBookingUpdateKeepsSlotDateUnique(t *testing.T) {
	repo := memoryRepo.NewBookingRepo()
	ctx := context.Background()

	day1 := time.Date(2024, 1, 14, 21, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	first := &models.Booking{SlotID: "slot-1", Date: day1, OTP: "AAAA2222"}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, &models.Booking{SlotID: "slot-1", Date: day2, OTP: "BBBB3333"}))

	// Moving a booking onto an occupied (slotId,date) pair is rejected,
	// same as the unique index on the Mongo collection.
	moved := *first
	moved.Date = day2
	assert.ErrorIs(t, repo.Update(ctx, &moved), models.ErrSlotTaken)

	kept, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, kept.Date.Equal(day1))
}
