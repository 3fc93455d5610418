package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/jjenkins/hansard/internal/store"
	"github.com/jjenkins/hansard/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsStore_Get(t *testing.T) {
	db := storetest.Open(t)
	clock := func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	stats := store.NewStatsStore(db).WithClock(clock)

	got, err := stats.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, got.SessionCount)
	assert.Equal(t, 4, got.MemberCount)
	assert.Equal(t, 3, got.BillCount)
	assert.Equal(t, 9, got.SectionCount)
	assert.Equal(t, 2, got.SittingsThisYear)
	require.NotNil(t, got.LatestSession)
	assert.Equal(t, "S124", got.LatestSession.ID)
}

func TestStatsStore_Empty(t *testing.T) {
	db := storetest.OpenEmpty(t)

	got, err := store.NewStatsStore(db).Get(context.Background())
	require.NoError(t, err)

	assert.Zero(t, got.SessionCount)
	assert.Zero(t, got.SittingsThisYear)
	assert.Nil(t, got.LatestSession)
}
