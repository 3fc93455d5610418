package store_test

import (
	"context"
	"testing"

	"github.com/jjenkins/hansard/internal/model"
	"github.com/jjenkins/hansard/internal/store"
	"github.com/jjenkins/hansard/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func billID(b model.Bill) string { return b.ID }

func TestBillStore_List(t *testing.T) {
	db := storetest.Open(t)
	bills := store.NewBillStore(db)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter store.BillFilter
		want   []string
	}{
		{"latest first reading first, undated last", store.BillFilter{}, []string{"B2", "B1", "B3"}},
		{"title search", store.BillFilter{Search: "levy"}, []string{"B2"}},
		{"debated content search", store.BillFilter{Search: "road pricing"}, []string{"B2"}},
		{"ministry", store.BillFilter{MinistryID: "m-moh"}, []string{"B1"}},
		{"no match", store.BillFilter{Search: "nonexistent"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := bills.List(ctx, tt.filter)
			require.NoError(t, err)

			assert.Equal(t, tt.want, ids(page.Rows, billID))
			assert.Equal(t, len(tt.want), page.TotalCount)
		})
	}
}

func TestBillStore_SecondReadingIsDerived(t *testing.T) {
	db := storetest.Open(t)
	bills := store.NewBillStore(db)
	sections := store.NewSectionStore(db)
	ctx := context.Background()

	page, err := bills.List(ctx, store.BillFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, page.Rows)

	for _, b := range page.Rows {
		debates, err := sections.ForBill(ctx, b.ID)
		require.NoError(t, err)

		want := false
		for _, s := range debates {
			if s.SectionType == model.TypeBillSecondReading {
				want = true
			}
		}
		assert.Equal(t, want, b.HasSecondReading, b.ID)
		assert.Equal(t, model.ReadingStatusOf(want), b.ReadingStatus, b.ID)
	}
}

func TestBillStore_Get(t *testing.T) {
	db := storetest.Open(t)
	bills := store.NewBillStore(db)
	ctx := context.Background()

	t.Run("first reading only", func(t *testing.T) {
		b, err := bills.Get(ctx, "B1")
		require.NoError(t, err)
		require.NotNil(t, b)

		assert.Equal(t, "Healthcare Services Bill", b.Title)
		assert.False(t, b.HasSecondReading)
		assert.Equal(t, model.FirstReadingOnly, b.ReadingStatus)
		assert.Equal(t, "2024-02-05", b.FirstReadingDate.String())
		require.NotNil(t, b.FirstReadingSessionID)
		assert.Equal(t, "S123", *b.FirstReadingSessionID)
		assert.False(t, b.SecondReadingDate.Valid)
		assert.Nil(t, b.SecondReadingSessionID)
		require.NotNil(t, b.MinistryAcronym)
		assert.Equal(t, "MOH", *b.MinistryAcronym)
	})

	t.Run("second reading", func(t *testing.T) {
		b, err := bills.Get(ctx, "B2")
		require.NoError(t, err)
		require.NotNil(t, b)

		assert.True(t, b.HasSecondReading)
		assert.Equal(t, model.SecondReading, b.ReadingStatus)
		assert.Equal(t, "2024-03-04", b.SecondReadingDate.String())
		require.NotNil(t, b.SecondReadingSessionID)
		assert.Equal(t, "S124", *b.SecondReadingSessionID)
	})

	t.Run("no ministry", func(t *testing.T) {
		b, err := bills.Get(ctx, "B3")
		require.NoError(t, err)
		require.NotNil(t, b)

		assert.Nil(t, b.Ministry)
		assert.Nil(t, b.MinistryID)
		assert.False(t, b.FirstReadingDate.Valid)
	})

	t.Run("missing", func(t *testing.T) {
		b, err := bills.Get(ctx, "B404")
		require.NoError(t, err)
		assert.Nil(t, b)
	})
}

func TestBillStore_ForSession(t *testing.T) {
	db := storetest.Open(t)
	bills := store.NewBillStore(db)
	ctx := context.Background()

	got, err := bills.ForSession(ctx, "S124")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "B2", got[0].BillID)
	assert.Equal(t, "Transport Levy Bill", got[0].BillTitle)
	assert.Equal(t, []string{"BI", "BP"}, got[0].ReadingTypes)
	assert.Equal(t, 1, got[0].SectionOrder)
	require.NotNil(t, got[0].Ministry)
	assert.Equal(t, "Ministry of Finance", *got[0].Ministry)

	got, err = bills.ForSession(ctx, "S100")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestBillStore_Readings(t *testing.T) {
	db := storetest.Open(t)
	bills := store.NewBillStore(db)
	ctx := context.Background()

	recent, err := bills.RecentReadings(ctx, 5)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "B2", recent[0].BillID)
	assert.Equal(t, model.TypeBillSecondReading, recent[0].SectionType)
	assert.Equal(t, "B1", recent[1].BillID)
	assert.Equal(t, model.TypeBillIntroduced, recent[1].SectionType)

	recent, err = bills.RecentReadings(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, recent, 1)

	last, err := bills.ReadingsFromLastSitting(ctx)
	require.NoError(t, err)
	require.Len(t, last, 2)
	assert.Equal(t, []string{"BI", "BP"}, []string{last[0].SectionType, last[1].SectionType})
	for _, r := range last {
		assert.Equal(t, "2024-03-04", r.SessionDate.String())
	}
}
