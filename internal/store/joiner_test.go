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

func TestJoiner_SpeakersBySection(t *testing.T) {
	db := storetest.Open(t)
	joiner := store.NewJoiner(db)

	grouped, err := joiner.SpeakersBySection(context.Background(), []string{"sec-1", "sec-2", "sec-3", "sec-1", "sec-404"})
	require.NoError(t, err)

	keys := make([]string, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{"sec-1", "sec-3"}, keys)
	assert.Equal(t, []string{"Alice Tan", "Bob Lim"},
		ids(grouped["sec-1"], func(s model.Speaker) string { return s.Name }))
}

func TestJoiner_AttachSpeakers(t *testing.T) {
	db := storetest.Open(t)
	obs := &storetest.Observer{}
	db.SetObserver(obs)
	joiner := store.NewJoiner(db)
	ctx := context.Background()

	t.Run("one query per batch", func(t *testing.T) {
		obs.Reset()
		batch := []model.Section{{ID: "sec-2"}, {ID: "sec-5"}, {ID: "sec-6"}}

		require.NoError(t, joiner.AttachSpeakers(ctx, batch))

		assert.Equal(t, []string{"joiner.speakers"}, obs.Ops())
		assert.NotNil(t, batch[0].Speakers)
		assert.Empty(t, batch[0].Speakers)
		assert.Equal(t, []string{"Bob Lim", "Chen Wei"},
			ids(batch[1].Speakers, func(s model.Speaker) string { return s.Name }))
		assert.Len(t, batch[2].Speakers, 1)
	})

	t.Run("empty batch issues no query", func(t *testing.T) {
		obs.Reset()

		require.NoError(t, joiner.AttachSpeakers(ctx, nil))
		require.NoError(t, joiner.AttachSpeakers(ctx, []model.Section{}))

		assert.Empty(t, obs.Ops())
	})
}

func TestJoiner_AttachAttendance(t *testing.T) {
	db := storetest.Open(t)
	obs := &storetest.Observer{}
	db.SetObserver(obs)
	joiner := store.NewJoiner(db)
	ctx := context.Background()

	batch := []model.Session{{ID: "S100"}, {ID: "S999"}, {ID: "S124"}}
	require.NoError(t, joiner.AttachAttendance(ctx, batch))

	assert.Equal(t, []string{"joiner.attendance"}, obs.Ops())
	assert.Len(t, batch[0].Attendance, 2)
	assert.NotNil(t, batch[1].Attendance)
	assert.Empty(t, batch[1].Attendance)
	assert.Len(t, batch[2].Attendance, 3)

	obs.Reset()
	require.NoError(t, joiner.AttachAttendance(ctx, nil))
	assert.Empty(t, obs.Ops())
}
