package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jjenkins/hansard/internal/model"
)

// StatsStore calculates dataset-wide counts for the home page and the stats
// command
type StatsStore struct {
	db       *DB
	sessions *SessionStore
	now      func() time.Time
}

// NewStatsStore creates a new StatsStore
func NewStatsStore(db *DB) *StatsStore {
	return &StatsStore{db: db, sessions: NewSessionStore(db), now: time.Now}
}

// WithClock returns a copy of the store that reads the current year from now
func (s *StatsStore) WithClock(now func() time.Time) *StatsStore {
	c := *s
	c.now = now
	return &c
}

// Get calculates the dataset summary
func (s *StatsStore) Get(ctx context.Context) (*model.Stats, error) {
	stats := &model.Stats{}

	// Count each table
	counts := []struct {
		table string
		dest  *int
	}{
		{"sessions", &stats.SessionCount},
		{"members", &stats.MemberCount},
		{"bills", &stats.BillCount},
		{"sections", &stats.SectionCount},
	}
	for _, c := range counts {
		n, err := s.db.count(ctx, "stats."+c.table, "SELECT COUNT(*) FROM "+c.table)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", c.table, err)
		}
		*c.dest = n
	}

	sittings, err := s.sessions.CountInYear(ctx, s.now().Year())
	if err != nil {
		return nil, err
	}
	stats.SittingsThisYear = sittings

	latest, err := s.sessions.Latest(ctx)
	if err != nil {
		return nil, err
	}
	stats.LatestSession = latest

	return stats, nil
}
