package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jjenkins/hansard/internal/model"
)

// MinistryStore handles read queries for ministries
type MinistryStore struct {
	db *DB
}

// NewMinistryStore creates a new MinistryStore
func NewMinistryStore(db *DB) *MinistryStore {
	return &MinistryStore{db: db}
}

// List retrieves all ministries by name with their section counts
func (s *MinistryStore) List(ctx context.Context) ([]model.Ministry, error) {
	query := `
		SELECT m.id, m.name, m.acronym, COUNT(sec.id) AS section_count
		FROM ministries m
		LEFT JOIN sections sec ON m.id = sec.ministry_id
		GROUP BY m.id, m.name, m.acronym
		ORDER BY m.name ASC, m.id ASC
	`

	rows, err := s.db.query(ctx, "ministries.list", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get ministries: %w", err)
	}
	defer rows.Close()

	ministries := []model.Ministry{}
	for rows.Next() {
		m, err := scanMinistry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ministry: %w", err)
		}
		ministries = append(ministries, m)
	}

	return ministries, rows.Err()
}

// Get retrieves a ministry by id. Returns nil, nil when no ministry has that id.
func (s *MinistryStore) Get(ctx context.Context, id string) (*model.Ministry, error) {
	p := newPredicates(s.db.dialect)
	p.add("m.id = " + p.arg(id))

	query := fmt.Sprintf(`
		SELECT m.id, m.name, m.acronym, COUNT(sec.id) AS section_count
		FROM ministries m
		LEFT JOIN sections sec ON m.id = sec.ministry_id
		%s
		GROUP BY m.id, m.name, m.acronym
	`, p.where())

	m, err := scanMinistry(s.db.queryRow(ctx, "ministries.get", query, p.args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ministry %s: %w", id, err)
	}
	return &m, nil
}

func scanMinistry(sc scanner) (model.Ministry, error) {
	var m model.Ministry
	var name, acronym sql.NullString
	if err := sc.Scan(&m.ID, &name, &acronym, &m.SectionCount); err != nil {
		return model.Ministry{}, err
	}
	m.Name = name.String
	m.Acronym = acronym.String
	return m, nil
}
