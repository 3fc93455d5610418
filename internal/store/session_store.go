package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jjenkins/hansard/internal/model"
)

const sessionColumns = `
	s.id, s.date, s.sitting_no, s.parliament, s.session_no, s.volume_no,
	s.format, s.url, s.summary, COUNT(DISTINCT sec.id) AS section_count`

const sessionFrom = `
	FROM sessions s
	LEFT JOIN sections sec ON s.id = sec.session_id`

const sessionGroupBy = `
	GROUP BY s.id, s.date, s.sitting_no, s.parliament, s.session_no, s.volume_no,
	         s.format, s.url, s.summary`

// Sort orders for sessions. Null dates sort last in both directions.
var sessionOrders = map[string]string{
	SortDateDesc: "s.date IS NULL, s.date DESC, s.sitting_no DESC, s.id ASC",
	SortDateAsc:  "s.date IS NULL, s.date ASC, s.sitting_no ASC, s.id ASC",
}

// sessionRow maps the sessions columns onto nullable Go types
type sessionRow struct {
	ID           string
	Date         model.Date
	SittingNo    sql.NullInt64
	Parliament   sql.NullInt64
	SessionNo    sql.NullInt64
	VolumeNo     sql.NullInt64
	Format       sql.NullString
	URL          sql.NullString
	Summary      sql.NullString
	SectionCount int
}

func scanSession(sc scanner) (model.Session, error) {
	var r sessionRow
	err := sc.Scan(
		&r.ID,
		&r.Date,
		&r.SittingNo,
		&r.Parliament,
		&r.SessionNo,
		&r.VolumeNo,
		&r.Format,
		&r.URL,
		&r.Summary,
		&r.SectionCount,
	)
	if err != nil {
		return model.Session{}, err
	}
	return r.toModel(), nil
}

func (r sessionRow) toModel() model.Session {
	return model.Session{
		ID:           r.ID,
		Date:         r.Date,
		SittingNo:    nullInt(r.SittingNo),
		Parliament:   nullInt(r.Parliament),
		SessionNo:    nullInt(r.SessionNo),
		VolumeNo:     nullInt(r.VolumeNo),
		Format:       r.Format.String,
		URL:          r.URL.String,
		Summary:      nullString(r.Summary),
		SectionCount: r.SectionCount,
	}
}

// SessionStore handles read queries for sittings
type SessionStore struct {
	db     *DB
	joiner *Joiner
}

// NewSessionStore creates a new SessionStore
func NewSessionStore(db *DB) *SessionStore {
	return &SessionStore{db: db, joiner: NewJoiner(db)}
}

// List returns one page of sittings within the filter's date range, each with
// its section count
func (s *SessionStore) List(ctx context.Context, f SessionFilter) (model.Page[model.Session], error) {
	p := newPredicates(s.db.dialect)
	p.dateRange("s.date", f.StartDate, f.EndDate)

	order, ok := sessionOrders[f.Sort]
	if !ok {
		order = sessionOrders[SortDateDesc]
	}

	total, err := s.db.count(ctx, "sessions.count",
		"SELECT COUNT(*) FROM sessions s "+p.where(), p.snapshot()...)
	if err != nil {
		return model.Page[model.Session]{}, fmt.Errorf("failed to count sessions: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s %s %s %s ORDER BY %s %s`,
		sessionColumns, sessionFrom, p.where(), sessionGroupBy, order, p.limitOffset(f.Page))

	rows, err := s.db.query(ctx, "sessions.list", query, p.args...)
	if err != nil {
		return model.Page[model.Session]{}, fmt.Errorf("failed to get sessions: %w", err)
	}
	defer rows.Close()

	sessions := []model.Session{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return model.Page[model.Session]{}, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return model.Page[model.Session]{}, err
	}

	return model.Page[model.Session]{Rows: sessions, TotalCount: total}, nil
}

// Get retrieves a sitting by id with its attendance attached. Returns nil, nil
// when no sitting has that id.
func (s *SessionStore) Get(ctx context.Context, id string) (*model.Session, error) {
	p := newPredicates(s.db.dialect)
	p.add("s.id = " + p.arg(id))

	query := fmt.Sprintf(`SELECT %s %s %s %s`, sessionColumns, sessionFrom, p.where(), sessionGroupBy)

	session, err := scanSession(s.db.queryRow(ctx, "sessions.get", query, p.args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session %s: %w", id, err)
	}

	batch := []model.Session{session}
	if err := s.joiner.AttachAttendance(ctx, batch); err != nil {
		return nil, err
	}

	return &batch[0], nil
}

// Latest returns the most recent sitting, or nil when there are none
func (s *SessionStore) Latest(ctx context.Context) (*model.Session, error) {
	query := fmt.Sprintf(`SELECT %s %s %s ORDER BY %s LIMIT 1`,
		sessionColumns, sessionFrom, sessionGroupBy, sessionOrders[SortDateDesc])

	session, err := scanSession(s.db.queryRow(ctx, "sessions.latest", query))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest session: %w", err)
	}
	return &session, nil
}

// CountInYear returns the number of sittings held in the given calendar year
func (s *SessionStore) CountInYear(ctx context.Context, year int) (int, error) {
	p := newPredicates(s.db.dialect)
	p.dateRange("date", model.NewDate(year, 1, 1), model.NewDate(year, 12, 31))

	n, err := s.db.count(ctx, "sessions.count_year", "SELECT COUNT(*) FROM sessions "+p.where(), p.args...)
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions in %d: %w", year, err)
	}
	return n, nil
}

// Attendance returns the attendance list of one sitting ordered by member name
func (s *SessionStore) Attendance(ctx context.Context, sessionID string) ([]model.Attendee, error) {
	grouped, err := s.joiner.AttendanceBySession(ctx, []string{sessionID})
	if err != nil {
		return nil, err
	}
	return orEmpty(grouped[sessionID]), nil
}
