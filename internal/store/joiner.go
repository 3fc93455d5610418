package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jjenkins/hansard/internal/model"
)

// Joiner attaches many-valued children (speakers, attendance) to a batch of
// parent records with a single extra query per batch
type Joiner struct {
	db *DB
}

// NewJoiner creates a new Joiner
func NewJoiner(db *DB) *Joiner {
	return &Joiner{db: db}
}

// SpeakersBySection returns speakers keyed by section id. Only sections with
// at least one speaker appear as keys. Each group is ordered by member name.
func (j *Joiner) SpeakersBySection(ctx context.Context, sectionIDs []string) (map[string][]model.Speaker, error) {
	ids := uniqueIDs(sectionIDs)
	if len(ids) == 0 {
		return map[string][]model.Speaker{}, nil
	}

	p := newPredicates(j.db.dialect)
	query := fmt.Sprintf(`
		SELECT ss.section_id, m.id, m.name, ss.constituency, ss.designation
		FROM section_speakers ss
		JOIN members m ON ss.member_id = m.id
		WHERE ss.section_id IN (%s)
		ORDER BY m.name ASC, m.id ASC
	`, p.list(ids))

	rows, err := j.db.query(ctx, "joiner.speakers", query, p.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get speakers for %d sections: %w", len(ids), err)
	}
	defer rows.Close()

	grouped := make(map[string][]model.Speaker, len(ids))
	for rows.Next() {
		var sectionID string
		var sp model.Speaker
		var constituency, designation sql.NullString
		if err := rows.Scan(&sectionID, &sp.MemberID, &sp.Name, &constituency, &designation); err != nil {
			return nil, fmt.Errorf("failed to scan speaker: %w", err)
		}
		sp.Constituency = nullString(constituency)
		sp.Designation = nullString(designation)
		grouped[sectionID] = append(grouped[sectionID], sp)
	}

	return grouped, rows.Err()
}

// AttachSpeakers fills Speakers on every section. Sections without speakers
// get an empty slice. An empty batch issues no query.
func (j *Joiner) AttachSpeakers(ctx context.Context, sections []model.Section) error {
	if len(sections) == 0 {
		return nil
	}

	ids := make([]string, len(sections))
	for i := range sections {
		ids[i] = sections[i].ID
	}

	grouped, err := j.SpeakersBySection(ctx, ids)
	if err != nil {
		return err
	}

	for i := range sections {
		sections[i].Speakers = orEmpty(grouped[sections[i].ID])
	}
	return nil
}

// AttendanceBySession returns attendance rows keyed by session id, each group
// ordered by member name
func (j *Joiner) AttendanceBySession(ctx context.Context, sessionIDs []string) (map[string][]model.Attendee, error) {
	ids := uniqueIDs(sessionIDs)
	if len(ids) == 0 {
		return map[string][]model.Attendee{}, nil
	}

	p := newPredicates(j.db.dialect)
	query := fmt.Sprintf(`
		SELECT sa.session_id, m.id, m.name, sa.present, sa.constituency, sa.designation
		FROM session_attendance sa
		JOIN members m ON sa.member_id = m.id
		WHERE sa.session_id IN (%s)
		ORDER BY m.name ASC, m.id ASC
	`, p.list(ids))

	rows, err := j.db.query(ctx, "joiner.attendance", query, p.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance for %d sessions: %w", len(ids), err)
	}
	defer rows.Close()

	grouped := make(map[string][]model.Attendee, len(ids))
	for rows.Next() {
		var sessionID string
		var a model.Attendee
		var constituency, designation sql.NullString
		if err := rows.Scan(&sessionID, &a.MemberID, &a.Name, &a.Present, &constituency, &designation); err != nil {
			return nil, fmt.Errorf("failed to scan attendee: %w", err)
		}
		a.Constituency = nullString(constituency)
		a.Designation = nullString(designation)
		grouped[sessionID] = append(grouped[sessionID], a)
	}

	return grouped, rows.Err()
}

// AttachAttendance fills Attendance on every session
func (j *Joiner) AttachAttendance(ctx context.Context, sessions []model.Session) error {
	if len(sessions) == 0 {
		return nil
	}

	ids := make([]string, len(sessions))
	for i := range sessions {
		ids[i] = sessions[i].ID
	}

	grouped, err := j.AttendanceBySession(ctx, ids)
	if err != nil {
		return err
	}

	for i := range sessions {
		sessions[i].Attendance = orEmpty(grouped[sessions[i].ID])
	}
	return nil
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

