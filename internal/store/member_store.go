package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jjenkins/hansard/internal/model"
)

// memberInfo derives each member's counts and their constituency and
// designation from the attendance record of their latest sitting
const memberInfo = `
	WITH member_info AS (
		SELECT
			m.id,
			m.name,
			ms.summary,
			(SELECT COUNT(DISTINCT ss.section_id) FROM section_speakers ss
			  WHERE ss.member_id = m.id) AS section_count,
			(SELECT sa.constituency FROM session_attendance sa
			  JOIN sessions s ON sa.session_id = s.id
			  WHERE sa.member_id = m.id
			  ORDER BY s.date IS NULL, s.date DESC, s.sitting_no DESC LIMIT 1) AS constituency,
			(SELECT sa.designation FROM session_attendance sa
			  JOIN sessions s ON sa.session_id = s.id
			  WHERE sa.member_id = m.id
			  ORDER BY s.date IS NULL, s.date DESC, s.sitting_no DESC LIMIT 1) AS designation,
			(SELECT COUNT(*) FROM session_attendance sa
			  WHERE sa.member_id = m.id) AS attendance_total,
			(SELECT COUNT(*) FROM session_attendance sa
			  WHERE sa.member_id = m.id AND sa.present) AS attendance_present
		FROM members m
		LEFT JOIN member_summaries ms ON m.id = ms.member_id
	)`

const memberColumns = `
	mi.id, mi.name, mi.summary, mi.section_count, mi.constituency, mi.designation,
	mi.attendance_total, mi.attendance_present`

var memberOrders = map[string]string{
	SortName:     "mi.name ASC, mi.id ASC",
	SortSections: "mi.section_count DESC, mi.name ASC, mi.id ASC",
}

func scanMember(sc scanner) (model.Member, error) {
	var m model.Member
	var name, summary, constituency, designation sql.NullString
	err := sc.Scan(
		&m.ID,
		&name,
		&summary,
		&m.SectionCount,
		&constituency,
		&designation,
		&m.AttendanceTotal,
		&m.AttendancePresent,
	)
	if err != nil {
		return model.Member{}, err
	}
	m.Name = name.String
	m.Summary = nullString(summary)
	m.Constituency = nullString(constituency)
	m.Designation = nullString(designation)
	return m, nil
}

// MemberStore handles read queries for members
type MemberStore struct {
	db *DB
}

// NewMemberStore creates a new MemberStore
func NewMemberStore(db *DB) *MemberStore {
	return &MemberStore{db: db}
}

// List returns one page of members. Constituency filters on the member's
// latest recorded constituency.
func (s *MemberStore) List(ctx context.Context, f MemberFilter) (model.Page[model.Member], error) {
	d := s.db.dialect
	p := newPredicates(d)

	if f.Search != "" {
		p.add(d.containsFold("mi.name", p.arg(likePattern(f.Search))))
	}
	if f.Constituency != "" {
		p.add("mi.constituency = " + p.arg(f.Constituency))
	}

	order, ok := memberOrders[f.Sort]
	if !ok {
		order = memberOrders[SortName]
	}

	total, err := s.db.count(ctx, "members.count",
		memberInfo+" SELECT COUNT(*) FROM member_info mi "+p.where(), p.snapshot()...)
	if err != nil {
		return model.Page[model.Member]{}, fmt.Errorf("failed to count members: %w", err)
	}

	query := fmt.Sprintf(`%s SELECT %s FROM member_info mi %s ORDER BY %s %s`,
		memberInfo, memberColumns, p.where(), order, p.limitOffset(f.Page))

	rows, err := s.db.query(ctx, "members.list", query, p.args...)
	if err != nil {
		return model.Page[model.Member]{}, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	members := []model.Member{}
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return model.Page[model.Member]{}, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return model.Page[model.Member]{}, err
	}

	return model.Page[model.Member]{Rows: members, TotalCount: total}, nil
}

// Get retrieves a member by id. Returns nil, nil when no member has that id.
func (s *MemberStore) Get(ctx context.Context, id string) (*model.Member, error) {
	p := newPredicates(s.db.dialect)
	p.add("mi.id = " + p.arg(id))

	query := fmt.Sprintf(`%s SELECT %s FROM member_info mi %s`, memberInfo, memberColumns, p.where())

	member, err := scanMember(s.db.queryRow(ctx, "members.get", query, p.args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member %s: %w", id, err)
	}
	return &member, nil
}

// Attendance returns a member's attendance history, latest sitting first
func (s *MemberStore) Attendance(ctx context.Context, memberID string) ([]model.AttendanceRecord, error) {
	p := newPredicates(s.db.dialect)
	p.add("sa.member_id = " + p.arg(memberID))

	query := fmt.Sprintf(`
		SELECT sa.session_id, s.date, s.sitting_no, sa.present
		FROM session_attendance sa
		JOIN sessions s ON sa.session_id = s.id
		%s
		ORDER BY s.date IS NULL, s.date DESC, s.sitting_no DESC, sa.session_id ASC
	`, p.where())

	rows, err := s.db.query(ctx, "members.attendance", query, p.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance for member %s: %w", memberID, err)
	}
	defer rows.Close()

	records := []model.AttendanceRecord{}
	for rows.Next() {
		var r model.AttendanceRecord
		var sitting sql.NullInt64
		if err := rows.Scan(&r.SessionID, &r.Date, &sitting, &r.Present); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		r.SittingNo = nullInt(sitting)
		records = append(records, r)
	}

	return records, rows.Err()
}
