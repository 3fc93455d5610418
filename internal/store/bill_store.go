package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jjenkins/hansard/internal/model"
)

// The second reading is the earliest BP section referencing the bill
const billColumns = `
	b.id, b.title, b.ministry_id, m.name, m.acronym,
	b.first_reading_date, b.first_reading_session_id,
	(SELECT s2.date FROM sections bp JOIN sessions s2 ON bp.session_id = s2.id
	  WHERE bp.bill_id = b.id AND bp.section_type = 'BP'
	  ORDER BY s2.date ASC, bp.section_order ASC LIMIT 1) AS second_reading_date,
	(SELECT bp.session_id FROM sections bp JOIN sessions s2 ON bp.session_id = s2.id
	  WHERE bp.bill_id = b.id AND bp.section_type = 'BP'
	  ORDER BY s2.date ASC, bp.section_order ASC LIMIT 1) AS second_reading_session_id,
	EXISTS (SELECT 1 FROM sections bp WHERE bp.bill_id = b.id AND bp.section_type = 'BP') AS has_second_reading,
	b.summary`

const billFrom = `
	FROM bills b
	LEFT JOIN ministries m ON b.ministry_id = m.id`

const billOrder = "b.first_reading_date IS NULL, b.first_reading_date DESC, b.title ASC, b.id ASC"

type billRow struct {
	ID                     string
	Title                  sql.NullString
	MinistryID             sql.NullString
	Ministry               sql.NullString
	MinistryAcronym        sql.NullString
	FirstReadingDate       model.Date
	FirstReadingSessionID  sql.NullString
	SecondReadingDate      model.Date
	SecondReadingSessionID sql.NullString
	HasSecondReading       bool
	Summary                sql.NullString
}

func scanBill(sc scanner) (model.Bill, error) {
	var r billRow
	err := sc.Scan(
		&r.ID,
		&r.Title,
		&r.MinistryID,
		&r.Ministry,
		&r.MinistryAcronym,
		&r.FirstReadingDate,
		&r.FirstReadingSessionID,
		&r.SecondReadingDate,
		&r.SecondReadingSessionID,
		&r.HasSecondReading,
		&r.Summary,
	)
	if err != nil {
		return model.Bill{}, err
	}
	return r.toModel(), nil
}

func (r billRow) toModel() model.Bill {
	return model.Bill{
		ID:                     r.ID,
		Title:                  r.Title.String,
		MinistryID:             nullString(r.MinistryID),
		Ministry:               nullString(r.Ministry),
		MinistryAcronym:        nullString(r.MinistryAcronym),
		FirstReadingDate:       r.FirstReadingDate,
		FirstReadingSessionID:  nullString(r.FirstReadingSessionID),
		SecondReadingDate:      r.SecondReadingDate,
		SecondReadingSessionID: nullString(r.SecondReadingSessionID),
		HasSecondReading:       r.HasSecondReading,
		ReadingStatus:          model.ReadingStatusOf(r.HasSecondReading),
		Summary:                nullString(r.Summary),
	}
}

// BillStore handles read queries for bills
type BillStore struct {
	db *DB
}

// NewBillStore creates a new BillStore
func NewBillStore(db *DB) *BillStore {
	return &BillStore{db: db}
}

// List returns one page of bills, latest first reading first. Search matches
// the bill title or the content of any section debating the bill.
func (s *BillStore) List(ctx context.Context, f BillFilter) (model.Page[model.Bill], error) {
	d := s.db.dialect
	p := newPredicates(d)

	if f.Search != "" {
		title := d.containsFold("b.title", p.arg(likePattern(f.Search)))
		content := d.textSearch("bs.content_plain", p.arg(d.textSearchArg(f.Search)))
		p.add("(" + title + " OR EXISTS (SELECT 1 FROM sections bs WHERE bs.bill_id = b.id AND " + content + "))")
	}
	if f.MinistryID != "" {
		p.add("b.ministry_id = " + p.arg(f.MinistryID))
	}

	total, err := s.db.count(ctx, "bills.count", "SELECT COUNT(*) "+billFrom+" "+p.where(), p.snapshot()...)
	if err != nil {
		return model.Page[model.Bill]{}, fmt.Errorf("failed to count bills: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s %s %s ORDER BY %s %s`,
		billColumns, billFrom, p.where(), billOrder, p.limitOffset(f.Page))

	rows, err := s.db.query(ctx, "bills.list", query, p.args...)
	if err != nil {
		return model.Page[model.Bill]{}, fmt.Errorf("failed to get bills: %w", err)
	}
	defer rows.Close()

	bills := []model.Bill{}
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return model.Page[model.Bill]{}, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return model.Page[model.Bill]{}, err
	}

	return model.Page[model.Bill]{Rows: bills, TotalCount: total}, nil
}

// Get retrieves a bill by id. Returns nil, nil when no bill has that id.
func (s *BillStore) Get(ctx context.Context, id string) (*model.Bill, error) {
	p := newPredicates(s.db.dialect)
	p.add("b.id = " + p.arg(id))

	query := fmt.Sprintf(`SELECT %s %s %s`, billColumns, billFrom, p.where())

	bill, err := scanBill(s.db.queryRow(ctx, "bills.get", query, p.args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill %s: %w", id, err)
	}
	return &bill, nil
}

// ForSession returns the bills read at a sitting, one entry per bill with
// every reading type recorded for it, in order of business
func (s *BillStore) ForSession(ctx context.Context, sessionID string) ([]model.SessionBill, error) {
	p := newPredicates(s.db.dialect)
	p.add("sec.session_id = " + p.arg(sessionID))
	p.add("sec.bill_id IS NOT NULL")

	query := fmt.Sprintf(`
		SELECT sec.bill_id, b.title, sec.section_title, m.name, sec.ministry_id,
		       sec.section_type, sec.section_order
		FROM sections sec
		LEFT JOIN ministries m ON sec.ministry_id = m.id
		LEFT JOIN bills b ON sec.bill_id = b.id
		%s
		ORDER BY sec.section_order ASC, sec.id ASC
	`, p.where())

	rows, err := s.db.query(ctx, "bills.for_session", query, p.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get bills for session %s: %w", sessionID, err)
	}
	defer rows.Close()

	var readings []billReadingRow
	for rows.Next() {
		var r billReadingRow
		var billTitle, sectionTitle, ministry, ministryID, sectionType sql.NullString
		var order sql.NullInt64
		if err := rows.Scan(&r.BillID, &billTitle, &sectionTitle, &ministry, &ministryID, &sectionType, &order); err != nil {
			return nil, fmt.Errorf("failed to scan bill reading: %w", err)
		}
		r.BillTitle = billTitle.String
		r.SectionTitle = sectionTitle.String
		r.Ministry = nullString(ministry)
		r.MinistryID = nullString(ministryID)
		r.SectionType = sectionType.String
		r.SectionOrder = nullInt(order)
		readings = append(readings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return collapseSessionBills(readings), nil
}

// RecentReadings returns the latest reading of each bill, most recent first
func (s *BillStore) RecentReadings(ctx context.Context, limit int) ([]model.BillReading, error) {
	p := newPredicates(s.db.dialect)

	query := fmt.Sprintf(`
		SELECT bill_id, bill_title, section_type, session_date, ministry, section_order
		FROM (
			SELECT b.id AS bill_id, b.title AS bill_title, sec.section_type,
			       s.date AS session_date, m.name AS ministry, sec.section_order,
			       ROW_NUMBER() OVER (
			           PARTITION BY b.id
			           ORDER BY s.date DESC, sec.section_order DESC
			       ) AS rn
			FROM sections sec
			JOIN sessions s ON sec.session_id = s.id
			JOIN bills b ON sec.bill_id = b.id
			LEFT JOIN ministries m ON b.ministry_id = m.id
		) ranked
		WHERE rn = 1
		ORDER BY session_date IS NULL, session_date DESC, bill_id ASC
		%s
	`, p.limitOffset(Page{Limit: limit}))

	readings, err := s.readings(ctx, "bills.recent_readings", query, p.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent bill readings: %w", err)
	}
	return readings, nil
}

// ReadingsFromLastSitting returns the bill readings of the most recent sitting
func (s *BillStore) ReadingsFromLastSitting(ctx context.Context) ([]model.BillReading, error) {
	query := `
		SELECT DISTINCT b.id, b.title, sec.section_type, s.date, m.name, sec.section_order
		FROM sections sec
		JOIN sessions s ON sec.session_id = s.id
		JOIN bills b ON sec.bill_id = b.id
		LEFT JOIN ministries m ON b.ministry_id = m.id
		WHERE s.date = (SELECT MAX(date) FROM sessions)
		ORDER BY sec.section_order ASC, b.id ASC
	`

	readings, err := s.readings(ctx, "bills.last_sitting", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get bill readings from last sitting: %w", err)
	}
	return readings, nil
}

// readings scans bill_id, title, section_type, date, ministry, section_order rows
func (s *BillStore) readings(ctx context.Context, op, query string, args ...any) ([]model.BillReading, error) {
	rows, err := s.db.query(ctx, op, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	readings := []model.BillReading{}
	for rows.Next() {
		var r model.BillReading
		var title, sectionType, ministry sql.NullString
		var order sql.NullInt64
		if err := rows.Scan(&r.BillID, &title, &sectionType, &r.SessionDate, &ministry, &order); err != nil {
			return nil, fmt.Errorf("failed to scan bill reading: %w", err)
		}
		r.BillTitle = title.String
		r.SectionType = sectionType.String
		r.Ministry = nullString(ministry)
		readings = append(readings, r)
	}

	return readings, rows.Err()
}
