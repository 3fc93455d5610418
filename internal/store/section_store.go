package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jjenkins/hansard/internal/model"
)

const sectionColumns = `
	sec.id, sec.session_id, s.date, s.sitting_no, s.url,
	sec.section_type, sec.section_title, sec.content_html, sec.content_plain,
	sec.section_order, sec.category, m.name, m.acronym, sec.ministry_id,
	sec.bill_id, b.title, sec.summary, sec.source_url`

const sectionFrom = `
	FROM sections sec
	JOIN sessions s ON sec.session_id = s.id
	LEFT JOIN ministries m ON sec.ministry_id = m.id
	LEFT JOIN bills b ON sec.bill_id = b.id`

// Sort orders for sections. Ties on the sitting date fall back to the order
// of business within the sitting.
var sectionOrders = map[string]string{
	SortDateDesc: "s.date IS NULL, s.date DESC, sec.section_order ASC, sec.id ASC",
	SortDateAsc:  "s.date IS NULL, s.date ASC, sec.section_order ASC, sec.id ASC",
	SortTitle:    "sec.section_title ASC, s.date IS NULL, s.date DESC, sec.section_order ASC, sec.id ASC",
}

type sectionRow struct {
	ID              string
	SessionID       string
	SessionDate     model.Date
	SittingNo       sql.NullInt64
	SessionURL      sql.NullString
	SectionType     sql.NullString
	SectionTitle    sql.NullString
	ContentHTML     sql.NullString
	ContentPlain    sql.NullString
	SectionOrder    sql.NullInt64
	Category        sql.NullString
	Ministry        sql.NullString
	MinistryAcronym sql.NullString
	MinistryID      sql.NullString
	BillID          sql.NullString
	BillTitle       sql.NullString
	Summary         sql.NullString
	SourceURL       sql.NullString
}

func scanSection(sc scanner) (model.Section, error) {
	var r sectionRow
	err := sc.Scan(
		&r.ID,
		&r.SessionID,
		&r.SessionDate,
		&r.SittingNo,
		&r.SessionURL,
		&r.SectionType,
		&r.SectionTitle,
		&r.ContentHTML,
		&r.ContentPlain,
		&r.SectionOrder,
		&r.Category,
		&r.Ministry,
		&r.MinistryAcronym,
		&r.MinistryID,
		&r.BillID,
		&r.BillTitle,
		&r.Summary,
		&r.SourceURL,
	)
	if err != nil {
		return model.Section{}, err
	}
	return r.toModel(), nil
}

func (r sectionRow) toModel() model.Section {
	return model.Section{
		ID:              r.ID,
		SessionID:       r.SessionID,
		SessionDate:     r.SessionDate,
		SittingNo:       nullInt(r.SittingNo),
		SessionURL:      r.SessionURL.String,
		SectionType:     r.SectionType.String,
		SectionTitle:    r.SectionTitle.String,
		ContentHTML:     r.ContentHTML.String,
		ContentPlain:    r.ContentPlain.String,
		SectionOrder:    nullInt(r.SectionOrder),
		Category:        nullString(r.Category),
		Ministry:        nullString(r.Ministry),
		MinistryAcronym: nullString(r.MinistryAcronym),
		MinistryID:      nullString(r.MinistryID),
		BillID:          nullString(r.BillID),
		BillTitle:       nullString(r.BillTitle),
		Summary:         nullString(r.Summary),
		SourceURL:       nullString(r.SourceURL),
	}
}

// SectionStore handles read queries for sections of business
type SectionStore struct {
	db     *DB
	joiner *Joiner
}

// NewSectionStore creates a new SectionStore
func NewSectionStore(db *DB) *SectionStore {
	return &SectionStore{db: db, joiner: NewJoiner(db)}
}

// sectionPredicates compiles f into WHERE clauses over sectionFrom
func sectionPredicates(d Dialect, f SectionFilter) *predicates {
	p := newPredicates(d)

	if f.Search != "" {
		content := d.textSearch("sec.content_plain", p.arg(d.textSearchArg(f.Search)))
		title := d.containsFold("sec.section_title", p.arg(likePattern(f.Search)))
		p.add("(" + content + " OR " + title + ")")
	}
	if f.MinistryAcronym != "" {
		p.add("m.acronym = " + p.arg(f.MinistryAcronym))
	}
	if f.MinistryID != "" {
		p.add("sec.ministry_id = " + p.arg(f.MinistryID))
	}
	if f.SectionType != "" {
		p.add("sec.section_type = " + p.arg(f.SectionType))
	}
	if f.MemberID != "" {
		p.add("EXISTS (SELECT 1 FROM section_speakers ss WHERE ss.section_id = sec.id AND ss.member_id = " + p.arg(f.MemberID) + ")")
	}
	if f.SessionID != "" {
		p.add("sec.session_id = " + p.arg(f.SessionID))
	}
	if f.BillID != "" {
		p.add("sec.bill_id = " + p.arg(f.BillID))
	}
	p.in("sec.section_type", f.Types)
	p.notIn("sec.section_type", f.ExcludeTypes)
	p.in("sec.category", f.Categories)
	p.dateRange("s.date", f.StartDate, f.EndDate)

	return p
}

// List returns one page of sections matching f, each with its speakers
func (s *SectionStore) List(ctx context.Context, f SectionFilter) (model.Page[model.Section], error) {
	return s.list(ctx, "sections", f)
}

// Questions lists oral and written questions. Bill readings are excluded
// explicitly as well.
func (s *SectionStore) Questions(ctx context.Context, f SectionFilter) (model.Page[model.Section], error) {
	f.Types = model.QuestionTypes
	f.ExcludeTypes = model.BillReadingTypes
	return s.list(ctx, "questions", f)
}

// Motions lists sections categorised as motions or adjournment motions,
// whatever their type
func (s *SectionStore) Motions(ctx context.Context, f SectionFilter) (model.Page[model.Section], error) {
	f.Categories = model.MotionCategories
	return s.list(ctx, "motions", f)
}

func (s *SectionStore) list(ctx context.Context, op string, f SectionFilter) (model.Page[model.Section], error) {
	p := sectionPredicates(s.db.dialect, f)

	order, ok := sectionOrders[f.Sort]
	if !ok {
		order = sectionOrders[SortDateDesc]
	}

	total, err := s.db.count(ctx, op+".count", "SELECT COUNT(*) "+sectionFrom+" "+p.where(), p.snapshot()...)
	if err != nil {
		return model.Page[model.Section]{}, fmt.Errorf("failed to count %s: %w", op, err)
	}

	query := fmt.Sprintf(`SELECT %s %s %s ORDER BY %s %s`,
		sectionColumns, sectionFrom, p.where(), order, p.limitOffset(f.Page))

	sections, err := s.fetch(ctx, op+".list", query, p.args...)
	if err != nil {
		return model.Page[model.Section]{}, fmt.Errorf("failed to get %s: %w", op, err)
	}

	return model.Page[model.Section]{Rows: sections, TotalCount: total}, nil
}

// fetch runs a section query and attaches speakers to the result
func (s *SectionStore) fetch(ctx context.Context, op, query string, args ...any) ([]model.Section, error) {
	rows, err := s.db.query(ctx, op, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sections := []model.Section{}
	for rows.Next() {
		section, err := scanSection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		sections = append(sections, section)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.joiner.AttachSpeakers(ctx, sections); err != nil {
		return nil, err
	}
	return sections, nil
}

// Get retrieves a section by id with its speakers. Returns nil, nil when no
// section has that id.
func (s *SectionStore) Get(ctx context.Context, id string) (*model.Section, error) {
	p := newPredicates(s.db.dialect)
	p.add("sec.id = " + p.arg(id))

	query := fmt.Sprintf(`SELECT %s %s %s`, sectionColumns, sectionFrom, p.where())

	section, err := scanSection(s.db.queryRow(ctx, "sections.get", query, p.args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get section %s: %w", id, err)
	}

	batch := []model.Section{section}
	if err := s.joiner.AttachSpeakers(ctx, batch); err != nil {
		return nil, err
	}
	return &batch[0], nil
}

// ForSession returns every section of a sitting in order of business
func (s *SectionStore) ForSession(ctx context.Context, sessionID string) ([]model.Section, error) {
	p := newPredicates(s.db.dialect)
	p.add("sec.session_id = " + p.arg(sessionID))

	query := fmt.Sprintf(`SELECT %s %s %s ORDER BY sec.section_order ASC, sec.id ASC`,
		sectionColumns, sectionFrom, p.where())

	sections, err := s.fetch(ctx, "sections.for_session", query, p.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get sections for session %s: %w", sessionID, err)
	}
	return sections, nil
}

// ForBill returns every reading and debate of a bill, oldest first
func (s *SectionStore) ForBill(ctx context.Context, billID string) ([]model.Section, error) {
	p := newPredicates(s.db.dialect)
	p.add("sec.bill_id = " + p.arg(billID))

	query := fmt.Sprintf(`SELECT %s %s %s ORDER BY %s`,
		sectionColumns, sectionFrom, p.where(), sectionOrders[SortDateAsc])

	sections, err := s.fetch(ctx, "sections.for_bill", query, p.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get sections for bill %s: %w", billID, err)
	}
	return sections, nil
}

// LatestQuestion returns the first question of the most recent sitting that
// has one, with its first speaker by name as the asker. Returns nil, nil when
// there are no questions.
func (s *SectionStore) LatestQuestion(ctx context.Context) (*model.LatestQuestion, error) {
	p := newPredicates(s.db.dialect)
	p.in("sec.section_type", model.QuestionTypes)
	p.notIn("sec.section_type", model.BillReadingTypes)

	query := fmt.Sprintf(`
		SELECT sec.id, sec.section_title, s.date, m.name
		FROM sections sec
		JOIN sessions s ON sec.session_id = s.id
		LEFT JOIN ministries m ON sec.ministry_id = m.id
		%s
		ORDER BY %s
		LIMIT 1
	`, p.where(), sectionOrders[SortDateDesc])

	var q model.LatestQuestion
	var title, ministry sql.NullString
	err := s.db.queryRow(ctx, "sections.latest_question", query, p.args...).Scan(&q.ID, &title, &q.SessionDate, &ministry)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest question: %w", err)
	}
	q.SectionTitle = title.String
	q.Ministry = nullString(ministry)

	speakers, err := s.joiner.SpeakersBySection(ctx, []string{q.ID})
	if err != nil {
		return nil, err
	}
	if asker := speakers[q.ID]; len(asker) > 0 {
		q.AskerID = &asker[0].MemberID
		q.AskerName = &asker[0].Name
	}

	return &q, nil
}

// RecentMotions returns the latest motions, newest sitting first
func (s *SectionStore) RecentMotions(ctx context.Context, limit int) ([]model.RecentMotion, error) {
	p := newPredicates(s.db.dialect)
	p.in("sec.category", model.MotionCategories)

	query := fmt.Sprintf(`
		SELECT sec.id, sec.section_title, s.date
		FROM sections sec
		JOIN sessions s ON sec.session_id = s.id
		%s
		ORDER BY %s
		%s
	`, p.where(), sectionOrders[SortDateDesc], p.limitOffset(Page{Limit: limit}))

	rows, err := s.db.query(ctx, "sections.recent_motions", query, p.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent motions: %w", err)
	}
	defer rows.Close()

	motions := []model.RecentMotion{}
	for rows.Next() {
		var m model.RecentMotion
		var title sql.NullString
		if err := rows.Scan(&m.ID, &title, &m.SessionDate); err != nil {
			return nil, fmt.Errorf("failed to scan motion: %w", err)
		}
		m.SectionTitle = title.String
		motions = append(motions, m)
	}

	return motions, rows.Err()
}
