package store

import (
	"strings"

	"github.com/jjenkins/hansard/internal/model"
)

const (
	DefaultLimit = 20
	MaxLimit     = 200
)

// Sort keys accepted by the list operations
const (
	SortDateDesc = "date_desc"
	SortDateAsc  = "date_asc"
	SortTitle    = "title"
	SortName     = "name"
	SortSections = "sections"
)

// Page is an offset-based window over a filtered list. Limit <= 0 means
// DefaultLimit and a Limit above MaxLimit is clamped to it; a negative Offset
// is treated as 0.
type Page struct {
	Limit  int
	Offset int
}

func (p Page) normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// SessionFilter selects sittings by date range
type SessionFilter struct {
	StartDate model.Date
	EndDate   model.Date
	Sort      string
	Page
}

// SectionFilter selects sections. Empty fields do not constrain.
type SectionFilter struct {
	Search          string
	MinistryAcronym string
	MinistryID      string
	SectionType     string
	MemberID        string
	SessionID       string
	BillID          string
	Types           []string
	ExcludeTypes    []string
	Categories      []string
	StartDate       model.Date
	EndDate         model.Date
	Sort            string
	Page
}

// BillFilter selects bills
type BillFilter struct {
	Search     string
	MinistryID string
	Page
}

// MemberFilter selects members by name and latest constituency
type MemberFilter struct {
	Search       string
	Constituency string
	Sort         string
	Page
}

// predicates accumulates WHERE clauses and their bind arguments, numbering
// placeholders in the dialect's style
type predicates struct {
	dialect Dialect
	clauses []string
	args    []any
}

func newPredicates(d Dialect) *predicates {
	return &predicates{dialect: d}
}

// arg binds v and returns its placeholder
func (p *predicates) arg(v any) string {
	p.args = append(p.args, v)
	return p.dialect.Placeholder(len(p.args))
}

func (p *predicates) add(clause string) {
	p.clauses = append(p.clauses, clause)
}

// in adds "col IN (...)" for a non-empty set
func (p *predicates) in(col string, values []string) {
	if len(values) == 0 {
		return
	}
	p.add(col + " IN (" + p.list(values) + ")")
}

// notIn adds "col NOT IN (...)" for a non-empty set
func (p *predicates) notIn(col string, values []string) {
	if len(values) == 0 {
		return
	}
	p.add(col + " NOT IN (" + p.list(values) + ")")
}

func (p *predicates) list(values []string) string {
	phs := make([]string, len(values))
	for i, v := range values {
		phs[i] = p.arg(v)
	}
	return strings.Join(phs, ", ")
}

// dateRange constrains col to [start, end]; null bounds are open
func (p *predicates) dateRange(col string, start, end model.Date) {
	if start.Valid {
		p.add(col + " >= " + p.arg(start.String()))
	}
	if end.Valid {
		p.add(col + " <= " + p.arg(end.String()))
	}
}

func (p *predicates) where() string {
	if len(p.clauses) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(p.clauses, " AND ")
}

// snapshot returns the arguments bound so far, safe from later appends
func (p *predicates) snapshot() []any {
	return append([]any(nil), p.args...)
}

// limitOffset binds the page window and returns the clause
func (p *predicates) limitOffset(page Page) string {
	page = page.normalize()
	return "LIMIT " + p.arg(page.Limit) + " OFFSET " + p.arg(page.Offset)
}
