package store

import (
	"testing"

	"github.com/jjenkins/hansard/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestPageNormalize(t *testing.T) {
	tests := []struct {
		in, want Page
	}{
		{Page{}, Page{Limit: DefaultLimit}},
		{Page{Limit: -3, Offset: -1}, Page{Limit: DefaultLimit}},
		{Page{Limit: 1, Offset: 7}, Page{Limit: 1, Offset: 7}},
		{Page{Limit: 5000}, Page{Limit: MaxLimit}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.normalize())
	}
}

func TestPredicates(t *testing.T) {
	t.Run("postgres numbers placeholders", func(t *testing.T) {
		p := newPredicates(Postgres)
		p.add("a = " + p.arg("x"))
		p.in("b", []string{"1", "2"})
		p.notIn("c", nil)
		p.dateRange("d", model.NewDate(2024, 1, 1), model.Date{})

		assert.Equal(t, "WHERE a = $1 AND b IN ($2, $3) AND d >= $4", p.where())
		assert.Equal(t, []any{"x", "1", "2", "2024-01-01"}, p.args)
		assert.Equal(t, "LIMIT $5 OFFSET $6", p.limitOffset(Page{Limit: 10}))
	})

	t.Run("sqlite uses positional markers", func(t *testing.T) {
		p := newPredicates(SQLite)
		p.notIn("t", []string{"BI", "BP"})
		p.dateRange("d", model.Date{}, model.NewDate(2024, 12, 31))

		assert.Equal(t, "WHERE t NOT IN (?, ?) AND d <= ?", p.where())
	})

	t.Run("no clauses", func(t *testing.T) {
		assert.Empty(t, newPredicates(SQLite).where())
	})

	t.Run("snapshot is not affected by later binds", func(t *testing.T) {
		p := newPredicates(SQLite)
		p.arg("a")
		snap := p.snapshot()
		p.arg("b")

		assert.Equal(t, []any{"a"}, snap)
	})
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%health%", likePattern("health"))
	assert.Equal(t, `%100\%%`, likePattern("100%"))
	assert.Equal(t, `%a\_b%`, likePattern("a_b"))
	assert.Equal(t, `%c:\\d%`, likePattern(`c:\d`))
}

func TestDialect(t *testing.T) {
	_, err := dialectFor("mysql")
	assert.Error(t, err)

	d, err := dialectFor("sqlite")
	assert.NoError(t, err)
	assert.Equal(t, SQLite, d)

	assert.Contains(t, Postgres.textSearch("c", "$1"), "plainto_tsquery('english', $1)")
	assert.Contains(t, Postgres.containsFold("t", "$2"), "ILIKE $2")
	assert.Equal(t, "q", Postgres.textSearchArg("q"))
	assert.Equal(t, "%q%", SQLite.textSearchArg("q"))
}

func TestCollapseSessionBills(t *testing.T) {
	ministry := "Ministry of Finance"
	rows := []billReadingRow{
		{BillID: "B2", BillTitle: "Levy", SectionTitle: "Levy (first)", Ministry: &ministry, SectionType: "BI", SectionOrder: 1},
		{BillID: "B1", BillTitle: "Health", SectionTitle: "Health", SectionType: "BI", SectionOrder: 2},
		{BillID: "B2", BillTitle: "Levy", SectionTitle: "Levy (second)", SectionType: "BP", SectionOrder: 3},
	}

	got := collapseSessionBills(rows)

	assert.Equal(t, []model.SessionBill{
		{BillID: "B2", BillTitle: "Levy", SectionTitle: "Levy (first)", Ministry: &ministry, ReadingTypes: []string{"BI", "BP"}, SectionOrder: 1},
		{BillID: "B1", BillTitle: "Health", SectionTitle: "Health", ReadingTypes: []string{"BI"}, SectionOrder: 2},
	}, got)

	assert.Equal(t, []model.SessionBill{}, collapseSessionBills(nil))
}
