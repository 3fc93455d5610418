package templates

import (
	"github.com/a-h/templ"
	"github.com/jjenkins/hansard/internal/model"
)

// Bills renders the list of bills
func Bills(p model.Page[model.Bill], v ListView) templ.Component {
	return page("Bills", func(w *writer) {
		w.heading("Bills")
		searchForm(w, v, "Search bills")

		if len(p.Rows) == 0 {
			w.empty("No bills found.")
		} else {
			w.raw(`<table><thead><tr><th>Bill</th><th>Ministry</th><th>First reading</th><th>Status</th></tr></thead><tbody>`)
			for _, b := range p.Rows {
				w.raw(`<tr><td>`)
				w.link(path("bills", b.ID), b.Title)
				w.raw(`</td><td>`)
				w.opt(b.Ministry, "-")
				w.raw(`</td><td>`)
				w.date(b.FirstReadingDate)
				w.raw(`</td><td>`)
				w.text(statusName(b.ReadingStatus))
				w.raw(`</td></tr>`)
			}
			w.raw(`</tbody></table>`)
		}

		pager(w, v, p)
	})
}

// BillDetail renders one bill with every section that debated it
func BillDetail(b *model.Bill, sections []model.Section) templ.Component {
	return page(b.Title, func(w *writer) {
		w.heading(b.Title)
		w.raw(`<dl><dt>Status</dt><dd>`)
		w.text(statusName(b.ReadingStatus))
		w.raw(`</dd><dt>Ministry</dt><dd>`)
		if b.Ministry != nil && b.MinistryID != nil {
			w.link(path("ministries", *b.MinistryID), *b.Ministry)
		} else {
			w.text("-")
		}
		w.raw(`</dd><dt>First reading</dt><dd>`)
		w.date(b.FirstReadingDate)
		w.raw(`</dd>`)
		if b.HasSecondReading {
			w.raw(`<dt>Second reading</dt><dd>`)
			w.date(b.SecondReadingDate)
			w.raw(`</dd>`)
		}
		w.raw(`</dl>`)
		if b.Summary != nil {
			w.raw(`<p class="summary">`)
			w.text(*b.Summary)
			w.raw(`</p>`)
		}

		w.raw(`<section><h2>Readings and debate</h2>`)
		sectionList(w, sections)
		w.raw(`</section>`)
	})
}

func statusName(s model.ReadingStatus) string {
	if s == model.SecondReading {
		return "Second reading"
	}
	return "First reading"
}
