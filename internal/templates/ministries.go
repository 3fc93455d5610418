package templates

import (
	"github.com/a-h/templ"
	"github.com/jjenkins/hansard/internal/model"
)

// Ministries renders every ministry
func Ministries(ministries []model.Ministry) templ.Component {
	return page("Ministries", func(w *writer) {
		w.heading("Ministries")

		if len(ministries) == 0 {
			w.empty("No ministries found.")
			return
		}
		w.raw(`<table><thead><tr><th>Ministry</th><th>Acronym</th><th>Sections</th></tr></thead><tbody>`)
		for _, m := range ministries {
			w.raw(`<tr><td>`)
			w.link(path("ministries", m.ID), m.Name)
			w.raw(`</td><td>`)
			w.text(m.Acronym)
			w.raw(`</td><td>`)
			w.textf("%d", m.SectionCount)
			w.raw(`</td></tr>`)
		}
		w.raw(`</tbody></table>`)
	})
}

// MinistryDetail renders a ministry with its sections and bills
func MinistryDetail(m *model.Ministry, sections model.Page[model.Section], bills []model.Bill, v ListView) templ.Component {
	return page(m.Name, func(w *writer) {
		w.heading(m.Name)

		if len(bills) > 0 {
			w.raw(`<section><h2>Bills</h2><ul>`)
			for _, b := range bills {
				w.raw(`<li>`)
				w.link(path("bills", b.ID), b.Title)
				w.raw(` `)
				w.text(statusName(b.ReadingStatus))
				w.raw(`</li>`)
			}
			w.raw(`</ul></section>`)
		}

		w.raw(`<section><h2>`)
		w.textf("Sections (%d)", m.SectionCount)
		w.raw(`</h2>`)
		sectionList(w, sections.Rows)
		pager(w, v, sections)
		w.raw(`</section>`)
	})
}
