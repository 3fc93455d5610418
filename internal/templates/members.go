package templates

import (
	"fmt"

	"github.com/a-h/templ"
	"github.com/jjenkins/hansard/internal/model"
)

// Members renders the list of members
func Members(p model.Page[model.Member], v ListView) templ.Component {
	return page("Members", func(w *writer) {
		w.heading("Members")
		searchForm(w, v, "Search members by name")

		if len(p.Rows) == 0 {
			w.empty("No members found.")
		} else {
			w.raw(`<table><thead><tr><th>Name</th><th>Constituency</th><th>Designation</th><th>Sections</th></tr></thead><tbody>`)
			for _, m := range p.Rows {
				w.raw(`<tr><td>`)
				w.link(path("members", m.ID), m.Name)
				w.raw(`</td><td>`)
				w.opt(m.Constituency, "-")
				w.raw(`</td><td>`)
				w.opt(m.Designation, "-")
				w.raw(`</td><td>`)
				w.textf("%d", m.SectionCount)
				w.raw(`</td></tr>`)
			}
			w.raw(`</tbody></table>`)
		}

		pager(w, v, p)
	})
}

// MemberDetail renders a member with their recent sections and attendance
func MemberDetail(m *model.Member, sections model.Page[model.Section], attendance []model.AttendanceRecord, v ListView) templ.Component {
	return page(m.Name, func(w *writer) {
		w.heading(m.Name)
		w.raw(`<p>`)
		w.opt(m.Constituency, "No constituency recorded")
		if m.Designation != nil {
			w.raw(` &middot; `)
			w.text(*m.Designation)
		}
		w.raw(`</p>`)
		if m.Summary != nil {
			w.raw(`<p class="summary">`)
			w.text(*m.Summary)
			w.raw(`</p>`)
		}
		if m.AttendanceTotal > 0 {
			w.raw(`<p>`)
			w.text(fmt.Sprintf("Attended %d of %d sittings (%.0f%%)",
				m.AttendancePresent, m.AttendanceTotal, m.AttendanceRate()*100))
			w.raw(`</p>`)
		}

		w.raw(`<section><h2>`)
		w.textf("Contributions (%d)", m.SectionCount)
		w.raw(`</h2>`)
		sectionList(w, sections.Rows)
		pager(w, v, sections)
		w.raw(`</section>`)

		w.raw(`<section><h2>Attendance</h2><ul>`)
		for _, a := range attendance {
			w.raw(`<li>`)
			w.link(path("sessions", a.SessionID), dateText(a.Date))
			if !a.Present {
				w.raw(` <span class="tag">absent</span>`)
			}
			w.raw(`</li>`)
		}
		w.raw(`</ul></section>`)
	})
}
