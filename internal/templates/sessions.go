package templates

import (
	"fmt"

	"github.com/a-h/templ"
	"github.com/jjenkins/hansard/internal/model"
)

func sessionLabel(s model.Session) string {
	if !s.Date.Valid {
		return fmt.Sprintf("Sitting %d", s.SittingNo)
	}
	return fmt.Sprintf("Sitting %d, %s", s.SittingNo, s.Date.Time.Format("2 January 2006"))
}

// Sessions renders the list of sittings
func Sessions(p model.Page[model.Session], v ListView) templ.Component {
	return page("Sittings", func(w *writer) {
		w.heading("Sittings")

		w.raw(`<form method="get" action="/sessions">`)
		w.raw(`<label>From <input type="date" name="startDate" value="`)
		w.text(v.Query.Get("startDate"))
		w.raw(`"></label> <label>To <input type="date" name="endDate" value="`)
		w.text(v.Query.Get("endDate"))
		w.raw(`"></label> <button type="submit">Filter</button></form>`)

		if len(p.Rows) == 0 {
			w.empty("No sittings found.")
		} else {
			w.raw(`<table><thead><tr><th>Date</th><th>Sitting</th><th>Parliament</th><th>Sections</th></tr></thead><tbody>`)
			for _, s := range p.Rows {
				w.raw(`<tr><td>`)
				w.link(path("sessions", s.ID), dateText(s.Date))
				w.raw(`</td><td>`)
				w.textf("%d", s.SittingNo)
				w.raw(`</td><td>`)
				w.textf("%d", s.Parliament)
				w.raw(`</td><td>`)
				w.textf("%d", s.SectionCount)
				w.raw(`</td></tr>`)
			}
			w.raw(`</tbody></table>`)
		}

		pager(w, v, p)
	})
}

// SessionDetail renders one sitting with its business and attendance
func SessionDetail(s *model.Session, sections []model.Section, bills []model.SessionBill) templ.Component {
	return page(sessionLabel(*s), func(w *writer) {
		w.heading(sessionLabel(*s))
		w.raw(`<p>`)
		w.textf("Parliament %d, Session %d, Volume %d", s.Parliament, s.SessionNo, s.VolumeNo)
		if s.URL != "" {
			w.raw(` `)
			w.link(s.URL, "Source")
		}
		w.raw(`</p>`)
		if s.Summary != nil {
			w.raw(`<p class="summary">`)
			w.text(*s.Summary)
			w.raw(`</p>`)
		}

		if len(bills) > 0 {
			w.raw(`<section><h2>Bills</h2><ul>`)
			for _, b := range bills {
				w.raw(`<li>`)
				w.link(path("bills", b.BillID), b.BillTitle)
				for _, t := range b.ReadingTypes {
					w.raw(` <span class="tag">`)
					w.text(readingName(t))
					w.raw(`</span>`)
				}
				w.raw(`</li>`)
			}
			w.raw(`</ul></section>`)
		}

		w.raw(`<section><h2>Business</h2>`)
		sectionList(w, sections)
		w.raw(`</section>`)

		present, absent := 0, 0
		for _, a := range s.Attendance {
			if a.Present {
				present++
			} else {
				absent++
			}
		}
		w.raw(`<section><h2>`)
		w.textf("Members (%d present, %d absent)", present, absent)
		w.raw(`</h2><ul>`)
		for _, a := range s.Attendance {
			w.raw(`<li>`)
			w.link(path("members", a.MemberID), a.Name)
			if a.Constituency != nil {
				w.raw(` (`)
				w.text(*a.Constituency)
				w.raw(`)`)
			}
			if !a.Present {
				w.raw(` <span class="tag">absent</span>`)
			}
			w.raw(`</li>`)
		}
		w.raw(`</ul></section>`)
	})
}

func dateText(d model.Date) string {
	if !d.Valid {
		return "Undated"
	}
	return d.Time.Format("2 January 2006")
}
