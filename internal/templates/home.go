package templates

import (
	"github.com/a-h/templ"
	"github.com/jjenkins/hansard/internal/model"
)

// HomeData is everything the home page shows
type HomeData struct {
	Stats          model.Stats
	LatestQuestion *model.LatestQuestion
	RecentMotions  []model.RecentMotion
	RecentReadings []model.BillReading
	LastSitting    []model.BillReading
}

// Home renders the landing page
func Home(d HomeData) templ.Component {
	return page("Parliamentary Debates", func(w *writer) {
		w.heading("Parliamentary Debates")

		w.raw(`<section class="stats"><ul>`)
		w.raw(`<li>`)
		w.textf("%d sittings", d.Stats.SessionCount)
		w.raw(`</li><li>`)
		w.textf("%d members", d.Stats.MemberCount)
		w.raw(`</li><li>`)
		w.textf("%d bills", d.Stats.BillCount)
		w.raw(`</li><li>`)
		w.textf("%d sections", d.Stats.SectionCount)
		w.raw(`</li><li>`)
		w.textf("%d sittings this year", d.Stats.SittingsThisYear)
		w.raw(`</li></ul>`)
		if s := d.Stats.LatestSession; s != nil {
			w.raw(`<p>Latest sitting: `)
			w.link(path("sessions", s.ID), sessionLabel(*s))
			w.raw(`</p>`)
		}
		w.raw(`</section>`)

		if q := d.LatestQuestion; q != nil {
			w.raw(`<section><h2>Latest question</h2><p>`)
			w.link(path("questions", q.ID), q.SectionTitle)
			if q.AskerName != nil {
				w.raw(` asked by `)
				w.link(path("members", *q.AskerID), *q.AskerName)
			}
			w.raw(`</p></section>`)
		}

		if len(d.LastSitting) > 0 {
			w.raw(`<section><h2>Bills at the last sitting</h2>`)
			readingList(w, d.LastSitting)
			w.raw(`</section>`)
		}

		if len(d.RecentReadings) > 0 {
			w.raw(`<section><h2>Recent bill readings</h2>`)
			readingList(w, d.RecentReadings)
			w.raw(`</section>`)
		}

		if len(d.RecentMotions) > 0 {
			w.raw(`<section><h2>Recent motions</h2><ul>`)
			for _, m := range d.RecentMotions {
				w.raw(`<li>`)
				w.link(path("questions", m.ID), m.SectionTitle)
				w.raw(` `)
				w.date(m.SessionDate)
				w.raw(`</li>`)
			}
			w.raw(`</ul></section>`)
		}
	})
}

func readingList(w *writer, readings []model.BillReading) {
	w.raw(`<ul>`)
	for _, r := range readings {
		w.raw(`<li>`)
		w.link(path("bills", r.BillID), r.BillTitle)
		w.raw(` `)
		w.text(readingName(r.SectionType))
		w.raw(`, `)
		w.date(r.SessionDate)
		w.raw(`</li>`)
	}
	w.raw(`</ul>`)
}

func readingName(sectionType string) string {
	switch sectionType {
	case model.TypeBillIntroduced:
		return "first reading"
	case model.TypeBillSecondReading:
		return "second reading"
	default:
		return sectionType
	}
}
