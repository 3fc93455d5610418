package templates

import (
	"github.com/a-h/templ"
	"github.com/jjenkins/hansard/internal/model"
)

// SectionList renders a searchable, paginated list of sections under title.
// Questions, motions and the full section index share it.
func SectionList(title string, p model.Page[model.Section], v ListView) templ.Component {
	return page(title, func(w *writer) {
		w.heading(title)
		searchForm(w, v, "Search titles and debate text")
		sectionList(w, p.Rows)
		pager(w, v, p)
	})
}

func sectionList(w *writer, sections []model.Section) {
	if len(sections) == 0 {
		w.empty("Nothing found.")
		return
	}

	w.raw(`<ol class="sections">`)
	for _, s := range sections {
		w.raw(`<li><h3>`)
		w.link(path("questions", s.ID), s.SectionTitle)
		w.raw(`</h3><p class="meta">`)
		w.text(s.SectionType)
		w.raw(` &middot; `)
		w.date(s.SessionDate)
		if s.Ministry != nil {
			w.raw(` &middot; `)
			w.text(*s.Ministry)
		}
		w.raw(`</p>`)
		speakerList(w, s.Speakers)
		w.raw(`</li>`)
	}
	w.raw(`</ol>`)
}

func speakerList(w *writer, speakers []model.Speaker) {
	if len(speakers) == 0 {
		return
	}
	w.raw(`<p class="speakers">`)
	for i, sp := range speakers {
		if i > 0 {
			w.raw(`, `)
		}
		w.link(path("members", sp.MemberID), sp.Name)
		if sp.Designation != nil {
			w.raw(` (`)
			w.text(*sp.Designation)
			w.raw(`)`)
		}
	}
	w.raw(`</p>`)
}

// SectionDetail renders one section with its full text. ContentHTML comes
// from the official record and is written as is.
func SectionDetail(s *model.Section) templ.Component {
	return page(s.SectionTitle, func(w *writer) {
		w.heading(s.SectionTitle)
		w.raw(`<p class="meta"><span class="kind">`)
		w.text(sectionKind(s))
		w.raw(`</span> &middot; `)
		w.link(path("sessions", s.SessionID), "Sitting of "+dateText(s.SessionDate))
		if s.Ministry != nil && s.MinistryID != nil {
			w.raw(` &middot; `)
			w.link(path("ministries", *s.MinistryID), *s.Ministry)
		}
		if s.BillID != nil {
			w.raw(` &middot; `)
			label := *s.BillID
			if s.BillTitle != nil {
				label = *s.BillTitle
			}
			w.link(path("bills", *s.BillID), label)
		}
		if s.SourceURL != nil {
			w.raw(` &middot; `)
			w.link(*s.SourceURL, "Source")
		}
		w.raw(`</p>`)
		speakerList(w, s.Speakers)
		if s.Summary != nil {
			w.raw(`<p class="summary">`)
			w.text(*s.Summary)
			w.raw(`</p>`)
		}
		w.raw(`<article>`)
		if s.ContentHTML != "" {
			w.raw(s.ContentHTML)
		} else {
			w.text(s.ContentPlain)
		}
		w.raw(`</article>`)
	})
}

// sectionKind labels a section for its detail page
func sectionKind(s *model.Section) string {
	switch {
	case s.IsQuestion():
		return "Question"
	case s.IsMotion():
		return "Motion"
	case s.BillID != nil:
		return "Bill, " + readingName(s.SectionType)
	case s.SectionType != "":
		return s.SectionType
	default:
		return "Section"
	}
}
