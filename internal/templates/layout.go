// Package templates renders the HTML pages as templ components
package templates

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"
	"github.com/jjenkins/hansard/internal/model"
)

// writer accumulates the first write error so page bodies can be written
// without checking every call
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) raw(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

func (w *writer) text(s string) {
	w.raw(templ.EscapeString(s))
}

func (w *writer) textf(format string, args ...any) {
	w.text(fmt.Sprintf(format, args...))
}

func (w *writer) opt(s *string, fallback string) {
	if s == nil || *s == "" {
		w.text(fallback)
		return
	}
	w.text(*s)
}

func (w *writer) date(d model.Date) {
	if !d.Valid {
		w.text("Undated")
		return
	}
	w.text(d.Time.Format("2 January 2006"))
}

func (w *writer) link(href, label string) {
	w.raw(`<a href="`)
	w.text(href)
	w.raw(`">`)
	w.text(label)
	w.raw(`</a>`)
}

func (w *writer) heading(title string) {
	w.raw(`<h1>`)
	w.text(title)
	w.raw(`</h1>`)
}

func (w *writer) empty(msg string) {
	w.raw(`<p class="empty">`)
	w.text(msg)
	w.raw(`</p>`)
}

func path(parts ...string) string {
	out := ""
	for _, p := range parts {
		out += "/" + url.PathEscape(p)
	}
	return out
}

// page wraps a body in the site layout
func page(title string, body func(w *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		w.raw(`<meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		w.text(title)
		w.raw(` | Hansard</title></head><body><header><nav>`)
		for _, item := range nav {
			w.link(item.href, item.label)
			w.raw(" ")
		}
		w.raw(`</nav></header><main>`)
		body(w)
		w.raw(`</main></body></html>`)
		return w.err
	})
}

var nav = []struct{ href, label string }{
	{"/", "Home"},
	{"/sessions", "Sittings"},
	{"/questions", "Questions"},
	{"/motions", "Motions"},
	{"/bills", "Bills"},
	{"/members", "Members"},
	{"/ministries", "Ministries"},
}

// ListView describes the request a paginated list page was rendered for
type ListView struct {
	Path   string
	Query  url.Values
	Limit  int
	Offset int
}

func (v ListView) pageURL(n int) string {
	q := url.Values{}
	for k, vs := range v.Query {
		q[k] = vs
	}
	q.Del("offset")
	q.Set("page", strconv.Itoa(n))
	return v.Path + "?" + q.Encode()
}

func pager[T any](w *writer, v ListView, p model.Page[T]) {
	if v.Limit <= 0 {
		return
	}
	current := v.Offset/v.Limit + 1
	total := p.TotalPages(v.Limit)

	w.raw(`<nav class="pager">`)
	if current > 1 {
		w.link(v.pageURL(current-1), "Previous")
		w.raw(" ")
	}
	w.textf("Page %d of %d (%d results)", current, total, p.TotalCount)
	if current < total {
		w.raw(" ")
		w.link(v.pageURL(current+1), "Next")
	}
	w.raw(`</nav>`)
}

func searchForm(w *writer, v ListView, placeholder string) {
	w.raw(`<form method="get" action="`)
	w.text(v.Path)
	w.raw(`"><input type="search" name="search" placeholder="`)
	w.text(placeholder)
	w.raw(`" value="`)
	w.text(v.Query.Get("search"))
	w.raw(`"><button type="submit">Search</button></form>`)
}
