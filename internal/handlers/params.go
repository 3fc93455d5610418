package handlers

import (
	"fmt"
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jjenkins/hansard/internal/model"
	"github.com/jjenkins/hansard/internal/store"
	"github.com/jjenkins/hansard/internal/templates"
)

var (
	sessionSorts = []string{store.SortDateDesc, store.SortDateAsc}
	sectionSorts = []string{store.SortDateDesc, store.SortDateAsc, store.SortTitle}
	memberSorts  = []string{store.SortName, store.SortSections}
)

func badRequest(format string, args ...any) error {
	return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf(format, args...))
}

// filterValue returns a trimmed query value; "all" means no filter
func filterValue(c *fiber.Ctx, key string) string {
	v := strings.TrimSpace(c.Query(key))
	if strings.EqualFold(v, "all") {
		return ""
	}
	return v
}

// parsePage reads limit and either offset or a 1-based page
func (h *Handlers) parsePage(c *fiber.Ctx) (store.Page, error) {
	p := store.Page{Limit: h.pageSize}

	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return store.Page{}, badRequest("limit must be a positive integer")
		}
		p.Limit = min(n, store.MaxLimit)
	}

	if s := c.Query("offset"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return store.Page{}, badRequest("offset must be a non-negative integer")
		}
		p.Offset = n
	} else if s := c.Query("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return store.Page{}, badRequest("page must be a positive integer")
		}
		if n-1 > math.MaxInt/p.Limit {
			return store.Page{}, badRequest("page is out of range")
		}
		p.Offset = (n - 1) * p.Limit
	}

	return p, nil
}

func parseSort(c *fiber.Ctx, allowed []string) (string, error) {
	s := c.Query("sort")
	if s == "" {
		return allowed[0], nil
	}
	if !slices.Contains(allowed, s) {
		return "", badRequest("sort must be one of %s", strings.Join(allowed, ", "))
	}
	return s, nil
}

func parseDateRange(c *fiber.Ctx) (start, end model.Date, err error) {
	if s := c.Query("startDate"); s != "" {
		if start, err = model.ParseDate(s); err != nil {
			return start, end, badRequest("startDate must be YYYY-MM-DD")
		}
	}
	if s := c.Query("endDate"); s != "" {
		if end, err = model.ParseDate(s); err != nil {
			return start, end, badRequest("endDate must be YYYY-MM-DD")
		}
	}
	if start.Valid && end.Valid && start.Time.After(end.Time) {
		return start, end, badRequest("startDate must not be after endDate")
	}
	return start, end, nil
}

func (h *Handlers) sessionFilter(c *fiber.Ctx) (store.SessionFilter, error) {
	var f store.SessionFilter
	var err error

	if f.StartDate, f.EndDate, err = parseDateRange(c); err != nil {
		return f, err
	}
	if f.Sort, err = parseSort(c, sessionSorts); err != nil {
		return f, err
	}
	f.Page, err = h.parsePage(c)
	return f, err
}

func (h *Handlers) sectionFilter(c *fiber.Ctx) (store.SectionFilter, error) {
	f := store.SectionFilter{
		Search:          strings.TrimSpace(c.Query("search")),
		MinistryAcronym: filterValue(c, "ministry"),
		MinistryID:      filterValue(c, "ministryId"),
		SectionType:     filterValue(c, "sectionType"),
		MemberID:        filterValue(c, "memberId"),
		SessionID:       filterValue(c, "sessionId"),
	}
	var err error

	if f.StartDate, f.EndDate, err = parseDateRange(c); err != nil {
		return f, err
	}
	if f.Sort, err = parseSort(c, sectionSorts); err != nil {
		return f, err
	}
	f.Page, err = h.parsePage(c)
	return f, err
}

func (h *Handlers) billFilter(c *fiber.Ctx) (store.BillFilter, error) {
	f := store.BillFilter{
		Search:     strings.TrimSpace(c.Query("search")),
		MinistryID: filterValue(c, "ministry"),
	}
	var err error
	f.Page, err = h.parsePage(c)
	return f, err
}

func (h *Handlers) memberFilter(c *fiber.Ctx) (store.MemberFilter, error) {
	f := store.MemberFilter{
		Search:       strings.TrimSpace(c.Query("search")),
		Constituency: filterValue(c, "constituency"),
	}
	var err error

	if f.Sort, err = parseSort(c, memberSorts); err != nil {
		return f, err
	}
	f.Page, err = h.parsePage(c)
	return f, err
}

// listView describes the current request for pagination links
func listView(c *fiber.Ctx, p store.Page) templates.ListView {
	q := url.Values{}
	for k, v := range c.Queries() {
		q.Set(k, v)
	}
	return templates.ListView{Path: c.Path(), Query: q, Limit: p.Limit, Offset: p.Offset}
}
