package handlers_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jjenkins/hansard/internal/handlers"
	"github.com/jjenkins/hansard/internal/model"
	"github.com/jjenkins/hansard/internal/store"
	"github.com/jjenkins/hansard/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	return newAppFor(t, storetest.Open(t), 20)
}

func newAppFor(t *testing.T, db *store.DB, pageSize int, middleware ...fiber.Handler) *fiber.App {
	t.Helper()

	clock := func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	h := handlers.New(db, zap.NewNop(), pageSize).WithStats(store.NewStatsStore(db).WithClock(clock))

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	for _, m := range middleware {
		app.Use(m)
	}
	h.Register(app)
	return app
}

func get(t *testing.T, app *fiber.App, target string) (int, []byte) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func getJSON(t *testing.T, app *fiber.App, target string, v any) {
	t.Helper()

	status, body := get(t, app, target)
	require.Equal(t, http.StatusOK, status, string(body))
	require.NoError(t, json.Unmarshal(body, v))
}

func TestSessionsAPI(t *testing.T) {
	app := newApp(t)

	var page model.Page[model.Session]
	getJSON(t, app, "/api/sessions?startDate=2024-01-01&endDate=2024-12-31&limit=1", &page)

	assert.Equal(t, 2, page.TotalCount)
	require.Len(t, page.Rows, 1)
	assert.Equal(t, "S124", page.Rows[0].ID)

	getJSON(t, app, "/api/sessions?startDate=2024-01-01&limit=1&page=2&sort=date_asc", &page)
	require.Len(t, page.Rows, 1)
	assert.Equal(t, "S124", page.Rows[0].ID)
}

func TestSessionAPI(t *testing.T) {
	app := newApp(t)

	var detail struct {
		ID         string              `json:"id"`
		Date       string              `json:"date"`
		Attendance []model.Attendee    `json:"attendance"`
		Sections   []model.Section     `json:"sections"`
		Bills      []model.SessionBill `json:"bills"`
	}
	getJSON(t, app, "/api/sessions/S124", &detail)

	assert.Equal(t, "S124", detail.ID)
	assert.Equal(t, "2024-03-04", detail.Date)
	assert.Len(t, detail.Attendance, 3)
	assert.Len(t, detail.Sections, 4)
	require.Len(t, detail.Bills, 1)
	assert.Equal(t, []string{"BI", "BP"}, detail.Bills[0].ReadingTypes)

	status, body := get(t, app, "/api/sessions/S999")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"attendance":[]`)
	assert.Contains(t, string(body), `"sections":[]`)
	assert.Contains(t, string(body), `"date":null`)
}

func TestNotFound(t *testing.T) {
	app := newApp(t)

	for _, target := range []string{
		"/api/sessions/nope",
		"/api/questions/nope",
		"/api/bills/nope",
		"/api/members/nope",
		"/api/ministries/nope",
	} {
		status, body := get(t, app, target)
		assert.Equal(t, http.StatusNotFound, status, target)

		var e map[string]string
		require.NoError(t, json.Unmarshal(body, &e), target)
		assert.Contains(t, e["error"], "not found", target)
	}

	status, _ := get(t, app, "/sessions/nope")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestBadParams(t *testing.T) {
	app := newApp(t)

	for _, target := range []string{
		"/api/sessions?limit=abc",
		"/api/sessions?limit=0",
		"/api/sessions?offset=-1",
		"/api/sessions?page=0",
		"/api/sessions?sort=title",
		"/api/sessions?startDate=2024-13-01",
		"/api/sessions?startDate=2024-05-01&endDate=2024-01-01",
		"/api/questions?endDate=yesterday",
		"/api/members?sort=age",
		"/api/sections?limit=200&page=46116860184273881",
	} {
		status, body := get(t, app, target)
		assert.Equal(t, http.StatusBadRequest, status, target)
		assert.Contains(t, string(body), `"error"`, target)
	}
}

func TestQuestionsAPI(t *testing.T) {
	app := newApp(t)

	var page model.Page[model.Section]
	getJSON(t, app, "/api/questions?startDate=2024-02-05&endDate=2024-02-05", &page)

	require.Len(t, page.Rows, 2)
	assert.Equal(t, "sec-2", page.Rows[0].ID)
	assert.Equal(t, "sec-1", page.Rows[1].ID)
	assert.Len(t, page.Rows[1].Speakers, 2)

	getJSON(t, app, "/api/questions?search=healthcare&ministry=all&sectionType=all", &page)
	assert.Equal(t, 2, page.TotalCount)

	var section model.Section
	getJSON(t, app, "/api/questions/sec-1", &section)
	assert.Equal(t, "Healthcare Funding Increase", section.SectionTitle)
}

func TestSectionsAndMotionsAPI(t *testing.T) {
	app := newApp(t)

	var page model.Page[model.Section]
	getJSON(t, app, "/api/sections?ministry=MOF&memberId=mem-bob", &page)
	require.Len(t, page.Rows, 1)
	assert.Equal(t, "sec-5", page.Rows[0].ID)

	getJSON(t, app, "/api/motions", &page)
	assert.Equal(t, 2, page.TotalCount)
}

func TestBillsAPI(t *testing.T) {
	app := newApp(t)

	var page model.Page[model.Bill]
	getJSON(t, app, "/api/bills?search=levy", &page)
	require.Len(t, page.Rows, 1)
	assert.True(t, page.Rows[0].HasSecondReading)

	var detail struct {
		ID               string          `json:"id"`
		HasSecondReading bool            `json:"hasSecondReading"`
		ReadingStatus    string          `json:"readingStatus"`
		Sections         []model.Section `json:"sections"`
	}
	getJSON(t, app, "/api/bills/B1", &detail)
	assert.False(t, detail.HasSecondReading)
	assert.Equal(t, "first_reading", detail.ReadingStatus)
	require.Len(t, detail.Sections, 1)
	assert.Equal(t, "sec-3", detail.Sections[0].ID)
}

func TestMembersAPI(t *testing.T) {
	app := newApp(t)

	var page model.Page[model.Member]
	getJSON(t, app, "/api/members?constituency=Jurong", &page)
	require.Len(t, page.Rows, 1)
	assert.Equal(t, "mem-bob", page.Rows[0].ID)

	var detail struct {
		ID         string                    `json:"id"`
		Sections   model.Page[model.Section] `json:"sections"`
		Attendance []model.AttendanceRecord  `json:"attendance"`
	}
	getJSON(t, app, "/api/members/mem-alice?limit=2", &detail)
	assert.Equal(t, 3, detail.Sections.TotalCount)
	assert.Len(t, detail.Sections.Rows, 2)
	assert.Len(t, detail.Attendance, 3)
}

func TestMinistriesAPI(t *testing.T) {
	app := newApp(t)

	var all []model.Ministry
	getJSON(t, app, "/api/ministries", &all)
	assert.Len(t, all, 3)

	var detail struct {
		Acronym  string                    `json:"acronym"`
		Sections model.Page[model.Section] `json:"sections"`
		Bills    []model.Bill              `json:"bills"`
	}
	getJSON(t, app, "/api/ministries/m-mof", &detail)
	assert.Equal(t, "MOF", detail.Acronym)
	assert.Equal(t, 3, detail.Sections.TotalCount)
	require.Len(t, detail.Bills, 1)
	assert.Equal(t, "B2", detail.Bills[0].ID)
}

func TestStatsAPI(t *testing.T) {
	app := newApp(t)

	var stats model.Stats
	getJSON(t, app, "/api/stats", &stats)

	assert.Equal(t, 4, stats.SessionCount)
	assert.Equal(t, 9, stats.SectionCount)
	assert.Equal(t, 2, stats.SittingsThisYear)
	require.NotNil(t, stats.LatestSession)
	assert.Equal(t, "S124", stats.LatestSession.ID)
}

func TestPages(t *testing.T) {
	app := newApp(t)

	tests := []struct {
		target string
		want   string
	}{
		{"/", "Written Answer on Clinics"},
		{"/sessions", "4 March 2024"},
		{"/sessions/S123", "Road Safety Measures"},
		{"/questions?search=healthcare", "Healthcare Funding Increase"},
		{"/questions/sec-1", "Members asked about funding"},
		{"/questions/sec-1", `<span class="kind">Question</span>`},
		{"/questions/sec-6", `<span class="kind">Motion</span>`},
		{"/questions/sec-3", `<span class="kind">Bill, first reading</span>`},
		{"/motions", "Motion of Thanks"},
		{"/bills", "Transport Levy Bill"},
		{"/bills/B2", "Second reading"},
		{"/members", "Dara Singh"},
		{"/members/mem-alice", "Marine Parade"},
		{"/ministries", "Ministry of Transport"},
		{"/ministries/m-moh", "Healthcare Services Bill"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			status, body := get(t, app, tt.target)
			assert.Equal(t, http.StatusOK, status)
			assert.Contains(t, string(body), tt.want)
		})
	}
}

func TestPagesEscapeSearch(t *testing.T) {
	app := newApp(t)

	status, body := get(t, app, "/questions?search=%3Cscript%3E")
	assert.Equal(t, http.StatusOK, status)
	assert.NotContains(t, string(body), "<script>")
	assert.Contains(t, string(body), "&lt;script&gt;")
}

// fillerSections adds 250 sections to the S124 sitting
const fillerSections = `WITH RECURSIVE n(i) AS (SELECT 1 UNION ALL SELECT i + 1 FROM n WHERE i < 250)
INSERT INTO sections (id, session_id, section_type, section_title, content_plain, section_order)
SELECT 'filler-' || i, 'S124', 'OS', 'Filler ' || i, 'filler', 100 + i FROM n;
`

func TestPageSizeAboveMaxLimitReachesEveryRow(t *testing.T) {
	db := storetest.Open(t)
	storetest.Exec(t, db, fillerSections)
	app := newAppFor(t, db, 500)

	seen := map[string]bool{}
	total := -1
	for n := 1; n <= 5; n++ {
		var page model.Page[model.Section]
		getJSON(t, app, fmt.Sprintf("/api/sections?page=%d", n), &page)
		if total < 0 {
			total = page.TotalCount
			assert.Len(t, page.Rows, store.MaxLimit)
		}
		if len(page.Rows) == 0 {
			break
		}
		for _, s := range page.Rows {
			assert.False(t, seen[s.ID], "%s returned twice", s.ID)
			seen[s.ID] = true
		}
	}

	assert.Greater(t, total, store.MaxLimit)
	assert.Len(t, seen, total)
}

func TestRequestContext(t *testing.T) {
	t.Run("sets a deadline", func(t *testing.T) {
		app := fiber.New()
		app.Use(handlers.RequestContext(time.Minute))
		app.Get("/deadline", func(c *fiber.Ctx) error {
			_, ok := c.UserContext().Deadline()
			return c.SendString(strconv.FormatBool(ok))
		})

		status, body := get(t, app, "/deadline")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "true", string(body))
	})

	t.Run("expired context fails queries", func(t *testing.T) {
		app := newAppFor(t, storetest.Open(t), 20, handlers.RequestContext(0))

		status, body := get(t, app, "/api/sessions")
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Contains(t, string(body), "failed to fetch sessions")
	})
}
