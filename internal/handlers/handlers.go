package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jjenkins/hansard/internal/store"
	"go.uber.org/zap"
)

// Handlers serves the JSON API and the HTML pages from the read stores
type Handlers struct {
	sessions   *store.SessionStore
	sections   *store.SectionStore
	bills      *store.BillStore
	members    *store.MemberStore
	ministries *store.MinistryStore
	stats      *store.StatsStore
	log        *zap.Logger
	pageSize   int
}

// New creates handlers over db. pageSize is the list limit when a request
// does not give one; it is capped at store.MaxLimit so page offsets line up
// with the rows the store returns.
func New(db *store.DB, log *zap.Logger, pageSize int) *Handlers {
	if pageSize <= 0 {
		pageSize = store.DefaultLimit
	}
	pageSize = min(pageSize, store.MaxLimit)
	return &Handlers{
		sessions:   store.NewSessionStore(db),
		sections:   store.NewSectionStore(db),
		bills:      store.NewBillStore(db),
		members:    store.NewMemberStore(db),
		ministries: store.NewMinistryStore(db),
		stats:      store.NewStatsStore(db),
		log:        log,
		pageSize:   pageSize,
	}
}

// WithStats replaces the stats store, for a fixed clock
func (h *Handlers) WithStats(s *store.StatsStore) *Handlers {
	h.stats = s
	return h
}

// Register mounts every API route and page on r
func (h *Handlers) Register(r fiber.Router) {
	api := r.Group("/api")
	api.Get("/sessions", h.SessionsAPI())
	api.Get("/sessions/:id", h.SessionAPI())
	api.Get("/sections", h.SectionsAPI())
	api.Get("/questions", h.QuestionsAPI())
	api.Get("/questions/:id", h.SectionAPI())
	api.Get("/motions", h.MotionsAPI())
	api.Get("/bills", h.BillsAPI())
	api.Get("/bills/:id", h.BillAPI())
	api.Get("/members", h.MembersAPI())
	api.Get("/members/:id", h.MemberAPI())
	api.Get("/ministries", h.MinistriesAPI())
	api.Get("/ministries/:id", h.MinistryAPI())
	api.Get("/stats", h.StatsAPI())

	r.Get("/", h.HomePage())
	r.Get("/sessions", h.SessionsPage())
	r.Get("/sessions/:id", h.SessionPage())
	r.Get("/questions", h.QuestionsPage())
	r.Get("/questions/:id", h.SectionPage())
	r.Get("/motions", h.MotionsPage())
	r.Get("/bills", h.BillsPage())
	r.Get("/bills/:id", h.BillPage())
	r.Get("/members", h.MembersPage())
	r.Get("/members/:id", h.MemberPage())
	r.Get("/ministries", h.MinistriesPage())
	r.Get("/ministries/:id", h.MinistryPage())
}

// RequestContext gives each request a context that is cancelled once timeout
// elapses or the handler returns, so queries never outlive their request
func RequestContext(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()

		c.SetUserContext(ctx)
		return c.Next()
	}
}

// ErrorHandler renders errors as {"error": ...} under /api and as plain text
// everywhere else
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}

	if strings.HasPrefix(c.Path(), "/api/") {
		return c.Status(code).JSON(fiber.Map{"error": msg})
	}
	return c.Status(code).SendString(msg)
}

// failed logs a store error and returns a 500 carrying msg
func (h *Handlers) failed(c *fiber.Ctx, err error, msg string) error {
	h.log.Error(msg,
		zap.Error(err),
		zap.String("path", c.Path()),
		zap.Any("request_id", c.Locals("requestid")),
	)
	return fiber.NewError(fiber.StatusInternalServerError, msg)
}

func notFound(what string) error {
	return fiber.NewError(fiber.StatusNotFound, what+" not found")
}

func render(c *fiber.Ctx, page templ.Component) error {
	handler := adaptor.HTTPHandler(templ.Handler(page))
	return handler(c)
}
