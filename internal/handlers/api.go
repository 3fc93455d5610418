package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jjenkins/hansard/internal/model"
	"github.com/jjenkins/hansard/internal/store"
)

// SessionDetail is a sitting with its business, bills and attendance
type SessionDetail struct {
	model.Session
	Attendance []model.Attendee    `json:"attendance"`
	Sections   []model.Section     `json:"sections"`
	Bills      []model.SessionBill `json:"bills"`
}

// BillDetail is a bill with every section that debated it
type BillDetail struct {
	model.Bill
	Sections []model.Section `json:"sections"`
}

// MemberDetail is a member with a page of their sections and their
// attendance history
type MemberDetail struct {
	model.Member
	Sections   model.Page[model.Section] `json:"sections"`
	Attendance []model.AttendanceRecord  `json:"attendance"`

	window store.Page
}

// MinistryDetail is a ministry with a page of its sections and its bills
type MinistryDetail struct {
	model.Ministry
	Sections model.Page[model.Section] `json:"sections"`
	Bills    []model.Bill              `json:"bills"`

	window store.Page
}

func (h *Handlers) SessionsAPI() fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := h.sessionFilter(c)
		if err != nil {
			return err
		}

		page, err := h.sessions.List(c.UserContext(), f)
		if err != nil {
			return h.failed(c, err, "failed to fetch sessions")
		}
		return c.JSON(page)
	}
}

func (h *Handlers) SessionAPI() fiber.Handler {
	return func(c *fiber.Ctx) error {
		detail, err := h.sessionDetail(c)
		if err != nil {
			return err
		}
		return c.JSON(detail)
	}
}

func (h *Handlers) sessionDetail(c *fiber.Ctx) (*SessionDetail, error) {
	ctx := c.UserContext()
	id := c.Params("id")

	session, err := h.sessions.Get(ctx, id)
	if err != nil {
		return nil, h.failed(c, err, "failed to fetch session")
	}
	if session == nil {
		return nil, notFound("session")
	}

	sections, err := h.sections.ForSession(ctx, id)
	if err != nil {
		return nil, h.failed(c, err, "failed to fetch session sections")
	}

	bills, err := h.bills.ForSession(ctx, id)
	if err != nil {
		return nil, h.failed(c, err, "failed to fetch session bills")
	}

	return &SessionDetail{
		Session:    *session,
		Attendance: session.Attendance,
		Sections:   sections,
		Bills:      bills,
	}, nil
}

func (h *Handlers) SectionsAPI() fiber.Handler {
	return h.sectionListAPI("sections", h.sections.List)
}

func (h *Handlers) QuestionsAPI() fiber.Handler {
	return h.sectionListAPI("questions", h.sections.Questions)
}

func (h *Handlers) MotionsAPI() fiber.Handler {
	return h.sectionListAPI("motions", h.sections.Motions)
}

type sectionLister func(ctx context.Context, f store.SectionFilter) (model.Page[model.Section], error)

func (h *Handlers) sectionListAPI(what string, list sectionLister) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := h.sectionFilter(c)
		if err != nil {
			return err
		}

		page, err := list(c.UserContext(), f)
		if err != nil {
			return h.failed(c, err, "failed to fetch "+what)
		}
		return c.JSON(page)
	}
}

func (h *Handlers) SectionAPI() fiber.Handler {
	return func(c *fiber.Ctx) error {
		section, err := h.sections.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return h.failed(c, err, "failed to fetch question")
		}
		if section == nil {
			return notFound("question")
		}
		return c.JSON(section)
	}
}

func (h *Handlers) BillsAPI() fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := h.billFilter(c)
		if err != nil {
			return err
		}

		page, err := h.bills.List(c.UserContext(), f)
		if err != nil {
			return h.failed(c, err, "failed to fetch bills")
		}
		return c.JSON(page)
	}
}

func (h *Handlers) BillAPI() fiber.Handler {
	return func(c *fiber.Ctx) error {
		detail, err := h.billDetail(c)
		if err != nil {
			return err
		}
		return c.JSON(detail)
	}
}

func (h *Handlers) billDetail(c *fiber.Ctx) (*BillDetail, error) {
	ctx := c.UserContext()
	id := c.Params("id")

	bill, err := h.bills.Get(ctx, id)
	if err != nil {
		return nil, h.failed(c, err, "failed to fetch bill")
	}
	if bill == nil {
		return nil, notFound("bill")
	}

	sections, err := h.sections.ForBill(ctx, id)
	if err != nil {
		return nil, h.failed(c, err, "failed to fetch bill sections")
	}

	return &BillDetail{Bill: *bill, Sections: sections}, nil
}

func (h *Handlers) MembersAPI() fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := h.memberFilter(c)
		if err != nil {
			return err
		}

		page, err := h.members.List(c.UserContext(), f)
		if err != nil {
			return h.failed(c, err, "failed to fetch members")
		}
		return c.JSON(page)
	}
}

func (h *Handlers) MemberAPI() fiber.Handler {
	return func(c *fiber.Ctx) error {
		detail, err := h.memberDetail(c)
		if err != nil {
			return err
		}
		return c.JSON(detail)
	}
}

func (h *Handlers) memberDetail(c *fiber.Ctx) (*MemberDetail, error) {
	ctx := c.UserContext()
	id := c.Params("id")

	page, err := h.parsePage(c)
	if err != nil {
		return nil, err
	}

	member, err := h.members.Get(ctx, id)
	if err != nil {
		return nil, h.failed(c, err, "failed to fetch member")
	}
	if member == nil {
		return nil, notFound("member")
	}

	sections, err := h.sections.List(ctx, store.SectionFilter{MemberID: id, Page: page})
	if err != nil {
		return nil, h.failed(c, err, "failed to fetch member sections")
	}

	attendance, err := h.members.Attendance(ctx, id)
	if err != nil {
		return nil, h.failed(c, err, "failed to fetch member attendance")
	}

	return &MemberDetail{Member: *member, Sections: sections, Attendance: attendance, window: page}, nil
}

func (h *Handlers) MinistriesAPI() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ministries, err := h.ministries.List(c.UserContext())
		if err != nil {
			return h.failed(c, err, "failed to fetch ministries")
		}
		return c.JSON(ministries)
	}
}

func (h *Handlers) MinistryAPI() fiber.Handler {
	return func(c *fiber.Ctx) error {
		detail, err := h.ministryDetail(c)
		if err != nil {
			return err
		}
		return c.JSON(detail)
	}
}

func (h *Handlers) ministryDetail(c *fiber.Ctx) (*MinistryDetail, error) {
	ctx := c.UserContext()
	id := c.Params("id")

	page, err := h.parsePage(c)
	if err != nil {
		return nil, err
	}

	ministry, err := h.ministries.Get(ctx, id)
	if err != nil {
		return nil, h.failed(c, err, "failed to fetch ministry")
	}
	if ministry == nil {
		return nil, notFound("ministry")
	}

	sections, err := h.sections.List(ctx, store.SectionFilter{MinistryID: id, Page: page})
	if err != nil {
		return nil, h.failed(c, err, "failed to fetch ministry sections")
	}

	bills, err := h.bills.List(ctx, store.BillFilter{MinistryID: id, Page: store.Page{Limit: store.MaxLimit}})
	if err != nil {
		return nil, h.failed(c, err, "failed to fetch ministry bills")
	}

	return &MinistryDetail{Ministry: *ministry, Sections: sections, Bills: bills.Rows, window: page}, nil
}

func (h *Handlers) StatsAPI() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := h.stats.Get(c.UserContext())
		if err != nil {
			return h.failed(c, err, "failed to fetch stats")
		}
		return c.JSON(stats)
	}
}
