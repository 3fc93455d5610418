package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jjenkins/hansard/internal/templates"
	"go.uber.org/zap"
)

// tickerSize is the number of motions and readings shown on the home page
const tickerSize = 5

func (h *Handlers) HomePage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		stats, err := h.stats.Get(ctx)
		if err != nil {
			return h.failed(c, err, "Error loading stats")
		}
		data := templates.HomeData{Stats: *stats}

		// The tickers are optional; a failure leaves them empty
		if data.LatestQuestion, err = h.sections.LatestQuestion(ctx); err != nil {
			h.log.Warn("Error loading latest question", zap.Error(err))
		}
		if data.RecentMotions, err = h.sections.RecentMotions(ctx, tickerSize); err != nil {
			h.log.Warn("Error loading recent motions", zap.Error(err))
		}
		if data.RecentReadings, err = h.bills.RecentReadings(ctx, tickerSize); err != nil {
			h.log.Warn("Error loading recent bill readings", zap.Error(err))
		}
		if data.LastSitting, err = h.bills.ReadingsFromLastSitting(ctx); err != nil {
			h.log.Warn("Error loading last sitting readings", zap.Error(err))
		}

		return render(c, templates.Home(data))
	}
}

func (h *Handlers) SessionsPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := h.sessionFilter(c)
		if err != nil {
			return err
		}

		page, err := h.sessions.List(c.UserContext(), f)
		if err != nil {
			return h.failed(c, err, "Error loading sittings")
		}
		return render(c, templates.Sessions(page, listView(c, f.Page)))
	}
}

func (h *Handlers) SessionPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		detail, err := h.sessionDetail(c)
		if err != nil {
			return err
		}
		return render(c, templates.SessionDetail(&detail.Session, detail.Sections, detail.Bills))
	}
}

func (h *Handlers) QuestionsPage() fiber.Handler {
	return h.sectionListPage("Questions", h.sections.Questions)
}

func (h *Handlers) MotionsPage() fiber.Handler {
	return h.sectionListPage("Motions", h.sections.Motions)
}

func (h *Handlers) sectionListPage(title string, list sectionLister) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := h.sectionFilter(c)
		if err != nil {
			return err
		}

		page, err := list(c.UserContext(), f)
		if err != nil {
			return h.failed(c, err, "Error loading "+title)
		}
		return render(c, templates.SectionList(title, page, listView(c, f.Page)))
	}
}

func (h *Handlers) SectionPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		section, err := h.sections.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return h.failed(c, err, "Error loading section")
		}
		if section == nil {
			return notFound("Section")
		}
		return render(c, templates.SectionDetail(section))
	}
}

func (h *Handlers) BillsPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := h.billFilter(c)
		if err != nil {
			return err
		}

		page, err := h.bills.List(c.UserContext(), f)
		if err != nil {
			return h.failed(c, err, "Error loading bills")
		}
		return render(c, templates.Bills(page, listView(c, f.Page)))
	}
}

func (h *Handlers) BillPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		detail, err := h.billDetail(c)
		if err != nil {
			return err
		}
		return render(c, templates.BillDetail(&detail.Bill, detail.Sections))
	}
}

func (h *Handlers) MembersPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := h.memberFilter(c)
		if err != nil {
			return err
		}

		page, err := h.members.List(c.UserContext(), f)
		if err != nil {
			return h.failed(c, err, "Error loading members")
		}
		return render(c, templates.Members(page, listView(c, f.Page)))
	}
}

func (h *Handlers) MemberPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		detail, err := h.memberDetail(c)
		if err != nil {
			return err
		}
		view := listView(c, detail.window)
		return render(c, templates.MemberDetail(&detail.Member, detail.Sections, detail.Attendance, view))
	}
}

func (h *Handlers) MinistriesPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ministries, err := h.ministries.List(c.UserContext())
		if err != nil {
			return h.failed(c, err, "Error loading ministries")
		}
		return render(c, templates.Ministries(ministries))
	}
}

func (h *Handlers) MinistryPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		detail, err := h.ministryDetail(c)
		if err != nil {
			return err
		}
		view := listView(c, detail.window)
		return render(c, templates.MinistryDetail(&detail.Ministry, detail.Sections, detail.Bills, view))
	}
}
