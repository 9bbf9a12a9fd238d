package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/johnwondoh/careroster/internal/domain"
	"github.com/johnwondoh/careroster/internal/service/participant"
)

type ParticipantHandler struct {
	svc participant.Service
}

func NewParticipantHandler(svc participant.Service) *ParticipantHandler {
	return &ParticipantHandler{svc: svc}
}

// GET /api/v1/participants
func (h *ParticipantHandler) List(c fiber.Ctx) error {
	var q struct {
		Search  string `query:"search"`
		Page    int    `query:"page"`
		PerPage int    `query:"per_page"`
	}
	if err := c.Bind().Query(&q); err != nil {
		return badRequest(c, "invalid query parameters")
	}

	participants, err := h.svc.List(c.Context(), q.Search, q.Page, q.PerPage)
	if err != nil {
		return mapParticipantError(c, err)
	}
	return ok(c, participants)
}

// GET /api/v1/participants/:id
func (h *ParticipantHandler) GetByID(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid participant id")
	}

	p, err := h.svc.GetByID(c.Context(), id)
	if err != nil {
		return mapParticipantError(c, err)
	}
	return ok(c, p)
}

// POST /api/v1/participants
func (h *ParticipantHandler) Create(c fiber.Ctx) error {
	var body struct {
		FirstName       string `json:"first_name"`
		LastName        string `json:"last_name"`
		PreferredName   string `json:"preferred_name"`
		NDISNumber      string `json:"ndis_number"`
		SupportCategory string `json:"support_category"`
		Phone           string `json:"phone"`
		Email           string `json:"email"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	p, err := h.svc.Create(c.Context(), participant.CreateRequest{
		FirstName:       body.FirstName,
		LastName:        body.LastName,
		PreferredName:   body.PreferredName,
		NDISNumber:      body.NDISNumber,
		SupportCategory: body.SupportCategory,
		Phone:           body.Phone,
		Email:           body.Email,
	})
	if err != nil {
		return mapParticipantError(c, err)
	}
	return created(c, p)
}

// PATCH /api/v1/participants/:id
func (h *ParticipantHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid participant id")
	}

	var body struct {
		FirstName       *string `json:"first_name"`
		LastName        *string `json:"last_name"`
		PreferredName   *string `json:"preferred_name"`
		NDISNumber      *string `json:"ndis_number"`
		SupportCategory *string `json:"support_category"`
		Phone           *string `json:"phone"`
		Email           *string `json:"email"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	p, err := h.svc.Update(c.Context(), id, participant.UpdateRequest{
		FirstName:       body.FirstName,
		LastName:        body.LastName,
		PreferredName:   body.PreferredName,
		NDISNumber:      body.NDISNumber,
		SupportCategory: body.SupportCategory,
		Phone:           body.Phone,
		Email:           body.Email,
	})
	if err != nil {
		return mapParticipantError(c, err)
	}
	return ok(c, p)
}

// DELETE /api/v1/participants/:id
func (h *ParticipantHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid participant id")
	}

	if err := h.svc.Delete(c.Context(), id); err != nil {
		return mapParticipantError(c, err)
	}
	return noContent(c)
}

// POST /api/v1/participants/:id/plans
func (h *ParticipantHandler) CreatePlan(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid participant id")
	}

	var body struct {
		BudgetCategory *string `json:"budget_category"`
		Total          int64   `json:"total"`
		Allocated      int64   `json:"allocated"`
		StartDate      string  `json:"start_date"`
		EndDate        *string `json:"end_date"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	startDate, err := time.Parse("2006-01-02", body.StartDate)
	if err != nil {
		return badRequest(c, "invalid start_date, expected YYYY-MM-DD")
	}
	var endDate *time.Time
	if body.EndDate != nil && *body.EndDate != "" {
		d, err := time.Parse("2006-01-02", *body.EndDate)
		if err != nil {
			return badRequest(c, "invalid end_date, expected YYYY-MM-DD")
		}
		endDate = &d
	}

	plan, err := h.svc.CreatePlan(c.Context(), id, participant.CreatePlanRequest{
		BudgetCategory: body.BudgetCategory,
		Total:          domain.Money(body.Total),
		Allocated:      domain.Money(body.Allocated),
		StartDate:      startDate,
		EndDate:        endDate,
	})
	if err != nil {
		return mapParticipantError(c, err)
	}
	return created(c, plan)
}

// GET /api/v1/participants/:id/plans
func (h *ParticipantHandler) ListPlans(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid participant id")
	}

	plans, err := h.svc.ListPlans(c.Context(), id)
	if err != nil {
		return mapParticipantError(c, err)
	}
	return ok(c, plans)
}

// GET /api/v1/plans/:id
func (h *ParticipantHandler) GetPlan(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid plan id")
	}

	plan, err := h.svc.GetPlan(c.Context(), id)
	if err != nil {
		return mapParticipantError(c, err)
	}
	return ok(c, plan)
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

func mapParticipantError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, participant.ErrNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, participant.ErrPlanNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, participant.ErrDuplicateNDIS):
		return conflict(c, err.Error())
	case domain.IsValidation(err):
		return badRequest(c, err.Error())
	default:
		return internalError(c)
	}
}
