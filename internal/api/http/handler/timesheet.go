package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/johnwondoh/careroster/internal/domain"
	"github.com/johnwondoh/careroster/internal/service/timesheet"
	pasetotoken "github.com/johnwondoh/careroster/pkg/paseto"
)

type TimesheetHandler struct {
	svc timesheet.Service
}

func NewTimesheetHandler(svc timesheet.Service) *TimesheetHandler {
	return &TimesheetHandler{svc: svc}
}

// GET /api/v1/timesheets
func (h *TimesheetHandler) List(c fiber.Ctx) error {
	var q struct {
		EmployeeID string `query:"employee_id"`
		Status     string `query:"status"`
		Page       int    `query:"page"`
		PerPage    int    `query:"per_page"`
	}
	if err := c.Bind().Query(&q); err != nil {
		return badRequest(c, "invalid query parameters")
	}

	req := timesheet.ListRequest{Page: q.Page, PerPage: q.PerPage}
	if q.EmployeeID != "" {
		id, err := uuid.Parse(q.EmployeeID)
		if err != nil {
			return badRequest(c, "invalid employee_id")
		}
		req.EmployeeID = &id
	}
	if q.Status != "" {
		req.Status = &q.Status
	}

	timesheets, err := h.svc.List(c.Context(), req)
	if err != nil {
		return mapTimesheetError(c, err)
	}
	return ok(c, timesheets)
}

// GET /api/v1/timesheets/:id
func (h *TimesheetHandler) GetByID(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid timesheet id")
	}

	ts, err := h.svc.GetByID(c.Context(), id)
	if err != nil {
		return mapTimesheetError(c, err)
	}
	return ok(c, ts)
}

// POST /api/v1/timesheets
func (h *TimesheetHandler) Create(c fiber.Ctx) error {
	var body struct {
		EmployeeID  string  `json:"employee_id"`
		PeriodStart string  `json:"period_start"`
		PeriodEnd   string  `json:"period_end"`
		Minutes     int     `json:"minutes"`
		Rate        int64   `json:"rate"`
		Notes       *string `json:"notes"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	employeeID, err := uuid.Parse(body.EmployeeID)
	if err != nil {
		return badRequest(c, "invalid employee_id")
	}
	periodStart, err := time.Parse("2006-01-02", body.PeriodStart)
	if err != nil {
		return badRequest(c, "invalid period_start, expected YYYY-MM-DD")
	}
	periodEnd, err := time.Parse("2006-01-02", body.PeriodEnd)
	if err != nil {
		return badRequest(c, "invalid period_end, expected YYYY-MM-DD")
	}

	if _, err := h.svc.Create(c.Context(), timesheet.CreateRequest{
		EmployeeID:  employeeID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Minutes:     body.Minutes,
		Rate:        domain.Money(body.Rate),
		Notes:       body.Notes,
	}); err != nil {
		return mapTimesheetError(c, err)
	}
	return createdMessage(c, "timesheet created")
}

// PATCH /api/v1/timesheets/:id
func (h *TimesheetHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid timesheet id")
	}

	var body struct {
		PeriodStart *string `json:"period_start"`
		PeriodEnd   *string `json:"period_end"`
		Minutes     *int    `json:"minutes"`
		Rate        *int64  `json:"rate"`
		Notes       *string `json:"notes"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	req := timesheet.UpdateRequest{Minutes: body.Minutes, Notes: body.Notes}
	if body.PeriodStart != nil {
		d, err := time.Parse("2006-01-02", *body.PeriodStart)
		if err != nil {
			return badRequest(c, "invalid period_start, expected YYYY-MM-DD")
		}
		req.PeriodStart = &d
	}
	if body.PeriodEnd != nil {
		d, err := time.Parse("2006-01-02", *body.PeriodEnd)
		if err != nil {
			return badRequest(c, "invalid period_end, expected YYYY-MM-DD")
		}
		req.PeriodEnd = &d
	}
	if body.Rate != nil {
		r := domain.Money(*body.Rate)
		req.Rate = &r
	}

	ts, err := h.svc.Update(c.Context(), id, req)
	if err != nil {
		return mapTimesheetError(c, err)
	}
	return ok(c, ts)
}

// POST /api/v1/timesheets/:id/submit
func (h *TimesheetHandler) Submit(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid timesheet id")
	}

	if _, err := h.svc.Submit(c.Context(), id); err != nil {
		return mapTimesheetError(c, err)
	}
	return okMessage(c, "timesheet submitted")
}

// POST /api/v1/timesheets/:id/approve
func (h *TimesheetHandler) Approve(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid timesheet id")
	}

	claims, ok := pasetotoken.ClaimsFromFiber(c)
	if !ok {
		return unauthorized(c)
	}

	var body struct {
		Notes *string `json:"notes"`
	}
	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&body); err != nil {
			return badRequest(c, "invalid request body")
		}
	}

	if _, err := h.svc.Approve(c.Context(), id, claims.UserID, body.Notes); err != nil {
		return mapTimesheetError(c, err)
	}
	return okMessage(c, "timesheet approved")
}

// POST /api/v1/timesheets/:id/reject
func (h *TimesheetHandler) Reject(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid timesheet id")
	}

	claims, ok := pasetotoken.ClaimsFromFiber(c)
	if !ok {
		return unauthorized(c)
	}

	var body struct {
		Reason string `json:"reason"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	if _, err := h.svc.Reject(c.Context(), id, claims.UserID, body.Reason); err != nil {
		return mapTimesheetError(c, err)
	}
	return okMessage(c, "timesheet rejected")
}

// DELETE /api/v1/timesheets/:id
func (h *TimesheetHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid timesheet id")
	}

	if err := h.svc.Delete(c.Context(), id); err != nil {
		return mapTimesheetError(c, err)
	}
	return noContent(c)
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

func mapTimesheetError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, timesheet.ErrNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, timesheet.ErrEmployeeNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, timesheet.ErrNotDraft):
		return conflict(c, err.Error())
	case errors.Is(err, timesheet.ErrNotSubmitted):
		return conflict(c, err.Error())
	case errors.Is(err, timesheet.ErrEmptyReason):
		return badRequest(c, err.Error())
	case domain.IsValidation(err):
		return badRequest(c, err.Error())
	default:
		return internalError(c)
	}
}
