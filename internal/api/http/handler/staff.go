package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/johnwondoh/careroster/internal/domain"
	"github.com/johnwondoh/careroster/internal/service/staff"
)

type StaffHandler struct {
	svc staff.Service
}

func NewStaffHandler(svc staff.Service) *StaffHandler {
	return &StaffHandler{svc: svc}
}

// GET /api/v1/staff
func (h *StaffHandler) List(c fiber.Ctx) error {
	var q struct {
		WorkerType string `query:"worker_type"`
		Page       int    `query:"page"`
		PerPage    int    `query:"per_page"`
	}
	if err := c.Bind().Query(&q); err != nil {
		return badRequest(c, "invalid query parameters")
	}

	employees, err := h.svc.List(c.Context(), domain.WorkerType(q.WorkerType), q.Page, q.PerPage)
	if err != nil {
		return mapStaffError(c, err)
	}
	return ok(c, employees)
}

// GET /api/v1/staff/:id
func (h *StaffHandler) GetByID(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid staff id")
	}

	e, err := h.svc.GetByID(c.Context(), id)
	if err != nil {
		return mapStaffError(c, err)
	}
	return ok(c, e)
}

// POST /api/v1/staff
func (h *StaffHandler) Create(c fiber.Ctx) error {
	var body struct {
		FirstName  string   `json:"first_name"`
		LastName   string   `json:"last_name"`
		Role       string   `json:"role"`
		Department string   `json:"department"`
		Email      string   `json:"email"`
		Phone      string   `json:"phone"`
		WorkerType string   `json:"worker_type"`
		Skills     []string `json:"skills"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	e, err := h.svc.Create(c.Context(), staff.CreateRequest{
		FirstName:  body.FirstName,
		LastName:   body.LastName,
		Role:       body.Role,
		Department: body.Department,
		Email:      body.Email,
		Phone:      body.Phone,
		WorkerType: domain.WorkerType(body.WorkerType),
		Skills:     body.Skills,
	})
	if err != nil {
		return mapStaffError(c, err)
	}
	return created(c, e)
}

// PATCH /api/v1/staff/:id
func (h *StaffHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid staff id")
	}

	var body struct {
		FirstName  *string  `json:"first_name"`
		LastName   *string  `json:"last_name"`
		Role       *string  `json:"role"`
		Department *string  `json:"department"`
		Email      *string  `json:"email"`
		Phone      *string  `json:"phone"`
		WorkerType *string  `json:"worker_type"`
		Skills     []string `json:"skills"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	var workerType *domain.WorkerType
	if body.WorkerType != nil {
		wt := domain.WorkerType(*body.WorkerType)
		workerType = &wt
	}

	e, err := h.svc.Update(c.Context(), id, staff.UpdateRequest{
		FirstName:  body.FirstName,
		LastName:   body.LastName,
		Role:       body.Role,
		Department: body.Department,
		Email:      body.Email,
		Phone:      body.Phone,
		WorkerType: workerType,
		Skills:     body.Skills,
	})
	if err != nil {
		return mapStaffError(c, err)
	}
	return ok(c, e)
}

// DELETE /api/v1/staff/:id
func (h *StaffHandler) Deactivate(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid staff id")
	}

	if err := h.svc.Deactivate(c.Context(), id); err != nil {
		return mapStaffError(c, err)
	}
	return noContent(c)
}

// GET /api/v1/staff/available
func (h *StaffHandler) Available(c fiber.Ctx) error {
	var q struct {
		WorkerType string `query:"worker_type"`
		Date       string `query:"date"`
		StartTime  string `query:"start_time"`
		EndTime    string `query:"end_time"`
	}
	if err := c.Bind().Query(&q); err != nil {
		return badRequest(c, "invalid query parameters")
	}

	date, err := time.Parse("2006-01-02", q.Date)
	if err != nil {
		return badRequest(c, "invalid date, expected YYYY-MM-DD")
	}
	startTime, err := domain.ParseTimeOfDay(q.StartTime)
	if err != nil {
		return badRequest(c, "invalid start_time, expected HH:MM")
	}
	endTime, err := domain.ParseTimeOfDay(q.EndTime)
	if err != nil {
		return badRequest(c, "invalid end_time, expected HH:MM")
	}

	employees, err := h.svc.Available(c.Context(), staff.AvailabilityRequest{
		WorkerType: domain.WorkerType(q.WorkerType),
		Date:       date,
		StartTime:  startTime,
		EndTime:    endTime,
	})
	if err != nil {
		return mapStaffError(c, err)
	}
	return ok(c, employees)
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

func mapStaffError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, staff.ErrNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, staff.ErrDuplicateEmail):
		return conflict(c, err.Error())
	case domain.IsValidation(err):
		return badRequest(c, err.Error())
	default:
		return internalError(c)
	}
}
