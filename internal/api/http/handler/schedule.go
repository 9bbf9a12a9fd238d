package handler

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/johnwondoh/careroster/internal/domain"
	"github.com/johnwondoh/careroster/internal/service/schedule"
)

type ScheduleHandler struct {
	svc schedule.Service
}

func NewScheduleHandler(svc schedule.Service) *ScheduleHandler {
	return &ScheduleHandler{svc: svc}
}

// GET /api/v1/schedules
func (h *ScheduleHandler) List(c fiber.Ctx) error {
	var q struct {
		ParticipantID string `query:"participant_id"`
		Status        string `query:"status"`
		Page          int    `query:"page"`
		PerPage       int    `query:"per_page"`
	}
	if err := c.Bind().Query(&q); err != nil {
		return badRequest(c, "invalid query parameters")
	}

	var participantID *uuid.UUID
	if q.ParticipantID != "" {
		id, err := uuid.Parse(q.ParticipantID)
		if err != nil {
			return badRequest(c, "invalid participant_id")
		}
		participantID = &id
	}
	var status *string
	if q.Status != "" {
		status = &q.Status
	}

	schedules, err := h.svc.List(c.Context(), participantID, status, q.Page, q.PerPage)
	if err != nil {
		return mapScheduleError(c, err)
	}
	return ok(c, schedules)
}

// GET /api/v1/schedules/:id
func (h *ScheduleHandler) GetByID(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid schedule id")
	}

	sc, err := h.svc.GetByID(c.Context(), id)
	if err != nil {
		return mapScheduleError(c, err)
	}
	return ok(c, sc)
}

// POST /api/v1/schedules
func (h *ScheduleHandler) Create(c fiber.Ctx) error {
	var body struct {
		ParticipantID        string   `json:"participant_id"`
		WorkerType           string   `json:"worker_type"`
		RecurrenceType       string   `json:"recurrence_type"`
		RecurrenceDays       []int    `json:"recurrence_days"`
		FortnightWeek        *int     `json:"fortnight_week"`
		RecurrenceDayOfMonth *int     `json:"recurrence_day_of_month"`
		CustomIntervalDays   *int     `json:"custom_interval_days"`
		StartTime            string   `json:"start_time"`
		EndTime              string   `json:"end_time"`
		StartDate            string   `json:"start_date"`
		EndDate              *string  `json:"end_date"`
		Location             string   `json:"location"`
		RequiredSkills       []string `json:"required_skills"`
		Rate                 int64    `json:"rate"`
		AutoGenerate         bool     `json:"auto_generate"`
		LookAheadWeeks       int      `json:"look_ahead_weeks"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	participantID, err := uuid.Parse(body.ParticipantID)
	if err != nil {
		return badRequest(c, "invalid participant_id")
	}
	startTime, err := domain.ParseTimeOfDay(body.StartTime)
	if err != nil {
		return badRequest(c, "invalid start_time, expected HH:MM")
	}
	endTime, err := domain.ParseTimeOfDay(body.EndTime)
	if err != nil {
		return badRequest(c, "invalid end_time, expected HH:MM")
	}
	startDate, err := time.Parse("2006-01-02", body.StartDate)
	if err != nil {
		return badRequest(c, "invalid start_date, expected YYYY-MM-DD")
	}

	req := schedule.CreateRequest{
		ParticipantID:        participantID,
		WorkerType:           domain.WorkerType(body.WorkerType),
		RecurrenceType:       domain.RecurrenceType(body.RecurrenceType),
		RecurrenceDays:       toWeekdays(body.RecurrenceDays),
		FortnightWeek:        body.FortnightWeek,
		RecurrenceDayOfMonth: body.RecurrenceDayOfMonth,
		CustomIntervalDays:   body.CustomIntervalDays,
		StartTime:            startTime,
		EndTime:              endTime,
		StartDate:            startDate,
		Location:             body.Location,
		RequiredSkills:       body.RequiredSkills,
		Rate:                 domain.Money(body.Rate),
		AutoGenerate:         body.AutoGenerate,
		LookAheadWeeks:       body.LookAheadWeeks,
	}
	if body.EndDate != nil && *body.EndDate != "" {
		d, err := time.Parse("2006-01-02", *body.EndDate)
		if err != nil {
			return badRequest(c, "invalid end_date, expected YYYY-MM-DD")
		}
		req.EndDate = &d
	}

	sc, err := h.svc.Create(c.Context(), req)
	if err != nil {
		return mapScheduleError(c, err)
	}
	return created(c, sc)
}

// PATCH /api/v1/schedules/:id
func (h *ScheduleHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid schedule id")
	}

	var body struct {
		WorkerType           *string  `json:"worker_type"`
		RecurrenceType       *string  `json:"recurrence_type"`
		RecurrenceDays       []int    `json:"recurrence_days"`
		FortnightWeek        *int     `json:"fortnight_week"`
		RecurrenceDayOfMonth *int     `json:"recurrence_day_of_month"`
		CustomIntervalDays   *int     `json:"custom_interval_days"`
		StartTime            *string  `json:"start_time"`
		EndTime              *string  `json:"end_time"`
		StartDate            *string  `json:"start_date"`
		EndDate              *string  `json:"end_date"`
		Location             *string  `json:"location"`
		RequiredSkills       []string `json:"required_skills"`
		Rate                 *int64   `json:"rate"`
		AutoGenerate         *bool    `json:"auto_generate"`
		LookAheadWeeks       *int     `json:"look_ahead_weeks"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	req := schedule.UpdateRequest{
		RecurrenceDays:       toWeekdays(body.RecurrenceDays),
		FortnightWeek:        body.FortnightWeek,
		RecurrenceDayOfMonth: body.RecurrenceDayOfMonth,
		CustomIntervalDays:   body.CustomIntervalDays,
		Location:             body.Location,
		RequiredSkills:       body.RequiredSkills,
		AutoGenerate:         body.AutoGenerate,
		LookAheadWeeks:       body.LookAheadWeeks,
	}
	if body.WorkerType != nil {
		wt := domain.WorkerType(*body.WorkerType)
		req.WorkerType = &wt
	}
	if body.RecurrenceType != nil {
		rt := domain.RecurrenceType(*body.RecurrenceType)
		req.RecurrenceType = &rt
	}
	if body.StartTime != nil {
		t, err := domain.ParseTimeOfDay(*body.StartTime)
		if err != nil {
			return badRequest(c, "invalid start_time, expected HH:MM")
		}
		req.StartTime = &t
	}
	if body.EndTime != nil {
		t, err := domain.ParseTimeOfDay(*body.EndTime)
		if err != nil {
			return badRequest(c, "invalid end_time, expected HH:MM")
		}
		req.EndTime = &t
	}
	if body.StartDate != nil {
		d, err := time.Parse("2006-01-02", *body.StartDate)
		if err != nil {
			return badRequest(c, "invalid start_date, expected YYYY-MM-DD")
		}
		req.StartDate = &d
	}
	if body.EndDate != nil && *body.EndDate != "" {
		d, err := time.Parse("2006-01-02", *body.EndDate)
		if err != nil {
			return badRequest(c, "invalid end_date, expected YYYY-MM-DD")
		}
		req.EndDate = &d
	}
	if body.Rate != nil {
		r := domain.Money(*body.Rate)
		req.Rate = &r
	}

	sc, err := h.svc.Update(c.Context(), id, req)
	if err != nil {
		return mapScheduleError(c, err)
	}
	return ok(c, sc)
}

// PATCH /api/v1/schedules/:id/activate
func (h *ScheduleHandler) Activate(c fiber.Ctx) error {
	return h.transition(c, h.svc.Activate)
}

// PATCH /api/v1/schedules/:id/pause
func (h *ScheduleHandler) Pause(c fiber.Ctx) error {
	return h.transition(c, h.svc.Pause)
}

// PATCH /api/v1/schedules/:id/resume
func (h *ScheduleHandler) Resume(c fiber.Ctx) error {
	return h.transition(c, h.svc.Resume)
}

// PATCH /api/v1/schedules/:id/end
func (h *ScheduleHandler) End(c fiber.Ctx) error {
	return h.transition(c, h.svc.End)
}

// DELETE /api/v1/schedules/:id
func (h *ScheduleHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid schedule id")
	}

	if err := h.svc.Delete(c.Context(), id); err != nil {
		return mapScheduleError(c, err)
	}
	return noContent(c)
}

// GET /api/v1/schedules/:id/preview
func (h *ScheduleHandler) Preview(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid schedule id")
	}

	var q struct {
		From string `query:"from"`
		To   string `query:"to"`
	}
	if err := c.Bind().Query(&q); err != nil {
		return badRequest(c, "invalid query parameters")
	}
	from, err := time.Parse("2006-01-02", q.From)
	if err != nil {
		return badRequest(c, "invalid from date, expected YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", q.To)
	if err != nil {
		return badRequest(c, "invalid to date, expected YYYY-MM-DD")
	}

	dates, err := h.svc.Preview(c.Context(), id, from, to)
	if err != nil {
		return mapScheduleError(c, err)
	}

	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format("2006-01-02"))
	}
	return ok(c, out)
}

// POST /api/v1/schedules/:id/generate
func (h *ScheduleHandler) Generate(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid schedule id")
	}

	n, err := h.svc.Generate(c.Context(), id)
	if err != nil {
		return mapScheduleError(c, err)
	}
	return ok(c, fiber.Map{"generated": n})
}

func (h *ScheduleHandler) transition(c fiber.Ctx, fn func(context.Context, uuid.UUID) (domain.ServiceSchedule, error)) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid schedule id")
	}

	sc, err := fn(c.Context(), id)
	if err != nil {
		return mapScheduleError(c, err)
	}
	return ok(c, sc)
}

func toWeekdays(days []int) []time.Weekday {
	if days == nil {
		return nil
	}
	out := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		out = append(out, time.Weekday(d))
	}
	return out
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

func mapScheduleError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, schedule.ErrNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, schedule.ErrNotActive):
		return conflict(c, err.Error())
	case errors.Is(err, schedule.ErrEnded):
		return conflict(c, err.Error())
	case errors.Is(err, schedule.ErrNotEditable):
		return conflict(c, err.Error())
	case domain.IsValidation(err):
		return badRequest(c, err.Error())
	default:
		return internalError(c)
	}
}
