package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/johnwondoh/careroster/internal/domain"
	"github.com/johnwondoh/careroster/internal/service/appointment"
	"github.com/johnwondoh/careroster/pkg/authorize"
	pasetotoken "github.com/johnwondoh/careroster/pkg/paseto"
)

type AppointmentHandler struct {
	svc   appointment.Service
	authz authorize.IAuthorization
}

func NewAppointmentHandler(svc appointment.Service, authz authorize.IAuthorization) *AppointmentHandler {
	return &AppointmentHandler{svc: svc, authz: authz}
}

// canReadSensitive reports whether the authenticated caller may see
// notes flagged sensitive.
func (h *AppointmentHandler) canReadSensitive(c fiber.Ctx) bool {
	claims, valid := pasetotoken.ClaimsFromFiber(c)
	if !valid {
		return false
	}
	allowed, err := h.authz.Enforce(c.Context(),
		authorize.GroupSubject(claims.UserID.String()),
		authorize.DomainOrg,
		authorize.ResourceServiceNote,
		authorize.ActionReadSensitive)
	return err == nil && allowed
}

// GET /api/v1/appointments
func (h *AppointmentHandler) List(c fiber.Ctx) error {
	var q struct {
		ParticipantID string `query:"participant_id"`
		StaffMemberID string `query:"staff_member_id"`
		Status        string `query:"status"`
		From          string `query:"from"`
		To            string `query:"to"`
		Unassigned    bool   `query:"unassigned"`
		Page          int    `query:"page"`
		PerPage       int    `query:"per_page"`
	}
	if err := c.Bind().Query(&q); err != nil {
		return badRequest(c, "invalid query parameters")
	}

	req := appointment.ListRequest{
		UnassignedOnly: q.Unassigned,
		Page:           q.Page,
		PerPage:        q.PerPage,
	}
	if q.ParticipantID != "" {
		id, err := uuid.Parse(q.ParticipantID)
		if err != nil {
			return badRequest(c, "invalid participant_id")
		}
		req.ParticipantID = &id
	}
	if q.StaffMemberID != "" {
		id, err := uuid.Parse(q.StaffMemberID)
		if err != nil {
			return badRequest(c, "invalid staff_member_id")
		}
		req.StaffMemberID = &id
	}
	if q.Status != "" {
		req.Status = &q.Status
	}
	if q.From != "" {
		d, err := time.Parse("2006-01-02", q.From)
		if err != nil {
			return badRequest(c, "invalid from date, expected YYYY-MM-DD")
		}
		req.From = &d
	}
	if q.To != "" {
		d, err := time.Parse("2006-01-02", q.To)
		if err != nil {
			return badRequest(c, "invalid to date, expected YYYY-MM-DD")
		}
		req.To = &d
	}

	appts, err := h.svc.List(c.Context(), req)
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, appts)
}

// GET /api/v1/appointments/:id
func (h *AppointmentHandler) GetByID(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid appointment id")
	}

	a, err := h.svc.GetByID(c.Context(), id)
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, a)
}

// POST /api/v1/appointments
func (h *AppointmentHandler) Create(c fiber.Ctx) error {
	var body struct {
		ParticipantID  string   `json:"participant_id"`
		WorkerType     string   `json:"worker_type"`
		StartDate      string   `json:"start_date"`
		EndDate        *string  `json:"end_date"`
		StartTime      string   `json:"start_time"`
		EndTime        string   `json:"end_time"`
		Location       string   `json:"location"`
		RequiredSkills []string `json:"required_skills"`
		PlanID         *string  `json:"plan_id"`
		Rate           int64    `json:"rate"`
		StaffMemberID  *string  `json:"staff_member_id"`
		Note           string   `json:"note"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	participantID, err := uuid.Parse(body.ParticipantID)
	if err != nil {
		return badRequest(c, "invalid participant_id")
	}
	startDate, err := time.Parse("2006-01-02", body.StartDate)
	if err != nil {
		return badRequest(c, "invalid start_date, expected YYYY-MM-DD")
	}
	startTime, err := domain.ParseTimeOfDay(body.StartTime)
	if err != nil {
		return badRequest(c, "invalid start_time, expected HH:MM")
	}
	endTime, err := domain.ParseTimeOfDay(body.EndTime)
	if err != nil {
		return badRequest(c, "invalid end_time, expected HH:MM")
	}

	req := appointment.CreateRequest{
		ParticipantID:  participantID,
		WorkerType:     domain.WorkerType(body.WorkerType),
		StartDate:      startDate,
		StartTime:      startTime,
		EndTime:        endTime,
		Location:       body.Location,
		RequiredSkills: body.RequiredSkills,
		Rate:           domain.Money(body.Rate),
		Note:           body.Note,
	}
	if body.EndDate != nil && *body.EndDate != "" {
		d, err := time.Parse("2006-01-02", *body.EndDate)
		if err != nil {
			return badRequest(c, "invalid end_date, expected YYYY-MM-DD")
		}
		req.EndDate = &d
	}
	if body.PlanID != nil && *body.PlanID != "" {
		id, err := uuid.Parse(*body.PlanID)
		if err != nil {
			return badRequest(c, "invalid plan_id")
		}
		req.PlanID = &id
	}
	if body.StaffMemberID != nil && *body.StaffMemberID != "" {
		id, err := uuid.Parse(*body.StaffMemberID)
		if err != nil {
			return badRequest(c, "invalid staff_member_id")
		}
		req.StaffMemberID = &id
	}

	a, err := h.svc.Create(c.Context(), req)
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return created(c, a)
}

// PATCH /api/v1/appointments/:id/assign
func (h *AppointmentHandler) Assign(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid appointment id")
	}

	var body struct {
		StaffMemberID string `json:"staff_member_id"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	staffID, err := uuid.Parse(body.StaffMemberID)
	if err != nil {
		return badRequest(c, "invalid staff_member_id")
	}

	a, err := h.svc.Assign(c.Context(), id, staffID)
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, a)
}

// PATCH /api/v1/appointments/:id/unassign
func (h *AppointmentHandler) Unassign(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid appointment id")
	}

	a, err := h.svc.Unassign(c.Context(), id)
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, a)
}

// PATCH /api/v1/appointments/:id/cancel
func (h *AppointmentHandler) Cancel(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid appointment id")
	}

	var body struct {
		Reason string `json:"reason"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := h.svc.Cancel(c.Context(), id, body.Reason); err != nil {
		return mapAppointmentError(c, err)
	}
	return noContent(c)
}

// PATCH /api/v1/appointments/:id/complete
func (h *AppointmentHandler) Complete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid appointment id")
	}

	var body struct {
		HoursDelivered float64 `json:"hours_delivered"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	a, err := h.svc.Complete(c.Context(), id, appointment.CompleteRequest{
		HoursDelivered: body.HoursDelivered,
	})
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, a)
}

// PATCH /api/v1/appointments/:id/no-show
func (h *AppointmentHandler) MarkNoShow(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid appointment id")
	}

	if err := h.svc.MarkNoShow(c.Context(), id); err != nil {
		return mapAppointmentError(c, err)
	}
	return noContent(c)
}

// GET /api/v1/appointments/:id/candidates
func (h *AppointmentHandler) Candidates(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid appointment id")
	}

	candidates, err := h.svc.Candidates(c.Context(), id)
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, candidates)
}

// POST /api/v1/appointments/:id/notes
func (h *AppointmentHandler) AddNote(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid appointment id")
	}

	claims, valid := pasetotoken.ClaimsFromFiber(c)
	if !valid {
		return unauthorized(c)
	}

	var body struct {
		Category  *string `json:"category"`
		Text      string  `json:"text"`
		Sensitive bool    `json:"sensitive"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	note, err := h.svc.AddNote(c.Context(), id, appointment.NoteRequest{
		Category:  body.Category,
		Text:      body.Text,
		Sensitive: body.Sensitive,
		AuthorID:  claims.UserID,
	})
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return created(c, note)
}

// GET /api/v1/appointments/:id/notes
func (h *AppointmentHandler) ListNotes(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid appointment id")
	}

	// Sensitive notes are gated on permission, never on a query flag.
	notes, err := h.svc.ListNotes(c.Context(), id, h.canReadSensitive(c))
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, notes)
}

// GET /api/v1/appointments/metrics (also mounted at /api/v1/roster/metrics)
func (h *AppointmentHandler) Metrics(c fiber.Ctx) error {
	var q struct {
		From string `query:"from"`
		To   string `query:"to"`
	}
	if err := c.Bind().Query(&q); err != nil {
		return badRequest(c, "invalid query parameters")
	}

	// Default to the current fortnight when no range is given.
	now := time.Now()
	from := now.AddDate(0, 0, -14)
	to := now
	if q.From != "" {
		d, err := time.Parse("2006-01-02", q.From)
		if err != nil {
			return badRequest(c, "invalid from date, expected YYYY-MM-DD")
		}
		from = d
	}
	if q.To != "" {
		d, err := time.Parse("2006-01-02", q.To)
		if err != nil {
			return badRequest(c, "invalid to date, expected YYYY-MM-DD")
		}
		to = d
	}

	metrics, err := h.svc.Metrics(c.Context(), from, to)
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, metrics)
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

func mapAppointmentError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, appointment.ErrNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, appointment.ErrStaffNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, appointment.ErrNotScheduled):
		return conflict(c, err.Error())
	case errors.Is(err, appointment.ErrAlreadyAssigned):
		return conflict(c, err.Error())
	case errors.Is(err, appointment.ErrNotAssigned):
		return conflict(c, err.Error())
	case errors.Is(err, appointment.ErrWorkerTypeMismatch):
		return badRequest(c, err.Error())
	case errors.Is(err, appointment.ErrEmptyCancelReason):
		return badRequest(c, err.Error())
	case domain.IsValidation(err):
		return badRequest(c, err.Error())
	default:
		return internalError(c)
	}
}
