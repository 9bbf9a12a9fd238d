package appointment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/johnwondoh/careroster/internal/domain"
	"github.com/johnwondoh/careroster/internal/events"
	"github.com/johnwondoh/careroster/internal/store"
	"github.com/johnwondoh/careroster/pkg/constants"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type ListRequest struct {
	ParticipantID  *uuid.UUID
	StaffMemberID  *uuid.UUID
	Status         *string
	From           *time.Time
	To             *time.Time
	UnassignedOnly bool
	Page           int
	PerPage        int
}

type CreateRequest struct {
	ParticipantID  uuid.UUID
	WorkerType     domain.WorkerType
	StartDate      time.Time
	EndDate        *time.Time
	StartTime      domain.TimeOfDay
	EndTime        domain.TimeOfDay
	Location       string
	RequiredSkills []string
	PlanID         *uuid.UUID
	Rate           domain.Money
	StaffMemberID  *uuid.UUID
	Note           string
}

type CompleteRequest struct {
	HoursDelivered float64
}

type NoteRequest struct {
	Category  *string
	Text      string
	Sensitive bool
	// AuthorID is the authenticated user writing the note, never
	// client-asserted.
	AuthorID uuid.UUID
}

// Publisher is the slice of the NATS connection the service needs.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	List(ctx context.Context, req ListRequest) ([]domain.Appointment, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Appointment, error)
	Create(ctx context.Context, req CreateRequest) (domain.Appointment, error)
	Assign(ctx context.Context, apptID, staffID uuid.UUID) (domain.Appointment, error)
	Unassign(ctx context.Context, apptID uuid.UUID) (domain.Appointment, error)
	Cancel(ctx context.Context, apptID uuid.UUID, reason string) error
	Complete(ctx context.Context, apptID uuid.UUID, req CompleteRequest) (domain.Appointment, error)
	MarkNoShow(ctx context.Context, apptID uuid.UUID) error
	Candidates(ctx context.Context, apptID uuid.UUID) ([]domain.StaffCandidate, error)
	AddNote(ctx context.Context, apptID uuid.UUID, req NoteRequest) (domain.ServiceNote, error)
	ListNotes(ctx context.Context, apptID uuid.UUID, includeSensitive bool) ([]domain.ServiceNote, error)
	Metrics(ctx context.Context, from, to time.Time) (domain.RosterMetrics, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type appointmentService struct {
	appts      *store.AppointmentStore
	employees  *store.EmployeeStore
	plans      *store.PlanStore
	users      *store.UserStore
	publisher  Publisher
	thresholds domain.Thresholds
	logger     *slog.Logger
}

func New(
	appts *store.AppointmentStore,
	employees *store.EmployeeStore,
	plans *store.PlanStore,
	users *store.UserStore,
	publisher Publisher,
	thresholds domain.Thresholds,
	logger *slog.Logger,
) Service {
	return &appointmentService{
		appts:      appts,
		employees:  employees,
		plans:      plans,
		users:      users,
		publisher:  publisher,
		thresholds: thresholds,
		logger:     logger,
	}
}

func (s *appointmentService) List(ctx context.Context, req ListRequest) ([]domain.Appointment, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage < 1 || req.PerPage > 200 {
		req.PerPage = 50
	}

	f := store.AppointmentFilter{
		UnassignedOnly: req.UnassignedOnly,
		Limit:          req.PerPage,
		Offset:         (req.Page - 1) * req.PerPage,
	}
	if req.ParticipantID != nil {
		f.ParticipantID = *req.ParticipantID
	}
	if req.StaffMemberID != nil {
		f.StaffMemberID = *req.StaffMemberID
	}
	if req.Status != nil {
		f.Status = domain.AppointmentStatus(*req.Status)
		if !f.Status.Valid() {
			return nil, domain.NewValidationError("status", "unknown value "+*req.Status)
		}
	}
	if req.From != nil {
		f.From = *req.From
	}
	if req.To != nil {
		f.To = *req.To
	}

	appts, err := s.appts.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appts, nil
}

func (s *appointmentService) GetByID(ctx context.Context, id uuid.UUID) (domain.Appointment, error) {
	appt, err := s.appts.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return domain.Appointment{}, ErrNotFound
		}
		return domain.Appointment{}, fmt.Errorf("get appointment: %w", err)
	}

	// Sensitive notes stay out of the default read path; callers with
	// the right permission fetch them through ListNotes.
	notes, err := s.appts.ListServiceNotes(ctx, id, false)
	if err != nil {
		return domain.Appointment{}, fmt.Errorf("load service notes: %w", err)
	}
	appt.ServiceNotes = notes

	if err := appt.Validate(); err != nil {
		s.logger.Warn("appointment failed validation on read",
			slog.String("appointment_id", id.String()),
			slog.String("error", err.Error()))
	}
	return appt, nil
}

func (s *appointmentService) Create(ctx context.Context, req CreateRequest) (domain.Appointment, error) {
	if !req.WorkerType.Valid() {
		return domain.Appointment{}, domain.NewValidationError("worker_type", "unknown value "+string(req.WorkerType))
	}
	if !req.StartTime.Valid() || !req.EndTime.Valid() {
		return domain.Appointment{}, domain.NewValidationError("start_time", "times must be within 00:00-23:59")
	}
	if req.Rate < 0 {
		return domain.Appointment{}, domain.NewValidationError("rate", "must not be negative")
	}

	appt := domain.Appointment{
		ParticipantID:  req.ParticipantID,
		WorkerType:     req.WorkerType,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Location:       req.Location,
		RequiredSkills: req.RequiredSkills,
		PlanID:         req.PlanID,
		Rate:           req.Rate,
		Status:         domain.StatusScheduled,
		StaffMemberID:  req.StaffMemberID,
		Note:           req.Note,
	}
	if appt.RequiredSkills == nil {
		appt.RequiredSkills = []string{}
	}
	appt.DurationMinutes = appt.WallClockMinutes()
	if appt.DurationMinutes <= 0 {
		return domain.Appointment{}, domain.NewValidationError("end_time", "appointment interval must be positive; set end_date for intervals crossing midnight")
	}

	if req.StaffMemberID != nil {
		emp, err := s.employees.GetByID(ctx, *req.StaffMemberID)
		if err != nil {
			if store.IsNotFound(err) {
				return domain.Appointment{}, ErrStaffNotFound
			}
			return domain.Appointment{}, fmt.Errorf("get staff member: %w", err)
		}
		if emp.WorkerType != req.WorkerType {
			return domain.Appointment{}, ErrWorkerTypeMismatch
		}
	}

	if err := s.appts.Create(ctx, &appt); err != nil {
		return domain.Appointment{}, fmt.Errorf("create appointment: %w", err)
	}

	if appt.PlanID != nil {
		if err := s.plans.AddCommitted(ctx, *appt.PlanID, committedFor(appt.Rate, appt.DurationMinutes)); err != nil {
			s.logger.Error("commit plan funds",
				slog.String("appointment_id", appt.ID.String()),
				slog.String("error", err.Error()))
		}
	}

	return s.GetByID(ctx, appt.ID)
}

func (s *appointmentService) Assign(ctx context.Context, apptID, staffID uuid.UUID) (domain.Appointment, error) {
	appt, err := s.GetByID(ctx, apptID)
	if err != nil {
		return domain.Appointment{}, err
	}
	if appt.Status != domain.StatusScheduled {
		return domain.Appointment{}, ErrNotScheduled
	}
	if appt.HasAssignedStaff() {
		return domain.Appointment{}, ErrAlreadyAssigned
	}

	emp, err := s.employees.GetByID(ctx, staffID)
	if err != nil {
		if store.IsNotFound(err) {
			return domain.Appointment{}, ErrStaffNotFound
		}
		return domain.Appointment{}, fmt.Errorf("get staff member: %w", err)
	}
	if emp.WorkerType != appt.WorkerType {
		return domain.Appointment{}, ErrWorkerTypeMismatch
	}

	if err := s.appts.SetStaffMember(ctx, apptID, &staffID); err != nil {
		if store.IsNotFound(err) {
			return domain.Appointment{}, ErrNotScheduled
		}
		return domain.Appointment{}, fmt.Errorf("assign staff member: %w", err)
	}

	s.publish(constants.SubjectRosterAssigned, events.RosterAssigned{
		AppointmentID: apptID,
		ParticipantID: appt.ParticipantID,
		StaffMemberID: staffID,
		StartDate:     appt.StartDate,
		StartTime:     appt.StartTime.String(),
		EndTime:       appt.EndTime.String(),
		Location:      appt.Location,
	})

	return s.GetByID(ctx, apptID)
}

func (s *appointmentService) Unassign(ctx context.Context, apptID uuid.UUID) (domain.Appointment, error) {
	appt, err := s.GetByID(ctx, apptID)
	if err != nil {
		return domain.Appointment{}, err
	}
	if appt.Status != domain.StatusScheduled {
		return domain.Appointment{}, ErrNotScheduled
	}
	if !appt.HasAssignedStaff() {
		return domain.Appointment{}, ErrNotAssigned
	}

	if err := s.appts.SetStaffMember(ctx, apptID, nil); err != nil {
		return domain.Appointment{}, fmt.Errorf("unassign staff member: %w", err)
	}
	return s.GetByID(ctx, apptID)
}

func (s *appointmentService) Cancel(ctx context.Context, apptID uuid.UUID, reason string) error {
	if reason == "" {
		return ErrEmptyCancelReason
	}

	appt, err := s.GetByID(ctx, apptID)
	if err != nil {
		return err
	}
	if appt.Status != domain.StatusScheduled {
		return ErrNotScheduled
	}

	cancelledAt, err := s.appts.Cancel(ctx, apptID, reason)
	if err != nil {
		if store.IsNotFound(err) {
			return ErrNotScheduled
		}
		return fmt.Errorf("cancel appointment: %w", err)
	}

	// Release the funds committed at creation time.
	if appt.PlanID != nil {
		if err := s.plans.AddCommitted(ctx, *appt.PlanID, -committedFor(appt.Rate, appt.DurationMinutes)); err != nil {
			s.logger.Error("release plan funds",
				slog.String("appointment_id", apptID.String()),
				slog.String("error", err.Error()))
		}
	}

	s.publish(constants.SubjectAppointmentCancelled, events.AppointmentCancelled{
		AppointmentID: apptID,
		ParticipantID: appt.ParticipantID,
		StaffMemberID: appt.StaffMemberID,
		StartDate:     appt.StartDate,
		Reason:        reason,
		CancelledAt:   cancelledAt,
	})
	return nil
}

func (s *appointmentService) Complete(ctx context.Context, apptID uuid.UUID, req CompleteRequest) (domain.Appointment, error) {
	if req.HoursDelivered <= 0 {
		return domain.Appointment{}, domain.NewValidationError("hours_delivered", "must be positive")
	}

	appt, err := s.GetByID(ctx, apptID)
	if err != nil {
		return domain.Appointment{}, err
	}
	if appt.Status != domain.StatusScheduled {
		return domain.Appointment{}, ErrNotScheduled
	}

	amount := domain.Money(math.Round(float64(appt.Rate) * req.HoursDelivered))
	if err := s.appts.Complete(ctx, apptID, req.HoursDelivered, amount); err != nil {
		if store.IsNotFound(err) {
			return domain.Appointment{}, ErrNotScheduled
		}
		return domain.Appointment{}, fmt.Errorf("complete appointment: %w", err)
	}

	// Move the committed estimate onto the spent balance.
	if appt.PlanID != nil {
		if err := s.plans.RecordSpend(ctx, *appt.PlanID, committedFor(appt.Rate, appt.DurationMinutes), amount); err != nil {
			s.logger.Error("record plan spend",
				slog.String("appointment_id", apptID.String()),
				slog.String("error", err.Error()))
		}
	}

	return s.GetByID(ctx, apptID)
}

func (s *appointmentService) MarkNoShow(ctx context.Context, apptID uuid.UUID) error {
	if err := s.appts.MarkNoShow(ctx, apptID); err != nil {
		if store.IsNotFound(err) {
			return ErrNotScheduled
		}
		return fmt.Errorf("mark no-show: %w", err)
	}
	return nil
}

// Candidates scores every active employee of the appointment's worker
// type against its skill requirements, marking which are free for the
// appointment's window. Unavailable candidates stay in the ranked list.
func (s *appointmentService) Candidates(ctx context.Context, apptID uuid.UUID) ([]domain.StaffCandidate, error) {
	appt, err := s.GetByID(ctx, apptID)
	if err != nil {
		return nil, err
	}
	if appt.Status != domain.StatusScheduled {
		return nil, ErrNotScheduled
	}

	all, err := s.employees.List(ctx, appt.WorkerType, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	free, err := s.employees.ListAvailable(ctx, appt.WorkerType, appt.StartDate,
		appt.StartTime.MinuteOfDay(), appt.EndTime.MinuteOfDay())
	if err != nil {
		return nil, fmt.Errorf("list available employees: %w", err)
	}
	available := make(map[uuid.UUID]struct{}, len(free))
	for _, e := range free {
		available[e.ID] = struct{}{}
	}

	cands := make([]domain.StaffCandidate, 0, len(all))
	for _, emp := range all {
		_, ok := available[emp.ID]
		cands = append(cands, domain.ScoreCandidate(appt.RequiredSkills, emp, ok, s.thresholds))
	}
	domain.RankCandidates(cands)
	return cands, nil
}

func (s *appointmentService) AddNote(ctx context.Context, apptID uuid.UUID, req NoteRequest) (domain.ServiceNote, error) {
	if req.Text == "" {
		return domain.ServiceNote{}, domain.NewValidationError("text", "must not be empty")
	}
	if _, err := s.GetByID(ctx, apptID); err != nil {
		return domain.ServiceNote{}, err
	}

	author, err := s.users.GetByID(ctx, req.AuthorID)
	if err != nil {
		if store.IsNotFound(err) {
			return domain.ServiceNote{}, domain.NewValidationError("author", "unknown user")
		}
		return domain.ServiceNote{}, fmt.Errorf("resolve note author: %w", err)
	}

	note := domain.ServiceNote{
		AppointmentID: apptID,
		Category:      req.Category,
		Text:          req.Text,
		Sensitive:     req.Sensitive,
		AuthorID:      author.ID,
		AuthorName:    author.DisplayName(),
	}
	if err := s.appts.AddServiceNote(ctx, &note); err != nil {
		return domain.ServiceNote{}, fmt.Errorf("add service note: %w", err)
	}
	return note, nil
}

func (s *appointmentService) ListNotes(ctx context.Context, apptID uuid.UUID, includeSensitive bool) ([]domain.ServiceNote, error) {
	notes, err := s.appts.ListServiceNotes(ctx, apptID, includeSensitive)
	if err != nil {
		return nil, fmt.Errorf("list service notes: %w", err)
	}
	return notes, nil
}

// metricsPageSize bounds a single metrics query; Metrics pages until the
// whole range is covered.
const metricsPageSize = 1000

func (s *appointmentService) Metrics(ctx context.Context, from, to time.Time) (domain.RosterMetrics, error) {
	all, err := collectRange(ctx, s.appts.List, from, to)
	if err != nil {
		return domain.RosterMetrics{}, fmt.Errorf("list appointments for metrics: %w", err)
	}
	return domain.Rollup(all), nil
}

// collectRange pages through every appointment in [from, to].
func collectRange(ctx context.Context, list func(context.Context, store.AppointmentFilter) ([]domain.Appointment, error), from, to time.Time) ([]domain.Appointment, error) {
	var all []domain.Appointment
	for offset := 0; ; offset += metricsPageSize {
		page, err := list(ctx, store.AppointmentFilter{
			From:   from,
			To:     to,
			Limit:  metricsPageSize,
			Offset: offset,
		})
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < metricsPageSize {
			break
		}
	}
	return all, nil
}

func (s *appointmentService) publish(subject string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("marshal event", slog.String("subject", subject), slog.String("error", err.Error()))
		return
	}
	if err := s.publisher.Publish(subject, data); err != nil {
		s.logger.Error("publish event", slog.String("subject", subject), slog.String("error", err.Error()))
	}
}

// committedFor estimates the cost of an appointment from its hourly
// rate and planned duration, in integer cents.
func committedFor(rate domain.Money, minutes int) domain.Money {
	return domain.Money((int64(rate)*int64(minutes) + 30) / 60)
}
