package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/johnwondoh/careroster/internal/domain"
	"github.com/johnwondoh/careroster/internal/store"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type CreateRequest struct {
	ParticipantID        uuid.UUID
	WorkerType           domain.WorkerType
	RecurrenceType       domain.RecurrenceType
	RecurrenceDays       []time.Weekday
	FortnightWeek        *int
	RecurrenceDayOfMonth *int
	CustomIntervalDays   *int
	StartTime            domain.TimeOfDay
	EndTime              domain.TimeOfDay
	StartDate            time.Time
	EndDate              *time.Time
	Location             string
	RequiredSkills       []string
	Rate                 domain.Money
	AutoGenerate         bool
	LookAheadWeeks       int
}

type UpdateRequest struct {
	WorkerType           *domain.WorkerType
	RecurrenceType       *domain.RecurrenceType
	RecurrenceDays       []time.Weekday
	FortnightWeek        *int
	RecurrenceDayOfMonth *int
	CustomIntervalDays   *int
	StartTime            *domain.TimeOfDay
	EndTime              *domain.TimeOfDay
	StartDate            *time.Time
	EndDate              *time.Time
	Location             *string
	RequiredSkills       []string
	Rate                 *domain.Money
	AutoGenerate         *bool
	LookAheadWeeks       *int
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	List(ctx context.Context, participantID *uuid.UUID, status *string, page, perPage int) ([]domain.ServiceSchedule, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.ServiceSchedule, error)
	Create(ctx context.Context, req CreateRequest) (domain.ServiceSchedule, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (domain.ServiceSchedule, error)
	Activate(ctx context.Context, id uuid.UUID) (domain.ServiceSchedule, error)
	Pause(ctx context.Context, id uuid.UUID) (domain.ServiceSchedule, error)
	Resume(ctx context.Context, id uuid.UUID) (domain.ServiceSchedule, error)
	End(ctx context.Context, id uuid.UUID) (domain.ServiceSchedule, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Preview returns the occurrence dates in [from, to] without
	// creating appointments.
	Preview(ctx context.Context, id uuid.UUID, from, to time.Time) ([]time.Time, error)

	// Generate creates the schedule's appointments over its look-ahead
	// window and returns how many were inserted. Already generated days
	// are skipped.
	Generate(ctx context.Context, id uuid.UUID) (int, error)

	// GenerateAll runs Generate over every active auto-generating
	// schedule. The background worker calls this on a timer.
	GenerateAll(ctx context.Context) (int, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type scheduleService struct {
	schedules         *store.ScheduleStore
	appts             *store.AppointmentStore
	defaultLookAheadW int
	logger            *slog.Logger
}

func New(schedules *store.ScheduleStore, appts *store.AppointmentStore, defaultLookAheadWeeks int, logger *slog.Logger) Service {
	if defaultLookAheadWeeks < 1 {
		defaultLookAheadWeeks = 4
	}
	return &scheduleService{
		schedules:         schedules,
		appts:             appts,
		defaultLookAheadW: defaultLookAheadWeeks,
		logger:            logger,
	}
}

func (s *scheduleService) List(ctx context.Context, participantID *uuid.UUID, status *string, page, perPage int) ([]domain.ServiceSchedule, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 200 {
		perPage = 50
	}

	var pid uuid.UUID
	if participantID != nil {
		pid = *participantID
	}
	var st domain.ScheduleStatus
	if status != nil {
		st = domain.ScheduleStatus(*status)
		if !st.Valid() {
			return nil, domain.NewValidationError("status", "unknown value "+*status)
		}
	}

	out, err := s.schedules.List(ctx, pid, st, perPage, (page-1)*perPage)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return out, nil
}

func (s *scheduleService) GetByID(ctx context.Context, id uuid.UUID) (domain.ServiceSchedule, error) {
	sc, err := s.schedules.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return domain.ServiceSchedule{}, ErrNotFound
		}
		return domain.ServiceSchedule{}, fmt.Errorf("get schedule: %w", err)
	}
	return sc, nil
}

func (s *scheduleService) Create(ctx context.Context, req CreateRequest) (domain.ServiceSchedule, error) {
	sc := domain.ServiceSchedule{
		ParticipantID:        req.ParticipantID,
		WorkerType:           req.WorkerType,
		RecurrenceType:       req.RecurrenceType,
		RecurrenceDays:       req.RecurrenceDays,
		FortnightWeek:        req.FortnightWeek,
		RecurrenceDayOfMonth: req.RecurrenceDayOfMonth,
		CustomIntervalDays:   req.CustomIntervalDays,
		StartTime:            req.StartTime,
		EndTime:              req.EndTime,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		Location:             req.Location,
		RequiredSkills:       req.RequiredSkills,
		Rate:                 req.Rate,
		AutoGenerate:         req.AutoGenerate,
		LookAheadWeeks:       req.LookAheadWeeks,
		Status:               domain.ScheduleDraft,
	}
	if !sc.WorkerType.Valid() {
		return domain.ServiceSchedule{}, domain.NewValidationError("worker_type", "unknown value "+string(sc.WorkerType))
	}
	if sc.Rate < 0 {
		return domain.ServiceSchedule{}, domain.NewValidationError("rate", "must not be negative")
	}
	if sc.EndTime.MinuteOfDay() <= sc.StartTime.MinuteOfDay() {
		return domain.ServiceSchedule{}, domain.NewValidationError("end_time", "must be after start_time")
	}
	if sc.LookAheadWeeks < 1 {
		sc.LookAheadWeeks = s.defaultLookAheadW
	}
	if sc.RequiredSkills == nil {
		sc.RequiredSkills = []string{}
	}
	if err := sc.Validate(); err != nil {
		return domain.ServiceSchedule{}, err
	}

	if err := s.schedules.Create(ctx, &sc); err != nil {
		return domain.ServiceSchedule{}, fmt.Errorf("create schedule: %w", err)
	}
	return sc, nil
}

func (s *scheduleService) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (domain.ServiceSchedule, error) {
	sc, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.ServiceSchedule{}, err
	}
	if sc.Status != domain.ScheduleDraft && sc.Status != domain.SchedulePaused {
		return domain.ServiceSchedule{}, ErrNotEditable
	}

	if req.WorkerType != nil {
		if !req.WorkerType.Valid() {
			return domain.ServiceSchedule{}, domain.NewValidationError("worker_type", "unknown value "+string(*req.WorkerType))
		}
		sc.WorkerType = *req.WorkerType
	}
	if req.RecurrenceType != nil {
		// Changing the recurrence type resets the parameters that no
		// longer apply; the caller supplies the new ones.
		sc.RecurrenceType = *req.RecurrenceType
		sc.RecurrenceDays = nil
		sc.FortnightWeek = nil
		sc.RecurrenceDayOfMonth = nil
		sc.CustomIntervalDays = nil
	}
	if req.RecurrenceDays != nil {
		sc.RecurrenceDays = req.RecurrenceDays
	}
	if req.FortnightWeek != nil {
		sc.FortnightWeek = req.FortnightWeek
	}
	if req.RecurrenceDayOfMonth != nil {
		sc.RecurrenceDayOfMonth = req.RecurrenceDayOfMonth
	}
	if req.CustomIntervalDays != nil {
		sc.CustomIntervalDays = req.CustomIntervalDays
	}
	if req.StartTime != nil {
		sc.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		sc.EndTime = *req.EndTime
	}
	if req.StartDate != nil {
		sc.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		sc.EndDate = req.EndDate
	}
	if req.Location != nil {
		sc.Location = *req.Location
	}
	if req.RequiredSkills != nil {
		sc.RequiredSkills = req.RequiredSkills
	}
	if req.Rate != nil {
		if *req.Rate < 0 {
			return domain.ServiceSchedule{}, domain.NewValidationError("rate", "must not be negative")
		}
		sc.Rate = *req.Rate
	}
	if req.AutoGenerate != nil {
		sc.AutoGenerate = *req.AutoGenerate
	}
	if req.LookAheadWeeks != nil {
		if *req.LookAheadWeeks < 1 {
			return domain.ServiceSchedule{}, domain.NewValidationError("look_ahead_weeks", "must be >= 1")
		}
		sc.LookAheadWeeks = *req.LookAheadWeeks
	}
	if sc.EndTime.MinuteOfDay() <= sc.StartTime.MinuteOfDay() {
		return domain.ServiceSchedule{}, domain.NewValidationError("end_time", "must be after start_time")
	}
	if err := sc.Validate(); err != nil {
		return domain.ServiceSchedule{}, err
	}

	if err := s.schedules.Update(ctx, &sc); err != nil {
		return domain.ServiceSchedule{}, fmt.Errorf("update schedule: %w", err)
	}
	return sc, nil
}

func (s *scheduleService) Activate(ctx context.Context, id uuid.UUID) (domain.ServiceSchedule, error) {
	return s.transition(ctx, id, domain.ScheduleActive, domain.ScheduleDraft)
}

func (s *scheduleService) Pause(ctx context.Context, id uuid.UUID) (domain.ServiceSchedule, error) {
	return s.transition(ctx, id, domain.SchedulePaused, domain.ScheduleActive)
}

func (s *scheduleService) Resume(ctx context.Context, id uuid.UUID) (domain.ServiceSchedule, error) {
	return s.transition(ctx, id, domain.ScheduleActive, domain.SchedulePaused)
}

func (s *scheduleService) End(ctx context.Context, id uuid.UUID) (domain.ServiceSchedule, error) {
	return s.transition(ctx, id, domain.ScheduleEnded, domain.ScheduleActive, domain.SchedulePaused)
}

func (s *scheduleService) Delete(ctx context.Context, id uuid.UUID) error {
	sc, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sc.Status != domain.ScheduleDraft {
		return ErrNotEditable
	}
	if err := s.schedules.Delete(ctx, id); err != nil {
		if store.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete schedule: %w", err)
	}
	return nil
}

func (s *scheduleService) Preview(ctx context.Context, id uuid.UUID, from, to time.Time) ([]time.Time, error) {
	sc, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, domain.NewValidationError("to", "must not precede from")
	}
	return sc.Occurrences(from, to), nil
}

func (s *scheduleService) Generate(ctx context.Context, id uuid.UUID) (int, error) {
	sc, err := s.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if sc.Status != domain.ScheduleActive {
		return 0, ErrNotActive
	}
	return s.generate(ctx, sc)
}

func (s *scheduleService) GenerateAll(ctx context.Context) (int, error) {
	schedules, err := s.schedules.ListGeneratable(ctx)
	if err != nil {
		return 0, fmt.Errorf("list generatable schedules: %w", err)
	}

	total := 0
	for _, sc := range schedules {
		n, err := s.generate(ctx, sc)
		if err != nil {
			// One broken schedule must not stall the rest.
			s.logger.Error("generate schedule appointments",
				slog.String("schedule_id", sc.ID.String()),
				slog.String("error", err.Error()))
			continue
		}
		total += n
	}
	return total, nil
}

func (s *scheduleService) generate(ctx context.Context, sc domain.ServiceSchedule) (int, error) {
	now := time.Now().UTC()
	until := now.AddDate(0, 0, sc.LookAheadWeeks*7)

	inserted := 0
	for _, day := range sc.Occurrences(now, until) {
		appt := domain.Appointment{
			ParticipantID:  sc.ParticipantID,
			WorkerType:     sc.WorkerType,
			StartDate:      day,
			StartTime:      sc.StartTime,
			EndTime:        sc.EndTime,
			Location:       sc.Location,
			RequiredSkills: sc.RequiredSkills,
			Rate:           sc.Rate,
		}
		appt.DurationMinutes = appt.WallClockMinutes()

		ok, err := s.appts.CreateGenerated(ctx, sc.ID, &appt)
		if err != nil {
			return inserted, fmt.Errorf("insert generated appointment: %w", err)
		}
		if ok {
			inserted++
		}
	}

	if inserted > 0 {
		s.logger.Info("generated appointments",
			slog.String("schedule_id", sc.ID.String()),
			slog.Int("count", inserted))
	}
	return inserted, nil
}

func (s *scheduleService) transition(ctx context.Context, id uuid.UUID, to domain.ScheduleStatus, from ...domain.ScheduleStatus) (domain.ServiceSchedule, error) {
	sc, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.ServiceSchedule{}, err
	}
	if sc.Status == domain.ScheduleEnded {
		return domain.ServiceSchedule{}, ErrEnded
	}

	allowed := false
	for _, f := range from {
		if sc.Status == f {
			allowed = true
			break
		}
	}
	if !allowed {
		return domain.ServiceSchedule{}, fmt.Errorf("%w: cannot move from %s to %s", ErrNotEditable, sc.Status, to)
	}

	if err := s.schedules.SetStatus(ctx, id, to); err != nil {
		return domain.ServiceSchedule{}, fmt.Errorf("set schedule status: %w", err)
	}
	sc.Status = to
	return sc, nil
}
