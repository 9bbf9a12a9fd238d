package timesheet

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
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

type CreateRequest struct {
	EmployeeID  uuid.UUID
	PeriodStart time.Time
	PeriodEnd   time.Time
	Minutes     int
	Rate        domain.Money
	Notes       *string
}

type UpdateRequest struct {
	PeriodStart *time.Time
	PeriodEnd   *time.Time
	Minutes     *int
	Rate        *domain.Money
	Notes       *string
}

type ListRequest struct {
	EmployeeID *uuid.UUID
	Status     *string
	Page       int
	PerPage    int
}

// Publisher is the slice of the NATS connection the service needs.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	List(ctx context.Context, req ListRequest) ([]domain.Timesheet, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Timesheet, error)
	Create(ctx context.Context, req CreateRequest) (domain.Timesheet, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (domain.Timesheet, error)
	Submit(ctx context.Context, id uuid.UUID) (domain.Timesheet, error)
	Approve(ctx context.Context, id, decidedBy uuid.UUID, notes *string) (domain.Timesheet, error)
	Reject(ctx context.Context, id, decidedBy uuid.UUID, reason string) (domain.Timesheet, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type timesheetService struct {
	timesheets *store.TimesheetStore
	employees  *store.EmployeeStore
	publisher  Publisher
	logger     *slog.Logger
}

func New(timesheets *store.TimesheetStore, employees *store.EmployeeStore, publisher Publisher, logger *slog.Logger) Service {
	return &timesheetService{
		timesheets: timesheets,
		employees:  employees,
		publisher:  publisher,
		logger:     logger,
	}
}

func (s *timesheetService) List(ctx context.Context, req ListRequest) ([]domain.Timesheet, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage < 1 || req.PerPage > 200 {
		req.PerPage = 50
	}

	var employeeID uuid.UUID
	if req.EmployeeID != nil {
		employeeID = *req.EmployeeID
	}
	var status domain.TimesheetStatus
	if req.Status != nil {
		status = domain.TimesheetStatus(*req.Status)
		if !status.Valid() {
			return nil, domain.NewValidationError("status", "unknown value "+*req.Status)
		}
	}

	out, err := s.timesheets.List(ctx, employeeID, status, req.PerPage, (req.Page-1)*req.PerPage)
	if err != nil {
		return nil, fmt.Errorf("list timesheets: %w", err)
	}
	return out, nil
}

func (s *timesheetService) GetByID(ctx context.Context, id uuid.UUID) (domain.Timesheet, error) {
	t, err := s.timesheets.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return domain.Timesheet{}, ErrNotFound
		}
		return domain.Timesheet{}, fmt.Errorf("get timesheet: %w", err)
	}
	return t, nil
}

func (s *timesheetService) Create(ctx context.Context, req CreateRequest) (domain.Timesheet, error) {
	if err := validatePeriod(req.PeriodStart, req.PeriodEnd); err != nil {
		return domain.Timesheet{}, err
	}
	if req.Minutes < 0 {
		return domain.Timesheet{}, domain.NewValidationError("minutes", "must not be negative")
	}
	if req.Rate < 0 {
		return domain.Timesheet{}, domain.NewValidationError("rate", "must not be negative")
	}
	if _, err := s.employees.GetByID(ctx, req.EmployeeID); err != nil {
		if store.IsNotFound(err) {
			return domain.Timesheet{}, ErrEmployeeNotFound
		}
		return domain.Timesheet{}, fmt.Errorf("get employee: %w", err)
	}

	t := domain.Timesheet{
		EmployeeID:  req.EmployeeID,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		Minutes:     req.Minutes,
		Rate:        req.Rate,
		Amount:      amountFor(req.Rate, req.Minutes),
		Status:      domain.TimesheetDraft,
		Notes:       req.Notes,
	}
	if err := s.timesheets.Create(ctx, &t); err != nil {
		return domain.Timesheet{}, fmt.Errorf("create timesheet: %w", err)
	}
	return t, nil
}

func (s *timesheetService) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (domain.Timesheet, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.Timesheet{}, err
	}
	if t.Status != domain.TimesheetDraft {
		return domain.Timesheet{}, ErrNotDraft
	}

	if req.PeriodStart != nil {
		t.PeriodStart = *req.PeriodStart
	}
	if req.PeriodEnd != nil {
		t.PeriodEnd = *req.PeriodEnd
	}
	if err := validatePeriod(t.PeriodStart, t.PeriodEnd); err != nil {
		return domain.Timesheet{}, err
	}
	if req.Minutes != nil {
		if *req.Minutes < 0 {
			return domain.Timesheet{}, domain.NewValidationError("minutes", "must not be negative")
		}
		t.Minutes = *req.Minutes
	}
	if req.Rate != nil {
		if *req.Rate < 0 {
			return domain.Timesheet{}, domain.NewValidationError("rate", "must not be negative")
		}
		t.Rate = *req.Rate
	}
	if req.Notes != nil {
		t.Notes = req.Notes
	}
	t.Amount = amountFor(t.Rate, t.Minutes)

	if err := s.timesheets.UpdateDraft(ctx, &t); err != nil {
		if store.IsNotFound(err) {
			return domain.Timesheet{}, ErrNotDraft
		}
		return domain.Timesheet{}, fmt.Errorf("update timesheet: %w", err)
	}
	return t, nil
}

func (s *timesheetService) Submit(ctx context.Context, id uuid.UUID) (domain.Timesheet, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.Timesheet{}, err
	}
	if !t.CanSubmit() {
		return domain.Timesheet{}, ErrNotDraft
	}

	t, err = s.timesheets.Submit(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return domain.Timesheet{}, ErrNotDraft
		}
		return domain.Timesheet{}, fmt.Errorf("submit timesheet: %w", err)
	}
	return t, nil
}

func (s *timesheetService) Approve(ctx context.Context, id, decidedBy uuid.UUID, notes *string) (domain.Timesheet, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.Timesheet{}, err
	}
	if !t.CanDecide() {
		return domain.Timesheet{}, ErrNotSubmitted
	}

	t, err = s.timesheets.Approve(ctx, id, decidedBy, notes)
	if err != nil {
		if store.IsNotFound(err) {
			return domain.Timesheet{}, ErrNotSubmitted
		}
		return domain.Timesheet{}, fmt.Errorf("approve timesheet: %w", err)
	}

	s.publishDecision(t, "")
	return t, nil
}

func (s *timesheetService) Reject(ctx context.Context, id, decidedBy uuid.UUID, reason string) (domain.Timesheet, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domain.Timesheet{}, ErrEmptyReason
	}

	t, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.Timesheet{}, err
	}
	if !t.CanDecide() {
		return domain.Timesheet{}, ErrNotSubmitted
	}

	t, err = s.timesheets.Reject(ctx, id, decidedBy, reason)
	if err != nil {
		if store.IsNotFound(err) {
			return domain.Timesheet{}, ErrNotSubmitted
		}
		return domain.Timesheet{}, fmt.Errorf("reject timesheet: %w", err)
	}

	s.publishDecision(t, reason)
	return t, nil
}

func (s *timesheetService) Delete(ctx context.Context, id uuid.UUID) error {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t.Status != domain.TimesheetDraft {
		return ErrNotDraft
	}
	if err := s.timesheets.Delete(ctx, id); err != nil {
		if store.IsNotFound(err) {
			return ErrNotDraft
		}
		return fmt.Errorf("delete timesheet: %w", err)
	}
	return nil
}

func (s *timesheetService) publishDecision(t domain.Timesheet, reason string) {
	evt := events.TimesheetDecided{
		TimesheetID: t.ID,
		EmployeeID:  t.EmployeeID,
		Status:      string(t.Status),
		Reason:      reason,
	}
	if t.DecidedBy != nil {
		evt.DecidedBy = *t.DecidedBy
	}
	if t.DecidedAt != nil {
		evt.DecidedAt = *t.DecidedAt
	}

	data, err := json.Marshal(evt)
	if err != nil {
		s.logger.Error("marshal timesheet event", slog.String("error", err.Error()))
		return
	}
	if err := s.publisher.Publish(constants.SubjectTimesheetDecided, data); err != nil {
		s.logger.Error("publish timesheet event",
			slog.String("timesheet_id", t.ID.String()),
			slog.String("error", err.Error()))
	}
}

func validatePeriod(start, end time.Time) error {
	if end.Before(start) {
		return domain.NewValidationError("period_end", "must not precede period_start")
	}
	return nil
}

// amountFor computes pay from an hourly rate over worked minutes, in
// integer cents.
func amountFor(rate domain.Money, minutes int) domain.Money {
	return domain.Money((int64(rate)*int64(minutes) + 30) / 60)
}
