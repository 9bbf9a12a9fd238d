package staff

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/johnwondoh/careroster/internal/domain"
	"github.com/johnwondoh/careroster/internal/store"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type CreateRequest struct {
	FirstName  string
	LastName   string
	Role       string
	Department string
	Email      string
	Phone      string
	WorkerType domain.WorkerType
	Skills     []string
}

type UpdateRequest struct {
	FirstName  *string
	LastName   *string
	Role       *string
	Department *string
	Email      *string
	Phone      *string
	WorkerType *domain.WorkerType
	Skills     []string
}

// AvailabilityRequest identifies a wall-clock window on a single day.
type AvailabilityRequest struct {
	WorkerType domain.WorkerType
	Date       time.Time
	StartTime  domain.TimeOfDay
	EndTime    domain.TimeOfDay
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	List(ctx context.Context, workerType domain.WorkerType, page, perPage int) ([]domain.Employee, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Employee, error)
	Create(ctx context.Context, req CreateRequest) (domain.Employee, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (domain.Employee, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Available(ctx context.Context, req AvailabilityRequest) ([]domain.Employee, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type staffService struct {
	employees *store.EmployeeStore
}

func New(employees *store.EmployeeStore) Service {
	return &staffService{employees: employees}
}

func (s *staffService) List(ctx context.Context, workerType domain.WorkerType, page, perPage int) ([]domain.Employee, error) {
	if workerType != "" && !workerType.Valid() {
		return nil, domain.NewValidationError("worker_type", "unknown value "+string(workerType))
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 200 {
		perPage = 100
	}
	out, err := s.employees.List(ctx, workerType, perPage, (page-1)*perPage)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	return out, nil
}

func (s *staffService) GetByID(ctx context.Context, id uuid.UUID) (domain.Employee, error) {
	e, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return domain.Employee{}, ErrNotFound
		}
		return domain.Employee{}, fmt.Errorf("get staff member: %w", err)
	}
	return e, nil
}

func (s *staffService) Create(ctx context.Context, req CreateRequest) (domain.Employee, error) {
	if req.FirstName == "" || req.LastName == "" {
		return domain.Employee{}, domain.NewValidationError("name", "first and last name are required")
	}
	if req.Email == "" {
		return domain.Employee{}, domain.NewValidationError("email", "required")
	}
	if !req.WorkerType.Valid() {
		return domain.Employee{}, domain.NewValidationError("worker_type", "unknown value "+string(req.WorkerType))
	}

	e := domain.Employee{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Role:       req.Role,
		Department: req.Department,
		Email:      req.Email,
		Phone:      req.Phone,
		WorkerType: req.WorkerType,
		Skills:     req.Skills,
	}
	if e.Skills == nil {
		e.Skills = []string{}
	}
	if err := s.employees.Create(ctx, &e); err != nil {
		if store.IsUniqueViolation(err) {
			return domain.Employee{}, ErrDuplicateEmail
		}
		return domain.Employee{}, fmt.Errorf("create staff member: %w", err)
	}
	return e, nil
}

func (s *staffService) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (domain.Employee, error) {
	e, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.Employee{}, err
	}

	if req.FirstName != nil {
		e.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		e.LastName = *req.LastName
	}
	if req.Role != nil {
		e.Role = *req.Role
	}
	if req.Department != nil {
		e.Department = *req.Department
	}
	if req.Email != nil {
		e.Email = *req.Email
	}
	if req.Phone != nil {
		e.Phone = *req.Phone
	}
	if req.WorkerType != nil {
		if !req.WorkerType.Valid() {
			return domain.Employee{}, domain.NewValidationError("worker_type", "unknown value "+string(*req.WorkerType))
		}
		e.WorkerType = *req.WorkerType
	}
	if req.Skills != nil {
		e.Skills = req.Skills
	}

	if err := s.employees.Update(ctx, &e); err != nil {
		if store.IsNotFound(err) {
			return domain.Employee{}, ErrNotFound
		}
		if store.IsUniqueViolation(err) {
			return domain.Employee{}, ErrDuplicateEmail
		}
		return domain.Employee{}, fmt.Errorf("update staff member: %w", err)
	}
	return e, nil
}

func (s *staffService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.employees.Deactivate(ctx, id); err != nil {
		if store.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("deactivate staff member: %w", err)
	}
	return nil
}

func (s *staffService) Available(ctx context.Context, req AvailabilityRequest) ([]domain.Employee, error) {
	if !req.WorkerType.Valid() {
		return nil, domain.NewValidationError("worker_type", "unknown value "+string(req.WorkerType))
	}
	if !req.StartTime.Valid() || !req.EndTime.Valid() {
		return nil, domain.NewValidationError("start_time", "times must be within 00:00-23:59")
	}
	if req.EndTime.MinuteOfDay() <= req.StartTime.MinuteOfDay() {
		return nil, domain.NewValidationError("end_time", "must be after start_time")
	}

	out, err := s.employees.ListAvailable(ctx, req.WorkerType, req.Date,
		req.StartTime.MinuteOfDay(), req.EndTime.MinuteOfDay())
	if err != nil {
		return nil, fmt.Errorf("list available staff: %w", err)
	}
	return out, nil
}
