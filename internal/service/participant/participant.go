package participant

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"

	"github.com/johnwondoh/careroster/internal/domain"
	"github.com/johnwondoh/careroster/internal/store"
)

// NDIS participant numbers are nine digits starting with 43.
var ndisNumberRe = regexp.MustCompile(`^43\d{7}$`)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type CreateRequest struct {
	FirstName       string
	LastName        string
	PreferredName   string
	NDISNumber      string
	SupportCategory string
	Phone           string
	Email           string
}

type UpdateRequest struct {
	FirstName       *string
	LastName        *string
	PreferredName   *string
	NDISNumber      *string
	SupportCategory *string
	Phone           *string
	Email           *string
}

type CreatePlanRequest struct {
	BudgetCategory *string
	Total          domain.Money
	Allocated      domain.Money
	StartDate      time.Time
	EndDate        *time.Time
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	List(ctx context.Context, search string, page, perPage int) ([]domain.Participant, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error)
	Create(ctx context.Context, req CreateRequest) (domain.Participant, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (domain.Participant, error)
	Delete(ctx context.Context, id uuid.UUID) error

	CreatePlan(ctx context.Context, participantID uuid.UUID, req CreatePlanRequest) (domain.NDISPlanSummary, error)
	GetPlan(ctx context.Context, planID uuid.UUID) (domain.NDISPlanSummary, error)
	ListPlans(ctx context.Context, participantID uuid.UUID) ([]domain.NDISPlanSummary, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type participantService struct {
	participants *store.ParticipantStore
	plans        *store.PlanStore
}

func New(participants *store.ParticipantStore, plans *store.PlanStore) Service {
	return &participantService{participants: participants, plans: plans}
}

func (s *participantService) List(ctx context.Context, search string, page, perPage int) ([]domain.Participant, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 50
	}
	out, err := s.participants.List(ctx, search, perPage, (page-1)*perPage)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return out, nil
}

func (s *participantService) GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	p, err := s.participants.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return domain.Participant{}, ErrNotFound
		}
		return domain.Participant{}, fmt.Errorf("get participant: %w", err)
	}
	return p, nil
}

func (s *participantService) Create(ctx context.Context, req CreateRequest) (domain.Participant, error) {
	if req.FirstName == "" || req.LastName == "" {
		return domain.Participant{}, domain.NewValidationError("name", "first and last name are required")
	}
	if !ndisNumberRe.MatchString(req.NDISNumber) {
		return domain.Participant{}, domain.NewValidationError("ndis_number", "must be nine digits starting with 43")
	}

	category := domain.BudgetCategory(req.SupportCategory)
	if req.SupportCategory != "" && !category.Valid() {
		return domain.Participant{}, domain.NewValidationError("support_category", "unknown value "+req.SupportCategory)
	}

	phone, err := normalisePhone(req.Phone)
	if err != nil {
		return domain.Participant{}, err
	}

	p := domain.Participant{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		PreferredName:   req.PreferredName,
		NDISNumber:      req.NDISNumber,
		SupportCategory: category,
		Phone:           phone,
		Email:           req.Email,
	}
	if err := s.participants.Create(ctx, &p); err != nil {
		if store.IsUniqueViolation(err) {
			return domain.Participant{}, ErrDuplicateNDIS
		}
		return domain.Participant{}, fmt.Errorf("create participant: %w", err)
	}
	return p, nil
}

func (s *participantService) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (domain.Participant, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.Participant{}, err
	}

	if req.FirstName != nil {
		p.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		p.LastName = *req.LastName
	}
	if req.PreferredName != nil {
		p.PreferredName = *req.PreferredName
	}
	if req.NDISNumber != nil {
		if !ndisNumberRe.MatchString(*req.NDISNumber) {
			return domain.Participant{}, domain.NewValidationError("ndis_number", "must be nine digits starting with 43")
		}
		p.NDISNumber = *req.NDISNumber
	}
	if req.SupportCategory != nil {
		category := domain.BudgetCategory(*req.SupportCategory)
		if *req.SupportCategory != "" && !category.Valid() {
			return domain.Participant{}, domain.NewValidationError("support_category", "unknown value "+*req.SupportCategory)
		}
		p.SupportCategory = category
	}
	if req.Phone != nil {
		phone, err := normalisePhone(*req.Phone)
		if err != nil {
			return domain.Participant{}, err
		}
		p.Phone = phone
	}
	if req.Email != nil {
		p.Email = *req.Email
	}

	if err := s.participants.Update(ctx, &p); err != nil {
		if store.IsNotFound(err) {
			return domain.Participant{}, ErrNotFound
		}
		if store.IsUniqueViolation(err) {
			return domain.Participant{}, ErrDuplicateNDIS
		}
		return domain.Participant{}, fmt.Errorf("update participant: %w", err)
	}
	return p, nil
}

func (s *participantService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.participants.Delete(ctx, id); err != nil {
		if store.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete participant: %w", err)
	}
	return nil
}

func (s *participantService) CreatePlan(ctx context.Context, participantID uuid.UUID, req CreatePlanRequest) (domain.NDISPlanSummary, error) {
	if _, err := s.GetByID(ctx, participantID); err != nil {
		return domain.NDISPlanSummary{}, err
	}
	if req.Total < 0 || req.Allocated < 0 {
		return domain.NDISPlanSummary{}, domain.NewValidationError("total", "budget amounts must not be negative")
	}
	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return domain.NDISPlanSummary{}, domain.NewValidationError("end_date", "must not precede start_date")
	}

	var category *domain.BudgetCategory
	if req.BudgetCategory != nil && *req.BudgetCategory != "" {
		c := domain.BudgetCategory(*req.BudgetCategory)
		if !c.Valid() {
			return domain.NDISPlanSummary{}, domain.NewValidationError("budget_category", "unknown value "+*req.BudgetCategory)
		}
		category = &c
	}

	plan := domain.NDISPlanSummary{
		ParticipantID:  participantID,
		BudgetCategory: category,
		Total:          req.Total,
		Allocated:      req.Allocated,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
	}
	if err := s.plans.Create(ctx, &plan); err != nil {
		return domain.NDISPlanSummary{}, fmt.Errorf("create plan: %w", err)
	}
	return plan, nil
}

func (s *participantService) GetPlan(ctx context.Context, planID uuid.UUID) (domain.NDISPlanSummary, error) {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		if store.IsNotFound(err) {
			return domain.NDISPlanSummary{}, ErrPlanNotFound
		}
		return domain.NDISPlanSummary{}, fmt.Errorf("get plan: %w", err)
	}
	return plan, nil
}

func (s *participantService) ListPlans(ctx context.Context, participantID uuid.UUID) ([]domain.NDISPlanSummary, error) {
	plans, err := s.plans.ListByParticipant(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return plans, nil
}

// normalisePhone validates an Australian phone number and returns it in
// E.164 form. Empty input passes through.
func normalisePhone(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	num, err := phonenumbers.Parse(raw, "AU")
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return "", domain.NewValidationError("phone", "not a valid Australian phone number")
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}
