package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnwondoh/careroster/internal/domain"
	"github.com/johnwondoh/careroster/pkg/database"
)

// PlanStore reads NDIS plan budget snapshots. Plan totals are sourced
// from the plan manager; the store only records and serves them.
type PlanStore struct {
	pool *database.Pool
}

func NewPlanStore(pool *database.Pool) *PlanStore {
	return &PlanStore{pool: pool}
}

func (s *PlanStore) Create(ctx context.Context, p *domain.NDISPlanSummary) error {
	var category *string
	if p.BudgetCategory != nil {
		c := string(*p.BudgetCategory)
		category = &c
	}
	return s.pool.QueryRow(ctx, `
		INSERT INTO ndis_plans
			(participant_id, budget_category, total_cents, allocated_cents,
			 spent_cents, committed_cents, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, p.ParticipantID, category, int64(p.Total), int64(p.Allocated),
		int64(p.Spent), int64(p.Committed), p.StartDate, p.EndDate,
	).Scan(&p.PlanID)
}

func (s *PlanStore) GetByID(ctx context.Context, id uuid.UUID) (domain.NDISPlanSummary, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, participant_id, budget_category, total_cents, allocated_cents,
			spent_cents, committed_cents, start_date, end_date
		FROM ndis_plans
		WHERE id = $1
	`, id)
	return scanPlan(row)
}

// ListByParticipant returns a participant's plan snapshots newest
// first.
func (s *PlanStore) ListByParticipant(ctx context.Context, participantID uuid.UUID) ([]domain.NDISPlanSummary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, participant_id, budget_category, total_cents, allocated_cents,
			spent_cents, committed_cents, start_date, end_date
		FROM ndis_plans
		WHERE participant_id = $1
		ORDER BY start_date DESC
	`, participantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.NDISPlanSummary
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// AddCommitted adjusts the committed balance by delta cents. Used when
// appointments are created against a plan and when they complete or
// cancel.
func (s *PlanStore) AddCommitted(ctx context.Context, id uuid.UUID, delta domain.Money) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE ndis_plans
		SET committed_cents = committed_cents + $2, updated_at = now()
		WHERE id = $1
	`, id, int64(delta))
	return err
}

// RecordSpend moves amount from committed to spent when an appointment
// completes.
func (s *PlanStore) RecordSpend(ctx context.Context, id uuid.UUID, committed, spent domain.Money) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE ndis_plans
		SET committed_cents = committed_cents - $2,
			spent_cents = spent_cents + $3,
			updated_at = now()
		WHERE id = $1
	`, id, int64(committed), int64(spent))
	return err
}

func scanPlan(row rowScanner) (domain.NDISPlanSummary, error) {
	var p domain.NDISPlanSummary
	var category *string
	var total, allocated, spent, committed int64
	if err := row.Scan(
		&p.PlanID,
		&p.ParticipantID,
		&category,
		&total,
		&allocated,
		&spent,
		&committed,
		&p.StartDate,
		&p.EndDate,
	); err != nil {
		return domain.NDISPlanSummary{}, err
	}
	if category != nil {
		c := domain.BudgetCategory(*category)
		p.BudgetCategory = &c
	}
	p.Total = domain.Money(total)
	p.Allocated = domain.Money(allocated)
	p.Spent = domain.Money(spent)
	p.Committed = domain.Money(committed)
	return p, nil
}
