package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/johnwondoh/careroster/internal/domain"
	"github.com/johnwondoh/careroster/pkg/database"
)

const timesheetColumns = `id, employee_id, period_start, period_end, minutes, rate_cents,
	amount_cents, status, notes, decision_notes, rejection_reason, submitted_at,
	decided_at, decided_by, created_at, updated_at`

// TimesheetStore persists timesheets through their draft -> submitted
// -> approved|rejected lifecycle. Status transitions are guarded in
// SQL so concurrent decisions cannot double-apply.
type TimesheetStore struct {
	pool *database.Pool
}

func NewTimesheetStore(pool *database.Pool) *TimesheetStore {
	return &TimesheetStore{pool: pool}
}

func (s *TimesheetStore) Create(ctx context.Context, t *domain.Timesheet) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO timesheets
			(employee_id, period_start, period_end, minutes, rate_cents, amount_cents, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, t.EmployeeID, t.PeriodStart, t.PeriodEnd, t.Minutes, int64(t.Rate), int64(t.Amount),
		string(t.Status), t.Notes,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (s *TimesheetStore) GetByID(ctx context.Context, id uuid.UUID) (domain.Timesheet, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+timesheetColumns+`
		FROM timesheets
		WHERE id = $1
	`, id)
	return scanTimesheet(row)
}

// List returns timesheets newest period first, optionally narrowed to
// one employee or one status.
func (s *TimesheetStore) List(ctx context.Context, employeeID uuid.UUID, status domain.TimesheetStatus, limit, offset int) ([]domain.Timesheet, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+timesheetColumns+`
		FROM timesheets
		WHERE ($1::uuid IS NULL OR employee_id = $1)
			AND ($2 = '' OR status = $2)
		ORDER BY period_start DESC
		LIMIT $3 OFFSET $4
	`, nullableUUID(employeeID), string(status), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Timesheet
	for rows.Next() {
		t, err := scanTimesheet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpdateDraft rewrites the editable fields of a draft timesheet.
func (s *TimesheetStore) UpdateDraft(ctx context.Context, t *domain.Timesheet) error {
	return s.pool.QueryRow(ctx, `
		UPDATE timesheets
		SET period_start = $2,
			period_end = $3,
			minutes = $4,
			rate_cents = $5,
			amount_cents = $6,
			notes = $7,
			updated_at = now()
		WHERE id = $1 AND status = 'draft'
		RETURNING updated_at
	`, t.ID, t.PeriodStart, t.PeriodEnd, t.Minutes, int64(t.Rate), int64(t.Amount), t.Notes,
	).Scan(&t.UpdatedAt)
}

// Submit moves a draft timesheet to submitted.
func (s *TimesheetStore) Submit(ctx context.Context, id uuid.UUID) (domain.Timesheet, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE timesheets
		SET status = 'submitted', submitted_at = now(), updated_at = now()
		WHERE id = $1 AND status = 'draft'
		RETURNING `+timesheetColumns+`
	`, id)
	return scanTimesheet(row)
}

// Approve moves a submitted timesheet to approved, recording who
// decided it.
func (s *TimesheetStore) Approve(ctx context.Context, id, decidedBy uuid.UUID, notes *string) (domain.Timesheet, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE timesheets
		SET status = 'approved', decision_notes = $3, decided_at = now(), decided_by = $2, updated_at = now()
		WHERE id = $1 AND status = 'submitted'
		RETURNING `+timesheetColumns+`
	`, id, decidedBy, notes)
	return scanTimesheet(row)
}

// Reject moves a submitted timesheet to rejected with the given reason.
func (s *TimesheetStore) Reject(ctx context.Context, id, decidedBy uuid.UUID, reason string) (domain.Timesheet, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE timesheets
		SET status = 'rejected', rejection_reason = $3, decided_at = now(), decided_by = $2, updated_at = now()
		WHERE id = $1 AND status = 'submitted'
		RETURNING `+timesheetColumns+`
	`, id, decidedBy, reason)
	return scanTimesheet(row)
}

func (s *TimesheetStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM timesheets WHERE id = $1 AND status = 'draft'`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanTimesheet(row rowScanner) (domain.Timesheet, error) {
	var t domain.Timesheet
	var status string
	var rate, amount int64
	if err := row.Scan(
		&t.ID,
		&t.EmployeeID,
		&t.PeriodStart,
		&t.PeriodEnd,
		&t.Minutes,
		&rate,
		&amount,
		&status,
		&t.Notes,
		&t.DecisionNotes,
		&t.RejectionReason,
		&t.SubmittedAt,
		&t.DecidedAt,
		&t.DecidedBy,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return domain.Timesheet{}, err
	}
	t.Status = domain.TimesheetStatus(status)
	t.Rate = domain.Money(rate)
	t.Amount = domain.Money(amount)
	return t, nil
}
