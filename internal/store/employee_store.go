package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/johnwondoh/careroster/internal/domain"
	"github.com/johnwondoh/careroster/pkg/database"
)

const employeeColumns = `id, first_name, last_name, role, department, email, phone,
	worker_type, skills, avatar_key, created_at, updated_at`

// EmployeeStore persists care workers and office staff.
type EmployeeStore struct {
	pool *database.Pool
}

func NewEmployeeStore(pool *database.Pool) *EmployeeStore {
	return &EmployeeStore{pool: pool}
}

func (s *EmployeeStore) Create(ctx context.Context, e *domain.Employee) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO employees
			(first_name, last_name, role, department, email, phone, worker_type, skills)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, e.FirstName, e.LastName, e.Role, e.Department, e.Email, e.Phone,
		string(e.WorkerType), e.Skills,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (s *EmployeeStore) GetByID(ctx context.Context, id uuid.UUID) (domain.Employee, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+employeeColumns+`
		FROM employees
		WHERE id = $1
	`, id)
	return scanEmployee(row)
}

// List returns active employees, optionally filtered by worker type.
func (s *EmployeeStore) List(ctx context.Context, workerType domain.WorkerType, limit, offset int) ([]domain.Employee, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+employeeColumns+`
		FROM employees
		WHERE active AND ($1 = '' OR worker_type = $1)
		ORDER BY last_name, first_name
		LIMIT $2 OFFSET $3
	`, string(workerType), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListAvailable returns active employees of the given worker type that
// have no scheduled appointment on date overlapping the
// [startMinute, endMinute) wall-clock window.
func (s *EmployeeStore) ListAvailable(ctx context.Context, workerType domain.WorkerType, date time.Time, startMinute, endMinute int) ([]domain.Employee, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+employeeColumns+`
		FROM employees e
		WHERE e.active
			AND e.worker_type = $1
			AND NOT EXISTS (
				SELECT 1 FROM appointments a
				WHERE a.staff_member_id = e.id
					AND a.status = 'scheduled'
					AND a.start_date = $2
					AND a.start_minute_of_day < $4
					AND a.end_minute_of_day > $3
			)
		ORDER BY e.last_name, e.first_name
	`, string(workerType), date, int16(startMinute), int16(endMinute))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		e.IsAvailable = true
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *EmployeeStore) Update(ctx context.Context, e *domain.Employee) error {
	return s.pool.QueryRow(ctx, `
		UPDATE employees
		SET first_name = $2,
			last_name = $3,
			role = $4,
			department = $5,
			email = $6,
			phone = $7,
			worker_type = $8,
			skills = $9,
			updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`, e.ID, e.FirstName, e.LastName, e.Role, e.Department, e.Email, e.Phone,
		string(e.WorkerType), e.Skills,
	).Scan(&e.UpdatedAt)
}

func (s *EmployeeStore) SetAvatarKey(ctx context.Context, id uuid.UUID, key *string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE employees SET avatar_key = $2, updated_at = now() WHERE id = $1
	`, id, key)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Deactivate soft-deletes an employee. Historical appointments and
// timesheets keep their references.
func (s *EmployeeStore) Deactivate(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE employees SET active = false, updated_at = now() WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanEmployee(row rowScanner) (domain.Employee, error) {
	var e domain.Employee
	var workerType string
	if err := row.Scan(
		&e.ID,
		&e.FirstName,
		&e.LastName,
		&e.Role,
		&e.Department,
		&e.Email,
		&e.Phone,
		&workerType,
		&e.Skills,
		&e.AvatarKey,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return domain.Employee{}, err
	}
	e.WorkerType = domain.WorkerType(workerType)
	return e, nil
}
