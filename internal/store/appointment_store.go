package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/johnwondoh/careroster/internal/domain"
	"github.com/johnwondoh/careroster/pkg/database"
)

const appointmentColumns = `a.id, a.participant_id, a.worker_type, a.start_date, a.end_date,
	a.start_minute_of_day, a.end_minute_of_day, a.duration_minutes, a.location,
	a.required_skills, a.plan_id, a.budget_category_id, a.budget_category_label,
	a.rate_cents, a.hours_delivered, a.amount_charged_cents, a.status,
	a.staff_member_id, COALESCE(s.first_name || ' ' || s.last_name, ''),
	a.cancellation_reason, a.cancelled_at, a.note, a.created_at, a.updated_at`

const appointmentJoin = `
	FROM appointments a
	LEFT JOIN employees s ON s.id = a.staff_member_id`

// AppointmentFilter narrows List queries. Zero values mean "no filter".
type AppointmentFilter struct {
	ParticipantID  uuid.UUID
	StaffMemberID  uuid.UUID
	Status         domain.AppointmentStatus
	From           time.Time
	To             time.Time
	UnassignedOnly bool
	Limit          int
	Offset         int
}

// AppointmentStore persists appointments and their service notes.
type AppointmentStore struct {
	pool *database.Pool
}

func NewAppointmentStore(pool *database.Pool) *AppointmentStore {
	return &AppointmentStore{pool: pool}
}

func (s *AppointmentStore) Create(ctx context.Context, a *domain.Appointment) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO appointments
			(participant_id, worker_type, start_date, end_date,
			 start_minute_of_day, end_minute_of_day, duration_minutes,
			 location, required_skills, plan_id, budget_category_id,
			 budget_category_label, rate_cents, status, staff_member_id, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at
	`, nullableUUID(a.ParticipantID), string(a.WorkerType), a.StartDate, a.EndDate,
		int16(a.StartTime.MinuteOfDay()), int16(a.EndTime.MinuteOfDay()), a.DurationMinutes,
		a.Location, a.RequiredSkills, a.PlanID, a.BudgetCategoryID,
		a.BudgetCategoryLabel, int64(a.Rate), string(a.Status), a.StaffMemberID, a.Note,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

// CreateGenerated inserts an appointment produced by a recurring
// schedule. The partial unique index on (schedule_id, start_date) makes
// re-generation idempotent; it reports whether a row was inserted.
func (s *AppointmentStore) CreateGenerated(ctx context.Context, scheduleID uuid.UUID, a *domain.Appointment) (bool, error) {
	tag, err := s.pool.Exec(ctx, `
		INSERT INTO appointments
			(participant_id, worker_type, start_date,
			 start_minute_of_day, end_minute_of_day, duration_minutes,
			 location, required_skills, rate_cents, status, schedule_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (schedule_id, start_date) WHERE schedule_id IS NOT NULL DO NOTHING
	`, nullableUUID(a.ParticipantID), string(a.WorkerType), a.StartDate,
		int16(a.StartTime.MinuteOfDay()), int16(a.EndTime.MinuteOfDay()), a.DurationMinutes,
		a.Location, a.RequiredSkills, int64(a.Rate), string(domain.StatusScheduled), scheduleID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *AppointmentStore) GetByID(ctx context.Context, id uuid.UUID) (domain.Appointment, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+appointmentColumns+appointmentJoin+`
		WHERE a.id = $1
	`, id)
	return scanAppointment(row)
}

func (s *AppointmentStore) List(ctx context.Context, f AppointmentFilter) ([]domain.Appointment, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+appointmentColumns+appointmentJoin+`
		WHERE ($1::uuid IS NULL OR a.participant_id = $1)
			AND ($2::uuid IS NULL OR a.staff_member_id = $2)
			AND ($3 = '' OR a.status = $3)
			AND ($4::date IS NULL OR a.start_date >= $4)
			AND ($5::date IS NULL OR a.start_date <= $5)
			AND (NOT $6::boolean OR (a.staff_member_id IS NULL AND a.status = 'scheduled'))
		ORDER BY a.start_date, a.start_minute_of_day
		LIMIT $7 OFFSET $8
	`, nullableUUID(f.ParticipantID), nullableUUID(f.StaffMemberID), string(f.Status),
		nullableDate(f.From), nullableDate(f.To), f.UnassignedOnly, limit, f.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// SetStaffMember assigns or (with nil) unassigns the staff member on a
// scheduled appointment.
func (s *AppointmentStore) SetStaffMember(ctx context.Context, id uuid.UUID, staffID *uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE appointments
		SET staff_member_id = $2, updated_at = now()
		WHERE id = $1 AND status = 'scheduled'
	`, id, staffID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *AppointmentStore) Cancel(ctx context.Context, id uuid.UUID, reason string) (time.Time, error) {
	var cancelledAt time.Time
	err := s.pool.QueryRow(ctx, `
		UPDATE appointments
		SET status = 'cancelled',
			cancellation_reason = $2,
			cancelled_at = now(),
			updated_at = now()
		WHERE id = $1 AND status = 'scheduled'
		RETURNING cancelled_at
	`, id, reason).Scan(&cancelledAt)
	return cancelledAt, err
}

// Complete marks a scheduled appointment delivered and records the
// billing outcome.
func (s *AppointmentStore) Complete(ctx context.Context, id uuid.UUID, hoursDelivered float64, amountCharged domain.Money) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE appointments
		SET status = 'completed',
			hours_delivered = $2,
			amount_charged_cents = $3,
			updated_at = now()
		WHERE id = $1 AND status = 'scheduled'
	`, id, hoursDelivered, int64(amountCharged))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *AppointmentStore) MarkNoShow(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE appointments
		SET status = 'no_show', updated_at = now()
		WHERE id = $1 AND status = 'scheduled'
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *AppointmentStore) Update(ctx context.Context, a *domain.Appointment) error {
	return s.pool.QueryRow(ctx, `
		UPDATE appointments
		SET worker_type = $2,
			start_date = $3,
			end_date = $4,
			start_minute_of_day = $5,
			end_minute_of_day = $6,
			duration_minutes = $7,
			location = $8,
			required_skills = $9,
			rate_cents = $10,
			note = $11,
			updated_at = now()
		WHERE id = $1 AND status = 'scheduled'
		RETURNING updated_at
	`, a.ID, string(a.WorkerType), a.StartDate, a.EndDate,
		int16(a.StartTime.MinuteOfDay()), int16(a.EndTime.MinuteOfDay()), a.DurationMinutes,
		a.Location, a.RequiredSkills, int64(a.Rate), a.Note,
	).Scan(&a.UpdatedAt)
}

func (s *AppointmentStore) AddServiceNote(ctx context.Context, n *domain.ServiceNote) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO service_notes (appointment_id, category, body, sensitive, author_id, author_name)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, n.AppointmentID, n.Category, n.Text, n.Sensitive, n.AuthorID, n.AuthorName,
	).Scan(&n.ID, &n.CreatedAt)
}

// ListServiceNotes returns an appointment's notes oldest first.
// includeSensitive gates notes flagged sensitive.
func (s *AppointmentStore) ListServiceNotes(ctx context.Context, appointmentID uuid.UUID, includeSensitive bool) ([]domain.ServiceNote, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, appointment_id, category, body, sensitive, author_id, author_name, created_at
		FROM service_notes
		WHERE appointment_id = $1 AND ($2::boolean OR NOT sensitive)
		ORDER BY created_at
	`, appointmentID, includeSensitive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ServiceNote
	for rows.Next() {
		var n domain.ServiceNote
		if err := rows.Scan(&n.ID, &n.AppointmentID, &n.Category, &n.Text, &n.Sensitive, &n.AuthorID, &n.AuthorName, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func scanAppointment(row rowScanner) (domain.Appointment, error) {
	var a domain.Appointment
	var participantID *uuid.UUID
	var workerType, status string
	var startMin, endMin int16
	var rate int64
	var amountCharged *int64
	if err := row.Scan(
		&a.ID,
		&participantID,
		&workerType,
		&a.StartDate,
		&a.EndDate,
		&startMin,
		&endMin,
		&a.DurationMinutes,
		&a.Location,
		&a.RequiredSkills,
		&a.PlanID,
		&a.BudgetCategoryID,
		&a.BudgetCategoryLabel,
		&rate,
		&a.HoursDelivered,
		&amountCharged,
		&status,
		&a.StaffMemberID,
		&a.StaffMemberName,
		&a.CancellationReason,
		&a.CancelledAt,
		&a.Note,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return domain.Appointment{}, err
	}
	if participantID != nil {
		a.ParticipantID = *participantID
	}
	a.WorkerType = domain.WorkerType(workerType)
	a.Status = domain.AppointmentStatus(status)
	a.StartTime = minutesToTimeOfDay(startMin)
	a.EndTime = minutesToTimeOfDay(endMin)
	a.Rate = domain.Money(rate)
	if amountCharged != nil {
		m := domain.Money(*amountCharged)
		a.AmountCharged = &m
	}
	return a, nil
}

// nullableUUID maps the zero UUID to SQL NULL.
func nullableUUID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

// nullableDate maps the zero time to SQL NULL.
func nullableDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
