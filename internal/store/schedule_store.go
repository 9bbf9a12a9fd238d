package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/johnwondoh/careroster/internal/domain"
	"github.com/johnwondoh/careroster/pkg/database"
)

const scheduleColumns = `id, participant_id, worker_type, recurrence_type, recurrence_days,
	fortnight_week, recurrence_day_of_month, custom_interval_days,
	start_minute_of_day, end_minute_of_day, start_date, end_date,
	location, required_skills, rate_cents, auto_generate, look_ahead_weeks,
	status, created_at, updated_at`

// ScheduleStore persists recurring service schedules.
type ScheduleStore struct {
	pool *database.Pool
}

func NewScheduleStore(pool *database.Pool) *ScheduleStore {
	return &ScheduleStore{pool: pool}
}

func (s *ScheduleStore) Create(ctx context.Context, sc *domain.ServiceSchedule) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO service_schedules
			(participant_id, worker_type, recurrence_type, recurrence_days,
			 fortnight_week, recurrence_day_of_month, custom_interval_days,
			 start_minute_of_day, end_minute_of_day, start_date, end_date,
			 location, required_skills, rate_cents, auto_generate,
			 look_ahead_weeks, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at, updated_at
	`, sc.ParticipantID, string(sc.WorkerType), string(sc.RecurrenceType),
		weekdaysToInt16(sc.RecurrenceDays), sc.FortnightWeek, sc.RecurrenceDayOfMonth,
		sc.CustomIntervalDays, int16(sc.StartTime.MinuteOfDay()), int16(sc.EndTime.MinuteOfDay()),
		sc.StartDate, sc.EndDate, sc.Location, sc.RequiredSkills, int64(sc.Rate),
		sc.AutoGenerate, sc.LookAheadWeeks, string(sc.Status),
	).Scan(&sc.ID, &sc.CreatedAt, &sc.UpdatedAt)
}

func (s *ScheduleStore) GetByID(ctx context.Context, id uuid.UUID) (domain.ServiceSchedule, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+scheduleColumns+`
		FROM service_schedules
		WHERE id = $1
	`, id)
	return scanSchedule(row)
}

// List returns schedules, optionally narrowed to one participant or
// one status.
func (s *ScheduleStore) List(ctx context.Context, participantID uuid.UUID, status domain.ScheduleStatus, limit, offset int) ([]domain.ServiceSchedule, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+scheduleColumns+`
		FROM service_schedules
		WHERE ($1::uuid IS NULL OR participant_id = $1)
			AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`, nullableUUID(participantID), string(status), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ServiceSchedule
	for rows.Next() {
		sc, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

// ListGeneratable returns active schedules with auto-generation on.
// The generation worker walks these on every tick.
func (s *ScheduleStore) ListGeneratable(ctx context.Context) ([]domain.ServiceSchedule, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+scheduleColumns+`
		FROM service_schedules
		WHERE status = 'active' AND auto_generate
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ServiceSchedule
	for rows.Next() {
		sc, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

func (s *ScheduleStore) Update(ctx context.Context, sc *domain.ServiceSchedule) error {
	return s.pool.QueryRow(ctx, `
		UPDATE service_schedules
		SET worker_type = $2,
			recurrence_type = $3,
			recurrence_days = $4,
			fortnight_week = $5,
			recurrence_day_of_month = $6,
			custom_interval_days = $7,
			start_minute_of_day = $8,
			end_minute_of_day = $9,
			start_date = $10,
			end_date = $11,
			location = $12,
			required_skills = $13,
			rate_cents = $14,
			auto_generate = $15,
			look_ahead_weeks = $16,
			updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`, sc.ID, string(sc.WorkerType), string(sc.RecurrenceType),
		weekdaysToInt16(sc.RecurrenceDays), sc.FortnightWeek, sc.RecurrenceDayOfMonth,
		sc.CustomIntervalDays, int16(sc.StartTime.MinuteOfDay()), int16(sc.EndTime.MinuteOfDay()),
		sc.StartDate, sc.EndDate, sc.Location, sc.RequiredSkills, int64(sc.Rate),
		sc.AutoGenerate, sc.LookAheadWeeks,
	).Scan(&sc.UpdatedAt)
}

// SetStatus moves a schedule between active, paused, ended and draft.
func (s *ScheduleStore) SetStatus(ctx context.Context, id uuid.UUID, status domain.ScheduleStatus) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE service_schedules SET status = $2, updated_at = now() WHERE id = $1
	`, id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *ScheduleStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM service_schedules WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanSchedule(row rowScanner) (domain.ServiceSchedule, error) {
	var sc domain.ServiceSchedule
	var workerType, recurrenceType, status string
	var days []int16
	var fortnightWeek, dayOfMonth *int16
	var startMin, endMin int16
	var rate int64
	if err := row.Scan(
		&sc.ID,
		&sc.ParticipantID,
		&workerType,
		&recurrenceType,
		&days,
		&fortnightWeek,
		&dayOfMonth,
		&sc.CustomIntervalDays,
		&startMin,
		&endMin,
		&sc.StartDate,
		&sc.EndDate,
		&sc.Location,
		&sc.RequiredSkills,
		&rate,
		&sc.AutoGenerate,
		&sc.LookAheadWeeks,
		&status,
		&sc.CreatedAt,
		&sc.UpdatedAt,
	); err != nil {
		return domain.ServiceSchedule{}, err
	}
	sc.WorkerType = domain.WorkerType(workerType)
	sc.RecurrenceType = domain.RecurrenceType(recurrenceType)
	sc.Status = domain.ScheduleStatus(status)
	sc.RecurrenceDays = int16ToWeekdays(days)
	if fortnightWeek != nil {
		w := int(*fortnightWeek)
		sc.FortnightWeek = &w
	}
	if dayOfMonth != nil {
		d := int(*dayOfMonth)
		sc.RecurrenceDayOfMonth = &d
	}
	sc.StartTime = minutesToTimeOfDay(startMin)
	sc.EndTime = minutesToTimeOfDay(endMin)
	sc.Rate = domain.Money(rate)
	return sc, nil
}
