package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ServiceSchedule is a recurring template that generates future
// appointments for a participant.
//
// Exactly the recurrence parameters relevant to RecurrenceType are
// meaningful: RecurrenceDays for weekly/fortnightly, FortnightWeek for
// fortnightly, RecurrenceDayOfMonth for monthly, CustomIntervalDays for
// custom. Validate enforces that the others are unset.
type ServiceSchedule struct {
	ID            uuid.UUID  `json:"id"`
	ParticipantID uuid.UUID  `json:"participant_id"`
	WorkerType    WorkerType `json:"worker_type"`

	RecurrenceType       RecurrenceType `json:"recurrence_type"`
	RecurrenceDays       []time.Weekday `json:"recurrence_days,omitempty"`
	FortnightWeek        *int           `json:"fortnight_week,omitempty"` // 0 or 1, relative to StartDate's week
	RecurrenceDayOfMonth *int           `json:"recurrence_day_of_month,omitempty"`
	CustomIntervalDays   *int           `json:"custom_interval_days,omitempty"`

	StartTime TimeOfDay `json:"start_time"`
	EndTime   TimeOfDay `json:"end_time"`

	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"` // nil = open-ended

	Location       string   `json:"location,omitempty"`
	RequiredSkills []string `json:"required_skills,omitempty"`
	Rate           Money    `json:"rate"`

	AutoGenerate   bool `json:"auto_generate"`
	LookAheadWeeks int  `json:"look_ahead_weeks"`

	Status ScheduleStatus `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the recurrence-parameter subset invariant.
func (s ServiceSchedule) Validate() error {
	if !s.RecurrenceType.Valid() {
		return NewValidationError("recurrence_type", fmt.Sprintf("unknown value %q", s.RecurrenceType))
	}
	if !s.Status.Valid() {
		return NewValidationError("status", fmt.Sprintf("unknown value %q", s.Status))
	}

	wantDays := s.RecurrenceType == RecurrenceWeekly || s.RecurrenceType == RecurrenceFortnightly
	if wantDays && len(s.RecurrenceDays) == 0 {
		return NewValidationError("recurrence_days", "required for weekly and fortnightly schedules")
	}
	if !wantDays && len(s.RecurrenceDays) > 0 {
		return NewValidationError("recurrence_days", "only meaningful for weekly and fortnightly schedules")
	}

	if s.RecurrenceType == RecurrenceFortnightly {
		if s.FortnightWeek == nil || *s.FortnightWeek < 0 || *s.FortnightWeek > 1 {
			return NewValidationError("fortnight_week", "must be 0 or 1 for fortnightly schedules")
		}
	} else if s.FortnightWeek != nil {
		return NewValidationError("fortnight_week", "only meaningful for fortnightly schedules")
	}

	if s.RecurrenceType == RecurrenceMonthly {
		if s.RecurrenceDayOfMonth == nil || *s.RecurrenceDayOfMonth < 1 || *s.RecurrenceDayOfMonth > 31 {
			return NewValidationError("recurrence_day_of_month", "must be 1-31 for monthly schedules")
		}
	} else if s.RecurrenceDayOfMonth != nil {
		return NewValidationError("recurrence_day_of_month", "only meaningful for monthly schedules")
	}

	if s.RecurrenceType == RecurrenceCustom {
		if s.CustomIntervalDays == nil || *s.CustomIntervalDays < 1 {
			return NewValidationError("custom_interval_days", "must be >= 1 for custom schedules")
		}
	} else if s.CustomIntervalDays != nil {
		return NewValidationError("custom_interval_days", "only meaningful for custom schedules")
	}

	if s.EndDate != nil && s.EndDate.Before(s.StartDate) {
		return NewValidationError("end_date", "must not precede start_date")
	}
	if !s.StartTime.Valid() || !s.EndTime.Valid() {
		return NewValidationError("start_time", "times must be within 00:00-23:59")
	}
	return nil
}

// Occurrences returns the dates (midnight UTC) on which the schedule
// generates an appointment within [from, to] inclusive, clamped to the
// schedule's own date range. It assumes a schedule that passes Validate.
func (s ServiceSchedule) Occurrences(from, to time.Time) []time.Time {
	start := dateOnly(from)
	if sd := dateOnly(s.StartDate); sd.After(start) {
		start = sd
	}
	end := dateOnly(to)
	if s.EndDate != nil {
		if ed := dateOnly(*s.EndDate); ed.Before(end) {
			end = ed
		}
	}
	if end.Before(start) {
		return nil
	}

	anchor := dateOnly(s.StartDate)
	daySet := make(map[time.Weekday]struct{}, len(s.RecurrenceDays))
	for _, d := range s.RecurrenceDays {
		daySet[d] = struct{}{}
	}

	var out []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch s.RecurrenceType {
		case RecurrenceWeekly:
			if _, ok := daySet[d.Weekday()]; ok {
				out = append(out, d)
			}
		case RecurrenceFortnightly:
			if _, ok := daySet[d.Weekday()]; !ok {
				continue
			}
			if weekIndex(anchor, d)%2 == *s.FortnightWeek {
				out = append(out, d)
			}
		case RecurrenceMonthly:
			want := *s.RecurrenceDayOfMonth
			if last := lastDayOfMonth(d); want > last {
				want = last // clamp for short months
			}
			if d.Day() == want {
				out = append(out, d)
			}
		case RecurrenceCustom:
			if diff := daysBetween(anchor, d); diff >= 0 && diff%*s.CustomIntervalDays == 0 {
				out = append(out, d)
			}
		}
	}
	return out
}

// weekIndex counts whole ISO-style weeks (Monday start) elapsed between
// the anchor's week and d's week.
func weekIndex(anchor, d time.Time) int {
	return daysBetween(startOfWeek(anchor), startOfWeek(d)) / 7
}

func startOfWeek(t time.Time) time.Time {
	d := dateOnly(t)
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
	return d.AddDate(0, 0, -offset)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func lastDayOfMonth(t time.Time) int {
	y, m, _ := t.Date()
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
