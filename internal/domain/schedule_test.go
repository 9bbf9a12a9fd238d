package domain

import (
	"errors"
	"testing"
	"time"
)

func intPtr(i int) *int { return &i }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestServiceScheduleValidate(t *testing.T) {
	base := ServiceSchedule{
		RecurrenceType: RecurrenceWeekly,
		RecurrenceDays: []time.Weekday{time.Monday},
		StartDate:      date(2026, 3, 2),
		StartTime:      TimeOfDay{Hour: 9},
		EndTime:        TimeOfDay{Hour: 11},
		Status:         ScheduleActive,
	}

	tests := []struct {
		name    string
		mutate  func(*ServiceSchedule)
		wantErr bool
	}{
		{"valid weekly", func(s *ServiceSchedule) {}, false},
		{
			"weekly without days",
			func(s *ServiceSchedule) { s.RecurrenceDays = nil },
			true,
		},
		{
			"weekly with day-of-month set",
			func(s *ServiceSchedule) { s.RecurrenceDayOfMonth = intPtr(15) },
			true,
		},
		{
			"monthly needs day of month",
			func(s *ServiceSchedule) {
				s.RecurrenceType = RecurrenceMonthly
				s.RecurrenceDays = nil
			},
			true,
		},
		{
			"valid monthly",
			func(s *ServiceSchedule) {
				s.RecurrenceType = RecurrenceMonthly
				s.RecurrenceDays = nil
				s.RecurrenceDayOfMonth = intPtr(15)
			},
			false,
		},
		{
			"fortnightly needs week index",
			func(s *ServiceSchedule) { s.RecurrenceType = RecurrenceFortnightly },
			true,
		},
		{
			"valid fortnightly",
			func(s *ServiceSchedule) {
				s.RecurrenceType = RecurrenceFortnightly
				s.FortnightWeek = intPtr(0)
			},
			false,
		},
		{
			"custom needs interval",
			func(s *ServiceSchedule) {
				s.RecurrenceType = RecurrenceCustom
				s.RecurrenceDays = nil
			},
			true,
		},
		{
			"custom interval on weekly",
			func(s *ServiceSchedule) { s.CustomIntervalDays = intPtr(3) },
			true,
		},
		{
			"end before start",
			func(s *ServiceSchedule) {
				d := date(2026, 2, 1)
				s.EndDate = &d
			},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base
			tt.mutate(&s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !IsValidation(err) {
				t.Errorf("Validate() should return a ValidationError, got %T", err)
			}
		})
	}
}

func TestOccurrencesWeekly(t *testing.T) {
	s := ServiceSchedule{
		RecurrenceType: RecurrenceWeekly,
		RecurrenceDays: []time.Weekday{time.Monday, time.Thursday},
		StartDate:      date(2026, 3, 2), // a Monday
		Status:         ScheduleActive,
	}

	got := s.Occurrences(date(2026, 3, 1), date(2026, 3, 14))
	want := []time.Time{
		date(2026, 3, 2), date(2026, 3, 5),
		date(2026, 3, 9), date(2026, 3, 12),
	}
	assertDates(t, got, want)
}

func TestOccurrencesFortnightly(t *testing.T) {
	s := ServiceSchedule{
		RecurrenceType: RecurrenceFortnightly,
		RecurrenceDays: []time.Weekday{time.Wednesday},
		FortnightWeek:  intPtr(0),
		StartDate:      date(2026, 3, 2), // week 0 starts Mon 2 Mar
		Status:         ScheduleActive,
	}

	got := s.Occurrences(date(2026, 3, 1), date(2026, 3, 31))
	want := []time.Time{date(2026, 3, 4), date(2026, 3, 18)}
	assertDates(t, got, want)

	*s.FortnightWeek = 1
	got = s.Occurrences(date(2026, 3, 1), date(2026, 3, 31))
	want = []time.Time{date(2026, 3, 11), date(2026, 3, 25)}
	assertDates(t, got, want)
}

func TestOccurrencesMonthlyClampsShortMonths(t *testing.T) {
	s := ServiceSchedule{
		RecurrenceType:       RecurrenceMonthly,
		RecurrenceDayOfMonth: intPtr(31),
		StartDate:            date(2026, 1, 1),
		Status:               ScheduleActive,
	}

	got := s.Occurrences(date(2026, 1, 1), date(2026, 4, 30))
	want := []time.Time{
		date(2026, 1, 31),
		date(2026, 2, 28), // clamped
		date(2026, 3, 31),
		date(2026, 4, 30), // clamped
	}
	assertDates(t, got, want)
}

func TestOccurrencesCustomInterval(t *testing.T) {
	s := ServiceSchedule{
		RecurrenceType:     RecurrenceCustom,
		CustomIntervalDays: intPtr(3),
		StartDate:          date(2026, 3, 2),
		Status:             ScheduleActive,
	}

	got := s.Occurrences(date(2026, 3, 4), date(2026, 3, 12))
	want := []time.Time{date(2026, 3, 5), date(2026, 3, 8), date(2026, 3, 11)}
	assertDates(t, got, want)
}

func TestOccurrencesRespectsEndDate(t *testing.T) {
	end := date(2026, 3, 9)
	s := ServiceSchedule{
		RecurrenceType: RecurrenceWeekly,
		RecurrenceDays: []time.Weekday{time.Monday},
		StartDate:      date(2026, 3, 2),
		EndDate:        &end,
		Status:         ScheduleActive,
	}

	got := s.Occurrences(date(2026, 3, 1), date(2026, 3, 31))
	want := []time.Time{date(2026, 3, 2), date(2026, 3, 9)}
	assertDates(t, got, want)
}

func assertDates(t *testing.T, got, want []time.Time) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d occurrences %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range got {
		if !got[i].Equal(want[i]) {
			t.Errorf("occurrence[%d] = %s, want %s", i, got[i].Format("2006-01-02"), want[i].Format("2006-01-02"))
		}
	}
}

func TestTimesheetTransitions(t *testing.T) {
	ts := Timesheet{Status: TimesheetDraft}
	if !ts.CanSubmit() {
		t.Error("draft timesheet should be submittable")
	}
	if ts.CanDecide() {
		t.Error("draft timesheet should not be decidable")
	}

	ts.Status = TimesheetSubmitted
	if ts.CanSubmit() {
		t.Error("submitted timesheet should not be submittable again")
	}
	if !ts.CanDecide() {
		t.Error("submitted timesheet should be decidable")
	}

	for _, final := range []TimesheetStatus{TimesheetApproved, TimesheetRejected} {
		ts.Status = final
		if ts.CanSubmit() || ts.CanDecide() {
			t.Errorf("%s timesheet should be terminal", final)
		}
	}
}

func TestValidationErrorKind(t *testing.T) {
	err := NewValidationError("reason", "must not be empty")
	if !IsValidation(err) {
		t.Error("IsValidation should match a ValidationError")
	}
	if IsValidation(errors.New("other")) {
		t.Error("IsValidation should not match arbitrary errors")
	}
}
