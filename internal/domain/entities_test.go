package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestWallClockMinutes(t *testing.T) {
	nextDay := date(2026, 3, 3)

	tests := []struct {
		name string
		appt Appointment
		want int
	}{
		{
			name: "same day",
			appt: Appointment{
				StartDate: date(2026, 3, 2),
				StartTime: TimeOfDay{Hour: 9},
				EndTime:   TimeOfDay{Hour: 11, Minute: 30},
			},
			want: 150,
		},
		{
			name: "crosses midnight",
			appt: Appointment{
				StartDate: date(2026, 3, 2),
				EndDate:   &nextDay,
				StartTime: TimeOfDay{Hour: 22},
				EndTime:   TimeOfDay{Hour: 6},
			},
			want: 480,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appt.WallClockMinutes(); got != tt.want {
				t.Errorf("WallClockMinutes() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAppointmentValidate(t *testing.T) {
	staffID := uuid.New()
	otherID := uuid.New()
	reason := "worker unavailable"
	when := time.Now()

	valid := Appointment{
		Status:          StatusScheduled,
		StartDate:       date(2026, 3, 2),
		StartTime:       TimeOfDay{Hour: 9},
		EndTime:         TimeOfDay{Hour: 10},
		DurationMinutes: 60,
	}

	tests := []struct {
		name    string
		mutate  func(*Appointment)
		wantErr bool
	}{
		{"valid", func(a *Appointment) {}, false},
		{
			"staff id mismatch",
			func(a *Appointment) {
				a.StaffMemberID = &staffID
				a.AssignedEmployee = &Employee{ID: otherID}
			},
			true,
		},
		{
			"matching staff linkage",
			func(a *Appointment) {
				a.StaffMemberID = &staffID
				a.AssignedEmployee = &Employee{ID: staffID}
			},
			false,
		},
		{
			"duration disagrees with interval",
			func(a *Appointment) { a.DurationMinutes = 90 },
			true,
		},
		{
			"cancelled without reason",
			func(a *Appointment) { a.Status = StatusCancelled },
			true,
		},
		{
			"cancelled with reason and date",
			func(a *Appointment) {
				a.Status = StatusCancelled
				a.CancellationReason = &reason
				a.CancelledAt = &when
			},
			false,
		},
		{
			"cancellation fields on scheduled",
			func(a *Appointment) { a.CancellationReason = &reason },
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid
			tt.mutate(&a)
			err := a.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvariantViolation) {
				t.Errorf("Validate() should wrap ErrInvariantViolation, got %v", err)
			}
		})
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{"09:30", TimeOfDay{9, 30}, false},
		{" 23:59 ", TimeOfDay{23, 59}, false},
		{"24:00", TimeOfDay{}, true},
		{"nine", TimeOfDay{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimeOfDay(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseTimeOfDay(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMoneyString(t *testing.T) {
	tests := []struct {
		m    Money
		want string
	}{
		{0, "$0.00"},
		{23000, "$230.00"},
		{8050, "$80.50"},
		{-150, "-$1.50"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("Money(%d).String() = %q, want %q", tt.m, got, tt.want)
		}
	}
}
