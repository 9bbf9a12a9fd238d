package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestDisplayStatusOf(t *testing.T) {
	staffID := uuid.New()

	tests := []struct {
		name string
		appt Appointment
		want DisplayStatus
	}{
		{
			name: "scheduled with no staff is unassigned",
			appt: Appointment{Status: StatusScheduled},
			want: DisplayUnassigned,
		},
		{
			name: "scheduled with staff id stays scheduled",
			appt: Appointment{Status: StatusScheduled, StaffMemberID: &staffID},
			want: DisplayScheduled,
		},
		{
			name: "scheduled with only assigned employee stays scheduled",
			appt: Appointment{Status: StatusScheduled, AssignedEmployee: &Employee{ID: staffID}},
			want: DisplayScheduled,
		},
		{
			name: "completed ignores missing staff",
			appt: Appointment{Status: StatusCompleted},
			want: DisplayCompleted,
		},
		{
			name: "cancelled ignores staff assignment",
			appt: Appointment{Status: StatusCancelled, StaffMemberID: &staffID},
			want: DisplayCancelled,
		},
		{
			name: "no-show ignores missing staff",
			appt: Appointment{Status: StatusNoShow},
			want: DisplayNoShow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayStatusOf(tt.appt); got != tt.want {
				t.Errorf("DisplayStatusOf() = %q, want %q", got, tt.want)
			}
		})
	}
}
