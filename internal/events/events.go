// Package events defines the payloads published on NATS subjects. The
// subject names live in pkg/constants.
package events

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentCancelled is published when a scheduled appointment is
// cancelled, whatever the initiator.
type AppointmentCancelled struct {
	AppointmentID uuid.UUID  `json:"appointment_id"`
	ParticipantID uuid.UUID  `json:"participant_id,omitempty"`
	StaffMemberID *uuid.UUID `json:"staff_member_id,omitempty"`
	StartDate     time.Time  `json:"start_date"`
	Reason        string     `json:"reason"`
	CancelledAt   time.Time  `json:"cancelled_at"`
}

// TimesheetDecided is published when a submitted timesheet is approved
// or rejected.
type TimesheetDecided struct {
	TimesheetID uuid.UUID `json:"timesheet_id"`
	EmployeeID  uuid.UUID `json:"employee_id"`
	Status      string    `json:"status"`
	Reason      string    `json:"reason,omitempty"`
	DecidedBy   uuid.UUID `json:"decided_by"`
	DecidedAt   time.Time `json:"decided_at"`
}

// RosterAssigned is published when a staff member is assigned to an
// appointment.
type RosterAssigned struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	ParticipantID uuid.UUID `json:"participant_id,omitempty"`
	StaffMemberID uuid.UUID `json:"staff_member_id"`
	StartDate     time.Time `json:"start_date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Location      string    `json:"location,omitempty"`
}
