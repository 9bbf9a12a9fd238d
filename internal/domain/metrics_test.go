package domain

import (
	"testing"

	"github.com/google/uuid"
)

func moneyPtr(m Money) *Money        { return &m }
func floatPtr(f float64) *float64    { return &f }
func uuidPtr(u uuid.UUID) *uuid.UUID { return &u }

func TestRollupEmpty(t *testing.T) {
	m := Rollup(nil)
	if m != (RosterMetrics{}) {
		t.Errorf("Rollup(nil) = %+v, want zero metrics", m)
	}
}

func TestRollupRevenue(t *testing.T) {
	p := uuid.New()
	appts := []Appointment{
		{ParticipantID: p, Status: StatusCompleted, StaffMemberID: uuidPtr(uuid.New()), Rate: 8000, AmountCharged: moneyPtr(15000)},
		{ParticipantID: p, Status: StatusScheduled, StaffMemberID: uuidPtr(uuid.New()), Rate: 8000},
	}

	m := Rollup(appts)
	if m.TotalRevenue != 23000 {
		t.Errorf("TotalRevenue = %d, want 23000 cents", m.TotalRevenue)
	}
}

func TestRollupCancelledExcludedFromRevenue(t *testing.T) {
	reason := "participant unwell"
	appts := []Appointment{
		{ParticipantID: uuid.New(), Status: StatusCancelled, Rate: 8000, CancellationReason: &reason},
		{ParticipantID: uuid.New(), Status: StatusScheduled, StaffMemberID: uuidPtr(uuid.New()), Rate: 5000},
	}

	m := Rollup(appts)
	if m.TotalRevenue != 5000 {
		t.Errorf("TotalRevenue = %d, want 5000", m.TotalRevenue)
	}
}

func TestRollupCounts(t *testing.T) {
	p1, p2 := uuid.New(), uuid.New()
	staff := uuid.New()

	appts := []Appointment{
		{ParticipantID: p1, Status: StatusScheduled},                          // unassigned
		{ParticipantID: p1, Status: StatusScheduled, StaffMemberID: &staff},   // assigned
		{ParticipantID: p2, Status: StatusCompleted, StaffMemberID: &staff},   // neither
		{ParticipantID: p2, Status: StatusNoShow},                             // no-show
	}

	m := Rollup(appts)
	if m.UnassignedCount != 1 {
		t.Errorf("UnassignedCount = %d, want 1", m.UnassignedCount)
	}
	if m.AssignedCount != 1 {
		t.Errorf("AssignedCount = %d, want 1", m.AssignedCount)
	}
	if m.NoShowCount != 1 {
		t.Errorf("NoShowCount = %d, want 1", m.NoShowCount)
	}
	if m.ActiveClients != 2 {
		t.Errorf("ActiveClients = %d, want 2", m.ActiveClients)
	}
}

func TestRollupHoursDelivered(t *testing.T) {
	appts := []Appointment{
		{ParticipantID: uuid.New(), Status: StatusCompleted, HoursDelivered: floatPtr(2.5)},
		{ParticipantID: uuid.New(), Status: StatusCompleted, HoursDelivered: floatPtr(1.25)},
		{ParticipantID: uuid.New(), Status: StatusScheduled}, // no hours yet
	}

	m := Rollup(appts)
	if m.TotalHoursDelivered != 3.75 {
		t.Errorf("TotalHoursDelivered = %v, want 3.75", m.TotalHoursDelivered)
	}
}

// A malformed row loses the contributions it cannot make but does not
// abort the rollup.
func TestRollupMalformedRowSkipped(t *testing.T) {
	appts := []Appointment{
		{ParticipantID: uuid.Nil, Status: StatusScheduled, Rate: -100},       // no participant, nonsense rate
		{ParticipantID: uuid.New(), Status: StatusCompleted, Rate: 8000, StaffMemberID: uuidPtr(uuid.New())},
	}

	m := Rollup(appts)
	if m.ActiveClients != 1 {
		t.Errorf("ActiveClients = %d, want 1", m.ActiveClients)
	}
	if m.TotalRevenue != 8000 {
		t.Errorf("TotalRevenue = %d, want 8000", m.TotalRevenue)
	}
	if m.UnassignedCount != 1 {
		t.Errorf("UnassignedCount = %d, want 1 (malformed row still counts states it can)", m.UnassignedCount)
	}
}
