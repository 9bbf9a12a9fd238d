package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimeOfDay is a wall-clock time without a date, minute resolution.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour < 24 && t.Minute >= 0 && t.Minute < 60
}

// MinuteOfDay returns minutes since midnight.
func (t TimeOfDay) MinuteOfDay() int { return t.Hour*60 + t.Minute }

func (t TimeOfDay) String() string { return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute) }

// ParseTimeOfDay parses "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var tod TimeOfDay
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d:%d", &tod.Hour, &tod.Minute); err != nil {
		return TimeOfDay{}, NewValidationError("time", "expected HH:MM, got "+s)
	}
	if !tod.Valid() {
		return TimeOfDay{}, NewValidationError("time", "out of range: "+s)
	}
	return tod, nil
}

// Participant is a person receiving NDIS-funded supports. Read-only to the
// core; owned by the persistence layer.
type Participant struct {
	ID              uuid.UUID      `json:"id"`
	FirstName       string         `json:"first_name"`
	LastName        string         `json:"last_name"`
	PreferredName   string         `json:"preferred_name,omitempty"`
	NDISNumber      string         `json:"ndis_number"`
	SupportCategory BudgetCategory `json:"support_category,omitempty"`
	Phone           string         `json:"phone,omitempty"`
	Email           string         `json:"email,omitempty"`
	AvatarKey       *string        `json:"avatar_key,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// DisplayName prefers the preferred name over the legal first name.
func (p Participant) DisplayName() string {
	first := p.FirstName
	if p.PreferredName != "" {
		first = p.PreferredName
	}
	return strings.TrimSpace(first + " " + p.LastName)
}

// Employee is a care worker or office staff member.
//
// IsAvailable is computed relative to a specific appointment's time window
// at query time; it is not an intrinsic property and must never be cached
// on the entity across queries.
type Employee struct {
	ID          uuid.UUID  `json:"id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Role        string     `json:"role"`
	Department  string     `json:"department,omitempty"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	WorkerType  WorkerType `json:"worker_type"`
	Skills      []string   `json:"skills"`
	IsAvailable bool       `json:"is_available"`
	AvatarKey   *string    `json:"avatar_key,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (e Employee) DisplayName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// ServiceNote is a free-text note attached to an appointment. Append-only.
type ServiceNote struct {
	ID            uuid.UUID `json:"id"`
	AppointmentID uuid.UUID `json:"appointment_id"`
	Category      *string   `json:"category,omitempty"`
	Text          string    `json:"text"`
	Sensitive     bool      `json:"sensitive"`
	AuthorID      uuid.UUID `json:"author_id"`
	AuthorName    string    `json:"author_name"`
	CreatedAt     time.Time `json:"created_at"`
}

// NDISPlanSummary is a read-only budget snapshot for a plan, optionally
// narrowed to one budget category. Totals are sourced externally.
type NDISPlanSummary struct {
	PlanID         uuid.UUID       `json:"plan_id"`
	ParticipantID  uuid.UUID       `json:"participant_id"`
	BudgetCategory *BudgetCategory `json:"budget_category,omitempty"`
	Total          Money           `json:"total"`
	Allocated      Money           `json:"allocated"`
	Spent          Money           `json:"spent"`
	Committed      Money           `json:"committed"`
	StartDate      time.Time       `json:"start_date"`
	EndDate        *time.Time      `json:"end_date,omitempty"`
}

// Remaining is the uncommitted balance of the snapshot.
func (p NDISPlanSummary) Remaining() Money {
	return p.Total - p.Spent - p.Committed
}

// Appointment is the central scheduling entity.
type Appointment struct {
	ID            uuid.UUID    `json:"id"`
	ParticipantID uuid.UUID    `json:"participant_id"`
	Participant   *Participant `json:"participant,omitempty"`
	WorkerType    WorkerType   `json:"worker_type"`

	// EndDate is set only when the interval crosses midnight; absent means
	// the appointment starts and ends on StartDate.
	StartDate       time.Time  `json:"start_date"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	StartTime       TimeOfDay  `json:"start_time"`
	EndTime         TimeOfDay  `json:"end_time"`
	DurationMinutes int        `json:"duration_minutes"`

	Location       string   `json:"location,omitempty"`
	RequiredSkills []string `json:"required_skills"`

	PlanID              *uuid.UUID `json:"plan_id,omitempty"`
	BudgetCategoryID    *uuid.UUID `json:"budget_category_id,omitempty"`
	BudgetCategoryLabel string     `json:"budget_category_label,omitempty"`

	// Rate is the hourly rate in cents. HoursDelivered and AmountCharged
	// are absent until the appointment is completed.
	Rate           Money    `json:"rate"`
	HoursDelivered *float64 `json:"hours_delivered,omitempty"`
	AmountCharged  *Money   `json:"amount_charged,omitempty"`

	Status AppointmentStatus `json:"status"`

	StaffMemberID    *uuid.UUID `json:"staff_member_id,omitempty"`
	StaffMemberName  string     `json:"staff_member_name,omitempty"`
	AssignedEmployee *Employee  `json:"assigned_employee,omitempty"`

	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`

	Note         string        `json:"note,omitempty"`
	ServiceNotes []ServiceNote `json:"service_notes,omitempty"`

	// Candidates is populated transiently by a matching pass and is not part
	// of the appointment's durable state.
	Candidates []StaffCandidate `json:"candidates,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WallClockMinutes returns the wall-clock length of the appointment
// interval, accounting for midnight crossing when EndDate is set.
func (a Appointment) WallClockMinutes() int {
	days := 0
	if a.EndDate != nil {
		days = daysBetween(a.StartDate, *a.EndDate)
	}
	return days*24*60 + a.EndTime.MinuteOfDay() - a.StartTime.MinuteOfDay()
}

// Validate checks the appointment's internal consistency. It returns an
// error wrapping ErrInvariantViolation for contradictory persisted fields;
// callers surface these rather than repairing them.
func (a Appointment) Validate() error {
	if !a.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvariantViolation, a.Status)
	}
	if a.AssignedEmployee != nil && (a.StaffMemberID == nil || *a.StaffMemberID != a.AssignedEmployee.ID) {
		return fmt.Errorf("%w: assigned employee %s does not match staff_member_id", ErrInvariantViolation, a.AssignedEmployee.ID)
	}
	if got := a.WallClockMinutes(); a.DurationMinutes != got {
		return fmt.Errorf("%w: duration_minutes=%d but interval spans %d minutes", ErrInvariantViolation, a.DurationMinutes, got)
	}
	if a.Status == StatusCancelled {
		if a.CancellationReason == nil || a.CancelledAt == nil {
			return fmt.Errorf("%w: cancelled appointment missing cancellation reason/date", ErrInvariantViolation)
		}
	} else if a.CancellationReason != nil || a.CancelledAt != nil {
		return fmt.Errorf("%w: cancellation fields set on non-cancelled appointment", ErrInvariantViolation)
	}
	return nil
}

// HasAssignedStaff reports whether the appointment has any staff linkage.
func (a Appointment) HasAssignedStaff() bool {
	return a.StaffMemberID != nil || a.AssignedEmployee != nil
}

// Timesheet records hours worked by an employee over a pay period,
// flowing draft -> submitted -> approved|rejected.
type Timesheet struct {
	ID          uuid.UUID       `json:"id"`
	EmployeeID  uuid.UUID       `json:"employee_id"`
	PeriodStart time.Time       `json:"period_start"`
	PeriodEnd   time.Time       `json:"period_end"`
	Minutes     int             `json:"minutes"`
	Rate        Money           `json:"rate"`
	Amount      Money           `json:"amount"`
	Status      TimesheetStatus `json:"status"`
	Notes       *string         `json:"notes,omitempty"`

	DecisionNotes   *string    `json:"decision_notes,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	SubmittedAt     *time.Time `json:"submitted_at,omitempty"`
	DecidedAt       *time.Time `json:"decided_at,omitempty"`
	DecidedBy       *uuid.UUID `json:"decided_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CanSubmit reports whether the timesheet may move to submitted.
func (t Timesheet) CanSubmit() bool { return t.Status == TimesheetDraft }

// CanDecide reports whether the timesheet may be approved or rejected.
func (t Timesheet) CanDecide() bool { return t.Status == TimesheetSubmitted }

func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start) / (24 * time.Hour))
}
