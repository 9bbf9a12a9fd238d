package domain

// AppointmentStatus is the persisted lifecycle status of an appointment.
// It never contains the synthetic "unassigned" value; see DisplayStatus.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// DisplayStatus is the UI-facing status derived from persisted fields.
// It is never written back to storage.
type DisplayStatus string

const (
	DisplayScheduled  DisplayStatus = "scheduled"
	DisplayCompleted  DisplayStatus = "completed"
	DisplayCancelled  DisplayStatus = "cancelled"
	DisplayNoShow     DisplayStatus = "no_show"
	DisplayUnassigned DisplayStatus = "unassigned"
)

// RecurrenceType selects which recurrence parameters of a ServiceSchedule
// are meaningful.
type RecurrenceType string

const (
	RecurrenceWeekly      RecurrenceType = "weekly"
	RecurrenceFortnightly RecurrenceType = "fortnightly"
	RecurrenceMonthly     RecurrenceType = "monthly"
	RecurrenceCustom      RecurrenceType = "custom"
)

func (r RecurrenceType) Valid() bool {
	switch r {
	case RecurrenceWeekly, RecurrenceFortnightly, RecurrenceMonthly, RecurrenceCustom:
		return true
	}
	return false
}

type ScheduleStatus string

const (
	ScheduleActive ScheduleStatus = "active"
	SchedulePaused ScheduleStatus = "paused"
	ScheduleEnded  ScheduleStatus = "ended"
	ScheduleDraft  ScheduleStatus = "draft"
)

func (s ScheduleStatus) Valid() bool {
	switch s {
	case ScheduleActive, SchedulePaused, ScheduleEnded, ScheduleDraft:
		return true
	}
	return false
}

// WorkerType classifies the kind of support worker an appointment requires.
type WorkerType string

const (
	WorkerSupportWorker    WorkerType = "support_worker"
	WorkerNurse            WorkerType = "nurse"
	WorkerTherapyAssistant WorkerType = "therapy_assistant"
	WorkerCoordinator      WorkerType = "support_coordinator"
)

func (w WorkerType) Valid() bool {
	switch w {
	case WorkerSupportWorker, WorkerNurse, WorkerTherapyAssistant, WorkerCoordinator:
		return true
	}
	return false
}

// BudgetCategory is a top-level classification of NDIS plan funding.
type BudgetCategory string

const (
	BudgetCoreSupports     BudgetCategory = "core_supports"
	BudgetCapacityBuilding BudgetCategory = "capacity_building"
	BudgetCapitalSupports  BudgetCategory = "capital_supports"
)

func (b BudgetCategory) Valid() bool {
	switch b {
	case BudgetCoreSupports, BudgetCapacityBuilding, BudgetCapitalSupports:
		return true
	}
	return false
}

// MatchQuality is the coarse tier summarising a numeric staff-match score.
type MatchQuality string

const (
	MatchHigh   MatchQuality = "high"
	MatchMedium MatchQuality = "medium"
	MatchLow    MatchQuality = "low"
)

// TimesheetStatus is the lifecycle status of a timesheet.
type TimesheetStatus string

const (
	TimesheetDraft     TimesheetStatus = "draft"
	TimesheetSubmitted TimesheetStatus = "submitted"
	TimesheetApproved  TimesheetStatus = "approved"
	TimesheetRejected  TimesheetStatus = "rejected"
)

func (s TimesheetStatus) Valid() bool {
	switch s {
	case TimesheetDraft, TimesheetSubmitted, TimesheetApproved, TimesheetRejected:
		return true
	}
	return false
}
