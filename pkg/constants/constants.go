package constants

const (
	ConfigName   = "config"
	ConfigFormat = "yaml"

	ServiceName = "careroster"

	// Subjects published on NATS.
	SubjectAppointmentCancelled = "careroster.appointment.cancelled"
	SubjectTimesheetDecided     = "careroster.timesheet.decided"
	SubjectRosterAssigned       = "careroster.roster.assigned"
)
