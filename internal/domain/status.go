package domain

// DisplayStatusOf derives the UI-facing status from an appointment's
// persisted fields. A scheduled appointment with no staff linkage at all
// reads as unassigned; every other appointment reads as its persisted
// status. Always derive from the persisted status; a DisplayStatus is not
// a valid input to this function.
func DisplayStatusOf(a Appointment) DisplayStatus {
	if a.Status == StatusScheduled && !a.HasAssignedStaff() {
		return DisplayUnassigned
	}
	return DisplayStatus(a.Status)
}
