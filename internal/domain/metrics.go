package domain

import "github.com/google/uuid"

// RosterMetrics are dashboard rollups over a collection of appointments.
type RosterMetrics struct {
	UnassignedCount     int     `json:"unassigned_count"`
	AssignedCount       int     `json:"assigned_count"`
	ActiveClients       int     `json:"active_clients"`
	TotalRevenue        Money   `json:"total_revenue"`
	TotalHoursDelivered float64 `json:"total_hours_delivered"`
	NoShowCount         int     `json:"no_show_count"`
}

// Rollup computes RosterMetrics over a collection of appointments.
//
// Revenue counts amount_charged when present, otherwise the rate, over
// non-cancelled appointments only; sums are integer-cent arithmetic. A
// malformed appointment is excluded from the sums it cannot contribute to
// but never aborts the rollup.
func Rollup(appts []Appointment) RosterMetrics {
	var m RosterMetrics
	clients := make(map[uuid.UUID]struct{})

	for _, a := range appts {
		switch DisplayStatusOf(a) {
		case DisplayUnassigned:
			m.UnassignedCount++
		case DisplayScheduled:
			m.AssignedCount++
		case DisplayNoShow:
			m.NoShowCount++
		}

		if a.ParticipantID != uuid.Nil {
			clients[a.ParticipantID] = struct{}{}
		}

		if a.Status != StatusCancelled {
			switch {
			case a.AmountCharged != nil && *a.AmountCharged >= 0:
				m.TotalRevenue += *a.AmountCharged
			case a.Rate >= 0:
				m.TotalRevenue += a.Rate
			}
		}

		if a.HoursDelivered != nil && *a.HoursDelivered >= 0 {
			m.TotalHoursDelivered += *a.HoursDelivered
		}
	}

	m.ActiveClients = len(clients)
	return m
}
