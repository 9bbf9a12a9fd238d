package email

import (
	"strings"
	"testing"
)

func TestBuildRosterAssignmentEmail(t *testing.T) {
	msg := BuildRosterAssignmentEmail(RosterEmailData{
		FirstName:       "Sam",
		Email:           "sam@example.com",
		ParticipantName: "Alex T.",
		AppointmentDate: "2026-09-01",
		StartTime:       "09:00",
		EndTime:         "12:00",
		Location:        "12 Wattle St, Footscray",
	})

	if len(msg.To) != 1 || msg.To[0] != "sam@example.com" {
		t.Errorf("unexpected recipients: %v", msg.To)
	}
	if !strings.Contains(msg.Subject, "Alex T.") {
		t.Errorf("subject missing participant name: %q", msg.Subject)
	}
	for _, body := range []string{msg.TextBody, msg.HTMLBody} {
		if !strings.Contains(body, "Sam") || !strings.Contains(body, "09:00") || !strings.Contains(body, "Footscray") {
			t.Errorf("body missing shift details:\n%s", body)
		}
	}
	// Default app name applies when none is given.
	if !strings.Contains(msg.TextBody, "CareRoster") {
		t.Errorf("expected default app name in body")
	}
}

func TestBuildTimesheetDecisionEmails(t *testing.T) {
	data := TimesheetEmailData{
		FirstName:   "Priya",
		Email:       "priya@example.com",
		PeriodStart: "2026-08-10",
		PeriodEnd:   "2026-08-16",
		Amount:      "$1,240.00",
		Reason:      "Missing shift notes for Thursday",
	}

	approved := BuildTimesheetApprovedEmail(data)
	if !strings.Contains(approved.Subject, "approved") {
		t.Errorf("unexpected subject: %q", approved.Subject)
	}
	if !strings.Contains(approved.TextBody, "$1,240.00") {
		t.Error("approved body missing amount")
	}

	rejected := BuildTimesheetRejectedEmail(data)
	if !strings.Contains(rejected.Subject, "rejected") {
		t.Errorf("unexpected subject: %q", rejected.Subject)
	}
	if !strings.Contains(rejected.TextBody, data.Reason) {
		t.Error("rejected body missing reason")
	}
}

func TestTemplateFallbacks(t *testing.T) {
	msg := BuildAccountInviteEmail(InviteEmailData{
		Email:        "new@example.com",
		TempPassword: "s3cret",
		LoginURL:     "https://app.example.com/login",
	})

	// Empty first name falls back to a generic greeting.
	if !strings.Contains(msg.TextBody, "Hi there,") {
		t.Errorf("expected fallback greeting, got:\n%s", msg.TextBody)
	}
	if !strings.Contains(msg.HTMLBody, "https://app.example.com/login") {
		t.Error("html body missing login URL")
	}
}
