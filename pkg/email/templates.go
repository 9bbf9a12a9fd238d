package email

import (
	"fmt"
)

// RosterEmailData contains the data needed for roster notification templates.
type RosterEmailData struct {
	FirstName       string
	Email           string
	ParticipantName string
	AppointmentDate string
	StartTime       string
	EndTime         string
	Location        string
	Reason          string
	AppName         string
}

// TimesheetEmailData contains the data needed for timesheet decision templates.
type TimesheetEmailData struct {
	FirstName   string
	Email       string
	PeriodStart string
	PeriodEnd   string
	Amount      string
	Reason      string
	AppName     string
}

// InviteEmailData contains the data needed for account invitation templates.
type InviteEmailData struct {
	FirstName    string
	Email        string
	TempPassword string
	LoginURL     string
	AppName      string
}

func appNameOr(name string) string {
	if name == "" {
		return "CareRoster"
	}
	return name
}

func firstNameOr(name string) string {
	if name == "" {
		return "there"
	}
	return name
}

// BuildRosterAssignmentEmail tells a care worker they have been put on a shift.
func BuildRosterAssignmentEmail(data RosterEmailData) Message {
	appName := appNameOr(data.AppName)
	firstName := firstNameOr(data.FirstName)

	subject := fmt.Sprintf("New shift: %s on %s", data.ParticipantName, data.AppointmentDate)

	textBody := fmt.Sprintf(`Hi %s,

You have been rostered onto a new shift.

Participant: %s
Date:        %s
Time:        %s - %s
Location:    %s

Please check the roster for full details.

Thanks,
The %s Team`,
		firstName, data.ParticipantName, data.AppointmentDate, data.StartTime, data.EndTime, data.Location, appName)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #2563eb;">Hi %s,</h2>
    <p>You have been rostered onto a new shift.</p>
    <table style="border-collapse: collapse;">
        <tr><td style="padding: 4px 12px 4px 0;"><strong>Participant</strong></td><td>%s</td></tr>
        <tr><td style="padding: 4px 12px 4px 0;"><strong>Date</strong></td><td>%s</td></tr>
        <tr><td style="padding: 4px 12px 4px 0;"><strong>Time</strong></td><td>%s - %s</td></tr>
        <tr><td style="padding: 4px 12px 4px 0;"><strong>Location</strong></td><td>%s</td></tr>
    </table>
    <p style="color: #6b7280; font-size: 14px; margin-top: 30px;">Thanks,<br>The %s Team</p>
</body>
</html>`,
		firstName, data.ParticipantName, data.AppointmentDate, data.StartTime, data.EndTime, data.Location, appName)

	return Message{
		To:       []string{data.Email},
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	}
}

// BuildAppointmentCancelledEmail tells a care worker a rostered shift was cancelled.
func BuildAppointmentCancelledEmail(data RosterEmailData) Message {
	appName := appNameOr(data.AppName)
	firstName := firstNameOr(data.FirstName)

	subject := fmt.Sprintf("Shift cancelled: %s on %s", data.ParticipantName, data.AppointmentDate)

	textBody := fmt.Sprintf(`Hi %s,

Your shift with %s on %s (%s - %s) has been cancelled.

Reason: %s

Thanks,
The %s Team`,
		firstName, data.ParticipantName, data.AppointmentDate, data.StartTime, data.EndTime, data.Reason, appName)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #dc2626;">Hi %s,</h2>
    <p>Your shift with <strong>%s</strong> on %s (%s - %s) has been cancelled.</p>
    <p>Reason: %s</p>
    <p style="color: #6b7280; font-size: 14px; margin-top: 30px;">Thanks,<br>The %s Team</p>
</body>
</html>`,
		firstName, data.ParticipantName, data.AppointmentDate, data.StartTime, data.EndTime, data.Reason, appName)

	return Message{
		To:       []string{data.Email},
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	}
}

// BuildTimesheetApprovedEmail confirms an approved timesheet.
func BuildTimesheetApprovedEmail(data TimesheetEmailData) Message {
	appName := appNameOr(data.AppName)
	firstName := firstNameOr(data.FirstName)

	subject := fmt.Sprintf("Timesheet approved (%s - %s)", data.PeriodStart, data.PeriodEnd)

	textBody := fmt.Sprintf(`Hi %s,

Your timesheet for %s - %s has been approved.

Amount: %s

Thanks,
The %s Team`,
		firstName, data.PeriodStart, data.PeriodEnd, data.Amount, appName)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #16a34a;">Hi %s,</h2>
    <p>Your timesheet for <strong>%s - %s</strong> has been approved.</p>
    <p>Amount: <strong>%s</strong></p>
    <p style="color: #6b7280; font-size: 14px; margin-top: 30px;">Thanks,<br>The %s Team</p>
</body>
</html>`,
		firstName, data.PeriodStart, data.PeriodEnd, data.Amount, appName)

	return Message{
		To:       []string{data.Email},
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	}
}

// BuildTimesheetRejectedEmail tells a care worker their timesheet was sent back.
func BuildTimesheetRejectedEmail(data TimesheetEmailData) Message {
	appName := appNameOr(data.AppName)
	firstName := firstNameOr(data.FirstName)

	subject := fmt.Sprintf("Timesheet rejected (%s - %s)", data.PeriodStart, data.PeriodEnd)

	textBody := fmt.Sprintf(`Hi %s,

Your timesheet for %s - %s was rejected.

Reason: %s

Please review and resubmit.

Thanks,
The %s Team`,
		firstName, data.PeriodStart, data.PeriodEnd, data.Reason, appName)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #dc2626;">Hi %s,</h2>
    <p>Your timesheet for <strong>%s - %s</strong> was rejected.</p>
    <p>Reason: %s</p>
    <p>Please review and resubmit.</p>
    <p style="color: #6b7280; font-size: 14px; margin-top: 30px;">Thanks,<br>The %s Team</p>
</body>
</html>`,
		firstName, data.PeriodStart, data.PeriodEnd, data.Reason, appName)

	return Message{
		To:       []string{data.Email},
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	}
}

// BuildAccountInviteEmail welcomes a new staff account with a temporary password.
func BuildAccountInviteEmail(data InviteEmailData) Message {
	appName := appNameOr(data.AppName)
	firstName := firstNameOr(data.FirstName)

	subject := fmt.Sprintf("Your %s account", appName)

	textBody := fmt.Sprintf(`Hi %s,

An account has been created for you on %s.

Temporary password: %s

Sign in at %s and change your password straight away.

Thanks,
The %s Team`,
		firstName, appName, data.TempPassword, data.LoginURL, appName)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #2563eb;">Hi %s,</h2>
    <p>An account has been created for you on %s.</p>
    <p>Temporary password:</p>
    <p style="background-color: #f3f4f6; padding: 10px 15px; border-radius: 4px; font-family: monospace; font-size: 16px;">%s</p>
    <p style="text-align: center; margin: 30px 0;">
        <a href="%s" style="background-color: #2563eb; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Sign in</a>
    </p>
    <p>Change your password straight away.</p>
    <p style="color: #6b7280; font-size: 14px; margin-top: 30px;">Thanks,<br>The %s Team</p>
</body>
</html>`,
		firstName, appName, data.TempPassword, data.LoginURL, appName)

	return Message{
		To:       []string{data.Email},
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	}
}
