package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/fx"

	"github.com/johnwondoh/careroster/config"
	"github.com/johnwondoh/careroster/internal/events"
	"github.com/johnwondoh/careroster/internal/service/notification"
	"github.com/johnwondoh/careroster/internal/service/schedule"
	"github.com/johnwondoh/careroster/internal/store"
	"github.com/johnwondoh/careroster/pkg/constants"
	"github.com/johnwondoh/careroster/pkg/email"
)

// WorkerModule registers the NATS event workers and the schedule
// generation ticker.
var WorkerModule = fx.Module("workers",
	fx.Invoke(RegisterWorkers),
)

type WorkerParams struct {
	fx.In

	Lc           fx.Lifecycle
	Cfg          *config.Config
	NC           *nats.Conn
	Users        *store.UserStore
	Employees    *store.EmployeeStore
	Participants *store.ParticipantStore
	Timesheets   *store.TimesheetStore
	NotifSvc     notification.Service
	ScheduleSvc  schedule.Service
	Email        *email.Client
}

func RegisterWorkers(p WorkerParams) {
	genCtx, cancelGen := context.WithCancel(context.Background())

	p.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			startRosterWorker(p)
			startCancellationWorker(p)
			startTimesheetWorker(p)
			go runScheduleGenerator(genCtx, p)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancelGen()
			// NATS drain handled by ProvideNatsClient
			return nil
		},
	})
}

// ---------------------------------------------------------------------------
// roster_worker
// ---------------------------------------------------------------------------

func startRosterWorker(p WorkerParams) {
	_, err := p.NC.Subscribe(constants.SubjectRosterAssigned, func(msg *nats.Msg) {
		var ev events.RosterAssigned
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			slog.Warn("roster_worker: bad payload", "err", err)
			return
		}

		ctx := context.Background()

		emp, err := p.Employees.GetByID(ctx, ev.StaffMemberID)
		if err != nil {
			slog.Warn("roster_worker: employee not found", "id", ev.StaffMemberID.String(), "err", err)
			return
		}

		participantName := "a participant"
		if pt, err := p.Participants.GetByID(ctx, ev.ParticipantID); err == nil {
			participantName = pt.DisplayName()
		}

		date := ev.StartDate.Format("2006-01-02")
		title := "New shift assigned"
		body := fmt.Sprintf("You have been rostered with %s on %s, %s to %s.",
			participantName, date, ev.StartTime, ev.EndTime)

		// In-app notification goes to the linked login account, if one exists.
		if u, err := p.Users.GetByEmployeeID(ctx, emp.ID); err == nil {
			if _, err := p.NotifSvc.Notify(ctx, u.ID, notification.KindRosterAssigned, title, body); err != nil {
				slog.Warn("roster_worker: create notification failed", "err", err)
			}
		}

		if emp.Email != "" {
			m := email.BuildRosterAssignmentEmail(email.RosterEmailData{
				FirstName:       emp.FirstName,
				Email:           emp.Email,
				ParticipantName: participantName,
				AppointmentDate: date,
				StartTime:       ev.StartTime,
				EndTime:         ev.EndTime,
				Location:        ev.Location,
			})
			if err := p.Email.Send(ctx, m); err != nil {
				slog.Warn("roster_worker: send email failed", "err", err)
			}
		}
	})
	if err != nil {
		slog.Error("roster_worker: subscribe failed", "err", err)
		return
	}

	slog.Info("roster_worker: started")
}

// ---------------------------------------------------------------------------
// cancellation_worker
// ---------------------------------------------------------------------------

func startCancellationWorker(p WorkerParams) {
	_, err := p.NC.Subscribe(constants.SubjectAppointmentCancelled, func(msg *nats.Msg) {
		var ev events.AppointmentCancelled
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			slog.Warn("cancellation_worker: bad payload", "err", err)
			return
		}
		if ev.StaffMemberID == nil {
			// Nobody was rostered; nothing to tell anyone.
			return
		}

		ctx := context.Background()

		emp, err := p.Employees.GetByID(ctx, *ev.StaffMemberID)
		if err != nil {
			slog.Warn("cancellation_worker: employee not found", "id", ev.StaffMemberID.String(), "err", err)
			return
		}

		participantName := "a participant"
		if pt, err := p.Participants.GetByID(ctx, ev.ParticipantID); err == nil {
			participantName = pt.DisplayName()
		}

		date := ev.StartDate.Format("2006-01-02")
		title := "Shift cancelled"
		body := fmt.Sprintf("Your shift with %s on %s was cancelled: %s", participantName, date, ev.Reason)

		if u, err := p.Users.GetByEmployeeID(ctx, emp.ID); err == nil {
			if _, err := p.NotifSvc.Notify(ctx, u.ID, notification.KindAppointmentCancelled, title, body); err != nil {
				slog.Warn("cancellation_worker: create notification failed", "err", err)
			}
		}

		if emp.Email != "" {
			m := email.BuildAppointmentCancelledEmail(email.RosterEmailData{
				FirstName:       emp.FirstName,
				Email:           emp.Email,
				ParticipantName: participantName,
				AppointmentDate: date,
				Reason:          ev.Reason,
			})
			if err := p.Email.Send(ctx, m); err != nil {
				slog.Warn("cancellation_worker: send email failed", "err", err)
			}
		}
	})
	if err != nil {
		slog.Error("cancellation_worker: subscribe failed", "err", err)
		return
	}

	slog.Info("cancellation_worker: started")
}

// ---------------------------------------------------------------------------
// timesheet_worker
// ---------------------------------------------------------------------------

func startTimesheetWorker(p WorkerParams) {
	_, err := p.NC.Subscribe(constants.SubjectTimesheetDecided, func(msg *nats.Msg) {
		var ev events.TimesheetDecided
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			slog.Warn("timesheet_worker: bad payload", "err", err)
			return
		}

		ctx := context.Background()

		ts, err := p.Timesheets.GetByID(ctx, ev.TimesheetID)
		if err != nil {
			slog.Warn("timesheet_worker: timesheet not found", "id", ev.TimesheetID.String(), "err", err)
			return
		}
		emp, err := p.Employees.GetByID(ctx, ev.EmployeeID)
		if err != nil {
			slog.Warn("timesheet_worker: employee not found", "id", ev.EmployeeID.String(), "err", err)
			return
		}

		title := "Timesheet " + ev.Status
		body := fmt.Sprintf("Your timesheet for %s to %s was %s.",
			ts.PeriodStart.Format("2006-01-02"), ts.PeriodEnd.Format("2006-01-02"), ev.Status)
		if ev.Reason != "" {
			body += " Reason: " + ev.Reason
		}

		if u, err := p.Users.GetByEmployeeID(ctx, emp.ID); err == nil {
			if _, err := p.NotifSvc.Notify(ctx, u.ID, notification.KindTimesheetDecided, title, body); err != nil {
				slog.Warn("timesheet_worker: create notification failed", "err", err)
			}
		}

		if emp.Email != "" {
			data := email.TimesheetEmailData{
				FirstName:   emp.FirstName,
				Email:       emp.Email,
				PeriodStart: ts.PeriodStart.Format("2006-01-02"),
				PeriodEnd:   ts.PeriodEnd.Format("2006-01-02"),
				Amount:      ts.Amount.String(),
				Reason:      ev.Reason,
			}
			var m email.Message
			if ev.Status == "approved" {
				m = email.BuildTimesheetApprovedEmail(data)
			} else {
				m = email.BuildTimesheetRejectedEmail(data)
			}
			if err := p.Email.Send(ctx, m); err != nil {
				slog.Warn("timesheet_worker: send email failed", "err", err)
			}
		}
	})
	if err != nil {
		slog.Error("timesheet_worker: subscribe failed", "err", err)
		return
	}

	slog.Info("timesheet_worker: started")
}

// ---------------------------------------------------------------------------
// schedule_generator
// ---------------------------------------------------------------------------

// runScheduleGenerator periodically materialises appointments from active
// auto-generating schedules. Generation is idempotent, so overlapping runs
// or restarts cannot double-book a day.
func runScheduleGenerator(ctx context.Context, p WorkerParams) {
	interval := time.Duration(p.Cfg.Scheduling.GenerateIntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = time.Hour
	}

	slog.Info("schedule_generator: started", "interval", interval.String())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Run once at startup so a fresh deploy fills the roster immediately.
	generateOnce(ctx, p)

	for {
		select {
		case <-ctx.Done():
			slog.Info("schedule_generator: stopped")
			return
		case <-ticker.C:
			generateOnce(ctx, p)
		}
	}
}

func generateOnce(ctx context.Context, p WorkerParams) {
	n, err := p.ScheduleSvc.GenerateAll(ctx)
	if err != nil {
		slog.Error("schedule_generator: run failed", "err", err)
		return
	}
	if n > 0 {
		slog.Info("schedule_generator: appointments generated", "count", n)
	}
}
