package app

import (
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/johnwondoh/careroster/config"
	"github.com/johnwondoh/careroster/internal/domain"
	"github.com/johnwondoh/careroster/internal/service/appointment"
	"github.com/johnwondoh/careroster/internal/service/auth"
	svcfile "github.com/johnwondoh/careroster/internal/service/file"
	"github.com/johnwondoh/careroster/internal/service/notification"
	"github.com/johnwondoh/careroster/internal/service/participant"
	"github.com/johnwondoh/careroster/internal/service/schedule"
	"github.com/johnwondoh/careroster/internal/service/staff"
	"github.com/johnwondoh/careroster/internal/service/timesheet"
	"github.com/johnwondoh/careroster/internal/store"
	"github.com/johnwondoh/careroster/pkg/authorize"
	"github.com/johnwondoh/careroster/pkg/crypto"
	"github.com/johnwondoh/careroster/pkg/database"
	pasetotoken "github.com/johnwondoh/careroster/pkg/paseto"
	s3pkg "github.com/johnwondoh/careroster/pkg/s3"
)

// ServiceModule provides all stores and application services.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ProvideParticipantStore,
		ProvideEmployeeStore,
		ProvideAppointmentStore,
		ProvideScheduleStore,
		ProvideTimesheetStore,
		ProvidePlanStore,
		ProvideUserStore,
		ProvideNotificationStore,
		ProvideFileStore,
	),
	fx.Provide(
		ProvideAuthService,
		ProvideParticipantService,
		ProvideStaffService,
		ProvideAppointmentService,
		ProvideTimesheetService,
		ProvideScheduleService,
		ProvideFileService,
		ProvideNotificationService,
		ProvidePasetoManager,
	),
)

func ProvideParticipantStore(pool *database.Pool, cfg *config.Config) (*store.ParticipantStore, error) {
	key, err := crypto.KeyFromHex(cfg.Authentication.EncryptionKey)
	if err != nil {
		return nil, err
	}
	return store.NewParticipantStore(pool, key), nil
}

func ProvideEmployeeStore(pool *database.Pool) *store.EmployeeStore {
	return store.NewEmployeeStore(pool)
}

func ProvideAppointmentStore(pool *database.Pool) *store.AppointmentStore {
	return store.NewAppointmentStore(pool)
}

func ProvideScheduleStore(pool *database.Pool) *store.ScheduleStore {
	return store.NewScheduleStore(pool)
}

func ProvideTimesheetStore(pool *database.Pool) *store.TimesheetStore {
	return store.NewTimesheetStore(pool)
}

func ProvidePlanStore(pool *database.Pool) *store.PlanStore {
	return store.NewPlanStore(pool)
}

func ProvideUserStore(pool *database.Pool) *store.UserStore {
	return store.NewUserStore(pool)
}

func ProvideNotificationStore(pool *database.Pool) *store.NotificationStore {
	return store.NewNotificationStore(pool)
}

func ProvideFileStore(pool *database.Pool) *store.FileStore {
	return store.NewFileStore(pool)
}

func ProvideAuthService(
	users *store.UserStore,
	rdb *redis.Client,
	paseto *pasetotoken.Manager,
	authz authorize.IAuthorization,
	cfg *config.Config,
	logger *slog.Logger,
) auth.Service {
	return auth.New(users, rdb, paseto, authz, cfg, logger)
}

func ProvideParticipantService(participants *store.ParticipantStore, plans *store.PlanStore) participant.Service {
	return participant.New(participants, plans)
}

func ProvideStaffService(employees *store.EmployeeStore) staff.Service {
	return staff.New(employees)
}

func ProvideAppointmentService(
	appts *store.AppointmentStore,
	employees *store.EmployeeStore,
	plans *store.PlanStore,
	users *store.UserStore,
	nc *nats.Conn,
	cfg *config.Config,
	logger *slog.Logger,
) appointment.Service {
	thresholds := domain.Thresholds{
		High:   cfg.Matching.HighThreshold,
		Medium: cfg.Matching.MediumThreshold,
	}
	return appointment.New(appts, employees, plans, users, nc, thresholds, logger)
}

func ProvideTimesheetService(
	timesheets *store.TimesheetStore,
	employees *store.EmployeeStore,
	nc *nats.Conn,
	logger *slog.Logger,
) timesheet.Service {
	return timesheet.New(timesheets, employees, nc, logger)
}

func ProvideScheduleService(
	schedules *store.ScheduleStore,
	appts *store.AppointmentStore,
	cfg *config.Config,
	logger *slog.Logger,
) schedule.Service {
	return schedule.New(schedules, appts, cfg.Scheduling.DefaultLookAheadWeeks, logger)
}

func ProvideFileService(
	files *store.FileStore,
	participants *store.ParticipantStore,
	employees *store.EmployeeStore,
	s3 *s3pkg.Client,
) svcfile.Service {
	return svcfile.New(files, participants, employees, s3)
}

func ProvideNotificationService(notifications *store.NotificationStore) notification.Service {
	return notification.New(notifications)
}

func ProvidePasetoManager(cfg *config.Config) (*pasetotoken.Manager, error) {
	return pasetotoken.NewPasetoManager(cfg)
}
