package router

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/johnwondoh/careroster/config"
	"github.com/johnwondoh/careroster/internal/api/http/handler"
	"github.com/johnwondoh/careroster/internal/api/http/middleware"
	"github.com/johnwondoh/careroster/internal/service/appointment"
	"github.com/johnwondoh/careroster/internal/service/auth"
	"github.com/johnwondoh/careroster/internal/service/file"
	"github.com/johnwondoh/careroster/internal/service/notification"
	"github.com/johnwondoh/careroster/internal/service/participant"
	"github.com/johnwondoh/careroster/internal/service/schedule"
	"github.com/johnwondoh/careroster/internal/service/staff"
	"github.com/johnwondoh/careroster/internal/service/timesheet"
	"github.com/johnwondoh/careroster/pkg/authorize"
	pasetotoken "github.com/johnwondoh/careroster/pkg/paseto"
)

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg             *config.Config
	Redis           *redis.Client
	Auth            authorize.IAuthorization
	AuthSvc         auth.Service
	ParticipantSvc  participant.Service
	StaffSvc        staff.Service
	AppointmentSvc  appointment.Service
	TimesheetSvc    timesheet.Service
	ScheduleSvc     schedule.Service
	FileSvc         file.Service
	NotificationSvc notification.Service
	PasetoMgr       *pasetotoken.Manager
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

func (r *Router) Register(app *fiber.App) {
	// 1. Health & Metrics
	r.registerSystemRoutes(app)

	// 2. Initialize Middlewares
	authRequired := middleware.AuthRequired(r.p.PasetoMgr, r.p.Redis)

	// Permission helper
	requirePerm := func(res authorize.Resource, act authorize.Action) fiber.Handler {
		return middleware.RequirePermission(r.p.Auth, res, act)
	}

	// 3. Initialize Handlers
	authH := handler.NewAuthHandler(r.p.AuthSvc)
	userH := handler.NewUserHandler(r.p.AuthSvc)
	participantH := handler.NewParticipantHandler(r.p.ParticipantSvc)
	staffH := handler.NewStaffHandler(r.p.StaffSvc)
	appointmentH := handler.NewAppointmentHandler(r.p.AppointmentSvc, r.p.Auth)
	timesheetH := handler.NewTimesheetHandler(r.p.TimesheetSvc)
	scheduleH := handler.NewScheduleHandler(r.p.ScheduleSvc)
	fileH := handler.NewFileHandler(r.p.FileSvc)
	notificationH := handler.NewNotificationHandler(r.p.NotificationSvc)

	api := app.Group("/api/v1")

	// 4. Delegate to sub-files
	r.registerAuthRoutes(api, authH, authRequired, requirePerm)
	r.registerUserRoutes(api, userH, authRequired, requirePerm)
	r.registerParticipantRoutes(api, participantH, fileH, authRequired, requirePerm)
	r.registerStaffRoutes(api, staffH, fileH, authRequired, requirePerm)
	r.registerAppointmentRoutes(api, appointmentH, authRequired, requirePerm)
	r.registerTimesheetRoutes(api, timesheetH, authRequired, requirePerm)
	r.registerScheduleRoutes(api, scheduleH, authRequired, requirePerm)
	r.registerNotificationRoutes(api, notificationH, authRequired)

	// Avatar lookup by object key (keys contain slashes)
	api.Get("/avatars/*", authRequired, fileH.GetAvatar)
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New(healthcheck.Config{
		Probe: func(c fiber.Ctx) bool { return authorize.IsPolicyHealthy() },
	}))
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Observability.Enabled && r.p.Cfg.Observability.Metrics.Enabled {
		path := r.p.Cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}
