package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/johnwondoh/careroster/internal/api/http/handler"
	"github.com/johnwondoh/careroster/pkg/authorize"
)

func (r *Router) registerAppointmentRoutes(
	api fiber.Router,
	ah *handler.AppointmentHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	appts := api.Group("/appointments", authRequired)

	appts.Get("/", requirePerm(authorize.ResourceAppointment, authorize.ActionList), ah.List)
	appts.Post("/", requirePerm(authorize.ResourceAppointment, authorize.ActionCreate), ah.Create)

	// Registered before the /:id group so "metrics" is not read as an id.
	appts.Get("/metrics", requirePerm(authorize.ResourceRoster, authorize.ActionRead), ah.Metrics)

	a := appts.Group("/:id")
	a.Get("/", requirePerm(authorize.ResourceAppointment, authorize.ActionRead), ah.GetByID)
	a.Patch("/assign", requirePerm(authorize.ResourceAppointment, authorize.ActionAssign), ah.Assign)
	a.Patch("/unassign", requirePerm(authorize.ResourceAppointment, authorize.ActionAssign), ah.Unassign)
	a.Patch("/cancel", requirePerm(authorize.ResourceAppointment, authorize.ActionUpdate), ah.Cancel)
	a.Patch("/complete", requirePerm(authorize.ResourceAppointment, authorize.ActionUpdate), ah.Complete)
	a.Patch("/no-show", requirePerm(authorize.ResourceAppointment, authorize.ActionUpdate), ah.MarkNoShow)
	a.Get("/candidates", requirePerm(authorize.ResourceAppointment, authorize.ActionAssign), ah.Candidates)

	// Service notes
	a.Get("/notes", requirePerm(authorize.ResourceServiceNote, authorize.ActionList), ah.ListNotes)
	a.Post("/notes", requirePerm(authorize.ResourceServiceNote, authorize.ActionCreate), ah.AddNote)

	// Dashboard alias for the same rollup
	api.Get("/roster/metrics", authRequired, requirePerm(authorize.ResourceRoster, authorize.ActionRead), ah.Metrics)
}
