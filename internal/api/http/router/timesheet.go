package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/johnwondoh/careroster/internal/api/http/handler"
	"github.com/johnwondoh/careroster/pkg/authorize"
)

func (r *Router) registerTimesheetRoutes(
	api fiber.Router,
	th *handler.TimesheetHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	timesheets := api.Group("/timesheets", authRequired)

	timesheets.Get("/", requirePerm(authorize.ResourceTimesheet, authorize.ActionList), th.List)
	timesheets.Post("/", requirePerm(authorize.ResourceTimesheet, authorize.ActionCreate), th.Create)

	t := timesheets.Group("/:id")
	t.Get("/", requirePerm(authorize.ResourceTimesheet, authorize.ActionRead), th.GetByID)
	t.Patch("/", requirePerm(authorize.ResourceTimesheet, authorize.ActionUpdate), th.Update)
	t.Delete("/", requirePerm(authorize.ResourceTimesheet, authorize.ActionDelete), th.Delete)
	t.Post("/submit", requirePerm(authorize.ResourceTimesheet, authorize.ActionUpdate), th.Submit)
	t.Post("/approve", requirePerm(authorize.ResourceTimesheet, authorize.ActionApprove), th.Approve)
	t.Post("/reject", requirePerm(authorize.ResourceTimesheet, authorize.ActionApprove), th.Reject)
}
