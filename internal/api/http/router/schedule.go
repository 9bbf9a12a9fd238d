package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/johnwondoh/careroster/internal/api/http/handler"
	"github.com/johnwondoh/careroster/pkg/authorize"
)

func (r *Router) registerScheduleRoutes(
	api fiber.Router,
	sh *handler.ScheduleHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	schedules := api.Group("/schedules", authRequired)

	schedules.Get("/", requirePerm(authorize.ResourceServiceSchedule, authorize.ActionList), sh.List)
	schedules.Post("/", requirePerm(authorize.ResourceServiceSchedule, authorize.ActionCreate), sh.Create)

	s := schedules.Group("/:id")
	s.Get("/", requirePerm(authorize.ResourceServiceSchedule, authorize.ActionRead), sh.GetByID)
	s.Patch("/", requirePerm(authorize.ResourceServiceSchedule, authorize.ActionUpdate), sh.Update)
	s.Delete("/", requirePerm(authorize.ResourceServiceSchedule, authorize.ActionDelete), sh.Delete)

	s.Patch("/activate", requirePerm(authorize.ResourceServiceSchedule, authorize.ActionUpdate), sh.Activate)
	s.Patch("/pause", requirePerm(authorize.ResourceServiceSchedule, authorize.ActionUpdate), sh.Pause)
	s.Patch("/resume", requirePerm(authorize.ResourceServiceSchedule, authorize.ActionUpdate), sh.Resume)
	s.Patch("/end", requirePerm(authorize.ResourceServiceSchedule, authorize.ActionUpdate), sh.End)

	s.Get("/preview", requirePerm(authorize.ResourceServiceSchedule, authorize.ActionRead), sh.Preview)
	s.Post("/generate", requirePerm(authorize.ResourceServiceSchedule, authorize.ActionExecute), sh.Generate)
}
