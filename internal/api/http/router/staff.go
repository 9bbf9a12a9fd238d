package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/johnwondoh/careroster/internal/api/http/handler"
	"github.com/johnwondoh/careroster/pkg/authorize"
)

func (r *Router) registerStaffRoutes(
	api fiber.Router,
	sh *handler.StaffHandler,
	fh *handler.FileHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	staff := api.Group("/staff", authRequired)

	staff.Get("/", requirePerm(authorize.ResourceEmployee, authorize.ActionList), sh.List)
	staff.Post("/", requirePerm(authorize.ResourceEmployee, authorize.ActionCreate), sh.Create)

	// /staff/available must be registered before /staff/:id
	staff.Get("/available", requirePerm(authorize.ResourceEmployee, authorize.ActionList), sh.Available)

	s := staff.Group("/:id")
	s.Get("/", requirePerm(authorize.ResourceEmployee, authorize.ActionRead), sh.GetByID)
	s.Patch("/", requirePerm(authorize.ResourceEmployee, authorize.ActionUpdate), sh.Update)
	s.Delete("/", requirePerm(authorize.ResourceEmployee, authorize.ActionDelete), sh.Deactivate)
	s.Post("/avatar", requirePerm(authorize.ResourceEmployee, authorize.ActionUpdate), fh.UploadStaffAvatar)
}
