package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/johnwondoh/careroster/internal/api/http/handler"
	"github.com/johnwondoh/careroster/pkg/authorize"
)

func (r *Router) registerUserRoutes(
	api fiber.Router,
	uh *handler.UserHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	users := api.Group("/users", authRequired)

	users.Get("/", requirePerm(authorize.ResourceUser, authorize.ActionList), uh.List)
	users.Get("/:id", requirePerm(authorize.ResourceUser, authorize.ActionRead), uh.GetByID)
	users.Patch("/:id/active", requirePerm(authorize.ResourceUser, authorize.ActionUpdate), uh.SetActive)
}
