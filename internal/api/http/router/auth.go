package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/johnwondoh/careroster/internal/api/http/handler"
	"github.com/johnwondoh/careroster/internal/api/http/middleware"
	"github.com/johnwondoh/careroster/pkg/authorize"
)

func (r *Router) registerAuthRoutes(
	api fiber.Router,
	ah *handler.AuthHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	a := api.Group("/auth")

	// brute-forceable routes get the Redis sliding-window limiter
	loginLimiter := middleware.NewLimiterWithRedis(r.p.Redis)

	// Registration is admin-only: accounts are provisioned, not self-signed.
	a.Post("/register", authRequired, requirePerm(authorize.ResourceUser, authorize.ActionCreate), ah.Register)

	a.Post("/login", loginLimiter, ah.Login)
	a.Post("/refresh", loginLimiter, ah.Refresh)
	a.Post("/logout", authRequired, ah.Logout)

	a.Get("/me", authRequired, ah.Me)
	a.Patch("/me", authRequired, ah.UpdateMe)
	a.Post("/change-password", authRequired, ah.ChangePassword)
}
