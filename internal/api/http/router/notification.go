package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/johnwondoh/careroster/internal/api/http/handler"
)

func (r *Router) registerNotificationRoutes(
	api fiber.Router,
	nh *handler.NotificationHandler,
	authRequired fiber.Handler,
) {
	// Notifications are always scoped to the authenticated user; no extra
	// permission layer on top of authentication.
	notifications := api.Group("/notifications", authRequired)

	notifications.Get("/", nh.List)
	notifications.Get("/unread-count", nh.UnreadCount)
	notifications.Patch("/read-all", nh.MarkAllRead)
	notifications.Patch("/:id/read", nh.MarkRead)
}
