package handler

import (
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/johnwondoh/careroster/internal/service/auth"
)

// UserHandler exposes the account administration endpoints. Account
// creation itself lives on AuthHandler.Register.
type UserHandler struct {
	svc auth.Service
}

func NewUserHandler(svc auth.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

// GET /api/v1/users
func (h *UserHandler) List(c fiber.Ctx) error {
	var q struct {
		Page    int `query:"page"`
		PerPage int `query:"per_page"`
	}
	if err := c.Bind().Query(&q); err != nil {
		return badRequest(c, "invalid query parameters")
	}

	users, err := h.svc.ListUsers(c.Context(), q.Page, q.PerPage)
	if err != nil {
		return mapAuthError(c, err)
	}
	return ok(c, users)
}

// GET /api/v1/users/:id
func (h *UserHandler) GetByID(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	u, err := h.svc.Me(c.Context(), id)
	if err != nil {
		return mapAuthError(c, err)
	}
	return ok(c, u)
}

// PATCH /api/v1/users/:id/active
func (h *UserHandler) SetActive(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	var body struct {
		Active *bool `json:"active"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.Active == nil {
		return badRequest(c, "active is required")
	}

	if err := h.svc.SetActive(c.Context(), id, *body.Active); err != nil {
		return mapAuthError(c, err)
	}
	return noContent(c)
}
