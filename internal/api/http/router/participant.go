package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/johnwondoh/careroster/internal/api/http/handler"
	"github.com/johnwondoh/careroster/pkg/authorize"
)

func (r *Router) registerParticipantRoutes(
	api fiber.Router,
	ph *handler.ParticipantHandler,
	fh *handler.FileHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	participants := api.Group("/participants", authRequired)

	participants.Get("/", requirePerm(authorize.ResourceParticipant, authorize.ActionList), ph.List)
	participants.Post("/", requirePerm(authorize.ResourceParticipant, authorize.ActionCreate), ph.Create)

	p := participants.Group("/:id")
	p.Get("/", requirePerm(authorize.ResourceParticipant, authorize.ActionRead), ph.GetByID)
	p.Patch("/", requirePerm(authorize.ResourceParticipant, authorize.ActionUpdate), ph.Update)
	p.Delete("/", requirePerm(authorize.ResourceParticipant, authorize.ActionDelete), ph.Delete)

	// NDIS plans
	p.Get("/plans", requirePerm(authorize.ResourceNDISPlan, authorize.ActionList), ph.ListPlans)
	p.Post("/plans", requirePerm(authorize.ResourceNDISPlan, authorize.ActionCreate), ph.CreatePlan)
	api.Get("/plans/:id", authRequired, requirePerm(authorize.ResourceNDISPlan, authorize.ActionRead), ph.GetPlan)

	// Files & avatar
	p.Get("/files", requirePerm(authorize.ResourceParticipantFile, authorize.ActionList), fh.ListParticipantFiles)
	p.Post("/files", requirePerm(authorize.ResourceParticipantFile, authorize.ActionCreate), fh.UploadParticipantFile)
	p.Get("/files/:fid/download", requirePerm(authorize.ResourceParticipantFile, authorize.ActionRead), fh.DownloadParticipantFile)
	p.Delete("/files/:fid", requirePerm(authorize.ResourceParticipantFile, authorize.ActionDelete), fh.DeleteParticipantFile)
	p.Post("/avatar", requirePerm(authorize.ResourceParticipant, authorize.ActionUpdate), fh.UploadParticipantAvatar)
}
