package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	svcfile "github.com/johnwondoh/careroster/internal/service/file"
	pasetotoken "github.com/johnwondoh/careroster/pkg/paseto"
)

type FileHandler struct {
	svc svcfile.Service
}

func NewFileHandler(svc svcfile.Service) *FileHandler {
	return &FileHandler{svc: svc}
}

// POST /participants/:id/files
// Multipart upload + create ParticipantFile DB record.
func (h *FileHandler) UploadParticipantFile(c fiber.Ctx) error {
	participantID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid participant id")
	}

	claims, authOK := pasetotoken.ClaimsFromFiber(c)
	if !authOK {
		return unauthorized(c)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file field is required")
	}

	// Upload to S3 first
	uploaded, err := h.svc.Upload(c.Context(), participantID, fh)
	if err != nil {
		return mapFileError(c, err)
	}

	var description *string
	if d := c.FormValue("description"); d != "" {
		description = &d
	}

	uploadedBy := claims.UserID
	pf, err := h.svc.Attach(c.Context(), participantID, svcfile.AttachRequest{
		Key:         uploaded.Key,
		FileName:    uploaded.FileName,
		Size:        uploaded.Size,
		MimeType:    uploaded.MimeType,
		Description: description,
		UploadedBy:  &uploadedBy,
	})
	if err != nil {
		return mapFileError(c, err)
	}

	return created(c, pf)
}

// GET /participants/:id/files
func (h *FileHandler) ListParticipantFiles(c fiber.Ctx) error {
	participantID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid participant id")
	}

	files, err := h.svc.List(c.Context(), participantID)
	if err != nil {
		return mapFileError(c, err)
	}
	return ok(c, files)
}

// GET /participants/:id/files/:fid/download
// Returns a presigned download URL (redirect).
func (h *FileHandler) DownloadParticipantFile(c fiber.Ctx) error {
	fileID, err := uuid.Parse(c.Params("fid"))
	if err != nil {
		return badRequest(c, "invalid file id")
	}

	url, err := h.svc.DownloadURL(c.Context(), fileID)
	if err != nil {
		return mapFileError(c, err)
	}

	return c.Redirect().To(url)
}

// DELETE /participants/:id/files/:fid
func (h *FileHandler) DeleteParticipantFile(c fiber.Ctx) error {
	fileID, err := uuid.Parse(c.Params("fid"))
	if err != nil {
		return badRequest(c, "invalid file id")
	}

	if err := h.svc.Delete(c.Context(), fileID); err != nil {
		return mapFileError(c, err)
	}
	return noContent(c)
}

// POST /participants/:id/avatar
func (h *FileHandler) UploadParticipantAvatar(c fiber.Ctx) error {
	participantID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid participant id")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file field is required")
	}

	key, err := h.svc.UploadParticipantAvatar(c.Context(), participantID, fh)
	if err != nil {
		return mapFileError(c, err)
	}
	return created(c, fiber.Map{"key": key})
}

// POST /staff/:id/avatar
func (h *FileHandler) UploadStaffAvatar(c fiber.Ctx) error {
	employeeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid staff id")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file field is required")
	}

	key, err := h.svc.UploadStaffAvatar(c.Context(), employeeID, fh)
	if err != nil {
		return mapFileError(c, err)
	}
	return created(c, fiber.Map{"key": key})
}

// GET /avatars/*
// Returns a presigned download URL (redirect). Object keys contain slashes,
// so the route uses a wildcard segment.
func (h *FileHandler) GetAvatar(c fiber.Ctx) error {
	key := c.Params("*")
	if key == "" {
		return badRequest(c, "key is required")
	}

	url, err := h.svc.AvatarURL(c.Context(), key)
	if err != nil {
		return internalError(c)
	}

	return c.Redirect().To(url)
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

func mapFileError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, svcfile.ErrFileNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, svcfile.ErrParticipantNotFound):
		return notFound(c, err.Error())
	default:
		return internalError(c)
	}
}
