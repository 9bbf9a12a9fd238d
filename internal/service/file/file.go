package file

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/johnwondoh/careroster/internal/domain"
	"github.com/johnwondoh/careroster/internal/store"
	s3pkg "github.com/johnwondoh/careroster/pkg/s3"
)

var (
	ErrFileNotFound        = errors.New("participant file not found")
	ErrParticipantNotFound = errors.New("participant not found")
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type UploadResult struct {
	Key      string
	FileName string
	Size     int64
	MimeType string
}

type AttachRequest struct {
	Key         string
	FileName    string
	Size        int64
	MimeType    string
	Description *string
	UploadedBy  *uuid.UUID
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Upload(ctx context.Context, participantID uuid.UUID, fh *multipart.FileHeader) (*UploadResult, error)
	Attach(ctx context.Context, participantID uuid.UUID, req AttachRequest) (domain.ParticipantFile, error)
	List(ctx context.Context, participantID uuid.UUID) ([]domain.ParticipantFile, error)
	DownloadURL(ctx context.Context, fileID uuid.UUID) (string, error)
	Delete(ctx context.Context, fileID uuid.UUID) error

	UploadParticipantAvatar(ctx context.Context, participantID uuid.UUID, fh *multipart.FileHeader) (string, error)
	UploadStaffAvatar(ctx context.Context, employeeID uuid.UUID, fh *multipart.FileHeader) (string, error)
	AvatarURL(ctx context.Context, key string) (string, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type fileService struct {
	files        *store.FileStore
	participants *store.ParticipantStore
	employees    *store.EmployeeStore
	s3           *s3pkg.Client
}

func New(files *store.FileStore, participants *store.ParticipantStore, employees *store.EmployeeStore, s3Client *s3pkg.Client) Service {
	return &fileService{
		files:        files,
		participants: participants,
		employees:    employees,
		s3:           s3Client,
	}
}

func (s *fileService) Upload(ctx context.Context, participantID uuid.UUID, fh *multipart.FileHeader) (*UploadResult, error) {
	key := objectKey("files", participantID, fh.Filename)
	mime, err := s.put(ctx, key, fh)
	if err != nil {
		return nil, err
	}
	return &UploadResult{
		Key:      key,
		FileName: fh.Filename,
		Size:     fh.Size,
		MimeType: mime,
	}, nil
}

func (s *fileService) Attach(ctx context.Context, participantID uuid.UUID, req AttachRequest) (domain.ParticipantFile, error) {
	if _, err := s.participants.GetByID(ctx, participantID); err != nil {
		if store.IsNotFound(err) {
			return domain.ParticipantFile{}, ErrParticipantNotFound
		}
		return domain.ParticipantFile{}, fmt.Errorf("get participant: %w", err)
	}

	f := domain.ParticipantFile{
		ParticipantID: participantID,
		FileKey:       req.Key,
		FileName:      req.FileName,
		FileSize:      req.Size,
		MimeType:      req.MimeType,
		Description:   req.Description,
		UploadedBy:    req.UploadedBy,
	}
	if err := s.files.Create(ctx, &f); err != nil {
		return domain.ParticipantFile{}, fmt.Errorf("create participant file: %w", err)
	}
	return f, nil
}

func (s *fileService) List(ctx context.Context, participantID uuid.UUID) ([]domain.ParticipantFile, error) {
	out, err := s.files.ListByParticipant(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("list participant files: %w", err)
	}
	return out, nil
}

func (s *fileService) DownloadURL(ctx context.Context, fileID uuid.UUID) (string, error) {
	f, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		if store.IsNotFound(err) {
			return "", ErrFileNotFound
		}
		return "", fmt.Errorf("get participant file: %w", err)
	}

	url, err := s.s3.PresignDownload(ctx, f.FileKey)
	if err != nil {
		return "", fmt.Errorf("presign: %w", err)
	}
	return url, nil
}

func (s *fileService) Delete(ctx context.Context, fileID uuid.UUID) error {
	f, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		if store.IsNotFound(err) {
			return ErrFileNotFound
		}
		return fmt.Errorf("get participant file: %w", err)
	}

	// Best-effort S3 delete (don't block the metadata delete if S3 fails)
	_ = s.s3.Delete(ctx, f.FileKey)

	return s.files.Delete(ctx, fileID)
}

func (s *fileService) UploadParticipantAvatar(ctx context.Context, participantID uuid.UUID, fh *multipart.FileHeader) (string, error) {
	key := objectKey("avatars/participants", participantID, fh.Filename)
	if _, err := s.put(ctx, key, fh); err != nil {
		return "", err
	}
	if err := s.participants.SetAvatarKey(ctx, participantID, &key); err != nil {
		if store.IsNotFound(err) {
			return "", ErrParticipantNotFound
		}
		return "", fmt.Errorf("set avatar key: %w", err)
	}
	return key, nil
}

func (s *fileService) UploadStaffAvatar(ctx context.Context, employeeID uuid.UUID, fh *multipart.FileHeader) (string, error) {
	key := objectKey("avatars/staff", employeeID, fh.Filename)
	if _, err := s.put(ctx, key, fh); err != nil {
		return "", err
	}
	if err := s.employees.SetAvatarKey(ctx, employeeID, &key); err != nil {
		return "", fmt.Errorf("set avatar key: %w", err)
	}
	return key, nil
}

func (s *fileService) AvatarURL(ctx context.Context, key string) (string, error) {
	url, err := s.s3.PresignDownload(ctx, key)
	if err != nil {
		return "", fmt.Errorf("presign: %w", err)
	}
	return url, nil
}

func (s *fileService) put(ctx context.Context, key string, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	mime := fh.Header.Get("Content-Type")
	if mime == "" {
		mime = "application/octet-stream"
	}

	if err := s.s3.Upload(ctx, key, mime, src, fh.Size); err != nil {
		return "", fmt.Errorf("s3 upload: %w", err)
	}
	return mime, nil
}

func objectKey(prefix string, ownerID uuid.UUID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%s/%s%s", prefix, ownerID, uuid.New(), ext)
}
