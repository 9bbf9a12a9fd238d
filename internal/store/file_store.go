package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/johnwondoh/careroster/internal/domain"
	"github.com/johnwondoh/careroster/pkg/database"
)

// FileStore persists participant file metadata. The bytes themselves
// live in object storage.
type FileStore struct {
	pool *database.Pool
}

func NewFileStore(pool *database.Pool) *FileStore {
	return &FileStore{pool: pool}
}

func (s *FileStore) Create(ctx context.Context, f *domain.ParticipantFile) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO participant_files
			(participant_id, file_key, file_name, file_size, mime_type, description, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, f.ParticipantID, f.FileKey, f.FileName, f.FileSize, f.MimeType, f.Description, f.UploadedBy,
	).Scan(&f.ID, &f.CreatedAt)
}

func (s *FileStore) GetByID(ctx context.Context, id uuid.UUID) (domain.ParticipantFile, error) {
	var f domain.ParticipantFile
	err := s.pool.QueryRow(ctx, `
		SELECT id, participant_id, file_key, file_name, file_size, mime_type, description, uploaded_by, created_at
		FROM participant_files
		WHERE id = $1
	`, id).Scan(&f.ID, &f.ParticipantID, &f.FileKey, &f.FileName, &f.FileSize, &f.MimeType,
		&f.Description, &f.UploadedBy, &f.CreatedAt)
	if err != nil {
		return domain.ParticipantFile{}, err
	}
	return f, nil
}

func (s *FileStore) ListByParticipant(ctx context.Context, participantID uuid.UUID) ([]domain.ParticipantFile, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, participant_id, file_key, file_name, file_size, mime_type, description, uploaded_by, created_at
		FROM participant_files
		WHERE participant_id = $1
		ORDER BY created_at DESC
	`, participantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ParticipantFile
	for rows.Next() {
		var f domain.ParticipantFile
		if err := rows.Scan(&f.ID, &f.ParticipantID, &f.FileKey, &f.FileName, &f.FileSize,
			&f.MimeType, &f.Description, &f.UploadedBy, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (s *FileStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM participant_files WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
