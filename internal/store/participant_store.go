package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/johnwondoh/careroster/internal/domain"
	"github.com/johnwondoh/careroster/pkg/crypto"
	"github.com/johnwondoh/careroster/pkg/database"
)

const participantColumns = `id, first_name, last_name, preferred_name, ndis_number_enc,
	support_category, phone, email, avatar_key, created_at, updated_at`

// ParticipantStore persists participants. NDIS numbers are encrypted at
// rest; the deterministic hash column backs uniqueness and lookups.
type ParticipantStore struct {
	pool *database.Pool
	key  []byte
}

func NewParticipantStore(pool *database.Pool, encryptionKey []byte) *ParticipantStore {
	return &ParticipantStore{pool: pool, key: encryptionKey}
}

func (s *ParticipantStore) Create(ctx context.Context, p *domain.Participant) error {
	enc, err := crypto.Encrypt(s.key, p.NDISNumber)
	if err != nil {
		return fmt.Errorf("encrypt ndis number: %w", err)
	}
	return s.pool.QueryRow(ctx, `
		INSERT INTO participants
			(first_name, last_name, preferred_name, ndis_number_enc, ndis_number_hash,
			 support_category, phone, email)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, p.FirstName, p.LastName, p.PreferredName, enc, crypto.Hash(p.NDISNumber),
		string(p.SupportCategory), p.Phone, p.Email,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (s *ParticipantStore) GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+participantColumns+`
		FROM participants
		WHERE id = $1
	`, id)
	return s.scanParticipant(row)
}

func (s *ParticipantStore) GetByNDISNumber(ctx context.Context, ndisNumber string) (domain.Participant, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+participantColumns+`
		FROM participants
		WHERE ndis_number_hash = $1
	`, crypto.Hash(ndisNumber))
	return s.scanParticipant(row)
}

// List returns participants ordered by last name. search matches the
// name fields case-insensitively; empty search returns everyone.
func (s *ParticipantStore) List(ctx context.Context, search string, limit, offset int) ([]domain.Participant, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+participantColumns+`
		FROM participants
		WHERE $1 = ''
			OR first_name ILIKE '%' || $1 || '%'
			OR last_name ILIKE '%' || $1 || '%'
			OR preferred_name ILIKE '%' || $1 || '%'
		ORDER BY last_name, first_name
		LIMIT $2 OFFSET $3
	`, search, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Participant
	for rows.Next() {
		p, err := s.scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *ParticipantStore) Update(ctx context.Context, p *domain.Participant) error {
	enc, err := crypto.Encrypt(s.key, p.NDISNumber)
	if err != nil {
		return fmt.Errorf("encrypt ndis number: %w", err)
	}
	return s.pool.QueryRow(ctx, `
		UPDATE participants
		SET first_name = $2,
			last_name = $3,
			preferred_name = $4,
			ndis_number_enc = $5,
			ndis_number_hash = $6,
			support_category = $7,
			phone = $8,
			email = $9,
			updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`, p.ID, p.FirstName, p.LastName, p.PreferredName, enc, crypto.Hash(p.NDISNumber),
		string(p.SupportCategory), p.Phone, p.Email,
	).Scan(&p.UpdatedAt)
}

func (s *ParticipantStore) SetAvatarKey(ctx context.Context, id uuid.UUID, key *string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE participants SET avatar_key = $2, updated_at = now() WHERE id = $1
	`, id, key)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *ParticipantStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM participants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *ParticipantStore) scanParticipant(row rowScanner) (domain.Participant, error) {
	var p domain.Participant
	var enc, category string
	if err := row.Scan(
		&p.ID,
		&p.FirstName,
		&p.LastName,
		&p.PreferredName,
		&enc,
		&category,
		&p.Phone,
		&p.Email,
		&p.AvatarKey,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return domain.Participant{}, err
	}
	ndis, err := crypto.Decrypt(s.key, enc)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("%w: decrypt ndis number for %s: %v", domain.ErrMalformedRecord, p.ID, err)
	}
	p.NDISNumber = ndis
	p.SupportCategory = domain.BudgetCategory(category)
	return p, nil
}
