package authorize

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/johnwondoh/careroster/pkg/reqctx"
)

// mockClaims implements reqctx.AuthClaims for testing
type mockClaims struct {
	userID uuid.UUID
}

func (m *mockClaims) GetUserID() uuid.UUID     { return m.userID }
func (m *mockClaims) GetSessionID() *uuid.UUID { return nil }
func (m *mockClaims) GetTokenType() string     { return "access" }
func (m *mockClaims) IsExpired() bool          { return false }

func TestSubjectFromContext(t *testing.T) {
	validUUID := uuid.New()

	tests := []struct {
		name        string
		setupCtx    func() context.Context
		wantSubject GroupSubject
		wantErr     bool
	}{
		{
			name: "valid claims",
			setupCtx: func() context.Context {
				return reqctx.WithClaims(context.Background(), &mockClaims{userID: validUUID})
			},
			wantSubject: GroupSubject(validUUID.String()),
			wantErr:     false,
		},
		{
			name: "no claims in context",
			setupCtx: func() context.Context {
				return context.Background()
			},
			wantSubject: "",
			wantErr:     true,
		},
		{
			name: "nil uuid in claims",
			setupCtx: func() context.Context {
				return reqctx.WithClaims(context.Background(), &mockClaims{userID: uuid.Nil})
			},
			wantSubject: "",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := tt.setupCtx()
			subject, err := SubjectFromContext(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SubjectFromContext() error = %v, wantErr %v", err, tt.wantErr)
			}
			if subject != tt.wantSubject {
				t.Errorf("SubjectFromContext() = %q, want %q", subject, tt.wantSubject)
			}
		})
	}
}

func TestDomainFromResource(t *testing.T) {
	userID := "550e8400-e29b-41d4-a716-446655440000"
	empty := ""

	tests := []struct {
		name   string
		userID *string
		want   Domain
	}{
		{"user-owned resource", &userID, Domain("user:" + userID)},
		{"empty user id", &empty, DomainOrg},
		{"nil user id", nil, DomainOrg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DomainFromResource(tt.userID); got != tt.want {
				t.Errorf("DomainFromResource() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDomainFromContext(t *testing.T) {
	uid := uuid.New()
	ctx := reqctx.WithClaims(context.Background(), &mockClaims{userID: uid})

	domain, err := DomainFromContext(ctx)
	if err != nil {
		t.Fatalf("DomainFromContext() error = %v", err)
	}
	if domain != UserDomain(uid.String()) {
		t.Errorf("DomainFromContext() = %q, want %q", domain, UserDomain(uid.String()))
	}

	if _, err := DomainFromContext(context.Background()); err == nil {
		t.Error("DomainFromContext() expected error for empty context")
	}
}
