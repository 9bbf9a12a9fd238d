package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	casbin "github.com/casbin/casbin/v2"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/johnwondoh/careroster/internal/domain"
	"github.com/johnwondoh/careroster/internal/service/appointment"
	"github.com/johnwondoh/careroster/internal/service/auth"
	"github.com/johnwondoh/careroster/pkg/authorize"
	pasetotoken "github.com/johnwondoh/careroster/pkg/paseto"
)

// withClaims injects token claims the way the auth middleware does.
func withClaims(userID uuid.UUID) fiber.Handler {
	return func(c fiber.Ctx) error {
		c.Locals(pasetotoken.CtxKeyClaims, &pasetotoken.Claims{UserID: userID})
		return c.Next()
	}
}

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

type fakeAuthService struct {
	auth.Service
	me domain.User
}

func (f *fakeAuthService) Me(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	return f.me, nil
}

type fakeAppointmentService struct {
	appointment.Service

	gotNote             appointment.NoteRequest
	gotIncludeSensitive bool
}

func (f *fakeAppointmentService) AddNote(ctx context.Context, apptID uuid.UUID, req appointment.NoteRequest) (domain.ServiceNote, error) {
	f.gotNote = req
	return domain.ServiceNote{ID: uuid.New(), AppointmentID: apptID, Text: req.Text, AuthorID: req.AuthorID}, nil
}

func (f *fakeAppointmentService) ListNotes(ctx context.Context, apptID uuid.UUID, includeSensitive bool) ([]domain.ServiceNote, error) {
	f.gotIncludeSensitive = includeSensitive
	return nil, nil
}

type fakeAuthorization struct {
	allow bool
}

func (f *fakeAuthorization) Enforce(ctx context.Context, subject authorize.GroupSubject, dom authorize.Domain, object authorize.Resource, action authorize.Action) (bool, error) {
	return f.allow, nil
}

func (f *fakeAuthorization) MustEnforce(ctx context.Context, subject authorize.GroupSubject, dom authorize.Domain, object authorize.Resource, action authorize.Action) error {
	if !f.allow {
		return authorize.ErrForbidden
	}
	return nil
}

func (f *fakeAuthorization) AddRoleForUserInDomain(ctx context.Context, subject authorize.GroupSubject, role authorize.Role, dom authorize.Domain) (bool, error) {
	return false, nil
}

func (f *fakeAuthorization) RemoveRoleForUserInDomain(ctx context.Context, subject authorize.GroupSubject, role authorize.Role, dom authorize.Domain) (bool, error) {
	return false, nil
}

func (f *fakeAuthorization) GetRolesForUserInDomain(ctx context.Context, subject authorize.GroupSubject, dom authorize.Domain) ([]authorize.Role, error) {
	return nil, nil
}

func (f *fakeAuthorization) AddPermission(ctx context.Context, role authorize.Role, dom authorize.Domain, object authorize.Resource, action authorize.Action, effect authorize.PolicyEffect) (bool, error) {
	return false, nil
}

func (f *fakeAuthorization) RemovePermission(ctx context.Context, role authorize.Role, dom authorize.Domain, object authorize.Resource, action authorize.Action, effect authorize.PolicyEffect) (bool, error) {
	return false, nil
}

func (f *fakeAuthorization) Raw() *casbin.DistributedEnforcer { return nil }

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestMeReturnsCurrentUser(t *testing.T) {
	userID := uuid.New()
	svc := &fakeAuthService{me: domain.User{ID: userID, Email: "worker@example.com"}}
	h := NewAuthHandler(svc)

	app := fiber.New()
	app.Get("/me", withClaims(userID), h.Me)

	resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var out struct {
		Data domain.User `json:"data"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if out.Data.Email != "worker@example.com" {
		t.Errorf("unexpected user in response: %+v", out.Data)
	}
}

func TestMeWithoutClaims(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{})

	app := fiber.New()
	app.Get("/me", h.Me)

	resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
}

func TestAddNoteUsesAuthenticatedAuthor(t *testing.T) {
	userID := uuid.New()
	svc := &fakeAppointmentService{}
	h := NewAppointmentHandler(svc, &fakeAuthorization{})

	app := fiber.New()
	app.Post("/appointments/:id/notes", withClaims(userID), h.AddNote)

	// author_name in the body must be ignored, the token decides.
	payload := `{"text":"medication administered","author_name":"Somebody Else"}`
	req := httptest.NewRequest("POST", "/appointments/"+uuid.NewString()+"/notes", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if svc.gotNote.AuthorID != userID {
		t.Errorf("expected note author %s, got %s", userID, svc.gotNote.AuthorID)
	}
}

func TestListNotesSensitiveGatedOnPermission(t *testing.T) {
	tests := []struct {
		name  string
		allow bool
	}{
		{"denied caller never sees sensitive notes", false},
		{"permitted caller sees sensitive notes", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeAppointmentService{}
			h := NewAppointmentHandler(svc, &fakeAuthorization{allow: tt.allow})

			app := fiber.New()
			app.Get("/appointments/:id/notes", withClaims(uuid.New()), h.ListNotes)

			// The query flag must have no effect either way.
			url := "/appointments/" + uuid.NewString() + "/notes?include_sensitive=true"
			resp, err := app.Test(httptest.NewRequest("GET", url, nil))
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != fiber.StatusOK {
				t.Fatalf("expected 200, got %d", resp.StatusCode)
			}
			if svc.gotIncludeSensitive != tt.allow {
				t.Errorf("includeSensitive = %v, want %v", svc.gotIncludeSensitive, tt.allow)
			}
		})
	}
}
