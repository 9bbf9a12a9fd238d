package auth

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/johnwondoh/careroster/config"
	"github.com/johnwondoh/careroster/internal/domain"
	"github.com/johnwondoh/careroster/internal/store"
	"github.com/johnwondoh/careroster/pkg/authorize"
	pasetotoken "github.com/johnwondoh/careroster/pkg/paseto"
	"github.com/johnwondoh/careroster/pkg/util/password"
)

const (
	maxLoginAttempts = 5
	lockoutMins      = 15
)

func redisKeySession(sessionID string) string { return "session:" + sessionID }

func redisKeyLoginAttempts(email string) string { return "login:attempts:" + email }

var reEmail = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type RegisterRequest struct {
	Email      string
	Password   string
	FirstName  string
	LastName   string
	Role       string
	EmployeeID *uuid.UUID
}

type LoginRequest struct {
	Email    string
	Password string
}

type AuthTokens struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // seconds until access token expires
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (domain.User, error)
	Login(ctx context.Context, req LoginRequest) (*AuthTokens, domain.User, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*AuthTokens, error)
	Logout(ctx context.Context, sessionID uuid.UUID) error
	Me(ctx context.Context, userID uuid.UUID) (domain.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error
	UpdateProfile(ctx context.Context, userID uuid.UUID, firstName, lastName string) error
	SetActive(ctx context.Context, userID uuid.UUID, active bool) error
	ListUsers(ctx context.Context, page, perPage int) ([]domain.User, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type authService struct {
	users  *store.UserStore
	rdb    *redis.Client
	paseto *pasetotoken.Manager
	authz  authorize.IAuthorization
	cfg    *config.Config
	logger *slog.Logger
}

func New(
	users *store.UserStore,
	rdb *redis.Client,
	paseto *pasetotoken.Manager,
	authz authorize.IAuthorization,
	cfg *config.Config,
	logger *slog.Logger,
) Service {
	return &authService{
		users:  users,
		rdb:    rdb,
		paseto: paseto,
		authz:  authz,
		cfg:    cfg,
		logger: logger,
	}
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

// Register creates a login account and grants the matching RBAC roles.
// Only admins reach this; the handler enforces the permission.
func (s *authService) Register(ctx context.Context, req RegisterRequest) (domain.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if !reEmail.MatchString(req.Email) {
		return domain.User{}, ErrInvalidEmail
	}
	if len(req.Password) < 8 {
		return domain.User{}, ErrPasswordTooShort
	}
	rbacRole, ok := authorize.UserRoleToRBACRole[req.Role]
	if !ok {
		return domain.User{}, ErrInvalidRole
	}

	passHash, err := password.Hash(req.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	u := domain.User{
		Email:        req.Email,
		PasswordHash: passHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
		EmployeeID:   req.EmployeeID,
		Active:       true,
	}
	if err := s.users.Create(ctx, &u); err != nil {
		if store.IsUniqueViolation(err) {
			return domain.User{}, ErrEmailAlreadyExists
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	// Grant the self role plus the org role implied by the account role.
	if err := authorize.AssignUserSelfRole(ctx, s.authz, u.ID.String()); err != nil {
		s.logger.Error("assign self role", slog.String("user_id", u.ID.String()), slog.String("error", err.Error()))
	}
	if err := authorize.AssignOrgRole(ctx, s.authz, u.ID.String(), rbacRole); err != nil {
		s.logger.Error("assign org role", slog.String("user_id", u.ID.String()), slog.String("error", err.Error()))
	}

	return u, nil
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func (s *authService) Login(ctx context.Context, req LoginRequest) (*AuthTokens, domain.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return nil, domain.User{}, ErrInvalidCredentials
	}

	// Lockout check before touching the password hash.
	attempts, _ := s.rdb.Get(ctx, redisKeyLoginAttempts(req.Email)).Int()
	if attempts >= maxLoginAttempts {
		return nil, domain.User{}, ErrAccountLocked
	}

	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, domain.User{}, ErrInvalidCredentials
		}
		return nil, domain.User{}, fmt.Errorf("find user: %w", err)
	}

	if !u.Active {
		return nil, domain.User{}, ErrAccountDisabled
	}

	if err := password.Verify(u.PasswordHash, req.Password); err != nil {
		s.recordFailedLogin(ctx, req.Email)
		return nil, domain.User{}, ErrInvalidCredentials
	}

	s.rdb.Del(ctx, redisKeyLoginAttempts(req.Email))

	tokens, err := s.createSession(ctx, u)
	if err != nil {
		return nil, domain.User{}, err
	}
	return tokens, u, nil
}

// ---------------------------------------------------------------------------
// RefreshTokens
// ---------------------------------------------------------------------------

func (s *authService) RefreshTokens(ctx context.Context, refreshToken string) (*AuthTokens, error) {
	claims, err := s.paseto.Verify(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Type != pasetotoken.TokenTypeRefresh {
		return nil, ErrInvalidToken
	}
	if claims.SessionID == nil {
		return nil, ErrInvalidToken
	}

	sessionKey := redisKeySession(claims.SessionID.String())

	if err := s.rdb.Get(ctx, sessionKey).Err(); err == redis.Nil {
		return nil, ErrSessionNotFound
	} else if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	// Extend session TTL
	refreshTTL := time.Duration(s.cfg.Authentication.Paseto.RefreshTTLDays) * 24 * time.Hour
	s.rdb.Expire(ctx, sessionKey, refreshTTL)

	// Issue new access token only (refresh token stays the same until logout)
	accessTTL := time.Duration(s.cfg.Authentication.Paseto.AccessTTLMinutes) * time.Minute
	accessToken, err := s.paseto.IssueAccess(claims.UserID, claims.SessionID)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	return &AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken, // unchanged
		ExpiresIn:    int64(accessTTL.Seconds()),
	}, nil
}

// ---------------------------------------------------------------------------
// Logout
// ---------------------------------------------------------------------------

func (s *authService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	deleted, err := s.rdb.Del(ctx, redisKeySession(sessionID.String())).Result()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if deleted == 0 {
		// Session already expired, not an error from the client's perspective
		s.logger.Debug("logout: session not found in Redis (already expired)",
			slog.String("session_id", sessionID.String()))
	}
	return nil
}

// ---------------------------------------------------------------------------
// Accounts
// ---------------------------------------------------------------------------

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if store.IsNotFound(err) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	if len(next) < 8 {
		return ErrPasswordTooShort
	}

	u, err := s.Me(ctx, userID)
	if err != nil {
		return err
	}
	if err := password.Verify(u.PasswordHash, current); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := password.Hash(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID uuid.UUID, firstName, lastName string) error {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return domain.NewValidationError("name", "first and last name are required")
	}
	if err := s.users.UpdateProfile(ctx, userID, firstName, lastName); err != nil {
		if store.IsNotFound(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

func (s *authService) ListUsers(ctx context.Context, page, perPage int) ([]domain.User, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 200 {
		perPage = 50
	}
	users, err := s.users.List(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *authService) SetActive(ctx context.Context, userID uuid.UUID, active bool) error {
	if err := s.users.SetActive(ctx, userID, active); err != nil {
		if store.IsNotFound(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("set account active: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (s *authService) createSession(ctx context.Context, u domain.User) (*AuthTokens, error) {
	sessionID := uuid.Must(uuid.NewV7())

	refreshTTL := time.Duration(s.cfg.Authentication.Paseto.RefreshTTLDays) * 24 * time.Hour
	accessTTL := time.Duration(s.cfg.Authentication.Paseto.AccessTTLMinutes) * time.Minute

	sessionKey := redisKeySession(sessionID.String())
	if err := s.rdb.Set(ctx, sessionKey, u.ID.String(), refreshTTL).Err(); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	access, err := s.paseto.IssueAccess(u.ID, &sessionID)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.paseto.IssueRefresh(u.ID, &sessionID)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	return &AuthTokens{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(accessTTL.Seconds()),
	}, nil
}

func (s *authService) recordFailedLogin(ctx context.Context, email string) {
	key := redisKeyLoginAttempts(email)
	attempts, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return
	}
	if attempts == 1 || attempts >= maxLoginAttempts {
		s.rdb.Expire(ctx, key, lockoutMins*time.Minute)
	}
	if attempts >= maxLoginAttempts {
		s.logger.Warn("account locked after repeated login failures",
			slog.String("email", email),
			slog.String("attempts", strconv.FormatInt(attempts, 10)))
	}
}
