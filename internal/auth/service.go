package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	pkgauth "github.com/pharmaseek/pharmaseek-backend/pkg/auth"
	"github.com/pharmaseek/pharmaseek-backend/pkg/auth/session"
	"github.com/pharmaseek/pharmaseek-backend/pkg/config"
	"github.com/pharmaseek/pharmaseek-backend/pkg/enums"
	pkgerrors "github.com/pharmaseek/pharmaseek-backend/pkg/errors"
	"github.com/pharmaseek/pharmaseek-backend/pkg/upstream"
)

// Service proxies credential exchange to the upstream API and owns the
// local client session. The upstream tokens never reach the browser; the
// client only ever holds the locally minted JWT.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Refresh(ctx context.Context, claims *pkgauth.AccessTokenClaims) (*AuthResponse, error)
	Logout(ctx context.Context, jti string) error
}

type upstreamClient interface {
	Post(ctx context.Context, path string, body any, token string) (*upstream.Envelope, error)
}

type sessionManager interface {
	Save(ctx context.Context, accessID string, record session.Record) error
	Load(ctx context.Context, accessID string) (*session.Record, error)
	Rotate(ctx context.Context, oldAccessID string, record session.Record) (string, error)
	Revoke(ctx context.Context, accessID string) error
}

type service struct {
	client  upstreamClient
	session sessionManager
	jwtCfg  config.JWTConfig
	now     func() time.Time
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	Upstream  upstreamClient
	Session   sessionManager
	JWTConfig config.JWTConfig
}

// NewService constructs an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Upstream == nil {
		return nil, fmt.Errorf("upstream client is required")
	}
	if params.Session == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	return &service{
		client:  params.Upstream,
		session: params.Session,
		jwtCfg:  params.JWTConfig,
		now:     time.Now,
	}, nil
}

// upstreamCredentials is the auth payload shape the upstream API returns.
type upstreamCredentials struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         upstreamUser `json:"user"`
}

type upstreamUser struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	PharmacyID *uuid.UUID `json:"pharmacyId"`
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	body := map[string]any{
		"name":     strings.TrimSpace(req.Name),
		"email":    strings.ToLower(strings.TrimSpace(req.Email)),
		"password": req.Password,
	}
	if req.Role != "" {
		body["role"] = req.Role
	}
	if req.PharmacyID != "" {
		body["pharmacyId"] = req.PharmacyID
	}

	creds, err := s.exchange(ctx, "/auth/register", body)
	if err != nil {
		return nil, err
	}
	return s.openSession(ctx, creds)
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	body := map[string]any{
		"email":    strings.ToLower(strings.TrimSpace(req.Email)),
		"password": req.Password,
	}

	creds, err := s.exchange(ctx, "/auth/login", body)
	if err != nil {
		return nil, err
	}
	return s.openSession(ctx, creds)
}

// Refresh exchanges the stored upstream refresh token and rotates the
// local session under a fresh jti.
func (s *service) Refresh(ctx context.Context, claims *pkgauth.AccessTokenClaims) (*AuthResponse, error) {
	if claims == nil || strings.TrimSpace(claims.ID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session token required")
	}

	record, err := s.session.Load(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load session")
	}

	creds, err := s.exchange(ctx, "/auth/refresh", map[string]any{
		"refreshToken": record.RefreshToken,
	})
	if err != nil {
		return nil, err
	}

	user, err := toSessionUser(creds.User)
	if err != nil {
		return nil, err
	}
	jti, err := s.session.Rotate(ctx, claims.ID, session.Record{
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
		User:         user,
	})
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotate session")
	}
	return s.mint(user, jti)
}

func (s *service) Logout(ctx context.Context, jti string) error {
	if strings.TrimSpace(jti) == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "session token required")
	}
	if err := s.session.Revoke(ctx, jti); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

func (s *service) exchange(ctx context.Context, path string, body any) (*upstreamCredentials, error) {
	env, err := s.client.Post(ctx, path, body, "")
	if err != nil {
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}

	var creds upstreamCredentials
	if err := env.DecodeData(&creds); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode credentials")
	}
	if creds.AccessToken == "" || creds.RefreshToken == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "upstream returned incomplete credentials")
	}
	return &creds, nil
}

func (s *service) openSession(ctx context.Context, creds *upstreamCredentials) (*AuthResponse, error) {
	user, err := toSessionUser(creds.User)
	if err != nil {
		return nil, err
	}

	jti := session.NewAccessID()
	record := session.Record{
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
		User:         user,
	}
	if err := s.session.Save(ctx, jti, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save session")
	}
	return s.mint(user, jti)
}

func (s *service) mint(user session.SessionUser, jti string) (*AuthResponse, error) {
	now := s.now()
	token, err := pkgauth.MintAccessToken(s.jwtCfg, now, pkgauth.AccessTokenPayload{
		UserID:     user.ID,
		Email:      user.Email,
		Role:       user.Role,
		PharmacyID: user.PharmacyID,
		JTI:        jti,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint session token")
	}

	return &AuthResponse{
		Token:     token,
		ExpiresAt: now.Add(time.Duration(s.jwtCfg.ExpirationMinutes) * time.Minute),
		User: UserProfile{
			ID:         user.ID,
			Email:      user.Email,
			Role:       user.Role,
			PharmacyID: user.PharmacyID,
		},
	}, nil
}

func toSessionUser(u upstreamUser) (session.SessionUser, error) {
	role, err := enums.ParseUserRole(u.Role)
	if err != nil {
		return session.SessionUser{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unexpected upstream role")
	}
	return session.SessionUser{
		ID:         u.ID,
		Email:      u.Email,
		Role:       role,
		PharmacyID: u.PharmacyID,
	}, nil
}
