package controllers

import (
	"testing"
	"time"

	"github.com/google/uuid"

	pkgAuth "github.com/pharmaseek/pharmaseek-backend/pkg/auth"
	"github.com/pharmaseek/pharmaseek-backend/pkg/auth/session"
	"github.com/pharmaseek/pharmaseek-backend/pkg/config"
	"github.com/pharmaseek/pharmaseek-backend/pkg/enums"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60}
}

func mintControllerTestToken(t *testing.T, cfg config.JWTConfig) (string, string) {
	t.Helper()
	jti := session.NewAccessID()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "amina@example.com",
		Role:   enums.UserRolePharmacist,
		JTI:    jti,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token, jti
}
