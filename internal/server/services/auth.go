package services

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/dmitrijs2005/ballotkeeper/internal/common"
	"github.com/dmitrijs2005/ballotkeeper/internal/cryptox"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/auth"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/config"
)

// AuthService checks the single configured administrator and mints bearer
// tokens. The password is kept only as an argon2 verifier.
type AuthService struct {
	username       string
	salt           []byte
	verifier       []byte
	jwtSecret      []byte
	accessValidity time.Duration
}

func NewAuthService(cfg *config.Config) *AuthService {
	salt := common.GenerateRandByteArray(32)
	return &AuthService{
		username:       cfg.AdminUser,
		salt:           salt,
		verifier:       cryptox.NewVerifier([]byte(cfg.AdminPassword), salt),
		jwtSecret:      []byte(cfg.SecretKey),
		accessValidity: cfg.AccessTokenValidityDuration,
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := cryptox.CheckPassword([]byte(password), s.salt, s.verifier)
	if !userOK || !passOK {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(username, s.jwtSecret, s.accessValidity)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// Authenticate validates a bearer token and returns the admin it names.
func (s *AuthService) Authenticate(token string) (string, error) {
	return auth.GetSubjectFromToken(token, s.jwtSecret)
}
