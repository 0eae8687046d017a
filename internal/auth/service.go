package auth

import (
	"time"

	"github.com/farmvest/farmvest/internal/config"
	"github.com/farmvest/farmvest/internal/identity"
)

// Service issues access tokens for authenticated users.
type Service struct {
	cfg config.Config
}

// NewService creates the token service.
func NewService(cfg config.Config) *Service {
	return &Service{cfg: cfg}
}

// Token is the response payload for a successful login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Issue creates a bearer token for the user.
func (s *Service) Issue(user identity.User) (Token, error) {
	signed, exp, err := Sign(Claims{UserID: user.ID, IsAdmin: user.IsAdmin}, []byte(s.cfg.JWTSecret), s.cfg.AccessTokenTTL)
	if err != nil {
		return Token{}, err
	}
	return Token{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   int64(time.Until(exp).Seconds()),
	}, nil
}
