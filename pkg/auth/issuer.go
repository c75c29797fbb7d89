package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/giftlist-backend/pkg/auth/session"
	"github.com/angelmondragon/giftlist-backend/pkg/config"
)

type sessionRegistrar interface {
	Register(ctx context.Context, accessID, subject string, ttl time.Duration) error
}

// Issuer mints access tokens and records each one as a live session so it can
// be revoked on logout.
type Issuer struct {
	cfg      config.JWTConfig
	sessions sessionRegistrar
	now      func() time.Time
}

// NewIssuer builds an Issuer. sessions may be nil, in which case tokens are
// only bounded by their expiry.
func NewIssuer(cfg config.JWTConfig, sessions sessionRegistrar) (*Issuer, error) {
	if err := checkConfig(cfg); err != nil {
		return nil, err
	}
	return &Issuer{cfg: cfg, sessions: sessions, now: time.Now}, nil
}

// Issue returns a signed token for subject valid for ttl.
func (i *Issuer) Issue(ctx context.Context, subject string, ttl time.Duration) (string, error) {
	jti := session.NewAccessID()
	token, err := MintAccessToken(i.cfg, i.now().UTC(), AccessTokenPayload{
		Subject: subject,
		JTI:     jti,
		TTL:     ttl,
	})
	if err != nil {
		return "", err
	}
	if i.sessions != nil {
		if err := i.sessions.Register(ctx, jti, subject, ttl); err != nil {
			return "", fmt.Errorf("register session: %w", err)
		}
	}
	return token, nil
}
