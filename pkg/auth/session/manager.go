package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/storekit/storefront-backend/pkg/config"
	redisclient "github.com/storekit/storefront-backend/pkg/redis"
)

const shopperTokenBytes = 32

var ErrInvalidSession = errors.New("invalid shopper session")

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	ShopperSessionKey(token string) string
}

// Manager mints and validates anonymous shopper sessions. A session token is
// the stable owner key for a guest's cart until it expires or is revoked.
type Manager struct {
	store sessionStore
	keyer sessionKeyer
	ttl   time.Duration
}

// Validator exposes the read-only surface needed by middleware.
type Validator interface {
	Validate(ctx context.Context, token string) (bool, error)
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.SessionConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	ttl := cfg.AnonymousTTL()
	if ttl <= 0 {
		return nil, fmt.Errorf("anonymous session ttl must be positive")
	}
	return &Manager{
		store: client,
		keyer: client,
		ttl:   ttl,
	}, nil
}

// Mint creates a fresh shopper session token and stores it with the TTL.
func (m *Manager) Mint(ctx context.Context) (string, error) {
	token, err := generateShopperToken()
	if err != nil {
		return "", err
	}
	if err := m.store.Set(ctx, m.keyer.ShopperSessionKey(token), "1", m.ttl); err != nil {
		return "", err
	}
	return token, nil
}

// Validate reports whether the shopper token references a live session.
func (m *Manager) Validate(ctx context.Context, token string) (bool, error) {
	if strings.TrimSpace(token) == "" {
		return false, nil
	}
	if _, err := m.store.Get(ctx, m.keyer.ShopperSessionKey(token)); err != nil {
		if redisclient.IsNil(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Revoke deletes the session for the provided token.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrInvalidSession
	}
	return m.store.Del(ctx, m.keyer.ShopperSessionKey(token))
}

func generateShopperToken() (string, error) {
	buf := make([]byte, shopperTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
