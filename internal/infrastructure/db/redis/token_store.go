package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/eventdesk/registration-api/internal/core/domain"
)

// Key formats: grant:access:<token> holds the serialized grant,
// grant:refresh:<token> points back at the access token.
const (
	accessKeyPrefix  = "grant:access:"
	refreshKeyPrefix = "grant:refresh:"
)

// TokenStore keeps grants in Redis with TTLs bound to the refresh window,
// so expired grants vanish without an explicit sweep. It implements the
// same contract as the in-memory store and is selected by config.
type TokenStore struct {
	client *redis.Client
}

func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

func (s *TokenStore) Put(ctx context.Context, grant *domain.Grant) error {
	payload, err := json.Marshal(grant)
	if err != nil {
		return fmt.Errorf("marshal grant: %w", err)
	}

	ttl := time.Until(grant.RefreshUntil)
	if ttl <= 0 {
		return fmt.Errorf("store grant: refresh window already closed")
	}

	// SetNX makes a colliding token observable as a mint failure, for
	// either half of the pair.
	ok, err := s.client.SetNX(ctx, accessKeyPrefix+grant.AccessToken, payload, ttl).Result()
	if err != nil {
		return fmt.Errorf("store grant: %w", err)
	}
	if !ok {
		return domain.ErrTokenCollision
	}

	ok, err = s.client.SetNX(ctx, refreshKeyPrefix+grant.RefreshToken, grant.AccessToken, ttl).Result()
	if err != nil {
		return fmt.Errorf("store refresh pointer: %w", err)
	}
	if !ok {
		// Roll the access key back so the retried mint starts clean.
		_ = s.client.Del(ctx, accessKeyPrefix+grant.AccessToken).Err()
		return domain.ErrTokenCollision
	}
	return nil
}

func (s *TokenStore) GetByAccessToken(ctx context.Context, token string) (*domain.Grant, error) {
	payload, err := s.client.Get(ctx, accessKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrGrantNotFound
		}
		return nil, fmt.Errorf("get grant: %w", err)
	}

	var grant domain.Grant
	if err := json.Unmarshal(payload, &grant); err != nil {
		return nil, fmt.Errorf("decode grant: %w", err)
	}
	return &grant, nil
}

func (s *TokenStore) GetByRefreshToken(ctx context.Context, token string) (*domain.Grant, error) {
	accessToken, err := s.client.Get(ctx, refreshKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrGrantNotFound
		}
		return nil, fmt.Errorf("get refresh pointer: %w", err)
	}
	return s.GetByAccessToken(ctx, accessToken)
}

func (s *TokenStore) Revoke(ctx context.Context, accessToken string) error {
	grant, err := s.GetByAccessToken(ctx, accessToken)
	if err != nil {
		if errors.Is(err, domain.ErrGrantNotFound) {
			return nil
		}
		return err
	}

	grant.Revoked = true
	payload, err := json.Marshal(grant)
	if err != nil {
		return fmt.Errorf("marshal grant: %w", err)
	}

	// Keep the remaining TTL so the revoked record still ages out.
	return s.client.Set(ctx, accessKeyPrefix+accessToken, payload, redis.KeepTTL).Err()
}

// PurgeExpired is a no-op: key TTLs already bound every grant's lifetime.
func (s *TokenStore) PurgeExpired(context.Context, time.Time) error {
	return nil
}
