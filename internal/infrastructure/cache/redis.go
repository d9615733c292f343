package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"pointpal/internal/domain"
)

const sessionTTL = 7 * 24 * time.Hour

// SessionCache keeps the per-user "current user" snapshot in redis under
// current_user:<id>. A corrupt snapshot is dropped and reported as absent
// rather than surfaced as an error.
type SessionCache struct {
	client *redis.Client
}

func NewSessionCache(client *redis.Client) *SessionCache {
	return &SessionCache{client: client}
}

func sessionKey(userID uuid.UUID) string {
	return "current_user:" + userID.String()
}

func (c *SessionCache) Save(ctx context.Context, user *domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, sessionKey(user.ID), data, sessionTTL).Err()
}

func (c *SessionCache) Get(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	data, err := c.client.Get(ctx, sessionKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		_ = c.client.Del(ctx, sessionKey(userID)).Err()
		return nil, domain.ErrSessionNotFound
	}
	return &user, nil
}

func (c *SessionCache) Delete(ctx context.Context, userID uuid.UUID) error {
	return c.client.Del(ctx, sessionKey(userID)).Err()
}
