package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"backend/internal/app/ds"
)

// Сессии мастера живут в Redis в виде JSON. Брошенная сессия
// удаляется по TTL, успешно отправленная - явно через DeleteSession.

const sessionPrefix = "wizard:"

const sessionTTL = 24 * time.Hour

// ErrSessionNotFound — сессия не найдена или истекла
var ErrSessionNotFound = errors.New("сессия не найдена")

func sessionKey(id string) string {
	return sessionPrefix + id
}

// SaveSession сохраняет сессию и продлевает TTL
func (c *Client) SaveSession(ctx context.Context, session *ds.WizardSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("сериализация сессии: %w", err)
	}

	if err := c.client.Set(ctx, sessionKey(session.ID), data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}

// GetSession читает сессию по идентификатору
func (c *Client) GetSession(ctx context.Context, id string) (*ds.WizardSession, error) {
	data, err := c.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis error: %w", err)
	}

	session := &ds.WizardSession{}
	if err := json.Unmarshal(data, session); err != nil {
		return nil, fmt.Errorf("десериализация сессии: %w", err)
	}
	return session, nil
}

// DeleteSession удаляет сессию (после успешной отправки заявки)
func (c *Client) DeleteSession(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}
