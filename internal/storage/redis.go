package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"qrdine/internal/domain"
)

// TokenCache fronts guest join-token resolution so the hot authorization
// path rarely touches Postgres.
type TokenCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewTokenCache(client *redis.Client, ttl time.Duration) *TokenCache {
	return &TokenCache{Client: client, TTL: ttl}
}

func (c *TokenCache) TokenKey(token string) string {
	return "guest_token:" + token
}

func (c *TokenCache) CacheToken(ctx context.Context, token string, guestID uuid.UUID) error {
	return c.Client.Set(ctx, c.TokenKey(token), guestID.String(), c.TTL).Err()
}

func (c *TokenCache) LookupToken(ctx context.Context, token string) (uuid.UUID, error) {
	val, err := c.Client.Get(ctx, c.TokenKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, domain.NotFoundf("guest token", "(cached)")
	}
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(val)
}

func (c *TokenCache) DropToken(ctx context.Context, token string) error {
	return c.Client.Del(ctx, c.TokenKey(token)).Err()
}

// FloorBoard keeps the per-restaurant live table board in Redis hashes; the
// staff dashboard polls it instead of querying Postgres on every refresh.
type FloorBoard struct {
	Client *redis.Client
}

func NewFloorBoard(client *redis.Client) *FloorBoard {
	return &FloorBoard{Client: client}
}

func (b *FloorBoard) tableKey(restaurantID uuid.UUID, tableNumber string) string {
	return "board:" + restaurantID.String() + ":" + tableNumber
}

func (b *FloorBoard) UpdateTable(ctx context.Context, restaurantID uuid.UUID, tableNumber, status string, amount float64) error {
	key := b.tableKey(restaurantID, tableNumber)
	if err := b.Client.HSet(ctx, key, map[string]interface{}{
		"status":       status,
		"amount":       amount,
		"last_updated": time.Now().Unix(),
	}).Err(); err != nil {
		return err
	}
	return b.Client.Expire(ctx, key, 24*time.Hour).Err()
}

func (b *FloorBoard) RecordWaiterCall(ctx context.Context, restaurantID uuid.UUID, tableNumber string) error {
	key := b.tableKey(restaurantID, tableNumber)
	if err := b.Client.HSet(ctx, key, map[string]interface{}{
		"waiter_called": true,
		"called_at":     time.Now().Unix(),
	}).Err(); err != nil {
		return err
	}
	return b.Client.Expire(ctx, key, 24*time.Hour).Err()
}
