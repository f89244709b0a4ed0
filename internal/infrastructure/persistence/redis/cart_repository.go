// Package redis provides a Redis-backed cart repository. Carts are
// short-lived and per-user, which suits a hash per user keyed by line
// ID with a global index for direct line lookups.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/solemart/backend/internal/domain/cart"
	"github.com/solemart/backend/internal/domain/shared"
)

const (
	cartKeyPrefix = "cart:user:"
	indexKey      = "cart:items"
	seqKey        = "cart:seq"
)

// CartRepository implements cart.Repository on Redis
type CartRepository struct {
	client *redis.Client
}

var _ cart.Repository = (*CartRepository)(nil)

// NewCartRepository creates a Redis-backed cart repository
func NewCartRepository(client *redis.Client) *CartRepository {
	return &CartRepository{client: client}
}

type storedLine struct {
	cart.LineItem
	Seq int64 `json:"seq"`
}

func cartKey(userID uuid.UUID) string {
	return cartKeyPrefix + userID.String()
}

// FindByID finds a cart line by its ID via the global index
func (r *CartRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.LineItem, error) {
	owner, err := r.client.HGet(ctx, indexKey, id.String()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	raw, err := r.client.HGet(ctx, cartKeyPrefix+owner, id.String()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	var stored storedLine
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("corrupt cart line %s: %w", id, err)
	}
	return &stored.LineItem, nil
}

// FindByUser returns a user's cart lines in insertion order
func (r *CartRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*cart.LineItem, error) {
	stored, err := r.loadAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	lines := make([]*cart.LineItem, 0, len(stored))
	for i := range stored {
		lines = append(lines, &stored[i].LineItem)
	}
	return lines, nil
}

// FindByVariant finds the user's line for an exact (product, size, color)
func (r *CartRepository) FindByVariant(ctx context.Context, userID, productID uuid.UUID, size, color string) (*cart.LineItem, error) {
	stored, err := r.loadAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range stored {
		line := &stored[i].LineItem
		if line.ProductID == productID && line.Size == size && line.Color == color {
			return line, nil
		}
	}
	return nil, shared.ErrNotFound
}

// Save creates or updates a cart line
func (r *CartRepository) Save(ctx context.Context, item *cart.LineItem) error {
	stored := storedLine{LineItem: *item}

	// keep the original sequence number on update
	if raw, err := r.client.HGet(ctx, cartKey(item.UserID), item.ID.String()).Result(); err == nil {
		var prev storedLine
		if err := json.Unmarshal([]byte(raw), &prev); err == nil {
			stored.Seq = prev.Seq
		}
	} else if !errors.Is(err, redis.Nil) {
		return err
	}

	if stored.Seq == 0 {
		seq, err := r.client.Incr(ctx, seqKey).Result()
		if err != nil {
			return err
		}
		stored.Seq = seq
	}

	payload, err := json.Marshal(stored)
	if err != nil {
		return err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, cartKey(item.UserID), item.ID.String(), payload)
		pipe.HSet(ctx, indexKey, item.ID.String(), item.UserID.String())
		return nil
	})
	return err
}

// Delete removes a cart line
func (r *CartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	owner, err := r.client.HGet(ctx, indexKey, id.String()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return shared.ErrNotFound
		}
		return err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HDel(ctx, cartKeyPrefix+owner, id.String())
		pipe.HDel(ctx, indexKey, id.String())
		return nil
	})
	return err
}

// DeleteByUser removes every line in a user's cart. Deleting an
// already empty cart is not an error.
func (r *CartRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	ids, err := r.client.HKeys(ctx, cartKey(userID)).Result()
	if err != nil {
		return err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, cartKey(userID))
		if len(ids) > 0 {
			pipe.HDel(ctx, indexKey, ids...)
		}
		return nil
	})
	return err
}

func (r *CartRepository) loadAll(ctx context.Context, userID uuid.UUID) ([]storedLine, error) {
	raw, err := r.client.HGetAll(ctx, cartKey(userID)).Result()
	if err != nil {
		return nil, err
	}

	stored := make([]storedLine, 0, len(raw))
	for id, payload := range raw {
		var line storedLine
		if err := json.Unmarshal([]byte(payload), &line); err != nil {
			return nil, fmt.Errorf("corrupt cart line %s: %w", id, err)
		}
		stored = append(stored, line)
	}
	sort.Slice(stored, func(i, j int) bool {
		return stored[i].Seq < stored[j].Seq
	})
	return stored, nil
}
