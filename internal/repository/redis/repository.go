// Package redis provides a Redis/Valkey implementation of the repository
// interface. Rooms and users are stored as JSON documents under a key
// prefix; every operation touches a single key.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Niranjan-NN/stream360/internal/config"
	"github.com/Niranjan-NN/stream360/internal/domain"
)

// Repository implements the repository interface with Redis storage.
type Repository struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRepository creates a new Redis repository and verifies connectivity.
func NewRepository(cfg config.RedisConfig) (*Repository, error) {
	var client *redis.Client

	if cfg.URI != "" {
		opt, err := redis.ParseURL(cfg.URI)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URI: %w", err)
		}
		if opt.DB == 0 {
			opt.DB = cfg.DB
		}
		if opt.Password == "" && cfg.Password != "" {
			opt.Password = cfg.Password
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Repository{
		client:    client,
		keyPrefix: cfg.KeyPrefix,
		ttl:       cfg.RoomTTL,
	}, nil
}

// Close closes the Redis connection.
func (r *Repository) Close() error {
	return r.client.Close()
}

func (r *Repository) roomKey(id domain.RoomID) string {
	return fmt.Sprintf("%srooms:%s", r.keyPrefix, id)
}

func (r *Repository) userKey(id domain.UserID) string {
	return fmt.Sprintf("%susers:%s", r.keyPrefix, id)
}

func (r *Repository) CreateRoom(ctx context.Context, room *domain.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("failed to marshal room: %w", err)
	}

	// SETNX so a concurrent create of the same id loses cleanly.
	ok, err := r.client.SetNX(ctx, r.roomKey(room.RoomID), data, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	if !ok {
		return domain.ErrRoomExists
	}
	return nil
}

func (r *Repository) GetRoom(ctx context.Context, id domain.RoomID) (*domain.Room, error) {
	data, err := r.client.Get(ctx, r.roomKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	var room domain.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room: %w", err)
	}
	return &room, nil
}

func (r *Repository) UpdateRoom(ctx context.Context, room *domain.Room) error {
	room.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("failed to marshal room: %w", err)
	}

	// SETXX: updating a deleted room must not resurrect it.
	ok, err := r.client.SetXX(ctx, r.roomKey(room.RoomID), data, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}
	if !ok {
		return domain.ErrRoomNotFound
	}
	return nil
}

func (r *Repository) DeleteRoom(ctx context.Context, id domain.RoomID) error {
	n, err := r.client.Del(ctx, r.roomKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	if n == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}

func (r *Repository) SaveUser(ctx context.Context, user *domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}
	if err := r.client.Set(ctx, r.userKey(user.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *Repository) GetUser(ctx context.Context, id domain.UserID) (*domain.User, error) {
	data, err := r.client.Get(ctx, r.userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}
