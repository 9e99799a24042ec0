package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	redisclient "github.com/hackgods/tutor-availability/internal/redis"
)

// Store persists each student's bookings as one list.
type Store interface {
	List(ctx context.Context, studentID string) ([]Booking, error)

	// Update loads the list, applies fn and writes the result back. Writers
	// for the same student are serialized.
	Update(ctx context.Context, studentID string, fn func([]Booking) ([]Booking, error)) error
}

// RedisStore keeps "bookings:{student}" as a JSON array.
type RedisStore struct {
	client *redis.Client
	locker redisclient.Locker
}

func NewRedisStore(client *redis.Client, locker redisclient.Locker) *RedisStore {
	return &RedisStore{client: client, locker: locker}
}

func storageKey(studentID string) string {
	return "bookings:" + studentID
}

func (s *RedisStore) List(ctx context.Context, studentID string) ([]Booking, error) {
	return s.load(ctx, storageKey(studentID))
}

func (s *RedisStore) Update(ctx context.Context, studentID string, fn func([]Booking) ([]Booking, error)) error {
	key := storageKey(studentID)

	return s.locker.WithLock(ctx, key, func(lockCtx context.Context) error {
		current, err := s.load(lockCtx, key)
		if err != nil {
			return err
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("encode bookings: %w", err)
		}
		if err := s.client.Set(lockCtx, key, data, 0).Err(); err != nil {
			return fmt.Errorf("write bookings: %w", err)
		}
		return nil
	})
}

func (s *RedisStore) load(ctx context.Context, key string) ([]Booking, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read bookings: %w", err)
	}

	var list []Booking
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode bookings at %s: %w", key, err)
	}
	return list, nil
}
