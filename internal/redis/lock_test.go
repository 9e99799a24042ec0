package redisclient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestWithLock_RunsAndReleases(t *testing.T) {
	mr, rdb := newTestClient(t)
	locker := NewRedisLocker(rdb, time.Second)

	ran := false
	err := locker.WithLock(context.Background(), "bookings:student-1", func(ctx context.Context) error {
		ran = true
		if !mr.Exists("lock:bookings:student-1") {
			t.Fatal("lock key missing inside critical section")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithLock: %v", err)
	}
	if !ran {
		t.Fatal("fn was not called")
	}
	if mr.Exists("lock:bookings:student-1") {
		t.Fatal("lock key not released")
	}
}

func TestWithLock_Contended(t *testing.T) {
	mr, rdb := newTestClient(t)
	if err := mr.Set("lock:bookings:student-2", "someone-else"); err != nil {
		t.Fatalf("seed lock: %v", err)
	}

	locker := NewRedisLocker(rdb, time.Second)
	err := locker.WithLock(context.Background(), "bookings:student-2", func(context.Context) error {
		t.Fatal("fn should not run while the lock is held")
		return nil
	})
	if !errors.Is(err, ErrLockNotAcquired) {
		t.Fatalf("expected ErrLockNotAcquired, got %v", err)
	}

	// Another holder's token must survive.
	if v, _ := mr.Get("lock:bookings:student-2"); v != "someone-else" {
		t.Fatalf("foreign lock overwritten: %q", v)
	}
}

func TestWithLock_PropagatesError(t *testing.T) {
	_, rdb := newTestClient(t)
	locker := NewRedisLocker(rdb, time.Second)

	boom := errors.New("boom")
	if err := locker.WithLock(context.Background(), "k", func(context.Context) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected fn error, got %v", err)
	}
}

func TestNewRedisClient_Ping(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb, err := NewRedisClient(context.Background(), Options{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("NewRedisClient: %v", err)
	}
	_ = rdb.Close()

	if _, err := NewRedisClient(context.Background(), Options{Addr: "127.0.0.1:1"}); err == nil {
		t.Fatal("expected ping failure against a closed port")
	}
}
