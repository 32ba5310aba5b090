package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopsetu/shopledger/internal/usecase"
)

func TestCacheSetAndGet(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "foo", []byte("bar"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, err := cache.Get(ctx, "foo")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if string(val) != "bar" {
		t.Fatalf("expected bar, got %s", val)
	}
}

func TestCacheGetMissingKey(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)

	_, err := cache.Get(context.Background(), "absent")
	if !errors.Is(err, usecase.ErrCacheMiss) {
		t.Fatalf("expected cache miss, got %v", err)
	}
}

func TestCacheUpdateTransformsValue(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "counter", []byte("1"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	err := cache.Update(ctx, "counter", time.Minute, func(old []byte) ([]byte, error) {
		if string(old) != "1" {
			t.Fatalf("expected old value 1, got %s", old)
		}
		return []byte("2"), nil
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	val, err := cache.Get(ctx, "counter")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(val) != "2" {
		t.Fatalf("expected 2, got %s", val)
	}
}

func TestCacheUpdateMissingKey(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)

	err := cache.Update(context.Background(), "absent", time.Minute, func([]byte) ([]byte, error) {
		t.Fatalf("fn must not run for a missing key")
		return nil, nil
	})
	if !errors.Is(err, usecase.ErrCacheMiss) {
		t.Fatalf("expected cache miss, got %v", err)
	}
}

func TestCacheUpdatePropagatesFnError(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "foo", []byte("bar"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	wantErr := errors.New("bad value")
	err := cache.Update(ctx, "foo", time.Minute, func([]byte) ([]byte, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected fn error to surface, got %v", err)
	}

	val, err := cache.Get(ctx, "foo")
	if err != nil || string(val) != "bar" {
		t.Fatalf("expected value untouched after failed update, got %s (%v)", val, err)
	}
}

func TestCacheDelete(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "foo", []byte("bar"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if err := cache.Delete(ctx, "foo"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := cache.Get(ctx, "foo"); !errors.Is(err, usecase.ErrCacheMiss) {
		t.Fatalf("expected cache miss after delete, got %v", err)
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "foo", []byte("bar"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := cache.Get(ctx, "foo"); !errors.Is(err, usecase.ErrCacheMiss) {
		t.Fatalf("expected cache miss after expiry, got %v", err)
	}
}
