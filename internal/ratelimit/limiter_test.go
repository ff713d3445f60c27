package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type fakeCounter struct {
	counts      map[string]int64
	expires     map[string]time.Duration
	err         error
	expireFails int
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{counts: map[string]int64{}, expires: map[string]time.Duration{}}
}

func (f *fakeCounter) Incr(_ context.Context, key string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	f.counts[key]++
	return redis.NewIntResult(f.counts[key], nil)
}

func (f *fakeCounter) Expire(_ context.Context, key string, d time.Duration) *redis.BoolCmd {
	if f.expireFails > 0 {
		f.expireFails--
		return redis.NewBoolResult(false, errors.New("i/o timeout"))
	}
	f.expires[key] = d
	return redis.NewBoolResult(true, nil)
}

func (f *fakeCounter) TTL(_ context.Context, key string) *redis.DurationCmd {
	if _, ok := f.counts[key]; !ok {
		return redis.NewDurationResult(-2, nil)
	}
	if d, ok := f.expires[key]; ok {
		return redis.NewDurationResult(d, nil)
	}
	return redis.NewDurationResult(-1, nil)
}

// expire drops a key the way Redis does once its window has elapsed.
func (f *fakeCounter) expire(key string) {
	if _, ok := f.expires[key]; ok {
		delete(f.counts, key)
		delete(f.expires, key)
	}
}

func TestLimiterAllow(t *testing.T) {
	fc := newFakeCounter()
	l := New(fc, "generate", 2, time.Minute)
	ctx := context.Background()

	for i, want := range []bool{true, true, false, false} {
		ok, err := l.Allow(ctx, "owner1")
		if err != nil {
			t.Fatalf("hit %d: %v", i, err)
		}
		if ok != want {
			t.Errorf("hit %d: allowed=%v, want %v", i, ok, want)
		}
	}
	if ok, _ := l.Allow(ctx, "owner2"); !ok {
		t.Error("other owners have their own window")
	}
	if fc.expires["rate:generate:owner1"] != time.Minute {
		t.Errorf("window not set: %v", fc.expires)
	}
}

func TestLimiterDisabledAndErrors(t *testing.T) {
	var l *Limiter
	if ok, err := l.Allow(context.Background(), "x"); !ok || err != nil {
		t.Errorf("nil limiter should allow: %v %v", ok, err)
	}

	fc := newFakeCounter()
	fc.err = errors.New("connection refused")
	if _, err := New(fc, "generate", 1, time.Minute).Allow(context.Background(), "x"); err == nil {
		t.Error("expected redis error")
	}
}

func TestLimiterRearmsLostExpiry(t *testing.T) {
	fc := newFakeCounter()
	fc.expireFails = 1
	l := New(fc, "generate", 2, time.Minute)
	ctx := context.Background()
	key := "rate:generate:owner1"

	if _, err := l.Allow(ctx, "owner1"); err == nil {
		t.Fatal("expected the failed EXPIRE to surface")
	}
	if _, ok := fc.expires[key]; ok {
		t.Fatal("window should not be set after a failed EXPIRE")
	}

	ok, err := l.Allow(ctx, "owner1")
	if err != nil || !ok {
		t.Fatalf("second hit: allowed=%v err=%v", ok, err)
	}
	if fc.expires[key] != time.Minute {
		t.Fatalf("window not re-armed: %v", fc.expires)
	}

	if ok, _ := l.Allow(ctx, "owner1"); ok {
		t.Error("third hit should be over the limit")
	}
	fc.expire(key)
	if ok, err := l.Allow(ctx, "owner1"); !ok || err != nil {
		t.Errorf("owner still locked out after the window: allowed=%v err=%v", ok, err)
	}
}
