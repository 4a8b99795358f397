package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache(WithMemoryMaxSize(4))
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "answer:abc", "hello", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got string
	if err := c.Get(ctx, "answer:abc", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()

	var got string
	err := c.Get(context.Background(), "missing", &got)
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("got %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "k", "v", time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	var got string
	err := c.Get(ctx, "k", &got)
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("got %v, want ErrCacheMiss after expiry", err)
	}
}

func TestMemoryCacheEviction(t *testing.T) {
	c := NewMemoryCache(WithMemoryMaxSize(2))
	defer c.Close()

	ctx := context.Background()
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, k, time.Minute); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}

	if c.Len() != 2 {
		t.Fatalf("len = %d, want 2", c.Len())
	}

	var got string
	if err := c.Get(ctx, "a", &got); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("oldest entry should have been evicted, got err %v", err)
	}
}

func TestGenerateKeyWithParams(t *testing.T) {
	a := GenerateKeyWithParams("query", map[string]interface{}{"n": 3, "q": "tcs"})
	b := GenerateKeyWithParams("query", map[string]interface{}{"q": "tcs", "n": 3})
	if a != b {
		t.Errorf("keys differ for equal params: %q vs %q", a, b)
	}
}
