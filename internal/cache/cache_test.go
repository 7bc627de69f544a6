package cache

import (
	"strings"
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	k1 := Key("https://example.com/a")
	k2 := Key("https://example.com/b")

	if !strings.HasPrefix(k1, "casewiki:v1:") {
		t.Errorf("key missing version prefix: %q", k1)
	}
	if k1 == k2 {
		t.Error("different URLs must produce different keys")
	}
	if k1 != Key("https://example.com/a") {
		t.Error("key must be stable for the same URL")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("empty cache should miss")
	}

	c.Set("k", "page text", time.Minute)
	if v, found := c.Get("k"); !found || v != "page text" {
		t.Errorf("got (%q, %v), want (page text, true)", v, found)
	}

	c.Delete("k")
	if _, found := c.Get("k"); found {
		t.Error("deleted entry should miss")
	}

	c.Set("a", "1", time.Minute)
	c.Set("b", "2", time.Minute)
	c.Clear()
	if _, found := c.Get("a"); found {
		t.Error("cleared cache should miss")
	}
}

func TestMemoryCache_TTL(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	c.Set("k", "v", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	if _, found := c.Get("k"); found {
		t.Error("entry should expire after its TTL")
	}
}
