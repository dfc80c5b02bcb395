package cache

import (
	"testing"
	"time"

	"github.com/IAMC-DH/my-site-template/internal/config"
)

func TestNewCache(t *testing.T) {
	c := NewCache(5 * time.Minute)
	if c == nil {
		t.Fatal("NewCache returned nil")
	}
	if c.ttl != 5*time.Minute {
		t.Errorf("expected ttl 5m, got %v", c.ttl)
	}
}

func TestCacheGetSet(t *testing.T) {
	c := NewCache(1 * time.Hour)

	// Initially empty
	v, ok := c.Get("footer-info")
	if ok || v != nil {
		t.Error("expected empty cache")
	}

	c.Set("footer-info", config.Object{"name": "Test"})

	v, ok = c.Get("footer-info")
	if !ok {
		t.Fatal("expected record to be cached")
	}
	if v["name"] != "Test" {
		t.Errorf("expected name 'Test', got %v", v["name"])
	}

	// Keys are independent
	if _, ok := c.Get("nav-config"); ok {
		t.Error("expected other key to be empty")
	}

	c.Invalidate("footer-info")
	v, ok = c.Get("footer-info")
	if ok || v != nil {
		t.Error("expected record to be invalidated")
	}
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(10 * time.Millisecond)

	c.Set("k", config.Object{"a": 1})

	if _, ok := c.Get("k"); !ok {
		t.Error("expected record to be cached before expiry")
	}

	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Error("expected record to expire")
	}
}
