package cache

import (
	"testing"
	"time"
)

func TestSetGetDelete(t *testing.T) {
	c := New[string, int](time.Minute, time.Minute)
	defer c.Close()

	c.Set("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("get after set: %v %v", v, ok)
	}

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Fatal("get after delete must miss")
	}
}

func TestExpiry(t *testing.T) {
	c := New[string, string](20*time.Millisecond, time.Hour)
	defer c.Close()

	c.Set("k", "v")
	time.Sleep(40 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Fatal("expired entry must not be returned")
	}
}

func TestSetRefreshesExpiry(t *testing.T) {
	c := New[string, int](50*time.Millisecond, time.Hour)
	defer c.Close()

	c.Set("k", 1)
	time.Sleep(30 * time.Millisecond)
	c.Set("k", 2)
	time.Sleep(30 * time.Millisecond)

	if v, ok := c.Get("k"); !ok || v != 2 {
		t.Fatalf("rewrite must refresh ttl: %v %v", v, ok)
	}
}

func TestClearAndLen(t *testing.T) {
	c := New[int, int](time.Minute, time.Minute)
	defer c.Close()

	c.Set(1, 1)
	c.Set(2, 2)
	if c.Len() != 2 {
		t.Fatalf("len: %d", c.Len())
	}
	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("len after clear: %d", c.Len())
	}
}
