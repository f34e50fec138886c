package cache

import (
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("Expected miss for unknown key")
	}

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	val, found := c.Get("k")
	if !found || string(val) != "v" {
		t.Errorf("Expected v, got %q (found=%v)", val, found)
	}

	_ = c.Delete("k")
	if _, found := c.Get("k"); found {
		t.Error("Expected miss after delete")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	_ = c.Set("short", []byte("v"), 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	if _, found := c.Get("short"); found {
		t.Error("Expected entry to expire")
	}
}

func TestMemoryCache_Clear(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	_ = c.Set("a", []byte("1"), 0)
	_ = c.Set("b", []byte("2"), 0)

	_ = c.Clear()
	if c.Len() != 0 {
		t.Errorf("Expected empty cache, got %d items", c.Len())
	}
}

func TestJSONHelpers(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	type payload struct {
		Month int `json:"month"`
	}

	if err := SetJSON(c, "p", payload{Month: 7}, 0); err != nil {
		t.Fatalf("SetJSON failed: %v", err)
	}

	var got payload
	if !GetJSON(c, "p", &got) || got.Month != 7 {
		t.Errorf("Expected month 7, got %+v", got)
	}

	_ = c.Set("corrupt", []byte("{not json"), 0)
	if GetJSON(c, "corrupt", &got) {
		t.Error("Expected corrupt entry to be a miss")
	}
	if _, found := c.Get("corrupt"); found {
		t.Error("Expected corrupt entry to be evicted")
	}
}

func TestDayKey(t *testing.T) {
	if got := DayKey("feed", 7, 20); got != "dayfacts:v1:feed:07-20" {
		t.Errorf("Unexpected key: %s", got)
	}
}
