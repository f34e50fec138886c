package cache

import (
	"encoding/json"
	"fmt"
	"time"
)

// Cache defines the interface for caching fetched payloads
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// DayKey generates a cache key for a source and month/day pair
func DayKey(source string, month, day int) string {
	return fmt.Sprintf("dayfacts:v1:%s:%02d-%02d", source, month, day)
}

// GetJSON decodes a cached JSON value into dst. A corrupt entry is
// evicted and reported as a miss.
func GetJSON(c Cache, key string, dst any) bool {
	data, found := c.Get(key)
	if !found {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		_ = c.Delete(key)
		return false
	}
	return true
}

// SetJSON encodes value as JSON and stores it
func SetJSON(c Cache, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}
	return c.Set(key, data, ttl)
}
