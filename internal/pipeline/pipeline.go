package pipeline

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ppiankov/dayfacts/internal/cache"
	"github.com/ppiankov/dayfacts/internal/model"
	"github.com/ppiankov/dayfacts/internal/source"
	"github.com/ppiankov/dayfacts/internal/util"
)

// Pipeline loads days from a source through the payload cache
type Pipeline struct {
	source source.Source
	cache  cache.Cache // nil disables caching
	ttl    time.Duration

	group singleflight.Group
}

// New creates a pipeline. c may be nil.
func New(src source.Source, c cache.Cache, ttl time.Duration) *Pipeline {
	return &Pipeline{
		source: src,
		cache:  c,
		ttl:    ttl,
	}
}

// NewFromConfig builds the configured source and cache
func NewFromConfig(cfg *model.Config) (*Pipeline, error) {
	src, err := source.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("create source: %w", err)
	}

	var c cache.Cache
	if cfg.Cache.Enabled {
		c = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
	}

	return New(src, c, cfg.Cache.TTL), nil
}

// Source returns the underlying source
func (p *Pipeline) Source() source.Source {
	return p.source
}

// Load returns the day for month/day, from cache when possible. Concurrent
// loads of the same day share one fetch. Failures are never cached.
func (p *Pipeline) Load(ctx context.Context, month, day int) (*model.Day, error) {
	key := cache.DayKey(p.source.Name(), month, day)

	if p.cache != nil {
		var cached model.Day
		if cache.GetJSON(p.cache, key, &cached) {
			util.Log.WithField("key", key).Debug("cache hit")
			return &cached, nil
		}
	}

	// The shared fetch outlives any one caller; http.timeout bounds it
	fetchCtx := context.WithoutCancel(ctx)
	ch := p.group.DoChan(key, func() (any, error) {
		loaded, err := p.source.Fetch(fetchCtx, month, day)
		if err != nil {
			return nil, err
		}
		if p.cache != nil {
			if err := cache.SetJSON(p.cache, key, loaded, p.ttl); err != nil {
				util.Log.WithError(err).WithField("key", key).Warn("failed to cache day")
			}
		}
		return loaded, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*model.Day), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
