package source

import (
	"context"
	"fmt"
	"time"

	"github.com/ppiankov/dayfacts/internal/model"
	"github.com/ppiankov/dayfacts/internal/worker"
)

// Source fetches the "on this day" collections for one calendar day
type Source interface {
	Name() string
	Fetch(ctx context.Context, month, day int) (*model.Day, error)
}

// New builds the source selected by cfg.Source.Kind
func New(cfg *model.Config) (Source, error) {
	limiter := worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)
	fetcher := NewFetcher(cfg.HTTP, limiter)

	switch cfg.Source.Kind {
	case model.SourceFeed, "":
		return NewFeedSource(fetcher, cfg.Source.RESTBase), nil
	case model.SourceSPARQL:
		if rps := cfg.RateLimiting.SPARQLRequestsPerSecond; rps > 0 {
			limiter.SetHostRate(cfg.Source.SPARQLEndpoint, rps, cfg.RateLimiting.BurstSize)
		}
		return NewSparqlSource(fetcher, SparqlOptions{
			Endpoint: cfg.Source.SPARQLEndpoint,
			RESTBase: cfg.Source.RESTBase,
			Limit:    cfg.Source.SPARQLLimit,
			Workers:  cfg.Concurrency.SummaryWorkers,
		}), nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}
}

// now is replaced in tests
var now = time.Now
