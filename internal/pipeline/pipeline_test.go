package pipeline

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/dayfacts/internal/cache"
	"github.com/ppiankov/dayfacts/internal/model"
	"github.com/ppiankov/dayfacts/internal/source"
)

type stubSource struct {
	calls atomic.Int32
	delay time.Duration
	err   error
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Fetch(ctx context.Context, month, day int) (*model.Day, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return &model.Day{
		Month:  month,
		Day:    day,
		Source: "stub",
		Events: []model.FactRecord{{Year: 1969, Text: "Apollo 11 lands on the Moon.", Kind: model.KindEvent}},
	}, nil
}

func TestPipeline_CachesDay(t *testing.T) {
	src := &stubSource{}
	p := New(src, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)

	for i := 0; i < 3; i++ {
		day, err := p.Load(context.Background(), 7, 20)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if day.Key() != "07-20" || len(day.Events) != 1 {
			t.Errorf("Unexpected day: %+v", day)
		}
	}

	if got := src.calls.Load(); got != 1 {
		t.Errorf("Expected 1 fetch, got %d", got)
	}

	if _, err := p.Load(context.Background(), 7, 21); err != nil {
		t.Fatal(err)
	}
	if got := src.calls.Load(); got != 2 {
		t.Errorf("Expected a fetch for a new date, got %d calls", got)
	}
}

func TestPipeline_NoCache(t *testing.T) {
	src := &stubSource{}
	p := New(src, nil, 0)

	_, _ = p.Load(context.Background(), 7, 20)
	_, _ = p.Load(context.Background(), 7, 20)

	if got := src.calls.Load(); got != 2 {
		t.Errorf("Expected 2 fetches without cache, got %d", got)
	}
}

func TestPipeline_ErrorsNotCached(t *testing.T) {
	src := &stubSource{err: source.ErrEmptyResult}
	p := New(src, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := p.Load(context.Background(), 7, 20); !errors.Is(err, source.ErrEmptyResult) {
			t.Errorf("Expected ErrEmptyResult, got %v", err)
		}
	}
	if got := src.calls.Load(); got != 2 {
		t.Errorf("Expected failures to be retried on the next load, got %d calls", got)
	}
}

func TestPipeline_SharesInflightFetch(t *testing.T) {
	src := &stubSource{delay: 50 * time.Millisecond}
	p := New(src, nil, 0)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := p.Load(context.Background(), 7, 20); err != nil {
				t.Errorf("Load failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := src.calls.Load(); got >= 5 {
		t.Errorf("Expected concurrent loads to share a fetch, got %d calls", got)
	}
}

func TestPipeline_CancelledCallerDoesNotFailOthers(t *testing.T) {
	src := &stubSource{delay: 100 * time.Millisecond}
	p := New(src, nil, 0)

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := p.Load(firstCtx, 7, 20)
		firstErr <- err
	}()

	time.Sleep(10 * time.Millisecond)
	type result struct {
		day *model.Day
		err error
	}
	second := make(chan result, 1)
	go func() {
		day, err := p.Load(context.Background(), 7, 20)
		second <- result{day, err}
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Errorf("Expected the cancelled caller to see context.Canceled, got %v", err)
	}
	res := <-second
	if res.err != nil {
		t.Fatalf("Expected the live caller to succeed, got %v", res.err)
	}
	if res.day.Key() != "07-20" {
		t.Errorf("Unexpected day: %+v", res.day)
	}
	if got := src.calls.Load(); got != 1 {
		t.Errorf("Expected one shared fetch, got %d", got)
	}
}

func TestNewFromConfig(t *testing.T) {
	cfg := model.DefaultConfig()
	p, err := NewFromConfig(cfg)
	if err != nil {
		t.Fatalf("NewFromConfig failed: %v", err)
	}
	if p.cache == nil || p.Source().Name() != model.SourceFeed {
		t.Errorf("Unexpected pipeline: %+v", p)
	}

	cfg.Cache.Enabled = false
	p, _ = NewFromConfig(cfg)
	if p.cache != nil {
		t.Error("Expected cache disabled")
	}

	cfg.Source.Kind = "bogus"
	if _, err := NewFromConfig(cfg); err == nil {
		t.Error("Expected error for unknown source")
	}
}
