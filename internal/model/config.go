package model

import (
	"fmt"
	"time"
)

// Config is the complete dayfacts configuration
type Config struct {
	Source       SourceConfig      `yaml:"source" mapstructure:"source"`
	HTTP         HTTPConfig        `yaml:"http" mapstructure:"http"`
	Cache        CacheConfig       `yaml:"cache" mapstructure:"cache"`
	RateLimiting RateLimitConfig   `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Concurrency  ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Selection    SelectionConfig   `yaml:"selection" mapstructure:"selection"`
	Sidebar      SidebarConfig     `yaml:"sidebar" mapstructure:"sidebar"`
	Transition   TransitionConfig  `yaml:"transition" mapstructure:"transition"`
	Server       ServerConfig      `yaml:"server" mapstructure:"server"`
	Output       OutputConfig      `yaml:"output" mapstructure:"output"`
	Log          LogConfig         `yaml:"log" mapstructure:"log"`
	Categories   []CategoryConfig  `yaml:"categories,omitempty" mapstructure:"categories"`
}

// SourceConfig selects and locates the upstream data service
type SourceConfig struct {
	Kind           string `yaml:"kind" mapstructure:"kind"`                       // feed or sparql
	RESTBase       string `yaml:"rest_base" mapstructure:"rest_base"`             // Wikimedia REST API root
	SPARQLEndpoint string `yaml:"sparql_endpoint" mapstructure:"sparql_endpoint"` // Wikidata query service
	SPARQLLimit    int    `yaml:"sparql_limit" mapstructure:"sparql_limit"`       // Max entities per query
	Collection     string `yaml:"collection" mapstructure:"collection"`           // Collection feeding the card
}

// HTTPConfig controls the outbound transport
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	Retries       int           `yaml:"retries" mapstructure:"retries"` // 0 = a failed fetch is terminal
	InsecureTLS   bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// CacheConfig controls the in-process payload cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// RateLimitConfig controls per-host request pacing. The SPARQL endpoint gets
// its own rate when sparql_requests_per_second is positive.
type RateLimitConfig struct {
	RequestsPerSecond       float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize               int     `yaml:"burst_size" mapstructure:"burst_size"`
	SPARQLRequestsPerSecond float64 `yaml:"sparql_requests_per_second" mapstructure:"sparql_requests_per_second"`
}

// ConcurrencyConfig controls worker pools
type ConcurrencyConfig struct {
	Workers        int `yaml:"workers" mapstructure:"workers"`                 // Batch date workers
	SummaryWorkers int `yaml:"summary_workers" mapstructure:"summary_workers"` // SPARQL summary lookups
}

// SelectionConfig controls category filtering and the main card
type SelectionConfig struct {
	Category    string `yaml:"category" mapstructure:"category"`         // Initial category
	EmptyPolicy string `yaml:"empty_policy" mapstructure:"empty_policy"` // fallback or empty
	TopN        int    `yaml:"top_n" mapstructure:"top_n"`               // Facts in one-shot and batch output
}

// SidebarConfig bounds the births/deaths panels
type SidebarConfig struct {
	Min int `yaml:"min" mapstructure:"min"`
	Max int `yaml:"max" mapstructure:"max"`
}

// TransitionConfig holds the card fade timings
type TransitionConfig struct {
	FadeOut time.Duration `yaml:"fade_out" mapstructure:"fade_out"`
	FadeIn  time.Duration `yaml:"fade_in" mapstructure:"fade_in"`
}

// ServerConfig controls the HTTP surface
type ServerConfig struct {
	Addr       string        `yaml:"addr" mapstructure:"addr"`
	SessionTTL time.Duration `yaml:"session_ttl" mapstructure:"session_ttl"`
}

// OutputConfig controls console output
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"` // Markdown report footer
}

// LogConfig controls the diagnostic log channel
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}

// CategoryConfig is a user-defined category, merged over the built-in table
type CategoryConfig struct {
	Name    string   `yaml:"name" mapstructure:"name"`
	Label   string   `yaml:"label" mapstructure:"label"`
	Include []string `yaml:"include" mapstructure:"include"`
	Exclude []string `yaml:"exclude,omitempty" mapstructure:"exclude"`
	Hints   []string `yaml:"hints,omitempty" mapstructure:"hints"`
}

// Source kinds
const (
	SourceFeed   = "feed"
	SourceSPARQL = "sparql"
)

// Empty-result policies
const (
	PolicyFallback = "fallback"
	PolicyEmpty    = "empty"
)

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Kind:           SourceFeed,
			RESTBase:       "https://en.wikipedia.org/api/rest_v1",
			SPARQLEndpoint: "https://query.wikidata.org/sparql",
			SPARQLLimit:    50,
			Collection:     CollectionSelected,
		},
		HTTP: HTTPConfig{
			Timeout:      15 * time.Second,
			UserAgent:    "dayfacts/0.3 (+https://github.com/ppiankov/dayfacts)",
			MaxBodyBytes: 8_000_000,
			Retries:      0,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     6 * time.Hour,
		},
		RateLimiting: RateLimitConfig{
			RequestsPerSecond:       5,
			BurstSize:               5,
			SPARQLRequestsPerSecond: 1,
		},
		Concurrency: ConcurrencyConfig{
			Workers:        4,
			SummaryWorkers: 4,
		},
		Selection: SelectionConfig{
			Category:    "general",
			EmptyPolicy: PolicyFallback,
			TopN:        5,
		},
		Sidebar: SidebarConfig{
			Min: 5,
			Max: 5,
		},
		Transition: TransitionConfig{
			FadeOut: 300 * time.Millisecond,
			FadeIn:  50 * time.Millisecond,
		},
		Server: ServerConfig{
			Addr:       "127.0.0.1:8080",
			SessionTTL: 30 * time.Minute,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks that the configuration contains usable values
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceFeed, SourceSPARQL:
	default:
		return fmt.Errorf("invalid source.kind %q: must be one of feed, sparql", c.Source.Kind)
	}

	switch c.Selection.EmptyPolicy {
	case PolicyFallback, PolicyEmpty:
	default:
		return fmt.Errorf("invalid selection.empty_policy %q: must be one of fallback, empty", c.Selection.EmptyPolicy)
	}

	if c.Sidebar.Min < 0 || c.Sidebar.Max < 0 {
		return fmt.Errorf("sidebar bounds must be non-negative")
	}
	if c.Sidebar.Max < c.Sidebar.Min {
		return fmt.Errorf("sidebar.max (%d) must be >= sidebar.min (%d)", c.Sidebar.Max, c.Sidebar.Min)
	}

	if c.Selection.TopN <= 0 {
		return fmt.Errorf("selection.top_n must be positive")
	}

	if c.HTTP.Retries < 0 {
		return fmt.Errorf("http.retries must be non-negative")
	}

	if c.Transition.FadeOut < 0 || c.Transition.FadeIn < 0 {
		return fmt.Errorf("transition durations must be non-negative")
	}

	for _, cat := range c.Categories {
		if cat.Name == "" {
			return fmt.Errorf("category definitions require a name")
		}
		if len(cat.Include) == 0 {
			return fmt.Errorf("category %q requires at least one include keyword", cat.Name)
		}
	}

	return nil
}
