package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/dayfacts/internal/model"
	"github.com/ppiankov/dayfacts/internal/util"
)

// Version is the released version, overridden at build time with -ldflags
var Version = "v0.3.0"

var (
	cfgFile  string
	verbose  bool
	noCache  bool
	logLevel string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dayfacts",
	Short: "dayfacts - what happened on this day in history",
	Long: `dayfacts fetches the historical events, births and deaths recorded for a
calendar day, filters them by category, and shows them one at a time.

Facts come from the Wikimedia "on this day" feed, or from a Wikidata SPARQL
query with article summaries. A single fetch is made per day; everything else
happens locally.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dayfacts %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.dayfacts/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "disable the payload cache")
	rootCmd.PersistentFlags().String("source", "", "fact source (feed, sparql)")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("source.kind", rootCmd.PersistentFlags().Lookup("source"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	setDefaults(model.DefaultConfig())

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.dayfacts")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match DAYFACTS_*, e.g. DAYFACTS_SOURCE_KIND
	viper.SetEnvPrefix("DAYFACTS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every key so env vars and nested config resolve
func setDefaults(cfg *model.Config) {
	defaults := map[string]any{
		"source.kind":                              cfg.Source.Kind,
		"source.rest_base":                         cfg.Source.RESTBase,
		"source.sparql_endpoint":                   cfg.Source.SPARQLEndpoint,
		"source.sparql_limit":                      cfg.Source.SPARQLLimit,
		"source.collection":                        cfg.Source.Collection,
		"http.timeout":                             cfg.HTTP.Timeout,
		"http.user_agent":                          cfg.HTTP.UserAgent,
		"http.max_body_bytes":                      cfg.HTTP.MaxBodyBytes,
		"http.retries":                             cfg.HTTP.Retries,
		"http.insecure_tls":                        cfg.HTTP.InsecureTLS,
		"http.http_proxy":                          cfg.HTTP.HTTPProxy,
		"http.https_proxy":                         cfg.HTTP.HTTPSProxy,
		"http.no_proxy":                            cfg.HTTP.NoProxy,
		"http.respect_robots":                      cfg.HTTP.RespectRobots,
		"cache.enabled":                            cfg.Cache.Enabled,
		"cache.ttl":                                cfg.Cache.TTL,
		"rate_limiting.requests_per_second":        cfg.RateLimiting.RequestsPerSecond,
		"rate_limiting.burst_size":                 cfg.RateLimiting.BurstSize,
		"rate_limiting.sparql_requests_per_second": cfg.RateLimiting.SPARQLRequestsPerSecond,
		"concurrency.workers":                      cfg.Concurrency.Workers,
		"concurrency.summary_workers":              cfg.Concurrency.SummaryWorkers,
		"selection.category":                       cfg.Selection.Category,
		"selection.empty_policy":                   cfg.Selection.EmptyPolicy,
		"selection.top_n":                          cfg.Selection.TopN,
		"sidebar.min":                              cfg.Sidebar.Min,
		"sidebar.max":                              cfg.Sidebar.Max,
		"transition.fade_out":                      cfg.Transition.FadeOut,
		"transition.fade_in":                       cfg.Transition.FadeIn,
		"server.addr":                              cfg.Server.Addr,
		"server.session_ttl":                       cfg.Server.SessionTTL,
		"output.verbose":                           cfg.Output.Verbose,
		"output.include_footer":                    cfg.Output.IncludeFooter,
		"log.level":                                cfg.Log.Level,
	}
	for key, value := range defaults {
		viper.SetDefault(key, value)
	}
}

// loadConfig resolves the effective configuration and applies the log level
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if noCache {
		cfg.Cache.Enabled = false
	}
	if cfg.Output.Verbose {
		cfg.Log.Level = "debug"
	}
	if err := util.SetLogLevel(cfg.Log.Level); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
