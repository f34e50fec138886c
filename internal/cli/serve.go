package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/dayfacts/internal/pipeline"
	"github.com/ppiankov/dayfacts/internal/server"
	"github.com/ppiankov/dayfacts/internal/session"
	"github.com/ppiankov/dayfacts/internal/util"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the fact viewer over HTTP",
	Long: `Serve runs a web page and JSON API for today's facts. Each visitor gets
their own session (category, position) keyed by a cookie; the day itself is
fetched once and shared through the payload cache.

Endpoints:
  GET  /                      fact page
  GET  /api/fact              current view as JSON
  POST /api/next              advance to the next fact
  POST /api/category/{name}   switch category
  GET  /api/sidebars          notable births and deaths
  GET  /healthz               liveness

Example:
  dayfacts serve --addr :8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (default: server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	opts, err := session.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}

	p, err := pipeline.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	srv := server.New(server.Options{
		Addr:       cfg.Server.Addr,
		SessionTTL: cfg.Server.SessionTTL,
		FadeOut:    cfg.Transition.FadeOut,
		FadeIn:     cfg.Transition.FadeIn,
		Session:    opts,
		Loader:     p,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	util.Log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
