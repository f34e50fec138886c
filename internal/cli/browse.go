package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ppiankov/dayfacts/internal/pipeline"
	"github.com/ppiankov/dayfacts/internal/tui"
	"github.com/ppiankov/dayfacts/internal/util"
)

var (
	browseDate     string
	browseCategory string
	browseLogFile  string
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse facts interactively in the terminal",
	Long: `Browse opens a full-screen viewer for one day's facts.

Keys:
  n, space, →   next fact
  1-9, tab      switch category
  q, esc        quit

Example:
  dayfacts browse
  dayfacts browse --date 12-25 --category arts`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)

	browseCmd.Flags().StringVar(&browseDate, "date", "", "day to show as MM-DD (default: today)")
	browseCmd.Flags().StringVar(&browseCategory, "category", "", "initial category")
	browseCmd.Flags().StringVar(&browseLogFile, "log-file", "", "write diagnostics to this file while the viewer is open")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	date, err := resolveDate(browseDate)
	if err != nil {
		return err
	}

	sess, err := newSession(cfg, browseCategory)
	if err != nil {
		return err
	}

	p, err := pipeline.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	// stderr would draw over the alt screen
	var logOut io.Writer = io.Discard
	if browseLogFile != "" {
		f, err := os.OpenFile(browseLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer func() { _ = f.Close() }()
		logOut = f
	}
	util.Log.SetOutput(logOut)
	defer util.Log.SetOutput(os.Stderr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := tui.New(ctx, tui.Options{
		Session: sess,
		Loader:  p,
		Date:    date,
		FadeOut: cfg.Transition.FadeOut,
		FadeIn:  cfg.Transition.FadeIn,
	})

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}
