package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ppiankov/dayfacts/internal/pipeline"
	"github.com/ppiankov/dayfacts/internal/render"
	"github.com/ppiankov/dayfacts/internal/session"
)

var (
	todayDate     string
	todayCategory string
	todayCount    int
	todayJSON     string
	todayMD       string
)

// todayCmd represents the today command
var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Print facts for a day",
	Long: `Fetch one day's facts, filter them by category and print the first few
along with notable births and deaths.

Example:
  dayfacts today
  dayfacts today --date 07-20 --category science
  dayfacts today --count 10 --json today.json --md today.md`,
	Args: cobra.NoArgs,
	RunE: runToday,
}

func init() {
	rootCmd.AddCommand(todayCmd)

	todayCmd.Flags().StringVar(&todayDate, "date", "", "day to show as MM-DD (default: today)")
	todayCmd.Flags().StringVar(&todayCategory, "category", "", "category to filter by (see 'dayfacts categories')")
	todayCmd.Flags().IntVar(&todayCount, "count", 0, "number of facts to print (default: selection.top_n)")
	todayCmd.Flags().StringVar(&todayJSON, "json", "", "also write the report as JSON to this path")
	todayCmd.Flags().StringVar(&todayMD, "md", "", "also write the report as Markdown to this path")
}

func runToday(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	date, err := resolveDate(todayDate)
	if err != nil {
		return err
	}

	sess, err := newSession(cfg, todayCategory)
	if err != nil {
		return err
	}

	p, err := pipeline.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// The cause is already on the diagnostic channel
	if err := sess.Load(ctx, p, date); err != nil {
		return errors.New(session.LoadFailedMessage)
	}

	count := todayCount
	if count <= 0 {
		count = cfg.Selection.TopN
	}
	report, err := sess.Report(count)
	if err != nil {
		return err
	}

	renderer := render.NewRenderer(cfg.Output.IncludeFooter)
	if err := renderer.RenderSummary(os.Stdout, report); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if todayJSON != "" {
		if err := renderer.RenderJSON(report, todayJSON); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "✓ JSON report written to %s\n", todayJSON)
	}
	if todayMD != "" {
		if err := renderer.RenderMarkdown(report, todayMD); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "✓ Markdown report written to %s\n", todayMD)
	}

	return nil
}
