package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/dayfacts/internal/model"
	"github.com/ppiankov/dayfacts/internal/pipeline"
	"github.com/ppiankov/dayfacts/internal/render"
	"github.com/ppiankov/dayfacts/internal/session"
	"github.com/ppiankov/dayfacts/internal/worker"
)

var (
	concurrency   int
	outputDir     string
	batchTimeout  time.Duration
	batchCategory string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Write reports for many days from a file",
	Long: `Batch loads every day listed in a file and writes a JSON and Markdown
report per day:
- Read dates from the input file (one MM-DD or MM/DD per line, # comments)
- Load days in parallel with a configurable worker count
- Write {MM-DD}.json and {MM-DD}.md to the output directory

Example:
  dayfacts batch dates.txt
  dayfacts batch dates.txt --concurrency 8 --output-dir ./reports --category sports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default: concurrency.workers)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./dayfacts-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&batchCategory, "category", "", "category to filter by")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if batchCategory != "" {
		cfg.Selection.Category = batchCategory
	}
	if concurrency <= 0 {
		concurrency = cfg.Concurrency.Workers
	}

	// Fail on a bad category before any fetch
	if _, err := session.OptionsFromConfig(cfg); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  dayfacts batch\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Source:       %s\n", cfg.Source.Kind)
	fmt.Fprintf(os.Stderr, "  Category:     %s\n", cfg.Selection.Category)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	processor := worker.NewBatchProcessor(p, concurrency)
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	renderer := render.NewRenderer(cfg.Output.IncludeFooter)
	successCount := 0
	failureCount := 0

	for _, result := range results {
		if err := writeDayReports(cfg, renderer, result); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Date, err)
			continue
		}
		successCount++
		fmt.Fprintf(os.Stderr, "✓ %s\n", result.Date)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d days\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	if failureCount > 0 && successCount == 0 {
		return fmt.Errorf("all %d days failed", failureCount)
	}
	return nil
}

// writeDayReports renders one loaded day through a fresh session
func writeDayReports(cfg *model.Config, renderer *render.Renderer, result *worker.DateResult) error {
	if result.Error != nil {
		return result.Error
	}

	sess, err := newSession(cfg, "")
	if err != nil {
		return err
	}
	sess.BeginLoad(render.DayDate(time.Now(), result.Date.Month, result.Date.Day))
	sess.Apply(result.Day, nil)

	report, err := sess.Report(cfg.Selection.TopN)
	if err != nil {
		return err
	}

	base := filepath.Join(outputDir, result.Date.String())
	if err := renderer.RenderJSON(report, base+".json"); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	if err := renderer.RenderMarkdown(report, base+".md"); err != nil {
		return fmt.Errorf("write Markdown: %w", err)
	}
	return nil
}
