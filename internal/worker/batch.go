package worker

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ppiankov/dayfacts/internal/model"
)

// Loader defines the interface for loading one calendar day's facts
type Loader interface {
	Load(ctx context.Context, month, day int) (*model.Day, error)
}

// Date is a month/day pair without a year
type Date struct {
	Month int
	Day   int
}

// String renders the date as MM-DD
func (d Date) String() string {
	return model.DateKey(d.Month, d.Day)
}

// DateJob represents a single day load job
type DateJob struct {
	Index  int
	Date   Date
	Loader Loader
}

// Execute executes the load job
func (j *DateJob) Execute(ctx context.Context) Result {
	day, err := j.Loader.Load(ctx, j.Date.Month, j.Date.Day)
	if err != nil {
		return &DateResult{Index: j.Index, Date: j.Date, Error: err}
	}
	return &DateResult{Index: j.Index, Date: j.Date, Day: day}
}

// DateResult represents the result of a load job
type DateResult struct {
	Index int
	Date  Date
	Day   *model.Day
	Error error
}

// GetError returns the error from the load result
func (r *DateResult) GetError() error {
	return r.Error
}

// BatchProcessor loads multiple days concurrently
type BatchProcessor struct {
	loader      Loader
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(loader Loader, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		loader:      loader,
		concurrency: concurrency,
	}
}

// ErrNotProcessed marks a date the batch gave up on before loading it
var ErrNotProcessed = errors.New("date not processed")

// ProcessDates loads the given dates concurrently. There is exactly one
// result per date, in input order; dates abandoned on cancellation carry
// ErrNotProcessed.
func (b *BatchProcessor) ProcessDates(ctx context.Context, dates []Date) []*DateResult {
	if len(dates) == 0 {
		return []*DateResult{}
	}

	jobs := make([]Job, len(dates))
	for i, d := range dates {
		jobs[i] = &DateJob{Index: i, Date: d, Loader: b.loader}
	}

	pool := NewPool(ctx, b.concurrency)
	dateResults := make([]*DateResult, len(dates))
	for _, result := range pool.Run(jobs) {
		r := result.(*DateResult)
		dateResults[r.Index] = r
	}

	for i, r := range dateResults {
		if r != nil {
			continue
		}
		err := ErrNotProcessed
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w: %w", ErrNotProcessed, ctxErr)
		}
		dateResults[i] = &DateResult{Index: i, Date: dates[i], Error: err}
	}

	return dateResults
}

// ProcessFile reads dates from a file and loads them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*DateResult, error) {
	dates, err := ReadDatesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read dates: %w", err)
	}

	return b.ProcessDates(ctx, dates), nil
}

// ReadDatesFromFile reads dates from a file (one MM-DD or MM/DD per line)
func ReadDatesFromFile(filePath string) ([]Date, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var dates []Date
	seen := make(map[Date]bool)

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		d, err := ParseDate(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		if !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return dates, nil
}

// ParseDate parses "MM-DD" or "MM/DD". February 29 is accepted.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	sep := "-"
	if strings.Contains(s, "/") {
		sep = "/"
	}

	parts := strings.Split(s, sep)
	if len(parts) != 2 {
		return Date{}, fmt.Errorf("invalid date %q: expected MM-DD", s)
	}

	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return Date{}, fmt.Errorf("invalid month in %q", s)
	}
	day, err := strconv.Atoi(parts[1])
	if err != nil {
		return Date{}, fmt.Errorf("invalid day in %q", s)
	}

	if err := ValidateDate(month, day); err != nil {
		return Date{}, err
	}
	return Date{Month: month, Day: day}, nil
}

// ValidateDate checks a month/day pair against a leap-year calendar
func ValidateDate(month, day int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("month %d out of range", month)
	}
	// 2024 is a leap year, so 02-29 round-trips
	t := time.Date(2024, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if day < 1 || t.Month() != time.Month(month) {
		return fmt.Errorf("day %d out of range for month %d", day, month)
	}
	return nil
}
