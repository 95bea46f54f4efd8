//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/factcalc/internal/progress"
)

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	Verbose   bool
	ShowValue bool
}

// ProgressReporter defines the interface for displaying calculation progress.
// This interface decouples the orchestration layer from the presentation
// layer: implementations handle the visual representation (spinner, TUI,
// nothing) while orchestration focuses on coordinating the engines.
type ProgressReporter interface {
	// DisplayProgress starts displaying progress updates from the channel.
	// It should be called in a separate goroutine and will run until
	// progressChan is closed.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving progress updates from engines.
	//   - numCalculators: The number of concurrent engines being tracked.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
		// Drain channel silently
	}
}

// ResultPresenter defines the interface for presenting results. It allows
// different output formats (CLI, TUI, files) without modifying the
// orchestration logic.
type ResultPresenter interface {
	// PresentComparisonTable displays the per-engine comparison table.
	PresentComparisonTable(results []CalculationResult, out io.Writer)

	// PresentSummary displays the final (n, factorial, digit sum) result.
	PresentSummary(summary Summary, opts PresentationOptions, out io.Writer)
}

// ErrorHandler converts terminal calculation errors into exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
