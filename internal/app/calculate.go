package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/factcalc/internal/cli"
	"github.com/agbru/factcalc/internal/digitsum"
	apperrors "github.com/agbru/factcalc/internal/errors"
	"github.com/agbru/factcalc/internal/format"
	"github.com/agbru/factcalc/internal/metrics"
	"github.com/agbru/factcalc/internal/orchestration"
	"github.com/agbru/factcalc/internal/sysmon"
	"github.com/agbru/factcalc/internal/ui"
)

// runCalculate orchestrates the execution of the CLI calculation command.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	calculatorsToRun := orchestration.GetCalculatorsToRun(a.Config.Algo, a.Factory)

	collector := metrics.NewMemoryCollector()
	var memBefore metrics.MemorySnapshot
	if a.Config.Verbose {
		memBefore = collector.Snapshot()
	}

	if !a.Config.Quiet {
		cli.DisplayHeader(out)
		cli.DisplayCalculationStart(a.Config.N, out)
	}

	// Choose progress reporter based on quiet mode
	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}

	opts := a.Config.ToCalculationOptions()
	results := orchestration.ExecuteCalculations(ctx, calculatorsToRun, a.Config.N, opts, progressReporter, progressOut)

	presOpts := orchestration.PresentationOptions{
		Verbose:   a.Config.Verbose,
		ShowValue: a.Config.ShowValue,
	}
	var presenter orchestration.ResultPresenter = cli.CLIResultPresenter{}
	var errHandler orchestration.ErrorHandler = cli.CLIResultPresenter{}
	if a.Config.Quiet {
		presenter = quietPresenter{}
		errHandler = quietPresenter{}
	}

	exitCode := orchestration.AnalyzeComparisonResults(results, a.Config.N, presOpts, presenter, errHandler, out)
	if exitCode != apperrors.ExitSuccess {
		return exitCode
	}

	if code := a.saveResultIfNeeded(results, out); code != apperrors.ExitSuccess {
		return code
	}

	if a.Config.Verbose && !a.Config.Quiet {
		displayRuntimeStats(memBefore, collector.Snapshot(), out)
	}

	return apperrors.ExitSuccess
}

// quietPresenter reduces output to the digit sum alone while keeping the
// standard analysis path (mismatch detection, error handling).
type quietPresenter struct{}

var (
	_ orchestration.ResultPresenter = quietPresenter{}
	_ orchestration.ErrorHandler    = quietPresenter{}
)

func (quietPresenter) PresentComparisonTable(_ []orchestration.CalculationResult, _ io.Writer) {}

func (quietPresenter) PresentSummary(summary orchestration.Summary, _ orchestration.PresentationOptions, out io.Writer) {
	cli.DisplayQuietResult(summary, out)
}

func (quietPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out)
}

// saveResultIfNeeded writes the fastest successful result to the configured
// output file, if any.
func (a *Application) saveResultIfNeeded(results []orchestration.CalculationResult, out io.Writer) int {
	if a.Config.OutputFile == "" {
		return apperrors.ExitSuccess
	}

	best := findBestResult(results)
	if best == nil {
		return apperrors.ExitSuccess
	}

	summary := orchestration.Summary{
		N:         a.Config.N,
		Factorial: best.Result,
		DigitSum:  digitsum.Sum(best.Result),
		Algorithm: best.Name,
		Duration:  best.Duration,
	}
	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		ShowValue:  a.Config.ShowValue,
	}
	if err := cli.WriteResultToFile(summary, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	if !a.Config.Quiet {
		fmt.Fprintf(out, "\n%sResult saved to: %s%s\n",
			ui.ColorSuccess(), a.Config.OutputFile, ui.ColorReset())
	}
	return apperrors.ExitSuccess
}

// findBestResult returns the fastest successful result, or nil.
func findBestResult(results []orchestration.CalculationResult) *orchestration.CalculationResult {
	var best *orchestration.CalculationResult
	for i := range results {
		if results[i].Err == nil {
			if best == nil || results[i].Duration < best.Duration {
				best = &results[i]
			}
		}
	}
	return best
}

// displayRuntimeStats prints process and system resource usage for verbose
// runs.
func displayRuntimeStats(before, after metrics.MemorySnapshot, out io.Writer) {
	heapDelta := int64(after.HeapAlloc) - int64(before.HeapAlloc)
	if heapDelta < 0 {
		heapDelta = 0
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Heap delta: %s\n", format.FormatBytes(uint64(heapDelta)))
	fmt.Fprintf(out, "GC cycles:  %d\n", after.NumGC-before.NumGC)
	fmt.Fprintf(out, "System:     %s\n", sysmon.Sample().String())
}
