package orchestration

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/factcalc/internal/digitsum"
	apperrors "github.com/agbru/factcalc/internal/errors"
	"github.com/agbru/factcalc/internal/factorial"
	"github.com/agbru/factcalc/internal/progress"
)

// tracerName identifies this package's OpenTelemetry tracer.
const tracerName = "github.com/agbru/factcalc/internal/orchestration"

// CalculationResult encapsulates the outcome of a single factorial
// computation. It serves as a standardized container for results from
// different engines, facilitating comparison and reporting.
type CalculationResult struct {
	// Name is the identifier of the engine used (e.g., "Product Tree").
	Name string
	// Result is the computed factorial. It is nil if an error occurred.
	Result *big.Int
	// Duration is the time taken to complete the calculation.
	Duration time.Duration
	// Err contains any error that occurred during the calculation.
	Err error
}

// Summary is the final result triple of a run: the bound, its factorial,
// and the sum of the factorial's decimal digits, plus provenance.
type Summary struct {
	// N is the factorial bound.
	N int64
	// Factorial is the exact value of N!.
	Factorial *big.Int
	// DigitSum is the sum of the decimal digits of Factorial.
	DigitSum int64
	// Algorithm names the engine that produced Factorial.
	Algorithm string
	// Duration is the factorial computation time.
	Duration time.Duration
}

// ProgressBufferMultiplier defines the buffer size multiplier for the
// progress channel. A larger buffer reduces the likelihood of blocking
// calculation goroutines when the UI is slow to consume updates.
const ProgressBufferMultiplier = 64

// Run executes the full pipeline for a single engine: validate the bound,
// compute the factorial, then reduce it to its digit sum. On any factorial
// failure the digit summation is skipped and the error is returned to the
// caller untouched, so no partial result ever escapes.
//
// Parameters:
//   - ctx: The context for cancellation and deadlines.
//   - calc: The factorial engine to use.
//   - n: The factorial bound.
//   - opts: Engine tuning options.
//
// Returns:
//   - Summary: The (n, factorial, digit sum) triple on success.
//   - error: The engine's error, unmodified, on failure.
func Run(ctx context.Context, calc factorial.Calculator, n int64, opts factorial.Options) (Summary, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "orchestration.Run")
	span.SetAttributes(attribute.Int64("factcalc.n", n), attribute.String("factcalc.algorithm", calc.Name()))
	defer span.End()

	start := time.Now()
	result, err := calc.Calculate(ctx, nil, 0, n, opts)
	if err != nil {
		span.RecordError(err)
		return Summary{}, err
	}

	return Summary{
		N:         n,
		Factorial: result,
		DigitSum:  digitsum.Sum(result),
		Algorithm: calc.Name(),
		Duration:  time.Since(start),
	}, nil
}

// ExecuteCalculations orchestrates the concurrent execution of one or more
// factorial computations.
//
// It manages the lifecycle of calculation goroutines, collects their
// results, and coordinates the display of progress updates.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - calculators: A slice of engines to execute.
//   - n: The factorial bound.
//   - opts: Engine tuning options.
//   - progressReporter: The progress reporter for displaying updates (use
//     NullProgressReporter for quiet mode).
//   - out: The io.Writer for displaying progress updates.
//
// Returns:
//   - []CalculationResult: A slice containing the results of each engine.
func ExecuteCalculations(ctx context.Context, calculators []factorial.Calculator, n int64, opts factorial.Options, progressReporter ProgressReporter, out io.Writer) []CalculationResult {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "orchestration.ExecuteCalculations")
	span.SetAttributes(attribute.Int64("factcalc.n", n), attribute.Int("factcalc.engines", len(calculators)))
	defer span.End()

	g, ctx := errgroup.WithContext(ctx)
	results := make([]CalculationResult, len(calculators))
	progressChan := make(chan progress.ProgressUpdate, len(calculators)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(calculators), out)

	for i, calc := range calculators {
		g.Go(func() error {
			startTime := time.Now()
			res, err := calc.Calculate(ctx, progressChan, i, n, opts)
			results[i] = CalculationResult{
				Name: calc.Name(), Result: res, Duration: time.Since(startTime), Err: err,
			}
			return nil
		})
	}

	g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeComparisonResults processes the results from multiple engines and
// generates a summary report.
//
// It sorts the results by execution time, validates consistency across
// successful calculations, computes the digit sum of the agreed factorial,
// and displays a comparative table.
//
// Parameters:
//   - results: The slice of calculation results to analyze.
//   - n: The factorial bound the results belong to.
//   - presOpts: Presentation options.
//   - presenter: The result presenter for display formatting.
//   - errHandler: The handler converting a global failure to an exit code.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []CalculationResult, n int64, presOpts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	sort.Slice(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValidResult *CalculationResult
	var firstError error
	successCount := 0

	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
		} else {
			successCount++
			if firstValidResult == nil {
				firstValidResult = &results[i]
			}
		}
	}

	if len(results) > 1 {
		presenter.PresentComparisonTable(results, out)
	}

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No engine could complete the calculation.\n")
		return errHandler.HandleError(firstError, 0, out)
	}

	mismatch := false
	for _, res := range results {
		if res.Err == nil && res.Result.Cmp(firstValidResult.Result) != 0 {
			mismatch = true
			break
		}
	}
	if mismatch {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! An inconsistency was detected between the results of the engines.\n")
		return apperrors.ExitErrorMismatch
	}

	summary := Summary{
		N:         n,
		Factorial: firstValidResult.Result,
		DigitSum:  digitsum.Sum(firstValidResult.Result),
		Algorithm: firstValidResult.Name,
		Duration:  firstValidResult.Duration,
	}
	presenter.PresentSummary(summary, presOpts, out)
	return apperrors.ExitSuccess
}

// GetCalculatorsToRun determines which engines should be executed based on
// the selected algorithm key. Returns engines in alphabetically sorted
// order for consistent, reproducible behavior.
//
// Parameters:
//   - algo: The engine key, or "all" for every registered engine.
//   - factory: The factory to retrieve implementations from.
//
// Returns:
//   - []factorial.Calculator: A slice of engines to execute.
func GetCalculatorsToRun(algo string, factory factorial.CalculatorFactory) []factorial.Calculator {
	if algo == "all" {
		return factory.GetAll()
	}
	if calc, err := factory.Get(algo); err == nil {
		return []factorial.Calculator{calc}
	}
	return nil
}
