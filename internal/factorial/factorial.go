// Package factorial provides arbitrary-precision factorial engines.
//
// The package exposes a small Calculator interface implemented by several
// interchangeable engines (sequential iteration, divide-and-conquer product
// tree, and an optional cgo-backed variant). All engines produce the exact
// value of n! as a math/big integer; no floating-point approximation is
// involved at any point, since every decimal digit of the result feeds the
// downstream digit summation.
package factorial

import (
	"context"
	"math"
	"math/big"
	"sync"

	apperrors "github.com/agbru/factcalc/internal/errors"
	"github.com/agbru/factcalc/internal/progress"
)

// Options groups the tunable parameters passed to every engine.
type Options struct {
	// ParallelThreshold is the bound above which engines may split work
	// across goroutines. Zero selects DefaultParallelThreshold.
	ParallelThreshold int
}

// parallelThreshold resolves the effective threshold.
func (o Options) parallelThreshold() int64 {
	if o.ParallelThreshold <= 0 {
		return DefaultParallelThreshold
	}
	return int64(o.ParallelThreshold)
}

// coreCalculator is the internal contract implemented by each algorithm.
// Cores assume the bound has already been validated as non-negative.
type coreCalculator interface {
	// Name returns the human-readable algorithm name.
	Name() string
	// CalculateCore computes n! reporting coarse progress through report.
	CalculateCore(ctx context.Context, report progress.ProgressCallback, n int64, opts Options) (*big.Int, error)
}

// Calculator is the public contract of a factorial engine. Implementations
// validate the bound, forward progress updates, and return the exact value
// of n!.
type Calculator interface {
	// Name returns the human-readable algorithm name.
	Name() string
	// Calculate computes n!.
	//
	// Parameters:
	//   - ctx: Context for cancellation and deadlines.
	//   - progressChan: Optional channel for progress updates (may be nil).
	//   - index: The engine index used to tag progress updates.
	//   - n: The factorial bound. Must be >= 0 or a ValidationError is returned.
	//   - opts: Tuning options.
	Calculate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, index int, n int64, opts Options) (*big.Int, error)
}

// Engine wraps a coreCalculator with bound validation, progress wiring, and
// a memo of the single most recent (n, result) pair. The memo is invisible
// to callers: results handed out are defensive copies, so repeated calls
// with the same bound yield identical but independent values.
type Engine struct {
	core coreCalculator

	mu         sync.Mutex
	lastN      int64
	lastResult *big.Int
}

// NewCalculator wraps a core algorithm into a full Calculator.
func NewCalculator(core coreCalculator) Calculator {
	return &Engine{core: core, lastN: -1}
}

// Name returns the wrapped algorithm's name.
func (e *Engine) Name() string { return e.core.Name() }

// Calculate validates n, consults the memo, and otherwise delegates to the
// core algorithm. A ValidationError is returned for negative bounds; the
// memo is only updated on success.
func (e *Engine) Calculate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, index int, n int64, opts Options) (*big.Int, error) {
	if n < 0 {
		return nil, apperrors.NewInvalidBoundError(n)
	}

	if cached := e.fromMemo(n); cached != nil {
		report(progressChan, index, 1.0)
		return cached, nil
	}

	callback := progress.NoOpCallback
	if progressChan != nil {
		callback = progress.ChannelCallback(progressChan, index)
	}

	result, err := e.core.CalculateCore(ctx, callback, n, opts)
	if err != nil {
		return nil, apperrors.CalculationError{Cause: err}
	}

	e.storeMemo(n, result)
	return result, nil
}

// fromMemo returns a copy of the memoized result for n, or nil.
func (e *Engine) fromMemo(n int64) *big.Int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lastResult != nil && e.lastN == n {
		return new(big.Int).Set(e.lastResult)
	}
	return nil
}

// storeMemo records the most recent (n, result) pair. The stored value is a
// private copy so later caller mutations cannot poison the memo.
func (e *Engine) storeMemo(n int64, result *big.Int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastN = n
	e.lastResult = new(big.Int).Set(result)
}

// report sends a progress update without blocking.
func report(progressChan chan<- progress.ProgressUpdate, index int, value float64) {
	if progressChan == nil {
		return
	}
	select {
	case progressChan <- progress.ProgressUpdate{CalculatorIndex: index, Value: value}:
	default:
	}
}

// EstimateDecimalDigits returns the number of decimal digits of n! without
// computing it, using the log-gamma function. Exact for n <= 1 and accurate
// to the digit for every bound the application accepts.
func EstimateDecimalDigits(n int64) int64 {
	if n <= 1 {
		return 1
	}
	lg, _ := math.Lgamma(float64(n) + 1)
	return int64(lg/ln10) + 1
}
