package tui

import (
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/factcalc/internal/cli"
	apperrors "github.com/agbru/factcalc/internal/errors"
	"github.com/agbru/factcalc/internal/orchestration"
	"github.com/agbru/factcalc/internal/progress"
)

// Messages exchanged between the calculation goroutines and the TUI.
type (
	// ProgressMsg carries an aggregated progress update.
	ProgressMsg struct {
		CalculatorIndex int
		Value           float64
		Average         float64
	}

	// ProgressDoneMsg signals that the progress channel has been closed.
	ProgressDoneMsg struct{}

	// ComparisonResultsMsg carries the per-engine timing results.
	ComparisonResultsMsg struct {
		Results []orchestration.CalculationResult
	}

	// SummaryMsg carries the final factorial and digit sum.
	SummaryMsg struct {
		Summary orchestration.Summary
	}

	// ErrorMsg carries a fatal calculation error.
	ErrorMsg struct {
		Err      error
		Duration time.Duration
	}

	// CalculationCompleteMsg signals the end of a calculation run.
	CalculationCompleteMsg struct {
		ExitCode   int
		Generation uint64
	}

	// ContextCancelledMsg signals that the session context was canceled.
	ContextCancelledMsg struct {
		Err        error
		Generation uint64
	}

	// TickMsg drives the periodic refresh.
	TickMsg time.Time

	// SysStatsMsg carries a system load sample.
	SysStatsMsg struct {
		CPUPercent float64
		MemPercent float64
	}
)

// programRef is a shared reference to the tea.Program. Because bubbletea
// copies the model on every Update, we need a pointer that survives copies so
// the bridge goroutines can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter implements orchestration.ProgressReporter. It drains
// the progress channel and forwards aggregated updates as bubbletea messages.
type TUIProgressReporter struct {
	ref *programRef
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress drains the progress channel and sends ProgressMsg to the TUI.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, _ io.Writer) {
	defer wg.Done()

	state := cli.NewProgressState(numCalculators)
	for update := range progressChan {
		state.Update(update.CalculatorIndex, update.Value)
		t.ref.Send(ProgressMsg{
			CalculatorIndex: update.CalculatorIndex,
			Value:           update.Value,
			Average:         state.CalculateAverage(),
		})
	}
	t.ref.Send(ProgressDoneMsg{})
}

// TUIResultPresenter implements orchestration.ResultPresenter and
// orchestration.ErrorHandler. It sends result messages to the TUI instead of
// writing to stdout.
type TUIResultPresenter struct {
	ref *programRef
}

var (
	_ orchestration.ResultPresenter = (*TUIResultPresenter)(nil)
	_ orchestration.ErrorHandler    = (*TUIResultPresenter)(nil)
)

// PresentComparisonTable sends the per-engine results to the TUI.
func (t *TUIResultPresenter) PresentComparisonTable(results []orchestration.CalculationResult, _ io.Writer) {
	t.ref.Send(ComparisonResultsMsg{Results: results})
}

// PresentSummary sends the final summary to the TUI.
func (t *TUIResultPresenter) PresentSummary(summary orchestration.Summary, _ orchestration.PresentationOptions, _ io.Writer) {
	t.ref.Send(SummaryMsg{Summary: summary})
}

// HandleError sends an error message to the TUI and returns the exit code.
func (t *TUIResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	t.ref.Send(ErrorMsg{Err: err, Duration: duration})
	return apperrors.HandleCalculationError(err, duration, io.Discard)
}
