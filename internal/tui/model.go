// Package tui implements an interactive terminal dashboard for the
// calculator. It runs the same orchestration pipeline as the CLI mode but
// renders progress, per-engine timings, and the final digit sum live.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/factcalc/internal/cli"
	"github.com/agbru/factcalc/internal/config"
	apperrors "github.com/agbru/factcalc/internal/errors"
	"github.com/agbru/factcalc/internal/factorial"
	"github.com/agbru/factcalc/internal/format"
	"github.com/agbru/factcalc/internal/orchestration"
	"github.com/agbru/factcalc/internal/sysmon"
)

const (
	tickInterval  = 500 * time.Millisecond
	tuiBarWidth   = 40
	minPanelWidth = 30
)

// Model is the root bubbletea model.
type Model struct {
	spin   spinner.Model
	keymap KeyMap

	width  int
	height int

	parentCtx context.Context
	ctx       context.Context
	cancel    context.CancelFunc

	calculators []factorial.Calculator
	cfg         config.AppConfig
	version     string
	ref         *programRef

	generation  uint64
	startTime   time.Time
	avgProgress float64
	sys         sysmon.Stats

	results   []orchestration.CalculationResult
	summary   *orchestration.Summary
	runErr    error
	showValue bool
	done      bool
	exitCode  int
}

// NewModel creates a TUI model ready to run the given calculators.
func NewModel(parentCtx context.Context, calculators []factorial.Calculator, cfg config.AppConfig, version string) Model {
	ctx, cancel := context.WithCancel(parentCtx)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = valueStyle

	return Model{
		spin:        sp,
		keymap:      DefaultKeyMap(),
		parentCtx:   parentCtx,
		ctx:         ctx,
		cancel:      cancel,
		calculators: calculators,
		cfg:         cfg,
		version:     version,
		ref:         &programRef{},
		startTime:   time.Now(),
		showValue:   cfg.ShowValue,
		exitCode:    apperrors.ExitSuccess,
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spin.Tick,
		tickCmd(),
		startCalculationCmd(m.ref, m.ctx, m.calculators, m.cfg, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case ProgressMsg:
		m.avgProgress = msg.Average
		return m, nil

	case ProgressDoneMsg:
		m.avgProgress = 1.0
		return m, nil

	case ComparisonResultsMsg:
		m.results = msg.Results
		return m, nil

	case SummaryMsg:
		summary := msg.Summary
		m.summary = &summary
		return m, nil

	case ErrorMsg:
		m.runErr = msg.Err
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		return m, tea.Batch(sampleSysStatsCmd(), tickCmd())

	case SysStatsMsg:
		m.sys = sysmon.Stats{CPUPercent: msg.CPUPercent, MemPercent: msg.MemPercent}
		return m, nil

	case CalculationCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from a previous run
		}
		m.done = true
		m.exitCode = msg.ExitCode
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.ToggleValue):
		m.showValue = !m.showValue
		return m, nil

	case key.Matches(msg, m.keymap.Restart):
		if m.cancel != nil {
			m.cancel()
		}

		m.generation++
		ctx, cancel := context.WithCancel(m.parentCtx)
		m.ctx = ctx
		m.cancel = cancel

		m.startTime = time.Now()
		m.avgProgress = 0
		m.results = nil
		m.summary = nil
		m.runErr = nil
		m.done = false
		m.exitCode = apperrors.ExitSuccess

		return m, tea.Batch(
			m.spin.Tick,
			tickCmd(),
			startCalculationCmd(m.ref, m.ctx, m.calculators, m.cfg, m.generation),
			watchContextCmd(m.ctx, m.generation),
		)
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	var body string
	switch {
	case m.runErr != nil:
		body = m.errorView()
	case m.done && m.summary != nil:
		body = m.summaryView()
	default:
		body = m.progressView()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		panelStyle.Width(m.panelWidth()).Render(body),
		m.footerView(),
	)
}

func (m Model) panelWidth() int {
	w := m.width - 4
	if w < minPanelWidth {
		w = minPanelWidth
	}
	return w
}

func (m Model) headerView() string {
	title := titleStyle.Render(cli.AppTitle)
	version := dimStyle.Render("v" + m.version)
	elapsed := labelStyle.Render(format.FormatExecutionDuration(time.Since(m.startTime).Round(time.Millisecond)))
	return fmt.Sprintf("%s %s  %s", title, version, elapsed)
}

func (m Model) progressView() string {
	bar := renderBar(m.avgProgress, tuiBarWidth)
	lines := []string{
		fmt.Sprintf("%s Calculating %d!...", m.spin.View(), m.cfg.N),
		fmt.Sprintf("%s %3.0f%%", bar, m.avgProgress*100),
	}
	if m.sys.CPUPercent > 0 || m.sys.MemPercent > 0 {
		lines = append(lines, dimStyle.Render(m.sys.String()))
	}
	return strings.Join(lines, "\n")
}

func (m Model) summaryView() string {
	s := m.summary
	lines := []string{
		fmt.Sprintf("%s %s", labelStyle.Render("Algorithm:"), valueStyle.Render(s.Algorithm)),
		fmt.Sprintf("%s %s", labelStyle.Render("Duration: "), valueStyle.Render(format.FormatExecutionDuration(s.Duration))),
		fmt.Sprintf("%s %s", labelStyle.Render("Digits:   "), valueStyle.Render(fmt.Sprintf("%d", len(s.Factorial.String())))),
		fmt.Sprintf("%s %s", labelStyle.Render(fmt.Sprintf("Sum of digits in %d!:", s.N)), successStyle.Render(fmt.Sprintf("%d", s.DigitSum))),
	}
	if m.showValue {
		lines = append(lines, "", fmt.Sprintf("%d! = %s", s.N, cli.FormatValue(s.Factorial.String(), false)))
	}
	if len(m.results) > 1 {
		lines = append(lines, "", labelStyle.Render("Engine timings:"))
		for _, r := range m.results {
			status := successStyle.Render("ok")
			detail := format.FormatExecutionDuration(r.Duration)
			if r.Err != nil {
				status = errorStyle.Render("error")
				detail = r.Err.Error()
			}
			lines = append(lines, fmt.Sprintf("  %-45s %s  %s", r.Name, status, detail))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) errorView() string {
	return errorStyle.Render("Error: " + m.runErr.Error())
}

func (m Model) footerView() string {
	bindings := []struct{ binding key.Binding }{
		{m.keymap.Quit}, {m.keymap.Restart}, {m.keymap.ToggleValue},
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		help := b.binding.Help()
		parts = append(parts, footerKeyStyle.Render(help.Key)+footerDescStyle.Render(" "+help.Desc))
	}
	return " " + strings.Join(parts, "  ")
}

// renderBar draws a styled progress bar of the given width.
func renderBar(progress float64, width int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	filled := int(progress * float64(width))
	return barFilledStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// Run is the public entry point for the TUI mode. It creates the bubbletea
// program, runs it, and returns the exit code.
func Run(ctx context.Context, calculators []factorial.Calculator, cfg config.AppConfig, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, calculators, cfg, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so bridge goroutines can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startCalculationCmd returns a tea.Cmd that launches the orchestration.
func startCalculationCmd(ref *programRef, ctx context.Context, calculators []factorial.Calculator, cfg config.AppConfig, gen uint64) tea.Cmd {
	return func() tea.Msg {
		progressReporter := &TUIProgressReporter{ref: ref}
		presenter := &TUIResultPresenter{ref: ref}

		opts := cfg.ToCalculationOptions()
		results := orchestration.ExecuteCalculations(ctx, calculators, cfg.N, opts, progressReporter, io.Discard)
		presOpts := orchestration.PresentationOptions{
			Verbose:   cfg.Verbose,
			ShowValue: cfg.ShowValue,
		}
		exitCode := orchestration.AnalyzeComparisonResults(results, cfg.N, presOpts, presenter, presenter, io.Discard)

		return CalculationCompleteMsg{ExitCode: exitCode, Generation: gen}
	}
}

// tickCmd returns a command that sends a TickMsg after the refresh interval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleSysStatsCmd reads system-wide CPU and memory stats.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
