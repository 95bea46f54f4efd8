// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic.
//     Examples: [DisplayHeader], [DisplaySummary], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatValue].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agbru/factcalc/internal/format"
	"github.com/agbru/factcalc/internal/orchestration"
)

// AppTitle is the banner printed at the top of every standard run.
const AppTitle = "Factorial Digit Sum Calculator"

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet mode suppresses everything but the digit sum.
	Quiet bool
	// Verbose shows timing and size statistics.
	Verbose bool
	// ShowValue enables the full decimal expansion in the output.
	ShowValue bool
}

// DisplayHeader prints the application title, an underline of equal length,
// and a blank line.
func DisplayHeader(out io.Writer) {
	fmt.Fprintln(out, AppTitle)
	fmt.Fprintln(out, strings.Repeat("=", len(AppTitle)))
	fmt.Fprintln(out)
}

// DisplayCalculationStart announces that the computation for n! is beginning.
func DisplayCalculationStart(n int64, out io.Writer) {
	fmt.Fprintf(out, "Calculating %d!...\n", n)
}

// DisplaySummary prints the factorial value and its digit sum.
//
// Parameters:
//   - summary: The completed result triple.
//   - opts: Presentation options (full value vs truncated, verbose stats).
//   - out: The output writer.
func DisplaySummary(summary orchestration.Summary, opts orchestration.PresentationOptions, out io.Writer) {
	fmt.Fprintf(out, "%d! = %s\n", summary.N, FormatValue(summary.Factorial.String(), opts.ShowValue))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Sum of digits in %d!: %d\n", summary.N, summary.DigitSum)

	if opts.Verbose {
		digits := len(summary.Factorial.String())
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Algorithm: %s\n", summary.Algorithm)
		fmt.Fprintf(out, "Digits:    %d\n", digits)
		fmt.Fprintf(out, "Bits:      %d\n", summary.Factorial.BitLen())
		fmt.Fprintf(out, "Duration:  %s\n", format.FormatExecutionDuration(summary.Duration))
	}
}

// DisplayQuietResult outputs only the digit sum, one line, suitable for
// scripting.
func DisplayQuietResult(summary orchestration.Summary, out io.Writer) {
	fmt.Fprintln(out, summary.DigitSum)
}

// FormatValue renders a decimal expansion for terminal display. When full is
// false and the value exceeds TruncationLimit digits, only the leading and
// trailing DisplayEdges digits are shown around an ellipsis marker.
func FormatValue(value string, full bool) string {
	if full || len(value) <= TruncationLimit {
		return value
	}
	omitted := len(value) - 2*DisplayEdges
	return fmt.Sprintf("%s...(%d digits omitted)...%s",
		value[:DisplayEdges], omitted, value[len(value)-DisplayEdges:])
}

// WriteResultToFile writes a result triple to a file with a metadata header.
//
// Parameters:
//   - summary: The completed result triple.
//   - cfg: Output configuration; cfg.OutputFile must be non-empty.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(summary orchestration.Summary, cfg OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(cfg.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# Factorial Digit Sum Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Algorithm: %s\n", summary.Algorithm)
	fmt.Fprintf(file, "# Duration: %s\n", summary.Duration)
	fmt.Fprintf(file, "# N: %d\n", summary.N)
	fmt.Fprintf(file, "# Digits: %d\n", len(summary.Factorial.String()))
	fmt.Fprintf(file, "\n")
	fmt.Fprintf(file, "%d! =\n%s\n", summary.N, summary.Factorial.String())
	fmt.Fprintf(file, "\nSum of digits in %d!: %d\n", summary.N, summary.DigitSum)

	return nil
}
