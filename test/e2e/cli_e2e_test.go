package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// buildBinary compiles the factcalc binary into a temp directory.
func buildBinary(t *testing.T) string {
	t.Helper()

	binName := "factcalc"
	if runtime.GOOS == "windows" {
		binName = "factcalc.exe"
	}
	binPath := filepath.Join(t.TempDir(), binName)

	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/factcalc")
	cmd.Dir = "../.." // module root relative to test/e2e
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to build factcalc: %v\n%s", err, out)
	}
	return binPath
}

func TestCLI_E2E(t *testing.T) {
	binPath := buildBinary(t)

	tests := []struct {
		name     string
		args     []string
		wantOut  []string // substring matches
		wantCode int
	}{
		{
			name: "default run computes 100 factorial",
			args: nil,
			wantOut: []string{
				"Factorial Digit Sum Calculator",
				"==============================",
				"Calculating 100!...",
				"100! = 93326215443944152681",
				"Sum of digits in 100!: 648",
			},
			wantCode: 0,
		},
		{
			name:     "small bound",
			args:     []string{"-n", "5"},
			wantOut:  []string{"5! = 120", "Sum of digits in 5!: 3"},
			wantCode: 0,
		},
		{
			name:     "zero bound",
			args:     []string{"-n", "0"},
			wantOut:  []string{"0! = 1", "Sum of digits in 0!: 1"},
			wantCode: 0,
		},
		{
			name:     "quiet mode prints only the digit sum",
			args:     []string{"--quiet", "-n", "100"},
			wantOut:  []string{"648"},
			wantCode: 0,
		},
		{
			name:     "comparison mode",
			args:     []string{"-n", "500", "--algo", "all"},
			wantOut:  []string{"Iterative", "Product Tree", "Sum of digits in 500!"},
			wantCode: 0,
		},
		{
			name:     "negative bound fails with an error",
			args:     []string{"-n", "-3"},
			wantOut:  []string{"Error:"},
			wantCode: 4,
		},
		{
			name:     "unknown algorithm fails at parse",
			args:     []string{"--algo", "bogus"},
			wantOut:  []string{"Error:", "unknown algorithm"},
			wantCode: 4,
		},
		{
			name:     "non-positive timeout fails at parse",
			args:     []string{"--timeout", "0s"},
			wantOut:  []string{"Error:", "timeout must be positive"},
			wantCode: 4,
		},
		{
			name:     "help",
			args:     []string{"--help"},
			wantOut:  []string{"-algo"},
			wantCode: 0,
		},
		{
			name:     "version flag",
			args:     []string{"--version"},
			wantOut:  []string{"factcalc version"},
			wantCode: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			output, err := cmd.CombinedOutput()
			outStr := string(output)

			if tt.wantCode == 0 {
				if err != nil {
					t.Errorf("command failed unexpectedly: %v\noutput:\n%s", err, outStr)
				}
			} else {
				if err == nil {
					t.Errorf("expected a non-zero exit code\noutput:\n%s", outStr)
				} else if exitErr, ok := err.(*exec.ExitError); ok {
					if exitErr.ExitCode() != tt.wantCode {
						t.Errorf("exit code = %d, want %d\noutput:\n%s",
							exitErr.ExitCode(), tt.wantCode, outStr)
					}
				}
			}

			for _, want := range tt.wantOut {
				if !strings.Contains(outStr, want) {
					t.Errorf("output missing %q:\n%s", want, outStr)
				}
			}
		})
	}
}

// TestCLI_E2E_FailureSkipsDigitSum verifies that the digit-sum line is never
// printed when the calculation fails.
func TestCLI_E2E_FailureSkipsDigitSum(t *testing.T) {
	binPath := buildBinary(t)

	cmd := exec.Command(binPath, "-n", "-1")
	cmd.Env = append(os.Environ(), "NO_COLOR=1")
	output, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatal("negative bound should fail")
	}
	if strings.Contains(string(output), "Sum of digits") {
		t.Errorf("digit sum must not appear on failure:\n%s", output)
	}
}

// TestCLI_E2E_EnvOverride verifies FACTCALC_N is honored when the flag is
// absent.
func TestCLI_E2E_EnvOverride(t *testing.T) {
	binPath := buildBinary(t)

	cmd := exec.Command(binPath, "--quiet")
	cmd.Env = append(os.Environ(), "NO_COLOR=1", "FACTCALC_N=5")
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("command failed: %v\n%s", err, output)
	}
	if got := strings.TrimSpace(string(output)); got != "3" {
		t.Errorf("quiet output = %q, want %q", got, "3")
	}
}
