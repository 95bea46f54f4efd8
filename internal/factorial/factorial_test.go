package factorial

import (
	"context"
	"math/big"
	"testing"
	"time"

	apperrors "github.com/agbru/factcalc/internal/errors"
	"github.com/agbru/factcalc/internal/progress"
)

// factorial100 is the exact value of 100!, all 158 digits.
const factorial100 = "93326215443944152681699238856266700490715968264381621468592963895217599993229915608941463976156518286253697920827223758251185210916864000000000000000000000000"

// testCores returns one instance of each always-available core algorithm.
func testCores() []coreCalculator {
	return []coreCalculator{
		IterativeCalculator{},
		ProductTreeCalculator{},
	}
}

// calcF computes n! with a fresh Engine around the given core.
func calcF(t *testing.T, core coreCalculator, n int64) (*big.Int, error) {
	t.Helper()
	return NewCalculator(core).Calculate(context.Background(), nil, 0, n, Options{})
}

func TestCalculate_KnownValues(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    int64
		want string
	}{
		{0, "1"},
		{1, "1"},
		{2, "2"},
		{5, "120"},
		{10, "3628800"},
		{20, "2432902008176640000"},
		{100, factorial100},
	}

	for _, core := range testCores() {
		t.Run(core.Name(), func(t *testing.T) {
			t.Parallel()
			for _, tt := range tests {
				got, err := calcF(t, core, tt.n)
				if err != nil {
					t.Fatalf("Calculate(%d) returned error: %v", tt.n, err)
				}
				if got.String() != tt.want {
					t.Errorf("Calculate(%d) = %s, want %s", tt.n, got.String(), tt.want)
				}
			}
		})
	}
}

func TestCalculate_NegativeBound(t *testing.T) {
	t.Parallel()
	for _, core := range testCores() {
		t.Run(core.Name(), func(t *testing.T) {
			t.Parallel()
			for _, n := range []int64{-1, -100} {
				result, err := calcF(t, core, n)
				if err == nil {
					t.Fatalf("Calculate(%d) should fail, got %v", n, result)
				}
				if !apperrors.IsInvalidBound(err) {
					t.Errorf("Calculate(%d) error should be an invalid-bound ValidationError, got %v", n, err)
				}
			}
		})
	}
}

func TestCalculate_ParallelPath(t *testing.T) {
	t.Parallel()
	// Force the product tree through its parallel split and compare
	// against the sequential iterative result.
	opts := Options{ParallelThreshold: 100}
	tree, err := NewCalculator(ProductTreeCalculator{}).Calculate(context.Background(), nil, 0, 2000, opts)
	if err != nil {
		t.Fatalf("parallel product tree failed: %v", err)
	}
	iter, err := calcF(t, IterativeCalculator{}, 2000)
	if err != nil {
		t.Fatalf("iterative failed: %v", err)
	}
	if tree.Cmp(iter) != 0 {
		t.Error("parallel product tree disagrees with iterative result for 2000!")
	}
}

func TestCalculate_Memoization(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(IterativeCalculator{})

	first, err := calc.Calculate(context.Background(), nil, 0, 100, Options{})
	if err != nil {
		t.Fatalf("first Calculate(100) failed: %v", err)
	}
	second, err := calc.Calculate(context.Background(), nil, 0, 100, Options{})
	if err != nil {
		t.Fatalf("second Calculate(100) failed: %v", err)
	}

	if first.Cmp(second) != 0 {
		t.Error("repeated Calculate(100) must yield identical results")
	}
	if first == second {
		t.Error("memo must hand out independent copies, not the cached pointer")
	}

	// Mutating a returned value must not poison later results.
	second.SetInt64(42)
	third, err := calc.Calculate(context.Background(), nil, 0, 100, Options{})
	if err != nil {
		t.Fatalf("third Calculate(100) failed: %v", err)
	}
	if third.Cmp(first) != 0 {
		t.Error("caller mutation leaked into the memo")
	}
}

func TestCalculate_ContextCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, core := range testCores() {
		t.Run(core.Name(), func(t *testing.T) {
			t.Parallel()
			// Large enough that the engine is guaranteed to poll the
			// context before finishing.
			_, err := NewCalculator(core).Calculate(ctx, nil, 0, 500_000, Options{})
			if err == nil {
				t.Fatal("expected cancellation error")
			}
			if !apperrors.IsContextError(err) {
				t.Errorf("expected context error in chain, got %v", err)
			}
		})
	}
}

func TestCalculate_ProgressUpdates(t *testing.T) {
	t.Parallel()
	progressChan := make(chan progress.ProgressUpdate, 256)
	calc := NewCalculator(IterativeCalculator{})

	if _, err := calc.Calculate(context.Background(), progressChan, 7, 10_000, Options{}); err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	close(progressChan)

	var updates []progress.ProgressUpdate
	for u := range progressChan {
		updates = append(updates, u)
	}
	if len(updates) == 0 {
		t.Fatal("expected at least one progress update")
	}
	for _, u := range updates {
		if u.CalculatorIndex != 7 {
			t.Errorf("update tagged with index %d, want 7", u.CalculatorIndex)
		}
		if u.Value < 0 || u.Value > 1 {
			t.Errorf("progress value %v outside [0, 1]", u.Value)
		}
	}
	if last := updates[len(updates)-1]; last.Value != 1.0 {
		t.Errorf("final progress = %v, want 1.0", last.Value)
	}
}

func TestCalculate_Deadline(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	_, err := NewCalculator(ProductTreeCalculator{}).Calculate(ctx, nil, 0, 1_000_000, Options{})
	if err == nil {
		t.Fatal("expected deadline error")
	}
}

func TestEstimateDecimalDigits(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    int64
		want int64
	}{
		{0, 1},
		{1, 1},
		{5, 3},   // 120
		{10, 7},  // 3628800
		{100, 158},
	}
	for _, tt := range tests {
		if got := EstimateDecimalDigits(tt.n); got != tt.want {
			t.Errorf("EstimateDecimalDigits(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestDefaultFactory(t *testing.T) {
	t.Parallel()
	factory := NewDefaultFactory()

	t.Run("List is sorted and complete", func(t *testing.T) {
		t.Parallel()
		keys := factory.List()
		if len(keys) < 2 {
			t.Fatalf("expected at least 2 registered engines, got %v", keys)
		}
		for i := 1; i < len(keys); i++ {
			if keys[i-1] >= keys[i] {
				t.Errorf("List() not sorted: %v", keys)
			}
		}
	})

	t.Run("Get returns registered engines", func(t *testing.T) {
		t.Parallel()
		for _, key := range factory.List() {
			if _, err := factory.Get(key); err != nil {
				t.Errorf("Get(%q) failed: %v", key, err)
			}
		}
	})

	t.Run("Get rejects unknown keys", func(t *testing.T) {
		t.Parallel()
		if _, err := factory.Get("stirling"); err == nil {
			t.Error("Get of unknown key should fail")
		}
	})

	t.Run("GetAll matches List order", func(t *testing.T) {
		t.Parallel()
		all := factory.GetAll()
		if len(all) != len(factory.List()) {
			t.Errorf("GetAll returned %d calculators, List has %d keys", len(all), len(factory.List()))
		}
	})

	t.Run("independent factories do not share memo state", func(t *testing.T) {
		t.Parallel()
		a := NewDefaultFactory()
		b := NewDefaultFactory()
		calcA, _ := a.Get("iterative")
		calcB, _ := b.Get("iterative")
		if calcA == calcB {
			t.Error("factories must own distinct calculator instances")
		}
	})
}
