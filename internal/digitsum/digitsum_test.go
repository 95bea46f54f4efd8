package digitsum

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestSum_KnownValues(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		value string
		want  int64
	}{
		{"zero", "0", 0},
		{"single digit", "9", 9},
		{"two digits", "19", 10},
		{"5 factorial", "120", 3},
		{"negative value", "-120", 3},
		{"repeated nines", "999999999999999999999999", 216},
		{
			"100 factorial",
			"93326215443944152681699238856266700490715968264381621468592963895217599993229915608941463976156518286253697920827223758251185210916864000000000000000000000000",
			648,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			value, ok := new(big.Int).SetString(tt.value, 10)
			if !ok {
				t.Fatalf("bad test value %q", tt.value)
			}
			if got := Sum(value); got != tt.want {
				t.Errorf("Sum(%s) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestSum_DoesNotMutateInput(t *testing.T) {
	t.Parallel()
	value := big.NewInt(-12345)
	Sum(value)
	if value.Int64() != -12345 {
		t.Errorf("Sum mutated its input: %v", value)
	}
}

// TestSum_PropertyBased checks the algebraic properties of the digit sum:
// sign independence, non-negativity, and congruence modulo 9 (casting out
// nines: a number and its digit sum leave the same remainder mod 9).
func TestSum_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("Sum(v) == Sum(-v)", prop.ForAll(
		func(v int64) bool {
			return Sum(big.NewInt(v)) == Sum(new(big.Int).Neg(big.NewInt(v)))
		},
		gen.Int64(),
	))

	properties.Property("Sum(v) >= 0, zero only for v == 0", prop.ForAll(
		func(v int64) bool {
			sum := Sum(big.NewInt(v))
			if v == 0 {
				return sum == 0
			}
			return sum > 0
		},
		gen.Int64(),
	))

	properties.Property("Sum(v) ≡ |v| (mod 9)", prop.ForAll(
		func(v int64) bool {
			abs := new(big.Int).Abs(big.NewInt(v))
			mod := new(big.Int).Mod(abs, big.NewInt(9)).Int64()
			return Sum(big.NewInt(v))%9 == mod
		},
		gen.Int64(),
	))

	properties.TestingRun(t)
}
