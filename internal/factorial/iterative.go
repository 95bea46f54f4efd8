package factorial

import (
	"context"
	"math/big"

	"github.com/agbru/factcalc/internal/progress"
)

// IterativeCalculator computes n! by sequential accumulation: the running
// product is multiplied by each integer from 2 to n in turn. This is the
// reference algorithm — O(n) big multiplications with one steadily growing
// operand — and the baseline the other engines are checked against.
type IterativeCalculator struct{}

// Name returns the algorithm name.
func (IterativeCalculator) Name() string { return "Iterative (O(n), Sequential)" }

// CalculateCore multiplies 2..n into an accumulator, polling the context and
// reporting progress every progressInterval steps.
func (IterativeCalculator) CalculateCore(ctx context.Context, report progress.ProgressCallback, n int64, _ Options) (*big.Int, error) {
	result := big.NewInt(1)
	if n < 2 {
		report(1.0)
		return result, nil
	}

	factor := new(big.Int)
	for i := int64(2); i <= n; i++ {
		result.Mul(result, factor.SetInt64(i))

		if i%progressInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			report(float64(i) / float64(n))
		}
	}

	report(1.0)
	return result, nil
}
