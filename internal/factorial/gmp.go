//go:build gmp

package factorial

import (
	"context"
	"math/big"

	"github.com/ncw/gmp"

	"github.com/agbru/factcalc/internal/progress"
)

// GMPCalculator computes n! using GNU MP through cgo. GMP's assembly
// multiplication kernels outperform math/big for very large bounds; the
// result is converted back to a math/big integer at the boundary so the
// rest of the application stays cgo-free.
//
// Built only with the "gmp" tag: go build -tags gmp ./...
type GMPCalculator struct{}

// Name returns the algorithm name.
func (GMPCalculator) Name() string { return "Iterative (GMP, cgo)" }

// CalculateCore multiplies 2..n using gmp.Int, then converts to math/big.
func (GMPCalculator) CalculateCore(ctx context.Context, report progress.ProgressCallback, n int64, _ Options) (*big.Int, error) {
	result := gmp.NewInt(1)
	if n >= 2 {
		factor := new(gmp.Int)
		for i := int64(2); i <= n; i++ {
			result.Mul(result, factor.SetInt64(i))

			if i%progressInterval == 0 {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				report(float64(i) / float64(n))
			}
		}
	}

	report(1.0)
	return new(big.Int).SetBytes(result.Bytes()), nil
}

func init() {
	registerCore("gmp", GMPCalculator{})
}
