package factorial

import (
	"context"
	"math/big"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/factcalc/internal/progress"
)

// ProductTreeCalculator computes n! as a balanced product of ranges.
// Splitting [2, n] recursively keeps the two operands of every
// multiplication close in size, which lets math/big's subquadratic
// multiplication do far better than the iterative engine's lopsided
// products. Above the parallel threshold the top-level ranges are
// distributed across goroutines.
type ProductTreeCalculator struct{}

// Name returns the algorithm name.
func (ProductTreeCalculator) Name() string { return "Product Tree (Divide & Conquer, Parallel)" }

// CalculateCore computes n! via a balanced range product.
func (ProductTreeCalculator) CalculateCore(ctx context.Context, report progress.ProgressCallback, n int64, opts Options) (*big.Int, error) {
	if n < 2 {
		report(1.0)
		return big.NewInt(1), nil
	}

	if n < opts.parallelThreshold() {
		result, err := rangeProduct(ctx, 2, n)
		if err != nil {
			return nil, err
		}
		report(1.0)
		return result, nil
	}

	return parallelProduct(ctx, report, n)
}

// parallelProduct splits [2, n] into one contiguous chunk per CPU, computes
// each chunk's product concurrently, then reduces the chunk products
// pairwise to keep the final multiplications balanced.
func parallelProduct(ctx context.Context, report progress.ProgressCallback, n int64) (*big.Int, error) {
	numChunks := int64(runtime.GOMAXPROCS(0))
	if numChunks < 2 {
		numChunks = 2
	}
	span := n - 1 // integers in [2, n]
	if numChunks > span {
		numChunks = span
	}

	chunks := make([]*big.Int, numChunks)
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	for i := int64(0); i < numChunks; i++ {
		lo := 2 + i*span/numChunks
		hi := 2 + (i+1)*span/numChunks - 1
		g.Go(func() error {
			product, err := rangeProduct(gctx, lo, hi)
			if err != nil {
				return err
			}
			chunks[int(i)] = product
			report(float64(completed.Add(1)) / float64(numChunks))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Pairwise reduction: operands stay similar in magnitude.
	for len(chunks) > 1 {
		half := (len(chunks) + 1) / 2
		for i := 0; i < len(chunks)/2; i++ {
			chunks[i] = chunks[i].Mul(chunks[2*i], chunks[2*i+1])
		}
		if len(chunks)%2 == 1 {
			chunks[half-1] = chunks[len(chunks)-1]
		}
		chunks = chunks[:half]
	}

	report(1.0)
	return chunks[0], nil
}

// rangeProduct returns the product of all integers in [lo, hi].
// Ranges narrower than productTreeLeafWidth are multiplied sequentially;
// wider ranges split at the midpoint.
func rangeProduct(ctx context.Context, lo, hi int64) (*big.Int, error) {
	if hi < lo {
		return big.NewInt(1), nil
	}
	if hi-lo < productTreeLeafWidth {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result := big.NewInt(lo)
		factor := new(big.Int)
		for i := lo + 1; i <= hi; i++ {
			result.Mul(result, factor.SetInt64(i))
		}
		return result, nil
	}

	mid := lo + (hi-lo)/2
	left, err := rangeProduct(ctx, lo, mid)
	if err != nil {
		return nil, err
	}
	right, err := rangeProduct(ctx, mid+1, hi)
	if err != nil {
		return nil, err
	}
	return left.Mul(left, right), nil
}
