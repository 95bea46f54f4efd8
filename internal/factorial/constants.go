package factorial

// ─────────────────────────────────────────────────────────────────────────────
// Performance Tuning Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// DefaultParallelThreshold is the default bound above which the
	// product-tree engine splits the range across goroutines. Below this
	// value the whole product fits in a few microseconds of sequential
	// work and goroutine overhead dominates.
	DefaultParallelThreshold = 10_000

	// productTreeLeafWidth is the range width below which the product tree
	// stops recursing and multiplies sequentially. Small leaves keep the
	// operands balanced without drowning in call overhead.
	productTreeLeafWidth = 32

	// progressInterval controls how often the iterative engine reports
	// progress and polls the context, in multiplication steps.
	progressInterval = 1024
)

// ─────────────────────────────────────────────────────────────────────────────
// Size Estimation Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// ln10 converts natural logarithms to decimal digit counts.
	ln10 = 2.302585092994046
)
