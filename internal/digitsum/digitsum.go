// Package digitsum reduces arbitrary-precision integers to the sum of
// their base-10 digits.
package digitsum

import "math/big"

// Sum returns the sum of the decimal digits of |value|. The sign is
// ignored, so Sum(v) == Sum(-v) for every v, and the result is 0 only
// when value is 0.
//
// The value is rendered once through math/big's decimal conversion and
// the digits are accumulated from the string. An int64 accumulator is
// ample: a value would need more than 10^18 digits before the sum could
// overflow, far beyond anything representable in memory.
func Sum(value *big.Int) int64 {
	digits := new(big.Int).Abs(value).String()

	var sum int64
	for _, d := range []byte(digits) {
		sum += int64(d - '0')
	}
	return sum
}
