package domain

import "math"

// Round2 rounds to two decimal places (minor currency units) using
// round-half-to-even. All prices the system produces go through this so the
// rounding mode stays consistent everywhere.
func Round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
