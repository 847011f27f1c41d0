package utils

import "math"

// Round2 rounds x to two decimals, the precision of the numeric(12,2) money
// columns. Subtotal, tax and total are all rounded through here so the stored
// amounts and the snapshot agree.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
