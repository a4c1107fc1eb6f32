// Package indicator provides pure technical indicator functions over ordered
// price slices. Each function returns the indicator value as of the last
// element of its input. On insufficient history the functions degrade to a
// neutral or zero value instead of returning an error, which lets the
// simulation loop run uniformly from the first bar without special-casing a
// warm-up period (at the cost of low-confidence values early in the series).
package indicator

// RSINeutral is the value RSI degrades to when the input window is too short.
const RSINeutral = 50.0

// RSI computes the Wilder-style Relative Strength Index over the last
// `period` price deltas. Returns RSINeutral when fewer than period+1 points
// are available.
func RSI(prices []float64, period int) float64 {
	if period <= 0 || len(prices) < period+1 {
		return RSINeutral
	}

	window := prices[len(prices)-period-1:]

	avgGain := 0.0
	avgLoss := 0.0

	for i := 1; i < len(window); i++ {
		change := window[i] - window[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss += -change
		}
	}

	avgGain /= float64(period)
	avgLoss /= float64(period)

	// avgLoss is treated as 1 when zero to avoid division by zero.
	if avgLoss == 0 {
		avgLoss = 1
	}

	rs := avgGain / avgLoss

	return 100 - (100 / (1 + rs))
}
