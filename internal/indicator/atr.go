package indicator

import "math"

// ATR computes the average true range over the trailing `period` bars.
// True range = max(high-low, |high-prevClose|, |low-prevClose|).
// Returns 0 on insufficient history.
func ATR(highs, lows, closes []float64, period int) float64 {
	n := len(closes)
	if period <= 0 || n < period+1 || len(highs) != n || len(lows) != n {
		return 0
	}

	sum := 0.0

	for i := n - period; i < n; i++ {
		prevClose := closes[i-1]
		tr := math.Max(highs[i]-lows[i], math.Max(math.Abs(highs[i]-prevClose), math.Abs(lows[i]-prevClose)))
		sum += tr
	}

	return sum / float64(period)
}
