package indicator

// EMA computes the exponential moving average of the given slice with
// smoothing constant k = 2/(period+1), seeded with the first element.
// Callers must pass a slice whose first element is an acceptable seed,
// typically the oldest point in the window of interest.
func EMA(prices []float64, period int) float64 {
	if len(prices) == 0 {
		return 0
	}

	if period <= 0 {
		return prices[len(prices)-1]
	}

	k := 2.0 / (float64(period) + 1.0)
	ema := prices[0]

	for i := 1; i < len(prices); i++ {
		ema = prices[i]*k + ema*(1-k)
	}

	return ema
}
