package indicator

// divergenceWindow is the number of trailing points compared for divergence.
const divergenceWindow = 10

// Tuned heuristic constants for the divergence test. Preserved as-is; their
// exact values are part of the strategy's observed behavior.
const (
	divergencePriceTolerance = 1.01 // equal-or-lower price low within 1%
	divergenceRSISeparation  = 1.05 // RSI higher low must be at least 5% above
	divergenceRSICeiling     = 40.0 // the higher RSI low must stay oversold
)

// DetectBullishDivergence compares the minimum price and minimum RSI in the
// first half vs the second half of the trailing 10-point window. It signals
// divergence when price makes an equal-or-lower low (within 1%) while RSI
// makes a meaningfully higher low (>=5%) that is still below 40, ruling out
// spurious signals in strongly bullish regimes. Returns false when fewer
// than 10 points are available.
func DetectBullishDivergence(prices, rsiValues []float64) bool {
	if len(prices) < divergenceWindow || len(rsiValues) < divergenceWindow {
		return false
	}

	prices = prices[len(prices)-divergenceWindow:]
	rsiValues = rsiValues[len(rsiValues)-divergenceWindow:]

	half := divergenceWindow / 2
	priceLowFirst := minOf(prices[:half])
	priceLowSecond := minOf(prices[half:])
	rsiLowFirst := minOf(rsiValues[:half])
	rsiLowSecond := minOf(rsiValues[half:])

	priceLowerLow := priceLowSecond <= priceLowFirst*divergencePriceTolerance
	// Strictly greater: a flat RSI floor is not a higher low.
	rsiHigherLow := rsiLowSecond > rsiLowFirst*divergenceRSISeparation

	return priceLowerLow && rsiHigherLow && rsiLowSecond < divergenceRSICeiling
}

func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}

	return m
}
