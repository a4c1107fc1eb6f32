package engine

import "math"

// Scoring constants. The point values and thresholds are tuned heuristics
// carried over from the production strategy; they are configuration, not
// derived quantities.
const (
	trendBullishPoints    = 2
	rsiOversoldPoints     = 2
	volumeConfirmPoints   = 1
	trendStrengthPoints   = 1
	divergencePoints      = 1
	momentumPoints        = 1
	longTrendPoints       = 1
	losingStreakPenalty   = 1
	losingStreakThreshold = 2

	entryScoreMin = 5
	maxEntryScore = 10

	rsiEntryCeiling = 65.0
	rsiExitExtreme  = 78.0

	volumeConfirmRatio = 0.8
	trendStrengthMin   = 0.5  // percent separation between the EMAs
	longTrendDiscount  = 0.98 // tolerance below the 200-period EMA

	volatilityScale   = 50.0
	volAdjustmentMin  = 0.5
	volAdjustmentMax  = 1.5
	targetVolScale    = 10.0
	strongTrendTarget = 1.2
)

// Progressive stop tightening: as unrealized profit grows past these shares
// of the take-profit target, the stop fraction shrinks by the paired
// multiplier. The largest applicable tightening wins.
var stopTighteningSteps = []struct {
	profitShare    float64
	stopMultiplier float64
}{
	{0.75, 0.35},
	{0.50, 0.50},
	{0.30, 0.70},
}

// IndicatorSnapshot carries the indicator values computed against the candle
// window ending at the current bar. It is the only input the scoring model
// sees besides prior-trade state.
type IndicatorSnapshot struct {
	Close       float64
	Volume      float64
	RSI         float64
	EMAFast     float64
	EMASlow     float64
	EMA3        float64
	EMA5        float64
	EMA200      float64
	ATR         float64
	AvgVolume20 float64
	Divergence  bool
}

// TrendStrength returns the percent separation between the fast and slow EMA.
func (s IndicatorSnapshot) TrendStrength() float64 {
	if s.EMASlow == 0 {
		return 0
	}

	return math.Abs(s.EMAFast-s.EMASlow) / s.EMASlow * 100
}

// EntryScore combines seven independent signals into a 0-10 score.
// A losing streak of two or more trades costs one point, throttling
// re-entry after a drawdown run.
func EntryScore(snap IndicatorSnapshot, rsiThreshold float64, consecutiveLosses int) int {
	score := 0

	if snap.EMAFast > snap.EMASlow {
		score += trendBullishPoints
	}

	if snap.RSI < rsiThreshold {
		score += rsiOversoldPoints
	}

	if snap.Volume > volumeConfirmRatio*snap.AvgVolume20 {
		score += volumeConfirmPoints
	}

	if snap.TrendStrength() > trendStrengthMin {
		score += trendStrengthPoints
	}

	if snap.Divergence {
		score += divergencePoints
	}

	if snap.Close > snap.EMA5 {
		score += momentumPoints
	}

	if snap.Close > longTrendDiscount*snap.EMA200 {
		score += longTrendPoints
	}

	if consecutiveLosses >= losingStreakThreshold {
		score -= losingStreakPenalty
	}

	if score < 0 {
		score = 0
	}

	if score > maxEntryScore {
		score = maxEntryScore
	}

	return score
}

// ShouldEnter reports whether a flat simulation should open a position.
// The RSI gate is independent of the score and must hold simultaneously.
func ShouldEnter(score int, rsi float64) bool {
	return score >= entryScoreMin && rsi < rsiEntryCeiling
}

// VolatilityAdjustment shrinks position size as volatility grows, capped to
// a [0.5x, 1.5x] band. A zero ATR (dead market) resolves to the upper cap.
func VolatilityAdjustment(atr, price float64) float64 {
	if atr <= 0 || price <= 0 {
		return volAdjustmentMax
	}

	adj := 1 / (atr / price * volatilityScale)
	if adj < volAdjustmentMin {
		return volAdjustmentMin
	}

	if adj > volAdjustmentMax {
		return volAdjustmentMax
	}

	return adj
}

// DynamicStopFraction tightens the base stop fraction in three steps as
// unrealized profit approaches the take-profit target.
func DynamicStopFraction(baseStop, unrealizedProfit, targetFraction float64) float64 {
	for _, step := range stopTighteningSteps {
		if unrealizedProfit >= step.profitShare*targetFraction {
			return baseStop * step.stopMultiplier
		}
	}

	return baseStop
}

// ScaledTargetFraction scales the base take-profit fraction up with
// volatility and trend strength.
func ScaledTargetFraction(baseTarget, atr, price float64, strongTrend bool) float64 {
	target := baseTarget
	if price > 0 {
		target *= 1 + atr/price*targetVolScale
	}

	if strongTrend {
		target *= strongTrendTarget
	}

	return target
}

// ExitDecision is the exit branch evaluated while holding a position.
// sellPrice must already include slippage; entryPrice and highestPrice come
// from the open position. It returns true when any exit condition fires:
// stop hit, target hit, trend reversal with bearish momentum, or extreme
// overbought RSI.
func ExitDecision(snap IndicatorSnapshot, sellPrice, entryPrice, highestPrice float64, profile RiskProfile, trailingStop bool) bool {
	unrealizedProfit := 0.0
	if entryPrice > 0 {
		unrealizedProfit = (sellPrice - entryPrice) / entryPrice
	}

	strongTrend := snap.TrendStrength() > trendStrengthMin
	targetFraction := ScaledTargetFraction(profile.TakeProfitFraction, snap.ATR, snap.Close, strongTrend)
	stopFraction := DynamicStopFraction(profile.StopLossFraction, unrealizedProfit, targetFraction)

	stopAnchor := entryPrice
	if trailingStop {
		stopAnchor = highestPrice
	}

	stopPrice := stopAnchor * (1 - stopFraction)
	targetPrice := entryPrice * (1 + targetFraction)

	switch {
	case sellPrice < stopPrice:
		return true
	case sellPrice > targetPrice:
		return true
	case snap.EMAFast < snap.EMASlow && snap.Close < snap.EMA3:
		return true
	case snap.RSI > rsiExitExtreme:
		return true
	default:
		return false
	}
}
