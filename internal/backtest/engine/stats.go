package engine

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/tradewind-lab/tradewind-backtest/internal/types"
)

const (
	// maxEquityCurvePoints bounds the downsampled output curve. All
	// internal drawdown and Sharpe math uses the full-resolution curve.
	maxEquityCurvePoints = 100
	// profitFactorSentinel stands in for an infinite profit factor when a
	// run has gross profit but zero gross loss, keeping serialized output
	// free of Inf/NaN.
	profitFactorSentinel = 999999.0
	// stdDevEpsilon floors the return deviation so constant returns do not
	// divide by zero.
	stdDevEpsilon = 1e-9
)

// performance holds the aggregated metrics of one completed run.
type performance struct {
	TotalTrades        int
	WinRate            float64
	NetProfit          float64
	MaxDrawdownPercent float64
	SharpeRatio        float64
	ProfitFactor       float64
}

// aggregatePerformance post-processes the completed equity curve and trade
// log. maxDrawdown is the running fraction tracked during the simulation.
func aggregatePerformance(initialBalance, barsPerYear float64, equityCurve []types.EquityPoint, tradeLog []types.TradeEvent, maxDrawdown float64) performance {
	perf := performance{
		MaxDrawdownPercent: maxDrawdown * 100,
	}

	wins := 0
	grossProfit := decimal.Zero
	grossLoss := decimal.Zero

	for _, event := range tradeLog {
		if event.Side != types.TradeSideSell {
			continue
		}

		perf.TotalTrades++

		pnl := decimal.NewFromFloat(event.PnL)
		if event.PnL > 0 {
			wins++

			grossProfit = grossProfit.Add(pnl)
		} else {
			grossLoss = grossLoss.Add(pnl.Neg())
		}
	}

	if perf.TotalTrades > 0 {
		perf.WinRate = float64(wins) / float64(perf.TotalTrades) * 100
	}

	if len(equityCurve) > 0 {
		perf.NetProfit = equityCurve[len(equityCurve)-1].Equity - initialBalance
	}

	perf.SharpeRatio = sharpeRatio(equityCurve, barsPerYear)
	perf.ProfitFactor = profitFactor(grossProfit, grossLoss)

	return perf
}

// sharpeRatio computes the annualized mean-over-deviation of per-bar
// returns.
func sharpeRatio(equityCurve []types.EquityPoint, barsPerYear float64) float64 {
	if len(equityCurve) < 2 {
		return 0
	}

	returns := make([]float64, 0, len(equityCurve)-1)

	for i := 1; i < len(equityCurve); i++ {
		prev := equityCurve[i-1].Equity
		if prev == 0 {
			returns = append(returns, 0)
			continue
		}

		returns = append(returns, (equityCurve[i].Equity-prev)/prev)
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}

	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}

	stdDev := math.Sqrt(variance / float64(len(returns)))
	if stdDev < stdDevEpsilon {
		stdDev = stdDevEpsilon
	}

	return mean / stdDev * math.Sqrt(barsPerYear)
}

// profitFactor is gross profit over gross loss. Zero loss yields the large
// sentinel when any profit exists, else zero.
func profitFactor(grossProfit, grossLoss decimal.Decimal) float64 {
	if grossLoss.IsZero() {
		if grossProfit.GreaterThan(decimal.Zero) {
			return profitFactorSentinel
		}

		return 0
	}

	factor, _ := grossProfit.Div(grossLoss).Float64()

	return factor
}

// downsampleEquityCurve reduces the curve to at most maxEquityCurvePoints
// with a uniform stride.
func downsampleEquityCurve(curve []types.EquityPoint) []types.EquityPoint {
	if len(curve) <= maxEquityCurvePoints {
		out := make([]types.EquityPoint, len(curve))
		copy(out, curve)

		return out
	}

	stride := (len(curve) + maxEquityCurvePoints - 1) / maxEquityCurvePoints
	out := make([]types.EquityPoint, 0, maxEquityCurvePoints)

	for i := 0; i < len(curve); i += stride {
		out = append(out, curve[i])
	}

	return out
}
