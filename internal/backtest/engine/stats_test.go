package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/tradewind-lab/tradewind-backtest/internal/types"
)

type StatsTestSuite struct {
	suite.Suite
}

func TestStatsSuite(t *testing.T) {
	suite.Run(t, new(StatsTestSuite))
}

func tradeAt(side types.TradeSide, pnl float64) types.TradeEvent {
	return types.TradeEvent{Time: time.Now(), Side: side, Price: 100, Quantity: 1, PnL: pnl}
}

func (suite *StatsTestSuite) TestNoTrades() {
	curve := []types.EquityPoint{
		{Time: time.Now(), Equity: 1000},
		{Time: time.Now().Add(time.Hour), Equity: 1000},
	}

	perf := aggregatePerformance(1000, DefaultBarsPerYear, curve, nil, 0)
	suite.Equal(0, perf.TotalTrades)
	suite.Equal(0.0, perf.WinRate)
	suite.Equal(0.0, perf.NetProfit)
	suite.Equal(0.0, perf.ProfitFactor)
	suite.Equal(0.0, perf.SharpeRatio)
}

func (suite *StatsTestSuite) TestWinRateCountsOnlyClosedTrades() {
	log := []types.TradeEvent{
		tradeAt(types.TradeSideBuy, 0),
		tradeAt(types.TradeSideSell, 10),
		tradeAt(types.TradeSideBuy, 0),
		tradeAt(types.TradeSideSell, -5),
		tradeAt(types.TradeSideBuy, 0),
		tradeAt(types.TradeSideSell, 20),
	}

	perf := aggregatePerformance(1000, DefaultBarsPerYear, nil, log, 0)
	suite.Equal(3, perf.TotalTrades)
	suite.InDelta(2.0/3.0*100, perf.WinRate, 1e-9)
	suite.InDelta(30.0/5.0, perf.ProfitFactor, 1e-9)
}

func (suite *StatsTestSuite) TestProfitFactorSentinelOnZeroLoss() {
	log := []types.TradeEvent{
		tradeAt(types.TradeSideBuy, 0),
		tradeAt(types.TradeSideSell, 10),
	}

	perf := aggregatePerformance(1000, DefaultBarsPerYear, nil, log, 0)
	suite.GreaterOrEqual(perf.ProfitFactor, 10.0)
	suite.Equal(profitFactorSentinel, perf.ProfitFactor)
}

func (suite *StatsTestSuite) TestProfitFactorZeroWhenNoProfitNoLoss() {
	suite.Equal(0.0, profitFactor(decimal.Zero, decimal.Zero))
}

func (suite *StatsTestSuite) TestNetProfitFromFinalEquity() {
	curve := []types.EquityPoint{
		{Time: time.Now(), Equity: 1000},
		{Time: time.Now().Add(time.Hour), Equity: 1080},
	}

	perf := aggregatePerformance(1000, DefaultBarsPerYear, curve, nil, 0.12)
	suite.InDelta(80.0, perf.NetProfit, 1e-9)
	suite.InDelta(12.0, perf.MaxDrawdownPercent, 1e-9)
}

func (suite *StatsTestSuite) TestSharpeZeroOnConstantEquity() {
	curve := make([]types.EquityPoint, 10)
	for i := range curve {
		curve[i] = types.EquityPoint{Time: time.Now().Add(time.Duration(i) * time.Hour), Equity: 1000}
	}

	suite.Equal(0.0, sharpeRatio(curve, DefaultBarsPerYear))
}

func (suite *StatsTestSuite) TestSharpePositiveOnSteadyGrowth() {
	curve := make([]types.EquityPoint, 50)
	equity := 1000.0

	for i := range curve {
		curve[i] = types.EquityPoint{Time: time.Now().Add(time.Duration(i) * time.Hour), Equity: equity}
		equity *= 1.001
	}

	suite.Greater(sharpeRatio(curve, DefaultBarsPerYear), 0.0)
}

func (suite *StatsTestSuite) TestDownsampleShortCurveUnchanged() {
	curve := make([]types.EquityPoint, 80)
	for i := range curve {
		curve[i] = types.EquityPoint{Equity: float64(i)}
	}

	out := downsampleEquityCurve(curve)
	suite.Len(out, 80)
	suite.Equal(curve, out)
}

func (suite *StatsTestSuite) TestDownsampleLongCurve() {
	curve := make([]types.EquityPoint, 950)
	for i := range curve {
		curve[i] = types.EquityPoint{Equity: float64(i)}
	}

	out := downsampleEquityCurve(curve)
	suite.LessOrEqual(len(out), maxEquityCurvePoints)
	suite.Equal(0.0, out[0].Equity)

	// Uniform stride keeps ordering.
	for i := 1; i < len(out); i++ {
		suite.Greater(out[i].Equity, out[i-1].Equity)
	}
}
