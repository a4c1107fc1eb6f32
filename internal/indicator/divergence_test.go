package indicator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type DivergenceTestSuite struct {
	suite.Suite
}

func TestDivergenceSuite(t *testing.T) {
	suite.Run(t, new(DivergenceTestSuite))
}

func (suite *DivergenceTestSuite) TestInsufficientPoints() {
	prices := []float64{100, 99, 98, 97, 96, 95, 94, 93, 92}
	rsi := []float64{30, 29, 28, 27, 26, 27, 28, 29, 30}
	suite.False(DetectBullishDivergence(prices, rsi))
}

func (suite *DivergenceTestSuite) TestClassicBullishDivergence() {
	// Price makes a lower low while RSI makes a clearly higher low that is
	// still in oversold territory.
	prices := []float64{100, 98, 96, 95, 97, 96, 95, 94.5, 94, 95}
	rsi := []float64{35, 30, 25, 24, 28, 30, 29, 31, 30, 32}
	suite.True(DetectBullishDivergence(prices, rsi))
}

func (suite *DivergenceTestSuite) TestNoDivergenceWhenRSINotHigher() {
	// RSI keeps making lower lows alongside price.
	prices := []float64{100, 98, 96, 95, 97, 96, 95, 94.5, 94, 95}
	rsi := []float64{35, 30, 25, 24, 28, 23, 22, 21, 20, 22}
	suite.False(DetectBullishDivergence(prices, rsi))
}

func (suite *DivergenceTestSuite) TestNoDivergenceAboveOversoldCeiling() {
	// The higher RSI low sits above 40, a strongly bullish regime; the
	// signal is suppressed.
	prices := []float64{100, 98, 96, 95, 97, 96, 95, 94.5, 94, 95}
	rsi := []float64{40, 38, 36, 35, 39, 45, 44, 46, 45, 47}
	suite.False(DetectBullishDivergence(prices, rsi))
}

func (suite *DivergenceTestSuite) TestNoDivergenceWhenPriceRallies() {
	// Second-half price low is more than 1% above the first-half low.
	prices := []float64{100, 98, 96, 95, 97, 99, 100, 101, 102, 103}
	rsi := []float64{35, 30, 25, 24, 28, 30, 29, 31, 30, 32}
	suite.False(DetectBullishDivergence(prices, rsi))
}

func (suite *DivergenceTestSuite) TestFlatSeriesIsNotDivergence() {
	prices := make([]float64, 10)
	rsi := make([]float64, 10)

	for i := range prices {
		prices[i] = 100
		rsi[i] = 0
	}

	suite.False(DetectBullishDivergence(prices, rsi))
}

func (suite *DivergenceTestSuite) TestUsesTrailingWindowOnly() {
	// Older points outside the trailing 10 must not affect the decision.
	prices := []float64{1, 1, 100, 98, 96, 95, 97, 96, 95, 94.5, 94, 95}
	rsi := []float64{99, 99, 35, 30, 25, 24, 28, 30, 29, 31, 30, 32}
	suite.True(DetectBullishDivergence(prices, rsi))
}
