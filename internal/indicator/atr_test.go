package indicator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ATRTestSuite struct {
	suite.Suite
}

func TestATRSuite(t *testing.T) {
	suite.Run(t, new(ATRTestSuite))
}

func (suite *ATRTestSuite) TestInsufficientHistoryReturnsZero() {
	highs := []float64{101, 102}
	lows := []float64{99, 100}
	closes := []float64{100, 101}
	suite.Equal(0.0, ATR(highs, lows, closes, 14))
}

func (suite *ATRTestSuite) TestMismatchedLengthsReturnZero() {
	suite.Equal(0.0, ATR([]float64{1, 2}, []float64{1}, []float64{1, 2}, 1))
}

func (suite *ATRTestSuite) TestFlatMarketHasZeroRange() {
	n := 20
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)

	for i := 0; i < n; i++ {
		highs[i] = 100
		lows[i] = 100
		closes[i] = 100
	}

	suite.Equal(0.0, ATR(highs, lows, closes, 14))
}

func (suite *ATRTestSuite) TestConstantRange() {
	n := 20
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)

	for i := 0; i < n; i++ {
		highs[i] = 101
		lows[i] = 99
		closes[i] = 100
	}

	// high-low = 2 dominates both gap terms every bar.
	suite.InDelta(2.0, ATR(highs, lows, closes, 14), 1e-9)
}

func (suite *ATRTestSuite) TestGapDominatesRange() {
	// Second bar gaps far above the previous close; |high-prevClose|
	// exceeds the bar's own high-low range.
	highs := []float64{101, 111}
	lows := []float64{99, 110}
	closes := []float64{100, 110.5}

	suite.InDelta(11.0, ATR(highs, lows, closes, 1), 1e-9)
}
