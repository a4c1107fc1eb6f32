package types

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/tradewind-lab/tradewind-backtest/pkg/errors"
)

type MarketTestSuite struct {
	suite.Suite
}

func TestMarketSuite(t *testing.T) {
	suite.Run(t, new(MarketTestSuite))
}

func validCandle(t time.Time) Candle {
	return Candle{
		Symbol: "BTCUSDT",
		Time:   t,
		Open:   100,
		High:   105,
		Low:    98,
		Close:  102,
		Volume: 1500,
	}
}

func (suite *MarketTestSuite) TestValidCandle() {
	candle := validCandle(time.Now())
	suite.NoError(candle.Validate())
}

func (suite *MarketTestSuite) TestNonFinitePriceRejected() {
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 0, -5} {
		candle := validCandle(time.Now())
		candle.Close = bad

		err := candle.Validate()
		suite.Require().Error(err)
		suite.True(errors.HasCode(err, errors.ErrCodeInvalidCandle))
	}
}

func (suite *MarketTestSuite) TestNonPositiveVolumeRejected() {
	candle := validCandle(time.Now())
	candle.Volume = 0
	suite.Error(candle.Validate())

	candle.Volume = -1
	suite.Error(candle.Validate())
}

func (suite *MarketTestSuite) TestSeriesOrdering() {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	series := []Candle{
		validCandle(start),
		validCandle(start.Add(time.Hour)),
		validCandle(start.Add(2 * time.Hour)),
	}

	suite.NoError(ValidateCandleSeries(series))

	// Duplicate timestamp breaks strict ordering.
	series[2].Time = series[1].Time
	err := ValidateCandleSeries(series)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidTimeOrder))
}

func (suite *MarketTestSuite) TestEmptySeriesIsOrdered() {
	suite.NoError(ValidateCandleSeries(nil))
}
