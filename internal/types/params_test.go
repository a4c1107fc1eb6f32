package types

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/tradewind-lab/tradewind-backtest/pkg/errors"
)

type ParamsTestSuite struct {
	suite.Suite
}

func TestParamsSuite(t *testing.T) {
	suite.Run(t, new(ParamsTestSuite))
}

func (suite *ParamsTestSuite) TestDefaultsAreValid() {
	params := DefaultStrategyParams()
	suite.NoError(params.Validate())
	suite.Equal(RiskProfileBalanced, params.RiskProfile)
}

func (suite *ParamsTestSuite) TestPeriodBounds() {
	params := DefaultStrategyParams()
	params.RSIPeriod = 0
	suite.Error(params.Validate())

	params = DefaultStrategyParams()
	params.RSIPeriod = 1
	suite.Error(params.Validate())
}

func (suite *ParamsTestSuite) TestFastMustBeShorterThanSlow() {
	params := DefaultStrategyParams()
	params.EMAFastPeriod = 21
	params.EMASlowPeriod = 21

	err := params.Validate()
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
}

func (suite *ParamsTestSuite) TestRateBounds() {
	params := DefaultStrategyParams()
	params.SlippageRate = -0.1
	suite.Error(params.Validate())

	params = DefaultStrategyParams()
	params.FeeRate = 1.0
	suite.Error(params.Validate())

	params = DefaultStrategyParams()
	params.SlippageRate = 0
	params.FeeRate = 0
	suite.NoError(params.Validate())
}

func (suite *ParamsTestSuite) TestThresholdBounds() {
	params := DefaultStrategyParams()
	params.RSIThreshold = 100
	suite.Error(params.Validate())

	params = DefaultStrategyParams()
	params.RSIThreshold = 0
	suite.Error(params.Validate())
}
