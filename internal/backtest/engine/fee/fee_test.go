package fee

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type FeeTestSuite struct {
	suite.Suite
}

func TestFeeSuite(t *testing.T) {
	suite.Run(t, new(FeeTestSuite))
}

func (suite *FeeTestSuite) TestProportionalFee() {
	model := NewProportionalFee(0.001)
	suite.InDelta(1.0, model.Calculate(1000), 1e-9)
	suite.Equal(0.0, model.Calculate(0))
}

func (suite *FeeTestSuite) TestProportionalFeeNegativeRateClamped() {
	model := NewProportionalFee(-0.5)
	suite.Equal(0.0, model.Calculate(1000))
}

func (suite *FeeTestSuite) TestZeroFee() {
	model := NewZeroFee()
	suite.Equal(0.0, model.Calculate(1000000))
}

func (suite *FeeTestSuite) TestGetFeeModel() {
	suite.IsType(&ProportionalFee{}, GetFeeModel(ModelProportional, 0.001))
	suite.IsType(&ZeroFee{}, GetFeeModel(ModelZero, 0.001))

	// Unknown names resolve to zero fees.
	suite.IsType(&ZeroFee{}, GetFeeModel(ModelName("mystery"), 0.001))
}
