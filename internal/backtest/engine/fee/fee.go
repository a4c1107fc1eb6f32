// Package fee provides the fee models the simulation applies to fills.
package fee

// Model calculates the fee in quote currency for a fill of the given
// notional value.
type Model interface {
	Calculate(notional float64) float64
}

type ModelName string

const (
	ModelProportional ModelName = "proportional"
	ModelZero         ModelName = "zero"
)

var AllModels = []any{
	ModelProportional,
	ModelZero,
}

// GetFeeModel returns the fee model for the given name. The rate only
// applies to the proportional model. Unknown names resolve to zero fees.
func GetFeeModel(name ModelName, rate float64) Model {
	switch name {
	case ModelProportional:
		return NewProportionalFee(rate)
	case ModelZero:
		return NewZeroFee()
	default:
		return NewZeroFee()
	}
}
