package fee

// ZeroFee charges nothing. Used for frictionless what-if runs.
type ZeroFee struct{}

func NewZeroFee() Model {
	return &ZeroFee{}
}

func (f *ZeroFee) Calculate(notional float64) float64 {
	return 0
}
