package fee

// ProportionalFee charges a fixed fraction of the fill notional, matching
// the taker fee schedule of most crypto spot exchanges.
type ProportionalFee struct {
	rate float64
}

func NewProportionalFee(rate float64) Model {
	if rate < 0 {
		rate = 0
	}

	return &ProportionalFee{rate: rate}
}

func (f *ProportionalFee) Calculate(notional float64) float64 {
	return notional * f.rate
}
