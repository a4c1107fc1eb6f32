package types

import (
	"math"
	"time"

	"github.com/tradewind-lab/tradewind-backtest/pkg/errors"
)

// Candle represents a single OHLCV bar for a fixed time bucket.
// The engine only ever reads a candle series; it never mutates it.
type Candle struct {
	Symbol string    `yaml:"symbol" json:"symbol" csv:"symbol"`
	Time   time.Time `yaml:"time" json:"time" csv:"time"`
	Open   float64   `yaml:"open" json:"open" csv:"open"`
	High   float64   `yaml:"high" json:"high" csv:"high"`
	Low    float64   `yaml:"low" json:"low" csv:"low"`
	Close  float64   `yaml:"close" json:"close" csv:"close"`
	Volume float64   `yaml:"volume" json:"volume" csv:"volume"`
}

// Validate checks a single candle for malformed values. Non-finite or
// non-positive prices and negative volume fail fast rather than being
// silently sanitized, since that would corrupt the deterministic replay.
func (c *Candle) Validate() error {
	for _, p := range []float64{c.Open, c.High, c.Low, c.Close} {
		if math.IsNaN(p) || math.IsInf(p, 0) || p <= 0 {
			return errors.Newf(errors.ErrCodeInvalidCandle, "candle at %s has non-finite or non-positive price", c.Time)
		}
	}

	if math.IsNaN(c.Volume) || math.IsInf(c.Volume, 0) || c.Volume <= 0 {
		return errors.Newf(errors.ErrCodeInvalidCandle, "candle at %s has invalid volume %f", c.Time, c.Volume)
	}

	return nil
}

// ValidateCandleSeries validates an ordered candle series: every candle must
// be well-formed and timestamps must be strictly ascending.
func ValidateCandleSeries(candles []Candle) error {
	for i := range candles {
		if err := candles[i].Validate(); err != nil {
			return err
		}

		if i > 0 && !candles[i].Time.After(candles[i-1].Time) {
			return errors.Newf(errors.ErrCodeInvalidTimeOrder, "candle at index %d is not strictly after its predecessor", i)
		}
	}

	return nil
}
