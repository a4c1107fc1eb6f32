package types

import (
	"github.com/go-playground/validator/v10"

	"github.com/tradewind-lab/tradewind-backtest/pkg/errors"
)

// RiskProfileName identifies one of the fixed risk profiles. Unknown names
// arriving from the I/O boundary resolve to the most conservative profile at
// lookup time.
type RiskProfileName string

const (
	RiskProfileSafe       RiskProfileName = "safe"
	RiskProfileBalanced   RiskProfileName = "balanced"
	RiskProfileAggressive RiskProfileName = "aggressive"
)

// AllRiskProfiles lists the valid risk profile names.
var AllRiskProfiles = []any{
	RiskProfileSafe,
	RiskProfileBalanced,
	RiskProfileAggressive,
}

// StrategyParams holds the strategy parameters for one backtest run.
// Created once from caller input and never mutated mid-run.
type StrategyParams struct {
	RSIPeriod           int             `yaml:"rsi_period" json:"rsi_period" validate:"required,gt=1"`
	EMAFastPeriod       int             `yaml:"ema_fast_period" json:"ema_fast_period" validate:"required,gt=0"`
	EMASlowPeriod       int             `yaml:"ema_slow_period" json:"ema_slow_period" validate:"required,gt=0"`
	RSIThreshold        float64         `yaml:"rsi_threshold" json:"rsi_threshold" validate:"gt=0,lt=100"`
	RiskProfile         RiskProfileName `yaml:"risk_profile" json:"risk_profile"`
	TrailingStopEnabled bool            `yaml:"trailing_stop_enabled" json:"trailing_stop_enabled"`
	SlippageRate        float64         `yaml:"slippage_rate" json:"slippage_rate" validate:"gte=0,lt=1"`
	FeeRate             float64         `yaml:"fee_rate" json:"fee_rate" validate:"gte=0,lt=1"`
}

// DefaultStrategyParams returns the parameter set used when a bot has no
// stored configuration.
func DefaultStrategyParams() StrategyParams {
	return StrategyParams{
		RSIPeriod:           14,
		EMAFastPeriod:       9,
		EMASlowPeriod:       21,
		RSIThreshold:        30,
		RiskProfile:         RiskProfileBalanced,
		TrailingStopEnabled: true,
		SlippageRate:        0.001,
		FeeRate:             0.001,
	}
}

// Validate validates the StrategyParams struct.
func (p *StrategyParams) Validate() error {
	validate := validator.New()
	if err := validate.Struct(p); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParameter, "invalid strategy parameters", err)
	}

	if p.EMAFastPeriod >= p.EMASlowPeriod {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "fast EMA period %d must be shorter than slow EMA period %d", p.EMAFastPeriod, p.EMASlowPeriod)
	}

	return nil
}
