package engine

import "github.com/tradewind-lab/tradewind-backtest/internal/types"

// RiskProfile bundles the sizing and bracket fractions for one risk level.
type RiskProfile struct {
	// PositionSizeFraction is the fraction of cash committed per entry.
	PositionSizeFraction float64
	// StopLossFraction is the base stop distance below the anchor price.
	StopLossFraction float64
	// TakeProfitFraction is the base target distance above the entry price.
	TakeProfitFraction float64
}

var riskProfiles = map[types.RiskProfileName]RiskProfile{
	types.RiskProfileSafe:       {PositionSizeFraction: 0.03, StopLossFraction: 0.008, TakeProfitFraction: 0.025},
	types.RiskProfileBalanced:   {PositionSizeFraction: 0.07, StopLossFraction: 0.015, TakeProfitFraction: 0.06},
	types.RiskProfileAggressive: {PositionSizeFraction: 0.15, StopLossFraction: 0.02, TakeProfitFraction: 0.12},
}

// LookupRiskProfile resolves a profile name to its fractions. Unknown names
// resolve to the most conservative profile.
func LookupRiskProfile(name types.RiskProfileName) RiskProfile {
	if profile, ok := riskProfiles[name]; ok {
		return profile
	}

	return riskProfiles[types.RiskProfileSafe]
}
