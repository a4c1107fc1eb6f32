package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradewind-lab/tradewind-backtest/internal/backtest/engine/fee"
	"github.com/tradewind-lab/tradewind-backtest/internal/types"
)

// historyCapacity bounds the sliding windows used for divergence detection.
const historyCapacity = 10

// Position holds one open long position. Quantity == 0 is the sentinel for
// flat; quantity is never negative (no shorting).
type Position struct {
	Quantity               float64
	EntryPrice             float64
	HighestPriceSinceEntry float64
}

// IsOpen reports whether a position is currently held.
func (p Position) IsOpen() bool {
	return p.Quantity > 0
}

// SimulationState is mutated bar-by-bar and owned exclusively by one run of
// the simulation loop.
type SimulationState struct {
	CashBalance       float64
	Position          Position
	ConsecutiveLosses int
	MaxLosingStreak   int

	PeakEquity       float64
	MaxDrawdownSoFar float64

	rsiHistory   []float64
	priceHistory []float64

	equityCurve []types.EquityPoint
	tradeLog    []types.TradeEvent

	feeModel fee.Model
}

// NewSimulationState creates the state for one run.
func NewSimulationState(initialBalance float64, feeModel fee.Model) *SimulationState {
	return &SimulationState{
		CashBalance:  initialBalance,
		PeakEquity:   initialBalance,
		rsiHistory:   make([]float64, 0, historyCapacity),
		priceHistory: make([]float64, 0, historyCapacity),
		feeModel:     feeModel,
	}
}

// RecordHistory appends the bar's close and RSI to the bounded sliding
// windows, evicting the oldest entry at capacity.
func (s *SimulationState) RecordHistory(closePrice, rsiValue float64) {
	s.priceHistory = appendBounded(s.priceHistory, closePrice)
	s.rsiHistory = appendBounded(s.rsiHistory, rsiValue)
}

// PriceHistory returns the bounded price window for divergence detection.
func (s *SimulationState) PriceHistory() []float64 {
	return s.priceHistory
}

// RSIHistory returns the bounded RSI window for divergence detection.
func (s *SimulationState) RSIHistory() []float64 {
	return s.rsiHistory
}

// MarkEquity records mark-to-market equity for the bar and updates the peak
// and running max drawdown. MaxDrawdownSoFar is monotonically non-decreasing.
func (s *SimulationState) MarkEquity(t time.Time, closePrice float64) {
	equity := s.Equity(closePrice)
	s.equityCurve = append(s.equityCurve, types.EquityPoint{Time: t, Equity: equity})

	if equity > s.PeakEquity {
		s.PeakEquity = equity
	}

	if s.PeakEquity > 0 {
		drawdown := (s.PeakEquity - equity) / s.PeakEquity
		if drawdown > s.MaxDrawdownSoFar {
			s.MaxDrawdownSoFar = drawdown
		}
	}
}

// Equity is cash plus position value at the given price.
func (s *SimulationState) Equity(closePrice float64) float64 {
	return s.CashBalance + s.Position.Quantity*closePrice
}

// OpenPosition executes a buy fill. The execution price must already include
// slippage; the proportional fee is deducted from the filled quantity.
func (s *SimulationState) OpenPosition(t time.Time, executionPrice, notional float64) {
	quantity := notional / executionPrice
	feePaid := s.feeModel.Calculate(notional)
	quantity -= feePaid / executionPrice

	s.CashBalance -= notional
	s.Position = Position{
		Quantity:               quantity,
		EntryPrice:             executionPrice,
		HighestPriceSinceEntry: executionPrice,
	}

	s.tradeLog = append(s.tradeLog, types.TradeEvent{
		Time:     t,
		Side:     types.TradeSideBuy,
		Price:    executionPrice,
		Quantity: quantity,
	})
}

// ClosePosition executes a sell fill at the given price (slippage included),
// realizes PnL and resets the position to flat. Losing-streak accounting
// resets on a win and increments on a loss.
func (s *SimulationState) ClosePosition(t time.Time, executionPrice float64) float64 {
	quantity := s.Position.Quantity
	pnl := s.liquidate(executionPrice)

	if pnl > 0 {
		s.ConsecutiveLosses = 0
	} else {
		s.ConsecutiveLosses++
		if s.ConsecutiveLosses > s.MaxLosingStreak {
			s.MaxLosingStreak = s.ConsecutiveLosses
		}
	}

	s.tradeLog = append(s.tradeLog, types.TradeEvent{
		Time:     t,
		Side:     types.TradeSideSell,
		Price:    executionPrice,
		Quantity: quantity,
		PnL:      pnl,
	})

	return pnl
}

// ForceClose liquidates any open position at the end of the series so every
// simulation ends flat. The fill is not appended to the trade log; the
// resulting equity change still flows into the final equity point. This
// asymmetry matches the reference behavior.
func (s *SimulationState) ForceClose(executionPrice float64) {
	if !s.Position.IsOpen() {
		return
	}

	s.liquidate(executionPrice)
}

// liquidate sells the entire position, credits net proceeds to cash and
// returns the realized PnL. PnL arithmetic uses decimals so repeated runs
// stay bit-identical across accumulation orders.
func (s *SimulationState) liquidate(executionPrice float64) float64 {
	quantity := s.Position.Quantity
	gross := quantity * executionPrice
	feePaid := s.feeModel.Calculate(gross)
	proceeds := gross - feePaid

	cost := decimal.NewFromFloat(quantity).Mul(decimal.NewFromFloat(s.Position.EntryPrice))
	pnl, _ := decimal.NewFromFloat(proceeds).Sub(cost).Float64()

	s.CashBalance += proceeds
	s.Position = Position{}

	return pnl
}

// TrackHighestPrice ratchets the trailing-stop anchor while holding.
func (s *SimulationState) TrackHighestPrice(closePrice float64) {
	if s.Position.IsOpen() && closePrice > s.Position.HighestPriceSinceEntry {
		s.Position.HighestPriceSinceEntry = closePrice
	}
}

// EquityCurve returns the full-resolution equity curve.
func (s *SimulationState) EquityCurve() []types.EquityPoint {
	return s.equityCurve
}

// TradeLog returns the ordered fill sequence.
func (s *SimulationState) TradeLog() []types.TradeEvent {
	return s.tradeLog
}

// patchFinalEquity folds the forced-liquidation equity change into the last
// equity point so drawdown and Sharpe see the post-liquidation value.
func (s *SimulationState) patchFinalEquity() {
	if len(s.equityCurve) == 0 {
		return
	}

	last := &s.equityCurve[len(s.equityCurve)-1]
	last.Equity = s.CashBalance

	if s.PeakEquity > 0 {
		drawdown := (s.PeakEquity - last.Equity) / s.PeakEquity
		if drawdown > s.MaxDrawdownSoFar {
			s.MaxDrawdownSoFar = drawdown
		}
	}
}

func appendBounded(window []float64, value float64) []float64 {
	if len(window) == historyCapacity {
		copy(window, window[1:])
		window = window[:historyCapacity-1]
	}

	return append(window, value)
}
