package types

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tradewind-lab/tradewind-backtest/pkg/errors"
)

type TradeSide string

const (
	TradeSideBuy  TradeSide = "BUY"
	TradeSideSell TradeSide = "SELL"
)

// TradeEvent records a single simulated fill. Immutable after creation; the
// full ordered sequence is the trade log.
type TradeEvent struct {
	Time time.Time `yaml:"time" json:"time" csv:"time"`
	Side TradeSide `yaml:"side" json:"side" csv:"side"`
	// Price is the execution price including slippage.
	Price    float64 `yaml:"price" json:"price" csv:"price"`
	Quantity float64 `yaml:"quantity" json:"quantity" csv:"quantity"`
	// PnL is the realized profit and loss. Zero for buy fills.
	PnL float64 `yaml:"pnl" json:"pnl" csv:"pnl"`
}

// EquityPoint is one mark-to-market observation, appended once per bar
// regardless of whether a trade occurred.
type EquityPoint struct {
	Time   time.Time `yaml:"time" json:"time" csv:"time"`
	Equity float64   `yaml:"equity" json:"equity" csv:"equity"`
}

// BacktestResult is the terminal, immutable output of one run.
type BacktestResult struct {
	// ID is the unique identifier for this backtest run.
	ID string `yaml:"id" json:"id"`
	// Timestamp is when this backtest run was executed.
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	// Symbol of the trading pair.
	Symbol string `yaml:"symbol" json:"symbol"`
	// TotalTrades counts closed round trips.
	TotalTrades int `yaml:"total_trades" json:"total_trades"`
	// WinRate is the winning percentage of closed trades, 0-100.
	WinRate float64 `yaml:"win_rate" json:"win_rate"`
	// NetProfit is final equity minus initial balance.
	NetProfit float64 `yaml:"net_profit" json:"net_profit"`
	// MaxDrawdownPercent is the worst observed peak-to-trough decline, 0-100.
	MaxDrawdownPercent float64 `yaml:"max_drawdown_percent" json:"max_drawdown_percent"`
	// SharpeRatio is the annualized risk-adjusted return over per-bar returns.
	SharpeRatio float64 `yaml:"sharpe_ratio" json:"sharpe_ratio"`
	// ProfitFactor is gross profit over gross loss across closed trades.
	ProfitFactor float64 `yaml:"profit_factor" json:"profit_factor"`
	// MaxLosingStreak is the longest run of consecutive losing trades.
	MaxLosingStreak int `yaml:"max_losing_streak" json:"max_losing_streak"`
	// EquityCurve is downsampled to at most 100 points for output. All
	// drawdown and Sharpe math uses the full-resolution curve.
	EquityCurve []EquityPoint `yaml:"equity_curve" json:"equity_curve"`
	// TradeLog is the ordered sequence of fills, alternating buy then sell.
	TradeLog []TradeEvent `yaml:"trade_log" json:"trade_log"`
	// Params echoes the strategy parameters the run was configured with.
	Params StrategyParams `yaml:"params" json:"params"`
}

// WriteBacktestResult serializes a result to a YAML report file.
func WriteBacktestResult(path string, result BacktestResult) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to marshal backtest result to YAML", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to write backtest result to file", err)
	}

	return nil
}
