// Package engine implements the strategy backtesting engine: it replays an
// ordered OHLCV series bar-by-bar, scores entries and exits with the
// multi-factor model in scoring.go, simulates fills with slippage and fees,
// and aggregates the recorded equity curve and trade log into a
// BacktestResult.
package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/tradewind-lab/tradewind-backtest/internal/backtest/engine/fee"
	"github.com/tradewind-lab/tradewind-backtest/internal/indicator"
	"github.com/tradewind-lab/tradewind-backtest/internal/logger"
	"github.com/tradewind-lab/tradewind-backtest/internal/types"
	"github.com/tradewind-lab/tradewind-backtest/pkg/errors"
)

const (
	atrPeriod          = 14
	volumeLookback     = 20
	momentumPeriod     = 5
	bearMomentumPeriod = 3
	longTrendPeriod    = 200
)

// OnProgressCallback is called once per processed bar. Returning an error
// aborts the run.
type OnProgressCallback func(current, total int) error

// RunRequest describes one backtest run. The candle series is owned by the
// caller and never mutated.
type RunRequest struct {
	Symbol  string
	Candles []types.Candle
	Params  types.StrategyParams
	// OnProgress is optional; nil means no progress reporting.
	OnProgress OnProgressCallback
}

// Engine is a stateless backtest service. All per-run state lives in a
// SimulationState owned by Run, so a single Engine is safe for concurrent
// use; independent runs share nothing.
type Engine struct {
	config Config
	logger *logger.Logger
}

// NewEngine creates an engine with the given configuration.
func NewEngine(config Config, log *logger.Logger) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Engine{
		config: config,
		logger: log,
	}, nil
}

// Run replays the candle series start-to-finish and returns the result.
// The context applies only at the invocation boundary; there is no mid-run
// cancellation. Identical inputs produce identical results.
func (e *Engine) Run(ctx context.Context, req RunRequest) (types.BacktestResult, error) {
	if err := ctx.Err(); err != nil {
		return types.BacktestResult{}, errors.Wrap(errors.ErrCodeBacktestInitFailed, "run aborted before start", err)
	}

	if err := req.Params.Validate(); err != nil {
		return types.BacktestResult{}, err
	}

	candles := e.clampSeries(req.Candles)

	if err := types.ValidateCandleSeries(candles); err != nil {
		return types.BacktestResult{}, err
	}

	required := e.config.WarmupOffset + 1
	if len(candles) < required {
		return types.BacktestResult{}, errors.Wrap(
			errors.ErrCodeInsufficientData,
			"not enough candles for the requested backtest",
			errors.NewInsufficientDataErrorf(required, len(candles), req.Symbol,
				"need at least %d candles, got %d", required, len(candles)),
		)
	}

	profile := LookupRiskProfile(req.Params.RiskProfile)
	feeModel := fee.GetFeeModel(e.config.FeeModel, req.Params.FeeRate)
	state := NewSimulationState(e.config.InitialBalance, feeModel)

	closes := make([]float64, len(candles))
	highs := make([]float64, len(candles))
	lows := make([]float64, len(candles))

	for i, c := range candles {
		closes[i] = c.Close
		highs[i] = c.High
		lows[i] = c.Low
	}

	e.logger.Debug("starting backtest run",
		zap.String("symbol", req.Symbol),
		zap.Int("candles", len(candles)),
		zap.String("risk_profile", string(req.Params.RiskProfile)),
	)

	total := len(candles) - e.config.WarmupOffset

	for i := e.config.WarmupOffset; i < len(candles); i++ {
		bar := candles[i]
		snap := e.snapshot(candles, closes, highs, lows, i, req.Params, state)

		state.MarkEquity(bar.Time, bar.Close)

		if state.Position.IsOpen() {
			state.TrackHighestPrice(bar.Close)

			sellPrice := bar.Close * (1 - req.Params.SlippageRate)
			if ExitDecision(snap, sellPrice, state.Position.EntryPrice, state.Position.HighestPriceSinceEntry, profile, req.Params.TrailingStopEnabled) {
				pnl := state.ClosePosition(bar.Time, sellPrice)
				e.logger.Debug("closed position",
					zap.Time("time", bar.Time),
					zap.Float64("price", sellPrice),
					zap.Float64("pnl", pnl),
				)
			}
		} else {
			score := EntryScore(snap, req.Params.RSIThreshold, state.ConsecutiveLosses)
			if ShouldEnter(score, snap.RSI) {
				buyPrice := bar.Close * (1 + req.Params.SlippageRate)
				notional := state.CashBalance * profile.PositionSizeFraction * VolatilityAdjustment(snap.ATR, bar.Close)

				if notional > 0 && buyPrice > 0 {
					state.OpenPosition(bar.Time, buyPrice, notional)
					e.logger.Debug("opened position",
						zap.Time("time", bar.Time),
						zap.Float64("price", buyPrice),
						zap.Int("score", score),
					)
				}
			}
		}

		if req.OnProgress != nil {
			if err := req.OnProgress(i-e.config.WarmupOffset+1, total); err != nil {
				return types.BacktestResult{}, errors.Wrap(errors.ErrCodeBacktestInitFailed, "progress callback aborted run", err)
			}
		}
	}

	// Every simulation ends flat. The forced fill is not a signal-driven
	// exit and does not enter the trade log, but its equity change is
	// folded into the final equity point.
	lastClose := closes[len(closes)-1]
	state.ForceClose(lastClose * (1 - req.Params.SlippageRate))
	state.patchFinalEquity()

	perf := aggregatePerformance(e.config.InitialBalance, e.config.BarsPerYear, state.EquityCurve(), state.TradeLog(), state.MaxDrawdownSoFar)

	result := types.BacktestResult{
		Symbol:             req.Symbol,
		TotalTrades:        perf.TotalTrades,
		WinRate:            perf.WinRate,
		NetProfit:          perf.NetProfit,
		MaxDrawdownPercent: perf.MaxDrawdownPercent,
		SharpeRatio:        perf.SharpeRatio,
		ProfitFactor:       perf.ProfitFactor,
		MaxLosingStreak:    state.MaxLosingStreak,
		EquityCurve:        downsampleEquityCurve(state.EquityCurve()),
		TradeLog:           state.TradeLog(),
		Params:             req.Params,
	}

	e.logger.Info("backtest run complete",
		zap.String("symbol", req.Symbol),
		zap.Int("trades", result.TotalTrades),
		zap.Float64("net_profit", result.NetProfit),
		zap.Float64("win_rate", result.WinRate),
	)

	return result, nil
}

// snapshot computes all indicator values against the slice ending at bar i.
func (e *Engine) snapshot(candles []types.Candle, closes, highs, lows []float64, i int, params types.StrategyParams, state *SimulationState) IndicatorSnapshot {
	window := closes[:i+1]

	rsiValue := indicator.RSI(window, params.RSIPeriod)
	state.RecordHistory(closes[i], rsiValue)

	ema200 := indicator.EMA(window, params.EMASlowPeriod)
	if len(window) >= longTrendPeriod {
		ema200 = indicator.EMA(window, longTrendPeriod)
	}

	return IndicatorSnapshot{
		Close:       candles[i].Close,
		Volume:      candles[i].Volume,
		RSI:         rsiValue,
		EMAFast:     indicator.EMA(window, params.EMAFastPeriod),
		EMASlow:     indicator.EMA(window, params.EMASlowPeriod),
		EMA3:        indicator.EMA(window, bearMomentumPeriod),
		EMA5:        indicator.EMA(window, momentumPeriod),
		EMA200:      ema200,
		ATR:         indicator.ATR(highs[:i+1], lows[:i+1], window, atrPeriod),
		AvgVolume20: trailingAverageVolume(candles, i),
		Divergence:  indicator.DetectBullishDivergence(state.PriceHistory(), state.RSIHistory()),
	}
}

// clampSeries applies the optional start/end bounds from the config.
func (e *Engine) clampSeries(candles []types.Candle) []types.Candle {
	start := 0
	end := len(candles)

	if e.config.StartTime.IsSome() {
		from := e.config.StartTime.Unwrap()
		for start < end && candles[start].Time.Before(from) {
			start++
		}
	}

	if e.config.EndTime.IsSome() {
		until := e.config.EndTime.Unwrap()
		for end > start && candles[end-1].Time.After(until) {
			end--
		}
	}

	return candles[start:end]
}

func trailingAverageVolume(candles []types.Candle, i int) float64 {
	from := i - volumeLookback + 1
	if from < 0 {
		from = 0
	}

	sum := 0.0
	for j := from; j <= i; j++ {
		sum += candles[j].Volume
	}

	return sum / float64(i-from+1)
}
