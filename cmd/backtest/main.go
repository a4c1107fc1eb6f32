package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/tradewind-lab/tradewind-backtest/internal/backtest/engine"
	"github.com/tradewind-lab/tradewind-backtest/internal/backtest/engine/datasource"
	"github.com/tradewind-lab/tradewind-backtest/internal/logger"
	"github.com/tradewind-lab/tradewind-backtest/internal/types"
)

// backtestAction is the core logic executed by the CLI command. It loads the
// engine config and candle data, runs the backtest and writes a YAML report.
func backtestAction(ctx context.Context, cmd *cli.Command) error {
	dataPath := cmd.String("data")
	configPath := cmd.String("config")
	paramsPath := cmd.String("params")
	symbol := cmd.String("symbol")
	outputPath := cmd.String("output")

	appLogger, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer appLogger.Sync()

	config := engine.DefaultConfig()

	if configPath != "" {
		content, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		config, err = engine.ParseConfig(content)
		if err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
	}

	params := types.DefaultStrategyParams()

	if paramsPath != "" {
		content, err := os.ReadFile(paramsPath)
		if err != nil {
			return fmt.Errorf("failed to read strategy parameters: %w", err)
		}

		if err := yamlUnmarshalParams(content, &params); err != nil {
			return fmt.Errorf("failed to parse strategy parameters: %w", err)
		}
	}

	source := datasource.NewCSVSource(dataPath)

	candles, err := source.Load()
	if err != nil {
		return fmt.Errorf("failed to load candles: %w", err)
	}

	appLogger.Info("loaded candle series",
		zap.String("symbol", symbol),
		zap.String("path", dataPath),
		zap.Int("candles", len(candles)),
	)

	backtester, err := engine.NewEngine(config, appLogger)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	bar := progressbar.Default(int64(len(candles)-config.WarmupOffset), "backtesting")

	result, err := backtester.Run(ctx, engine.RunRequest{
		Symbol:  symbol,
		Candles: candles,
		Params:  params,
		OnProgress: func(current, total int) error {
			return bar.Set(current)
		},
	})
	if err != nil {
		return fmt.Errorf("backtest failed: %w", err)
	}

	// Run metadata is stamped here, outside the deterministic core.
	result.ID = uuid.New().String()
	result.Timestamp = time.Now().UTC()

	if err := types.WriteBacktestResult(outputPath, result); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	appLogger.Info("report written",
		zap.String("path", outputPath),
		zap.Int("trades", result.TotalTrades),
		zap.Float64("net_profit", result.NetProfit),
		zap.Float64("sharpe", result.SharpeRatio),
	)

	return nil
}

// yamlUnmarshalParams overlays a YAML document onto the default strategy
// parameters and validates the merged result.
func yamlUnmarshalParams(content []byte, params *types.StrategyParams) error {
	if err := yaml.Unmarshal(content, params); err != nil {
		return err
	}

	return params.Validate()
}

func main() {
	cmd := &cli.Command{
		Name:  "backtest",
		Usage: "Replay a historical OHLCV series through the strategy engine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "data",
				Aliases:  []string{"d"},
				Usage:    "Path to the candle CSV file",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "symbol",
				Aliases:  []string{"s"},
				Usage:    "Trading pair symbol, e.g. BTCUSDT",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the engine config YAML (defaults apply when omitted)",
			},
			&cli.StringFlag{
				Name:    "params",
				Aliases: []string{"p"},
				Usage:   "Path to the strategy parameters YAML (defaults apply when omitted)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Path for the YAML result report",
				Value:   "backtest_result.yaml",
			},
		},
		Action: backtestAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
