package engine

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"gopkg.in/yaml.v3"

	"github.com/tradewind-lab/tradewind-backtest/internal/backtest/engine/fee"
	"github.com/tradewind-lab/tradewind-backtest/pkg/errors"
)

const (
	// DefaultInitialBalance is the starting cash for a run.
	DefaultInitialBalance = 1000.0
	// DefaultWarmupOffset is the number of bars skipped before the first
	// evaluated bar, enough for the longest indicator window to be
	// meaningful.
	DefaultWarmupOffset = 50
	// DefaultBarsPerYear annualizes Sharpe for hourly candles (365*24).
	DefaultBarsPerYear = 8760.0
)

// Config configures one backtest engine instance.
type Config struct {
	InitialBalance float64       `yaml:"initial_balance" json:"initial_balance" jsonschema:"title=Initial Balance,description=Starting cash balance for the simulation,minimum=0"`
	WarmupOffset   int           `yaml:"warmup_offset" json:"warmup_offset" jsonschema:"title=Warmup Offset,description=Bars skipped before the first evaluated bar,minimum=0"`
	BarsPerYear    float64       `yaml:"bars_per_year" json:"bars_per_year" jsonschema:"title=Bars Per Year,description=Annualization factor matching the candle timeframe,minimum=1"`
	FeeModel       fee.ModelName `yaml:"fee_model" json:"fee_model" jsonschema:"title=Fee Model,description=The fee model applied to fills"`
	// StartTime and EndTime optionally clamp the candle series before
	// simulation. None means the full series is used.
	StartTime optional.Option[time.Time] `yaml:"start_time" json:"start_time" jsonschema:"title=Start Time,description=Optional start of the simulated period"`
	EndTime   optional.Option[time.Time] `yaml:"end_time" json:"end_time" jsonschema:"title=End Time,description=Optional end of the simulated period"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		InitialBalance: DefaultInitialBalance,
		WarmupOffset:   DefaultWarmupOffset,
		BarsPerYear:    DefaultBarsPerYear,
		FeeModel:       fee.ModelProportional,
		StartTime:      optional.None[time.Time](),
		EndTime:        optional.None[time.Time](),
	}
}

// UnmarshalYAML implements custom unmarshaling for Config so that omitted
// fields fall back to defaults and optional times map onto Option values.
func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type rawConfig struct {
		InitialBalance *float64       `yaml:"initial_balance"`
		WarmupOffset   *int           `yaml:"warmup_offset"`
		BarsPerYear    *float64       `yaml:"bars_per_year"`
		FeeModel       *fee.ModelName `yaml:"fee_model"`
		StartTime      *time.Time     `yaml:"start_time"`
		EndTime        *time.Time     `yaml:"end_time"`
	}

	var raw rawConfig
	if err := unmarshal(&raw); err != nil {
		return err
	}

	*c = DefaultConfig()

	if raw.InitialBalance != nil {
		c.InitialBalance = *raw.InitialBalance
	}

	if raw.WarmupOffset != nil {
		c.WarmupOffset = *raw.WarmupOffset
	}

	if raw.BarsPerYear != nil {
		c.BarsPerYear = *raw.BarsPerYear
	}

	if raw.FeeModel != nil {
		c.FeeModel = *raw.FeeModel
	}

	if raw.StartTime != nil {
		c.StartTime = optional.Some(*raw.StartTime)
	}

	if raw.EndTime != nil {
		c.EndTime = optional.Some(*raw.EndTime)
	}

	return nil
}

// Validate checks the config for values the engine cannot run with.
func (c *Config) Validate() error {
	if c.InitialBalance <= 0 {
		return errors.Newf(errors.ErrCodeBacktestConfigError, "initial balance must be positive, got %f", c.InitialBalance)
	}

	if c.WarmupOffset < 0 {
		return errors.Newf(errors.ErrCodeBacktestConfigError, "warmup offset must be non-negative, got %d", c.WarmupOffset)
	}

	if c.BarsPerYear <= 0 {
		return errors.Newf(errors.ErrCodeBacktestConfigError, "bars per year must be positive, got %f", c.BarsPerYear)
	}

	return nil
}

// ParseConfig parses a YAML config document, applying defaults for omitted
// fields.
func ParseConfig(content []byte) (Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(content, &config); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeBacktestConfigError, "failed to parse engine config", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// GenerateSchema generates a JSON schema for the Config.
func (c *Config) GenerateSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t.String() == "optional.Option[time.Time]" {
				return &jsonschema.Schema{
					Type:   "string",
					Format: "date-time",
				}
			}
			if t == reflect.TypeOf(fee.ModelName("")) {
				return &jsonschema.Schema{
					Type: "string",
					Enum: fee.AllModels,
				}
			}
			return nil
		},
	}

	schema := reflector.Reflect(c)
	schema.Title = "backtest-engine-config"
	schema.Description = "Configuration schema for the backtest engine"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema
}

// GenerateSchemaJSON generates a JSON schema string for the Config.
func (c *Config) GenerateSchemaJSON() (string, error) {
	schemaBytes, err := json.MarshalIndent(c.GenerateSchema(), "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
