// Package datasource loads historical candle series for the CLI. Fetching
// live market data is the host system's responsibility; this package only
// reads series that were already exported to disk.
package datasource

import (
	"os"

	"github.com/gocarina/gocsv"

	"github.com/tradewind-lab/tradewind-backtest/internal/types"
	"github.com/tradewind-lab/tradewind-backtest/pkg/errors"
)

// CSVSource loads an OHLCV series from a CSV file with a header matching
// the csv tags on types.Candle. The file is read once and cached.
type CSVSource struct {
	FilePath string
	cache    []types.Candle
}

func NewCSVSource(filePath string) *CSVSource {
	return &CSVSource{
		FilePath: filePath,
	}
}

// Load reads and caches the full candle series. Ordering and well-formedness
// are checked by the engine at the run boundary, not here.
func (s *CSVSource) Load() ([]types.Candle, error) {
	if s.cache != nil {
		return s.cache, nil
	}

	csvFile, err := os.Open(s.FilePath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataLoadFailed, err, "failed to open CSV file %s", s.FilePath)
	}
	defer csvFile.Close()

	var candles []types.Candle
	if err := gocsv.UnmarshalFile(csvFile, &candles); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataParse, err, "failed to unmarshal CSV file %s", s.FilePath)
	}

	if len(candles) == 0 {
		return nil, errors.Newf(errors.ErrCodeDataNotFound, "no candles in CSV file %s", s.FilePath)
	}

	s.cache = candles

	return s.cache, nil
}

// ClearCache drops the in-memory series to free memory.
func (s *CSVSource) ClearCache() {
	s.cache = nil
}
