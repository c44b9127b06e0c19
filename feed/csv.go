package feed

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/iamdhruvsharma3/arbitrage/market"
)

// CSVFeed replays recorded snapshots from a file. Rows are:
//
//	time,spot,futures,call,put,strike
//
// with an optional header. Files ending in .xz are decompressed on the fly.
// Fetch returns ErrExhausted at end of file.
type CSVFeed struct {
	f *os.File
	r *csv.Reader
}

func OpenCSV(path string) (*CSVFeed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var src io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		xr, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		src = xr
	}

	r := csv.NewReader(src)
	r.FieldsPerRecord = 6
	return &CSVFeed{f: f, r: r}, nil
}

func (c *CSVFeed) Fetch(ctx context.Context) (market.QuoteSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return market.QuoteSnapshot{}, err
	}

	for {
		row, err := c.r.Read()
		if err == io.EOF {
			return market.QuoteSnapshot{}, ErrExhausted
		}
		if err != nil {
			return market.QuoteSnapshot{}, err
		}
		if strings.EqualFold(strings.TrimSpace(row[0]), "time") {
			continue // header row
		}
		return parseRow(row)
	}
}

func (c *CSVFeed) Close() error { return c.f.Close() }

func parseRow(row []string) (market.QuoteSnapshot, error) {
	ts, err := time.Parse(time.RFC3339, strings.TrimSpace(row[0]))
	if err != nil {
		return market.QuoteSnapshot{}, fmt.Errorf("replay row: bad time %q: %w", row[0], err)
	}

	fields := make([]float64, 4)
	for i, raw := range row[1:5] {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return market.QuoteSnapshot{}, fmt.Errorf("replay row: bad number %q: %w", raw, err)
		}
		fields[i] = v
	}

	strike, err := strconv.Atoi(strings.TrimSpace(row[5]))
	if err != nil {
		return market.QuoteSnapshot{}, fmt.Errorf("replay row: bad strike %q: %w", row[5], err)
	}

	return market.QuoteSnapshot{
		Spot:    fields[0],
		Futures: fields[1],
		Call:    fields[2],
		Put:     fields[3],
		Strike:  strike,
		Time:    ts,
		Source:  market.SourceReplay,
	}, nil
}
