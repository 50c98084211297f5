package market

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// CSVProvider reads daily candles from <Dir>/<SYMBOL>.csv files with rows:
//
//	date,open,high,low,close[,volume]
//
// where date is 2006-01-02 or RFC3339. A single header row is allowed and
// empty rows are skipped.
type CSVProvider struct {
	Dir string
}

func (p CSVProvider) Path(symbol string) string {
	return filepath.Join(p.Dir, strings.ToUpper(symbol)+".csv")
}

// Candles loads the symbol's file and keeps rows within [from, to]. Zero
// bounds are open.
func (p CSVProvider) Candles(ctx context.Context, symbol string, from, to time.Time) (*Series, error) {
	f, err := os.Open(p.Path(symbol))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	candles, err := ReadCSV(ctx, f, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Path(symbol), err)
	}
	return NewSeries(symbol, candles)
}

// ReadCSV parses candle rows from r.
func ReadCSV(ctx context.Context, r io.Reader, from, to time.Time) ([]Candle, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var (
		candles  []Candle
		sawFirst bool
		line     int
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}

		// Allow a single header row
		if !sawFirst {
			sawFirst = true
			if strings.EqualFold(strings.TrimSpace(row[0]), "date") {
				continue
			}
		}

		c, err := parseCandleRow(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if !inRange(c.Time, from, to) {
			continue
		}
		candles = append(candles, c)
	}
	return candles, nil
}

func parseCandleRow(row []string) (Candle, error) {
	if len(row) < 5 {
		return Candle{}, fmt.Errorf("need date,open,high,low,close (got %d fields)", len(row))
	}

	t, err := parseDate(strings.TrimSpace(row[0]))
	if err != nil {
		return Candle{}, err
	}

	var prices [4]float64
	for i := range prices {
		s := strings.TrimSpace(row[i+1])
		if s == "" {
			return Candle{}, fmt.Errorf("missing %s", columns[i])
		}
		if prices[i], err = strconv.ParseFloat(s, 64); err != nil {
			return Candle{}, fmt.Errorf("bad %s %q: %w", columns[i], s, err)
		}
	}

	c := Candle{
		Time:  t,
		Open:  prices[0],
		High:  prices[1],
		Low:   prices[2],
		Close: prices[3],
	}
	if len(row) > 5 && strings.TrimSpace(row[5]) != "" {
		if c.Volume, err = strconv.ParseFloat(strings.TrimSpace(row[5]), 64); err != nil {
			return Candle{}, fmt.Errorf("bad volume %q: %w", row[5], err)
		}
	}
	return c, nil
}

var columns = [4]string{"open", "high", "low", "close"}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q: %w", s, err)
	}
	return t.UTC(), nil
}

func inRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && t.After(to) {
		return false
	}
	return true
}
