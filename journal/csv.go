// journal/csv.go
package journal

import (
	"context"
	"encoding/csv"
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

var (
	runsHeader   = []string{"run_id", "created", "symbol", "months", "families", "indicator", "row_count", "start", "end", "params"}
	pointsHeader = []string{"run_id", "family", "time", "close", "upper", "middle", "lower", "percent_b", "band_width"}
)

// CSVJournal appends runs to <dir>/runs.csv and their points to
// <dir>/points.csv. Undefined values are written as empty fields.
type CSVJournal struct {
	runs   *csv.Writer
	points *csv.Writer
	rf, pf *os.File
}

func NewCSV(dir string) (*CSVJournal, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	rf, rw, err := openCSV(filepath.Join(dir, "runs.csv"), runsHeader)
	if err != nil {
		return nil, err
	}
	pf, pw, err := openCSV(filepath.Join(dir, "points.csv"), pointsHeader)
	if err != nil {
		rf.Close()
		return nil, err
	}

	return &CSVJournal{rw, pw, rf, pf}, nil
}

// openCSV opens path for appending and writes header when the file is new.
func openCSV(path string, header []string) (*os.File, *csv.Writer, error) {
	_, statErr := os.Stat(path)
	fresh := errors.Is(statErr, fs.ErrNotExist)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(header); err != nil {
			f.Close()
			return nil, nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			f.Close()
			return nil, nil, err
		}
	}
	return f, w, nil
}

func (j *CSVJournal) RecordRun(ctx context.Context, r Run, points []Point) error {
	err := j.runs.Write([]string{
		r.RunID,
		r.Created.Format(time.RFC3339),
		r.Symbol,
		strconv.Itoa(r.Months),
		joinFamilies(r.Families),
		r.Indicator,
		strconv.Itoa(r.Rows),
		r.Start.Format(time.DateOnly),
		r.End.Format(time.DateOnly),
		string(r.Params),
	})
	if err != nil {
		return err
	}
	j.runs.Flush()
	if err := j.runs.Error(); err != nil {
		return err
	}

	for _, p := range points {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := j.points.Write([]string{
			r.RunID,
			p.Family,
			p.Time.Format(time.DateOnly),
			f(p.Close),
			f(p.Upper),
			f(p.Middle),
			f(p.Lower),
			f(p.PercentB),
			f(p.BandWidth),
		})
		if err != nil {
			return err
		}
	}
	j.points.Flush()
	return j.points.Error()
}

func (j *CSVJournal) Close() error {
	j.runs.Flush()
	if err := j.runs.Error(); err != nil {
		return err
	}
	j.points.Flush()
	if err := j.points.Error(); err != nil {
		return err
	}

	if err := j.rf.Close(); err != nil {
		return err
	}
	if err := j.pf.Close(); err != nil {
		return err
	}
	return nil
}

func f(x float64) string {
	if math.IsNaN(x) {
		return ""
	}
	return strconv.FormatFloat(x, 'f', 6, 64)
}
