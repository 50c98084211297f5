// journal/journal.go
package journal

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/rustyeddy/bands/bands"
	"github.com/rustyeddy/bands/pkg/id"
)

// Run describes one analysis: which bands were computed over which symbol
// and the display window they were recorded for.
type Run struct {
	RunID     string
	Created   time.Time
	Symbol    string
	Months    int
	Families  []string
	Indicator string
	Rows      int
	Start     time.Time
	End       time.Time
	Params    []byte // per-family parameters as JSON
}

// Point is one windowed row of one band. Undefined values are NaN.
type Point struct {
	RunID     string
	Family    string
	Time      time.Time
	Close     float64
	Upper     float64
	Middle    float64
	Lower     float64
	PercentB  float64
	BandWidth float64
}

type Journal interface {
	RecordRun(ctx context.Context, run Run, points []Point) error
	Close() error
}

// NewRun describes analysis a with a fresh run ID.
func NewRun(a *bands.Analysis, created time.Time) (Run, error) {
	params := make(map[bands.Family]bands.Params, len(a.Bands))
	families := make([]string, 0, len(a.Families))
	for _, f := range a.Families {
		params[f] = a.Bands[f].Params
		families = append(families, f.String())
	}
	data, err := json.Marshal(params)
	if err != nil {
		return Run{}, err
	}

	run := Run{
		RunID:    id.At(created),
		Created:  created.UTC(),
		Symbol:   a.Series.Symbol,
		Months:   a.Months,
		Families: families,
		Rows:     a.Window.Len(),
		Params:   data,
	}
	if a.Indicators != nil {
		run.Indicator = a.Indicators.Family.String()
	}
	if run.Rows > 0 {
		times := bands.Slice(a.Window, a.Series.Times())
		run.Start = times[0]
		run.End = times[len(times)-1]
	}
	return run, nil
}

// PointsFromAnalysis flattens every band over the analysis window. %b and
// BandWidth are filled for the indicator family only.
func PointsFromAnalysis(runID string, a *bands.Analysis) []Point {
	times := bands.Slice(a.Window, a.Series.Times())
	closes := bands.Slice(a.Window, a.Series.Closes())

	out := make([]Point, 0, len(a.Families)*len(times))
	for _, f := range a.Families {
		b := a.Bands[f]
		upper := bands.Slice(a.Window, b.Upper)
		lower := bands.Slice(a.Window, b.Lower)
		middle := bands.Slice(a.Window, b.Middle)

		var pctb, bw []float64
		if a.Indicators != nil && a.Indicators.Family == f {
			pctb = bands.Slice(a.Window, a.Indicators.PercentB)
			bw = bands.Slice(a.Window, a.Indicators.BandWidth)
		}

		for i := range times {
			out = append(out, Point{
				RunID:     runID,
				Family:    f.String(),
				Time:      times[i],
				Close:     closes[i],
				Upper:     upper[i],
				Middle:    at(middle, i),
				Lower:     lower[i],
				PercentB:  at(pctb, i),
				BandWidth: at(bw, i),
			})
		}
	}
	return out
}

func at(xs []float64, i int) float64 {
	if i >= len(xs) {
		return math.NaN()
	}
	return xs[i]
}

func joinFamilies(fs []string) string {
	return strings.Join(fs, ",")
}

func splitFamilies(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
