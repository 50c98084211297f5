package journal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/rustyeddy/bands/bands"
)

// Summary is the last displayed row of one band.
type Summary struct {
	Family    string
	Params    string
	Close     float64
	Upper     float64
	Middle    float64
	Lower     float64
	PercentB  float64
	BandWidth float64
}

// Summarize picks the final row of every band in the analysis window.
func Summarize(a *bands.Analysis) []Summary {
	points := PointsFromAnalysis("", a)
	rows := a.Window.Len()
	if rows == 0 {
		return nil
	}

	out := make([]Summary, 0, len(a.Families))
	for i, f := range a.Families {
		p := points[(i+1)*rows-1]
		out = append(out, Summary{
			Family:    p.Family,
			Params:    a.Bands[f].Name(),
			Close:     p.Close,
			Upper:     p.Upper,
			Middle:    p.Middle,
			Lower:     p.Lower,
			PercentB:  p.PercentB,
			BandWidth: p.BandWidth,
		})
	}
	return out
}

// SummariesFromPoints rebuilds the summary table of a stored run from its
// points, taking the latest point of each family in run order.
func SummariesFromPoints(r Run, points []Point) ([]Summary, error) {
	var params map[bands.Family]bands.Params
	if len(r.Params) > 0 {
		if err := json.Unmarshal(r.Params, &params); err != nil {
			return nil, fmt.Errorf("run %s params: %w", r.RunID, err)
		}
	}

	last := make(map[string]Point)
	for _, p := range points {
		if cur, ok := last[p.Family]; !ok || p.Time.After(cur.Time) {
			last[p.Family] = p
		}
	}

	out := make([]Summary, 0, len(r.Families))
	for _, name := range r.Families {
		p, ok := last[name]
		if !ok {
			continue
		}
		f, err := bands.ParseFamily(name)
		if err != nil {
			return nil, err
		}
		out = append(out, Summary{
			Family:    p.Family,
			Params:    bands.Band{Family: f, Params: params[f]}.Name(),
			Close:     p.Close,
			Upper:     p.Upper,
			Middle:    p.Middle,
			Lower:     p.Lower,
			PercentB:  p.PercentB,
			BandWidth: p.BandWidth,
		})
	}
	return out, nil
}

type orgView struct {
	Run
	Summaries []Summary
}

var runOrgFuncs = template.FuncMap{
	"num": func(x float64) string {
		if math.IsNaN(x) {
			return "-"
		}
		return strconv.FormatFloat(x, 'f', 4, 64)
	},
	"join": strings.Join,
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
}

var runOrgTemplate = template.Must(template.New("run").Funcs(runOrgFuncs).Parse(RunOrgTemplate))

// FormatRunOrg renders a run as an Org-mode block: structured facts in a
// PROPERTIES drawer followed by a table of the latest band values.
func FormatRunOrg(r Run, summaries []Summary) (string, error) {
	var buf bytes.Buffer
	if err := runOrgTemplate.Execute(&buf, orgView{Run: r, Summaries: summaries}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteRunOrg writes the Org block for r to path.
func WriteRunOrg(path string, r Run, summaries []Summary) error {
	s, err := FormatRunOrg(r, summaries)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(s), 0644)
}

const RunOrgTemplate = `* BANDS: {{.Symbol}} {{.Months}}M
:PROPERTIES:
:RUN_ID:      {{if .RunID}}{{.RunID}}{{else}}(run-id?){{end}}
:SYMBOL:      {{.Symbol}}
:MONTHS:      {{.Months}}
:ROWS:        {{.Rows}}
:FAMILIES:    {{join .Families ","}}
:INDICATOR:   {{if .Indicator}}{{.Indicator}}{{else}}(none){{end}}
:START_DATE:  {{.Start.Format "2006-01-02"}}
:END_DATE:    {{.End.Format "2006-01-02"}}
:CREATED:     [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Latest Values
| Band | Close | Upper | Middle | Lower | %b | BandWidth |
|------+-------+-------+--------+-------+----+-----------|
{{- range .Summaries }}
| {{.Params}} | {{num .Close}} | {{num .Upper}} | {{num .Middle}} | {{num .Lower}} | {{num .PercentB}} | {{num .BandWidth}} |
{{- end }}
`
