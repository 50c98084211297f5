package chart

import (
	"fmt"

	"github.com/rustyeddy/bands/bands"
)

type style struct {
	label string
	color string
}

// lineStyles gives the upper, middle and lower line styles for each family.
func lineStyles(f bands.Family) (upper, middle, lower style) {
	switch f {
	case bands.Ledoux:
		return style{"Upper Ledoux Band", Red}, style{}, style{"Lower Ledoux Band", Blue}
	case bands.Percent:
		return style{"Upper Percent Band", Red}, style{"Middle Band", Blue}, style{"Lower Percent Band", Green}
	case bands.Donchian:
		return style{"Upper Donchian", Green}, style{}, style{"Lower Donchian", Red}
	case bands.Keltner:
		return style{"Upper Keltner Band", Red}, style{"Middle Keltner Band", Blue}, style{"Lower Keltner Band", Green}
	case bands.Bollinger:
		return style{"upperBB", Red}, style{"middleBB", Blue}, style{"lowerBB", Green}
	case bands.Envelope:
		return style{"Upper Bollinger Envelope", Red}, style{"Middle Bollinger Envelope", Blue}, style{"Lower Bollinger Envelope", Green}
	}
	return style{}, style{}, style{}
}

// Title is the chart title for a family.
func Title(f bands.Family) string {
	if f == bands.Envelope {
		return "Bollinger Envelopes"
	}
	return f.String() + " Bands"
}

func windowed(a *bands.Analysis, xs []float64) Values {
	return Values(bands.Slice(a.Window, xs))
}

// BandPanel returns the lines for family f over the analysis window. Every
// family but Ledoux also plots the close, labelled with the symbol.
func BandPanel(a *bands.Analysis, f bands.Family) (Panel, error) {
	b, ok := a.Band(f)
	if !ok {
		return Panel{}, fmt.Errorf("%s was not computed", f)
	}

	upper, middle, lower := lineStyles(f)
	p := Panel{
		Title:  Title(f),
		YLabel: Courtesy,
		Height: 2,
		Legend: true,
		Grid:   true,
	}
	p.Lines = append(p.Lines, Line{upper.label, upper.color, windowed(a, b.Upper)})
	if b.HasMiddle() {
		p.Lines = append(p.Lines, Line{middle.label, middle.color, windowed(a, b.Middle)})
	}
	p.Lines = append(p.Lines, Line{lower.label, lower.color, windowed(a, b.Lower)})
	if f != bands.Ledoux {
		p.Lines = append(p.Lines, Line{a.Series.Symbol, Black, windowed(a, a.Series.Closes())})
	}
	return p, nil
}

// IndicatorPanels returns the %b and BandWidth panels for the analysis'
// indicator family.
func IndicatorPanels(a *bands.Analysis) ([]Panel, error) {
	ind := a.Indicators
	if ind == nil {
		return nil, fmt.Errorf("no indicators computed")
	}

	zero := 0.0
	return []Panel{
		{
			YLabel: "%b",
			Height: 1,
			Grid:   true,
			Lines:  []Line{{"%b", Blue, windowed(a, ind.PercentB)}},
			HLines: []HLine{
				{Y: 0, Color: Green, Width: 0.8},
				{Y: 0.5, Color: Blue, Width: 0.8},
				{Y: 1, Color: Red, Width: 0.8},
			},
		},
		{
			YLabel: "BandWidth",
			Height: 1,
			Grid:   true,
			Lines:  []Line{{"BandWidth", Blue, windowed(a, ind.BandWidth)}},
			YMin:   &zero,
		},
	}, nil
}

// BandFigure is a single-panel chart of one family.
func BandFigure(a *bands.Analysis, f bands.Family) (Figure, error) {
	p, err := BandPanel(a, f)
	if err != nil {
		return Figure{}, err
	}
	return Figure{
		Title:  Title(f),
		Panels: []Panel{p},
		Ticks:  a.Window.Ticks(a.Series.Times()),
		Rows:   a.Window.Len(),
	}, nil
}

// IndicatorFigure stacks the indicator family's bands over Bollinger Bars
// on top of the %b and BandWidth panels, titled with the symbol.
func IndicatorFigure(a *bands.Analysis, barWidth float64) (Figure, error) {
	if a.Indicators == nil {
		return Figure{}, fmt.Errorf("no indicators computed")
	}
	f := a.Indicators.Family

	top, err := BandPanel(a, f)
	if err != nil {
		return Figure{}, err
	}
	// Bars stand in for the close line.
	top.Lines = top.Lines[:len(top.Lines)-1]
	top.Title = ""
	top.YLabel = Title(f)
	top.Legend = false
	top.Text = "Courtesy www.BollingerBands.com"
	top.Bars = Bars(a.Series, a.Window, barWidth)

	lower, err := IndicatorPanels(a)
	if err != nil {
		return Figure{}, err
	}
	return Figure{
		Title:  a.Series.Symbol,
		Panels: append([]Panel{top}, lower...),
		Ticks:  a.Window.Ticks(a.Series.Times()),
		Rows:   a.Window.Len(),
	}, nil
}

// Build renders every computed family, followed by the indicator figure
// when indicators were requested.
func Build(a *bands.Analysis, barWidth float64) (Document, error) {
	doc := Document{Symbol: a.Series.Symbol}
	for _, f := range a.Families {
		fig, err := BandFigure(a, f)
		if err != nil {
			return Document{}, err
		}
		doc.Figures = append(doc.Figures, fig)
	}
	if a.Indicators != nil {
		fig, err := IndicatorFigure(a, barWidth)
		if err != nil {
			return Document{}, err
		}
		doc.Figures = append(doc.Figures, fig)
	}
	return doc, nil
}
