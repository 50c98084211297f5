// Package chart turns an analysis into render requests: labelled, coloured
// line series, reference lines, OHLC bar segments and date ticks. It draws
// nothing; a plotting front end consumes the JSON documents it produces.
package chart

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"strconv"

	"github.com/rustyeddy/bands/bands"
)

const (
	Red   = "red"
	Green = "green"
	Blue  = "blue"
	Black = "black"
	Gray  = "gray"
)

// Courtesy is the attribution shown on every band chart.
const Courtesy = "Courtesy Bollinger Capital Management"

// Values is a numeric series that encodes undefined (NaN) points as null.
type Values []float64

func (v Values) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, x := range v {
		if i > 0 {
			buf.WriteByte(',')
		}
		if math.IsNaN(x) || math.IsInf(x, 0) {
			buf.WriteString("null")
			continue
		}
		buf.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func (v *Values) UnmarshalJSON(b []byte) error {
	var raw []*float64
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(Values, len(raw))
	for i, p := range raw {
		if p == nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = *p
	}
	*v = out
	return nil
}

type Line struct {
	Label  string `json:"label"`
	Color  string `json:"color"`
	Values Values `json:"values"`
}

// HLine is a horizontal reference line.
type HLine struct {
	Y     float64 `json:"y"`
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

type Panel struct {
	Title  string   `json:"title,omitempty"`
	YLabel string   `json:"ylabel,omitempty"`
	Height int      `json:"height"`
	Lines  []Line   `json:"lines,omitempty"`
	HLines []HLine  `json:"hlines,omitempty"`
	Bars   []Bar    `json:"bars,omitempty"`
	YMin   *float64 `json:"ymin,omitempty"`
	Legend bool     `json:"legend"`
	Grid   bool     `json:"grid"`
	Text   string   `json:"text,omitempty"`
}

// Figure is one chart: stacked panels sharing an x axis.
type Figure struct {
	Title  string       `json:"title"`
	Panels []Panel      `json:"panels"`
	Ticks  []bands.Tick `json:"ticks"`
	Rows   int          `json:"rows"`
}

// Document bundles every figure produced for one symbol.
type Document struct {
	Symbol  string   `json:"symbol"`
	Figures []Figure `json:"figures"`
}

// WriteJSON encodes doc as indented JSON.
func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// ReadJSON decodes a document written by WriteJSON.
func ReadJSON(r io.Reader) (Document, error) {
	var doc Document
	err := json.NewDecoder(r).Decode(&doc)
	return doc, err
}
