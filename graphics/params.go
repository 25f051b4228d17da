// seehuhn.de/go/pdfcore - a library for reading PDF files
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package graphics

import (
	"slices"

	"seehuhn.de/go/pdfcore/pdf"
)

// LineCapStyle is the style of the end of a line.
type LineCapStyle uint8

// Possible values for LineCapStyle.
// See section 8.4.3.3 of ISO 32000-2:2020.
const (
	LineCapButt   LineCapStyle = 0
	LineCapRound  LineCapStyle = 1
	LineCapSquare LineCapStyle = 2
)

func (s LineCapStyle) String() string {
	switch s {
	case LineCapButt:
		return "butt"
	case LineCapRound:
		return "round"
	case LineCapSquare:
		return "square"
	default:
		return "LineCapStyle(?)"
	}
}

// LineCapEnum converts PDF integers to line cap styles.
var LineCapEnum = &pdf.IntEnum[LineCapStyle]{
	Name: "LineCap",
	Values: map[pdf.Integer]LineCapStyle{
		0: LineCapButt,
		1: LineCapRound,
		2: LineCapSquare,
	},
}

// LineJoinStyle is the style of the corner of a line.
type LineJoinStyle uint8

// Possible values for LineJoinStyle.
// See section 8.4.3.4 of ISO 32000-2:2020.
const (
	LineJoinMiter LineJoinStyle = 0
	LineJoinRound LineJoinStyle = 1
	LineJoinBevel LineJoinStyle = 2
)

func (s LineJoinStyle) String() string {
	switch s {
	case LineJoinMiter:
		return "miter"
	case LineJoinRound:
		return "round"
	case LineJoinBevel:
		return "bevel"
	default:
		return "LineJoinStyle(?)"
	}
}

// LineJoinEnum converts PDF integers to line join styles.
var LineJoinEnum = &pdf.IntEnum[LineJoinStyle]{
	Name: "LineJoin",
	Values: map[pdf.Integer]LineJoinStyle{
		0: LineJoinMiter,
		1: LineJoinRound,
		2: LineJoinBevel,
	},
}

// RenderingIntent describes how CIE-based colours are mapped to device
// colours.
type RenderingIntent pdf.Name

// The four standard rendering intents.
// See section 8.6.5.8 of ISO 32000-2:2020.
const (
	AbsoluteColorimetric RenderingIntent = "AbsoluteColorimetric"
	RelativeColorimetric RenderingIntent = "RelativeColorimetric"
	Saturation           RenderingIntent = "Saturation"
	Perceptual           RenderingIntent = "Perceptual"
)

// RenderingIntentEnum converts PDF names to rendering intents.
var RenderingIntentEnum = &pdf.Enum[RenderingIntent]{
	Name: "RenderingIntent",
	Values: map[pdf.Name]RenderingIntent{
		"AbsoluteColorimetric": AbsoluteColorimetric,
		"RelativeColorimetric": RelativeColorimetric,
		"Saturation":           Saturation,
		"Perceptual":           Perceptual,
	},
}

// DashPattern describes how lines are dashed.
// See section 8.4.3.6 of ISO 32000-2:2020.
type DashPattern struct {
	// Array gives the lengths of alternating dashes and gaps.  An empty
	// array denotes a solid line.
	Array []float64

	// Phase is the distance into the pattern at which the dash starts.
	Phase float64
}

// IsSolid reports whether the pattern describes a solid line.
func (d DashPattern) IsSolid() bool {
	return len(d.Array) == 0
}

// Clone returns a copy of d which does not share memory with d.
func (d DashPattern) Clone() DashPattern {
	d.Array = slices.Clone(d.Array)
	return d
}

// Equal reports whether two dash patterns are the same.
func (d DashPattern) Equal(other DashPattern) bool {
	return d.Phase == other.Phase && slices.Equal(d.Array, other.Array)
}

// Validate checks that the dash lengths are non-negative and not all
// zero.
func (d DashPattern) Validate() error {
	if len(d.Array) == 0 {
		return nil
	}
	allZero := true
	for _, x := range d.Array {
		if x < 0 {
			return pdf.Errorf("negative dash length %g", x)
		}
		if x > 0 {
			allZero = false
		}
	}
	if allZero {
		return pdf.Errorf("all dash lengths are zero")
	}
	return nil
}

// AsDashPattern converts an array [dashArray dashPhase] to a dash pattern.
func AsDashPattern(r pdf.Getter, obj pdf.Object) (DashPattern, error) {
	a, err := pdf.ArrayOfLen(pdf.AsObject, 2)(r, obj)
	if err != nil {
		return DashPattern{}, err
	}
	array, err := pdf.ArrayOf(pdf.AsNumber)(r, a[0])
	if err != nil {
		return DashPattern{}, pdf.Wrap(err, "dash array")
	}
	phase, err := pdf.AsNumber(r, a[1])
	if err != nil {
		return DashPattern{}, pdf.Wrap(err, "dash phase")
	}
	d := DashPattern{Array: array, Phase: phase}
	if err := d.Validate(); err != nil {
		return DashPattern{}, err
	}
	if len(d.Array) == 0 {
		d.Array = nil
	}
	return d, nil
}
