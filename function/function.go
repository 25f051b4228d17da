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

// Package function implements PDF functions.
//
// PDF functions map m input values to n output values.  They are used,
// for example, as transfer functions, for black generation and undercolor
// removal, and in shadings.  Four function types exist:
//
//   - [Type0]: sampled functions
//   - [Type2]: exponential interpolation functions
//   - [Type3]: stitching functions
//   - [Type4]: PostScript calculator functions
//
// See section 7.10 of ISO 32000-2:2020.
package function

import (
	"fmt"
	"math"

	"seehuhn.de/go/pdfcore/pdf"
)

// Function is a PDF function.
type Function interface {
	// FunctionType returns the PDF function type (0, 2, 3 or 4).
	FunctionType() int

	// Shape returns the number of input and output values of the function.
	Shape() (m int, n int)

	// Apply evaluates the function.  Inputs are clipped to the domain and
	// outputs to the range of the function.  The number of inputs must
	// equal the first value returned by Shape.
	Apply(inputs ...float64) []float64
}

// Extract reads a function from a PDF file.  Types 0 and 4 are stored in
// streams, types 2 and 3 in dictionaries.
func Extract(r pdf.Getter, obj pdf.Object) (Function, error) {
	return extract(r, obj, 0)
}

// maxNesting limits the depth of nested stitching functions.
const maxNesting = 8

func extract(r pdf.Getter, obj pdf.Object, depth int) (Function, error) {
	if depth > maxNesting {
		return nil, pdf.Errorf("functions nested too deeply")
	}

	obj, err := pdf.Resolve(r, obj)
	if err != nil {
		return nil, err
	}
	var dict pdf.Dict
	var stm *pdf.Stream
	switch x := obj.(type) {
	case pdf.Dict:
		dict = x
	case *pdf.Stream:
		if x == nil {
			return nil, funcTypeError(obj)
		}
		stm = x
		dict = x.Dict
	default:
		return nil, funcTypeError(obj)
	}

	var tp int
	var domain []float64
	s := &pdf.Schema{Fields: []pdf.Field{
		pdf.Required("FunctionType", &tp, pdf.AsInt),
		pdf.Required("Domain", &domain, pdf.ArrayOf(pdf.AsNumber)),
	}}
	if _, err := s.Decode(r, dict); err != nil {
		return nil, err
	}
	if len(domain) == 0 || !isRanges(domain) {
		return nil, pdf.Wrap(pdf.Errorf("invalid domain %v", domain), "/Domain")
	}

	var f Function
	switch tp {
	case 0:
		if stm == nil {
			return nil, pdf.Errorf("type 0 function must be a stream")
		}
		f, err = extractType0(r, stm, domain)
	case 2:
		f, err = extractType2(r, dict, domain)
	case 3:
		f, err = extractType3(r, dict, domain, depth)
	case 4:
		if stm == nil {
			return nil, pdf.Errorf("type 4 function must be a stream")
		}
		f, err = extractType4(r, stm, domain)
	default:
		return nil, &pdf.UnknownVariantError{
			Found: fmt.Sprint(tp),
			Enum:  "FunctionType",
		}
	}
	if err != nil {
		return nil, pdf.Wrap(err, fmt.Sprintf("type %d function", tp))
	}
	return f, nil
}

func funcTypeError(obj pdf.Object) error {
	return &pdf.TypeError{
		Expected: []pdf.ObjectType{pdf.TypeDict, pdf.TypeStream},
		Found:    pdf.TypeOf(obj),
	}
}

// isRanges checks that x consists of pairs (min, max) of finite numbers
// with min <= max.
func isRanges(x []float64) bool {
	if len(x)%2 != 0 {
		return false
	}
	for i := 0; i < len(x); i += 2 {
		if !isFinite(x[i]) || !isFinite(x[i+1]) || x[i] > x[i+1] {
			return false
		}
	}
	return true
}

func isFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}

func clip(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// interpolate maps x from [xMin, xMax] linearly to [yMin, yMax].
func interpolate(x, xMin, xMax, yMin, yMax float64) float64 {
	if xMax == xMin {
		return yMin
	}
	return yMin + (x-xMin)*(yMax-yMin)/(xMax-xMin)
}

// clipInputs clips the inputs to the domain and panics if the number of
// inputs is wrong.
func clipInputs(domain, inputs []float64) []float64 {
	m := len(domain) / 2
	if len(inputs) != m {
		panic(fmt.Sprintf("expected %d inputs, got %d", m, len(inputs)))
	}
	res := make([]float64, m)
	for i, x := range inputs {
		res[i] = clip(x, domain[2*i], domain[2*i+1])
	}
	return res
}

// clipOutputs clips the outputs to the range, if a range is given.
func clipOutputs(rng, outputs []float64) []float64 {
	for i := range outputs {
		if 2*i+1 < len(rng) {
			outputs[i] = clip(outputs[i], rng[2*i], rng[2*i+1])
		}
	}
	return outputs
}
