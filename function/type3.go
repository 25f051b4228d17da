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

package function

import (
	"seehuhn.de/go/pdfcore/pdf"
)

// Type3 is a stitching function.  It combines k one-input functions into
// a single function, each covering one subdomain.
type Type3 struct {
	XMin, XMax float64

	// Functions holds the k functions to be combined.
	Functions []Function

	// Bounds holds the k-1 boundaries between the subdomains, in
	// increasing order.
	Bounds []float64

	// Encode holds 2k numbers, mapping each subdomain to the domain of
	// the corresponding function.
	Encode []float64

	Range []float64
}

// FunctionType returns 3.
func (f *Type3) FunctionType() int {
	return 3
}

// Shape returns the number of input and output values of the function.
func (f *Type3) Shape() (int, int) {
	_, n := f.Functions[0].Shape()
	return 1, n
}

// Apply evaluates the function.
func (f *Type3) Apply(inputs ...float64) []float64 {
	x := clipInputs([]float64{f.XMin, f.XMax}, inputs)[0]

	k := len(f.Functions)
	i := 0
	for i < k-1 && x >= f.Bounds[i] {
		i++
	}
	lo, hi := f.XMin, f.XMax
	if i > 0 {
		lo = f.Bounds[i-1]
	}
	if i < k-1 {
		hi = f.Bounds[i]
	}

	y := interpolate(x, lo, hi, f.Encode[2*i], f.Encode[2*i+1])
	return clipOutputs(f.Range, f.Functions[i].Apply(y))
}

func extractType3(r pdf.Getter, dict pdf.Dict, domain []float64, depth int) (*Type3, error) {
	if len(domain) != 2 {
		return nil, &pdf.ArrayLengthError{Expected: 2, Found: len(domain)}
	}
	f := &Type3{XMin: domain[0], XMax: domain[1]}

	var fns pdf.Array
	var rng *[]float64
	numbers := pdf.ArrayOf(pdf.AsNumber)
	s := &pdf.Schema{Fields: []pdf.Field{
		pdf.Required("Functions", &fns, pdf.AsArray),
		pdf.Required("Bounds", &f.Bounds, numbers),
		pdf.Required("Encode", &f.Encode, numbers),
		pdf.Optional("Range", &rng, numbers),
	}}
	if _, err := s.Decode(r, dict); err != nil {
		return nil, err
	}
	if rng != nil {
		f.Range = *rng
	}

	k := len(fns)
	if k == 0 {
		return nil, pdf.Errorf("stitching function without subfunctions")
	}
	if len(f.Bounds) != k-1 {
		return nil, &pdf.ArrayLengthError{Expected: k - 1, Found: len(f.Bounds)}
	}
	if len(f.Encode) != 2*k {
		return nil, &pdf.ArrayLengthError{Expected: 2 * k, Found: len(f.Encode)}
	}
	prev := f.XMin
	for _, b := range f.Bounds {
		if b < prev || b > f.XMax {
			return nil, pdf.Errorf("invalid /Bounds %v", f.Bounds)
		}
		prev = b
	}

	var n int
	for i, obj := range fns {
		fi, err := extract(r, obj, depth+1)
		if err != nil {
			return nil, pdf.Wrap(err, "/Functions")
		}
		mi, ni := fi.Shape()
		if mi != 1 || i > 0 && ni != n {
			return nil, pdf.Errorf("subfunction %d has inconsistent shape", i)
		}
		n = ni
		f.Functions = append(f.Functions, fi)
	}
	return f, nil
}
