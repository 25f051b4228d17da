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
	"math"

	"seehuhn.de/go/pdfcore/pdf"
)

// Type2 is an exponential interpolation function.
// It maps x to C0 + x^N * (C1 - C0).
type Type2 struct {
	XMin, XMax float64
	C0, C1     []float64
	N          float64

	// Range, if present, is used to clip the outputs.
	Range []float64
}

// FunctionType returns 2.
func (f *Type2) FunctionType() int {
	return 2
}

// Shape returns the number of input and output values of the function.
func (f *Type2) Shape() (int, int) {
	return 1, len(f.C0)
}

// Apply evaluates the function.
func (f *Type2) Apply(inputs ...float64) []float64 {
	x := clipInputs([]float64{f.XMin, f.XMax}, inputs)[0]
	xN := math.Pow(x, f.N)
	res := make([]float64, len(f.C0))
	for i := range res {
		res[i] = f.C0[i] + xN*(f.C1[i]-f.C0[i])
	}
	return clipOutputs(f.Range, res)
}

func extractType2(r pdf.Getter, dict pdf.Dict, domain []float64) (*Type2, error) {
	if len(domain) != 2 {
		return nil, &pdf.ArrayLengthError{Expected: 2, Found: len(domain)}
	}
	f := &Type2{XMin: domain[0], XMax: domain[1]}
	var rng *[]float64
	numbers := pdf.ArrayOf(pdf.AsNumber)
	s := &pdf.Schema{Fields: []pdf.Field{
		pdf.Default("C0", &f.C0, []float64{0}, numbers),
		pdf.Default("C1", &f.C1, []float64{1}, numbers),
		pdf.Required("N", &f.N, pdf.AsNumber),
		pdf.Optional("Range", &rng, numbers),
	}}
	if _, err := s.Decode(r, dict); err != nil {
		return nil, err
	}
	if rng != nil {
		f.Range = *rng
	}

	if len(f.C0) != len(f.C1) {
		return nil, pdf.Errorf("/C0 and /C1 have different lengths")
	}
	if f.N != math.Floor(f.N) && f.XMin < 0 {
		return nil, pdf.Errorf("non-integer exponent %g requires non-negative domain", f.N)
	}
	if f.N < 0 && f.XMin <= 0 && f.XMax >= 0 {
		return nil, pdf.Errorf("negative exponent %g requires domain excluding 0", f.N)
	}
	return f, nil
}
