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
	"slices"

	"seehuhn.de/go/pdfcore/filter"
	"seehuhn.de/go/pdfcore/pdf"
)

// Type0 is a sampled function.  The function values are given by a table of
// samples, values between the sample points are obtained by multilinear
// interpolation.
type Type0 struct {
	Domain []float64
	Range  []float64

	// Size gives the number of samples in each input dimension.
	Size []int

	// BitsPerSample is one of 1, 2, 4, 8, 12, 16, 24 or 32.
	BitsPerSample int

	// Order is the interpolation order, either 1 or 3.
	// Cubic interpolation is evaluated as linear interpolation.
	Order int

	Encode []float64
	Decode []float64

	// Samples holds the decoded sample table.  The first input dimension
	// varies fastest.
	Samples []byte
}

// FunctionType returns 0.
func (f *Type0) FunctionType() int {
	return 0
}

// Shape returns the number of input and output values of the function.
func (f *Type0) Shape() (int, int) {
	return len(f.Domain) / 2, len(f.Range) / 2
}

// Apply evaluates the function.
func (f *Type0) Apply(inputs ...float64) []float64 {
	x := clipInputs(f.Domain, inputs)
	m, n := f.Shape()

	// e[i] is the fractional sample index in dimension i.
	e := make([]float64, m)
	for i := range m {
		e[i] = interpolate(x[i], f.Domain[2*i], f.Domain[2*i+1],
			f.Encode[2*i], f.Encode[2*i+1])
		e[i] = clip(e[i], 0, float64(f.Size[i]-1))
	}

	base := make([]int, m)
	frac := make([]float64, m)
	var active []int
	for i, ei := range e {
		b := int(math.Floor(ei))
		if b >= f.Size[i]-1 {
			b = f.Size[i] - 1
		}
		base[i] = b
		frac[i] = ei - float64(b)
		if frac[i] > 0 {
			active = append(active, i)
		}
	}

	res := make([]float64, n)
	idx := make([]int, m)
	for corner := range 1 << len(active) {
		copy(idx, base)
		w := 1.0
		for k, i := range active {
			if corner&(1<<k) != 0 {
				idx[i]++
				w *= frac[i]
			} else {
				w *= 1 - frac[i]
			}
		}
		if w == 0 {
			continue
		}
		pos := f.sampleIndex(idx) * n
		for j := range n {
			res[j] += w * float64(f.sample(pos+j))
		}
	}

	maxVal := float64(uint64(1)<<f.BitsPerSample - 1)
	for j := range n {
		res[j] = interpolate(res[j], 0, maxVal, f.Decode[2*j], f.Decode[2*j+1])
	}
	return clipOutputs(f.Range, res)
}

// sampleIndex returns the number of the sample point at the given
// table position.
func (f *Type0) sampleIndex(idx []int) int {
	pos := 0
	for i := len(idx) - 1; i >= 0; i-- {
		pos = pos*f.Size[i] + idx[i]
	}
	return pos
}

// sample returns the k-th sample value in the table.
func (f *Type0) sample(k int) uint32 {
	bps := f.BitsPerSample
	first := k * bps
	last := first + bps
	var w uint64
	for _, b := range f.Samples[first/8 : (last+7)/8] {
		w = w<<8 | uint64(b)
	}
	w >>= uint((8 - last%8) % 8)
	return uint32(w & (1<<bps - 1))
}

var validBitsPerSample = []int{1, 2, 4, 8, 12, 16, 24, 32}

func extractType0(r pdf.Getter, stm *pdf.Stream, domain []float64) (*Type0, error) {
	f := &Type0{Domain: domain}
	m := len(domain) / 2

	var encode, decode *[]float64
	numbers := pdf.ArrayOf(pdf.AsNumber)
	s := &pdf.Schema{Fields: []pdf.Field{
		pdf.Required("Range", &f.Range, numbers),
		pdf.Required("Size", &f.Size, pdf.ArrayOfLen(pdf.AsInt, m)),
		pdf.Required("BitsPerSample", &f.BitsPerSample, pdf.AsInt),
		pdf.Default("Order", &f.Order, 1, pdf.AsInt),
		pdf.Optional("Encode", &encode, pdf.ArrayOfLen(pdf.AsNumber, 2*m)),
		pdf.Optional("Decode", &decode, numbers),
	}}
	if _, err := s.Decode(r, stm.Dict); err != nil {
		return nil, err
	}

	if len(f.Range) == 0 || !isRanges(f.Range) {
		return nil, pdf.Wrap(pdf.Errorf("invalid range %v", f.Range), "/Range")
	}
	n := len(f.Range) / 2
	for _, sz := range f.Size {
		if sz < 1 {
			return nil, pdf.Errorf("invalid /Size %v", f.Size)
		}
	}
	if !slices.Contains(validBitsPerSample, f.BitsPerSample) {
		return nil, pdf.Errorf("invalid /BitsPerSample %d", f.BitsPerSample)
	}
	if f.Order != 1 && f.Order != 3 {
		return nil, pdf.Errorf("invalid /Order %d", f.Order)
	}

	if encode != nil {
		f.Encode = *encode
	} else {
		f.Encode = make([]float64, 2*m)
		for i, sz := range f.Size {
			f.Encode[2*i+1] = float64(sz - 1)
		}
	}
	if decode != nil {
		if len(*decode) != 2*n {
			return nil, pdf.Wrap(&pdf.ArrayLengthError{Expected: 2 * n, Found: len(*decode)}, "/Decode")
		}
		f.Decode = *decode
	} else {
		f.Decode = slices.Clone(f.Range)
	}

	data, err := filter.Default.DecodeBytes(r, stm)
	if err != nil {
		return nil, err
	}
	avail := 8 * len(data)
	total := n * f.BitsPerSample
	if total > avail {
		return nil, pdf.Errorf("not enough sample data")
	}
	for _, sz := range f.Size {
		if sz > avail/total {
			return nil, pdf.Errorf("not enough sample data")
		}
		total *= sz
	}
	f.Samples = data[:(total+7)/8]
	return f, nil
}
