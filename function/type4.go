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
	"fmt"

	"seehuhn.de/go/pdfcore/filter"
	"seehuhn.de/go/pdfcore/pdf"
)

// Type4 is a PostScript calculator function.
type Type4 struct {
	Domain []float64
	Range  []float64

	// Program is the source code of the function, including the
	// enclosing braces.
	Program string

	code []instr
}

// FunctionType returns 4.
func (f *Type4) FunctionType() int {
	return 4
}

// Shape returns the number of input and output values of the function.
func (f *Type4) Shape() (int, int) {
	return len(f.Domain) / 2, len(f.Range) / 2
}

// Apply evaluates the function.
//
// If the program fails at run time, for example because of a stack
// underflow or a type mismatch, all outputs are set to the lower end
// of the range.
func (f *Type4) Apply(inputs ...float64) []float64 {
	x := clipInputs(f.Domain, inputs)
	_, n := f.Shape()

	res, err := f.run(x, n)
	if err != nil {
		res = make([]float64, n)
		for i := range res {
			res[i] = f.Range[2*i]
		}
	}
	return clipOutputs(f.Range, res)
}

func (f *Type4) run(x []float64, n int) ([]float64, error) {
	code := f.code
	if code == nil {
		var err error
		code, err = compile(f.Program)
		if err != nil {
			return nil, err
		}
	}

	vm := &machine{}
	for _, xi := range x {
		if err := vm.push(realValue(xi)); err != nil {
			return nil, err
		}
	}
	if err := vm.exec(code); err != nil {
		return nil, err
	}
	if len(vm.stack) != n {
		return nil, errStack
	}
	res := make([]float64, n)
	for i, v := range vm.stack {
		if v.kind == kindBool {
			return nil, errType
		}
		res[i] = v.num()
	}
	return res, nil
}

// NewType4 returns a new calculator function.  The program must be
// enclosed in braces.
func NewType4(domain, rng []float64, program string) (*Type4, error) {
	if len(domain) == 0 || !isRanges(domain) {
		return nil, fmt.Errorf("invalid domain %v", domain)
	}
	if len(rng) == 0 || !isRanges(rng) {
		return nil, fmt.Errorf("invalid range %v", rng)
	}
	code, err := compile(program)
	if err != nil {
		return nil, err
	}
	return &Type4{Domain: domain, Range: rng, Program: program, code: code}, nil
}

func extractType4(r pdf.Getter, stm *pdf.Stream, domain []float64) (*Type4, error) {
	f := &Type4{Domain: domain}
	s := &pdf.Schema{Fields: []pdf.Field{
		pdf.Required("Range", &f.Range, pdf.ArrayOf(pdf.AsNumber)),
	}}
	if _, err := s.Decode(r, stm.Dict); err != nil {
		return nil, err
	}
	if len(f.Range) == 0 || !isRanges(f.Range) {
		return nil, pdf.Wrap(pdf.Errorf("invalid range %v", f.Range), "/Range")
	}

	data, err := filter.Default.DecodeBytes(r, stm)
	if err != nil {
		return nil, err
	}
	f.Program = string(data)
	f.code, err = compile(f.Program)
	if err != nil {
		return nil, &pdf.MalformedFileError{Err: err}
	}
	return f, nil
}
