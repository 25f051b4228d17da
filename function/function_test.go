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
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"seehuhn.de/go/pdfcore/pdf"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func numbers(x ...float64) pdf.Array {
	res := make(pdf.Array, len(x))
	for i, xi := range x {
		res[i] = pdf.Real(xi)
	}
	return res
}

func TestType2(t *testing.T) {
	r := pdf.NewMemStore()
	obj := pdf.Dict{
		"FunctionType": pdf.Integer(2),
		"Domain":       numbers(0, 1),
		"C0":           numbers(0, 10),
		"C1":           numbers(1, 20),
		"N":            pdf.Integer(2),
	}
	f, err := Extract(r, obj)
	if err != nil {
		t.Fatal(err)
	}
	if m, n := f.Shape(); m != 1 || n != 2 {
		t.Errorf("wrong shape (%d, %d)", m, n)
	}

	cases := []struct {
		in   float64
		want []float64
	}{
		{0, []float64{0, 10}},
		{0.5, []float64{0.25, 12.5}},
		{1, []float64{1, 20}},
		{2, []float64{1, 20}}, // clipped to the domain
		{-1, []float64{0, 10}},
	}
	for _, c := range cases {
		got := f.Apply(c.in)
		if d := cmp.Diff(c.want, got, approx); d != "" {
			t.Errorf("f(%g): %s", c.in, d)
		}
	}
}

func TestType2Defaults(t *testing.T) {
	r := pdf.NewMemStore()
	obj := pdf.Dict{
		"FunctionType": pdf.Integer(2),
		"Domain":       numbers(0, 1),
		"N":            pdf.Real(1),
	}
	f, err := Extract(r, obj)
	if err != nil {
		t.Fatal(err)
	}
	f2 := f.(*Type2)
	if d := cmp.Diff([]float64{0}, f2.C0); d != "" {
		t.Error(d)
	}
	if d := cmp.Diff([]float64{1}, f2.C1); d != "" {
		t.Error(d)
	}
	if got := f.Apply(0.3); math.Abs(got[0]-0.3) > 1e-9 {
		t.Errorf("f(0.3) = %g", got[0])
	}
}

func TestType3(t *testing.T) {
	r := pdf.NewMemStore()
	ref := r.Add(pdf.Dict{
		"FunctionType": pdf.Integer(2),
		"Domain":       numbers(0, 1),
		"C0":           numbers(10),
		"C1":           numbers(20),
		"N":            pdf.Integer(1),
	})
	obj := pdf.Dict{
		"FunctionType": pdf.Integer(3),
		"Domain":       numbers(0, 1),
		"Functions": pdf.Array{
			pdf.Dict{
				"FunctionType": pdf.Integer(2),
				"Domain":       numbers(0, 1),
				"N":            pdf.Integer(1),
			},
			ref,
		},
		"Bounds": numbers(0.5),
		"Encode": numbers(0, 1, 0, 1),
	}
	f, err := Extract(r, obj)
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{0.25, 0.5},
		{0.5, 10},
		{0.75, 15},
		{1, 20},
	}
	for _, c := range cases {
		got := f.Apply(c.in)
		if d := cmp.Diff([]float64{c.want}, got, approx); d != "" {
			t.Errorf("f(%g): %s", c.in, d)
		}
	}
}

func TestType3Nesting(t *testing.T) {
	r := pdf.NewMemStore()
	ref := r.Alloc()
	r.Put(ref, pdf.Dict{
		"FunctionType": pdf.Integer(3),
		"Domain":       numbers(0, 1),
		"Functions":    pdf.Array{ref},
		"Bounds":       pdf.Array{},
		"Encode":       numbers(0, 1),
	})
	_, err := Extract(r, ref)
	if err == nil {
		t.Fatal("self-referencing stitching function accepted")
	}
	if !pdf.IsMalformed(err) {
		t.Errorf("unexpected error type: %v", err)
	}
}

func TestType0(t *testing.T) {
	r := pdf.NewMemStore()
	stm := &pdf.Stream{
		Dict: pdf.Dict{
			"FunctionType":  pdf.Integer(0),
			"Domain":        numbers(0, 1),
			"Range":         numbers(0, 1),
			"Size":          pdf.Array{pdf.Integer(3)},
			"BitsPerSample": pdf.Integer(8),
		},
		Data: []byte{0, 255, 0},
	}
	f, err := Extract(r, stm)
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{0.25, 0.5},
		{0.5, 1},
		{0.75, 0.5},
		{1, 0},
	}
	for _, c := range cases {
		got := f.Apply(c.in)
		if d := cmp.Diff([]float64{c.want}, got, approx); d != "" {
			t.Errorf("f(%g): %s", c.in, d)
		}
	}
}

func TestType0TwoInputs(t *testing.T) {
	r := pdf.NewMemStore()
	stm := &pdf.Stream{
		Dict: pdf.Dict{
			"FunctionType":  pdf.Integer(0),
			"Domain":        numbers(0, 1, 0, 1),
			"Range":         numbers(0, 1),
			"Size":          pdf.Array{pdf.Integer(2), pdf.Integer(2)},
			"BitsPerSample": pdf.Integer(4),
		},
		// samples 0, 15, 15, 15, packed into nibbles
		Data: []byte{0x0F, 0xFF},
	}
	f, err := Extract(r, stm)
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		x, y, want float64
	}{
		{0, 0, 0},
		{1, 0, 1},
		{0, 1, 1},
		{0.5, 0.5, 0.75},
		{0.5, 0, 0.5},
	}
	for _, c := range cases {
		got := f.Apply(c.x, c.y)
		if d := cmp.Diff([]float64{c.want}, got, approx); d != "" {
			t.Errorf("f(%g, %g): %s", c.x, c.y, d)
		}
	}
}

func TestType0ShortData(t *testing.T) {
	r := pdf.NewMemStore()
	stm := &pdf.Stream{
		Dict: pdf.Dict{
			"FunctionType":  pdf.Integer(0),
			"Domain":        numbers(0, 1),
			"Range":         numbers(0, 1, 0, 1),
			"Size":          pdf.Array{pdf.Integer(4)},
			"BitsPerSample": pdf.Integer(16),
		},
		Data: make([]byte, 15),
	}
	_, err := Extract(r, stm)
	if !pdf.IsMalformed(err) {
		t.Errorf("expected malformed file error, got %v", err)
	}
}

func TestType0Samples(t *testing.T) {
	cases := []struct {
		bps  int
		data []byte
		k    int
		want uint32
	}{
		{1, []byte{0x52}, 1, 1},
		{1, []byte{0x52}, 3, 1},
		{1, []byte{0x52}, 6, 1},
		{1, []byte{0x52}, 7, 0},
		{2, []byte{0x1B}, 1, 1},
		{2, []byte{0x1B}, 3, 3},
		{4, []byte{0x12, 0x34}, 1, 2},
		{4, []byte{0x12, 0x34}, 3, 4},
		{8, []byte{0x12, 0x34}, 1, 0x34},
		{12, []byte{0x12, 0x34, 0x56}, 0, 0x123},
		{12, []byte{0x12, 0x34, 0x56}, 1, 0x456},
		{12, []byte{0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC}, 2, 0x789},
		{12, []byte{0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC}, 3, 0xABC},
		{16, []byte{0x12, 0x34, 0x56, 0x78}, 1, 0x5678},
		{24, []byte{1, 2, 3, 4, 5, 6}, 1, 0x040506},
		{32, []byte{0, 0, 0, 0, 0xDE, 0xAD, 0xBE, 0xEF}, 1, 0xDEADBEEF},
	}
	for _, c := range cases {
		f := &Type0{BitsPerSample: c.bps, Samples: c.data}
		got := f.sample(c.k)
		if got != c.want {
			t.Errorf("%d bits, sample %d: got %#x, want %#x", c.bps, c.k, got, c.want)
		}
	}
}

func TestType012Bit(t *testing.T) {
	r := pdf.NewMemStore()
	stm := &pdf.Stream{
		Dict: pdf.Dict{
			"FunctionType":  pdf.Integer(0),
			"Domain":        numbers(0, 1),
			"Range":         numbers(0, 4095),
			"Size":          pdf.Array{pdf.Integer(2)},
			"BitsPerSample": pdf.Integer(12),
		},
		Data: []byte{0x12, 0x34, 0x56},
	}
	f, err := Extract(r, stm)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range []struct{ in, want float64 }{{0, 0x123}, {1, 0x456}} {
		got := f.Apply(c.in)
		if d := cmp.Diff([]float64{c.want}, got, approx); d != "" {
			t.Errorf("f(%g): %s", c.in, d)
		}
	}
}

func TestType0HugeSize(t *testing.T) {
	sizes := []pdf.Array{
		{pdf.Integer(1 << 61)},
		{pdf.Integer(1 << 40), pdf.Integer(1 << 40)},
		{pdf.Integer(1 << 32), pdf.Integer(1 << 31)},
	}
	r := pdf.NewMemStore()
	for _, size := range sizes {
		domain := make([]float64, 2*len(size))
		for i := range len(size) {
			domain[2*i+1] = 1
		}
		stm := &pdf.Stream{
			Dict: pdf.Dict{
				"FunctionType":  pdf.Integer(0),
				"Domain":        numbers(domain...),
				"Range":         numbers(0, 1),
				"Size":          size,
				"BitsPerSample": pdf.Integer(8),
			},
			Data: make([]byte, 16),
		}
		_, err := Extract(r, stm)
		if !pdf.IsMalformed(err) {
			t.Errorf("/Size %v: expected malformed file error, got %v", size, err)
		}
	}
}

func TestType4(t *testing.T) {
	r := pdf.NewMemStore()
	cases := []struct {
		program string
		in      float64
		want    float64
	}{
		{"{ 2 mul }", 0.3, 0.6},
		{"{2 mul}", 0.3, 0.6},
		{"{ dup 0.5 gt { pop 1 } { pop 0 } ifelse }", 0.7, 1},
		{"{ dup 0.5 gt { pop 1 } { pop 0 } ifelse }", 0.2, 0},
		{"{ dup 0.5 lt { pop 0.25 } if }", 0.2, 0.25},
		{"{ dup 0.5 lt { pop 0.25 } if }", 0.9, 0.9},
		{"{ % comment\n 1 exch sub }", 0.25, 0.75},
		{"{ 100 mul }", 1, 10},   // clipped to the range
		{"{ pop pop }", 0.5, 0},  // stack underflow
		{"{ pop true }", 0.5, 0}, // boolean result
	}
	for _, c := range cases {
		stm := &pdf.Stream{
			Dict: pdf.Dict{
				"FunctionType": pdf.Integer(4),
				"Domain":       numbers(0, 1),
				"Range":        numbers(0, 10),
			},
			Data: []byte(c.program),
		}
		f, err := Extract(r, stm)
		if err != nil {
			t.Errorf("%q: %v", c.program, err)
			continue
		}
		got := f.Apply(c.in)
		if d := cmp.Diff([]float64{c.want}, got, approx); d != "" {
			t.Errorf("%q(%g): %s", c.program, c.in, d)
		}
	}
}

func TestType4SyntaxErrors(t *testing.T) {
	r := pdf.NewMemStore()
	for _, program := range []string{
		"2 mul",
		"{ 2 mul",
		"{ 2 mul } 3",
		"{ 2 frobnicate }",
		"{ { 1 } }",
		"{ { 1 } { 2 } if }",
	} {
		stm := &pdf.Stream{
			Dict: pdf.Dict{
				"FunctionType": pdf.Integer(4),
				"Domain":       numbers(0, 1),
				"Range":        numbers(0, 1),
			},
			Data: []byte(program),
		}
		_, err := Extract(r, stm)
		if !pdf.IsMalformed(err) {
			t.Errorf("%q: expected malformed file error, got %v", program, err)
		}
	}
}

func TestCalculator(t *testing.T) {
	cases := []struct {
		program string
		want    []float64
	}{
		{"{ 7 2 idiv }", []float64{3}},
		{"{ -7 2 idiv }", []float64{-3}},
		{"{ 7 3 mod }", []float64{1}},
		{"{ 1 2 add 4 mul 2 div }", []float64{6}},
		{"{ 2 3 exp }", []float64{8}},
		{"{ 100 log }", []float64{2}},
		{"{ 0 1 atan }", []float64{0}},
		{"{ 1 0 atan }", []float64{90}},
		{"{ -1 0 atan }", []float64{270}},
		{"{ 90 sin 0 cos }", []float64{1, 1}},
		{"{ 16 sqrt -3 abs 5 neg }", []float64{4, 3, -5}},
		{"{ 2.5 round -2.5 round 2.7 truncate -2.7 floor 2.1 ceiling }", []float64{3, -2, 2, -3, 3}},
		{"{ 3.9 cvi 3 cvr }", []float64{3, 3}},
		{"{ 1 3 bitshift 16 -2 bitshift }", []float64{8, 4}},
		{"{ 12 10 and 12 10 or 12 10 xor }", []float64{8, 14, 6}},
		{"{ 1 2 3 3 1 roll }", []float64{3, 1, 2}},
		{"{ 1 2 3 3 -1 roll }", []float64{2, 3, 1}},
		{"{ 1 2 2 copy }", []float64{1, 2, 1, 2}},
		{"{ 1 2 3 2 index }", []float64{1, 2, 3, 1}},
		{"{ 1 2 exch dup }", []float64{2, 1, 1}},
		{"{ 1 1 eq { 1 } { 0 } ifelse }", []float64{1}},
		{"{ 1 1.0 ne { 1 } { 0 } ifelse }", []float64{0}},
		{"{ true false or not { 1 } { 0 } ifelse }", []float64{0}},
		{"{ 3 2 ge 2 3 le and { 5 } if }", []float64{5}},
	}
	for _, c := range cases {
		code, err := compile(c.program)
		if err != nil {
			t.Errorf("%q: %v", c.program, err)
			continue
		}
		vm := &machine{}
		if err := vm.exec(code); err != nil {
			t.Errorf("%q: %v", c.program, err)
			continue
		}
		got := make([]float64, len(vm.stack))
		for i, v := range vm.stack {
			got[i] = v.num()
		}
		if d := cmp.Diff(c.want, got, approx); d != "" {
			t.Errorf("%q: %s", c.program, d)
		}
	}
}

func TestCalculatorErrors(t *testing.T) {
	cases := []struct {
		program string
		want    error
	}{
		{"{ add }", errStack},
		{"{ 1 0 div }", errRange},
		{"{ 1 0 idiv }", errRange},
		{"{ 1.5 2 idiv }", errType},
		{"{ -1 sqrt }", errRange},
		{"{ 0 ln }", errRange},
		{"{ 1 { 2 } if }", errType},
		{"{ 1 5 index }", errRange},
		{"{ true 1 add }", errType},
	}
	for _, c := range cases {
		code, err := compile(c.program)
		if err != nil {
			t.Errorf("%q: %v", c.program, err)
			continue
		}
		vm := &machine{}
		err = vm.exec(code)
		if !errors.Is(err, c.want) {
			t.Errorf("%q: got %v, want %v", c.program, err, c.want)
		}
	}
}

func TestCalculatorStackLimit(t *testing.T) {
	code, err := compile("{ " + strings.Repeat("1 ", maxStack+1) + "}")
	if err != nil {
		t.Fatal(err)
	}
	vm := &machine{}
	if err := vm.exec(code); !errors.Is(err, errStack) {
		t.Errorf("expected stack overflow, got %v", err)
	}
}

func TestExtractErrors(t *testing.T) {
	r := pdf.NewMemStore()

	_, err := Extract(r, pdf.Dict{
		"FunctionType": pdf.Integer(7),
		"Domain":       numbers(0, 1),
	})
	var unknown *pdf.UnknownVariantError
	if !errors.As(err, &unknown) {
		t.Errorf("expected UnknownVariantError, got %v", err)
	}

	_, err = Extract(r, pdf.Dict{"FunctionType": pdf.Integer(2)})
	var missing *pdf.MissingKeyError
	if !errors.As(err, &missing) || missing.Key != "Domain" {
		t.Errorf("expected missing /Domain, got %v", err)
	}

	_, err = Extract(r, pdf.Dict{
		"FunctionType": pdf.Integer(0),
		"Domain":       numbers(0, 1),
	})
	if !pdf.IsMalformed(err) {
		t.Errorf("type 0 dictionary accepted: %v", err)
	}

	_, err = Extract(r, pdf.Dict{
		"FunctionType": pdf.Integer(2),
		"Domain":       numbers(1, 0),
		"N":            pdf.Integer(1),
	})
	if !pdf.IsMalformed(err) {
		t.Errorf("invalid domain accepted: %v", err)
	}

	_, err = Extract(r, pdf.Integer(1))
	var typeErr *pdf.TypeError
	if !errors.As(err, &typeErr) {
		t.Errorf("expected TypeError, got %v", err)
	}
}
