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

package content

import (
	"bytes"
	"compress/zlib"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/pdfcore/filter"
	"seehuhn.de/go/pdfcore/pdf"
)

func TestAssembleArray(t *testing.T) {
	r := pdf.NewMemStore()

	buf := &bytes.Buffer{}
	w := zlib.NewWriter(buf)
	w.Write([]byte("def"))
	w.Close()

	part1 := r.Add(&pdf.Stream{Dict: pdf.Dict{}, Data: []byte("abc")})
	part2 := r.Add(&pdf.Stream{
		Dict: pdf.Dict{"Filter": pdf.Name("FlateDecode")},
		Data: buf.Bytes(),
	})
	contents := r.Add(pdf.Array{part1, part2})

	stm, err := Assemble(r, contents)
	if err != nil {
		t.Fatal(err)
	}
	if string(stm.Data) != "abcdef" {
		t.Errorf("got %q, want %q", stm.Data, "abcdef")
	}
	if s := stm.String(); s != "<content stream, 6 bytes>" {
		t.Errorf("wrong debug string %q", s)
	}
}

func TestAssembleSingle(t *testing.T) {
	r := pdf.NewMemStore()
	ref := r.Add(&pdf.Stream{
		Dict: pdf.Dict{"Filter": pdf.Name("ASCIIHexDecode")},
		Data: []byte("3020302030207267>"),
	})
	stm, err := Assemble(r, ref)
	if err != nil {
		t.Fatal(err)
	}
	if string(stm.Data) != "0 0 0 rg" {
		t.Errorf("got %q", stm.Data)
	}

	empty, err := Assemble(r, pdf.Array{})
	if err != nil {
		t.Fatal(err)
	}
	if len(empty.Data) != 0 {
		t.Errorf("got %q", empty.Data)
	}
}

func TestAssembleShapeErrors(t *testing.T) {
	r := pdf.NewMemStore()
	good := r.Add(&pdf.Stream{Dict: pdf.Dict{}, Data: []byte("q")})
	want := []pdf.ObjectType{pdf.TypeArray, pdf.TypeStream}

	cases := []pdf.Object{
		pdf.Dict{},
		pdf.Integer(1),
		nil,
		pdf.Array{good, pdf.Name("x")},
		pdf.Array{good, nil},
	}
	for i, obj := range cases {
		_, err := Assemble(r, obj)
		var typeErr *pdf.TypeError
		if !errors.As(err, &typeErr) {
			t.Errorf("%d: expected TypeError, got %v", i, err)
			continue
		}
		if d := cmp.Diff(want, typeErr.Expected); d != "" {
			t.Errorf("%d: %s", i, d)
		}
	}
}

func TestAssembleUnsupportedFilter(t *testing.T) {
	r := pdf.NewMemStore()
	bad := r.Add(&pdf.Stream{Dict: pdf.Dict{"Filter": pdf.Name("Bogus")}})
	good := r.Add(&pdf.Stream{Dict: pdf.Dict{}, Data: []byte("Q")})

	_, err := Assemble(r, pdf.Array{good, bad})
	var unsupported *filter.UnsupportedFilterError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedFilterError, got %v", err)
	}

	stm, err := Assemble(r, good)
	if err != nil || string(stm.Data) != "Q" {
		t.Errorf("unrelated stream failed: %v", err)
	}
}

func TestAssemblerCustomRegistry(t *testing.T) {
	reg := filter.NewRegistry()
	a := &Assembler{Filters: reg}

	r := pdf.NewMemStore()
	ref := r.Add(&pdf.Stream{
		Dict: pdf.Dict{"Filter": pdf.Name("ASCIIHexDecode")},
		Data: []byte("41>"),
	})
	_, err := a.Assemble(r, ref)
	if !errors.Is(err, pdf.ErrNotSupported) {
		t.Errorf("expected ErrNotSupported, got %v", err)
	}
}
