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

package pdf

import (
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		obj  Object
		want string
	}{
		{nil, "null"},
		{Bool(false), "false"},
		{Integer(-12), "-12"},
		{Real(1), "1."},
		{Real(0.25), "0.25"},
		{String("a(b)c"), "(a(b)c)"},
		{String("a)b"), `(a\)b)`},
		{String("\x00\x01\x02"), "<000102>"},
		{Name("Type"), "/Type"},
		{Name("A#B"), "/A#23B"},
		{Array{Integer(1), Name("x"), nil}, "[1 /x null]"},
		{Dict{"B": Integer(2), "A": Integer(1), "C": nil}, "<<\n/A 1\n/B 2\n>>"},
		{NewReference(12, 1), "12 1 R"},
		{&Stream{Dict: Dict{}, Data: []byte("q")}, "<<\n/Length 1\n>>\nstream\nq\nendstream"},
	}
	for _, c := range cases {
		got := Format(c.obj)
		if got != c.want {
			t.Errorf("Format(%#v) = %q, want %q", c.obj, got, c.want)
		}
	}
}

func TestReference(t *testing.T) {
	ref := NewReference(0xFFFFFFFF, 7)
	if ref.Number() != 0xFFFFFFFF || ref.Generation() != 7 {
		t.Errorf("wrong decomposition of %s", ref)
	}
	if NewReference(3, 0) != NewReference(3, 0) {
		t.Error("equal references compare unequal")
	}
	if NewReference(3, 0) == NewReference(3, 1) {
		t.Error("references with different generations compare equal")
	}
	if s := NewReference(5, 0).String(); s != "obj_5" {
		t.Errorf("got %q", s)
	}
	if s := NewReference(5, 2).String(); s != "obj_5@2" {
		t.Errorf("got %q", s)
	}
}

func TestTypeOf(t *testing.T) {
	objs := []Object{
		nil, Bool(true), Integer(1), Real(1), String(""), Name(""),
		Array{}, Dict{}, &Stream{}, Reference(0),
	}
	var got []string
	for _, obj := range objs {
		got = append(got, TypeOf(obj).String())
	}
	want := []string{
		"Null", "Boolean", "Integer", "Real", "String", "Name",
		"Array", "Dictionary", "Stream", "Reference",
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Error(d)
	}
}

func TestEqual(t *testing.T) {
	a := Dict{"A": Array{Integer(1), String("x")}, "N": nil}
	b := Dict{"A": Array{Integer(1), String("x")}}
	if !Equal(a, b) {
		t.Error("dicts differing only in null entries compare unequal")
	}
	b["A"] = Array{Integer(1), String("y")}
	if Equal(a, b) {
		t.Error("different dicts compare equal")
	}
	if Equal(Integer(1), Real(1)) {
		t.Error("integer and real compare equal")
	}
	s1 := &Stream{Dict: Dict{"Length": Integer(1)}, Data: []byte("x")}
	s2 := &Stream{Dict: Dict{"Length": Integer(1)}, Data: []byte("x")}
	if !Equal(s1, s2) {
		t.Error("equal streams compare unequal")
	}
}

func TestTextString(t *testing.T) {
	cases := []struct {
		in   String
		want string
	}{
		{String("plain"), "plain"},
		{String("\xfe\xff\x00A\x00\xe4"), "Aä"},
		{String("\xef\xbb\xbfgr\xc3\xbc\xc3\x9f"), "grüß"},
		{String("\x80 \xa0"), "• €"},
		{String("caf\xe9"), "café"},
		{String("\xa1Ol\xe9! \xff"), "¡Olé! ÿ"},
		{String("\xc4rger"), "Ärger"},
		{String("a\x18b"), "a\u02d8b"},
	}
	for _, c := range cases {
		got := c.in.AsTextString()
		if got != c.want {
			t.Errorf("AsTextString(%q) = %q, want %q", []byte(c.in), got, c.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("AsTextString(%q) is not valid UTF-8", []byte(c.in))
		}
	}
}
