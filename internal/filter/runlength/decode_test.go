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

package runlength

import (
	"bytes"
	"io"
	"testing"
)

func TestDecode(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		out  string
	}{
		{"empty", []byte{128}, ""},
		{"literal", []byte{2, 'a', 'b', 'c', 128}, "abc"},
		{"repeat", []byte{254, 'x', 128}, "xxx"},
		{"mixed", []byte{0, 'a', 255, 'b', 1, 'c', 'd', 128}, "abbcd"},
		{"no EOD", []byte{1, 'h', 'i'}, "hi"},
		{"after EOD", []byte{0, 'a', 128, 0, 'b'}, "a"},
	}
	for _, c := range cases {
		got, err := io.ReadAll(Decode(bytes.NewReader(c.in)))
		if err != nil {
			t.Errorf("%s: %v", c.name, err)
			continue
		}
		if string(got) != c.out {
			t.Errorf("%s: got %q, want %q", c.name, got, c.out)
		}
	}
}

func TestDecodeLongRun(t *testing.T) {
	got, err := io.ReadAll(Decode(bytes.NewReader([]byte{129, 'z', 129, 'y', 128})))
	if err != nil {
		t.Fatal(err)
	}
	want := bytes.Repeat([]byte{'z'}, 128)
	want = append(want, bytes.Repeat([]byte{'y'}, 128)...)
	if !bytes.Equal(got, want) {
		t.Errorf("got %d bytes, want %d", len(got), len(want))
	}
}

func TestDecodeTruncated(t *testing.T) {
	_, err := io.ReadAll(Decode(bytes.NewReader([]byte{5, 'a', 'b'})))
	if err != io.ErrUnexpectedEOF {
		t.Errorf("expected ErrUnexpectedEOF, got %v", err)
	}
}
