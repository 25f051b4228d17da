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

// Package asciihex implements the ASCIIHexDecode filter.
package asciihex

import (
	"bufio"
	"io"

	"seehuhn.de/go/pdfcore/pdf"
)

var validChars = []byte("0123456789ABCDEFabcdef>")

// Decode returns a reader which decodes data in ASCII hexadecimal form.
// White-space is ignored.  The data must be terminated by '>'; a final
// odd digit is treated as if it were followed by 0.
func Decode(r io.Reader) io.Reader {
	return &reader{in: bufio.NewReader(r)}
}

type reader struct {
	in  *bufio.Reader
	err error
}

func (r *reader) Read(p []byte) (int, error) {
	n := 0
	var high byte
	haveHigh := false
	for n < len(p) && r.err == nil {
		c, err := r.in.ReadByte()
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		if err != nil {
			r.err = err
			break
		}

		var v byte
		switch {
		case c >= '0' && c <= '9':
			v = c - '0'
		case c >= 'A' && c <= 'F':
			v = c - 'A' + 10
		case c >= 'a' && c <= 'f':
			v = c - 'a' + 10
		case c == 0 || c == 9 || c == 10 || c == 12 || c == 13 || c == 32:
			continue
		case c == '>':
			r.err = io.EOF
			continue
		default:
			r.err = &pdf.ByteMismatchError{Expected: validChars, Found: int(c)}
			continue
		}

		if haveHigh {
			p[n] = high<<4 | v
			n++
			haveHigh = false
		} else {
			high = v
			haveHigh = true
		}
	}

	if haveHigh && r.err == io.EOF {
		p[n] = high << 4
		n++
	}
	if n > 0 && r.err == io.EOF {
		return n, nil
	}
	return n, r.err
}
