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

// Package ascii85 implements the ASCII85Decode filter.
package ascii85

import (
	"bufio"
	"errors"
	"io"

	"seehuhn.de/go/pdfcore/pdf"
)

var (
	errInvalidChar = &pdf.MalformedFileError{Err: errors.New("ASCII85Decode: invalid character")}
	errInvalidEnd  = &pdf.MalformedFileError{Err: errors.New("ASCII85Decode: invalid end of data")}
)

// Decode returns a reader which decodes ASCII base-85 data.
// The data must be terminated by the end-of-data marker "~>".
func Decode(r io.Reader) io.Reader {
	return &reader{in: bufio.NewReader(r)}
}

type reader struct {
	in  *bufio.Reader
	err error

	// out holds decoded bytes not yet returned to the caller
	out    [4]byte
	outPos int
	outLen int
}

func (r *reader) Read(p []byte) (n int, err error) {
	for n < len(p) {
		if r.outPos < r.outLen {
			k := copy(p[n:], r.out[r.outPos:r.outLen])
			r.outPos += k
			n += k
			continue
		}
		if r.err != nil {
			break
		}
		r.nextGroup()
	}

	if n > 0 {
		return n, nil
	}
	return 0, r.err
}

// nextGroup decodes one group of up to five input characters.
func (r *reader) nextGroup() {
	var v uint32
	k := 0
	for k < 5 {
		c, err := r.in.ReadByte()
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		if err != nil {
			r.err = err
			return
		}

		switch {
		case c == 0 || c == 9 || c == 10 || c == 12 || c == 13 || c == 32:
			continue
		case c == 'z' && k == 0:
			r.emit(0, 4)
			return
		case c == '~':
			c2, err := r.in.ReadByte()
			if err != nil {
				r.err = &pdf.ByteMismatchError{Expected: []byte{'>'}, Found: -1}
				return
			} else if c2 != '>' {
				r.err = &pdf.ByteMismatchError{Expected: []byte{'>'}, Found: int(c2)}
				return
			} else if k == 1 {
				r.err = errInvalidEnd
				return
			}
			if k > 0 {
				for i := k; i < 5; i++ {
					v = v*85 + 84
				}
				r.emit(v, k-1)
			}
			r.err = io.EOF
			return
		case c >= '!' && c <= 'u':
			v = v*85 + uint32(c-'!')
			k++
		default:
			r.err = errInvalidChar
			return
		}
	}
	r.emit(v, 4)
}

func (r *reader) emit(v uint32, n int) {
	r.out = [4]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
	r.outPos = 0
	r.outLen = n
}
