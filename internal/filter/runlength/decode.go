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

// Package runlength implements the RunLengthDecode filter.
package runlength

import (
	"bufio"
	"io"
)

// Decode returns a reader which decodes data in run-length format.
//
// Each run starts with a length byte L.  For L < 128, the following L+1
// bytes are copied literally.  For L > 128, the following byte is repeated
// 257-L times.  L = 128 marks the end of data.
func Decode(r io.Reader) io.Reader {
	return &reader{in: bufio.NewReader(r)}
}

type reader struct {
	in  *bufio.Reader
	err error

	literal bool
	count   int
	value   byte
}

func (r *reader) Read(p []byte) (n int, err error) {
	for n < len(p) && r.err == nil {
		if r.count == 0 {
			r.nextRun()
			continue
		}

		k := min(r.count, len(p)-n)
		if r.literal {
			k, err = io.ReadFull(r.in, p[n:n+k])
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			r.err = err
		} else {
			for i := range k {
				p[n+i] = r.value
			}
		}
		n += k
		r.count -= k
	}

	if n > 0 && r.err == io.EOF {
		return n, nil
	}
	return n, r.err
}

func (r *reader) nextRun() {
	length, err := r.in.ReadByte()
	if err != nil {
		// a missing end-of-data marker is tolerated
		r.err = err
		return
	}

	switch {
	case length == 128:
		r.err = io.EOF
	case length < 128:
		r.literal = true
		r.count = int(length) + 1
	default:
		r.literal = false
		r.count = 257 - int(length)
		r.value, err = r.in.ReadByte()
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		r.err = err
	}
}
