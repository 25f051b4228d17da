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

package predict

import (
	"fmt"
	"io"
)

// NewReader returns a reader which undoes the prediction described by p
// on the data read from r.  For predictor 1, r is returned unchanged.
func NewReader(r io.Reader, p *Params) (io.Reader, error) {
	err := p.Validate()
	if err != nil {
		return nil, err
	}
	if p.Predictor == 1 {
		return r, nil
	}

	rowLen := p.bytesPerRow()
	inLen := rowLen
	if p.Predictor >= 10 {
		inLen++ // PNG rows start with an algorithm tag
	}
	return &reader{
		in:     r,
		p:      *p,
		inBuf:  make([]byte, inLen),
		row:    make([]byte, rowLen),
		prev:   make([]byte, rowLen),
		rowPos: rowLen,
		rowEnd: rowLen,
	}, nil
}

type reader struct {
	in  io.Reader
	p   Params
	err error

	inBuf []byte

	// row holds the most recently decoded row, prev the one before.
	row, prev []byte

	rowPos, rowEnd int
}

func (r *reader) Read(buf []byte) (n int, err error) {
	for n < len(buf) {
		if r.rowPos < r.rowEnd {
			k := copy(buf[n:], r.row[r.rowPos:r.rowEnd])
			r.rowPos += k
			n += k
			continue
		}
		if r.err != nil {
			break
		}
		r.nextRow()
	}
	if n > 0 {
		return n, nil
	}
	return 0, r.err
}

// nextRow reads and decodes one row.  A truncated final row is decoded
// as far as the data goes.
func (r *reader) nextRow() {
	k, err := io.ReadFull(r.in, r.inBuf)
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	r.err = err
	if k == 0 {
		return
	}

	r.row, r.prev = r.prev, r.row
	data := r.inBuf[:k]
	if r.p.Predictor == 2 {
		copy(r.row, data)
		r.rowEnd = k
		r.undoTIFF(r.row[:k])
	} else {
		tag := data[0]
		data = data[1:]
		r.rowEnd = len(data)
		derr := r.undoPNG(tag, data)
		if derr != nil {
			r.err = derr
			r.rowEnd = 0
		}
	}
	r.rowPos = 0
}

func (r *reader) undoTIFF(row []byte) {
	colors := r.p.Colors
	switch r.p.BitsPerComponent {
	case 8:
		for i := colors; i < len(row); i++ {
			row[i] += row[i-colors]
		}
	case 16:
		for i := 2 * colors; i+1 < len(row); i += 2 {
			j := i - 2*colors
			v := uint16(row[i])<<8 | uint16(row[i+1])
			v += uint16(row[j])<<8 | uint16(row[j+1])
			row[i] = byte(v >> 8)
			row[i+1] = byte(v)
		}
	default:
		bpc := r.p.BitsPerComponent
		mask := byte(1)<<bpc - 1
		perRow := colors * r.p.Columns
		get := func(idx int) byte {
			bit := idx * bpc
			shift := 8 - bpc - bit%8
			return row[bit/8] >> shift & mask
		}
		for idx := colors; idx < perRow && (idx*bpc)/8 < len(row); idx++ {
			v := (get(idx) + get(idx-colors)) & mask
			bit := idx * bpc
			shift := 8 - bpc - bit%8
			row[bit/8] = row[bit/8]&^(mask<<shift) | v<<shift
		}
	}
}

func (r *reader) undoPNG(tag byte, data []byte) error {
	bpp := r.p.bytesPerPixel()
	cur, prev := r.row, r.prev
	for i, x := range data {
		var left, up, upLeft byte
		if i >= bpp {
			left = cur[i-bpp]
			upLeft = prev[i-bpp]
		}
		up = prev[i]

		switch tag {
		case 0:
			cur[i] = x
		case 1:
			cur[i] = x + left
		case 2:
			cur[i] = x + up
		case 3:
			cur[i] = x + byte((int(left)+int(up))/2)
		case 4:
			cur[i] = x + paeth(left, up, upLeft)
		default:
			return fmt.Errorf("invalid PNG predictor tag %d", tag)
		}
	}
	return nil
}

func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))
	switch {
	case pa <= pb && pa <= pc:
		return a
	case pb <= pc:
		return b
	default:
		return c
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
