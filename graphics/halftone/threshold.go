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

package halftone

import (
	"encoding/binary"

	"seehuhn.de/go/pdfcore/filter"
	"seehuhn.de/go/pdfcore/pdf"
)

// Type6 is a threshold array with 8-bit thresholds, using a rectangular
// cell.
type Type6 struct {
	common
	Width, Height int

	// Thresholds holds Width*Height values, row by row.
	Thresholds []byte
}

// HalftoneType returns 6.
func (h *Type6) HalftoneType() int {
	return 6
}

// Type10 is a threshold array with 8-bit thresholds, describing a cell
// made up of two squares.
type Type10 struct {
	common
	Xsquare, Ysquare int

	// Thresholds holds Xsquare*Xsquare + Ysquare*Ysquare values.
	Thresholds []byte
}

// HalftoneType returns 10.
func (h *Type10) HalftoneType() int {
	return 10
}

// Type16 is a threshold array with 16-bit thresholds.  The cell consists
// of one or two rectangles.
type Type16 struct {
	common
	Width, Height int

	// Width2 and Height2 give the size of the second rectangle.
	// Both are zero if there is only one rectangle.
	Width2, Height2 int

	Thresholds []uint16
}

// HalftoneType returns 16.
func (h *Type16) HalftoneType() int {
	return 16
}

func extractType6(r pdf.Getter, stm *pdf.Stream) (*Type6, error) {
	h := &Type6{}
	s := &pdf.Schema{Fields: []pdf.Field{
		pdf.Required("Width", &h.Width, pdf.AsInt),
		pdf.Required("Height", &h.Height, pdf.AsInt),
	}}
	if _, err := s.Decode(r, stm.Dict); err != nil {
		return nil, err
	}
	if err := decodeCommon(r, stm.Dict, &h.common); err != nil {
		return nil, err
	}
	if h.Width <= 0 || h.Height <= 0 {
		return nil, pdf.Errorf("invalid threshold array size %dx%d", h.Width, h.Height)
	}

	n, err := cellArea(h.Width, h.Height)
	if err != nil {
		return nil, err
	}
	h.Thresholds, err = thresholds(r, stm, n)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func extractType10(r pdf.Getter, stm *pdf.Stream) (*Type10, error) {
	h := &Type10{}
	s := &pdf.Schema{Fields: []pdf.Field{
		pdf.Required("Xsquare", &h.Xsquare, pdf.AsInt),
		pdf.Required("Ysquare", &h.Ysquare, pdf.AsInt),
	}}
	if _, err := s.Decode(r, stm.Dict); err != nil {
		return nil, err
	}
	if err := decodeCommon(r, stm.Dict, &h.common); err != nil {
		return nil, err
	}
	if h.Xsquare <= 0 || h.Ysquare <= 0 {
		return nil, pdf.Errorf("invalid square sizes %d, %d", h.Xsquare, h.Ysquare)
	}

	n, err := cellArea(h.Xsquare, h.Xsquare, h.Ysquare, h.Ysquare)
	if err != nil {
		return nil, err
	}
	h.Thresholds, err = thresholds(r, stm, n)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func extractType16(r pdf.Getter, stm *pdf.Stream) (*Type16, error) {
	h := &Type16{}
	s := &pdf.Schema{Fields: []pdf.Field{
		pdf.Required("Width", &h.Width, pdf.AsInt),
		pdf.Required("Height", &h.Height, pdf.AsInt),
		pdf.Default("Width2", &h.Width2, 0, pdf.AsInt),
		pdf.Default("Height2", &h.Height2, 0, pdf.AsInt),
	}}
	if _, err := s.Decode(r, stm.Dict); err != nil {
		return nil, err
	}
	if err := decodeCommon(r, stm.Dict, &h.common); err != nil {
		return nil, err
	}
	if h.Width <= 0 || h.Height <= 0 || h.Width2 < 0 || h.Height2 < 0 ||
		(h.Width2 == 0) != (h.Height2 == 0) {
		return nil, pdf.Errorf("invalid threshold array size")
	}

	n, err := cellArea(h.Width, h.Height, h.Width2, h.Height2)
	if err != nil {
		return nil, err
	}
	data, err := thresholds(r, stm, 2*n)
	if err != nil {
		return nil, err
	}
	h.Thresholds = make([]uint16, n)
	for i := range h.Thresholds {
		h.Thresholds[i] = binary.BigEndian.Uint16(data[2*i:])
	}
	return h, nil
}

// maxThresholds bounds the number of entries in a threshold array.
const maxThresholds = 1 << 28

// cellArea returns the total area of the rectangles with the given
// widths and heights, given as (w, h) pairs.
func cellArea(dims ...int) (int, error) {
	total := 0
	for i := 0; i+1 < len(dims); i += 2 {
		w, h := dims[i], dims[i+1]
		if h != 0 && w > (maxThresholds-total)/h {
			return 0, pdf.Errorf("threshold array too large")
		}
		total += w * h
	}
	return total, nil
}

// thresholds reads the first n bytes of the decoded stream data.
func thresholds(r pdf.Getter, stm *pdf.Stream, n int) ([]byte, error) {
	data, err := filter.Default.DecodeBytes(r, stm)
	if err != nil {
		return nil, err
	}
	if len(data) < n {
		return nil, pdf.Errorf("threshold array too short (%d < %d bytes)", len(data), n)
	}
	return data[:n], nil
}
