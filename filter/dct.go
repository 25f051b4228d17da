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

package filter

import (
	"bytes"
	"image"
	"image/jpeg"
	"io"

	"seehuhn.de/go/pdfcore/pdf"
)

// decodeDCT decodes JPEG data to raw samples.
//
// The output is row by row, without padding: one byte per pixel for
// grayscale images, four bytes for CMYK images, and three bytes (RGB) for
// everything else.
func decodeDCT(r io.Reader, _ pdf.Dict) (io.Reader, error) {
	img, err := jpeg.Decode(r)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(samples(img)), nil
}

func samples(img image.Image) []byte {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	switch img := img.(type) {
	case *image.Gray:
		return packRows(img.Pix, img.Stride, img.PixOffset(b.Min.X, b.Min.Y), w, h)
	case *image.CMYK:
		return packRows(img.Pix, img.Stride, img.PixOffset(b.Min.X, b.Min.Y), 4*w, h)
	}

	buf := make([]byte, 0, 3*w*h)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			buf = append(buf, byte(r>>8), byte(g>>8), byte(bl>>8))
		}
	}
	return buf
}

// packRows copies h rows of rowLen bytes each from pix, removing the
// padding implied by stride.
func packRows(pix []byte, stride, offs, rowLen, h int) []byte {
	buf := make([]byte, 0, rowLen*h)
	for y := range h {
		start := offs + y*stride
		buf = append(buf, pix[start:start+rowLen]...)
	}
	return buf
}
