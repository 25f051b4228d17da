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

// Package predict undoes the TIFF and PNG prediction functions which can
// be applied before FlateDecode and LZWDecode compression.
package predict

import (
	"errors"
	"fmt"
)

const maxColumns = 1 << 20

// Params holds the predictor parameters from a /DecodeParms dictionary.
type Params struct {
	// Predictor is 1 (no prediction), 2 (TIFF) or 10-15 (PNG).
	Predictor int

	// Colors is the number of interleaved color components per sample.
	Colors int

	// BitsPerComponent is 1, 2, 4, 8 or 16.
	BitsPerComponent int

	// Columns is the number of samples per row.
	Columns int
}

// Validate checks that the parameters are within the allowed ranges.
func (p *Params) Validate() error {
	switch p.Predictor {
	case 1:
		return nil
	case 2:
		if p.Colors > 60 {
			return errors.New("Colors must be at most 60 for TIFF predictor")
		}
	case 10, 11, 12, 13, 14, 15:
		if p.Colors > 256 {
			return errors.New("Colors must be at most 256 for PNG predictors")
		}
	default:
		return fmt.Errorf("invalid Predictor %d", p.Predictor)
	}

	if p.Colors < 1 {
		return errors.New("Colors must be at least 1")
	}
	switch p.BitsPerComponent {
	case 1, 2, 4, 8, 16:
		// pass
	default:
		return fmt.Errorf("invalid BitsPerComponent %d", p.BitsPerComponent)
	}
	maxCols := min(maxColumns, (1<<31-1)/p.bitsPerPixel())
	if p.Columns < 1 || p.Columns > maxCols {
		return fmt.Errorf("invalid Columns %d", p.Columns)
	}
	return nil
}

func (p *Params) bitsPerPixel() int {
	return p.Colors * p.BitsPerComponent
}

func (p *Params) bytesPerRow() int {
	return (p.bitsPerPixel()*p.Columns + 7) / 8
}

// bytesPerPixel is the distance used by the PNG predictors to find the
// "left" byte.
func (p *Params) bytesPerPixel() int {
	return (p.bitsPerPixel() + 7) / 8
}
