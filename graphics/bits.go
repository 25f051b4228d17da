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

package graphics

import (
	"fmt"
	"strings"
)

// Bits is a bit mask for graphics state parameters.
type Bits uint64

// Names returns a string representation of the set bits.
func (b Bits) Names() string {
	var parts []string

	for i := 0; i < len(names); i++ {
		if b&(1<<i) != 0 {
			parts = append(parts, names[i])
		}
	}
	b = b & ^AllBits
	if b != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", b))
	}

	return strings.Join(parts, "|")
}

// Possible values for Bits.
const (
	StateLineWidth Bits = 1 << iota
	StateLineCap
	StateLineJoin
	StateMiterLimit
	StateLineDash // pattern and phase

	StateRenderingIntent
	StateStrokeAdjustment
	StateBlendMode
	StateSoftMask
	StateStrokeAlpha
	StateFillAlpha
	StateAlphaIsShape

	StateOverprint // stroking
	StateOverprintFill
	StateOverprintMode
	StateBlackGeneration
	StateUndercolorRemoval
	StateTransfer
	StateHalftone
	StateFlatness
	StateSmoothness

	firstUnused
	AllBits = firstUnused - 1
)

var names = []string{
	"StateLineWidth",
	"StateLineCap",
	"StateLineJoin",
	"StateMiterLimit",
	"StateLineDash",
	"StateRenderingIntent",
	"StateStrokeAdjustment",
	"StateBlendMode",
	"StateSoftMask",
	"StateStrokeAlpha",
	"StateFillAlpha",
	"StateAlphaIsShape",
	"StateOverprint",
	"StateOverprintFill",
	"StateOverprintMode",
	"StateBlackGeneration",
	"StateUndercolorRemoval",
	"StateTransfer",
	"StateHalftone",
	"StateFlatness",
	"StateSmoothness",
}
