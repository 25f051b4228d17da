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

// Package graphics implements the PDF graphics state.
//
// This package defines the graphics state type ([State]), the stack used
// by the q and Q operators ([Stack]), the rendering constants
// ([LineCapStyle], [LineJoinStyle], [RenderingIntent]) and graphics state
// parameter dictionaries ([ExtGState]).
//
// Compound parameters are implemented in sub-packages:
// colours and colour spaces in [seehuhn.de/go/pdfcore/graphics/color],
// blend modes in [seehuhn.de/go/pdfcore/graphics/blend],
// halftones in [seehuhn.de/go/pdfcore/graphics/halftone], and
// transfer functions in [seehuhn.de/go/pdfcore/graphics/transfer].
package graphics
