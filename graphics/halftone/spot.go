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
	"seehuhn.de/go/pdfcore/function"
	"seehuhn.de/go/pdfcore/pdf"
)

// spotFunctions holds the predefined spot functions, see table 128 in
// ISO 32000-2:2020.
var spotFunctions = map[pdf.Name]function.Function{
	"SimpleDot":         spot("dup mul exch dup mul add 1 exch sub"),
	"InvertedSimpleDot": spot("dup mul exch dup mul add 1 sub"),
	"DoubleDot":         spot("360 mul sin 2 div exch 360 mul sin 2 div add"),
	"InvertedDoubleDot": spot("360 mul sin 2 div exch 360 mul sin 2 div add neg"),
	"CosineDot":         spot("180 mul cos exch 180 mul cos add 2 div"),
	"Double":            spot("360 mul sin 2 div exch 2 div 360 mul sin 2 div add"),
	"InvertedDouble":    spot("360 mul sin 2 div exch 2 div 360 mul sin 2 div add neg"),
	"Line":              spot("exch pop abs neg"),
	"LineX":             spot("pop"),
	"LineY":             spot("exch pop"),
	"Round": spot(`abs exch abs 2 copy add 1 le
		{ dup mul exch dup mul add 1 exch sub }
		{ 1 sub dup mul exch 1 sub dup mul add 1 sub }
		ifelse`),
	"EllipseA":         spot("dup mul 0.9 mul exch dup mul add 1 exch sub"),
	"InvertedEllipseA": spot("dup mul 0.9 mul exch dup mul add 1 sub"),
	"EllipseB":         spot("dup 5 mul 8 div mul exch dup mul exch add sqrt 1 exch sub"),
	"EllipseC":         spot("dup mul exch dup mul 0.9 mul add 1 exch sub"),
	"InvertedEllipseC": spot("dup mul exch dup mul 0.9 mul add 1 sub"),
	"Square":           spot("abs exch abs 2 copy lt { exch } if pop neg"),
	"Cross":            spot("abs exch abs 2 copy gt { exch } if pop neg"),
	"Rhomboid":         spot("abs exch abs 0.9 mul add 2 div"),
}

func spot(body string) function.Function {
	f, err := function.NewType4([]float64{-1, 1, -1, 1}, []float64{-1, 1}, "{ "+body+" }")
	if err != nil {
		panic(err)
	}
	return f
}
