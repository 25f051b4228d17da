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
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfcore/function"
	"seehuhn.de/go/pdfcore/graphics/blend"
	"seehuhn.de/go/pdfcore/graphics/color"
	"seehuhn.de/go/pdfcore/graphics/halftone"
	"seehuhn.de/go/pdfcore/graphics/transfer"
)

// State is a snapshot of the graphics state.
//
// See section 8.4 of ISO 32000-2:2020.
type State struct {
	DeviceIndependent
	DeviceDependent
}

// DeviceIndependent holds the graphics state parameters which do not
// depend on the output device.
type DeviceIndependent struct {
	// CTM is the current transformation matrix, which maps user space
	// coordinates to device space.
	CTM matrix.Matrix

	// ClipPath lists rectangles, in device space, whose intersection is
	// the current clipping region.  An empty list means that output is
	// only limited by the imageable area of the page.
	ClipPath []rect.Rect

	// StrokeColor and FillColor carry their colour spaces.
	StrokeColor color.Color
	FillColor   color.Color

	LineWidth   float64
	LineCap     LineCapStyle
	LineJoin    LineJoinStyle
	MiterLimit  float64
	DashPattern DashPattern

	RenderingIntent  RenderingIntent
	StrokeAdjustment bool

	BlendMode blend.Mode

	// SoftMask is nil for the soft mask /None.
	SoftMask *SoftMask

	StrokeAlpha float64
	FillAlpha   float64

	// AlphaIsShape specifies whether the soft mask and the alpha constants
	// are interpreted as shape (true) or opacity (false) values.
	AlphaIsShape bool
}

// DeviceDependent holds the graphics state parameters which control
// details of the rendering on a particular output device.
type DeviceDependent struct {
	OverprintStroke bool
	OverprintFill   bool
	OverprintMode   int

	// BlackGeneration and UndercolorRemoval are nil for the device
	// defaults.
	BlackGeneration   function.Function
	UndercolorRemoval function.Function

	Transfer transfer.Transfer
	Halftone halftone.Halftone

	Flatness   float64
	Smoothness float64
}

// NewState returns a graphics state with the initial values used at the
// start of every content stream.
func NewState() State {
	return State{
		DeviceIndependent: DeviceIndependent{
			CTM:              matrix.Identity,
			StrokeColor:      color.DeviceGray.Default(),
			FillColor:        color.DeviceGray.Default(),
			LineWidth:        1,
			LineCap:          LineCapButt,
			LineJoin:         LineJoinMiter,
			MiterLimit:       10,
			RenderingIntent:  RelativeColorimetric,
			StrokeAdjustment: false,
			BlendMode:        blend.ModeNormal,
			SoftMask:         nil,
			StrokeAlpha:      1,
			FillAlpha:        1,
			AlphaIsShape:     false,
		},
		DeviceDependent: DeviceDependent{
			OverprintStroke: false,
			OverprintFill:   false,
			OverprintMode:   0,
			Transfer:        transfer.Identity,
			Halftone:        halftone.Default{},
			Flatness:        1,
			Smoothness:      0.5,
		},
	}
}

// Clone returns a copy of s which shares no mutable memory with s.
// Functions, halftones and colour spaces are treated as immutable.
func (s State) Clone() State {
	res := s
	res.ClipPath = slices.Clone(s.ClipPath)
	res.StrokeColor = s.StrokeColor.Clone()
	res.FillColor = s.FillColor.Clone()
	res.DashPattern = s.DashPattern.Clone()
	res.BlendMode = slices.Clone(s.BlendMode)
	res.SoftMask = s.SoftMask.Clone()
	res.Transfer = s.Transfer.Clone()
	return res
}

// ClipBounds returns the intersection of the rectangles in the clipping
// path.  If the clipping path is empty, ok is false.
func (s *State) ClipBounds() (r rect.Rect, ok bool) {
	if len(s.ClipPath) == 0 {
		return rect.Rect{}, false
	}
	r = rect.Rect{
		LLx: math.Inf(-1), LLy: math.Inf(-1),
		URx: math.Inf(+1), URy: math.Inf(+1),
	}
	for _, c := range s.ClipPath {
		r.LLx = max(r.LLx, c.LLx)
		r.LLy = max(r.LLy, c.LLy)
		r.URx = min(r.URx, c.URx)
		r.URy = min(r.URy, c.URy)
	}
	if r.LLx > r.URx || r.LLy > r.URy {
		return rect.Rect{}, true
	}
	return r, true
}
