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
	"errors"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfcore/graphics/color"
)

// ErrStackUnderflow is returned by [Stack.Pop] if only the initial state
// is left on the stack.
var ErrStackUnderflow = errors.New("graphics state stack underflow")

// Stack is the stack of graphics states maintained while a content stream
// is executed.  The top of the stack is the current graphics state.
// A Stack is not safe for concurrent use.
type Stack struct {
	states []State
}

// NewStack returns a stack holding a single graphics state with the
// initial values.
func NewStack() *Stack {
	return &Stack{states: []State{NewState()}}
}

// Top returns the current graphics state.  Changes made through the
// returned pointer modify the current state.  The pointer is invalidated
// by the next call to Push or Pop.
func (s *Stack) Top() *State {
	return &s.states[len(s.states)-1]
}

// Depth returns the number of states on the stack.  This is 1 for a new
// stack.
func (s *Stack) Depth() int {
	return len(s.states)
}

// Push saves a copy of the current graphics state (the PDF q operator).
func (s *Stack) Push() {
	s.states = append(s.states, s.Top().Clone())
}

// Pop restores the most recently saved graphics state (the PDF Q
// operator).  If no saved state is left, ErrStackUnderflow is returned
// and the stack is not changed.
func (s *Stack) Pop() error {
	n := len(s.states)
	if n <= 1 {
		return ErrStackUnderflow
	}
	s.states[n-1] = State{}
	s.states = s.states[:n-1]
	return nil
}

// Transform modifies the current transformation matrix (the PDF cm
// operator).  The new CTM is m followed by the old CTM.
func (s *Stack) Transform(m matrix.Matrix) {
	top := s.Top()
	top.CTM = m.Mul(top.CTM)
}

// Clip intersects the current clipping region with r, which is given in
// user space.  The rectangle is transformed to device space using the
// current transformation matrix.
func (s *Stack) Clip(r rect.Rect) {
	top := s.Top()
	M := top.CTM
	var box rect.Rect
	for i, corner := range [4][2]float64{
		{r.LLx, r.LLy}, {r.URx, r.LLy}, {r.URx, r.URy}, {r.LLx, r.URy},
	} {
		x := corner[0]*M[0] + corner[1]*M[2] + M[4]
		y := corner[0]*M[1] + corner[1]*M[3] + M[5]
		if i == 0 {
			box = rect.Rect{LLx: x, LLy: y, URx: x, URy: y}
			continue
		}
		box.LLx = min(box.LLx, x)
		box.LLy = min(box.LLy, y)
		box.URx = max(box.URx, x)
		box.URy = max(box.URy, y)
	}
	top.ClipPath = append(top.ClipPath, box)
}

// SetStrokeColor sets the colour used for stroking.  The colour carries
// its colour space.
func (s *Stack) SetStrokeColor(c color.Color) {
	s.Top().StrokeColor = c.Clone()
}

// SetFillColor sets the colour used for all other painting operations.
func (s *Stack) SetFillColor(c color.Color) {
	s.Top().FillColor = c.Clone()
}

// SetStrokeSpace selects the colour space for stroking (the PDF CS
// operator).  The stroking colour is set to the initial colour of the
// space.
func (s *Stack) SetStrokeSpace(space color.Space) {
	s.Top().StrokeColor = space.Default()
}

// SetFillSpace selects the colour space for filling (the PDF cs
// operator).  The fill colour is set to the initial colour of the space.
func (s *Stack) SetFillSpace(space color.Space) {
	s.Top().FillColor = space.Default()
}

// SetLineWidth sets the line width (the PDF w operator).
func (s *Stack) SetLineWidth(w float64) {
	s.Top().LineWidth = w
}

// SetLineCap sets the line cap style (the PDF J operator).
func (s *Stack) SetLineCap(c LineCapStyle) {
	s.Top().LineCap = c
}

// SetLineJoin sets the line join style (the PDF j operator).
func (s *Stack) SetLineJoin(j LineJoinStyle) {
	s.Top().LineJoin = j
}

// SetMiterLimit sets the miter limit (the PDF M operator).
func (s *Stack) SetMiterLimit(l float64) {
	s.Top().MiterLimit = l
}

// SetDashPattern sets the line dash pattern (the PDF d operator).
func (s *Stack) SetDashPattern(d DashPattern) {
	s.Top().DashPattern = d.Clone()
}

// SetRenderingIntent sets the rendering intent (the PDF ri operator).
func (s *Stack) SetRenderingIntent(ri RenderingIntent) {
	s.Top().RenderingIntent = ri
}

// SetFlatness sets the flatness tolerance (the PDF i operator).
func (s *Stack) SetFlatness(fl float64) {
	s.Top().Flatness = fl
}

// ApplyExtGState copies the parameters present in e into the current
// graphics state (the PDF gs operator).
func (s *Stack) ApplyExtGState(e *ExtGState) {
	top := s.Top()
	set := e.Set

	if set&StateLineWidth != 0 {
		top.LineWidth = e.LineWidth
	}
	if set&StateLineCap != 0 {
		top.LineCap = e.LineCap
	}
	if set&StateLineJoin != 0 {
		top.LineJoin = e.LineJoin
	}
	if set&StateMiterLimit != 0 {
		top.MiterLimit = e.MiterLimit
	}
	if set&StateLineDash != 0 {
		top.DashPattern = e.DashPattern.Clone()
	}
	if set&StateRenderingIntent != 0 {
		top.RenderingIntent = e.RenderingIntent
	}
	if set&StateStrokeAdjustment != 0 {
		top.StrokeAdjustment = e.StrokeAdjustment
	}
	if set&StateBlendMode != 0 {
		top.BlendMode = slices.Clone(e.BlendMode)
	}
	if set&StateSoftMask != 0 {
		top.SoftMask = e.SoftMask.Clone()
	}
	if set&StateStrokeAlpha != 0 {
		top.StrokeAlpha = e.StrokeAlpha
	}
	if set&StateFillAlpha != 0 {
		top.FillAlpha = e.FillAlpha
	}
	if set&StateAlphaIsShape != 0 {
		top.AlphaIsShape = e.AlphaIsShape
	}
	if set&StateOverprint != 0 {
		top.OverprintStroke = e.OverprintStroke
	}
	if set&StateOverprintFill != 0 {
		top.OverprintFill = e.OverprintFill
	}
	if set&StateOverprintMode != 0 {
		top.OverprintMode = e.OverprintMode
	}
	if set&StateBlackGeneration != 0 {
		top.BlackGeneration = e.BlackGeneration
	}
	if set&StateUndercolorRemoval != 0 {
		top.UndercolorRemoval = e.UndercolorRemoval
	}
	if set&StateTransfer != 0 {
		top.Transfer = e.Transfer.Clone()
	}
	if set&StateHalftone != 0 {
		top.Halftone = e.Halftone
	}
	if set&StateFlatness != 0 {
		top.Flatness = e.Flatness
	}
	if set&StateSmoothness != 0 {
		top.Smoothness = e.Smoothness
	}
}
