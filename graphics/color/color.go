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

package color

import (
	"fmt"
	"slices"
	"strings"

	"seehuhn.de/go/pdfcore/pdf"
)

// Color is a colour value, together with the colour space it belongs to.
type Color struct {
	Space  Space
	Values []float64

	// Pattern is the name of the pattern resource, for colours in a
	// [Pattern] space.  For the default colour of a pattern space, this
	// is empty.
	Pattern pdf.Name
}

// New returns a colour in the given space.  The number of values must
// match the number of channels of the space.
func New(space Space, values ...float64) (Color, error) {
	if space.Family() == FamilyPattern {
		return Color{}, fmt.Errorf("use NewPattern for pattern colours")
	}
	if len(values) != space.Channels() {
		return Color{}, fmt.Errorf("%s: expected %d colour values, got %d",
			space.Family(), space.Channels(), len(values))
	}
	return Color{Space: space, Values: slices.Clone(values)}, nil
}

// NewPattern returns a colour which selects the pattern with the given
// resource name.  For uncoloured patterns, values gives the colour in the
// underlying space.
func NewPattern(space *Pattern, name pdf.Name, values ...float64) (Color, error) {
	if len(values) != space.Channels() {
		return Color{}, fmt.Errorf("pattern: expected %d colour values, got %d",
			space.Channels(), len(values))
	}
	return Color{Space: space, Values: slices.Clone(values), Pattern: name}, nil
}

// Gray returns a colour in the DeviceGray space.
func Gray(g float64) Color {
	return Color{Space: DeviceGray, Values: []float64{g}}
}

// RGB returns a colour in the DeviceRGB space.
func RGB(r, g, b float64) Color {
	return Color{Space: DeviceRGB, Values: []float64{r, g, b}}
}

// CMYK returns a colour in the DeviceCMYK space.
func CMYK(c, m, y, k float64) Color {
	return Color{Space: DeviceCMYK, Values: []float64{c, m, y, k}}
}

// Clone returns a copy of c which does not share memory with c.
// Colour spaces are immutable and are shared.
func (c Color) Clone() Color {
	c.Values = slices.Clone(c.Values)
	return c
}

// Equal reports whether two colours have the same space and values.
func (c Color) Equal(other Color) bool {
	return c.Space == other.Space &&
		c.Pattern == other.Pattern &&
		slices.Equal(c.Values, other.Values)
}

func (c Color) String() string {
	if c.Space == nil {
		return "<no colour>"
	}
	var parts []string
	for _, v := range c.Values {
		parts = append(parts, fmt.Sprintf("%g", v))
	}
	if c.Pattern != "" {
		parts = append(parts, "/"+string(c.Pattern))
	}
	return string(c.Space.Family()) + "(" + strings.Join(parts, " ") + ")"
}
