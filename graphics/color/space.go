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

// Package color implements PDF colour spaces and colours.
//
// A [Color] always records the colour space its values refer to, so that
// colours can be interpreted without further context.
//
// See section 8.6 of ISO 32000-2:2020.
package color

import (
	"seehuhn.de/go/pdfcore/function"
	"seehuhn.de/go/pdfcore/pdf"
)

// Space is a PDF colour space.
type Space interface {
	// Family returns the colour space family, for example /DeviceRGB.
	Family() pdf.Name

	// Channels returns the number of colour components.  This is 0 for
	// coloured tiling patterns and shading patterns.
	Channels() int

	// Default returns the initial colour used when the space is selected.
	Default() Color
}

// Colour space families.
const (
	FamilyDeviceGray pdf.Name = "DeviceGray"
	FamilyDeviceRGB  pdf.Name = "DeviceRGB"
	FamilyDeviceCMYK pdf.Name = "DeviceCMYK"
	FamilyCalGray    pdf.Name = "CalGray"
	FamilyCalRGB     pdf.Name = "CalRGB"
	FamilyLab        pdf.Name = "Lab"
	FamilyICCBased   pdf.Name = "ICCBased"
	FamilyIndexed    pdf.Name = "Indexed"
	FamilyPattern    pdf.Name = "Pattern"
	FamilySeparation pdf.Name = "Separation"
	FamilyDeviceN    pdf.Name = "DeviceN"
)

type device struct {
	family pdf.Name
	n      int
}

func (s device) Family() pdf.Name { return s.family }
func (s device) Channels() int    { return s.n }

func (s device) Default() Color {
	values := make([]float64, s.n)
	if s.n == 4 {
		values[3] = 1
	}
	return Color{Space: s, Values: values}
}

// The device colour spaces.
var (
	DeviceGray Space = device{FamilyDeviceGray, 1}
	DeviceRGB  Space = device{FamilyDeviceRGB, 3}
	DeviceCMYK Space = device{FamilyDeviceCMYK, 4}
)

// CalGray is a CIE-based colour space with one component.
type CalGray struct {
	WhitePoint [3]float64
	BlackPoint [3]float64
	Gamma      float64
}

// Family returns /CalGray.
func (s *CalGray) Family() pdf.Name { return FamilyCalGray }

// Channels returns 1.
func (s *CalGray) Channels() int { return 1 }

// Default returns the colour with value 0.
func (s *CalGray) Default() Color {
	return Color{Space: s, Values: []float64{0}}
}

// CalRGB is a CIE-based colour space with three components.
type CalRGB struct {
	WhitePoint [3]float64
	BlackPoint [3]float64
	Gamma      [3]float64

	// Matrix maps the decoded components to X, Y and Z, in column order.
	Matrix [9]float64
}

// Family returns /CalRGB.
func (s *CalRGB) Family() pdf.Name { return FamilyCalRGB }

// Channels returns 3.
func (s *CalRGB) Channels() int { return 3 }

// Default returns black.
func (s *CalRGB) Default() Color {
	return Color{Space: s, Values: []float64{0, 0, 0}}
}

// Lab is the CIE 1976 L*a*b* colour space.
type Lab struct {
	WhitePoint [3]float64
	BlackPoint [3]float64

	// Range gives the ranges of a* and b* as [amin amax bmin bmax].
	Range [4]float64
}

// Family returns /Lab.
func (s *Lab) Family() pdf.Name { return FamilyLab }

// Channels returns 3.
func (s *Lab) Channels() int { return 3 }

// Default returns the colour with all components 0, adjusted to lie
// within the range.
func (s *Lab) Default() Color {
	return Color{Space: s, Values: []float64{
		0,
		clip(0, s.Range[0], s.Range[1]),
		clip(0, s.Range[2], s.Range[3]),
	}}
}

// ICCBased is a colour space given by an ICC profile.
type ICCBased struct {
	N int

	// Alternate is used if the profile cannot be interpreted.
	Alternate Space

	// Range holds 2*N numbers, giving the range of each component.
	Range []float64

	// Profile holds the decoded ICC profile data.
	Profile []byte
}

// Family returns /ICCBased.
func (s *ICCBased) Family() pdf.Name { return FamilyICCBased }

// Channels returns the number of colour components.
func (s *ICCBased) Channels() int { return s.N }

// Default returns the colour with all components 0, adjusted to lie
// within the range.
func (s *ICCBased) Default() Color {
	values := make([]float64, s.N)
	for i := range values {
		values[i] = clip(0, s.Range[2*i], s.Range[2*i+1])
	}
	return Color{Space: s, Values: values}
}

// Indexed is a colour space which maps small integers to colours in a
// base space.
type Indexed struct {
	Base   Space
	HiVal  int
	Lookup []byte
}

// Family returns /Indexed.
func (s *Indexed) Family() pdf.Name { return FamilyIndexed }

// Channels returns 1.
func (s *Indexed) Channels() int { return 1 }

// Default returns the colour with index 0.
func (s *Indexed) Default() Color {
	return Color{Space: s, Values: []float64{0}}
}

// BaseColor returns the colour in the base space corresponding to the
// given index.  Indices outside the valid range are clipped.
func (s *Indexed) BaseColor(index int) Color {
	index = max(0, min(index, s.HiVal))
	n := s.Base.Channels()
	rng := componentRanges(s.Base)
	values := make([]float64, n)
	for i := range values {
		lo, hi := rng[2*i], rng[2*i+1]
		values[i] = lo + float64(s.Lookup[index*n+i])*(hi-lo)/255
	}
	return Color{Space: s.Base, Values: values}
}

// componentRanges returns the ranges of the colour components.
func componentRanges(space Space) []float64 {
	switch space := space.(type) {
	case *Lab:
		return []float64{0, 100, space.Range[0], space.Range[1], space.Range[2], space.Range[3]}
	case *ICCBased:
		return space.Range
	}
	n := space.Channels()
	res := make([]float64, 2*n)
	for i := range n {
		res[2*i+1] = 1
	}
	return res
}

// Pattern is the colour space for patterns.  For coloured patterns,
// Base is nil.  For uncoloured patterns, Base is the space of the colour
// used to paint the pattern.
type Pattern struct {
	Base Space
}

// Family returns /Pattern.
func (s *Pattern) Family() pdf.Name { return FamilyPattern }

// Channels returns the number of colour components of the underlying
// space, or 0 for coloured patterns.
func (s *Pattern) Channels() int {
	if s.Base == nil {
		return 0
	}
	return s.Base.Channels()
}

// Default returns a colour which does not select any pattern.
func (s *Pattern) Default() Color {
	return Color{Space: s}
}

// Separation is a colour space for a single colorant.
type Separation struct {
	Colorant      pdf.Name
	Alternate     Space
	TintTransform function.Function
}

// Family returns /Separation.
func (s *Separation) Family() pdf.Name { return FamilySeparation }

// Channels returns 1.
func (s *Separation) Channels() int { return 1 }

// Default returns the full tint of the colorant.
func (s *Separation) Default() Color {
	return Color{Space: s, Values: []float64{1}}
}

// DeviceN is a colour space for several colorants.
type DeviceN struct {
	Colorants     []pdf.Name
	Alternate     Space
	TintTransform function.Function

	// Attributes holds the optional attributes dictionary.
	Attributes pdf.Dict
}

// Family returns /DeviceN.
func (s *DeviceN) Family() pdf.Name { return FamilyDeviceN }

// Channels returns the number of colorants.
func (s *DeviceN) Channels() int { return len(s.Colorants) }

// Default returns the full tint of all colorants.
func (s *DeviceN) Default() Color {
	values := make([]float64, len(s.Colorants))
	for i := range values {
		values[i] = 1
	}
	return Color{Space: s, Values: values}
}

func clip(x, lo, hi float64) float64 {
	return max(lo, min(x, hi))
}
