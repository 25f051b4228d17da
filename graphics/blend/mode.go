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

// Package blend implements the blend modes of the transparent imaging
// model.
//
// See section 11.3.5 of ISO 32000-2:2020.
package blend

import (
	"seehuhn.de/go/pdfcore/pdf"
)

// Mode is a blend mode.  PDF 2.0 uses a single name.  Earlier versions
// also allow an array of names, from which the first supported one is
// used; Mode keeps all names in this case.
type Mode []pdf.Name

// The standard blend modes.
const (
	Normal     pdf.Name = "Normal"
	Compatible pdf.Name = "Compatible" // deprecated
	Multiply   pdf.Name = "Multiply"
	Screen     pdf.Name = "Screen"
	Overlay    pdf.Name = "Overlay"
	Darken     pdf.Name = "Darken"
	Lighten    pdf.Name = "Lighten"
	ColorDodge pdf.Name = "ColorDodge"
	ColorBurn  pdf.Name = "ColorBurn"
	HardLight  pdf.Name = "HardLight"
	SoftLight  pdf.Name = "SoftLight"
	Difference pdf.Name = "Difference"
	Exclusion  pdf.Name = "Exclusion"
	Hue        pdf.Name = "Hue"
	Saturation pdf.Name = "Saturation"
	Color      pdf.Name = "Color"
	Luminosity pdf.Name = "Luminosity"
)

var known = map[pdf.Name]bool{
	Normal: true, Compatible: true, Multiply: true, Screen: true,
	Overlay: true, Darken: true, Lighten: true, ColorDodge: true,
	ColorBurn: true, HardLight: true, SoftLight: true, Difference: true,
	Exclusion: true, Hue: true, Saturation: true, Color: true,
	Luminosity: true,
}

// ModeNormal is the initial blend mode of the graphics state.
var ModeNormal = Mode{Normal}

// Effective returns the blend mode to be used: the first supported name
// in m.  Compatible is treated as Normal.  If m contains no supported
// name, Normal is returned.
func (m Mode) Effective() pdf.Name {
	for _, name := range m {
		if name == Compatible {
			return Normal
		}
		if known[name] {
			return name
		}
	}
	return Normal
}

// IsSeparable reports whether the effective blend mode operates on each
// colour component independently.
func (m Mode) IsSeparable() bool {
	switch m.Effective() {
	case Hue, Saturation, Color, Luminosity:
		return false
	}
	return true
}

// Extract reads a blend mode, given either as a name or as an array
// of names.  A single name must be one of the standard blend modes.
// Arrays may contain unknown names, but at least one entry must be
// supported.
func Extract(r pdf.Getter, obj pdf.Object) (Mode, error) {
	obj, err := pdf.Resolve(r, obj)
	if err != nil {
		return nil, err
	}
	switch x := obj.(type) {
	case pdf.Name:
		if !known[x] {
			return nil, &pdf.UnknownVariantError{Found: string(x), Enum: "BlendMode"}
		}
		return Mode{x}, nil
	case pdf.Array:
		names, err := pdf.ArrayOf(pdf.AsName)(r, x)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			if known[name] {
				return Mode(names), nil
			}
		}
		return nil, pdf.Errorf("no supported blend mode in %s", pdf.Format(x))
	}
	return nil, &pdf.TypeError{
		Expected: []pdf.ObjectType{pdf.TypeName, pdf.TypeArray},
		Found:    pdf.TypeOf(obj),
	}
}
