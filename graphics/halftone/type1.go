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

// Type1 is a halftone screen given by frequency, angle and spot function.
type Type1 struct {
	common

	// Frequency is the number of halftone cells per inch.
	Frequency float64

	// Angle is the screen angle in degrees, relative to the device
	// coordinate system.
	Angle float64

	// SpotFunction maps points in [-1, 1]x[-1, 1] to values in [-1, 1].
	SpotFunction function.Function

	// SpotName is the name of the predefined spot function, if the spot
	// function was given by name.
	SpotName pdf.Name

	AccurateScreens bool
}

// HalftoneType returns 1.
func (h *Type1) HalftoneType() int {
	return 1
}

func extractType1(r pdf.Getter, dict pdf.Dict) (*Type1, error) {
	h := &Type1{}
	var spot pdf.Object
	s := &pdf.Schema{Fields: []pdf.Field{
		pdf.Required("Frequency", &h.Frequency, pdf.AsNumber),
		pdf.Required("Angle", &h.Angle, pdf.AsNumber),
		pdf.Required("SpotFunction", &spot, pdf.AsObject),
		pdf.Default("AccurateScreens", &h.AccurateScreens, false, pdf.AsBool),
	}}
	if _, err := s.Decode(r, dict); err != nil {
		return nil, err
	}
	if h.Frequency <= 0 {
		return nil, pdf.Errorf("invalid halftone frequency %g", h.Frequency)
	}
	if err := decodeCommon(r, dict, &h.common); err != nil {
		return nil, err
	}

	switch x := spot.(type) {
	case pdf.Name:
		f, ok := spotFunctions[x]
		if !ok {
			return nil, pdf.Wrap(&pdf.UnknownVariantError{Found: string(x), Enum: "SpotFunction"},
				"/SpotFunction")
		}
		h.SpotFunction = f
		h.SpotName = x
	case pdf.Array:
		// The first supported name is used.
		for _, elem := range x {
			name, err := pdf.GetName(r, elem)
			if err != nil {
				return nil, pdf.Wrap(err, "/SpotFunction")
			}
			if f, ok := spotFunctions[name]; ok {
				h.SpotFunction = f
				h.SpotName = name
				break
			}
		}
		if h.SpotFunction == nil {
			return nil, pdf.Errorf("no supported spot function in %s", pdf.Format(x))
		}
	default:
		f, err := function.Extract(r, spot)
		if err != nil {
			return nil, pdf.Wrap(err, "/SpotFunction")
		}
		if m, n := f.Shape(); m != 2 || n != 1 {
			return nil, pdf.Errorf("spot function has shape %d→%d", m, n)
		}
		h.SpotFunction = f
	}
	return h, nil
}
