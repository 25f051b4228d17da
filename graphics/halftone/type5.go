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
	"seehuhn.de/go/pdfcore/pdf"
)

// Type5 combines separate halftones for individual colorants.
type Type5 struct {
	// Name is the /HalftoneName entry, or "" if absent.
	Name string

	// Default is used for colorants without an entry in Colorants.
	Default Halftone

	// Colorants maps colorant names to their halftones.  None of the
	// halftones is of type 5.
	Colorants map[pdf.Name]Halftone
}

// HalftoneType returns 5.
func (h *Type5) HalftoneType() int {
	return 5
}

// Lookup returns the halftone for the given colorant.
func (h *Type5) Lookup(colorant pdf.Name) Halftone {
	if ht, ok := h.Colorants[colorant]; ok {
		return ht
	}
	return h.Default
}

var reservedType5Keys = map[pdf.Name]bool{
	"Type":         true,
	"HalftoneType": true,
	"HalftoneName": true,
	"Default":      true,
}

func extractType5(r pdf.Getter, dict pdf.Dict) (*Type5, error) {
	h := &Type5{Colorants: map[pdf.Name]Halftone{}}
	var def pdf.Object
	s := &pdf.Schema{Fields: []pdf.Field{
		pdf.Default("HalftoneName", &h.Name, "", asByteString),
		pdf.Required("Default", &def, pdf.AsObject),
	}}
	if _, err := s.Decode(r, dict); err != nil {
		return nil, err
	}

	var err error
	h.Default, err = extract(r, def, false)
	if err != nil {
		return nil, pdf.Wrap(err, "/Default")
	}
	for key, val := range dict {
		if reservedType5Keys[key] {
			continue
		}
		ht, err := extract(r, val, false)
		if err != nil {
			return nil, pdf.Wrap(err, "/"+string(key))
		}
		h.Colorants[key] = ht
	}
	return h, nil
}
