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
	"slices"

	"seehuhn.de/go/pdfcore/graphics/transfer"
	"seehuhn.de/go/pdfcore/pdf"
)

// SoftMaskType selects how mask values are derived from the transparency
// group.
type SoftMaskType pdf.Name

// Possible values for SoftMaskType.
const (
	SoftMaskAlpha      SoftMaskType = "Alpha"
	SoftMaskLuminosity SoftMaskType = "Luminosity"
)

var softMaskTypeEnum = &pdf.Enum[SoftMaskType]{
	Name: "SoftMaskType",
	Values: map[pdf.Name]SoftMaskType{
		"Alpha":      SoftMaskAlpha,
		"Luminosity": SoftMaskLuminosity,
	},
}

// SoftMask is a soft-mask dictionary.  In the graphics state, the name
// /None is represented by a nil *SoftMask.
//
// See section 11.6.5.2 of ISO 32000-2:2020.
type SoftMask struct {
	S SoftMaskType

	// G refers to the transparency group XObject used as the mask.
	G pdf.Reference

	// BC is the backdrop colour, in the colour space of the group.
	// This is nil if no backdrop colour is given.
	BC []float64

	// TR maps the group output to mask values.
	TR transfer.Transfer
}

// Clone returns a deep copy of m.
func (m *SoftMask) Clone() *SoftMask {
	if m == nil {
		return nil
	}
	res := *m
	res.BC = slices.Clone(m.BC)
	res.TR = m.TR.Clone()
	return &res
}

// ExtractSoftMask reads a soft mask.  The name /None gives a nil mask.
func ExtractSoftMask(r pdf.Getter, obj pdf.Object) (*SoftMask, error) {
	obj, err := pdf.Resolve(r, obj)
	if err != nil {
		return nil, err
	}
	if name, ok := obj.(pdf.Name); ok {
		if name == "None" {
			return nil, nil
		}
		return nil, &pdf.UnknownVariantError{Found: string(name), Enum: "SoftMask"}
	}

	m := &SoftMask{}
	var bc *[]float64
	var tr pdf.Object
	s := &pdf.Schema{
		Type: "Mask",
		Fields: []pdf.Field{
			pdf.Required("S", &m.S, softMaskTypeEnum.Convert),
			pdf.Required("G", &m.G, pdf.AsReference).Lazy(),
			pdf.Optional("BC", &bc, pdf.ArrayOf(pdf.AsNumber)),
			pdf.Raw("TR", &tr),
		},
	}
	if _, err := s.Decode(r, obj); err != nil {
		return nil, err
	}
	if bc != nil {
		m.BC = *bc
	}
	m.TR = transfer.Identity
	if tr != nil {
		m.TR, err = transfer.Extract(r, tr, false)
		if err != nil {
			return nil, pdf.Wrap(err, "/TR")
		}
		if m.TR.Kind == transfer.KindComponents {
			return nil, pdf.Errorf("soft mask transfer function must be a single function")
		}
	}
	return m, nil
}
