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

package document

import (
	"seehuhn.de/go/pdfcore/graphics/color"
	"seehuhn.de/go/pdfcore/pdf"
)

// PDF 2.0 sections: 11.6.6

// Group represents the group attributes dictionary of a transparency group.
type Group struct {
	// CS (optional) is the colour space of the group.  This is nil if the
	// group uses the colour space of its parent.
	CS color.Space

	// Isolated indicates that the group is isolated.
	Isolated bool

	// Knockout indicates that the group is a knockout group.
	Knockout bool
}

// ExtractGroup reads a group attributes dictionary.  Only transparency
// groups are supported.
func ExtractGroup(r pdf.Getter, obj pdf.Object) (*Group, error) {
	g := &Group{}
	var subtype pdf.Name
	var cs pdf.Object
	schema := &pdf.Schema{
		Type: "Group",
		Fields: []pdf.Field{
			pdf.Required("S", &subtype, pdf.AsName),
			pdf.Raw("CS", &cs),
			pdf.Default("I", &g.Isolated, false, pdf.AsBool),
			pdf.Default("K", &g.Knockout, false, pdf.AsBool),
		},
	}
	_, err := schema.Decode(r, obj)
	if err != nil {
		return nil, err
	}
	if subtype != "Transparency" {
		return nil, pdf.Wrap(&pdf.UnknownVariantError{Found: string(subtype), Enum: "GroupSubtype"}, "/S")
	}

	if cs != nil {
		space, err := color.ExtractSpace(r, cs)
		if err != nil {
			return nil, pdf.Wrap(err, "/CS")
		}
		switch space.Family() {
		case color.FamilyPattern, color.FamilyIndexed:
			return nil, pdf.Wrap(pdf.Errorf("invalid group colour space %s", space.Family()), "/CS")
		}
		g.CS = space
	}
	return g, nil
}
