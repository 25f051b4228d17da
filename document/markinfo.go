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

import "seehuhn.de/go/pdfcore/pdf"

// MarkInfo represents a mark information dictionary.
type MarkInfo struct {
	// Marked indicates that the document conforms to the Tagged PDF
	// conventions.
	Marked bool

	// UserProperties indicates the presence of structure elements which
	// contain user properties attributes.
	UserProperties bool

	// Suspects indicates the presence of tag suspects.
	Suspects bool
}

// ExtractMarkInfo reads a mark information dictionary.
func ExtractMarkInfo(r pdf.Getter, obj pdf.Object) (*MarkInfo, error) {
	m := &MarkInfo{}
	schema := &pdf.Schema{
		Fields: []pdf.Field{
			pdf.Default("Marked", &m.Marked, false, pdf.AsBool),
			pdf.Default("UserProperties", &m.UserProperties, false, pdf.AsBool),
			pdf.Default("Suspects", &m.Suspects, false, pdf.AsBool),
		},
	}
	_, err := schema.Decode(r, obj)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// OutputIntent describes the colour characteristics of an output device.
type OutputIntent struct {
	// S is the output intent subtype, for example /GTS_PDFX or /GTS_PDFA1.
	S pdf.Name

	OutputCondition *string

	// OutputConditionIdentifier identifies the intended output device or
	// production condition.
	OutputConditionIdentifier string

	RegistryName *string
	Info         *string

	// DestOutputProfile (optional) is an ICC profile stream.
	DestOutputProfile *pdf.Stream
}

// ExtractOutputIntent reads an output intent dictionary.
func ExtractOutputIntent(r pdf.Getter, obj pdf.Object) (*OutputIntent, error) {
	o := &OutputIntent{}
	schema := &pdf.Schema{
		Type: "OutputIntent",
		Fields: []pdf.Field{
			pdf.Required("S", &o.S, pdf.AsName),
			pdf.Optional("OutputCondition", &o.OutputCondition, pdf.AsTextString),
			pdf.Required("OutputConditionIdentifier", &o.OutputConditionIdentifier, pdf.AsTextString),
			pdf.Optional("RegistryName", &o.RegistryName, pdf.AsTextString),
			pdf.Optional("Info", &o.Info, pdf.AsTextString),
			pdf.Default("DestOutputProfile", &o.DestOutputProfile, nil, pdf.AsStream),
		},
	}
	_, err := schema.Decode(r, obj)
	if err != nil {
		return nil, err
	}
	return o, nil
}
