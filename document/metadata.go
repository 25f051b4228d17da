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
	"seehuhn.de/go/xmp"

	"seehuhn.de/go/pdfcore/filter"
	"seehuhn.de/go/pdfcore/pdf"
)

// PDF 2.0 sections: 14.3.2

// Metadata represents an XMP metadata stream.
type Metadata struct {
	Packet *xmp.Packet
}

// ExtractMetadata reads and parses a metadata stream.  The stream
// dictionary must have /Type /Metadata and /Subtype /XML.
func ExtractMetadata(r pdf.Getter, obj pdf.Object) (*Metadata, error) {
	stm, err := pdf.GetStream(r, obj)
	if err != nil {
		return nil, err
	}

	var subtype pdf.Name
	schema := &pdf.Schema{
		Type:         "Metadata",
		TypeRequired: true,
		Fields: []pdf.Field{
			pdf.Required("Subtype", &subtype, pdf.AsName),
		},
	}
	_, err = schema.Decode(r, stm.Dict)
	if err != nil {
		return nil, err
	}
	if subtype != "XML" {
		return nil, pdf.Wrap(&pdf.UnknownVariantError{Found: string(subtype), Enum: "MetadataSubtype"}, "/Subtype")
	}

	body, err := filter.Default.Decode(r, stm)
	if err != nil {
		return nil, err
	}
	packet, err := xmp.Read(body)
	if err != nil {
		return nil, &pdf.MalformedFileError{Err: err, Loc: []string{"XMP packet"}}
	}
	return &Metadata{Packet: packet}, nil
}
