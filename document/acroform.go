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

// PDF 2.0 sections: 12.7.3

// SigFlags holds the document-level characteristics related to signature
// fields.
type SigFlags uint32

// These are the flags defined for the /SigFlags entry.
const (
	SignaturesExist SigFlags = 1 << 0
	AppendOnly      SigFlags = 1 << 1
)

// AcroForm represents an interactive form dictionary.
type AcroForm struct {
	// Fields lists the root fields of the form.
	Fields []pdf.Reference

	NeedAppearances bool
	SigFlags        SigFlags

	// CO (optional) gives the calculation order of fields with calculation
	// actions.
	CO []pdf.Reference

	// DR (optional) are the default resources.
	DR pdf.Dict

	// DA (optional) is the default appearance string for variable text.
	DA *string

	// Q (optional) is the default quadding for variable text.
	Q int

	XFA pdf.Object
}

// ExtractAcroForm reads an interactive form dictionary.
func ExtractAcroForm(r pdf.Getter, obj pdf.Object) (*AcroForm, error) {
	f := &AcroForm{}
	schema := &pdf.Schema{
		Fields: []pdf.Field{
			pdf.Required("Fields", &f.Fields, pdf.ArrayOf(pdf.AsReference)),
			pdf.Default("NeedAppearances", &f.NeedAppearances, false, pdf.AsBool),
			pdf.Default("SigFlags", &f.SigFlags, 0, asSigFlags),
			pdf.Default("CO", &f.CO, nil, pdf.ArrayOf(pdf.AsReference)),
			pdf.Default("DR", &f.DR, nil, pdf.AsDict),
			pdf.Optional("DA", &f.DA, pdf.AsTextString),
			pdf.Default("Q", &f.Q, 0, pdf.AsInt),
			pdf.Raw("XFA", &f.XFA),
		},
	}
	_, err := schema.Decode(r, obj)
	if err != nil {
		return nil, err
	}
	if f.Q < 0 || f.Q > 2 {
		return nil, pdf.Wrap(pdf.Errorf("invalid quadding %d", f.Q), "/Q")
	}
	return f, nil
}

func asSigFlags(r pdf.Getter, obj pdf.Object) (SigFlags, error) {
	x, err := pdf.GetInteger(r, obj)
	if err != nil {
		return 0, err
	}
	if x < 0 || x > 0xFFFFFFFF {
		return 0, pdf.Errorf("invalid signature flags %d", x)
	}
	return SigFlags(x), nil
}
