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

// Package halftone implements PDF halftone dictionaries and streams.
//
// See section 10.6 of ISO 32000-2:2020.
package halftone

import (
	"fmt"

	"seehuhn.de/go/pdfcore/graphics/transfer"
	"seehuhn.de/go/pdfcore/pdf"
)

// Halftone is a halftone screen.
type Halftone interface {
	// HalftoneType returns the value of the /HalftoneType entry, or 0 for
	// the device default halftone.
	HalftoneType() int
}

// Default is the device default halftone, given by the name /Default.
type Default struct{}

// HalftoneType returns 0.
func (Default) HalftoneType() int {
	return 0
}

// Extract reads a halftone.  Types 1 and 5 are stored in dictionaries,
// types 6, 10 and 16 in streams.
func Extract(r pdf.Getter, obj pdf.Object) (Halftone, error) {
	return extract(r, obj, true)
}

func extract(r pdf.Getter, obj pdf.Object, allowType5 bool) (Halftone, error) {
	obj, err := pdf.Resolve(r, obj)
	if err != nil {
		return nil, err
	}

	var dict pdf.Dict
	var stm *pdf.Stream
	switch x := obj.(type) {
	case pdf.Name:
		if x == "Default" {
			return Default{}, nil
		}
		return nil, &pdf.UnknownVariantError{Found: string(x), Enum: "Halftone"}
	case pdf.Dict:
		dict = x
	case *pdf.Stream:
		if x == nil {
			return nil, typeError(obj)
		}
		stm = x
		dict = x.Dict
	default:
		return nil, typeError(obj)
	}

	var tp int
	s := &pdf.Schema{
		Type: "Halftone",
		Fields: []pdf.Field{
			pdf.Required("HalftoneType", &tp, pdf.AsInt),
		},
	}
	if _, err := s.Decode(r, dict); err != nil {
		return nil, err
	}

	var res Halftone
	switch {
	case tp == 1 && stm == nil:
		res, err = extractType1(r, dict)
	case tp == 5 && stm == nil && allowType5:
		res, err = extractType5(r, dict)
	case tp == 6 && stm != nil:
		res, err = extractType6(r, stm)
	case tp == 10 && stm != nil:
		res, err = extractType10(r, stm)
	case tp == 16 && stm != nil:
		res, err = extractType16(r, stm)
	case tp == 1 || tp == 5 || tp == 6 || tp == 10 || tp == 16:
		return nil, pdf.Errorf("unexpected halftone type %d in %s", tp, pdf.TypeOf(obj))
	default:
		return nil, &pdf.UnknownVariantError{Found: fmt.Sprint(tp), Enum: "HalftoneType"}
	}
	if err != nil {
		return nil, pdf.Wrap(err, fmt.Sprintf("type %d halftone", tp))
	}
	return res, nil
}

func typeError(obj pdf.Object) error {
	return &pdf.TypeError{
		Expected: []pdf.ObjectType{pdf.TypeName, pdf.TypeDict, pdf.TypeStream},
		Found:    pdf.TypeOf(obj),
	}
}

// common holds the entries shared by halftone types 1, 6, 10 and 16.
type common struct {
	// Name is the /HalftoneName entry, or "" if absent.
	Name string

	// Transfer, if not nil, overrides the transfer function for the
	// component.
	Transfer *transfer.Transfer
}

// decodeCommon reads the entries described by [common].
func decodeCommon(r pdf.Getter, dict pdf.Dict, c *common) error {
	var tf pdf.Object
	s := &pdf.Schema{Fields: []pdf.Field{
		pdf.Default("HalftoneName", &c.Name, "", asByteString),
		pdf.Raw("TransferFunction", &tf),
	}}
	if _, err := s.Decode(r, dict); err != nil {
		return err
	}
	if tf != nil {
		t, err := transfer.Extract(r, tf, false)
		if err != nil {
			return pdf.Wrap(err, "/TransferFunction")
		}
		c.Transfer = &t
	}
	return nil
}

func asByteString(r pdf.Getter, obj pdf.Object) (string, error) {
	s, err := pdf.GetString(r, obj)
	return string(s), err
}
