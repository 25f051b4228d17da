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

// Package transfer implements transfer functions, which adjust colour
// component values to the response of an output device.
//
// See section 10.5 of ISO 32000-2:2020.
package transfer

import (
	"seehuhn.de/go/pdfcore/function"
	"seehuhn.de/go/pdfcore/pdf"
)

// Kind distinguishes the different forms of transfer functions.
type Kind int

// These are the possible values of Kind.
const (
	// KindIdentity is the identity function, given by the name /Identity.
	KindIdentity Kind = iota

	// KindDefault is the device default, given by the name /Default.
	KindDefault

	// KindSingle is a single function, applied to all components.
	KindSingle

	// KindComponents uses separate functions for the red, green, blue and
	// gray components (in this order).
	KindComponents
)

func (k Kind) String() string {
	switch k {
	case KindIdentity:
		return "Identity"
	case KindDefault:
		return "Default"
	case KindSingle:
		return "Single"
	case KindComponents:
		return "Components"
	default:
		return "Kind(?)"
	}
}

// Transfer is a transfer function.
type Transfer struct {
	Kind Kind

	// Functions holds one function for KindSingle and four functions for
	// KindComponents.  Each function has one input and one output.
	Functions []function.Function
}

// Identity is the identity transfer function.
var Identity = Transfer{Kind: KindIdentity}

// Default is the device default transfer function.
var Default = Transfer{Kind: KindDefault}

// Clone returns a copy of t which does not share the function slice.
func (t Transfer) Clone() Transfer {
	if t.Functions != nil {
		t.Functions = append([]function.Function(nil), t.Functions...)
	}
	return t
}

// Apply applies the transfer function for component i to x.  For
// KindIdentity and KindDefault, x is returned unchanged.
func (t Transfer) Apply(i int, x float64) float64 {
	switch t.Kind {
	case KindSingle:
		return t.Functions[0].Apply(x)[0]
	case KindComponents:
		return t.Functions[i].Apply(x)[0]
	}
	return x
}

// Extract reads a transfer function.  The object can be one of the names
// /Identity or /Default, a function, or an array of four functions.
//
// If allowDefault is false, the name /Default is rejected.  This is the
// case for the TransferFunction entries of halftone dictionaries.
func Extract(r pdf.Getter, obj pdf.Object, allowDefault bool) (Transfer, error) {
	obj, err := pdf.Resolve(r, obj)
	if err != nil {
		return Transfer{}, err
	}

	switch x := obj.(type) {
	case pdf.Name:
		switch {
		case x == "Identity":
			return Identity, nil
		case x == "Default" && allowDefault:
			return Default, nil
		}
		return Transfer{}, &pdf.UnknownVariantError{Found: string(x), Enum: "TransferFunction"}

	case pdf.Array:
		if len(x) != 4 {
			return Transfer{}, &pdf.ArrayLengthError{Expected: 4, Found: len(x)}
		}
		res := Transfer{Kind: KindComponents}
		for i, elem := range x {
			f, err := extractOne(r, elem)
			if err != nil {
				return Transfer{}, pdf.Wrap(err, componentNames[i])
			}
			res.Functions = append(res.Functions, f)
		}
		return res, nil

	case pdf.Dict, *pdf.Stream:
		f, err := extractOne(r, x)
		if err != nil {
			return Transfer{}, err
		}
		return Transfer{Kind: KindSingle, Functions: []function.Function{f}}, nil
	}

	return Transfer{}, &pdf.TypeError{
		Expected: []pdf.ObjectType{pdf.TypeName, pdf.TypeArray, pdf.TypeDict, pdf.TypeStream},
		Found:    pdf.TypeOf(obj),
	}
}

var componentNames = []string{"red", "green", "blue", "gray"}

// extractOne reads a single function.  In arrays, the name /Identity
// is allowed in place of a function.
func extractOne(r pdf.Getter, obj pdf.Object) (function.Function, error) {
	obj, err := pdf.Resolve(r, obj)
	if err != nil {
		return nil, err
	}
	if name, ok := obj.(pdf.Name); ok && name == "Identity" {
		return identity, nil
	}
	f, err := function.Extract(r, obj)
	if err != nil {
		return nil, err
	}
	if m, n := f.Shape(); m != 1 || n != 1 {
		return nil, pdf.Errorf("transfer function has shape %d→%d", m, n)
	}
	return f, nil
}

var identity = &function.Type2{XMin: 0, XMax: 1, C0: []float64{0}, C1: []float64{1}, N: 1}
