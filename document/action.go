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

// OpenAction is the value of the /OpenAction entry in the document catalog.
// Exactly one of Action and Destination is set.
type OpenAction struct {
	Action      *Action
	Destination pdf.Object
}

// Action is an action dictionary.
type Action struct {
	// S is the type of action, for example /GoTo or /JavaScript.
	S pdf.Name

	// Next (optional) is the action, or array of actions, performed after
	// this one.
	Next pdf.Object

	// Dict holds all entries of the action dictionary.
	Dict pdf.Dict
}

// ExtractAction reads an action dictionary.
func ExtractAction(r pdf.Getter, obj pdf.Object) (*Action, error) {
	a := &Action{}
	schema := &pdf.Schema{
		Type: "Action",
		Fields: []pdf.Field{
			pdf.Required("S", &a.S, pdf.AsName),
			pdf.Raw("Next", &a.Next),
		},
	}
	dict, err := schema.Decode(r, obj)
	if err != nil {
		return nil, err
	}
	a.Dict = dict
	return a, nil
}

// asOpenAction decides between the two forms of /OpenAction:
// a dictionary is an action, everything else is a destination.
func asOpenAction(r pdf.Getter, obj pdf.Object) (OpenAction, error) {
	obj, err := pdf.Resolve(r, obj)
	if err != nil {
		return OpenAction{}, err
	}

	switch obj := obj.(type) {
	case pdf.Dict:
		a, err := ExtractAction(r, obj)
		if err != nil {
			return OpenAction{}, err
		}
		return OpenAction{Action: a}, nil
	case pdf.Array:
		if len(obj) < 2 {
			return OpenAction{}, &pdf.ArrayLengthError{Expected: 2, Found: len(obj)}
		}
		return OpenAction{Destination: obj}, nil
	case pdf.Name, pdf.String:
		return OpenAction{Destination: obj}, nil
	default:
		return OpenAction{}, &pdf.TypeError{
			Expected: []pdf.ObjectType{pdf.TypeDict, pdf.TypeArray, pdf.TypeName, pdf.TypeString},
			Found:    pdf.TypeOf(obj),
		}
	}
}
