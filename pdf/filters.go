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

package pdf

import "strconv"

// FilterInfo describes one filter in the filter chain of a stream.
type FilterInfo struct {
	Name Name

	// Parms holds the decode parameters.  This is nil if no parameters
	// were given.
	Parms Dict
}

// Filters extracts the information contained in the /Filter and /DecodeParms
// entries of the stream dictionary.  The filters are listed in the order
// in which they must be applied when decoding.
func (x *Stream) Filters(r Getter) ([]FilterInfo, error) {
	filter, err := Resolve(r, x.Dict["Filter"])
	if err != nil {
		return nil, Wrap(err, "/Filter")
	}
	parms, err := Resolve(r, x.Dict["DecodeParms"])
	if err != nil {
		return nil, Wrap(err, "/DecodeParms")
	}

	var filters []FilterInfo
	switch f := filter.(type) {
	case nil:
		// pass
	case Name:
		pDict, err := decodeParms(r, parms)
		if err != nil {
			return nil, Wrap(err, "/DecodeParms")
		}
		filters = append(filters, FilterInfo{Name: f, Parms: pDict})
	case Array:
		var pa Array
		switch p := parms.(type) {
		case nil:
			// pass
		case Array:
			pa = p
		default:
			return nil, Wrap(&TypeError{
				Expected: []ObjectType{TypeArray},
				Found:    TypeOf(parms),
			}, "/DecodeParms")
		}
		for i, fi := range f {
			name, err := GetName(r, fi)
			if err != nil {
				return nil, Wrap(err, "/Filter element "+strconv.Itoa(i))
			}
			var pDict Dict
			if i < len(pa) {
				pDict, err = decodeParms(r, pa[i])
				if err != nil {
					return nil, Wrap(err, "/DecodeParms element "+strconv.Itoa(i))
				}
			}
			filters = append(filters, FilterInfo{Name: name, Parms: pDict})
		}
	default:
		return nil, Wrap(&TypeError{
			Expected: []ObjectType{TypeName, TypeArray},
			Found:    TypeOf(filter),
		}, "/Filter")
	}
	return filters, nil
}

func decodeParms(r Getter, obj Object) (Dict, error) {
	obj, err := Resolve(r, obj)
	if err != nil || obj == nil {
		return nil, err
	}
	return GetDict(r, obj)
}
