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

package store

import (
	"fmt"
	"math"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"seehuhn.de/go/pdfcore/pdf"
)

// convert translates a pdfcpu object into the representation used by
// package pdf.  References are kept as references.
func convert(obj types.Object) (pdf.Object, error) {
	switch x := obj.(type) {
	case nil:
		return nil, nil
	case types.Boolean:
		return pdf.Bool(x), nil
	case types.Integer:
		return pdf.Integer(x), nil
	case types.Float:
		return pdf.Real(x), nil
	case types.Name:
		return pdf.Name(x), nil
	case types.StringLiteral:
		s, err := types.Unescape(string(x))
		if err != nil {
			return nil, &pdf.MalformedFileError{Err: err}
		}
		return pdf.String(s), nil
	case types.HexLiteral:
		s, err := x.Bytes()
		if err != nil {
			return nil, &pdf.MalformedFileError{Err: err}
		}
		return pdf.String(s), nil
	case types.IndirectRef:
		return convertRef(x), nil
	case types.Array:
		res := make(pdf.Array, len(x))
		for i, elem := range x {
			v, err := convert(elem)
			if err != nil {
				return nil, pdf.Wrap(err, fmt.Sprintf("element %d", i))
			}
			res[i] = v
		}
		return res, nil
	case types.Dict:
		return convertDict(x)
	case types.StreamDict:
		dict, err := convertDict(x.Dict)
		if err != nil {
			return nil, err
		}
		return &pdf.Stream{Dict: dict, Data: x.Raw}, nil
	case *types.StreamDict:
		if x == nil {
			return nil, nil
		}
		return convert(*x)
	case types.ObjectStreamDict:
		return convert(x.StreamDict)
	case types.XRefStreamDict:
		return convert(x.StreamDict)
	}
	return nil, pdf.Errorf("unsupported object type %T", obj)
}

func convertDict(d types.Dict) (pdf.Dict, error) {
	res := make(pdf.Dict, len(d))
	for key, val := range d {
		v, err := convert(val)
		if err != nil {
			return nil, pdf.Wrap(err, "/"+key)
		}
		if v != nil {
			res[pdf.Name(key)] = v
		}
	}
	return res, nil
}

func convertRef(ref types.IndirectRef) pdf.Reference {
	num := int64(ref.ObjectNumber)
	gen := int64(ref.GenerationNumber)
	if num < 0 || num > math.MaxUint32 || gen < 0 || gen > math.MaxUint16 {
		// out-of-range references cannot exist in the file
		return pdf.NewReference(0, math.MaxUint16)
	}
	return pdf.NewReference(uint32(num), uint16(gen))
}
