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

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Reference represents a reference to an indirect object in a PDF file.
// The lower 32 bits represent the object number, the next 16 bits the
// generation number.
//
// Two references are equal if and only if they have the same object
// and generation numbers.
type Reference uint64

// NewReference returns the reference with the given object number and
// generation number.
func NewReference(number uint32, generation uint16) Reference {
	return Reference(uint64(number) | uint64(generation)<<32)
}

// Number returns the object number of the reference.
func (x Reference) Number() uint32 {
	return uint32(x)
}

// Generation returns the generation number of the reference.
func (x Reference) Generation() uint16 {
	return uint16(x >> 32)
}

func (x Reference) String() string {
	res := []string{
		"obj_",
		strconv.FormatInt(int64(x.Number()), 10),
	}
	gen := x.Generation()
	if gen > 0 {
		res = append(res, "@", strconv.FormatUint(uint64(gen), 10))
	}
	return strings.Join(res, "")
}

// PDF implements the [Object] interface.
func (x Reference) PDF(w io.Writer) error {
	if x>>48 != 0 {
		return fmt.Errorf("invalid reference: 0x%016x", uint64(x))
	}

	_, err := fmt.Fprintf(w, "%d %d R", x.Number(), x.Generation())
	return err
}

// TypedReference is a reference to an indirect object which, once resolved,
// is expected to have the Go representation T.
//
// The type parameter only documents the expected shape.  A TypedReference
// neither resolves nor caches anything; use [TypedReference.Get] to read the
// object on demand.
type TypedReference[T any] struct {
	Ref Reference
}

// Get resolves the reference using r and converts the result to T.
func (x TypedReference[T]) Get(r Getter, conv Converter[T]) (T, error) {
	v, err := conv(r, x.Ref)
	if err != nil {
		var zero T
		return zero, Wrap(err, x.Ref.String())
	}
	return v, nil
}

func (x TypedReference[T]) String() string {
	return x.Ref.String()
}

// AsTypedReference is a [Converter] for fields which must hold an
// indirect reference.  The reference is not resolved.
func AsTypedReference[T any](_ Getter, obj Object) (TypedReference[T], error) {
	ref, ok := obj.(Reference)
	if !ok {
		return TypedReference[T]{}, &TypeError{
			Expected: []ObjectType{TypeReference},
			Found:    TypeOf(obj),
		}
	}
	return TypedReference[T]{Ref: ref}, nil
}

// ObjectType identifies one of the ten shapes a PDF object can have.
type ObjectType uint8

// These are the possible values of ObjectType.
const (
	TypeNull ObjectType = iota
	TypeBool
	TypeInteger
	TypeReal
	TypeString
	TypeName
	TypeArray
	TypeDict
	TypeStream
	TypeReference
)

func (t ObjectType) String() string {
	switch t {
	case TypeNull:
		return "Null"
	case TypeBool:
		return "Boolean"
	case TypeInteger:
		return "Integer"
	case TypeReal:
		return "Real"
	case TypeString:
		return "String"
	case TypeName:
		return "Name"
	case TypeArray:
		return "Array"
	case TypeDict:
		return "Dictionary"
	case TypeStream:
		return "Stream"
	case TypeReference:
		return "Reference"
	default:
		return "ObjectType(" + strconv.Itoa(int(t)) + ")"
	}
}

// TypeOf returns the shape of obj.
func TypeOf(obj Object) ObjectType {
	switch obj.(type) {
	case Bool:
		return TypeBool
	case Integer:
		return TypeInteger
	case Real:
		return TypeReal
	case String:
		return TypeString
	case Name:
		return TypeName
	case Array:
		return TypeArray
	case Dict:
		return TypeDict
	case *Stream:
		return TypeStream
	case Reference:
		return TypeReference
	default:
		return TypeNull
	}
}
