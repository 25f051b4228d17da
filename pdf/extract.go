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
	"math"
	"strconv"

	"seehuhn.de/go/geom/rect"
)

// A Converter turns a PDF object into a Go value of type T.
// Converters resolve references as needed, using r.
type Converter[T any] func(r Getter, obj Object) (T, error)

// AsObject returns obj unchanged.  References are not resolved.
func AsObject(_ Getter, obj Object) (Object, error) {
	return obj, nil
}

// AsName converts a name object.
func AsName(r Getter, obj Object) (Name, error) {
	return GetName(r, obj)
}

// AsInteger converts an integer object.
func AsInteger(r Getter, obj Object) (Integer, error) {
	return GetInteger(r, obj)
}

// AsInt converts an integer object to a Go int.
func AsInt(r Getter, obj Object) (int, error) {
	x, err := GetInteger(r, obj)
	if err != nil {
		return 0, err
	}
	if int64(x) > math.MaxInt || int64(x) < math.MinInt {
		return 0, Errorf("integer %d out of range", x)
	}
	return int(x), nil
}

// AsNumber converts an integer or real object to a float64.
func AsNumber(r Getter, obj Object) (float64, error) {
	return GetNumber(r, obj)
}

// AsBool converts a boolean object.
func AsBool(r Getter, obj Object) (bool, error) {
	x, err := GetBoolean(r, obj)
	return bool(x), err
}

// AsString converts a string object.
func AsString(r Getter, obj Object) (String, error) {
	return GetString(r, obj)
}

// AsTextString converts a string object, interpreted as a PDF text string.
func AsTextString(r Getter, obj Object) (string, error) {
	return GetTextString(r, obj)
}

// AsDict converts a dictionary object.
func AsDict(r Getter, obj Object) (Dict, error) {
	return GetDict(r, obj)
}

// AsArray converts an array object.
func AsArray(r Getter, obj Object) (Array, error) {
	return GetArray(r, obj)
}

// AsStream converts a stream object.
func AsStream(r Getter, obj Object) (*Stream, error) {
	return GetStream(r, obj)
}

// AsReference requires obj to be a reference.  The reference is not resolved.
func AsReference(_ Getter, obj Object) (Reference, error) {
	return GetReference(obj)
}

// AsRectangle converts an array of four numbers to a rectangle.
// The corners are normalized so that LLx <= URx and LLy <= URy.
func AsRectangle(r Getter, obj Object) (rect.Rect, error) {
	v, err := ArrayOfLen(AsNumber, 4)(r, obj)
	if err != nil {
		return rect.Rect{}, err
	}
	return rect.Rect{
		LLx: min(v[0], v[2]),
		LLy: min(v[1], v[3]),
		URx: max(v[0], v[2]),
		URy: max(v[1], v[3]),
	}, nil
}

// ArrayOf returns a converter for arrays whose elements are converted
// by conv.
func ArrayOf[T any](conv Converter[T]) Converter[[]T] {
	return func(r Getter, obj Object) ([]T, error) {
		a, err := GetArray(r, obj)
		if err != nil {
			return nil, err
		}
		res := make([]T, len(a))
		for i, elem := range a {
			res[i], err = conv(r, elem)
			if err != nil {
				return nil, Wrap(err, "element "+strconv.Itoa(i))
			}
		}
		return res, nil
	}
}

// ArrayOfLen is like [ArrayOf], but additionally requires the array to
// have exactly n elements.
func ArrayOfLen[T any](conv Converter[T], n int) Converter[[]T] {
	inner := ArrayOf(conv)
	return func(r Getter, obj Object) ([]T, error) {
		a, err := GetArray(r, obj)
		if err != nil {
			return nil, err
		}
		if len(a) != n {
			return nil, &ArrayLengthError{Expected: n, Found: len(a)}
		}
		return inner(r, a)
	}
}

// Enum describes an enumeration whose values are represented by PDF names.
type Enum[T any] struct {
	// Name is used in error messages.
	Name string

	Values map[Name]T
}

// Convert resolves obj, which must be a name, and maps it to the
// corresponding value.  Unknown names give an [*UnknownVariantError].
func (e *Enum[T]) Convert(r Getter, obj Object) (T, error) {
	var zero T
	name, err := GetName(r, obj)
	if err != nil {
		return zero, err
	}
	val, ok := e.Values[name]
	if !ok {
		return zero, &UnknownVariantError{Found: string(name), Enum: e.Name}
	}
	return val, nil
}

// IntEnum describes an enumeration whose values are represented by PDF
// integers.
type IntEnum[T any] struct {
	Name   string
	Values map[Integer]T
}

// Convert resolves obj, which must be an integer, and maps it to the
// corresponding value.  Unknown values give an [*UnknownVariantError].
func (e *IntEnum[T]) Convert(r Getter, obj Object) (T, error) {
	var zero T
	x, err := GetInteger(r, obj)
	if err != nil {
		return zero, err
	}
	val, ok := e.Values[x]
	if !ok {
		return zero, &UnknownVariantError{
			Found: strconv.FormatInt(int64(x), 10),
			Enum:  e.Name,
		}
	}
	return val, nil
}

// A Field describes how one dictionary entry is extracted by a [Schema].
// Fields are constructed using [Required], [Optional], [Default] and [Raw].
type Field struct {
	Key Name

	// present is called when the key is present, with the value as stored
	// in the dictionary.
	present func(r Getter, obj Object) error

	// absent is called when the key is missing or null.
	absent func() error

	// lazy fields are passed to present without being resolved.
	lazy bool
}

// Required describes a field which must be present.  The converted value is
// stored in *dst.
func Required[T any](key Name, dst *T, conv Converter[T]) Field {
	return Field{
		Key: key,
		present: func(r Getter, obj Object) error {
			v, err := conv(r, obj)
			if err != nil {
				return err
			}
			*dst = v
			return nil
		},
		absent: func() error {
			return &MissingKeyError{Key: key}
		},
	}
}

// Optional describes a field which may be absent.  If the key is present,
// *dst is set to point to the converted value, otherwise *dst is set to nil.
func Optional[T any](key Name, dst **T, conv Converter[T]) Field {
	return Field{
		Key: key,
		present: func(r Getter, obj Object) error {
			v, err := conv(r, obj)
			if err != nil {
				return err
			}
			*dst = &v
			return nil
		},
		absent: func() error {
			*dst = nil
			return nil
		},
	}
}

// Default describes a field with a default value.  If the key is absent,
// *dst is set to def.
func Default[T any](key Name, dst *T, def T, conv Converter[T]) Field {
	return Field{
		Key: key,
		present: func(r Getter, obj Object) error {
			v, err := conv(r, obj)
			if err != nil {
				return err
			}
			*dst = v
			return nil
		},
		absent: func() error {
			*dst = def
			return nil
		},
	}
}

// Lazy returns a copy of f which passes the value to the converter without
// resolving it first.  This is needed for converters like [AsReference]
// and [AsTypedReference].
func (f Field) Lazy() Field {
	f.lazy = true
	return f
}

// Raw stores the value of an optional field without resolving or
// converting it.  If the key is absent, *dst is set to nil.
func Raw(key Name, dst *Object) Field {
	return Field{
		Key:  key,
		lazy: true,
		present: func(_ Getter, obj Object) error {
			*dst = obj
			return nil
		},
		absent: func() error {
			*dst = nil
			return nil
		},
	}
}

// Schema describes how a dictionary is converted into a Go structure.
type Schema struct {
	// Type, if non-empty, is the expected value of the /Type entry.
	Type Name

	// TypeRequired indicates that the /Type entry must be present.
	// If this is false, a missing /Type entry is accepted.
	TypeRequired bool

	// Fields lists the entries to extract, in order.
	Fields []Field
}

// Decode resolves obj to a dictionary and extracts all fields described
// by the schema.  The type tag is checked before any field is read.
// Entries which are null, or which resolve to null, count as absent.
//
// The resolved dictionary is returned, so that callers can access entries
// not covered by the schema.
func (s *Schema) Decode(r Getter, obj Object) (Dict, error) {
	dict, err := GetDict(r, obj)
	if err != nil {
		return nil, err
	}

	if s.Type != "" {
		err = CheckDictType(r, dict, s.Type, s.TypeRequired)
		if err != nil {
			return nil, err
		}
	}

	for _, f := range s.Fields {
		val := dict[f.Key]
		if !f.lazy {
			val, err = Resolve(r, val)
			if err != nil {
				return nil, Wrap(err, "/"+string(f.Key))
			}
		}
		if val == nil {
			err = f.absent()
		} else {
			err = f.present(r, val)
			if err != nil {
				err = Wrap(err, "/"+string(f.Key))
			}
		}
		if err != nil {
			return nil, err
		}
	}
	return dict, nil
}
