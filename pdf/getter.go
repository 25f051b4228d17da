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
	"slices"
)

// Getter gives access to the indirect objects of a PDF file.
//
// Get returns the object identified by ref.  If the object does not exist,
// an error of type [*NotFoundError] is returned.  Implementations may
// return further references; these are followed by [Resolve].
type Getter interface {
	Get(ref Reference) (Object, error)
}

// MaxRefDepth is the maximal length of a chain of references which
// [Resolve] will follow.
const MaxRefDepth = 16

// Resolve resolves references to indirect objects.
//
// If obj is a [Reference], the function reads the corresponding object from r
// and returns the result.  If obj is not a [Reference], it is returned
// unchanged.  The function follows chains of references until it reaches a
// non-reference object.
//
// If the chain visits a reference twice, the error wraps [ErrReferenceCycle].
// If the chain is longer than [MaxRefDepth], the error wraps [ErrRefDepth].
// In both cases the error is a [*MalformedFileError].
func Resolve(r Getter, obj Object) (Object, error) {
	ref, isReference := obj.(Reference)
	if !isReference {
		return obj, nil
	}
	origRef := ref

	var seen []Reference
	for {
		if slices.Contains(seen, ref) {
			return nil, &MalformedFileError{
				Err: ErrReferenceCycle,
				Loc: []string{"object " + origRef.String()},
			}
		}
		if len(seen) >= MaxRefDepth {
			return nil, &MalformedFileError{
				Err: ErrRefDepth,
				Loc: []string{"object " + origRef.String()},
			}
		}
		seen = append(seen, ref)

		next, err := r.Get(ref)
		if err != nil {
			return nil, err
		}
		ref, isReference = next.(Reference)
		if !isReference {
			return next, nil
		}
	}
}

func resolveAndCast[T Object](r Getter, obj Object, tp ObjectType) (x T, err error) {
	obj, err = Resolve(r, obj)
	if err != nil {
		return x, err
	}

	x, isCorrectType := obj.(T)
	if isCorrectType && obj != nil {
		return x, nil
	}
	return x, &TypeError{
		Expected: []ObjectType{tp},
		Found:    TypeOf(obj),
	}
}

// Helper functions for getting objects of a specific type.  Each of these
// functions calls [Resolve] on the object before checking its type.  If the
// resolved object is null or has the wrong type, an error of type
// [*TypeError] is returned.

// GetArray resolves obj and asserts that it is an array.
func GetArray(r Getter, obj Object) (Array, error) {
	return resolveAndCast[Array](r, obj, TypeArray)
}

// GetBoolean resolves obj and asserts that it is a boolean.
func GetBoolean(r Getter, obj Object) (Bool, error) {
	return resolveAndCast[Bool](r, obj, TypeBool)
}

// GetDict resolves obj and asserts that it is a dictionary.
func GetDict(r Getter, obj Object) (Dict, error) {
	return resolveAndCast[Dict](r, obj, TypeDict)
}

// GetInteger resolves obj and asserts that it is an integer.
func GetInteger(r Getter, obj Object) (Integer, error) {
	return resolveAndCast[Integer](r, obj, TypeInteger)
}

// GetName resolves obj and asserts that it is a name.
func GetName(r Getter, obj Object) (Name, error) {
	return resolveAndCast[Name](r, obj, TypeName)
}

// GetStream resolves obj and asserts that it is a stream.
func GetStream(r Getter, obj Object) (*Stream, error) {
	stm, err := resolveAndCast[*Stream](r, obj, TypeStream)
	if err == nil && stm == nil {
		return nil, &TypeError{Expected: []ObjectType{TypeStream}, Found: TypeNull}
	}
	return stm, err
}

// GetString resolves obj and asserts that it is a string.
func GetString(r Getter, obj Object) (String, error) {
	return resolveAndCast[String](r, obj, TypeString)
}

// GetTextString resolves obj, asserts that it is a string, and decodes it
// as a PDF text string.
func GetTextString(r Getter, obj Object) (string, error) {
	s, err := GetString(r, obj)
	if err != nil {
		return "", err
	}
	return s.AsTextString(), nil
}

// GetNumber resolves obj and returns its value as a float64.
// Both integers and reals are accepted.
func GetNumber(r Getter, obj Object) (float64, error) {
	obj, err := Resolve(r, obj)
	if err != nil {
		return 0, err
	}
	switch x := obj.(type) {
	case Integer:
		return float64(x), nil
	case Real:
		return float64(x), nil
	default:
		return 0, &TypeError{
			Expected: []ObjectType{TypeInteger, TypeReal},
			Found:    TypeOf(obj),
		}
	}
}

// GetReference asserts that obj is a reference.  The reference is not
// resolved.
func GetReference(obj Object) (Reference, error) {
	ref, ok := obj.(Reference)
	if !ok {
		return 0, &TypeError{
			Expected: []ObjectType{TypeReference},
			Found:    TypeOf(obj),
		}
	}
	return ref, nil
}

// CheckDictType checks that the /Type entry of dict equals name.
//
// If the entry is absent and required is true, a [*MissingKeyError] is
// returned.  If the entry is absent and required is false, the check
// succeeds.  If the entry is present but has a different value, a
// [*TypeTagError] is returned.
func CheckDictType(r Getter, dict Dict, name Name, required bool) error {
	obj, err := Resolve(r, dict["Type"])
	if err != nil {
		return Wrap(err, "/Type")
	}
	if obj == nil {
		if required {
			return &MissingKeyError{Key: "Type"}
		}
		return nil
	}
	tp, ok := obj.(Name)
	if !ok {
		return Wrap(&TypeError{
			Expected: []ObjectType{TypeName},
			Found:    TypeOf(obj),
		}, "/Type")
	}
	if tp != name {
		return &TypeTagError{Expected: name, Found: tp}
	}
	return nil
}

// GetDictTyped resolves obj, asserts that it is a dictionary and checks
// that its /Type entry, if present, equals tp.
func GetDictTyped(r Getter, obj Object, tp Name) (Dict, error) {
	dict, err := GetDict(r, obj)
	if err != nil {
		return nil, err
	}
	err = CheckDictType(r, dict, tp, false)
	if err != nil {
		return nil, err
	}
	return dict, nil
}

// ExpectName reads the required name-valued entry key from dict.
func ExpectName(r Getter, dict Dict, key Name) (Name, error) {
	obj, ok := dict[key]
	if !ok || obj == nil {
		return "", &MissingKeyError{Key: key}
	}
	name, err := GetName(r, obj)
	if err != nil {
		return "", Wrap(err, "/"+string(key))
	}
	return name, nil
}
