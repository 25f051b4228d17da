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
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MalformedFileError indicates that a PDF file could not be parsed.
// Loc lists the places where the error was found, outermost first.
type MalformedFileError struct {
	Err error
	Loc []string
}

func (err *MalformedFileError) Error() string {
	parts := []string{"malformed PDF"}
	parts = append(parts, err.Loc...)
	msg := strings.Join(parts, ": ")
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return msg
}

func (err *MalformedFileError) Unwrap() error {
	return err.Err
}

func (err *MalformedFileError) malformed() {}

// Errorf returns a new [MalformedFileError] with the given message.
func Errorf(format string, args ...any) error {
	return &MalformedFileError{Err: fmt.Errorf(format, args...)}
}

// Wrap adds location information to an error.
// If err is nil, Wrap returns nil.
func Wrap(err error, loc string) error {
	if err == nil {
		return nil
	}
	var m *MalformedFileError
	if errors.As(err, &m) && m == err {
		return &MalformedFileError{
			Err: m.Err,
			Loc: append([]string{loc}, m.Loc...),
		}
	}
	if IsMalformed(err) {
		return &MalformedFileError{Err: err, Loc: []string{loc}}
	}
	return fmt.Errorf("%s: %w", loc, err)
}

// IsMalformed reports whether err indicates a problem with the structure of
// the PDF file, as opposed to, for example, an I/O error.
func IsMalformed(err error) bool {
	var m interface{ malformed() }
	return errors.As(err, &m)
}

var (
	// ErrNotSupported marks PDF features which are intentionally not
	// implemented by this library.
	ErrNotSupported = errors.New("not supported")

	// ErrReferenceCycle is reported, wrapped in a [MalformedFileError],
	// when a chain of references leads back to a reference already visited.
	ErrReferenceCycle = errors.New("cycle in chain of references")

	// ErrRefDepth is reported, wrapped in a [MalformedFileError], when a
	// chain of references is longer than [MaxRefDepth].
	ErrRefDepth = errors.New("too many levels of indirection")
)

// NotFoundError is returned by a [Getter] when the requested object
// does not exist.
type NotFoundError struct {
	Ref Reference
}

func (err *NotFoundError) Error() string {
	return "object " + err.Ref.String() + " not found"
}

// ByteMismatchError indicates that the input did not contain one of the
// expected bytes.  Found is -1 at the end of input.
type ByteMismatchError struct {
	Expected []byte
	Found    int
}

func (err *ByteMismatchError) Error() string {
	found := "end of input"
	if err.Found >= 0 {
		found = strconv.QuoteRune(rune(err.Found))
	}
	if len(err.Expected) == 1 {
		return fmt.Sprintf("expected %q, found %s", err.Expected[0], found)
	}
	return fmt.Sprintf("expected one of %q, found %s", string(err.Expected), found)
}

func (err *ByteMismatchError) malformed() {}

// TypeError indicates that an object has the wrong shape.
// If more than one shape would have been acceptable, Expected lists
// all of them.
type TypeError struct {
	Expected []ObjectType
	Found    ObjectType
}

func (err *TypeError) Error() string {
	var exp []string
	for _, t := range err.Expected {
		exp = append(exp, t.String())
	}
	if len(exp) == 1 {
		return "expected " + exp[0] + " but found " + err.Found.String()
	}
	return "expected one of " + strings.Join(exp, ", ") +
		" but found " + err.Found.String()
}

func (err *TypeError) malformed() {}

// MissingKeyError indicates that a required dictionary entry is absent.
type MissingKeyError struct {
	Key Name
}

func (err *MissingKeyError) Error() string {
	return "required key /" + string(err.Key) + " is missing"
}

func (err *MissingKeyError) malformed() {}

// ArrayLengthError indicates that an array does not have the required
// number of elements.
type ArrayLengthError struct {
	Expected int
	Found    int
}

func (err *ArrayLengthError) Error() string {
	return fmt.Sprintf("expected array of length %d, found length %d",
		err.Expected, err.Found)
}

func (err *ArrayLengthError) malformed() {}

// UnknownVariantError indicates that a value is not one of the literals
// allowed for an enumeration.
type UnknownVariantError struct {
	Found string
	Enum  string
}

func (err *UnknownVariantError) Error() string {
	return fmt.Sprintf("unrecognized %s %q", err.Enum, err.Found)
}

func (err *UnknownVariantError) malformed() {}

// TypeTagError indicates that the /Type entry of a dictionary has the
// wrong value.
type TypeTagError struct {
	Expected Name
	Found    Name
}

func (err *TypeTagError) Error() string {
	return fmt.Sprintf("expected /Type /%s, found /%s", err.Expected, err.Found)
}

func (err *TypeTagError) malformed() {}
