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

// Package content assembles the content streams of pages and form XObjects.
//
// The /Contents entry of a page can be either a single stream or an array
// of streams.  [Assemble] decodes all parts and joins them into one buffer,
// ready for an operator parser.
package content

import (
	"bytes"
	"io"
	"strconv"

	"seehuhn.de/go/pdfcore/filter"
	"seehuhn.de/go/pdfcore/pdf"
)

// Stream is a decoded content stream.
type Stream struct {
	Data []byte
}

func (s *Stream) String() string {
	return "<content stream, " + strconv.Itoa(len(s.Data)) + " bytes>"
}

// Reader returns a reader for the content stream data.
func (s *Stream) Reader() io.Reader {
	return bytes.NewReader(s.Data)
}

// Assembler decodes content streams using a given filter registry.
type Assembler struct {
	// Filters is used to decode the stream data.
	// If this is nil, [filter.Default] is used.
	Filters *filter.Registry
}

// Assemble decodes a content stream using the default filter registry.
// See [Assembler.Assemble] for details.
func Assemble(r pdf.Getter, obj pdf.Object) (*Stream, error) {
	a := &Assembler{}
	return a.Assemble(r, obj)
}

// Assemble resolves obj, which must be a stream or an array of streams,
// and returns the decoded data.
//
// For arrays, the decoded data of all streams is concatenated in array
// order.  No separator is inserted between the parts; content streams
// must be split only at token boundaries, and the writer of the file is
// responsible for any white-space needed there.
func (a *Assembler) Assemble(r pdf.Getter, obj pdf.Object) (*Stream, error) {
	reg := a.Filters
	if reg == nil {
		reg = filter.Default
	}

	obj, err := pdf.Resolve(r, obj)
	if err != nil {
		return nil, err
	}

	var parts []*pdf.Stream
	switch x := obj.(type) {
	case *pdf.Stream:
		parts = []*pdf.Stream{x}
	case pdf.Array:
		parts = make([]*pdf.Stream, len(x))
		for i, elem := range x {
			elem, err := pdf.Resolve(r, elem)
			if err != nil {
				return nil, pdf.Wrap(err, "content stream "+strconv.Itoa(i))
			}
			stm, ok := elem.(*pdf.Stream)
			if !ok || stm == nil {
				return nil, pdf.Wrap(contentTypeError(elem), "content stream "+strconv.Itoa(i))
			}
			parts[i] = stm
		}
	default:
		return nil, contentTypeError(obj)
	}

	buf := &bytes.Buffer{}
	for i, stm := range parts {
		body, err := reg.Decode(r, stm)
		if err != nil {
			return nil, pdf.Wrap(err, "content stream "+strconv.Itoa(i))
		}
		_, err = buf.ReadFrom(body)
		if err != nil {
			return nil, pdf.Wrap(err, "content stream "+strconv.Itoa(i))
		}
	}
	return &Stream{Data: buf.Bytes()}, nil
}

func contentTypeError(obj pdf.Object) error {
	return &pdf.TypeError{
		Expected: []pdf.ObjectType{pdf.TypeArray, pdf.TypeStream},
		Found:    pdf.TypeOf(obj),
	}
}
