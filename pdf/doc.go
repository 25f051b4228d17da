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

// Package pdf implements the object model of PDF files.
//
// The following types implement the native PDF object types.
// All of these implement the [Object] interface:
//
//	Array
//	Bool
//	Dict
//	Integer
//	Name
//	Real
//	Reference
//	*Stream
//	String
//
// The Go value nil represents the PDF null object.
//
// Indirect objects are accessed through the [Getter] interface.  The
// [Resolve] function follows chains of references, and helpers like
// [GetDict] or [GetName] combine resolution with a type check.
// There is no shared, mutable object graph: every operation which may need
// to follow a reference takes a Getter as an explicit argument.
//
// PDF dictionaries are converted into Go structures using a [Schema]:
//
//	var pages pdf.Reference
//	var layout PageLayout
//	s := &pdf.Schema{
//		Type:   "Catalog",
//		Fields: []pdf.Field{
//			pdf.Required("Pages", &pages, pdf.AsReference).Lazy(),
//			pdf.Default("PageLayout", &layout, SinglePage, layoutEnum.Convert),
//		},
//	}
//	_, err := s.Decode(r, obj)
//
// Errors caused by malformed PDF data can be recognized using [IsMalformed].
package pdf
