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

import (
	"errors"
	"strings"
	"time"

	"seehuhn.de/go/pdfcore/pdf"
)

// PDF 2.0 sections: 14.3.3

// Trapped indicates whether a document has been modified to include
// trapping information.
type Trapped int

// These are the valid values of the /Trapped entry.
const (
	TrappedUnknown Trapped = iota
	TrappedTrue
	TrappedFalse
)

// TrappedEnum maps the names used in the /Trapped entry to [Trapped].
var TrappedEnum = &pdf.Enum[Trapped]{
	Name: "Trapped",
	Values: map[pdf.Name]Trapped{
		"True":    TrappedTrue,
		"False":   TrappedFalse,
		"Unknown": TrappedUnknown,
	},
}

func (t Trapped) String() string {
	switch t {
	case TrappedTrue:
		return "True"
	case TrappedFalse:
		return "False"
	default:
		return "Unknown"
	}
}

// Info represents a document information dictionary.
type Info struct {
	Title    *string
	Author   *string
	Subject  *string
	Keywords *string
	Creator  *string
	Producer *string

	CreationDate *time.Time
	ModDate      *time.Time

	Trapped Trapped

	// Custom holds all entries not listed above, as text strings.
	// Entries which are not strings are omitted.
	Custom map[string]string
}

var infoKeys = map[pdf.Name]bool{
	"Title":        true,
	"Author":       true,
	"Subject":      true,
	"Keywords":     true,
	"Creator":      true,
	"Producer":     true,
	"CreationDate": true,
	"ModDate":      true,
	"Trapped":      true,
}

// ExtractInfo reads a document information dictionary.
func ExtractInfo(r pdf.Getter, obj pdf.Object) (*Info, error) {
	info := &Info{}
	schema := &pdf.Schema{
		Fields: []pdf.Field{
			pdf.Optional("Title", &info.Title, pdf.AsTextString),
			pdf.Optional("Author", &info.Author, pdf.AsTextString),
			pdf.Optional("Subject", &info.Subject, pdf.AsTextString),
			pdf.Optional("Keywords", &info.Keywords, pdf.AsTextString),
			pdf.Optional("Creator", &info.Creator, pdf.AsTextString),
			pdf.Optional("Producer", &info.Producer, pdf.AsTextString),
			pdf.Optional("CreationDate", &info.CreationDate, AsDate),
			pdf.Optional("ModDate", &info.ModDate, AsDate),
			pdf.Default("Trapped", &info.Trapped, TrappedUnknown, TrappedEnum.Convert),
		},
	}
	dict, err := schema.Decode(r, obj)
	if err != nil {
		return nil, err
	}

	for key, val := range dict {
		if infoKeys[key] {
			continue
		}
		s, err := pdf.GetTextString(r, val)
		if err != nil {
			continue
		}
		if info.Custom == nil {
			info.Custom = make(map[string]string)
		}
		info.Custom[string(key)] = s
	}
	return info, nil
}

var errNoDate = errors.New("not a valid date string")

// AsDate converts a PDF date string, like "D:20250102150405+01'00'", into a
// [time.Time].
func AsDate(r pdf.Getter, obj pdf.Object) (time.Time, error) {
	s, err := pdf.GetTextString(r, obj)
	if err != nil {
		return time.Time{}, err
	}

	s = strings.TrimSpace(strings.ReplaceAll(s, "'", ""))
	if !strings.HasPrefix(s, "D:") {
		s = "D:" + s
	}

	formats := []string{
		"D:20060102150405-0700",
		"D:20060102150405-07",
		"D:20060102150405Z0000",
		"D:20060102150405Z00",
		"D:20060102150405Z",
		"D:20060102150405",
		"D:200601021504",
		"D:2006010215",
		"D:20060102",
		"D:200601",
		"D:2006",
	}
	for _, format := range formats {
		t, err := time.Parse(format, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, &pdf.MalformedFileError{Err: errNoDate}
}
