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
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// decodeTextString converts a PDF text string to UTF-8.
// Strings starting with a UTF-16BE or UTF-8 byte order mark are decoded
// accordingly, all other strings use PDFDocEncoding.
func decodeTextString(s String) string {
	switch {
	case len(s) >= 2 && s[0] == 0xFE && s[1] == 0xFF:
		dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
		res, err := dec.Bytes(s)
		if err == nil {
			return string(res)
		}
	case bytes.HasPrefix(s, []byte{0xEF, 0xBB, 0xBF}) && utf8.Valid(s[3:]):
		return string(s[3:])
	}
	return pdfDocDecode(s)
}

func pdfDocDecode(s String) string {
	for _, c := range s {
		if c >= 0x80 || pdfDocEncoding[c] != rune(c) {
			goto Decode
		}
	}
	return string(s)

Decode:
	r := make([]rune, 0, len(s))
	for _, c := range s {
		if rr := pdfDocEncoding[c]; rr != 0 || c == 0 {
			r = append(r, rr)
		} else {
			r = append(r, utf8.RuneError)
		}
	}
	return string(r)
}

// pdfDocEncoding maps PDFDocEncoding codes to unicode.  Undefined codes
// map to 0.
var pdfDocEncoding = func() [256]rune {
	var m [256]rune
	for i := range 0x80 {
		m[i] = rune(i)
	}
	for i := 0xA1; i < 0x100; i++ {
		m[i] = rune(i)
	}
	for i, r := range []rune{
		0x02D8, 0x02C7, 0x02C6, 0x02D9, 0x02DD, 0x02DB, 0x02DA, 0x02DC,
	} {
		m[0x18+i] = r
	}
	for i, r := range []rune{
		0x2022, 0x2020, 0x2021, 0x2026, 0x2014, 0x2013, 0x0192, 0x2044,
		0x2039, 0x203A, 0x2212, 0x2030, 0x201E, 0x201C, 0x201D, 0x2018,
		0x2019, 0x201A, 0x2122, 0xFB01, 0xFB02, 0x0141, 0x0152, 0x0160,
		0x0178, 0x017D, 0x0131, 0x0142, 0x0153, 0x0161, 0x017E,
	} {
		m[0x80+i] = r
	}
	m[0x7F] = 0
	m[0xA0] = 0x20AC
	m[0xAD] = 0
	return m
}()
