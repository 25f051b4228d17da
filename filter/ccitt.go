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

package filter

import (
	"io"

	"golang.org/x/image/ccitt"

	"seehuhn.de/go/pdfcore/pdf"
)

// decodeCCITTFax decodes CCITT Group 3 and Group 4 fax data.
// /K < 0 selects Group 4 encoding, all other values select Group 3.
func decodeCCITTFax(r io.Reader, parms pdf.Dict) (io.Reader, error) {
	k, err := intParam(parms, "K", 0)
	if err != nil {
		return nil, err
	}
	columns, err := intParam(parms, "Columns", 1728)
	if err != nil {
		return nil, err
	}
	rows, err := intParam(parms, "Rows", 0)
	if err != nil {
		return nil, err
	}
	blackIs1, err := boolParam(parms, "BlackIs1", false)
	if err != nil {
		return nil, err
	}
	byteAlign, err := boolParam(parms, "EncodedByteAlign", false)
	if err != nil {
		return nil, err
	}
	if columns < 1 || rows < 0 {
		return nil, pdf.Errorf("invalid CCITTFaxDecode size %dx%d", columns, rows)
	}

	sf := ccitt.Group3
	if k < 0 {
		sf = ccitt.Group4
	}
	if rows == 0 {
		rows = ccitt.AutoDetectHeight
	}
	opts := &ccitt.Options{
		Invert: blackIs1,
		Align:  byteAlign,
	}
	return ccitt.NewReader(r, ccitt.MSB, sf, columns, rows, opts), nil
}
