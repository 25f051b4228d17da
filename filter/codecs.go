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
	"compress/zlib"
	"fmt"
	"io"

	"github.com/hhrutter/lzw"

	"seehuhn.de/go/pdfcore/internal/filter/ascii85"
	"seehuhn.de/go/pdfcore/internal/filter/asciihex"
	"seehuhn.de/go/pdfcore/internal/filter/predict"
	"seehuhn.de/go/pdfcore/internal/filter/runlength"
	"seehuhn.de/go/pdfcore/pdf"
)

// Default is the registry used when no other registry is specified.
// It contains all codecs returned by [Standard].
var Default = Standard()

// Standard returns a new registry which contains codecs for the standard
// PDF filters, together with the abbreviated names used in inline images.
//
// JPXDecode and JBIG2Decode are registered, but decoding fails with
// [pdf.ErrNotSupported].  The Crypt filter only supports the Identity
// crypt filter.
func Standard() *Registry {
	reg := NewRegistry()
	for _, c := range []struct {
		name  pdf.Name
		alias pdf.Name
		codec Codec
	}{
		{"FlateDecode", "Fl", CodecFunc(decodeFlate)},
		{"LZWDecode", "LZW", CodecFunc(decodeLZW)},
		{"ASCIIHexDecode", "AHx", CodecFunc(decodeASCIIHex)},
		{"ASCII85Decode", "A85", CodecFunc(decodeASCII85)},
		{"RunLengthDecode", "RL", CodecFunc(decodeRunLength)},
		{"CCITTFaxDecode", "CCF", CodecFunc(decodeCCITTFax)},
		{"DCTDecode", "DCT", CodecFunc(decodeDCT)},
		{"Crypt", "", CodecFunc(decodeCrypt)},
		{"JPXDecode", "", notSupported("JPXDecode")},
		{"JBIG2Decode", "", notSupported("JBIG2Decode")},
	} {
		reg.Register(c.name, c.codec)
		if c.alias != "" {
			reg.Register(c.alias, c.codec)
		}
	}
	return reg
}

func decodeFlate(r io.Reader, parms pdf.Dict) (io.Reader, error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, err
	}
	return withPredictor(zr, parms)
}

func decodeLZW(r io.Reader, parms pdf.Dict) (io.Reader, error) {
	earlyChange, err := intParam(parms, "EarlyChange", 1)
	if err != nil {
		return nil, err
	}
	if earlyChange != 0 && earlyChange != 1 {
		return nil, pdf.Errorf("invalid /EarlyChange %d", earlyChange)
	}
	return withPredictor(lzw.NewReader(r, earlyChange == 1), parms)
}

func decodeASCIIHex(r io.Reader, _ pdf.Dict) (io.Reader, error) {
	return asciihex.Decode(r), nil
}

func decodeASCII85(r io.Reader, _ pdf.Dict) (io.Reader, error) {
	return ascii85.Decode(r), nil
}

func decodeRunLength(r io.Reader, _ pdf.Dict) (io.Reader, error) {
	return runlength.Decode(r), nil
}

func decodeCrypt(r io.Reader, parms pdf.Dict) (io.Reader, error) {
	name := pdf.Name("Identity")
	if obj, ok := parms["Name"]; ok && obj != nil {
		n, isName := obj.(pdf.Name)
		if !isName {
			return nil, pdf.Wrap(&pdf.TypeError{
				Expected: []pdf.ObjectType{pdf.TypeName},
				Found:    pdf.TypeOf(obj),
			}, "/Name")
		}
		name = n
	}
	if name != "Identity" {
		return nil, fmt.Errorf("crypt filter /%s: %w", name, pdf.ErrNotSupported)
	}
	return r, nil
}

func notSupported(name pdf.Name) Codec {
	return CodecFunc(func(io.Reader, pdf.Dict) (io.Reader, error) {
		return nil, fmt.Errorf("/%s: %w", name, pdf.ErrNotSupported)
	})
}

// withPredictor undoes the predictor given in parms, if any.
func withPredictor(r io.Reader, parms pdf.Dict) (io.Reader, error) {
	p := &predict.Params{}
	var err error
	for _, x := range []struct {
		key pdf.Name
		dst *int
		def int
	}{
		{"Predictor", &p.Predictor, 1},
		{"Colors", &p.Colors, 1},
		{"BitsPerComponent", &p.BitsPerComponent, 8},
		{"Columns", &p.Columns, 1},
	} {
		*x.dst, err = intParam(parms, x.key, x.def)
		if err != nil {
			return nil, err
		}
	}
	if err := p.Validate(); err != nil {
		return nil, pdf.Wrap(pdf.Errorf("%w", err), "predictor")
	}
	return predict.NewReader(r, p)
}

// intParam reads an integer-valued decode parameter.
func intParam(parms pdf.Dict, key pdf.Name, def int) (int, error) {
	obj, ok := parms[key]
	if !ok || obj == nil {
		return def, nil
	}
	x, ok := obj.(pdf.Integer)
	if !ok {
		return 0, pdf.Wrap(&pdf.TypeError{
			Expected: []pdf.ObjectType{pdf.TypeInteger},
			Found:    pdf.TypeOf(obj),
		}, "/"+string(key))
	}
	return int(x), nil
}

// boolParam reads a boolean-valued decode parameter.
func boolParam(parms pdf.Dict, key pdf.Name, def bool) (bool, error) {
	obj, ok := parms[key]
	if !ok || obj == nil {
		return def, nil
	}
	x, ok := obj.(pdf.Bool)
	if !ok {
		return false, pdf.Wrap(&pdf.TypeError{
			Expected: []pdf.ObjectType{pdf.TypeBool},
			Found:    pdf.TypeOf(obj),
		}, "/"+string(key))
	}
	return bool(x), nil
}
