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

package color

import (
	"fmt"
	"slices"

	"seehuhn.de/go/icc"

	"seehuhn.de/go/pdfcore/filter"
	"seehuhn.de/go/pdfcore/function"
	"seehuhn.de/go/pdfcore/pdf"
)

// ExtractSpace reads a colour space.  The object is either a name or an
// array whose first element is the family name.
//
// The abbreviations used in inline images (/G, /RGB, /CMYK, /I) are
// accepted.  Names of colour space resources must be looked up by the
// caller.
func ExtractSpace(r pdf.Getter, obj pdf.Object) (Space, error) {
	return extractSpace(r, obj, 0)
}

// maxSpaceNesting bounds the depth of base and alternate spaces.
const maxSpaceNesting = 4

func extractSpace(r pdf.Getter, obj pdf.Object, depth int) (Space, error) {
	if depth > maxSpaceNesting {
		return nil, pdf.Errorf("colour spaces nested too deeply")
	}

	obj, err := pdf.Resolve(r, obj)
	if err != nil {
		return nil, err
	}

	var family pdf.Name
	var args pdf.Array
	switch x := obj.(type) {
	case pdf.Name:
		family = x
	case pdf.Array:
		if len(x) == 0 {
			return nil, pdf.Errorf("empty colour space array")
		}
		family, err = pdf.GetName(r, x[0])
		if err != nil {
			return nil, err
		}
		args = x[1:]
	default:
		return nil, &pdf.TypeError{
			Expected: []pdf.ObjectType{pdf.TypeName, pdf.TypeArray},
			Found:    pdf.TypeOf(obj),
		}
	}

	var res Space
	switch family {
	case FamilyDeviceGray, "G":
		res = DeviceGray
	case FamilyDeviceRGB, "RGB":
		res = DeviceRGB
	case FamilyDeviceCMYK, "CMYK":
		res = DeviceCMYK
	case FamilyCalGray:
		err = needArgs(args, 1)
		if err == nil {
			res, err = extractCalGray(r, args[0])
		}
	case FamilyCalRGB:
		err = needArgs(args, 1)
		if err == nil {
			res, err = extractCalRGB(r, args[0])
		}
	case FamilyLab:
		err = needArgs(args, 1)
		if err == nil {
			res, err = extractLab(r, args[0])
		}
	case FamilyICCBased:
		err = needArgs(args, 1)
		if err == nil {
			res, err = extractICCBased(r, args[0], depth)
		}
	case FamilyIndexed, "I":
		err = needArgs(args, 3)
		if err == nil {
			res, err = extractIndexed(r, args, depth)
		}
	case FamilyPattern:
		p := &Pattern{}
		if len(args) > 0 {
			p.Base, err = extractSpace(r, args[0], depth+1)
			if err == nil && p.Base.Family() == FamilyPattern {
				err = pdf.Errorf("pattern space used as base of pattern space")
			}
		}
		res = p
	case FamilySeparation:
		err = needArgs(args, 3)
		if err == nil {
			res, err = extractSeparation(r, args, depth)
		}
	case FamilyDeviceN:
		err = needArgs(args, 3)
		if err == nil {
			res, err = extractDeviceN(r, args, depth)
		}
	default:
		return nil, &pdf.UnknownVariantError{Found: string(family), Enum: "ColorSpace"}
	}
	if err != nil {
		return nil, pdf.Wrap(err, string(family)+" colour space")
	}
	return res, nil
}

func needArgs(args pdf.Array, n int) error {
	if len(args) < n {
		return &pdf.ArrayLengthError{Expected: n + 1, Found: len(args) + 1}
	}
	return nil
}

var asTriple = pdf.ArrayOfLen(pdf.AsNumber, 3)

// cieFields returns the schema fields for WhitePoint and BlackPoint.
func cieFields(white, black *[]float64) []pdf.Field {
	return []pdf.Field{
		pdf.Required("WhitePoint", white, asTriple),
		pdf.Default("BlackPoint", black, []float64{0, 0, 0}, asTriple),
	}
}

func checkWhitePoint(wp []float64) error {
	if wp[0] <= 0 || wp[1] != 1 || wp[2] <= 0 {
		return pdf.Errorf("invalid white point %v", wp)
	}
	return nil
}

func extractCalGray(r pdf.Getter, obj pdf.Object) (*CalGray, error) {
	s := &CalGray{}
	var white, black []float64
	schema := &pdf.Schema{Fields: append(cieFields(&white, &black),
		pdf.Default("Gamma", &s.Gamma, 1, pdf.AsNumber),
	)}
	if _, err := schema.Decode(r, obj); err != nil {
		return nil, err
	}
	if err := checkWhitePoint(white); err != nil {
		return nil, err
	}
	if s.Gamma <= 0 {
		return nil, pdf.Errorf("invalid gamma %g", s.Gamma)
	}
	copy(s.WhitePoint[:], white)
	copy(s.BlackPoint[:], black)
	return s, nil
}

func extractCalRGB(r pdf.Getter, obj pdf.Object) (*CalRGB, error) {
	s := &CalRGB{}
	var white, black, gamma, matrix []float64
	schema := &pdf.Schema{Fields: append(cieFields(&white, &black),
		pdf.Default("Gamma", &gamma, []float64{1, 1, 1}, asTriple),
		pdf.Default("Matrix", &matrix, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1},
			pdf.ArrayOfLen(pdf.AsNumber, 9)),
	)}
	if _, err := schema.Decode(r, obj); err != nil {
		return nil, err
	}
	if err := checkWhitePoint(white); err != nil {
		return nil, err
	}
	copy(s.WhitePoint[:], white)
	copy(s.BlackPoint[:], black)
	copy(s.Gamma[:], gamma)
	copy(s.Matrix[:], matrix)
	return s, nil
}

func extractLab(r pdf.Getter, obj pdf.Object) (*Lab, error) {
	s := &Lab{}
	var white, black, rng []float64
	schema := &pdf.Schema{Fields: append(cieFields(&white, &black),
		pdf.Default("Range", &rng, []float64{-100, 100, -100, 100},
			pdf.ArrayOfLen(pdf.AsNumber, 4)),
	)}
	if _, err := schema.Decode(r, obj); err != nil {
		return nil, err
	}
	if err := checkWhitePoint(white); err != nil {
		return nil, err
	}
	if rng[0] > rng[1] || rng[2] > rng[3] {
		return nil, pdf.Errorf("invalid range %v", rng)
	}
	copy(s.WhitePoint[:], white)
	copy(s.BlackPoint[:], black)
	copy(s.Range[:], rng)
	return s, nil
}

func extractICCBased(r pdf.Getter, obj pdf.Object, depth int) (*ICCBased, error) {
	stm, err := pdf.GetStream(r, obj)
	if err != nil {
		return nil, err
	}

	s := &ICCBased{}
	var alt pdf.Object
	var rng *[]float64
	schema := &pdf.Schema{Fields: []pdf.Field{
		pdf.Required("N", &s.N, pdf.AsInt),
		pdf.Raw("Alternate", &alt),
		pdf.Optional("Range", &rng, pdf.ArrayOf(pdf.AsNumber)),
	}}
	if _, err := schema.Decode(r, stm.Dict); err != nil {
		return nil, err
	}
	if s.N != 1 && s.N != 3 && s.N != 4 {
		return nil, pdf.Errorf("invalid number of components %d", s.N)
	}

	if rng != nil {
		if len(*rng) != 2*s.N {
			return nil, pdf.Wrap(&pdf.ArrayLengthError{Expected: 2 * s.N, Found: len(*rng)}, "/Range")
		}
		s.Range = *rng
	} else {
		s.Range = make([]float64, 2*s.N)
		for i := range s.N {
			s.Range[2*i+1] = 1
		}
	}

	if alt != nil {
		s.Alternate, err = extractSpace(r, alt, depth+1)
		if err != nil {
			return nil, pdf.Wrap(err, "/Alternate")
		}
		if s.Alternate.Channels() != s.N {
			return nil, pdf.Errorf("alternate space has %d components, expected %d",
				s.Alternate.Channels(), s.N)
		}
	} else {
		s.Alternate = [...]Space{1: DeviceGray, 3: DeviceRGB, 4: DeviceCMYK}[s.N]
	}

	s.Profile, err = filter.Default.DecodeBytes(r, stm)
	if err != nil {
		return nil, err
	}
	// icc.Decode clears the profile ID fields in place
	p, err := icc.Decode(slices.Clone(s.Profile))
	if err != nil {
		return nil, &pdf.MalformedFileError{Err: fmt.Errorf("invalid ICC profile: %w", err)}
	}
	if n := p.ColorSpace.NumComponents(); n != s.N {
		return nil, pdf.Errorf("ICC profile has %d components, /N is %d", n, s.N)
	}
	return s, nil
}

func extractIndexed(r pdf.Getter, args pdf.Array, depth int) (*Indexed, error) {
	base, err := extractSpace(r, args[0], depth+1)
	if err != nil {
		return nil, pdf.Wrap(err, "base")
	}
	if f := base.Family(); f == FamilyPattern || f == FamilyIndexed {
		return nil, pdf.Errorf("invalid base space %s", f)
	}
	hiVal, err := pdf.AsInt(r, args[1])
	if err != nil {
		return nil, pdf.Wrap(err, "hival")
	}
	if hiVal < 0 || hiVal > 255 {
		return nil, pdf.Errorf("invalid hival %d", hiVal)
	}

	lookupObj, err := pdf.Resolve(r, args[2])
	if err != nil {
		return nil, pdf.Wrap(err, "lookup")
	}
	var lookup []byte
	switch x := lookupObj.(type) {
	case pdf.String:
		lookup = slices.Clone(x)
	case *pdf.Stream:
		if x != nil {
			lookup, err = filter.Default.DecodeBytes(r, x)
			if err != nil {
				return nil, pdf.Wrap(err, "lookup")
			}
		}
	}
	if lookup == nil {
		return nil, pdf.Wrap(&pdf.TypeError{
			Expected: []pdf.ObjectType{pdf.TypeString, pdf.TypeStream},
			Found:    pdf.TypeOf(lookupObj),
		}, "lookup")
	}
	need := (hiVal + 1) * base.Channels()
	if len(lookup) < need {
		return nil, pdf.Errorf("lookup table too short (%d < %d bytes)", len(lookup), need)
	}

	return &Indexed{Base: base, HiVal: hiVal, Lookup: lookup[:need]}, nil
}

// extractTint reads the alternate space and tint transform shared by
// Separation and DeviceN spaces.
func extractTint(r pdf.Getter, altObj, fnObj pdf.Object, n, depth int) (Space, function.Function, error) {
	alt, err := extractSpace(r, altObj, depth+1)
	if err != nil {
		return nil, nil, pdf.Wrap(err, "alternate space")
	}
	switch alt.Family() {
	case FamilyPattern, FamilyIndexed, FamilySeparation, FamilyDeviceN:
		return nil, nil, pdf.Errorf("invalid alternate space %s", alt.Family())
	}

	fn, err := function.Extract(r, fnObj)
	if err != nil {
		return nil, nil, pdf.Wrap(err, "tint transform")
	}
	if m, k := fn.Shape(); m != n || k != alt.Channels() {
		return nil, nil, pdf.Errorf("tint transform has shape %d→%d, expected %d→%d",
			m, k, n, alt.Channels())
	}
	return alt, fn, nil
}

func extractSeparation(r pdf.Getter, args pdf.Array, depth int) (*Separation, error) {
	name, err := pdf.GetName(r, args[0])
	if err != nil {
		return nil, pdf.Wrap(err, "colorant")
	}
	alt, fn, err := extractTint(r, args[1], args[2], 1, depth)
	if err != nil {
		return nil, err
	}
	return &Separation{Colorant: name, Alternate: alt, TintTransform: fn}, nil
}

func extractDeviceN(r pdf.Getter, args pdf.Array, depth int) (*DeviceN, error) {
	names, err := pdf.ArrayOf(pdf.AsName)(r, args[0])
	if err != nil {
		return nil, pdf.Wrap(err, "colorants")
	}
	if len(names) == 0 {
		return nil, pdf.Errorf("no colorants")
	}
	alt, fn, err := extractTint(r, args[1], args[2], len(names), depth)
	if err != nil {
		return nil, err
	}
	res := &DeviceN{Colorants: names, Alternate: alt, TintTransform: fn}
	if len(args) > 3 {
		res.Attributes, err = pdf.GetDict(r, args[3])
		if err != nil {
			return nil, pdf.Wrap(err, "attributes")
		}
	}
	return res, nil
}
