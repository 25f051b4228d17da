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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/icc"

	"seehuhn.de/go/pdfcore/pdf"
)

func TestDeviceSpaces(t *testing.T) {
	r := pdf.NewMemStore()
	cases := []struct {
		obj  pdf.Object
		want Space
	}{
		{pdf.Name("DeviceGray"), DeviceGray},
		{pdf.Name("G"), DeviceGray},
		{pdf.Array{pdf.Name("DeviceRGB")}, DeviceRGB},
		{pdf.Name("CMYK"), DeviceCMYK},
	}
	for _, c := range cases {
		got, err := ExtractSpace(r, c.obj)
		if err != nil {
			t.Errorf("%s: %v", pdf.Format(c.obj), err)
			continue
		}
		if got != c.want {
			t.Errorf("%s: got %s, want %s", pdf.Format(c.obj), got.Family(), c.want.Family())
		}
	}

	if d := cmp.Diff([]float64{0, 0, 0, 1}, DeviceCMYK.Default().Values); d != "" {
		t.Errorf("CMYK default: %s", d)
	}
}

func TestCIESpaces(t *testing.T) {
	r := pdf.NewMemStore()
	white := pdf.Array{pdf.Real(0.9505), pdf.Integer(1), pdf.Real(1.089)}

	s, err := ExtractSpace(r, pdf.Array{pdf.Name("CalGray"), pdf.Dict{
		"WhitePoint": white,
		"Gamma":      pdf.Real(2.2),
	}})
	if err != nil {
		t.Fatal(err)
	}
	cg := s.(*CalGray)
	if cg.Gamma != 2.2 || cg.BlackPoint != [3]float64{} {
		t.Errorf("unexpected CalGray %+v", cg)
	}

	s, err = ExtractSpace(r, pdf.Array{pdf.Name("CalRGB"), pdf.Dict{"WhitePoint": white}})
	if err != nil {
		t.Fatal(err)
	}
	if m := s.(*CalRGB).Matrix; m != [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1} {
		t.Errorf("wrong default matrix %v", m)
	}

	s, err = ExtractSpace(r, pdf.Array{pdf.Name("Lab"), pdf.Dict{
		"WhitePoint": white,
		"Range":      pdf.Array{pdf.Integer(10), pdf.Integer(20), pdf.Integer(-5), pdf.Integer(5)},
	}})
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]float64{0, 10, 0}, s.Default().Values); d != "" {
		t.Errorf("Lab default: %s", d)
	}

	_, err = ExtractSpace(r, pdf.Array{pdf.Name("CalGray"), pdf.Dict{}})
	var missing *pdf.MissingKeyError
	if !errors.As(err, &missing) || missing.Key != "WhitePoint" {
		t.Errorf("expected missing /WhitePoint, got %v", err)
	}
}

// iccProfile returns a minimal display profile for the given colour space.
func iccProfile(cs icc.ColorSpace) []byte {
	p := &icc.Profile{
		Version:    icc.Version4_3_0,
		Class:      icc.DisplayDeviceProfile,
		ColorSpace: cs,
		PCS:        icc.CIEXYZSpace,
		TagData:    map[icc.TagType][]byte{},
	}
	return p.Encode()
}

func TestICCBased(t *testing.T) {
	r := pdf.NewMemStore()
	profile := iccProfile(icc.RGBSpace)
	ref := r.Add(&pdf.Stream{
		Dict: pdf.Dict{"N": pdf.Integer(3)},
		Data: profile,
	})
	s, err := ExtractSpace(r, pdf.Array{pdf.Name("ICCBased"), ref})
	if err != nil {
		t.Fatal(err)
	}
	ib := s.(*ICCBased)
	if ib.N != 3 || ib.Alternate != DeviceRGB {
		t.Errorf("unexpected space %+v", ib)
	}
	if d := cmp.Diff([]float64{0, 1, 0, 1, 0, 1}, ib.Range); d != "" {
		t.Error(d)
	}
	if d := cmp.Diff(iccProfile(icc.RGBSpace), ib.Profile); d != "" {
		t.Errorf("profile data modified: %s", d)
	}

	gray := r.Add(&pdf.Stream{
		Dict: pdf.Dict{"N": pdf.Integer(1)},
		Data: iccProfile(icc.GraySpace),
	})
	s, err = ExtractSpace(r, pdf.Array{pdf.Name("ICCBased"), gray})
	if err != nil {
		t.Fatal(err)
	}
	if s.(*ICCBased).Alternate != DeviceGray {
		t.Errorf("unexpected alternate %v", s.(*ICCBased).Alternate)
	}

	bad := r.Add(&pdf.Stream{
		Dict: pdf.Dict{"N": pdf.Integer(1)},
		Data: profile,
	})
	_, err = ExtractSpace(r, pdf.Array{pdf.Name("ICCBased"), bad})
	if !pdf.IsMalformed(err) {
		t.Errorf("mismatched /N accepted: %v", err)
	}

	junk := r.Add(&pdf.Stream{
		Dict: pdf.Dict{"N": pdf.Integer(3)},
		Data: []byte("not a profile"),
	})
	_, err = ExtractSpace(r, pdf.Array{pdf.Name("ICCBased"), junk})
	if !pdf.IsMalformed(err) {
		t.Errorf("invalid profile accepted: %v", err)
	}
}

func TestIndexed(t *testing.T) {
	r := pdf.NewMemStore()
	obj := pdf.Array{
		pdf.Name("Indexed"),
		pdf.Name("DeviceRGB"),
		pdf.Integer(1),
		pdf.String{255, 0, 0, 0, 0, 255},
	}
	s, err := ExtractSpace(r, obj)
	if err != nil {
		t.Fatal(err)
	}
	idx := s.(*Indexed)
	got := idx.BaseColor(1)
	if !got.Equal(RGB(0, 0, 1)) {
		t.Errorf("wrong colour %s", got)
	}
	if got := idx.BaseColor(7); !got.Equal(RGB(0, 0, 1)) {
		t.Errorf("index not clipped: %s", got)
	}

	obj[3] = pdf.String{1, 2, 3}
	_, err = ExtractSpace(r, obj)
	if !pdf.IsMalformed(err) {
		t.Errorf("short lookup table accepted: %v", err)
	}

	obj[1] = pdf.Name("Pattern")
	_, err = ExtractSpace(r, obj)
	if !pdf.IsMalformed(err) {
		t.Errorf("pattern base accepted: %v", err)
	}
}

func tintFunction(n, m int) pdf.Dict {
	c0 := make(pdf.Array, m)
	c1 := make(pdf.Array, m)
	for i := range m {
		c0[i] = pdf.Integer(0)
		c1[i] = pdf.Integer(1)
	}
	domain := pdf.Array{}
	for range n {
		domain = append(domain, pdf.Integer(0), pdf.Integer(1))
	}
	return pdf.Dict{
		"FunctionType": pdf.Integer(2),
		"Domain":       domain,
		"C0":           c0,
		"C1":           c1,
		"N":            pdf.Integer(1),
	}
}

func TestSeparation(t *testing.T) {
	r := pdf.NewMemStore()
	fn := tintFunction(1, 4)
	s, err := ExtractSpace(r, pdf.Array{
		pdf.Name("Separation"), pdf.Name("Spot"), pdf.Name("DeviceCMYK"), fn,
	})
	if err != nil {
		t.Fatal(err)
	}
	sep := s.(*Separation)
	if sep.Colorant != "Spot" || sep.Alternate != DeviceCMYK {
		t.Errorf("unexpected space %+v", sep)
	}
	if d := cmp.Diff([]float64{1}, sep.Default().Values); d != "" {
		t.Error(d)
	}
	if d := cmp.Diff([]float64{0.5, 0.5, 0.5, 0.5}, sep.TintTransform.Apply(0.5)); d != "" {
		t.Error(d)
	}

	// wrong number of outputs
	_, err = ExtractSpace(r, pdf.Array{
		pdf.Name("Separation"), pdf.Name("Spot"), pdf.Name("DeviceRGB"), fn,
	})
	if !pdf.IsMalformed(err) {
		t.Errorf("mismatched tint transform accepted: %v", err)
	}
}

func TestDeviceN(t *testing.T) {
	r := pdf.NewMemStore()
	prog := &pdf.Stream{
		Dict: pdf.Dict{
			"FunctionType": pdf.Integer(4),
			"Domain":       pdf.Array{pdf.Integer(0), pdf.Integer(1), pdf.Integer(0), pdf.Integer(1)},
			"Range":        pdf.Array{pdf.Integer(0), pdf.Integer(1)},
		},
		Data: []byte("{ add 2 div }"),
	}
	s, err := ExtractSpace(r, pdf.Array{
		pdf.Name("DeviceN"),
		pdf.Array{pdf.Name("Orange"), pdf.Name("Green")},
		pdf.Name("DeviceGray"),
		prog,
	})
	if err != nil {
		t.Fatal(err)
	}
	dn := s.(*DeviceN)
	if dn.Channels() != 2 {
		t.Errorf("wrong number of channels %d", dn.Channels())
	}
	if d := cmp.Diff([]float64{1, 1}, dn.Default().Values); d != "" {
		t.Error(d)
	}
}

func TestPattern(t *testing.T) {
	r := pdf.NewMemStore()
	s, err := ExtractSpace(r, pdf.Name("Pattern"))
	if err != nil {
		t.Fatal(err)
	}
	if s.Channels() != 0 {
		t.Errorf("coloured pattern space has %d channels", s.Channels())
	}

	s, err = ExtractSpace(r, pdf.Array{pdf.Name("Pattern"), pdf.Name("DeviceRGB")})
	if err != nil {
		t.Fatal(err)
	}
	c, err := NewPattern(s.(*Pattern), "P1", 1, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if c.String() != "Pattern(1 0 0 /P1)" {
		t.Errorf("wrong string %q", c.String())
	}
}

func TestExtractErrors(t *testing.T) {
	r := pdf.NewMemStore()

	_, err := ExtractSpace(r, pdf.Name("DeviceXYZ"))
	var unknown *pdf.UnknownVariantError
	if !errors.As(err, &unknown) || unknown.Enum != "ColorSpace" {
		t.Errorf("expected UnknownVariantError, got %v", err)
	}

	_, err = ExtractSpace(r, pdf.Array{pdf.Name("Lab")})
	var length *pdf.ArrayLengthError
	if !errors.As(err, &length) {
		t.Errorf("expected ArrayLengthError, got %v", err)
	}

	_, err = ExtractSpace(r, pdf.Integer(3))
	var typeErr *pdf.TypeError
	if !errors.As(err, &typeErr) {
		t.Errorf("expected TypeError, got %v", err)
	}
}

func TestNewColor(t *testing.T) {
	c, err := New(DeviceRGB, 1, 0.5, 0)
	if err != nil {
		t.Fatal(err)
	}
	if c.String() != "DeviceRGB(1 0.5 0)" {
		t.Errorf("wrong string %q", c.String())
	}

	if _, err := New(DeviceRGB, 1); err == nil {
		t.Error("wrong number of values accepted")
	}

	c2 := c.Clone()
	c2.Values[0] = 0
	if c.Values[0] != 1 {
		t.Error("Clone shares memory")
	}
}
