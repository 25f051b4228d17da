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

package halftone

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/pdfcore/graphics/transfer"
	"seehuhn.de/go/pdfcore/pdf"
)

func type1Dict(spot pdf.Object) pdf.Dict {
	return pdf.Dict{
		"Type":         pdf.Name("Halftone"),
		"HalftoneType": pdf.Integer(1),
		"Frequency":    pdf.Integer(60),
		"Angle":        pdf.Integer(45),
		"SpotFunction": spot,
	}
}

func TestExtractDefault(t *testing.T) {
	r := pdf.NewMemStore()
	h, err := Extract(r, pdf.Name("Default"))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := h.(Default); !ok || h.HalftoneType() != 0 {
		t.Errorf("got %#v", h)
	}

	_, err = Extract(r, pdf.Name("Other"))
	var unknown *pdf.UnknownVariantError
	if !errors.As(err, &unknown) {
		t.Errorf("expected UnknownVariantError, got %v", err)
	}
}

func TestType1(t *testing.T) {
	r := pdf.NewMemStore()
	h, err := Extract(r, type1Dict(pdf.Name("SimpleDot")))
	if err != nil {
		t.Fatal(err)
	}
	h1, ok := h.(*Type1)
	if !ok {
		t.Fatalf("wrong halftone type %T", h)
	}
	if h1.Frequency != 60 || h1.Angle != 45 || h1.SpotName != "SimpleDot" {
		t.Errorf("unexpected halftone %+v", h1)
	}
	if got := h1.SpotFunction.Apply(0, 0); got[0] != 1 {
		t.Errorf("SimpleDot(0, 0) = %g", got[0])
	}
	if got := h1.SpotFunction.Apply(1, 0); got[0] != 0 {
		t.Errorf("SimpleDot(1, 0) = %g", got[0])
	}
	if h1.Transfer != nil {
		t.Error("unexpected transfer function")
	}
}

func TestType1SpotArray(t *testing.T) {
	r := pdf.NewMemStore()
	spot := pdf.Array{pdf.Name("Unknown"), pdf.Name("Round"), pdf.Name("Line")}
	h, err := Extract(r, type1Dict(spot))
	if err != nil {
		t.Fatal(err)
	}
	if name := h.(*Type1).SpotName; name != "Round" {
		t.Errorf("wrong spot function %q", name)
	}

	_, err = Extract(r, type1Dict(pdf.Array{pdf.Name("Unknown")}))
	if !pdf.IsMalformed(err) {
		t.Errorf("expected malformed file error, got %v", err)
	}
}

func TestType1Transfer(t *testing.T) {
	r := pdf.NewMemStore()
	dict := type1Dict(pdf.Name("Line"))
	dict["TransferFunction"] = pdf.Name("Identity")
	h, err := Extract(r, dict)
	if err != nil {
		t.Fatal(err)
	}
	tf := h.(*Type1).Transfer
	if tf == nil || tf.Kind != transfer.KindIdentity {
		t.Errorf("wrong transfer function %v", tf)
	}

	dict["TransferFunction"] = pdf.Name("Default")
	_, err = Extract(r, dict)
	if err == nil {
		t.Error("/Default transfer function accepted in halftone")
	}
}

func TestType5(t *testing.T) {
	r := pdf.NewMemStore()
	cyan := r.Add(&pdf.Stream{
		Dict: pdf.Dict{
			"HalftoneType": pdf.Integer(6),
			"Width":        pdf.Integer(2),
			"Height":       pdf.Integer(2),
		},
		Data: []byte{1, 2, 3, 4, 5},
	})
	dict := pdf.Dict{
		"HalftoneType": pdf.Integer(5),
		"HalftoneName": pdf.String("test"),
		"Default":      type1Dict(pdf.Name("SimpleDot")),
		"Cyan":         cyan,
	}
	h, err := Extract(r, dict)
	if err != nil {
		t.Fatal(err)
	}
	h5 := h.(*Type5)
	if h5.Name != "test" {
		t.Errorf("wrong name %q", h5.Name)
	}
	if h5.Lookup("Magenta").HalftoneType() != 1 {
		t.Error("wrong default halftone")
	}
	h6, ok := h5.Lookup("Cyan").(*Type6)
	if !ok {
		t.Fatalf("wrong halftone for Cyan: %T", h5.Lookup("Cyan"))
	}
	if d := cmp.Diff([]byte{1, 2, 3, 4}, h6.Thresholds); d != "" {
		t.Error(d)
	}

	dict["Cyan"] = pdf.Dict{
		"HalftoneType": pdf.Integer(5),
		"Default":      type1Dict(pdf.Name("SimpleDot")),
	}
	_, err = Extract(r, dict)
	if !pdf.IsMalformed(err) {
		t.Errorf("nested type 5 halftone accepted: %v", err)
	}
}

func TestType10(t *testing.T) {
	r := pdf.NewMemStore()
	stm := &pdf.Stream{
		Dict: pdf.Dict{
			"HalftoneType": pdf.Integer(10),
			"Xsquare":      pdf.Integer(2),
			"Ysquare":      pdf.Integer(1),
		},
		Data: []byte{10, 20, 30, 40, 50},
	}
	h, err := Extract(r, stm)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]byte{10, 20, 30, 40, 50}, h.(*Type10).Thresholds); d != "" {
		t.Error(d)
	}

	stm.Data = stm.Data[:4]
	_, err = Extract(r, stm)
	if !pdf.IsMalformed(err) {
		t.Errorf("short threshold array accepted: %v", err)
	}
}

func TestType16(t *testing.T) {
	r := pdf.NewMemStore()
	stm := &pdf.Stream{
		Dict: pdf.Dict{
			"HalftoneType": pdf.Integer(16),
			"Width":        pdf.Integer(1),
			"Height":       pdf.Integer(1),
			"Width2":       pdf.Integer(1),
			"Height2":      pdf.Integer(1),
		},
		Data: []byte{0x01, 0x02, 0xFF, 0xFE},
	}
	h, err := Extract(r, stm)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]uint16{0x0102, 0xFFFE}, h.(*Type16).Thresholds); d != "" {
		t.Error(d)
	}
}

func TestExtractErrors(t *testing.T) {
	r := pdf.NewMemStore()

	// type 6 halftones must be streams
	_, err := Extract(r, pdf.Dict{
		"HalftoneType": pdf.Integer(6),
		"Width":        pdf.Integer(1),
		"Height":       pdf.Integer(1),
	})
	if !pdf.IsMalformed(err) {
		t.Errorf("type 6 dictionary accepted: %v", err)
	}

	_, err = Extract(r, pdf.Dict{"HalftoneType": pdf.Integer(3)})
	var unknown *pdf.UnknownVariantError
	if !errors.As(err, &unknown) {
		t.Errorf("expected UnknownVariantError, got %v", err)
	}

	_, err = Extract(r, pdf.Dict{
		"Type":         pdf.Name("XObject"),
		"HalftoneType": pdf.Integer(1),
	})
	var tagErr *pdf.TypeTagError
	if !errors.As(err, &tagErr) {
		t.Errorf("expected TypeTagError, got %v", err)
	}

	_, err = Extract(r, pdf.Integer(1))
	var typeErr *pdf.TypeError
	if !errors.As(err, &typeErr) {
		t.Errorf("expected TypeError, got %v", err)
	}
}

func TestThresholdArrayTooLarge(t *testing.T) {
	r := pdf.NewMemStore()
	cases := []pdf.Dict{
		{
			"HalftoneType": pdf.Integer(6),
			"Width":        pdf.Integer(1 << 32),
			"Height":       pdf.Integer(1 << 31),
		},
		{
			"HalftoneType": pdf.Integer(10),
			"Xsquare":      pdf.Integer(1 << 32),
			"Ysquare":      pdf.Integer(1),
		},
		{
			"HalftoneType": pdf.Integer(16),
			"Width":        pdf.Integer(1 << 32),
			"Height":       pdf.Integer(1 << 31),
		},
		{
			"HalftoneType": pdf.Integer(16),
			"Width":        pdf.Integer(1),
			"Height":       pdf.Integer(1),
			"Width2":       pdf.Integer(1 << 62),
			"Height2":      pdf.Integer(4),
		},
	}
	for _, dict := range cases {
		stm := &pdf.Stream{Dict: dict, Data: make([]byte, 16)}
		_, err := Extract(r, stm)
		if !pdf.IsMalformed(err) {
			t.Errorf("%v: expected malformed file error, got %v", dict, err)
		}
	}
}
