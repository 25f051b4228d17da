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

package graphics

import (
	"seehuhn.de/go/pdfcore/function"
	"seehuhn.de/go/pdfcore/graphics/blend"
	"seehuhn.de/go/pdfcore/graphics/halftone"
	"seehuhn.de/go/pdfcore/graphics/transfer"
	"seehuhn.de/go/pdfcore/pdf"
)

// ExtGState is a graphics state parameter dictionary.  Only the fields
// indicated by Set are present in the dictionary.
//
// The text state entries /Font and /TK are not represented.
//
// See section 8.4.5 of ISO 32000-2:2020.
type ExtGState struct {
	Set Bits

	LineWidth        float64
	LineCap          LineCapStyle
	LineJoin         LineJoinStyle
	MiterLimit       float64
	DashPattern      DashPattern
	RenderingIntent  RenderingIntent
	StrokeAdjustment bool
	BlendMode        blend.Mode
	SoftMask         *SoftMask
	StrokeAlpha      float64
	FillAlpha        float64
	AlphaIsShape     bool

	OverprintStroke bool
	OverprintFill   bool
	OverprintMode   int

	// BlackGeneration and UndercolorRemoval are nil if the dictionary
	// selects the device default, using the name /Default.
	BlackGeneration   function.Function
	UndercolorRemoval function.Function

	Transfer transfer.Transfer
	Halftone halftone.Halftone

	Flatness   float64
	Smoothness float64
}

// ExtractExtGState reads a graphics state parameter dictionary.
func ExtractExtGState(r pdf.Getter, obj pdf.Object) (*ExtGState, error) {
	e := &ExtGState{}

	var bg, bg2, ucr, ucr2, tr, tr2 pdf.Object
	var opFill *bool
	s := &pdf.Schema{
		Type: "ExtGState",
		Fields: []pdf.Field{
			entry(e, "LW", StateLineWidth, &e.LineWidth, nonNegative),
			entry(e, "LC", StateLineCap, &e.LineCap, LineCapEnum.Convert),
			entry(e, "LJ", StateLineJoin, &e.LineJoin, LineJoinEnum.Convert),
			entry(e, "ML", StateMiterLimit, &e.MiterLimit, positive),
			entry(e, "D", StateLineDash, &e.DashPattern, AsDashPattern),
			entry(e, "RI", StateRenderingIntent, &e.RenderingIntent, RenderingIntentEnum.Convert),
			entry(e, "OP", StateOverprint, &e.OverprintStroke, pdf.AsBool),
			pdf.Optional("op", &opFill, pdf.AsBool),
			entry(e, "OPM", StateOverprintMode, &e.OverprintMode, overprintMode),
			pdf.Raw("BG", &bg),
			pdf.Raw("BG2", &bg2),
			pdf.Raw("UCR", &ucr),
			pdf.Raw("UCR2", &ucr2),
			pdf.Raw("TR", &tr),
			pdf.Raw("TR2", &tr2),
			entry(e, "HT", StateHalftone, &e.Halftone, halftone.Extract),
			entry(e, "FL", StateFlatness, &e.Flatness, nonNegative),
			entry(e, "SM", StateSmoothness, &e.Smoothness, unitInterval),
			entry(e, "SA", StateStrokeAdjustment, &e.StrokeAdjustment, pdf.AsBool),
			entry(e, "BM", StateBlendMode, &e.BlendMode, blend.Extract),
			entry(e, "SMask", StateSoftMask, &e.SoftMask, ExtractSoftMask),
			entry(e, "CA", StateStrokeAlpha, &e.StrokeAlpha, unitInterval),
			entry(e, "ca", StateFillAlpha, &e.FillAlpha, unitInterval),
			entry(e, "AIS", StateAlphaIsShape, &e.AlphaIsShape, pdf.AsBool),
		},
	}
	if _, err := s.Decode(r, obj); err != nil {
		return nil, err
	}

	// If /op is absent, /OP applies to both stroking and filling.
	switch {
	case opFill != nil:
		e.OverprintFill = *opFill
		e.Set |= StateOverprintFill
	case e.Set&StateOverprint != 0:
		e.OverprintFill = e.OverprintStroke
		e.Set |= StateOverprintFill
	}

	var err error
	if bg2 != nil || bg != nil {
		e.BlackGeneration, err = colorFunction(r, bg, bg2)
		if err != nil {
			return nil, pdf.Wrap(err, "black generation")
		}
		e.Set |= StateBlackGeneration
	}
	if ucr2 != nil || ucr != nil {
		e.UndercolorRemoval, err = colorFunction(r, ucr, ucr2)
		if err != nil {
			return nil, pdf.Wrap(err, "undercolor removal")
		}
		e.Set |= StateUndercolorRemoval
	}

	switch {
	case tr2 != nil:
		e.Transfer, err = transfer.Extract(r, tr2, true)
		if err != nil {
			return nil, pdf.Wrap(err, "/TR2")
		}
		e.Set |= StateTransfer
	case tr != nil:
		e.Transfer, err = transfer.Extract(r, tr, false)
		if err != nil {
			return nil, pdf.Wrap(err, "/TR")
		}
		e.Set |= StateTransfer
	}

	return e, nil
}

// entry returns a schema field which stores the value in *dst and records
// the presence of the key in e.Set.
func entry[T any](e *ExtGState, key pdf.Name, bit Bits, dst *T, conv pdf.Converter[T]) pdf.Field {
	var zero T
	return pdf.Default(key, dst, zero, func(r pdf.Getter, obj pdf.Object) (T, error) {
		v, err := conv(r, obj)
		if err == nil {
			e.Set |= bit
		}
		return v, err
	})
}

// colorFunction reads a black generation or undercolor removal function.
// The second form (BG2, UCR2) takes precedence and may be /Default.
func colorFunction(r pdf.Getter, obj, obj2 pdf.Object) (function.Function, error) {
	if obj2 != nil {
		obj2, err := pdf.Resolve(r, obj2)
		if err != nil {
			return nil, err
		}
		if name, ok := obj2.(pdf.Name); ok {
			if name == "Default" {
				return nil, nil
			}
			return nil, &pdf.UnknownVariantError{Found: string(name), Enum: "Function"}
		}
		obj = obj2
	}
	f, err := function.Extract(r, obj)
	if err != nil {
		return nil, err
	}
	if m, n := f.Shape(); m != 1 || n != 1 {
		return nil, pdf.Errorf("function has shape %d→%d, expected 1→1", m, n)
	}
	return f, nil
}

func nonNegative(r pdf.Getter, obj pdf.Object) (float64, error) {
	x, err := pdf.AsNumber(r, obj)
	if err == nil && x < 0 {
		err = pdf.Errorf("unexpected negative value %g", x)
	}
	return x, err
}

func positive(r pdf.Getter, obj pdf.Object) (float64, error) {
	x, err := pdf.AsNumber(r, obj)
	if err == nil && x <= 0 {
		err = pdf.Errorf("expected positive value, got %g", x)
	}
	return x, err
}

func unitInterval(r pdf.Getter, obj pdf.Object) (float64, error) {
	x, err := pdf.AsNumber(r, obj)
	if err == nil && (x < 0 || x > 1) {
		err = pdf.Errorf("value %g outside [0, 1]", x)
	}
	return x, err
}

func overprintMode(r pdf.Getter, obj pdf.Object) (int, error) {
	x, err := pdf.AsInt(r, obj)
	if err == nil && x != 0 && x != 1 {
		err = &pdf.UnknownVariantError{Found: pdf.Format(pdf.Integer(x)), Enum: "OverprintMode"}
	}
	return x, err
}
