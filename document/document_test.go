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
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"
	"seehuhn.de/go/xmp"

	"seehuhn.de/go/pdfcore/graphics/color"
	"seehuhn.de/go/pdfcore/pdf"
)

func TestCatalog(t *testing.T) {
	r := pdf.NewMemStore()
	pages := r.Add(pdf.Dict{"Type": pdf.Name("Pages"), "Kids": pdf.Array{}, "Count": pdf.Integer(0)})
	field := r.Add(pdf.Dict{"FT": pdf.Name("Tx"), "T": pdf.String("name")})
	form := r.Add(pdf.Dict{
		"Fields":   pdf.Array{field},
		"SigFlags": pdf.Integer(3),
	})
	outlines := r.Add(pdf.Dict{"Type": pdf.Name("Outlines")})
	catRef := r.Add(pdf.Dict{
		"Type":       pdf.Name("Catalog"),
		"Pages":      pages,
		"PageLayout": pdf.Name("TwoColumnLeft"),
		"PageMode":   pdf.Name("UseOutlines"),
		"Outlines":   outlines,
		"OpenAction": pdf.Array{pages, pdf.Name("Fit")},
		"AcroForm":   form,
		"Lang":       pdf.String("de-DE"),
		"MarkInfo":   pdf.Dict{"Marked": pdf.Bool(true)},
		"OutputIntents": pdf.Array{
			pdf.Dict{
				"Type":                      pdf.Name("OutputIntent"),
				"S":                         pdf.Name("GTS_PDFA1"),
				"OutputConditionIdentifier": pdf.String("sRGB"),
			},
		},
	})

	c, err := ExtractCatalog(r, catRef)
	if err != nil {
		t.Fatal(err)
	}
	if c.Pages != pages {
		t.Errorf("Pages = %s", c.Pages)
	}
	if c.PageLayout != TwoColumnLeft || c.PageMode != UseOutlines {
		t.Errorf("wrong layout/mode %d/%d", c.PageLayout, c.PageMode)
	}
	if c.Outlines == nil || c.Outlines.Ref != outlines {
		t.Errorf("Outlines = %v", c.Outlines)
	}
	if c.OpenAction == nil || c.OpenAction.Action != nil {
		t.Fatalf("OpenAction = %v", c.OpenAction)
	}
	if d := cmp.Diff(pdf.Object(pdf.Array{pages, pdf.Name("Fit")}), c.OpenAction.Destination); d != "" {
		t.Error(d)
	}
	if c.Lang.String() != language.MustParse("de-DE").String() {
		t.Errorf("Lang = %s", c.Lang)
	}
	if c.MarkInfo == nil || !c.MarkInfo.Marked || c.MarkInfo.Suspects {
		t.Errorf("MarkInfo = %v", c.MarkInfo)
	}
	if len(c.OutputIntents) != 1 || c.OutputIntents[0].OutputConditionIdentifier != "sRGB" {
		t.Errorf("OutputIntents = %v", c.OutputIntents)
	}
	if c.NeedsRendering || c.Metadata != nil || c.Names != nil {
		t.Error("wrong defaults")
	}

	if c.AcroForm == nil {
		t.Fatal("missing AcroForm")
	}
	f, err := c.AcroForm.Get(r, ExtractAcroForm)
	if err != nil {
		t.Fatal(err)
	}
	want := &AcroForm{
		Fields:   []pdf.Reference{field},
		SigFlags: SignaturesExist | AppendOnly,
	}
	if d := cmp.Diff(want, f); d != "" {
		t.Error(d)
	}
}

func TestCatalogDefaults(t *testing.T) {
	r := pdf.NewMemStore()
	pages := r.Alloc()
	c, err := ExtractCatalog(r, pdf.Dict{
		"Type":  pdf.Name("Catalog"),
		"Pages": pages,
	})
	if err != nil {
		t.Fatal(err)
	}
	if c.PageLayout != SinglePage || c.PageMode != UseNone {
		t.Error("wrong default layout or mode")
	}
	if c.Lang != language.Und {
		t.Errorf("Lang = %s", c.Lang)
	}
	if c.OpenAction != nil || c.MarkInfo != nil || c.OutputIntents != nil {
		t.Error("unexpected optional values")
	}
}

func TestCatalogErrors(t *testing.T) {
	r := pdf.NewMemStore()
	pages := r.Alloc()

	_, err := ExtractCatalog(r, pdf.Dict{"Type": pdf.Name("Catalog")})
	var missing *pdf.MissingKeyError
	if !errors.As(err, &missing) || missing.Key != "Pages" {
		t.Errorf("expected MissingKeyError, got %v", err)
	}

	_, err = ExtractCatalog(r, pdf.Dict{"Pages": pages})
	if !errors.As(err, &missing) || missing.Key != "Type" {
		t.Errorf("expected missing /Type, got %v", err)
	}

	_, err = ExtractCatalog(r, pdf.Dict{"Type": pdf.Name("Pages"), "Pages": pages})
	var tagErr *pdf.TypeTagError
	if !errors.As(err, &tagErr) || tagErr.Found != "Pages" {
		t.Errorf("expected TypeTagError, got %v", err)
	}

	_, err = ExtractCatalog(r, pdf.Dict{
		"Type":       pdf.Name("Catalog"),
		"Pages":      pages,
		"PageLayout": pdf.Name("Bogus"),
	})
	var variant *pdf.UnknownVariantError
	if !errors.As(err, &variant) || variant.Enum != "PageLayout" || variant.Found != "Bogus" {
		t.Errorf("expected UnknownVariantError, got %v", err)
	}

	_, err = ExtractCatalog(r, pdf.Dict{
		"Type":       pdf.Name("Catalog"),
		"Pages":      pages,
		"OpenAction": pdf.Integer(1),
	})
	var typeErr *pdf.TypeError
	if !errors.As(err, &typeErr) {
		t.Errorf("expected TypeError, got %v", err)
	}
}

func TestOpenActionDict(t *testing.T) {
	r := pdf.NewMemStore()
	action := r.Add(pdf.Dict{
		"S":  pdf.Name("JavaScript"),
		"JS": pdf.String("app.alert('hello');"),
	})
	c, err := ExtractCatalog(r, pdf.Dict{
		"Type":       pdf.Name("Catalog"),
		"Pages":      r.Alloc(),
		"OpenAction": action,
	})
	if err != nil {
		t.Fatal(err)
	}
	a := c.OpenAction.Action
	if a == nil || a.S != "JavaScript" || c.OpenAction.Destination != nil {
		t.Fatalf("OpenAction = %v", c.OpenAction)
	}
	if _, ok := a.Dict["JS"]; !ok {
		t.Error("action dictionary entries missing")
	}

	_, err = ExtractAction(r, pdf.Dict{"JS": pdf.String("")})
	if !pdf.IsMalformed(err) {
		t.Errorf("action without /S accepted: %v", err)
	}
}

func TestEncryption(t *testing.T) {
	r := pdf.NewMemStore()
	e, err := ExtractEncryption(r, pdf.Dict{
		"Filter": pdf.Name("Standard"),
		"V":      pdf.Integer(4),
		"CF":     pdf.Dict{"StdCF": pdf.Dict{"CFM": pdf.Name("AESV2")}},
		"StmF":   pdf.Name("StdCF"),
		"R":      pdf.Integer(4),
	})
	if err != nil {
		t.Fatal(err)
	}
	if e.Filter != "Standard" || e.V == nil || *e.V != AlgCryptFilters {
		t.Errorf("wrong filter or algorithm: %v", e)
	}
	if e.Length != 40 {
		t.Errorf("Length = %d", e.Length)
	}
	if e.StmF != "StdCF" || e.StrF != "Identity" || e.EFF != "Identity" {
		t.Errorf("crypt filters %s %s %s", e.StmF, e.StrF, e.EFF)
	}
	if e.Dict["R"] != pdf.Integer(4) {
		t.Error("handler specific entries missing")
	}

	e, err = ExtractEncryption(r, pdf.Dict{
		"Filter": pdf.Name("Standard"),
		"Length": pdf.Integer(128),
	})
	if err != nil {
		t.Fatal(err)
	}
	if e.Length != 128 || e.V != nil {
		t.Errorf("Length = %d, V = %v", e.Length, e.V)
	}

	bad := []pdf.Dict{
		{"V": pdf.Integer(1)},
		{"Filter": pdf.Name("Standard"), "V": pdf.Integer(9)},
		{"Filter": pdf.Name("Standard"), "Length": pdf.Integer(41)},
	}
	for i, dict := range bad {
		_, err := ExtractEncryption(r, dict)
		if !pdf.IsMalformed(err) {
			t.Errorf("%d: expected malformed file error, got %v", i, err)
		}
	}
}

func TestInfo(t *testing.T) {
	r := pdf.NewMemStore()
	info, err := ExtractInfo(r, pdf.Dict{
		"Title":        pdf.String("A Title"),
		"Author":       pdf.String("\xfe\xff\x00J\x00\xf6"),
		"Subject":      pdf.String("Caf\xe9 cr\xe8me"),
		"CreationDate": pdf.String("D:20250102150405+01'00'"),
		"Trapped":      pdf.Name("True"),
		"Department":   pdf.String("Physics"),
		"Ignored":      pdf.Integer(7),
	})
	if err != nil {
		t.Fatal(err)
	}
	if info.Title == nil || *info.Title != "A Title" {
		t.Errorf("Title = %v", info.Title)
	}
	if info.Author == nil || *info.Author != "Jö" {
		t.Errorf("Author = %v", info.Author)
	}
	if info.Subject == nil || *info.Subject != "Café crème" {
		t.Errorf("Subject = %v", info.Subject)
	}
	want := time.Date(2025, 1, 2, 15, 4, 5, 0, time.FixedZone("", 3600))
	if info.CreationDate == nil || !info.CreationDate.Equal(want) {
		t.Errorf("CreationDate = %v", info.CreationDate)
	}
	if info.ModDate != nil {
		t.Error("unexpected ModDate")
	}
	if info.Trapped != TrappedTrue {
		t.Errorf("Trapped = %s", info.Trapped)
	}
	if d := cmp.Diff(map[string]string{"Department": "Physics"}, info.Custom); d != "" {
		t.Error(d)
	}

	info, err = ExtractInfo(r, pdf.Dict{})
	if err != nil {
		t.Fatal(err)
	}
	if info.Trapped != TrappedUnknown {
		t.Errorf("default Trapped = %s", info.Trapped)
	}
}

func TestAsDate(t *testing.T) {
	utc := time.UTC
	cases := []struct {
		in   string
		want time.Time
	}{
		{"D:2025", time.Date(2025, 1, 1, 0, 0, 0, 0, utc)},
		{"D:202503", time.Date(2025, 3, 1, 0, 0, 0, 0, utc)},
		{"D:20250317", time.Date(2025, 3, 17, 0, 0, 0, 0, utc)},
		{"D:20250317123456Z", time.Date(2025, 3, 17, 12, 34, 56, 0, utc)},
		{"20250317123456Z00'00'", time.Date(2025, 3, 17, 12, 34, 56, 0, utc)},
		{"D:20250317123456-05'00'", time.Date(2025, 3, 17, 17, 34, 56, 0, utc)},
	}
	r := pdf.NewMemStore()
	for _, c := range cases {
		got, err := AsDate(r, pdf.String(c.in))
		if err != nil {
			t.Errorf("%q: %v", c.in, err)
			continue
		}
		if !got.Equal(c.want) {
			t.Errorf("%q: got %v, want %v", c.in, got, c.want)
		}
	}

	_, err := AsDate(r, pdf.String("yesterday"))
	if !pdf.IsMalformed(err) {
		t.Errorf("invalid date accepted: %v", err)
	}
}

func TestGroup(t *testing.T) {
	r := pdf.NewMemStore()
	g, err := ExtractGroup(r, pdf.Dict{
		"Type": pdf.Name("Group"),
		"S":    pdf.Name("Transparency"),
		"CS":   pdf.Name("DeviceRGB"),
		"I":    pdf.Bool(true),
	})
	if err != nil {
		t.Fatal(err)
	}
	if g.CS != color.DeviceRGB || !g.Isolated || g.Knockout {
		t.Errorf("wrong group %+v", g)
	}

	_, err = ExtractGroup(r, pdf.Dict{"S": pdf.Name("Other")})
	var variant *pdf.UnknownVariantError
	if !errors.As(err, &variant) {
		t.Errorf("expected UnknownVariantError, got %v", err)
	}

	_, err = ExtractGroup(r, pdf.Dict{
		"S":  pdf.Name("Transparency"),
		"CS": pdf.Name("Pattern"),
	})
	if !pdf.IsMalformed(err) {
		t.Errorf("pattern colour space accepted: %v", err)
	}
}

func TestMetadata(t *testing.T) {
	packet := xmp.NewPacket()
	dc := &xmp.DublinCore{}
	dc.Title.Set(language.Und, "Test Document")
	dc.Creator.Append(xmp.NewProperName("Test Author"))
	err := packet.Set(dc)
	if err != nil {
		t.Fatal(err)
	}
	buf := &bytes.Buffer{}
	err = packet.Write(buf, nil)
	if err != nil {
		t.Fatal(err)
	}

	r := pdf.NewMemStore()
	ref := r.Add(&pdf.Stream{
		Dict: pdf.Dict{
			"Type":    pdf.Name("Metadata"),
			"Subtype": pdf.Name("XML"),
		},
		Data: buf.Bytes(),
	})

	m, err := ExtractMetadata(r, ref)
	if err != nil {
		t.Fatal(err)
	}
	var want, got xmp.DublinCore
	packet.Get(&want)
	m.Packet.Get(&got)
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("metadata changed (-want +got):\n%s", d)
	}

	wrongType := r.Add(&pdf.Stream{
		Dict: pdf.Dict{"Type": pdf.Name("Metadata"), "Subtype": pdf.Name("JSON")},
	})
	_, err = ExtractMetadata(r, wrongType)
	var variant *pdf.UnknownVariantError
	if !errors.As(err, &variant) {
		t.Errorf("expected UnknownVariantError, got %v", err)
	}
}
