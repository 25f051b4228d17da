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

// Package document implements the dictionaries found at the top level of a
// PDF document: the document catalog, the information dictionary, the
// encryption dictionary and a few dictionaries referenced from these.
//
// Each type is read using a declarative [pdf.Schema].  Entries which this
// package does not interpret are kept as raw PDF objects.
package document

import (
	"golang.org/x/text/language"

	"seehuhn.de/go/pdfcore/pdf"
)

// PDF 2.0 sections: 7.7.2

// PageLayout specifies the page layout used when the document is opened.
type PageLayout int

// These are the valid page layouts.
const (
	SinglePage PageLayout = iota
	OneColumn
	TwoColumnLeft
	TwoColumnRight
	TwoPageLeft
	TwoPageRight
)

// PageLayoutEnum maps the names used in the /PageLayout entry to
// [PageLayout] values.
var PageLayoutEnum = &pdf.Enum[PageLayout]{
	Name: "PageLayout",
	Values: map[pdf.Name]PageLayout{
		"SinglePage":     SinglePage,
		"OneColumn":      OneColumn,
		"TwoColumnLeft":  TwoColumnLeft,
		"TwoColumnRight": TwoColumnRight,
		"TwoPageLeft":    TwoPageLeft,
		"TwoPageRight":   TwoPageRight,
	},
}

// PageMode specifies how the document is displayed when opened.
type PageMode int

// These are the valid page modes.
const (
	UseNone PageMode = iota
	UseOutlines
	UseThumbs
	FullScreen
	UseOC
	UseAttachments
)

// PageModeEnum maps the names used in the /PageMode entry to [PageMode]
// values.
var PageModeEnum = &pdf.Enum[PageMode]{
	Name: "PageMode",
	Values: map[pdf.Name]PageMode{
		"UseNone":        UseNone,
		"UseOutlines":    UseOutlines,
		"UseThumbs":      UseThumbs,
		"FullScreen":     FullScreen,
		"UseOC":          UseOC,
		"UseAttachments": UseAttachments,
	},
}

// Catalog represents the document catalog, the root of the object graph of
// a PDF file.
type Catalog struct {
	// Version (optional, PDF 1.4) is the PDF version the document conforms
	// to, if later than the version in the file header.
	Version *pdf.Name

	// Pages is the root of the page tree.
	Pages pdf.Reference

	PageLabels        pdf.Object
	Names             *pdf.TypedReference[pdf.Dict]
	Dests             pdf.Object
	ViewerPreferences pdf.Object

	PageLayout PageLayout
	PageMode   PageMode

	// Outlines (optional) is the root of the outline hierarchy.
	Outlines *pdf.TypedReference[pdf.Dict]

	Threads pdf.Object

	// OpenAction (optional) is the destination shown, or the action performed,
	// when the document is opened.
	OpenAction *OpenAction

	AA  pdf.Object
	URI pdf.Object

	// AcroForm (optional) is the interactive form dictionary.
	AcroForm *pdf.TypedReference[*AcroForm]

	// Metadata (optional) is the XMP metadata stream of the document.
	// Use [ExtractMetadata] to read it.
	Metadata *pdf.Reference

	StructTreeRoot pdf.Object

	MarkInfo *MarkInfo

	// Lang (optional) is the natural language of the text in the document.
	// This is [language.Und] if no language is given.
	Lang language.Tag

	SpiderInfo    pdf.Object
	OutputIntents []*OutputIntent
	PieceInfo     pdf.Object
	OCProperties  pdf.Object
	Perms         pdf.Object
	Legal         pdf.Object
	Requirements  pdf.Object
	Collection    pdf.Object

	NeedsRendering bool

	// Extensions (optional) holds developer extensions information.
	Extensions pdf.Object
}

// ExtractCatalog reads the document catalog.
func ExtractCatalog(r pdf.Getter, obj pdf.Object) (*Catalog, error) {
	c := &Catalog{}
	var lang *string
	schema := &pdf.Schema{
		Type:         "Catalog",
		TypeRequired: true,
		Fields: []pdf.Field{
			pdf.Optional("Version", &c.Version, pdf.AsName),
			pdf.Raw("Extensions", &c.Extensions),
			pdf.Required("Pages", &c.Pages, pdf.AsReference).Lazy(),
			pdf.Raw("PageLabels", &c.PageLabels),
			pdf.Optional("Names", &c.Names, pdf.AsTypedReference[pdf.Dict]).Lazy(),
			pdf.Raw("Dests", &c.Dests),
			pdf.Raw("ViewerPreferences", &c.ViewerPreferences),
			pdf.Default("PageLayout", &c.PageLayout, SinglePage, PageLayoutEnum.Convert),
			pdf.Default("PageMode", &c.PageMode, UseNone, PageModeEnum.Convert),
			pdf.Optional("Outlines", &c.Outlines, pdf.AsTypedReference[pdf.Dict]).Lazy(),
			pdf.Raw("Threads", &c.Threads),
			pdf.Optional("OpenAction", &c.OpenAction, asOpenAction),
			pdf.Raw("AA", &c.AA),
			pdf.Raw("URI", &c.URI),
			pdf.Optional("AcroForm", &c.AcroForm, pdf.AsTypedReference[*AcroForm]).Lazy(),
			pdf.Optional("Metadata", &c.Metadata, pdf.AsReference).Lazy(),
			pdf.Raw("StructTreeRoot", &c.StructTreeRoot),
			pdf.Default("MarkInfo", &c.MarkInfo, nil, ExtractMarkInfo),
			pdf.Optional("Lang", &lang, pdf.AsTextString),
			pdf.Raw("SpiderInfo", &c.SpiderInfo),
			pdf.Default("OutputIntents", &c.OutputIntents, nil, pdf.ArrayOf(ExtractOutputIntent)),
			pdf.Raw("PieceInfo", &c.PieceInfo),
			pdf.Raw("OCProperties", &c.OCProperties),
			pdf.Raw("Perms", &c.Perms),
			pdf.Raw("Legal", &c.Legal),
			pdf.Raw("Requirements", &c.Requirements),
			pdf.Raw("Collection", &c.Collection),
			pdf.Default("NeedsRendering", &c.NeedsRendering, false, pdf.AsBool),
		},
	}
	_, err := schema.Decode(r, obj)
	if err != nil {
		return nil, err
	}

	if lang != nil {
		c.Lang, _ = language.Parse(*lang)
	}
	return c, nil
}
