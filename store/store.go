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

// Package store makes the objects of a PDF file available through the
// [pdf.Getter] interface.
//
// Parsing the file, including the cross-reference table and object
// streams, is done by the pdfcpu library.  The objects are then converted
// to the representation used by package pdf.  Stream data is kept in
// encoded form, so that it can be decoded using package filter.
package store

import (
	"errors"
	"io"
	"os"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"seehuhn.de/go/pdfcore/pdf"
)

// Options control how a file is opened.
type Options struct {
	// Password is used to open encrypted files.
	Password string

	// Strict enables strict validation of the file structure.
	// By default, common violations of the PDF specification are tolerated.
	Strict bool
}

// File is a PDF file opened for reading.
// A File is safe for concurrent use.
type File struct {
	mu  sync.Mutex
	ctx *model.Context
}

// Trailer holds the entries of the file trailer which refer to indirect
// objects.
type Trailer struct {
	// Root is the document catalog.
	Root pdf.Reference

	// Info (optional) is the document information dictionary.
	Info *pdf.Reference

	// Encrypt (optional) is the encryption dictionary.
	Encrypt *pdf.Reference

	// ID (optional) is the file identifier.
	ID pdf.Array
}

// Open opens the named file.  If opt is nil, default options are used.
func Open(path string, opt *Options) (*File, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return NewFile(fd, opt)
}

// NewFile reads a PDF file from r.  If opt is nil, default options are used.
func NewFile(r io.ReadSeeker, opt *Options) (*File, error) {
	if opt == nil {
		opt = &Options{}
	}

	conf := model.NewDefaultConfiguration()
	if opt.Password != "" {
		conf.UserPW = opt.Password
		conf.OwnerPW = opt.Password
	}
	if opt.Strict {
		conf.ValidationMode = model.ValidationStrict
	} else {
		conf.ValidationMode = model.ValidationRelaxed
	}

	ctx, err := api.ReadContext(r, conf)
	if err != nil {
		return nil, &pdf.MalformedFileError{Err: err}
	}
	if ctx.Root == nil {
		return nil, &pdf.MalformedFileError{Err: errNoRoot}
	}
	return &File{ctx: ctx}, nil
}

// Get implements the [pdf.Getter] interface.
// Objects which are not present in the cross-reference table, or which
// are marked as free, give a [*pdf.NotFoundError].
func (f *File) Get(ref pdf.Reference) (pdf.Object, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.ctx.FindTableEntry(int(ref.Number()), int(ref.Generation()))
	if !ok || entry == nil || entry.Free {
		return nil, &pdf.NotFoundError{Ref: ref}
	}

	obj, err := convert(entry.Object)
	if err != nil {
		return nil, pdf.Wrap(err, ref.String())
	}
	return obj, nil
}

// Trailer returns the references stored in the file trailer.
func (f *File) Trailer() (*Trailer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t := &Trailer{
		Root: convertRef(*f.ctx.Root),
	}
	if f.ctx.Info != nil {
		ref := convertRef(*f.ctx.Info)
		t.Info = &ref
	}
	if f.ctx.Encrypt != nil {
		ref := convertRef(*f.ctx.Encrypt)
		t.Encrypt = &ref
	}
	if len(f.ctx.ID) > 0 {
		id, err := convert(f.ctx.ID)
		if err != nil {
			return nil, pdf.Wrap(err, "/ID")
		}
		t.ID, _ = id.(pdf.Array)
	}
	return t, nil
}

var errNoRoot = errors.New("missing document catalog")
