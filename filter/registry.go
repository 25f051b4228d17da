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

// Package filter implements the decoding of PDF stream data.
//
// Codecs are looked up by name in a [Registry].  The [Default] registry
// knows all filters from the PDF specification; callers can register
// further codecs, or build their own registry from scratch.
package filter

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"strconv"
	"sync"

	"golang.org/x/exp/maps"

	"seehuhn.de/go/pdfcore/pdf"
)

// A Codec decodes data which has been encoded with one specific filter.
type Codec interface {
	// Decode returns a reader for the decoded data.  Parms holds the
	// (resolved) decode parameters of the filter, or nil if none were given.
	Decode(r io.Reader, parms pdf.Dict) (io.Reader, error)
}

// CodecFunc is an adapter to allow the use of ordinary functions as codecs.
type CodecFunc func(r io.Reader, parms pdf.Dict) (io.Reader, error)

// Decode implements the [Codec] interface.
func (f CodecFunc) Decode(r io.Reader, parms pdf.Dict) (io.Reader, error) {
	return f(r, parms)
}

// UnsupportedFilterError is returned when a stream uses a filter for which
// no codec is registered.
type UnsupportedFilterError struct {
	Name pdf.Name
}

func (err *UnsupportedFilterError) Error() string {
	return "unsupported filter /" + string(err.Name)
}

// Unwrap returns [pdf.ErrNotSupported].
func (err *UnsupportedFilterError) Unwrap() error {
	return pdf.ErrNotSupported
}

// ErrDecodedSizeLimit is returned when the decoded data of a stream
// exceeds [Registry.MaxDecodedSize].
var ErrDecodedSizeLimit = errors.New("decoded stream data exceeds size limit")

// Registry maps filter names to codecs.
// The methods of a Registry are safe for concurrent use.
type Registry struct {
	// MaxDecodedSize, if positive, limits the number of bytes a single
	// stream may decode to.  This must not be changed while the registry
	// is in use.
	MaxDecodedSize int64

	mu     sync.RWMutex
	codecs map[pdf.Name]Codec
}

// NewRegistry returns a registry without any codecs.
func NewRegistry() *Registry {
	return &Registry{codecs: map[pdf.Name]Codec{}}
}

// Register adds a codec to the registry, replacing any previous codec
// registered under the same name.
func (reg *Registry) Register(name pdf.Name, c Codec) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.codecs[name] = c
}

// Lookup returns the codec registered under name.
func (reg *Registry) Lookup(name pdf.Name) (Codec, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	c, ok := reg.codecs[name]
	return c, ok
}

// Names returns the names of all registered codecs, in sorted order.
func (reg *Registry) Names() []pdf.Name {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	names := maps.Keys(reg.codecs)
	slices.Sort(names)
	return names
}

// Decode returns a reader for the decoded data of stm.
//
// The filters listed in the stream dictionary are applied in order, the
// output of each filter is the input of the next one.  If one of the
// filters is not registered, an [*UnsupportedFilterError] is returned and
// no data is decoded.
func (reg *Registry) Decode(r pdf.Getter, stm *pdf.Stream) (io.Reader, error) {
	if stm == nil {
		return nil, &pdf.TypeError{
			Expected: []pdf.ObjectType{pdf.TypeStream},
			Found:    pdf.TypeNull,
		}
	}
	filters, err := stm.Filters(r)
	if err != nil {
		return nil, err
	}

	// Look up all codecs first, so that an unknown filter anywhere in the
	// chain fails before any decoding work is done.
	codecs := make([]Codec, len(filters))
	for i, fi := range filters {
		c, ok := reg.Lookup(fi.Name)
		if !ok {
			return nil, &UnsupportedFilterError{Name: fi.Name}
		}
		codecs[i] = c
	}

	var body io.Reader = stm.Reader()
	for i, fi := range filters {
		parms, err := resolveParms(r, fi.Parms)
		if err != nil {
			return nil, pdf.Wrap(err, "/DecodeParms element "+strconv.Itoa(i))
		}
		body, err = codecs[i].Decode(body, parms)
		if err != nil {
			return nil, pdf.Wrap(err, string(fi.Name))
		}
	}

	if reg.MaxDecodedSize > 0 {
		body = &limitReader{r: body, n: reg.MaxDecodedSize}
	}
	return body, nil
}

// DecodeBytes decodes the complete data of stm.
func (reg *Registry) DecodeBytes(r pdf.Getter, stm *pdf.Stream) ([]byte, error) {
	body, err := reg.Decode(r, stm)
	if err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	_, err = buf.ReadFrom(body)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// resolveParms returns a copy of parms with all top-level references
// resolved.
func resolveParms(r pdf.Getter, parms pdf.Dict) (pdf.Dict, error) {
	var res pdf.Dict
	for key, val := range parms {
		if _, isRef := val.(pdf.Reference); !isRef {
			continue
		}
		if res == nil {
			res = maps.Clone(parms)
		}
		obj, err := pdf.Resolve(r, val)
		if err != nil {
			return nil, pdf.Wrap(err, "/"+string(key))
		}
		res[key] = obj
	}
	if res == nil {
		return parms, nil
	}
	return res, nil
}

type limitReader struct {
	r io.Reader
	n int64
}

func (l *limitReader) Read(p []byte) (int, error) {
	if int64(len(p)) > l.n+1 {
		p = p[:l.n+1]
	}
	n, err := l.r.Read(p)
	if int64(n) > l.n {
		k := l.n
		l.n = 0
		return int(k), ErrDecodedSizeLimit
	}
	l.n -= int64(n)
	return n, err
}
