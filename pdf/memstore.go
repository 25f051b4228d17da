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

package pdf

import (
	"fmt"
	"io"
	"slices"
	"sync"

	"golang.org/x/exp/maps"
)

// MemStore is an in-memory collection of indirect objects.
// It implements the [Getter] interface and is safe for concurrent use.
type MemStore struct {
	mu      sync.RWMutex
	objects map[Reference]Object
	lastRef uint32
}

// NewMemStore returns a new, empty store.
func NewMemStore() *MemStore {
	return &MemStore{
		objects: map[Reference]Object{},
	}
}

// Alloc allocates a new object number for an indirect object.
func (d *MemStore) Alloc() Reference {
	d.mu.Lock()
	defer d.mu.Unlock()

	for {
		d.lastRef++
		ref := NewReference(d.lastRef, 0)
		if _, ok := d.objects[ref]; !ok {
			// reserve the number
			d.objects[ref] = nil
			return ref
		}
	}
}

// Get implements the [Getter] interface.
// If the object does not exist, a [*NotFoundError] is returned.
func (d *MemStore) Get(ref Reference) (Object, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	obj, ok := d.objects[ref]
	if !ok {
		return nil, &NotFoundError{Ref: ref}
	}
	return obj, nil
}

// Put stores obj under the given reference, replacing any previous value.
// Storing nil keeps the object number allocated, with value null.
func (d *MemStore) Put(ref Reference, obj Object) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.objects[ref] = obj
}

// Add allocates a new reference and stores obj under it.
func (d *MemStore) Add(obj Object) Reference {
	ref := d.Alloc()
	d.Put(ref, obj)
	return ref
}

// Delete removes an object from the store.
func (d *MemStore) Delete(ref Reference) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.objects, ref)
}

// Refs returns the references of all objects in the store, ordered by
// object number and then by generation.
func (d *MemStore) Refs() []Reference {
	d.mu.RLock()
	defer d.mu.RUnlock()

	refs := maps.Keys(d.objects)
	slices.SortFunc(refs, compareRefs)
	return refs
}

// WriteTo writes all objects in the store to w, in the syntax used for
// the body of a PDF file.
func (d *MemStore) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	for _, ref := range d.Refs() {
		obj, err := d.Get(ref)
		if err != nil {
			// deleted concurrently
			continue
		}
		_, err = fmt.Fprintf(cw, "%d %d obj\n", ref.Number(), ref.Generation())
		if err != nil {
			return cw.n, err
		}
		err = writeObject(cw, obj)
		if err != nil {
			return cw.n, err
		}
		_, err = io.WriteString(cw, "\nendobj\n")
		if err != nil {
			return cw.n, err
		}
	}
	return cw.n, nil
}

func compareRefs(a, b Reference) int {
	if a.Number() != b.Number() {
		if a.Number() < b.Number() {
			return -1
		}
		return 1
	}
	return int(a.Generation()) - int(b.Generation())
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
