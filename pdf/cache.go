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

import "sync"

// Cache wraps a [Getter] and keeps recently used objects in memory.
// A Cache is safe for concurrent use, provided the underlying Getter is.
//
// Failed lookups are not cached.
type Cache struct {
	r Getter

	mu  sync.Mutex
	lru *lruCache
}

// NewCache returns a new cache which holds at most capacity objects
// read from r.
func NewCache(r Getter, capacity int) *Cache {
	return &Cache{
		r:   r,
		lru: newLRU(capacity),
	}
}

// Get implements the [Getter] interface.
func (c *Cache) Get(ref Reference) (Object, error) {
	c.mu.Lock()
	obj, ok := c.lru.Get(ref)
	c.mu.Unlock()
	if ok {
		return obj, nil
	}

	obj, err := c.r.Get(ref)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.lru.Put(ref, obj)
	c.mu.Unlock()
	return obj, nil
}

// Len returns the number of objects currently held in the cache.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lru.entries)
}

// lruCache is a simple LRU cache for PDF objects.
type lruCache struct {
	capacity    int
	entries     map[Reference]*cacheEntry
	first, last *cacheEntry
}

type cacheEntry struct {
	prev, next *cacheEntry
	key        Reference
	obj        Object
}

func newLRU(capacity int) *lruCache {
	return &lruCache{
		capacity: capacity,
		entries:  make(map[Reference]*cacheEntry, max(capacity, 0)),
	}
}

// Put adds an object to the cache.
func (l *lruCache) Put(key Reference, obj Object) {
	if l.capacity <= 0 {
		return
	}

	if ent, ok := l.entries[key]; ok {
		ent.obj = obj
		l.moveToFront(ent)
		return
	}

	ent := &cacheEntry{key: key, obj: obj}
	l.entries[key] = ent
	l.moveToFront(ent)

	if len(l.entries) > l.capacity {
		l.removeLast()
	}
}

// Get returns an object from the cache and marks it as recently used.
func (l *lruCache) Get(key Reference) (Object, bool) {
	ent, ok := l.entries[key]
	if !ok {
		return nil, false
	}
	l.moveToFront(ent)
	return ent.obj, true
}

func (l *lruCache) moveToFront(ent *cacheEntry) {
	if ent == l.first {
		return
	}

	if ent.prev != nil {
		ent.prev.next = ent.next
	}
	if ent.next != nil {
		ent.next.prev = ent.prev
	}
	if ent == l.last {
		l.last = ent.prev
	}

	ent.prev = nil
	ent.next = l.first
	if l.first != nil {
		l.first.prev = ent
	}
	l.first = ent
	if l.last == nil {
		l.last = ent
	}
}

func (l *lruCache) removeLast() {
	last := l.last
	if last == nil {
		return
	}

	delete(l.entries, last.key)
	if last.prev != nil {
		last.prev.next = nil
	}
	l.last = last.prev
	if l.first == last {
		l.first = nil
	}
}
