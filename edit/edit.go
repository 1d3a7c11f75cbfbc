// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package edit implements buffered position-based editing of byte slices.
//
// All edits address offsets in the original text, never offsets in
// already-edited text, so the order in which edits are queued only matters
// for insertions at the same offset. Edits are checked as they are queued:
// two replaced ranges may not overlap and an insertion may not land
// strictly inside a replaced range.
package edit

import (
	"fmt"
	"sort"
	"strings"
)

// A Buffer is a queue of edits to apply to a given byte slice.
type Buffer struct {
	old []byte
	q   edits
	seq int
}

// An edit records a single text modification: change the bytes in [start,end) to new.
type edit struct {
	start int
	end   int
	new   string
	seq   int // registration order
	order int // tie-break among insertions at the same offset
}

func (e edit) isInsert() bool { return e.start == e.end }

// An edits is a list of edits that is sortable by start offset,
// breaking ties by end offset and then by order.
type edits []edit

func (x edits) Len() int      { return len(x) }
func (x edits) Swap(i, j int) { x[i], x[j] = x[j], x[i] }
func (x edits) Less(i, j int) bool {
	if x[i].start != x[j].start {
		return x[i].start < x[j].start
	}
	if x[i].end != x[j].end {
		return x[i].end < x[j].end
	}
	return x[i].order < x[j].order
}

// A ConflictError reports an edit that overlaps an edit queued earlier.
type ConflictError struct {
	Start, End int    // range of the rejected edit
	New        string // replacement text of the rejected edit

	PrevStart, PrevEnd int
	PrevNew            string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d,%d)->%q, [%d,%d)->%q",
		e.PrevStart, e.PrevEnd, e.PrevNew, e.Start, e.End, e.New)
}

// NewBuffer returns a new buffer to accumulate changes to an initial data slice.
// The returned buffer maintains a reference to the data, so the caller must ensure
// the data is not modified until after the Buffer is done being used.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{old: data}
}

// Len returns the length of the original data.
func (b *Buffer) Len() int {
	return len(b.old)
}

// Original returns the original bytes in [start,end).
func (b *Buffer) Original(start, end int) string {
	return string(b.old[start:end])
}

// Mark returns a marker identifying every edit queued from now on.
// It is used with Slice and Collapse.
func (b *Buffer) Mark() int {
	return b.seq
}

// Insert queues the insertion of new at pos, after any text already
// queued for insertion at pos.
func (b *Buffer) Insert(pos int, new string) {
	b.check(pos, pos, new)
	b.add(edit{start: pos, end: pos, new: new, order: b.seq})
}

// Prepend queues the insertion of new at pos, before any text already
// queued for insertion at pos.
func (b *Buffer) Prepend(pos int, new string) {
	b.check(pos, pos, new)
	b.add(edit{start: pos, end: pos, new: new, order: -b.seq - 1})
}

// Append queues the insertion of new at the end of the data,
// after anything else queued there.
func (b *Buffer) Append(new string) {
	b.Insert(len(b.old), new)
}

// Delete queues the deletion of [start,end).
func (b *Buffer) Delete(start, end int) {
	b.Replace(start, end, "")
}

// Replace queues the replacement of [start,end) with new.
func (b *Buffer) Replace(start, end int, new string) {
	if start == end {
		if new != "" {
			b.Insert(start, new)
		}
		return
	}
	b.check(start, end, new)
	b.add(edit{start: start, end: end, new: new, order: b.seq})
}

// Collapse replaces [start,end) with new, discarding the edits inside
// [start,end] that were queued since mark. Edits inside the range that
// were queued before mark are a conflict.
func (b *Buffer) Collapse(start, end, mark int, new string) {
	if end < start || start < 0 || end > len(b.old) {
		panic("invalid edit position")
	}
	q := b.q[:0]
	for _, e := range b.q {
		if e.seq >= mark && start <= e.start && e.end <= end {
			continue
		}
		q = append(q, e)
	}
	b.q = q
	if start == end {
		b.Insert(start, new)
		return
	}
	b.Replace(start, end, new)
}

func (b *Buffer) add(e edit) {
	e.seq = b.seq
	b.seq++
	b.q = append(b.q, e)
}

// check panics with a *ConflictError if replacing [start,end) with new
// would conflict with an edit already queued.
func (b *Buffer) check(start, end int, new string) {
	if end < start || start < 0 || end > len(b.old) {
		panic("invalid edit position")
	}
	for _, e := range b.q {
		var bad bool
		switch {
		case start == end && e.isInsert():
			// Insertions never conflict with each other.
		case start == end:
			bad = e.start < start && start < e.end
		case e.isInsert():
			bad = start < e.start && e.start < end
		default:
			bad = start < e.end && e.start < end
		}
		if bad {
			panic(&ConflictError{
				Start: start, End: end, New: new,
				PrevStart: e.start, PrevEnd: e.end, PrevNew: e.new,
			})
		}
	}
}

// Bytes returns a new byte slice containing the original data
// with the queued edits applied.
func (b *Buffer) Bytes() []byte {
	return b.render(0, len(b.old), b.q)
}

// String returns a string containing the original data
// with the queued edits applied.
func (b *Buffer) String() string {
	return string(b.Bytes())
}

// Slice returns the text of the original range [start,end) with the
// queued edits inside it applied. Insertions exactly at start or end
// are included only if they were queued since mark; the others belong
// to whatever surrounds the range.
func (b *Buffer) Slice(start, end, mark int) string {
	var q edits
	for _, e := range b.q {
		if e.start < start || e.end > end {
			continue
		}
		if e.isInsert() && (e.start == start || e.start == end) && e.seq < mark {
			continue
		}
		q = append(q, e)
	}
	return string(b.render(start, end, q))
}

// Edited reports whether any queued edit touches [start,end].
func (b *Buffer) Edited(start, end int) bool {
	for _, e := range b.q {
		if e.start <= end && start <= e.end {
			return true
		}
	}
	return false
}

func (b *Buffer) render(start, end int, q edits) []byte {
	q = append(edits(nil), q...)
	sort.Stable(q)

	var buf strings.Builder
	offset := start
	for i, e := range q {
		if e.start < offset {
			e0 := q[i-1]
			panic(&ConflictError{
				Start: e.start, End: e.end, New: e.new,
				PrevStart: e0.start, PrevEnd: e0.end, PrevNew: e0.new,
			})
		}
		buf.Write(b.old[offset:e.start])
		offset = e.end
		buf.WriteString(e.new)
	}
	buf.Write(b.old[offset:end])
	return []byte(buf.String())
}
