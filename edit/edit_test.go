// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package edit

import (
	"errors"
	"testing"
)

func TestEdit(t *testing.T) {
	b := NewBuffer([]byte("0123456789"))
	b.Insert(8, ",7½,")
	b.Replace(9, 10, "the-end")
	b.Insert(10, "!")
	b.Insert(4, "3.14,")
	b.Insert(4, "π,")
	b.Insert(4, "3.15,")
	b.Replace(3, 4, "three,")
	want := "012three,3.14,π,3.15,4567,7½,8the-end!"

	s := b.String()
	if s != want {
		t.Errorf("b.String() = %q, want %q", s, want)
	}
	sb := b.Bytes()
	if string(sb) != want {
		t.Errorf("b.Bytes() = %q, want %q", sb, want)
	}
}

func TestPrepend(t *testing.T) {
	b := NewBuffer([]byte("abc"))
	b.Insert(1, "2")
	b.Prepend(1, "1")
	b.Insert(1, "3")
	b.Prepend(1, "0")
	if s, want := b.String(), "a0123bc"; s != want {
		t.Errorf("b.String() = %q, want %q", s, want)
	}
}

func TestAppend(t *testing.T) {
	b := NewBuffer([]byte("x = 1"))
	b.Append(";")
	b.Append("\nhelper();")
	b.Insert(5, "0")
	if s, want := b.String(), "x = 1;\nhelper();0"; s != want {
		t.Errorf("b.String() = %q, want %q", s, want)
	}
}

func TestConflict(t *testing.T) {
	tests := []struct {
		name string
		fn   func(b *Buffer)
	}{
		{"overlap", func(b *Buffer) {
			b.Replace(1, 4, "x")
			b.Replace(3, 6, "y")
		}},
		{"same range", func(b *Buffer) {
			b.Delete(2, 3)
			b.Replace(2, 3, "z")
		}},
		{"insert inside", func(b *Buffer) {
			b.Replace(1, 4, "x")
			b.Insert(2, "y")
		}},
		{"replace around insert", func(b *Buffer) {
			b.Insert(2, "y")
			b.Replace(1, 4, "x")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				e := recover()
				err, ok := e.(error)
				var ce *ConflictError
				if !ok || !errors.As(err, &ce) {
					t.Fatalf("recovered %v, want *ConflictError", e)
				}
			}()
			tt.fn(NewBuffer([]byte("0123456789")))
		})
	}
}

func TestAdjacent(t *testing.T) {
	b := NewBuffer([]byte("0123456789"))
	b.Replace(1, 3, "a")
	b.Replace(3, 5, "b")
	b.Insert(3, "|")
	b.Insert(1, "<")
	b.Insert(5, ">")
	if s, want := b.String(), "0<a|b>56789"; s != want {
		t.Errorf("b.String() = %q, want %q", s, want)
	}
}

func TestSlice(t *testing.T) {
	b := NewBuffer([]byte("f(a, b)"))
	b.Insert(2, "[")
	mark := b.Mark()
	b.Replace(2, 3, "x")
	b.Insert(3, "!")
	b.Insert(6, "]")
	if s, want := b.Slice(2, 6, mark), "x!, b]"; s != want {
		t.Errorf("b.Slice(2, 6, mark) = %q, want %q", s, want)
	}
	if s, want := b.Slice(2, 6, b.Mark()), "x!, b"; s != want {
		t.Errorf("b.Slice(2, 6, now) = %q, want %q", s, want)
	}
	if s, want := b.Slice(0, 7, 0), "f([x!, b])"; s != want {
		t.Errorf("b.Slice(0, 7, 0) = %q, want %q", s, want)
	}
}

func TestCollapse(t *testing.T) {
	b := NewBuffer([]byte("a if b"))
	b.Insert(0, "(")
	mark := b.Mark()
	b.Insert(5, "!")
	b.Replace(0, 1, "c")
	b.Collapse(0, 6, mark, "if !b then c")
	b.Insert(6, ")")
	if s, want := b.String(), "(if !b then c)"; s != want {
		t.Errorf("b.String() = %q, want %q", s, want)
	}
	if !b.Edited(0, 0) || b.Edited(7, 7) {
		t.Errorf("b.Edited reports wrong ranges")
	}
}
