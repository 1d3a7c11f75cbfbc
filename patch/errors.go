// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package patch

import (
	"fmt"

	"github.com/decaffeinate/decaf/edit"
)

// An Error is a fatal conversion error covering the source range
// [Start,End).
type Error struct {
	Start, End int
	Msg        string
}

func (e *Error) Error() string {
	return e.Msg
}

// errorf aborts the current stage with an error covering [start,end).
func errorf(start, end int, format string, args ...interface{}) {
	panic(&Error{Start: start, End: end, Msg: fmt.Sprintf(format, args...)})
}

// catch recovers an aborted stage into *err. Conflicting edits become
// errors too; any other panic is a bug and keeps unwinding.
func catch(err *error) {
	switch e := recover().(type) {
	case nil:
	case *Error:
		*err = e
	case *edit.ConflictError:
		*err = &Error{Start: e.Start, End: e.End, Msg: "internal error: " + e.Error()}
	default:
		panic(e)
	}
}
