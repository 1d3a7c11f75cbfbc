// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import "fmt"

// errUsage indicates a command line that decaf cannot act on, such as
// -repl given files. Usage errors are independent of the input.
type errUsage struct {
	err string
}

func newErrUsage(f string, args ...interface{}) *errUsage {
	return &errUsage{fmt.Sprintf(f, args...)}
}

func (e *errUsage) Error() string {
	return "usage: " + e.err
}
