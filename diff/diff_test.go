// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diff

import (
	"os/exec"
	"testing"
)

func TestDiff(t *testing.T) {
	if _, err := exec.LookPath("diff"); err != nil {
		t.Skip("diff not found")
	}
	tests := []struct {
		old, new string
		want     string
	}{
		{
			"x = a // b\nf x\n",
			"var x = Math.floor(a / b);\nf(x);\n",
			"diff a.coffee a.js\n--- a.coffee\n+++ a.js\n@@ -1,2 +1,2 @@\n-x = a // b\n-f x\n+var x = Math.floor(a / b);\n+f(x);\n",
		},
		{
			"# c\na = 1\n",
			"// c\na = 1\n",
			"diff a.coffee a.js\n--- a.coffee\n+++ a.js\n@@ -1,2 +1,2 @@\n-# c\n+// c\n a = 1\n",
		},
		{"a\n", "a\n", ""},
	}
	for _, tt := range tests {
		out, err := Diff("a.coffee", []byte(tt.old), "a.js", []byte(tt.new))
		if err != nil {
			t.Fatal(err)
		}
		if string(out) != tt.want {
			t.Errorf("Diff: have:\n%s", out)
			t.Errorf("Diff: want:\n%s", tt.want)
		}
	}
}
