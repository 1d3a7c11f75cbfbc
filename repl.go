// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/decaffeinate/decaf/convert"
	"github.com/decaffeinate/decaf/patch"
)

const (
	prompt     = "decaf> "
	morePrompt = "...    "
)

// A lineReader reads the lines of an interactive session.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(string)
}

// runREPL converts CoffeeScript typed at the terminal.
func runREPL(opts *patch.Options) error {
	history := ""
	if home, err := os.UserHomeDir(); err == nil {
		history = filepath.Join(home, ".decaf_history")
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     history,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()
	return repl(rl, rl.Stdout(), rl.Stderr(), opts)
}

// repl reads snippets from rl and writes their conversions to stdout.
// A snippet is one line, unless the line opens an indented block or
// ends in a backslash; then it extends to the next blank line.
func repl(rl lineReader, stdout, stderr io.Writer, opts *patch.Options) error {
	var lines []string
	for {
		if len(lines) > 0 {
			rl.SetPrompt(morePrompt)
		} else {
			rl.SetPrompt(prompt)
		}
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			lines = nil
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if len(lines) == 0 && strings.TrimSpace(line) == "exit" {
			return nil
		}

		if len(lines) > 0 && strings.TrimSpace(line) != "" || opensBlock(line) {
			lines = append(lines, strings.TrimSuffix(line, `\`))
			continue
		}
		lines = append(lines, line)
		src := strings.Join(lines, "\n") + "\n"
		lines = nil
		if strings.TrimSpace(src) == "" {
			continue
		}
		code, err := convert.Convert("<repl>", src, opts)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			continue
		}
		io.WriteString(stdout, code)
	}
}

// blockOpeners are the keywords that start a construct whose body may
// follow on indented lines.
var blockOpeners = []string{
	"if", "unless", "else", "while", "until", "loop", "for",
	"switch", "when", "try", "catch", "finally", "class",
}

// opensBlock reports whether line needs the lines that follow it.
func opensBlock(line string) bool {
	line = strings.TrimRight(line, " \t")
	if strings.HasSuffix(line, `\`) || strings.HasSuffix(line, "->") || strings.HasSuffix(line, "=>") {
		return true
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	for _, kw := range blockOpeners {
		if fields[0] == kw {
			return !strings.Contains(line, " then ")
		}
	}
	return false
}
