// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/decaffeinate/decaf/convert"
	"github.com/decaffeinate/decaf/diff"
	"github.com/decaffeinate/decaf/patch"
)

var (
	showDiff    = flag.Bool("diff", false, "show diff instead of writing files")
	interactive = flag.Bool("repl", false, "start an interactive session")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: decaf [-diff] [options] [file.coffee | dir ...]\n       decaf -repl [options]\n")
	flag.PrintDefaults()
	os.Exit(2)
}

// optionFlags registers the flags that set the fields of opts.
func optionFlags(fs *flag.FlagSet, opts *patch.Options) {
	fs.BoolVar(&opts.LooseDefaultParams, "loose-default-params", false, "keep default parameters as native defaults")
	fs.BoolVar(&opts.LooseForLoops, "loose-for-loops", false, "convert simple for-in loops to for-of loops")
	fs.BoolVar(&opts.LooseIncludes, "loose-includes", false, "convert a in b to b.includes(a)")
	fs.BoolVar(&opts.LooseComparisonNegation, "loose-comparison-negation", false, "negate a < b as a >= b")
	fs.BoolVar(&opts.PreferLet, "prefer-let", false, "declare with let where const would do")
	fs.BoolVar(&opts.BlockScopedDeclarations, "block-scoped", false, "declare variables with let and const instead of var")
	fs.BoolVar(&opts.DisallowInvalidConstructors, "disallow-invalid-constructors", false, "reject this before super in derived constructors")
	fs.BoolVar(&opts.DisableSuggestionComment, "disable-suggestion-comment", false, "omit the leading suggestion comment")
	fs.StringVar(&opts.RunToStage, "run-to-stage", "", "stop after the named `stage` ("+strings.Join(convert.StageNames(), ", ")+")")
	fs.BoolVar(&opts.SkipVerify, "skip-verify", false, "do not parse the generated JavaScript")
}

func main() {
	log.SetPrefix("decaf: ")
	log.SetFlags(0)

	var opts patch.Options
	optionFlags(flag.CommandLine, &opts)
	flag.Usage = usage
	flag.Parse()

	var err error
	if *interactive {
		if flag.NArg() > 0 {
			err = newErrUsage("-repl does not take files")
		} else {
			err = runREPL(&opts)
		}
	} else {
		d := &decaf{opts: &opts, showDiff: *showDiff, stdin: os.Stdin, stdout: os.Stdout}
		err = d.run(flag.Args())
	}
	if err != nil {
		if _, ok := err.(*errUsage); ok {
			fmt.Fprintf(os.Stderr, "decaf: %v\n", err)
			usage()
		}
		log.Fatal(err)
	}
}

// A decaf converts the files named on the command line.
type decaf struct {
	opts     *patch.Options
	showDiff bool
	stdin    io.Reader
	stdout   io.Writer
}

// A result is the conversion of one file.
type result struct {
	name, out string // input and output file names
	src, code []byte
	err       error
}

// run converts the named files and the .coffee files in the named
// directories, or standard input if there are none. Files are
// converted concurrently; their errors are reported together.
func (d *decaf) run(args []string) error {
	if len(args) == 0 {
		if d.showDiff {
			return newErrUsage("-diff needs files")
		}
		src, err := io.ReadAll(d.stdin)
		if err != nil {
			return err
		}
		code, err := convert.Convert("<stdin>", string(src), d.opts)
		if err != nil {
			var errs convert.ErrorList
			errs.Add(err)
			return errs.Err()
		}
		_, err = io.WriteString(d.stdout, code)
		return err
	}

	files, err := expand(args)
	if err != nil {
		return err
	}
	results := d.convertAll(files)

	var errs convert.ErrorList
	for _, r := range results {
		if r.err != nil {
			errs.Add(r.err)
			continue
		}
		if d.showDiff {
			out, err := diff.Diff(r.name, r.src, r.out, r.code)
			if err != nil {
				errs.Add(err)
				continue
			}
			d.stdout.Write(out)
			continue
		}
		if err := os.WriteFile(r.out, r.code, 0666); err != nil {
			errs.Add(err)
		}
	}
	return errs.Err()
}

// convertAll converts files with up to GOMAXPROCS conversions at once.
// The results are in the order of files.
func (d *decaf) convertAll(files []string) []*result {
	results := make([]*result, len(files))
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup
	for i, name := range files {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = d.convertFile(name)
		}(i, name)
	}
	wg.Wait()
	return results
}

func (d *decaf) convertFile(name string) *result {
	r := &result{name: name, out: outputName(name)}
	r.src, r.err = os.ReadFile(name)
	if r.err != nil {
		return r
	}
	code, err := convert.Convert(name, string(r.src), d.opts)
	r.code, r.err = []byte(code), err
	return r
}

// outputName returns the name of the JavaScript file for name.
func outputName(name string) string {
	for _, ext := range []string{".coffee", ".cs"} {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext) + ".js"
		}
	}
	return name + ".js"
}

// expand replaces each directory in args by the .coffee files under it.
func expand(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, e fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if e.IsDir() && path != arg && (strings.HasPrefix(e.Name(), ".") || e.Name() == "node_modules") {
				return filepath.SkipDir
			}
			if !e.IsDir() && strings.HasSuffix(path, ".coffee") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
