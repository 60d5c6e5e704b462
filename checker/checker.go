// Package checker parses cQASM files in bulk and collects their
// diagnostics.
package checker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/qasmtools/cq/parser"
)

// Options controls how a run collects and parses files.
type Options struct {
	// Jobs bounds how many files are parsed concurrently; values
	// below 1 mean one at a time.
	Jobs int
	// Extensions selects which files a directory walk picks up.
	// Empty means .cq only. Files named directly are always taken.
	Extensions []string
	// MaxErrors caps diagnostics per file. 0 keeps the parser
	// default, negative lifts the cap.
	MaxErrors int
}

// Result pairs one file with its parse outcome. Walk failures show up
// as a Result whose Path is the unreadable entry and whose parse
// carries the walk message.
type Result struct {
	Path  string
	Parse parser.ParseResult
}

// Failed reports whether the file produced any diagnostics.
func (r Result) Failed() bool {
	return !r.Parse.Succeeded()
}

// Summary counts the outcome of a run.
type Summary struct {
	Files    int
	Failed   int
	Messages int
}

func Summarize(results []Result) Summary {
	s := Summary{Files: len(results)}
	for _, r := range results {
		if r.Failed() {
			s.Failed++
		}
		s.Messages += len(r.Parse.Errors)
	}
	return s
}

// Run resolves the given paths, parses every selected file, and
// returns one Result per file. Results come back in collection order
// regardless of Jobs, so output is stable across runs. Paths that do
// not exist go through the parser anyway and report its single
// resource error.
func Run(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	files, problems := collect(paths, opts.Extensions)

	results := make([]Result, len(files), len(files)+len(problems))

	var popts []parser.Option
	if opts.MaxErrors != 0 {
		popts = append(popts, parser.WithMaxErrors(opts.MaxErrors))
	}

	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = Result{Path: file, Parse: parser.ParseFile(file, popts...)}
			return nil
		})
	}
	err := g.Wait()

	for _, problem := range problems {
		results = append(results, Result{
			Path:  problem.path,
			Parse: parser.ParseResult{Errors: []string{problem.message}},
		})
	}
	return results, err
}

type walkProblem struct {
	path    string
	message string
}

func collect(paths []string, extensions []string) ([]string, []walkProblem) {
	if len(extensions) == 0 {
		extensions = []string{".cq"}
	}

	var files []string
	var problems []walkProblem
	seen := make(map[string]bool)
	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			add(path)
			continue
		}
		err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				problems = append(problems, walkProblem{
					path:    p,
					message: fmt.Sprintf("walk %s: %v", p, err),
				})
				return nil
			}
			if !info.IsDir() && hasExt(p, extensions) {
				add(p)
			}
			return nil
		})
		if err != nil {
			problems = append(problems, walkProblem{
				path:    path,
				message: fmt.Sprintf("walk %s: %v", path, err),
			})
		}
	}
	return files, problems
}

func hasExt(name string, extensions []string) bool {
	ext := filepath.Ext(name)
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}
