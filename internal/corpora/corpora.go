// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package corpora runs golden-file tests: each input file in a testdata
// directory is one case, and its expected outputs live next to it.
package corpora

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
)

// Corpus is a table-driven test whose table lives in the file system.
type Corpus struct {
	// Directory holding the cases, relative to the file that calls
	// [Corpus.Run].
	Root string

	// Environment variable holding a glob of case names to refresh instead
	// of check, e.g. EXPRTREE_REFRESH='**'.
	Refresh string

	// Extension of case files, without the dot, e.g. "pbs".
	Extension string

	// The outputs each case produces. The golden file for output n of case
	// "foo.pbs" is "foo.pbs.<Outputs[n].Extension>". A missing golden file
	// expects empty output.
	Outputs []Output

	// Test runs one case and returns one string per element of Outputs.
	Test func(t *testing.T, path string, input []byte) []string
}

// Output describes one output of a case.
type Output struct {
	Extension string

	// If nil, outputs are compared byte for byte.
	Compare Compare
}

// Compare compares two outputs, returning an empty string if they match and
// a description of the mismatch otherwise.
type Compare func(got, want string) string

// Run runs every case in the corpus as a parallel subtest of t.
func (c Corpus) Run(t *testing.T) {
	t.Helper()

	root := filepath.Join(callerDir(0), c.Root)
	cases, err := doublestar.Glob(os.DirFS(root), "**/*."+c.Extension, doublestar.WithFilesOnly())
	if err != nil {
		t.Fatalf("corpora: listing %q: %v", root, err)
	}
	if len(cases) == 0 {
		t.Fatalf("corpora: no *.%s files under %q", c.Extension, root)
	}
	slices.Sort(cases)

	var refresh string
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
		if refresh != "" && !doublestar.ValidatePattern(refresh) {
			t.Fatalf("corpora: %s=%q is not a valid glob", c.Refresh, refresh)
		}
	}
	if refresh != "" {
		// Refreshing never counts as a passing run.
		t.Logf("corpora: refreshing %s=%s", c.Refresh, refresh)
		t.Fail()
	}

	for _, name := range cases {
		path := filepath.Join(root, filepath.FromSlash(name))
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			input, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("corpora: reading input: %v", err)
			}

			results := c.Test(t, name, input)
			if len(results) != len(c.Outputs) {
				t.Fatalf("corpora: got %d outputs, want %d", len(results), len(c.Outputs))
			}

			write := refresh != "" && doublestar.MatchUnvalidated(refresh, name)
			for i, out := range c.Outputs {
				golden := fmt.Sprint(path, ".", out.Extension)
				if write {
					if err := update(golden, results[i]); err != nil {
						t.Errorf("corpora: %v", err)
					}
					continue
				}

				want, err := os.ReadFile(golden)
				if err != nil && !errors.Is(err, fs.ErrNotExist) {
					t.Errorf("corpora: reading output: %v", err)
					continue
				}
				compare := out.Compare
				if compare == nil {
					compare = Diff
				}
				if msg := compare(results[i], string(want)); msg != "" {
					t.Errorf("output mismatch for %s:\n%s", filepath.Base(golden), msg)
				}
			}
		})
	}
}

// update writes or, for empty output, removes a golden file.
func update(path, data string) error {
	if data == "" {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	}
	return os.WriteFile(path, []byte(data), 0o644)
}

// Diff is the default [Compare]: an exact match, reported as a colored
// unified diff.
func Diff(got, want string) string {
	if got == want {
		return ""
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}

	lines := strings.Split(diff, "\n")
	for i, s := range lines {
		switch {
		case strings.HasPrefix(s, "+"):
			lines[i] = "\033[1;92m" + s + "\033[0m"
		case strings.HasPrefix(s, "-"):
			lines[i] = "\033[1;91m" + s + "\033[0m"
		}
	}
	return strings.Join(lines, "\n")
}

func callerDir(skip int) string {
	_, file, _, ok := runtime.Caller(skip + 2)
	if !ok {
		panic("corpora: could not determine test file's directory")
	}
	return filepath.Dir(file)
}
