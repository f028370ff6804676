// Copyright 2026 The exprtree Authors
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

// Package arch provides register and condition-flag display tables for the
// architectures whose instructions are lifted into expression trees.
//
// Tables are plain values handed to whoever renders a tree; nothing in this
// module consults a process-wide table, so trees for several architectures
// can be rendered side by side.
package arch

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownArch is returned by [Builtin] for names it does not know.
	ErrUnknownArch = errors.New("unknown architecture")

	// ErrInvalid is returned when a register table fails validation.
	ErrInvalid = errors.New("invalid register table")
)

//go:embed builtin/*.yaml
var builtins embed.FS

// Registers maps register and flag indices to display names.
type Registers struct {
	Name      string   `yaml:"name"`
	Registers []string `yaml:"registers"`
	Flags     []string `yaml:"flags"`
}

// Register returns the display name of the register with the given index.
func (r *Registers) Register(idx int) (string, bool) {
	if r == nil || idx < 0 || idx >= len(r.Registers) {
		return "", false
	}
	return r.Registers[idx], true
}

// Flag returns the display name of the condition flag with the given index.
func (r *Registers) Flag(idx int) (string, bool) {
	if r == nil || idx < 0 || idx >= len(r.Flags) {
		return "", false
	}
	return r.Flags[idx], true
}

// RegisterIndex is the inverse of [Registers.Register].
func (r *Registers) RegisterIndex(name string) (int, bool) {
	if r == nil {
		return 0, false
	}
	idx := slices.Index(r.Registers, name)
	return idx, idx >= 0
}

// FlagIndex is the inverse of [Registers.Flag].
func (r *Registers) FlagIndex(name string) (int, bool) {
	if r == nil {
		return 0, false
	}
	idx := slices.Index(r.Flags, name)
	return idx, idx >= 0
}

// Validate checks that r has a name, at least one register, and no
// duplicate or empty names.
func (r *Registers) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalid)
	}
	if len(r.Registers) == 0 {
		return fmt.Errorf("%w: %s: no registers", ErrInvalid, r.Name)
	}
	for what, names := range map[string][]string{"register": r.Registers, "flag": r.Flags} {
		seen := make(map[string]int, len(names))
		for i, name := range names {
			if name == "" {
				return fmt.Errorf("%w: %s: %s %d has no name", ErrInvalid, r.Name, what, i)
			}
			if j, ok := seen[name]; ok {
				return fmt.Errorf("%w: %s: %s %q appears at %d and %d", ErrInvalid, r.Name, what, name, j, i)
			}
			seen[name] = i
		}
	}
	return nil
}

// Parse decodes a YAML register table.
//
// The document has the following shape:
//
//	name: x86
//	registers: [eax, ecx, edx, ebx, esp, ebp, esi, edi]
//	flags: [cf, pf, af, zf, sf, tf, if, df, of]
func Parse(data []byte) (*Registers, error) {
	return Load(bytes.NewReader(data))
}

// Load is like [Parse], but reads from r.
func Load(r io.Reader) (*Registers, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	regs := new(Registers)
	if err := dec.Decode(regs); err != nil {
		return nil, fmt.Errorf("arch: decoding register table: %w", err)
	}
	if err := regs.Validate(); err != nil {
		return nil, fmt.Errorf("arch: %w", err)
	}
	return regs, nil
}

// Builtin returns a fresh copy of one of the builtin tables. See [Names].
func Builtin(name string) (*Registers, error) {
	data, err := builtins.ReadFile(path.Join("builtin", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("arch: %w: %q", ErrUnknownArch, name)
	}
	return Parse(data)
}

// X86 returns the builtin 32-bit x86 table.
func X86() *Registers {
	regs, err := Builtin("x86")
	if err != nil {
		panic(err) // The embedded tables are covered by tests.
	}
	return regs
}

// Names returns the names of the builtin tables, sorted.
func Names() []string {
	entries, _ := builtins.ReadDir("builtin")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	slices.Sort(names)
	return names
}
