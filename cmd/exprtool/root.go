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

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/protocolbuffers/protoscope"
	"github.com/spf13/cobra"

	"github.com/rdecomp/exprtree/arch"
	"github.com/rdecomp/exprtree/expr"
	"github.com/rdecomp/exprtree/exprwire"
	"github.com/rdecomp/exprtree/symtab"
)

// options holds the global flags, and what setup derives from them.
type options struct {
	verbose    bool
	archName   string
	archFile   string
	symbols    string
	maxWidth   int
	protoscope bool

	log     *slog.Logger
	regs    *arch.Registers
	printer expr.Printer
}

func newRootCmd() *cobra.Command {
	o := new(options)
	cmd := &cobra.Command{
		Use:   "exprtool",
		Short: "Inspect and rewrite saved expression trees",
		Long: `exprtool reads expression trees in the exprwire encoding, or in
protoscope text for files ending in .pbs, and renders them as C-like text.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return o.setup(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "Log progress to stderr")
	flags.StringVar(&o.archName, "arch", "x86", "Builtin register table (see 'exprtool archs')")
	flags.StringVar(&o.archFile, "arch-file", "", "YAML register table; overrides --arch")
	flags.StringVar(&o.symbols, "symbols", "", "YAML symbol and string table")
	flags.IntVar(&o.maxWidth, "max-string-width", 40, "Truncate string literals wider than this (0 = never)")
	flags.BoolVar(&o.protoscope, "protoscope", false, "Treat every input as protoscope text")

	cmd.AddCommand(
		newRenderCmd(o),
		newWalkCmd(o),
		newFoldCmd(o),
		newArchsCmd(),
	)
	return cmd
}

func (o *options) setup(cmd *cobra.Command) error {
	var w io.Writer = io.Discard
	if o.verbose {
		w = cmd.ErrOrStderr()
	}
	o.log = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var err error
	if o.archFile != "" {
		o.regs, err = loadFile(o.archFile, arch.Load)
	} else {
		o.regs, err = arch.Builtin(o.archName)
	}
	if err != nil {
		return err
	}
	o.log.Debug("loaded register table", "arch", o.regs.Name, "registers", len(o.regs.Registers))

	o.printer = expr.Printer{Registers: o.regs, MaxStringWidth: o.maxWidth}
	if o.symbols != "" {
		tab, err := symtab.LoadFile(o.symbols)
		if err != nil {
			return err
		}
		names, strs := tab.Len()
		o.log.Debug("loaded symbols", "file", o.symbols, "names", names, "strings", strs)
		o.printer.Resolver = tab
	}
	return nil
}

// load reads and decodes one tree.
func (o *options) load(path string) (expr.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return expr.Node{}, err
	}
	if o.protoscope || filepath.Ext(path) == ".pbs" {
		data, err = protoscope.NewScanner(string(data)).Exec()
		if err != nil {
			return expr.Node{}, fmt.Errorf("%s: %w", path, err)
		}
	}

	tree := expr.NewTree(o.regs)
	root, err := exprwire.Decode(tree, data)
	if err != nil {
		return expr.Node{}, fmt.Errorf("%s: %w", path, err)
	}
	o.log.Debug("decoded tree", "file", path, "bytes", len(data), "nodes", tree.Len())
	return root, nil
}

func loadFile[T any](path string, load func(io.Reader) (T, error)) (T, error) {
	f, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, err
	}
	defer f.Close()
	return load(f)
}
