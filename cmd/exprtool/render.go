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
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rdecomp/exprtree/expr"
)

func newRenderCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "render <file>...",
		Short: "Print trees as C-like expressions",
		Long: `The render command prints each tree on its own line. With more than one
file, each line is prefixed with the file name.

Example:
  exprtool render a.pb b.pb
  exprtool render --symbols syms.yaml --arch x86-64 call.pbs`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := o.each(cmd, args, func(_ string, root expr.Node) (string, error) {
				return o.printer.Print(root) + "\n", nil
			})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for i, line := range lines {
				if len(args) > 1 {
					fmt.Fprintf(w, "%s: ", args[i])
				}
				fmt.Fprint(w, line)
			}
			return nil
		},
	}
}

// each loads every file in parallel and applies f to its tree, returning the
// results in argument order.
func (o *options) each(cmd *cobra.Command, paths []string, f func(string, expr.Node) (string, error)) ([]string, error) {
	out := make([]string, len(paths))
	grp, ctx := errgroup.WithContext(cmd.Context())
	grp.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			root, err := o.load(path)
			if err != nil {
				return err
			}
			out[i], err = f(path, root)
			return err
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
