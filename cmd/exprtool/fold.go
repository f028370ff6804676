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
	"os"

	"github.com/spf13/cobra"

	"github.com/rdecomp/exprtree/expr"
	"github.com/rdecomp/exprtree/exprwire"
)

func newFoldCmd(o *options) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "fold <file>",
		Short: "Merge chains of constant offsets",
		Long: `The fold command rewrites (x + c1) + c2 into x + (c1 + c2), and likewise for
subtraction, then prints the result.

Example:
  exprtool fold tree.pb
  exprtool fold -o folded.pb tree.pb`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := o.load(args[0])
			if err != nil {
				return err
			}
			root, folds := foldOffsets(root)
			o.log.Debug("folded offsets", "file", args[0], "folds", folds)

			if output != "" {
				if err := os.WriteFile(output, exprwire.Encode(root), 0o644); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), o.printer.Print(root))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Also write the folded tree to this file")
	return cmd
}

// foldOffsets merges nested additions and subtractions of literals in the
// subtree rooted at root. It returns the new root, which differs from root
// if root itself was folded away, and the number of folds made.
func foldOffsets(root expr.Node) (expr.Node, int) {
	var folds int
	for n := range root.All() {
		if !isOffset(n) || !isOffset(n.Left()) {
			continue
		}
		inner := n.Left()

		if n.Is(expr.OpAdd) {
			inner.FoldAdd(n.Right())
		} else {
			inner.FoldSub(n.Right())
		}
		n.SetOperand(0, expr.Node{})
		if n == root {
			root = inner
		} else {
			n.Replace(inner)
		}
		folds++
	}
	return root, folds
}

// isOffset returns whether n is x + c or x - c for a literal c.
func isOffset(n expr.Node) bool {
	return (n.Is(expr.OpAdd) || n.Is(expr.OpSub)) && n.Right().Kind() == expr.KindLiteral
}
