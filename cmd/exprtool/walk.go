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
	"strings"

	"github.com/spf13/cobra"

	"github.com/rdecomp/exprtree/expr"
	"github.com/rdecomp/exprtree/internal/ext/iterx"
)

func newWalkCmd(o *options) *cobra.Command {
	var kinds []string
	cmd := &cobra.Command{
		Use:   "walk <file>",
		Short: "List every node of a tree in post-order",
		Long: `The walk command prints one line per node, operands before the nodes
that use them, giving the node's kind and its rendering.

Example:
  exprtool walk tree.pb
  exprtool walk --kind Register,Flag tree.pb`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := o.load(args[0])
			if err != nil {
				return err
			}
			nodes := root.All()
			if len(kinds) > 0 {
				nodes = iterx.Filter(nodes, func(n expr.Node) bool { return matchKind(kinds, n.Kind()) })
			}
			lines := iterx.Map(nodes, func(n expr.Node) string {
				return fmt.Sprintf("%v: %s", n.Kind(), o.printer.Print(n))
			})
			for line := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&kinds, "kind", nil, "Only list nodes of these kinds")
	return cmd
}

func matchKind(kinds []string, k expr.Kind) bool {
	for _, name := range kinds {
		if strings.EqualFold(name, k.String()) {
			return true
		}
	}
	return false
}
