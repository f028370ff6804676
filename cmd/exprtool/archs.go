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
	"slices"

	"github.com/spf13/cobra"

	"github.com/rdecomp/exprtree/arch"
	"github.com/rdecomp/exprtree/internal/ext/iterx"
)

func newArchsCmd() *cobra.Command {
	var long bool
	cmd := &cobra.Command{
		Use:   "archs",
		Short: "List the builtin register tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			for _, name := range arch.Names() {
				regs, err := arch.Builtin(name)
				if err != nil {
					return err
				}
				if !long {
					fmt.Fprintf(w, "%-8s %d registers, %d flags\n", name, len(regs.Registers), len(regs.Flags))
					continue
				}
				fmt.Fprintf(w, "%s\n  registers: %s\n  flags: %s\n", name,
					iterx.Join(slices.Values(regs.Registers), " "),
					iterx.Join(slices.Values(regs.Flags), " "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&long, "long", "l", false, "Also list register and flag names")
	return cmd
}
