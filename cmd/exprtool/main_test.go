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
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdecomp/exprtree/arch"
	"github.com/rdecomp/exprtree/expr"
	"github.com/rdecomp/exprtree/exprwire"
)

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "plain",
			args: []string{"render", "testdata/call.pbs"},
			want: "sub_401000(0x402000)\n",
		},
		{
			name: "symbols",
			args: []string{"render", "--symbols", "testdata/symbols.yaml", "testdata/call.pbs"},
			want: "main(\"hello, world\")\n",
		},
		{
			name: "truncated",
			args: []string{"render", "--symbols", "testdata/symbols.yaml", "--max-string-width", "6", "testdata/call.pbs"},
			want: "main(\"hello…\")\n",
		},
		{
			name: "several",
			args: []string{"render", "--symbols", "testdata/symbols.yaml", "testdata/call.pbs", "testdata/offset.pbs"},
			want: "testdata/call.pbs: main(\"hello, world\")\n" +
				"testdata/offset.pbs: *(esp@1 + 4 - 12 + main)\n",
		},
		{
			name: "arch-file",
			args: []string{"render", "--arch-file", "testdata/toy.yaml", "testdata/offset.pbs"},
			want: "*(sp@1 + 4 - 12 + 0x401000)\n",
		},
		{
			name: "x86-64",
			args: []string{"render", "--arch", "x86-64", "testdata/offset.pbs"},
			want: "*(rsp@1 + 4 - 12 + 0x401000)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, _, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRenderBinary(t *testing.T) {
	t.Parallel()

	tree := expr.NewTree(nil)
	root := tree.Assign(tree.NewRegister(expr.Reg(0).At(1)), tree.NewUnary(expr.OpParity, tree.NewRegister(expr.Reg(1))))
	path := filepath.Join(t.TempDir(), "tree.pb")
	require.NoError(t, os.WriteFile(path, exprwire.Encode(root), 0o644))

	out, _, err := run(t, "render", path)
	require.NoError(t, err)
	assert.Equal(t, "eax@1 = PARITY(ecx)\n", out)

	// Protoscope text is recognized by extension, or by flag.
	text := filepath.Join(t.TempDir(), "tree.txt")
	require.NoError(t, os.WriteFile(text, []byte("1: 3 6: 7"), 0o644))
	out, _, err = run(t, "render", "--protoscope", text)
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)
}

func TestWalk(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, "walk", "--symbols", "testdata/symbols.yaml", "testdata/call.pbs")
	require.NoError(t, err)
	assert.Equal(t, "Literal: main\n"+
		"Literal: \"hello, world\"\n"+
		"Call: main(\"hello, world\")\n", out)

	out, _, err = run(t, "walk", "--kind", "register,binary", "testdata/offset.pbs")
	require.NoError(t, err)
	assert.Equal(t, "Register: esp@1\n"+
		"Binary: esp@1 + 4\n"+
		"Binary: esp@1 + 4 - 12\n"+
		"Binary: esp@1 + 4 - 12 + 0x401000\n", out)

	_, _, err = run(t, "walk", "testdata/call.pbs", "testdata/offset.pbs")
	require.Error(t, err)
}

func TestFold(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "folded.pb")
	out, _, err := run(t, "fold", "-o", path, "testdata/offset.pbs")
	require.NoError(t, err)
	assert.Equal(t, "*(esp@1 + 0x400ff8)\n", out)

	out, _, err = run(t, "render", path)
	require.NoError(t, err)
	assert.Equal(t, "*(esp@1 + 0x400ff8)\n", out)
}

func TestFoldOffsets(t *testing.T) {
	t.Parallel()

	tree := expr.NewTree(nil)
	esp := func() expr.Node { return tree.NewRegister(expr.Reg(4)) }
	lit := tree.NewLiteral

	// The root itself folds away.
	root := tree.Sub(tree.Add(tree.Sub(esp(), lit(8)), lit(2)), lit(4))
	got, folds := foldOffsets(root)
	assert.Equal(t, 2, folds)
	assert.Equal(t, "esp - 10", got.String())
	assert.True(t, got.IsRoot())

	// Non-literal offsets are left alone.
	root = tree.Add(tree.Add(esp(), tree.NewRegister(expr.Reg(0))), lit(1))
	got, folds = foldOffsets(root)
	assert.Zero(t, folds)
	assert.Equal(t, root, got)
	assert.Equal(t, "esp + eax + 1", got.String())

	root = tree.Deref(tree.NewUnary(expr.OpNeg, tree.Add(esp(), lit(1))))
	got, folds = foldOffsets(root)
	assert.Zero(t, folds)
	assert.Equal(t, "*(-(esp + 1))", got.String())
}

func TestArchs(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, "archs")
	require.NoError(t, err)
	assert.Equal(t, "x86      8 registers, 9 flags\n"+
		"x86-64   16 registers, 9 flags\n", out)

	out, _, err = run(t, "archs", "-l")
	require.NoError(t, err)
	assert.Contains(t, out, "x86\n  registers: eax ecx edx ebx esp ebp esi edi\n  flags: cf pf af zf sf tf if df of\n")
}

func TestVerbose(t *testing.T) {
	t.Parallel()

	_, stderr, err := run(t, "render", "testdata/call.pbs")
	require.NoError(t, err)
	assert.Empty(t, stderr)

	_, stderr, err = run(t, "-v", "render", "--symbols", "testdata/symbols.yaml", "testdata/call.pbs")
	require.NoError(t, err)
	assert.Contains(t, stderr, "loaded register table")
	assert.Contains(t, stderr, "loaded symbols")
	assert.Contains(t, stderr, "decoded tree")
}

func TestErrors(t *testing.T) {
	t.Parallel()

	_, _, err := run(t, "render", "--arch", "z80", "testdata/call.pbs")
	require.ErrorIs(t, err, arch.ErrUnknownArch)

	_, _, err = run(t, "render", "testdata/missing.pb")
	require.Error(t, err)

	_, _, err = run(t, "render", "--symbols", "testdata/missing.yaml", "testdata/call.pbs")
	require.Error(t, err)

	_, _, err = run(t, "render")
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.pb")
	require.NoError(t, os.WriteFile(path, []byte{0x08, 0x63}, 0o644))
	_, _, err = run(t, "render", path)
	require.ErrorIs(t, err, exprwire.ErrMalformed)
}
