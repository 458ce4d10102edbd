// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmdline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		args    []string
		want    Specs
		wantErr error
	}{
		{
			name: "three simple commands",
			args: []string{"echo", "hello", ":", "cat", ":", "cat"},
			want: Specs{
				Head: CommandSpec{Path: "echo", Args: []string{"hello"}},
				LegA: CommandSpec{Path: "cat", Args: []string{}},
				LegB: CommandSpec{Path: "cat", Args: []string{}},
			},
		},
		{
			name: "arguments with flags stay verbatim",
			args: []string{"ls", "-l", "/tmp", ":", "grep", "-v", "foo", ":", "wc", "-c"},
			want: Specs{
				Head: CommandSpec{Path: "ls", Args: []string{"-l", "/tmp"}},
				LegA: CommandSpec{Path: "grep", Args: []string{"-v", "foo"}},
				LegB: CommandSpec{Path: "wc", Args: []string{"-c"}},
			},
		},
		{
			name: "extra delimiters belong to the third command",
			args: []string{"a", ":", "b", ":", "c", ":", "d"},
			want: Specs{
				Head: CommandSpec{Path: "a", Args: []string{}},
				LegA: CommandSpec{Path: "b", Args: []string{}},
				LegB: CommandSpec{Path: "c", Args: []string{":", "d"}},
			},
		},
		{
			name:    "empty argument list",
			args:    []string{},
			wantErr: ErrNoCommands,
		},
		{
			name:    "no delimiter",
			args:    []string{"echo", "hello"},
			wantErr: ErrOneCommand,
		},
		{
			name:    "one delimiter",
			args:    []string{"echo", "hello", ":", "cat"},
			wantErr: ErrTwoCommands,
		},
		{
			name:    "empty first segment",
			args:    []string{":", "cat", ":", "cat"},
			wantErr: ErrEmptySegment,
		},
		{
			name:    "empty second segment",
			args:    []string{"echo", ":", ":", "cat"},
			wantErr: ErrEmptySegment,
		},
		{
			name:    "empty trailing segment",
			args:    []string{"echo", ":", "cat", ":"},
			wantErr: ErrEmptySegment,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			specs, err := Parse(tc.args)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, specs)
		})
	}
}

func TestParse_CloneIsolation(t *testing.T) {
	t.Parallel()

	args := []string{"echo", "hello", ":", "cat", ":", "cat"}

	specs, err := Parse(args)
	require.NoError(t, err)

	args[1] = "mutated"
	assert.Equal(t, []string{"hello"}, specs.Head.Args, "parsed spec must not alias the input slice")
}

func TestCommandSpec_Argv(t *testing.T) {
	t.Parallel()

	spec := CommandSpec{Path: "grep", Args: []string{"-v", "foo"}}
	assert.Equal(t, []string{"grep", "-v", "foo"}, spec.Argv())

	spec = CommandSpec{Path: "cat"}
	assert.Equal(t, []string{"cat"}, spec.Argv())
}
