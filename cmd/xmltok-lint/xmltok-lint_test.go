package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const lintDocument = `<!DOCTYPE r [<!ENTITY who "world"><!-- c -->]>` +
	`<r><a x="1"/>hello &who;</r>`

func TestLint(t *testing.T) {
	var plain bytes.Buffer
	require.NoError(t, lint(context.Background(), &cmdopts{}, strings.NewReader(lintDocument), &plain))
	require.Equal(t, `DocType("r [<!ENTITY who \"world\"><!-- c -->]")
Start(r)
Empty(a)
Text("hello &who;")
End(r)
`, plain.String())

	for _, size := range []int{1, 2, 3, 7, 64} {
		var chunked bytes.Buffer
		require.NoError(t, lint(context.Background(), &cmdopts{ChunkSize: size}, strings.NewReader(lintDocument), &chunked))
		require.Equal(t, plain.String(), chunked.String(), "chunk size %d", size)
	}
}

func TestLintDTD(t *testing.T) {
	var out bytes.Buffer
	opts := &cmdopts{DTD: true, Unescape: true, ExpandEmpty: true}
	require.NoError(t, lint(context.Background(), opts, strings.NewReader(lintDocument), &out))
	require.Equal(t, `DocType("r [<!ENTITY who \"world\"><!-- c -->]")
  Entity <!ENTITY who "world">
  Comment <!-- c -->
Start(r)
Start(a)
End(a)
Text("hello world")
End(r)
`, out.String())
}

func TestLintError(t *testing.T) {
	var out bytes.Buffer
	err := lint(context.Background(), &cmdopts{}, strings.NewReader(`<a></b>`), &out)
	require.Error(t, err)
	require.Equal(t, "Start(a)\n", out.String())
}

func TestRunAllKeepsOrder(t *testing.T) {
	var inputs []input
	for i := range 20 {
		inputs = append(inputs, input{
			name: fmt.Sprintf("doc%d", i),
			r:    strings.NewReader(fmt.Sprintf("<doc%d/>", i)),
		})
	}
	results := make([]result, len(inputs))
	require.NoError(t, runAll(context.Background(), &cmdopts{Jobs: 4}, inputs, results))

	for i, res := range results {
		require.NoError(t, res.err)
		require.Equal(t, fmt.Sprintf("Empty(doc%d)\n", i), res.out.String())
	}
}
