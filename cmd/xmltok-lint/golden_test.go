package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestLintGolden compares the output of xmltok-lint --dtd for every .xml
// file in testdata/ with the .events file next to it.
//
// XMLTOK_LINT_TEST_FILES restricts the run to the named files:
//
//	XMLTOK_LINT_TEST_FILES=basic.xml go test -run TestLintGolden
func TestLintGolden(t *testing.T) {
	only := map[string]struct{}{}
	if v := os.Getenv("XMLTOK_LINT_TEST_FILES"); v != "" {
		for _, f := range strings.Split(v, ",") {
			only[strings.TrimSpace(f)] = struct{}{}
		}
	}

	const dir = "testdata"
	files, err := os.ReadDir(dir)
	require.NoError(t, err, "os.ReadDir should succeed")

	for _, fi := range files {
		if fi.IsDir() || !strings.HasSuffix(fi.Name(), ".xml") {
			continue
		}
		if len(only) > 0 {
			if _, ok := only[fi.Name()]; !ok {
				continue
			}
		}

		fn := filepath.Join(dir, fi.Name())
		goldenfn := strings.TrimSuffix(fn, ".xml") + ".events"
		golden, err := os.ReadFile(goldenfn)
		if err != nil {
			t.Logf("%s does not exist, skipping...", goldenfn)
			continue
		}

		t.Run(fi.Name(), func(t *testing.T) {
			input, err := os.ReadFile(fn)
			require.NoError(t, err, "os.ReadFile should succeed for input file")

			for _, chunkSize := range []int{0, 1, 5} {
				var output bytes.Buffer
				opts := &cmdopts{DTD: true, ChunkSize: chunkSize}
				require.NoError(t, lint(context.Background(), opts, bytes.NewReader(input), &output))
				require.Equal(t, string(golden), output.String(), "output should match %s (chunk size %d)", goldenfn, chunkSize)
			}
		})
	}
}
