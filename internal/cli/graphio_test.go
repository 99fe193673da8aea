package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadEdgeList(t *testing.T) {
	path := writeFile(t, "g.txt", `
# a triangle with a pendant
a b
b c
c a   # closing edge

c d
lonely
`)
	ng, err := readEdgeList(path)
	require.NoError(t, err)
	assert.Equal(t, 6, ng.g.NumNodes())
	assert.Equal(t, 4, ng.g.NumEdges())
	assert.Equal(t, "a", ng.label(ng.ids["a"]))
	assert.Equal(t, 3, ng.g.Degree(ng.ids["c"]))
	assert.Equal(t, 0, ng.g.Degree(ng.ids["lonely"]))
}

func TestReadEdgeList_Errors(t *testing.T) {
	_, err := readEdgeList(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)

	_, err = readEdgeList(writeFile(t, "bad.txt", "a b c\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 'u v'")

	_, err = readEdgeList(writeFile(t, "empty.txt", "# nothing\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty graph")
}

func TestToDOT(t *testing.T) {
	ng, err := readEdgeList(writeFile(t, "g.txt", "a b\nb c\n"))
	require.NoError(t, err)

	dot := toDOT(ng)
	assert.True(t, strings.HasPrefix(dot, "graph G {"))
	assert.Contains(t, dot, `"a" -- "b";`)
	assert.Contains(t, dot, `"b" -- "c";`)
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, formatDOT, cfg.Format)

	path := writeFile(t, "cfg.toml", `
format = "svg"

[certificate]
limit = 4
bundles = true
`)
	cfg, err = loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, formatSVG, cfg.Format)
	assert.Equal(t, 4, cfg.Certificate.Limit)
	assert.True(t, cfg.Certificate.Bundles)

	_, err = loadConfig(writeFile(t, "bad.toml", `format = "png"`))
	assert.Error(t, err)
}
