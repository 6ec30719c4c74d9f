package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI with args and returns what it printed to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func mustExecute(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execute(t, args...)
	require.NoError(t, err, "xungho %v", args)
	return out
}

// seedTree creates the ho-tran tree in a fresh working directory:
// Ông Nội -> Bác (1945), Cha (1950); Bác -> Cường; Cha -> An.
func seedTree(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())

	out := mustExecute(t, "trees", "create", "ho-tran", "-d", "Họ Trần", "--region", "bac")
	assert.Contains(t, out, "Initialized xungho")
	assert.Contains(t, out, `Created tree "ho-tran"`)

	for _, args := range [][]string{
		{"Ông Nội", "-g", "male", "--born", "1920-01-01"},
		{"Bác", "-g", "male", "--born", "1945-05-05"},
		{"Cha", "-g", "male", "--born", "1950-01-01"},
		{"Cường", "-g", "male"},
		{"An", "-g", "male", "--birth-order", "1"},
	} {
		mustExecute(t, append([]string{"person", "add"}, args...)...)
	}

	for _, pair := range [][2]string{
		{"Ông Nội", "Bác"},
		{"Ông Nội", "Cha"},
		{"Bác", "Cường"},
		{"Cha", "An"},
	} {
		out := mustExecute(t, "link", "parent", pair[0], pair[1])
		assert.Contains(t, out, "-[parent_child]->")
	}
}

func TestCLI_Who(t *testing.T) {
	seedTree(t)

	out := mustExecute(t, "who", "An", "Cường")
	assert.Contains(t, out, "An → Cường")
	assert.Contains(t, out, "An -parent-> Cha -parent-> Ông Nội -child-> Bác -child-> Cường")
	assert.Contains(t, out, "Side:      paternal")
	assert.Contains(t, out, "An calls Cường: anh họ")
	assert.Contains(t, out, "Cường calls An: em họ")

	out = mustExecute(t, "who", "An", "Cha")
	assert.Contains(t, out, "An calls Cha: cha")
	assert.Contains(t, out, "Cha calls An: con")

	out = mustExecute(t, "who", "An", "Cha", "--region", "nam", "-f", "json")
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "nam", decoded["region"])
	assert.Equal(t, "ba", decoded["terms"].(map[string]any)["a_calls_b"])
}

func TestCLI_WhoErrors(t *testing.T) {
	seedTree(t)
	mustExecute(t, "person", "add", "Người Lạ", "-g", "female")

	out := mustExecute(t, "who", "An", "Người Lạ")
	assert.Contains(t, out, "No relationship found")

	_, err := execute(t, "who", "An", "an")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "same person")

	_, err = execute(t, "who", "An", "Không Ai")
	require.Error(t, err)

	_, err = execute(t, "who", "An", "Cha", "-f", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")

	_, err = execute(t, "link", "parent", "An", "Ông Nội")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "own ancestor")
}

func TestCLI_PersonCommands(t *testing.T) {
	seedTree(t)

	out := mustExecute(t, "person", "list")
	assert.Contains(t, out, "Ông Nội (male, b. 1920-01-01)")
	assert.Contains(t, out, "Showing 5 of 5 people (4 relationships)")

	out = mustExecute(t, "person", "show", "Cha")
	assert.Contains(t, out, "Cha (male, b. 1950-01-01)")
	assert.Contains(t, out, "Relationships:")
	assert.Contains(t, out, "person.added")

	out = mustExecute(t, "links", "Cha")
	assert.Contains(t, out, "Relationships for Cha:")
	assert.Regexp(t, `parent\s+Ông Nội`, out)
	assert.Regexp(t, `child\s+An`, out)

	out = mustExecute(t, "person", "delete", "Cường")
	assert.Contains(t, out, "Deleted Cường")

	out = mustExecute(t, "person", "list", "-s", "ông", "-f", "json")
	var people []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &people))
	require.Len(t, people, 1)
	assert.Equal(t, "Ông Nội", people[0]["name"])

	_, err := execute(t, "person", "add", "Không Giới")
	require.Error(t, err)
}

func TestCLI_ExportImportAcrossTrees(t *testing.T) {
	seedTree(t)

	exported := filepath.Join(t.TempDir(), "ho-tran.yaml")
	out := mustExecute(t, "export", "-f", "yaml", "-o", exported)
	assert.Contains(t, out, "Exported 5 people and 4 relationships")

	mustExecute(t, "trees", "create", "ho-le", "--region", "nam")

	_, err := execute(t, "person", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tree is required")

	out = mustExecute(t, "import", exported, "--tree", "ho-le", "--dry-run")
	assert.Contains(t, out, "Dry run: 5 people and 4 relationships would be imported")

	out = mustExecute(t, "import", exported, "--tree", "ho-le")
	assert.Contains(t, out, "Imported: 5 people, 4 relationships")

	out = mustExecute(t, "history", "--tree", "ho-le")
	assert.Contains(t, out, "tree.imported")
	assert.Contains(t, out, "people=5")

	out = mustExecute(t, "who", "An", "Cha", "--tree", "ho-le")
	assert.Contains(t, out, "An calls Cha: ba")

	out = mustExecute(t, "trees", "list")
	assert.Contains(t, out, "ho-le")
	assert.Contains(t, out, "ho-tran")

	_, err = execute(t, "trees", "delete", "ho-le")
	require.Error(t, err)
	mustExecute(t, "trees", "delete", "ho-le", "--force")

	out = mustExecute(t, "person", "list")
	assert.Contains(t, out, "Showing 5 of 5 people")
}

func TestCLI_NoTrees(t *testing.T) {
	t.Chdir(t.TempDir())

	out := mustExecute(t, "trees")
	assert.Contains(t, out, "No family trees configured.")

	_, err := execute(t, "who", "a", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}
