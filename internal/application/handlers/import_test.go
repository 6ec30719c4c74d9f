package handlers

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/xungho/internal/domain/mocks"
	"github.com/ersonp/xungho/internal/domain/services"
)

func newImportHandler() (*mocks.FamilyStore, *ImportHandler) {
	store, family := newFamily()
	return store, NewImportHandler(services.NewImportService(store), family)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const treeJSON = `{
  "people": [
    {"id": "cha", "name": "Trần Văn Cha", "gender": "male"},
    {"id": "con", "name": "Trần Văn Con", "gender": "male"}
  ],
  "relationships": [
    {"kind": "parent_child", "person": "cha", "related": "con"}
  ]
}`

func TestImportHandler_Handle_Formats(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		format   string
		wantPpl  int
		wantRels int
	}{
		{"json by extension", "tree.json", treeJSON, "", 2, 1},
		{
			"yaml by extension", "tree.yaml",
			"people:\n  - id: a\n    name: A\n    gender: female\n  - id: b\n    name: B\n    gender: male\nrelationships:\n  - kind: spouse\n    person: a\n    related: b\n",
			"auto", 2, 1,
		},
		{
			"csv by extension", "tree.csv",
			"type,id,name,gender,person,related\nperson,a,A,male,,\nperson,b,B,female,,\nspouse,,,,a,b\n",
			"", 2, 1,
		},
		{"explicit format overrides extension", "tree.txt", treeJSON, "json", 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, h := newImportHandler()
			path := writeFile(t, tt.file, tt.content)

			result, err := h.Handle(context.Background(), path, ImportOptions{Format: tt.format})
			require.NoError(t, err)
			assert.Equal(t, tt.wantPpl, result.People)
			assert.Equal(t, tt.wantRels, result.Relationships)
			assert.Empty(t, result.Errors)
			assert.Len(t, store.People, tt.wantPpl)
		})
	}
}

func TestImportHandler_Handle_DryRun(t *testing.T) {
	store, h := newImportHandler()
	path := writeFile(t, "tree.json", treeJSON)

	result, err := h.Handle(context.Background(), path, ImportOptions{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 2, result.People)
	assert.Empty(t, store.People)
}

func TestImportHandler_Handle_Errors(t *testing.T) {
	_, h := newImportHandler()
	ctx := context.Background()

	_, err := h.Handle(ctx, writeFile(t, "tree.txt", treeJSON), ImportOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")

	_, err = h.Handle(ctx, filepath.Join(t.TempDir(), "missing.json"), ImportOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening file")

	_, err = h.Handle(ctx, writeFile(t, "bad.json", "{"), ImportOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing file")
}

func TestImportHandler_Handle_EmptyFile(t *testing.T) {
	store, h := newImportHandler()

	result, err := h.Handle(context.Background(), writeFile(t, "empty.yaml", ""), ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, result.People)
	assert.Empty(t, store.Audit)
}

func TestImportHandler_ExportRoundTrip(t *testing.T) {
	_, h := newImportHandler()
	ctx := context.Background()
	_, err := h.Handle(ctx, writeFile(t, "tree.json", treeJSON), ImportOptions{})
	require.NoError(t, err)

	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, h.HandleExport(ctx, &buf, format))
			assert.Contains(t, buf.String(), "Trần Văn Cha")

			store, other := newImportHandler()
			result, err := other.Handle(ctx, writeFile(t, "export."+format, buf.String()), ImportOptions{})
			require.NoError(t, err)
			assert.Equal(t, 2, result.People)
			assert.Equal(t, 1, result.Relationships)
			assert.Equal(t, "cha", store.Edges[0].PersonID)
		})
	}

	err = h.HandleExport(ctx, &bytes.Buffer{}, "xml")
	require.Error(t, err)
}
