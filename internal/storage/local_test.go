package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func TestLocalSource_List(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"b_resume.pdf":  "%PDF",
		"a_resume.docx": "PK",
		"notes.txt":     "text",
		"photo.png":     "png",
		".DS_Store":     "junk",
	})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.pdf"), 0o755))

	src, err := NewLocalSource(dir)
	require.NoError(t, err)

	objects, err := src.List(context.Background())
	require.NoError(t, err)

	var names []string
	for _, o := range objects {
		names = append(names, o.Name)
	}
	assert.Equal(t, []string{"a_resume.docx", "b_resume.pdf", "notes.txt"}, names)
	assert.Equal(t, int64(4), objects[1].Size)
	assert.Equal(t, dir, src.String())
}

func TestLocalSource_Read(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"cv.txt": "Jane Doe"})
	src, err := NewLocalSource(dir)
	require.NoError(t, err)

	data, err := src.Read(context.Background(), "cv.txt")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", string(data))

	_, err = src.Read(context.Background(), "../cv.txt")
	assert.Error(t, err)

	_, err = src.Read(context.Background(), "missing.txt")
	assert.Error(t, err)
}

func TestNewLocalSource_Errors(t *testing.T) {
	_, err := NewLocalSource(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	_, err = NewLocalSource(file)
	assert.ErrorContains(t, err, "not a directory")
}

func TestOpen_LocalDirectory(t *testing.T) {
	dir := t.TempDir()
	src, err := Open(context.Background(), dir, Options{})
	require.NoError(t, err)
	assert.IsType(t, &LocalSource{}, src)
}

func TestLoadDocuments(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"one.txt": "first", "two.md": "second"})
	src, err := NewLocalSource(dir)
	require.NoError(t, err)

	docs, err := LoadDocuments(context.Background(), src, nil)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "one.txt", docs[0].SourceID)
	assert.Equal(t, "first", string(docs[0].Data))
	assert.NoError(t, docs[0].Err)
	assert.Equal(t, "two.md", docs[1].SourceID)
}
