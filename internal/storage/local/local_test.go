package local

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopnest/marketplace/internal/storage"
)

func TestStorage_Upload(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir, "http://localhost:8080/uploads/")
	require.NoError(t, err)

	result, err := s.Upload(context.Background(), &storage.UploadInput{
		Filename:    "Chair.JPG",
		ContentType: "image/jpeg",
		Size:        5,
		Data:        strings.NewReader("hello"),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(result.Key, ".jpg"))
	assert.Equal(t, "http://localhost:8080/uploads/"+result.Key, result.URL)

	data, err := os.ReadFile(filepath.Join(dir, result.Key))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestStorage_Upload_UniqueKeys(t *testing.T) {
	s, err := New(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	r1, err := s.Upload(context.Background(), &storage.UploadInput{
		Filename: "a.png", Data: strings.NewReader("one"),
	})
	require.NoError(t, err)

	r2, err := s.Upload(context.Background(), &storage.UploadInput{
		Filename: "a.png", Data: strings.NewReader("two"),
	})
	require.NoError(t, err)

	assert.NotEqual(t, r1.Key, r2.Key)
}

func TestStorage_Delete(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir, "http://localhost:8080/uploads")
	require.NoError(t, err)

	result, err := s.Upload(context.Background(), &storage.UploadInput{
		Filename: "a.png", Data: strings.NewReader("one"),
	})
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), result.Key))

	_, err = os.Stat(filepath.Join(dir, result.Key))
	assert.True(t, os.IsNotExist(err))
}

func TestStorage_Delete_Missing(t *testing.T) {
	s, err := New(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	assert.NoError(t, s.Delete(context.Background(), "no-such-file.png"))
}

func TestStorage_Delete_RejectsPathTraversal(t *testing.T) {
	s, err := New(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	assert.Error(t, s.Delete(context.Background(), "../etc/passwd"))
	assert.Error(t, s.Delete(context.Background(), ""))
}
