package filestore

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Store(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir, 1024)

	rel, err := s.Store(context.Background(), "payments", "receipt.PNG", bytes.NewReader([]byte("png-bytes")))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "payments/"))
	assert.True(t, strings.HasSuffix(rel, ".png"))

	content, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(content))

	require.NoError(t, s.Remove(rel))
	require.NoError(t, s.Remove(rel))
}

func TestLocalStore_Rejects(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir, 4)

	_, err := s.Store(context.Background(), "payments", "script.exe", bytes.NewReader([]byte("x")))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = s.Store(context.Background(), "payments", "proof.pdf", bytes.NewReader([]byte("too large")))
	assert.ErrorIs(t, err, ErrTooLarge)

	entries, err := os.ReadDir(filepath.Join(dir, "payments"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
