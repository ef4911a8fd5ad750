package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSelectsBackend(t *testing.T) {
	a, err := New(context.Background(), Options{Kind: "none"})
	require.NoError(t, err)
	assert.Nil(t, a)

	a, err = New(context.Background(), Options{Kind: "LOCAL", Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &Local{}, a)

	_, err = New(context.Background(), Options{Kind: "ftp"})
	assert.Error(t, err)

	_, err = New(context.Background(), Options{Kind: "gcs"})
	assert.Error(t, err)

	_, err = New(context.Background(), Options{Kind: "s3", S3Bucket: "informes"})
	assert.Error(t, err)
}

func TestLocalPut(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(dir)
	require.NoError(t, err)

	name := ObjectName(2026, "R-20260001_M-3209.pdf")
	loc, err := l.Put(context.Background(), name, "application/pdf", []byte("%PDF-1.3"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "reports", "2026", "R-20260001_M-3209.pdf"), loc)

	data, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(data))
}

func TestLocalPutStaysInsideDir(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(dir)
	require.NoError(t, err)

	loc, err := l.Put(context.Background(), "../../etc/passwd", "text/plain", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "etc", "passwd"), loc)
}
