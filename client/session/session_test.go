package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.yaml")
	f := NewFile(path)

	empty, err := f.Load()
	require.NoError(t, err)
	assert.Nil(t, empty.User)
	assert.Empty(t, empty.Token)

	name := "Técnico Prueba"
	want := Data{User: &User{ID: "u1", Username: "Prueba 1", Role: "technician", FullName: &name}, Token: "jwt"}
	require.NoError(t, f.Save(want))

	got, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFileUsesTwoKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, NewFile(path).Save(Data{User: &User{ID: "u1", Username: "Prueba 1"}, Token: "jwt"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(raw, &doc))
	assert.Len(t, doc, 2)
	assert.Contains(t, doc, "auth_user")
	assert.Contains(t, doc, "auth_token")
}

func TestFileClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	f := NewFile(path)
	require.NoError(t, f.Save(Data{Token: "jwt"}))
	require.NoError(t, f.Clear())
	require.NoError(t, f.Clear())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestDisplayName(t *testing.T) {
	u := &User{Username: "Prueba 1"}
	assert.Equal(t, "Prueba 1", u.DisplayName())
	full := "Ana Técnica"
	u.FullName = &full
	assert.Equal(t, "Ana Técnica", u.DisplayName())
}
