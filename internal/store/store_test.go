package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewLocalStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Put("k", []byte(`[{"title":"Heat"}]`)))
	require.NoError(t, s.Close())

	reopened, err := NewLocalStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, ok, err := reopened.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"title":"Heat"}]`, string(got))
}

func TestLocalStore_MissingKey(t *testing.T) {
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	got, ok, err := s.Get("absent")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestLocalStore_Delete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Put("k", []byte("v")))
	require.NoError(t, s.Delete("k"))
	require.NoError(t, s.Delete("never-written"))

	_, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, s.Close())

	reopened, err := NewLocalStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	_, ok, err = reopened.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalStore_ReturnsCopies(t *testing.T) {
	s, err := NewLocalStore("")
	require.NoError(t, err)

	value := []byte("abc")
	require.NoError(t, s.Put("k", value))
	value[0] = 'z'

	got, _, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'z'
	again, _, _ := s.Get("k")
	assert.Equal(t, "abc", string(again))
}

func TestLocalStore_MemoryOnly(t *testing.T) {
	s, err := NewLocalStore("")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Put("k", []byte("v")))
	got, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", string(got))
}
