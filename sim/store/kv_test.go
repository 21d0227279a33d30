package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openBackends returns one fresh instance of every backend.
func openBackends(t *testing.T) map[string]KV {
	t.Helper()
	dir := t.TempDir()
	backends := make(map[string]KV)
	for _, tc := range []struct{ name, path string }{
		{BackendMemory, ""},
		{BackendFile, filepath.Join(dir, "files")},
		{BackendSQLite, filepath.Join(dir, "db", "lemove.db")},
	} {
		kv, err := Open(tc.name, tc.path)
		require.NoError(t, err, tc.name)
		t.Cleanup(func() { _ = kv.Close() })
		backends[tc.name] = kv
	}
	return backends
}

func TestKV_GetMissingKey(t *testing.T) {
	for name, kv := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			v, ok, err := kv.Get(MoveKey)
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Nil(t, v)
		})
	}
}

func TestKV_SetThenGet_OverwritesPreviousValue(t *testing.T) {
	for name, kv := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			// GIVEN a key written twice
			require.NoError(t, kv.Set(RecordsKey, []byte("first")))
			require.NoError(t, kv.Set(RecordsKey, []byte("second")))

			// THEN the last value wins
			v, ok, err := kv.Get(RecordsKey)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "second", string(v))
		})
	}
}

func TestKV_CloseIsIdempotent(t *testing.T) {
	for name, kv := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, kv.Close())
			assert.NoError(t, kv.Close())
		})
	}
}

func TestMemoryKV_ReturnsCopies(t *testing.T) {
	kv := NewMemoryKV()
	value := []byte("abc")
	require.NoError(t, kv.Set("k", value))
	value[0] = 'x'

	got, _, err := kv.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'y'
	again, _, _ := kv.Get("k")
	assert.Equal(t, "abc", string(again))
}

func TestFileKV_PersistsAcrossInstances(t *testing.T) {
	// GIVEN a value written by one FileKV
	dir := t.TempDir()
	first, err := NewFileKV(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set(MoveKey, []byte("payload")))

	// WHEN a new FileKV opens the same directory
	second, err := NewFileKV(dir)
	require.NoError(t, err)

	// THEN the value is there
	v, ok, err := second.Get(MoveKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "payload", string(v))
}

func TestFileKV_RejectsUnsafeKeys(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	require.NoError(t, err)
	for _, key := range []string{"", "..", "a/b", "../escape"} {
		assert.Error(t, kv.Set(key, []byte("x")), "key %q", key)
		_, _, err := kv.Get(key)
		assert.Error(t, err, "key %q", key)
	}
}

func TestSQLiteKV_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	first, err := NewSQLiteKV(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(RecordsKey, []byte("[]")))
	require.NoError(t, first.Close())

	second, err := NewSQLiteKV(path)
	require.NoError(t, err)
	defer second.Close()
	v, ok, err := second.Get(RecordsKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", string(v))
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open("postgres", "")
	assert.ErrorIs(t, err, ErrUnknownBackend)
	assert.False(t, IsValidBackend("postgres"))
	assert.True(t, IsValidBackend(BackendSQLite))
}

func TestOpen_EmptyPathRejected(t *testing.T) {
	_, err := Open(BackendFile, "")
	assert.Error(t, err)
	_, err = Open(BackendSQLite, "")
	assert.Error(t, err)
}
