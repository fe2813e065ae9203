package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func backends(t *testing.T) map[string]Store {
	t.Helper()
	fs, err := NewFileStore(filepath.Join(t.TempDir(), "store"))
	require.NoError(t, err)
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fs,
	}
}

func TestStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.Get(ctx, "auth_token:42")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, SetString(ctx, s, "auth_token:42", "abc"))
			v, err := GetString(ctx, s, "auth_token:42")
			require.NoError(t, err)
			assert.Equal(t, "abc", v)

			require.NoError(t, s.Delete(ctx, "auth_token:42"))
			require.NoError(t, s.Delete(ctx, "auth_token:42"))
			v, err = GetString(ctx, s, "auth_token:42")
			require.NoError(t, err)
			assert.Empty(t, v)
		})
	}
}

func TestReadWriteList(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			list, err := ReadList[item](ctx, s, "items")
			require.NoError(t, err)
			assert.NotNil(t, list)
			assert.Empty(t, list)

			want := []item{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}}
			require.NoError(t, WriteList(ctx, s, "items", want))

			got, err := ReadList[item](ctx, s, "items")
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestReadList_CorruptReadsEmpty(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, "items", []byte("{oops")))

	got, err := ReadList[item](ctx, s, "items")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileStore_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set(context.Background(), "bookings", []byte("[]")))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "bookings.json", entries[0].Name())
}
