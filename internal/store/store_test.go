package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPutGetRoundTrip(t *testing.T) {
	s := openTestStore(t)

	type record struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, s.Put("k", record{Name: "asha", Count: 3}))

	var got record
	ok, err := s.Get("k", &got)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, record{Name: "asha", Count: 3}, got)
}

func TestGetAbsentKey(t *testing.T) {
	s := openTestStore(t)

	var got map[string]any
	ok, err := s.Get("missing", &got)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMalformedValueTreatedAsAbsent(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.PutRaw("corrupt", "{not json"))

	var got map[string]any
	ok, err := s.Get("corrupt", &got)
	require.NoError(t, err)
	require.False(t, ok)

	// The corrupt entry is discarded, so a later CAS sees an absent key.
	applied, err := s.PutCAS("corrupt", map[string]string{"a": "b"}, 0)
	require.NoError(t, err)
	require.True(t, applied)
}

func TestCompareAndSwap(t *testing.T) {
	s := openTestStore(t)

	applied, err := s.PutCAS("orders", []string{"first"}, 0)
	require.NoError(t, err)
	require.True(t, applied)

	var orders []string
	version, ok, err := s.GetVersioned("orders", &orders)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"first"}, orders)

	// A write with a stale version must lose.
	applied, err = s.PutCAS("orders", []string{"stale"}, version+1)
	require.NoError(t, err)
	require.False(t, applied)

	applied, err = s.PutCAS("orders", []string{"second", "first"}, version)
	require.NoError(t, err)
	require.True(t, applied)

	_, ok, err = s.GetVersioned("orders", &orders)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"second", "first"}, orders)
}

func TestCreateOnlyCASRejectsExisting(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Put("k", "v"))

	applied, err := s.PutCAS("k", "other", 0)
	require.NoError(t, err)
	require.False(t, applied)
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Put("k", "v"))
	require.NoError(t, s.Delete("k"))
	require.NoError(t, s.Delete("k"))

	var got string
	ok, err := s.Get("k", &got)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDurableAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bazaar.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Put("k", "survives"))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	var got string
	ok, err := s.Get("k", &got)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "survives", got)
}
