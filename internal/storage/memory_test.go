package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySnapshots(t *testing.T) {
	s := NewMemorySnapshots()

	t.Run("missing key", func(t *testing.T) {
		_, err := s.Get(KeyDashboards)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("put then get returns a copy", func(t *testing.T) {
		blob := []byte(`{"services":[]}`)
		require.NoError(t, s.Put(KeyServices, blob))

		got, err := s.Get(KeyServices)
		require.NoError(t, err)
		assert.Equal(t, blob, got)

		// Mutating the returned blob must not leak into the store.
		got[0] = 'X'
		again, err := s.Get(KeyServices)
		require.NoError(t, err)
		assert.Equal(t, blob, again)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, s.Put(KeyAuth, []byte("one")))
		require.NoError(t, s.Put(KeyAuth, []byte("two")))
		got, err := s.Get(KeyAuth)
		require.NoError(t, err)
		assert.Equal(t, []byte("two"), got)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Put(KeyAuth, []byte("x")))
		require.NoError(t, s.Delete(KeyAuth))
		_, err := s.Get(KeyAuth)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
