package favorites

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/recipedia/internal/storage"
	"github.com/alexisbeaulieu97/recipedia/internal/storage/storagetest"
)

func newSet(t *testing.T) (*Set, *storage.Accessor) {
	t.Helper()
	acc := storage.Open(storage.NewMemoryBackend(), nil)
	return New(acc, "", nil), acc
}

func TestNeverMarkedIsNotFavorite(t *testing.T) {
	set, _ := newSet(t)

	for i := 0; i < 50; i++ {
		assert.False(t, set.IsFavorite(fmt.Sprintf("%d", 52700+i)))
	}
	assert.Empty(t, set.IDs())
}

func TestToggleFlipsAndReloads(t *testing.T) {
	set, acc := newSet(t)

	assert.True(t, set.Toggle("52772"))
	assert.True(t, set.IsFavorite("52772"))
	assert.Equal(t, []string{"52772"}, set.IDs())

	value, ok := acc.GetItem("recipedia:favorite:52772")
	require.True(t, ok)
	assert.Equal(t, "true", value)

	assert.False(t, set.Toggle("52772"))
	assert.False(t, set.IsFavorite("52772"))
	assert.Empty(t, set.IDs())

	value, ok = acc.GetItem("recipedia:favorite:52772")
	require.True(t, ok)
	assert.Equal(t, "false", value)
}

func TestTogglePairRestoresState(t *testing.T) {
	ids := []string{"52772", "52806", "53014"}

	for _, preFavorite := range []bool{false, true} {
		for _, id := range ids {
			t.Run(fmt.Sprintf("%s/%v", id, preFavorite), func(t *testing.T) {
				set, acc := newSet(t)
				if preFavorite {
					set.Toggle(id)
				}
				before, beforeOK := acc.GetItem(set.Key(id))
				original := set.IsFavorite(id)

				set.Toggle(id)
				set.Toggle(id)

				assert.Equal(t, original, set.IsFavorite(id))
				after, afterOK := acc.GetItem(set.Key(id))
				if beforeOK {
					require.True(t, afterOK)
					assert.Equal(t, before, after)
				} else {
					// a pair starting from absence leaves an explicit "false"
					assert.Equal(t, "false", after)
				}
			})
		}
	}
}

func TestLoadOnlyKeepsNamespacedTrueMarkers(t *testing.T) {
	acc := storage.Open(storage.NewMemoryBackend(), nil)
	acc.SetItem("recipedia:favorite:1", "true")
	acc.SetItem("recipedia:favorite:2", "false")
	acc.SetItem("recipedia:favorite:3", "TRUE")
	acc.SetItem("recipedia:recentlyviewed", "[]")
	acc.SetItem("other:favorite:4", "true")
	acc.SetItem("favorite:5", "true")

	set := New(acc, "recipedia", nil)
	assert.Equal(t, []string{"1"}, set.IDs())
	assert.Equal(t, 1, set.Len())
}

func TestCustomNamespace(t *testing.T) {
	acc := storage.Open(storage.NewMemoryBackend(), nil)
	set := New(acc, "kitchen", nil)

	set.Toggle("9")
	assert.Equal(t, "kitchen:favorite:9", set.Key("9"))
	_, ok := acc.GetItem("kitchen:favorite:9")
	assert.True(t, ok)
}

func TestFailingStoreNeverPanics(t *testing.T) {
	// the probe fails too, so the accessor degrades to memory
	acc := storage.Open(&storagetest.FailingBackend{}, nil)
	set := New(acc, "", nil)

	assert.False(t, set.IsFavorite("52772"))
	assert.True(t, set.Toggle("52772"))
}

func TestStoreFailingAfterProbe(t *testing.T) {
	backend := &flakyBackend{Backend: storage.NewMemoryBackend()}
	acc := storage.Open(backend, nil)
	require.False(t, acc.Fallback())
	backend.broken = true

	set := New(acc, "", nil)
	require.NotPanics(t, func() {
		assert.False(t, set.IsFavorite("52772"))
		// the write is rejected but the caller still sees the flipped state
		assert.True(t, set.Toggle("52772"))
	})
	assert.Empty(t, set.IDs())
}

func TestPanickingScanYieldsEmptySet(t *testing.T) {
	backend := &flakyBackend{Backend: storage.NewMemoryBackend()}
	acc := storage.Open(backend, nil)
	acc.SetItem("recipedia:favorite:1", "true")

	backend.panics = true
	set := New(acc, "", nil)
	assert.Empty(t, set.IDs())
}

type flakyBackend struct {
	storage.Backend
	broken bool
	panics bool
}

func (f *flakyBackend) check() error {
	if f.panics {
		panic("backend exploded")
	}
	if f.broken {
		return storagetest.ErrUnavailable
	}
	return nil
}

func (f *flakyBackend) Get(key string) (string, bool, error) {
	if err := f.check(); err != nil {
		return "", false, err
	}
	return f.Backend.Get(key)
}

func (f *flakyBackend) Set(key, value string) error {
	if err := f.check(); err != nil {
		return err
	}
	return f.Backend.Set(key, value)
}

func (f *flakyBackend) Keys() ([]string, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	return f.Backend.Keys()
}
