// Package favorites derives the favorited recipe set from namespaced markers
// in the key/value store.
package favorites

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/alexisbeaulieu97/recipedia/internal/logger"
	"github.com/alexisbeaulieu97/recipedia/internal/ports"
	"github.com/alexisbeaulieu97/recipedia/internal/storage"
)

// DefaultNamespace prefixes every key Recipedia writes.
const DefaultNamespace = "recipedia"

const (
	markerTrue  = "true"
	markerFalse = "false"
)

// Set tracks favorited recipe ids. Each favorite is persisted as its own marker
// key; the id list is rebuilt by scanning keys with the favorite prefix.
type Set struct {
	store  *storage.Accessor
	prefix string
	logger ports.Logger

	mu  sync.RWMutex
	ids []string
}

// New builds a Set over store and loads the current favorites.
func New(store *storage.Accessor, namespace string, log ports.Logger) *Set {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	s := &Set{
		store:  store,
		prefix: namespace + ":favorite:",
		logger: logger.OrNoOp(log).With("component", "favorites"),
	}
	s.Load()
	return s
}

// Key returns the marker key for id.
func (s *Set) Key(id string) string {
	return s.prefix + id
}

// IsFavorite reports whether id is marked favorite. Read failures count as not
// favorite.
func (s *Set) IsFavorite(id string) bool {
	value, ok := s.store.GetItem(s.Key(id))
	return ok && value == markerTrue
}

// Toggle flips the marker for id, reloads the derived id list and returns the
// new state. When the store rejects the write the negated state is still
// returned so the caller can update its display.
func (s *Set) Toggle(id string) bool {
	next := !s.IsFavorite(id)

	value := markerFalse
	if next {
		value = markerTrue
	}
	s.store.SetItem(s.Key(id), value)
	s.Load()

	s.logger.Debug(context.Background(), "favorite toggled", "recipe_id", id, "favorite", next)
	return next
}

// Load rebuilds the id list from every key carrying the favorite prefix whose
// value is exactly "true". Any failure leaves an empty set.
func (s *Set) Load() {
	ids, err := s.scan()
	if err != nil {
		s.logger.Warn(context.Background(), "failed to load favorites", "error", err)
		ids = nil
	}

	s.mu.Lock()
	s.ids = ids
	s.mu.Unlock()
}

func (s *Set) scan() (ids []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			ids, err = nil, fmt.Errorf("scan panicked: %v", r)
		}
	}()

	for _, key := range s.store.Keys() {
		if !strings.HasPrefix(key, s.prefix) {
			continue
		}
		value, ok := s.store.GetItem(key)
		if !ok || value != markerTrue {
			continue
		}
		ids = append(ids, strings.TrimPrefix(key, s.prefix))
	}
	sort.Strings(ids)
	return ids, nil
}

// IDs returns the favorited ids. The order carries no meaning.
func (s *Set) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len returns the number of favorites.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}
