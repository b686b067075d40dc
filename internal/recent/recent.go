// Package recent keeps the capped list of recently viewed recipes.
package recent

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/alexisbeaulieu97/recipedia/internal/logger"
	"github.com/alexisbeaulieu97/recipedia/internal/ports"
	"github.com/alexisbeaulieu97/recipedia/internal/storage"
)

// Capacity is the maximum number of remembered recipes.
const Capacity = 4

// Entry is the summary remembered for a viewed recipe.
type Entry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// List persists entries newest first as a JSON array under a single key.
type List struct {
	store  *storage.Accessor
	key    string
	logger ports.Logger
	mu     sync.Mutex
}

// New returns the list stored under "<namespace>:recentlyviewed".
func New(store *storage.Accessor, namespace string, log ports.Logger) *List {
	if namespace == "" {
		namespace = "recipedia"
	}
	return &List{
		store:  store,
		key:    namespace + ":recentlyviewed",
		logger: logger.OrNoOp(log).With("component", "recent"),
	}
}

// Key returns the storage key holding the list.
func (l *List) Key() string {
	return l.key
}

// Record remembers a viewed recipe. An id already on the list leaves the list
// untouched, including its order; otherwise the entry goes to the front and the
// oldest entry beyond Capacity is dropped.
func (l *List) Record(entry Entry) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := l.read()
	for _, existing := range entries {
		if existing.ID == entry.ID {
			return entries
		}
	}

	entries = append([]Entry{entry}, entries...)
	if len(entries) > Capacity {
		entries = entries[:Capacity]
	}

	data, err := json.Marshal(entries)
	if err != nil {
		l.logger.Warn(context.Background(), "failed to encode recently viewed", "error", err)
		return entries
	}
	l.store.SetItem(l.key, string(data))
	return entries
}

// Entries returns the remembered recipes, newest first.
func (l *List) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.read()
}

func (l *List) read() []Entry {
	raw, ok := l.store.GetItem(l.key)
	if !ok || raw == "" {
		return []Entry{}
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		l.logger.Warn(context.Background(), "discarding unreadable recently viewed list", "error", err)
		return []Entry{}
	}
	if entries == nil {
		return []Entry{}
	}
	if len(entries) > Capacity {
		entries = entries[:Capacity]
	}
	return entries
}
