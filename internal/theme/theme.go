// Package theme persists the light/dark/system preference and resolves it
// against the terminal's background.
package theme

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/recipedia/internal/storage"
)

// DefaultStorageKey is where the preference lives unless configured otherwise.
const DefaultStorageKey = "recipedia-ui-theme"

// Mode is the user's preference.
type Mode string

const (
	ModeLight  Mode = "light"
	ModeDark   Mode = "dark"
	ModeSystem Mode = "system"
)

// Modes lists the preferences in toggle order.
func Modes() []Mode {
	return []Mode{ModeLight, ModeDark, ModeSystem}
}

// ParseMode validates s as a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeLight, ModeDark, ModeSystem:
		return m, nil
	default:
		return "", fmt.Errorf("unknown theme %q (want light, dark or system)", s)
	}
}

// Next returns the mode following m in the three-way toggle.
func Next(m Mode) Mode {
	switch m {
	case ModeLight:
		return ModeDark
	case ModeDark:
		return ModeSystem
	default:
		return ModeLight
	}
}

// Appearance is a resolved presentation, never "system".
type Appearance string

const (
	AppearanceLight Appearance = "light"
	AppearanceDark  Appearance = "dark"
)

// Detector reports whether the environment prefers a dark presentation.
type Detector func() bool

// TerminalDetector queries the terminal background colour.
func TerminalDetector() Detector {
	return lipgloss.HasDarkBackground
}

// Resolve maps m to an Appearance, consulting detect for ModeSystem. A nil
// detector resolves system to light.
func Resolve(m Mode, detect Detector) Appearance {
	switch m {
	case ModeDark:
		return AppearanceDark
	case ModeLight:
		return AppearanceLight
	default:
		if detect != nil && detect() {
			return AppearanceDark
		}
		return AppearanceLight
	}
}

// Store persists the preference through the storage accessor.
type Store struct {
	store    *storage.Accessor
	key      string
	fallback Mode
}

// NewStore returns a Store writing under key.
func NewStore(store *storage.Accessor, key string) *Store {
	if key == "" {
		key = DefaultStorageKey
	}
	return &Store{store: store, key: key, fallback: ModeSystem}
}

// WithDefault sets the mode reported when nothing valid is stored.
func (s *Store) WithDefault(m Mode) *Store {
	if _, err := ParseMode(string(m)); err == nil {
		s.fallback = m
	}
	return s
}

// Key returns the storage key.
func (s *Store) Key() string {
	return s.key
}

// Mode returns the stored preference, or the default when absent or
// unreadable.
func (s *Store) Mode() Mode {
	raw, ok := s.store.GetItem(s.key)
	if !ok {
		return s.fallback
	}
	m, err := ParseMode(raw)
	if err != nil {
		return s.fallback
	}
	return m
}

// SetMode persists m.
func (s *Store) SetMode(m Mode) {
	s.store.SetItem(s.key, string(m))
}

// Root mirrors the resolved appearance the way a document root carries a
// presentation class. Exactly one class is present at a time.
type Root struct {
	mu      sync.RWMutex
	mode    Mode
	classes map[Appearance]bool
	detect  Detector
}

// NewRoot creates a root resolving system mode through detect.
func NewRoot(detect Detector) *Root {
	return &Root{classes: make(map[Appearance]bool), detect: detect}
}

// Apply resolves m and replaces the root's presentation class.
func (r *Root) Apply(m Mode) Appearance {
	resolved := Resolve(m, r.detect)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.mode = m
	delete(r.classes, AppearanceLight)
	delete(r.classes, AppearanceDark)
	r.classes[resolved] = true
	return resolved
}

// HasClass reports whether the root carries class a.
func (r *Root) HasClass(a Appearance) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.classes[a]
}

// Appearance returns the current class, defaulting to light before Apply.
func (r *Root) Appearance() Appearance {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.classes[AppearanceDark] {
		return AppearanceDark
	}
	return AppearanceLight
}

// Mode returns the last applied preference.
func (r *Root) Mode() Mode {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mode
}
