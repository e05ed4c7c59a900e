// Package theme owns the console-wide dark mode preference.
package theme

import (
	"log/slog"
	"sync"
)

type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

func modeOf(dark bool) Mode {
	if dark {
		return ModeDark
	}
	return ModeLight
}

// Persister stores the preference between runs. Load reports ok=false when
// nothing has been saved yet.
type Persister interface {
	Load() (mode Mode, ok bool, err error)
	Save(mode Mode) error
}

// Store is the single owner of the theme. Readers call Dark; writers go
// through Set or Toggle, which persist the value and notify subscribers.
// Changes are serialized, so saves and notifications happen in the order the
// values were set. Subscribers must not call Set or Toggle.
type Store struct {
	// writeMu is held from a change through its save and notifications
	writeMu   sync.Mutex
	mu        sync.RWMutex
	dark      bool
	persister Persister
	subs      map[int]func(dark bool)
	nextID    int
}

// NewStore restores the saved preference, falling back to preferDark when
// none exists or it cannot be read.
func NewStore(p Persister, preferDark bool) *Store {
	s := &Store{
		dark:      preferDark,
		persister: p,
		subs:      make(map[int]func(bool)),
	}
	if p == nil {
		return s
	}

	mode, ok, err := p.Load()
	if err != nil {
		slog.Warn("Failed to load theme preference", "error", err)
		return s
	}
	if ok {
		s.dark = mode == ModeDark
	}
	return s
}

func (s *Store) Dark() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dark
}

func (s *Store) Mode() Mode {
	return modeOf(s.Dark())
}

// Toggle flips the theme and returns the new value.
func (s *Store) Toggle() bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.dark = !s.dark
	dark := s.dark
	s.mu.Unlock()

	s.commit(dark)
	return dark
}

func (s *Store) Set(dark bool) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if s.dark == dark {
		s.mu.Unlock()
		return
	}
	s.dark = dark
	s.mu.Unlock()

	s.commit(dark)
}

// Subscribe registers fn for every change and returns its removal func.
func (s *Store) Subscribe(fn func(dark bool)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) commit(dark bool) {
	if s.persister != nil {
		if err := s.persister.Save(modeOf(dark)); err != nil {
			slog.Error("Failed to persist theme preference", "error", err)
		}
	}

	s.mu.RLock()
	subs := make([]func(bool), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(dark)
	}
}
