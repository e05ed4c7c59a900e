// Package modal manages the modal dialogs of one screen as scoped resources.
//
// Opening a modal takes the screen's scroll lock and registers it for
// escape-to-close. Every close path (explicit Close, Escape, CloseAll on
// unmount) releases the lock and runs the scope's cleanups exactly once, in
// reverse registration order.
package modal

import "sync"

type Option func(*Scope)

// WithFocus names the field that receives focus when the modal opens.
func WithFocus(field string) Option {
	return func(s *Scope) { s.focus = field }
}

// WithDismiss sets the handler invoked by Escape. It is expected to close
// the scope (usually through the owning controller). Without one, Escape
// closes the scope directly.
func WithDismiss(fn func()) Option {
	return func(s *Scope) { s.dismiss = fn }
}

type Scope struct {
	stack    *Stack
	name     string
	focus    string
	dismiss  func()
	cleanups []func()
	closed   bool
}

func (s *Scope) Name() string  { return s.name }
func (s *Scope) Focus() string { return s.focus }

// Defer registers fn to run when the scope closes. Registering on a closed
// scope runs fn immediately.
func (s *Scope) Defer(fn func()) {
	s.stack.mu.Lock()
	if s.closed {
		s.stack.mu.Unlock()
		fn()
		return
	}
	s.cleanups = append(s.cleanups, fn)
	s.stack.mu.Unlock()
}

func (s *Scope) Closed() bool {
	s.stack.mu.Lock()
	defer s.stack.mu.Unlock()
	return s.closed
}

// Close is idempotent.
func (s *Scope) Close() {
	s.stack.mu.Lock()
	if s.closed {
		s.stack.mu.Unlock()
		return
	}
	s.closed = true
	s.stack.remove(s)
	cleanups := s.cleanups
	s.cleanups = nil
	s.stack.mu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}

// Stack holds the open modals of one screen, most recent last.
type Stack struct {
	mu   sync.Mutex
	open []*Scope
}

func NewStack() *Stack {
	return &Stack{}
}

func (st *Stack) Open(name string, opts ...Option) *Scope {
	s := &Scope{stack: st, name: name}
	for _, opt := range opts {
		opt(s)
	}

	st.mu.Lock()
	st.open = append(st.open, s)
	st.mu.Unlock()
	return s
}

// remove must be called with st.mu held.
func (st *Stack) remove(s *Scope) {
	for i, open := range st.open {
		if open == s {
			st.open = append(st.open[:i], st.open[i+1:]...)
			return
		}
	}
}

// Escape dismisses the topmost modal. It reports false when none is open.
func (st *Stack) Escape() bool {
	st.mu.Lock()
	if len(st.open) == 0 {
		st.mu.Unlock()
		return false
	}
	top := st.open[len(st.open)-1]
	dismiss := top.dismiss
	st.mu.Unlock()

	if dismiss != nil {
		dismiss()
	}
	top.Close()
	return true
}

// CloseAll closes every open modal, newest first.
func (st *Stack) CloseAll() {
	for {
		st.mu.Lock()
		if len(st.open) == 0 {
			st.mu.Unlock()
			return
		}
		top := st.open[len(st.open)-1]
		st.mu.Unlock()
		top.Close()
	}
}

// ScrollLocked reports whether page scrolling is locked by an open modal.
func (st *Stack) ScrollLocked() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.open) > 0
}

// Focus returns the field the topmost modal focuses, or "" when none is open.
func (st *Stack) Focus() string {
	st.mu.Lock()
	defer st.mu.Unlock()
	if len(st.open) == 0 {
		return ""
	}
	return st.open[len(st.open)-1].focus
}

func (st *Stack) Names() []string {
	st.mu.Lock()
	defer st.mu.Unlock()
	names := make([]string, 0, len(st.open))
	for _, s := range st.open {
		names = append(names, s.name)
	}
	return names
}
