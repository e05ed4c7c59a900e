// Package viewstate tracks the fetch status of a screen scope and discards
// responses that belong to a superseded request.
package viewstate

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
	StatusFailed  Status = "failed"
)

// Fetch is the externally visible state of one fetch scope. Exactly one
// status holds at a time; Error is set only when Status is StatusFailed.
type Fetch struct {
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}

func (f Fetch) Loading() bool { return f.Status == StatusLoading }
func (f Fetch) Failed() bool  { return f.Status == StatusFailed }
func (f Fetch) Loaded() bool  { return f.Status == StatusLoaded }
func (f Fetch) Idle() bool    { return f.Status == StatusIdle || f.Status == "" }

// Token identifies one request issued for a scope.
type Token uint64

// Scope is not safe for concurrent use; the owning controller guards it
// with its own mutex.
type Scope struct {
	epoch Token
	state Fetch
}

// Begin supersedes every earlier request and marks the scope loading.
func (s *Scope) Begin() Token {
	s.epoch++
	s.state = Fetch{Status: StatusLoading}
	return s.epoch
}

// Current reports whether tok is still the latest request of the scope.
func (s *Scope) Current(tok Token) bool {
	return tok == s.epoch
}

// Succeed commits a successful response. It returns false, leaving the
// scope untouched, when tok has been superseded.
func (s *Scope) Succeed(tok Token) bool {
	if !s.Current(tok) {
		return false
	}
	s.state = Fetch{Status: StatusLoaded}
	return true
}

// Fail commits a failed response under the same rule as Succeed.
func (s *Scope) Fail(tok Token, message string) bool {
	if !s.Current(tok) {
		return false
	}
	s.state = Fetch{Status: StatusFailed, Error: message}
	return true
}

// Reset drops any in-flight request and returns the scope to idle.
func (s *Scope) Reset() {
	s.epoch++
	s.state = Fetch{Status: StatusIdle}
}

// Reject drops any in-flight request and fails the scope without a round
// trip, e.g. for a filter that does not pass client-side validation.
func (s *Scope) Reject(message string) {
	s.epoch++
	s.state = Fetch{Status: StatusFailed, Error: message}
}

func (s *Scope) State() Fetch {
	if s.state.Status == "" {
		return Fetch{Status: StatusIdle}
	}
	return s.state
}
