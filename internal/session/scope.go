package session

import (
	"context"
	"sync"
)

// Scopes tracks the single authoritative user-operation scope. Beginning a
// new scope cancels the previous one's context and invalidates its
// identity, so work started under an old scope can neither keep running
// nor write results once it has been superseded.
type Scopes struct {
	mu     sync.Mutex
	parent context.Context
	gen    uint64
	cancel context.CancelFunc
}

// NewScopes builds a coordinator whose scopes derive from parent.
// Cancelling parent cancels whatever scope is active.
func NewScopes(parent context.Context) *Scopes {
	return &Scopes{parent: parent}
}

// Begin cancels the previous scope and establishes a new one. The returned
// scope's context governs every fetch of the new operation.
func (s *Scopes) Begin() *Scope {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(s.parent)
	s.gen++
	s.cancel = cancel
	return &Scope{owner: s, ctx: ctx, gen: s.gen}
}

// Scope is one operation's cancellation token plus its identity. Identity
// is what makes stale completions harmless: a scope that has been
// superseded can still observe its context, but Commit refuses to run its
// writes.
type Scope struct {
	owner *Scopes
	ctx   context.Context
	gen   uint64
}

// Context returns the cancellation context governing this scope's work.
func (sc *Scope) Context() context.Context {
	return sc.ctx
}

// Current reports whether this scope is still the authoritative one.
func (sc *Scope) Current() bool {
	sc.owner.mu.Lock()
	defer sc.owner.mu.Unlock()
	return sc.gen == sc.owner.gen
}

// Commit runs fn only while this scope is still authoritative, holding the
// coordinator lock so a concurrent Begin cannot interleave with fn's
// writes. It reports whether fn ran. fn must not call Begin.
func (sc *Scope) Commit(fn func()) bool {
	sc.owner.mu.Lock()
	defer sc.owner.mu.Unlock()
	if sc.gen != sc.owner.gen {
		return false
	}
	fn()
	return true
}
