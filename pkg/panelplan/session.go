package panelplan

import (
	"sync"

	"github.com/dshills/panelplan/pkg/geology"
	"github.com/dshills/panelplan/pkg/geometry"
	"github.com/dshills/panelplan/pkg/score"
)

// session is the in-memory bundle a session token keys into: the
// GeologyModel and ScoreBundle produced by earlier calls in the same
// request chain, plus the boundary they were built against. Every
// access to a session's fields is made under its own mutex, per
// SPEC_FULL.md's "guarded by one sync.Mutex per session id".
type session struct {
	mu sync.Mutex

	boundary geometry.Polygon
	model    *geology.Model
	bundle   *score.Bundle
}

// Pipeline is the C8 façade: it threads requests through buildGeology,
// score, and plan, keeping one session per caller-supplied token.
// Pipeline itself is safe for concurrent use by multiple sessions; two
// requests for the same session serialise on that session's mutex.
type Pipeline struct {
	registryMu sync.Mutex
	sessions   map[string]*session
}

// NewPipeline creates an empty façade with no sessions yet cached.
func NewPipeline() *Pipeline {
	return &Pipeline{sessions: make(map[string]*session)}
}

// sessionFor returns the session for token, creating it on first use.
func (p *Pipeline) sessionFor(token string) *session {
	p.registryMu.Lock()
	defer p.registryMu.Unlock()
	s, ok := p.sessions[token]
	if !ok {
		s = &session{}
		p.sessions[token] = s
	}
	return s
}

// Forget drops a session's cached state entirely. Not part of the
// three-operation contract; a convenience for long-lived callers that
// want to bound memory use across many unrelated requests.
func (p *Pipeline) Forget(token string) {
	p.registryMu.Lock()
	defer p.registryMu.Unlock()
	delete(p.sessions, token)
}
