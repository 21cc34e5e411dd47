package types

import "github.com/dekarrin/langc/diag"

// scopeFrame is an ordered name -> LangType map for one lexical level.
// Order is kept (rather than a bare map) so a frame can eventually be
// dumped deterministically for debugging, mirroring the ordered-map
// convention used elsewhere in this compiler for anything that gets
// printed.
type scopeFrame struct {
	names  []string
	byName map[string]LangType
}

func newScopeFrame() *scopeFrame {
	return &scopeFrame{byName: map[string]LangType{}}
}

func (f *scopeFrame) set(name string, t LangType) {
	if _, ok := f.byName[name]; !ok {
		f.names = append(f.names, name)
	}
	f.byName[name] = t
}

// Scope is the nonempty stack of lexical scopes described in §3: index 0
// is the global scope. Lookup searches innermost to outermost.
type Scope struct {
	frames []*scopeFrame
}

// NewScope builds a Scope with one global frame.
func NewScope() *Scope {
	return &Scope{frames: []*scopeFrame{newScopeFrame()}}
}

// AddVar binds name to T in the current (innermost) scope.
func (s *Scope) AddVar(name string, t LangType) {
	s.frames[len(s.frames)-1].set(name, t)
}

// Lookup searches from innermost to outermost scope and returns the
// bound type, or a NameError if name is unbound anywhere.
func (s *Scope) Lookup(name string) (LangType, error) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if t, ok := s.frames[i].byName[name]; ok {
			return t, nil
		}
	}
	return nil, diag.Name(0, name)
}

// Enter pushes a new, empty lexical scope.
func (s *Scope) Enter() {
	s.frames = append(s.frames, newScopeFrame())
}

// Exit pops the innermost lexical scope. It must never be called on the
// global scope; per §4.5 that invariant is enforced here as a panic,
// recovered at the top of compiler.Compile into an internal-error
// Diagnostic rather than ever surfacing raw to a caller.
func (s *Scope) Exit() {
	if len(s.frames) <= 1 {
		panic("types: Scope.Exit called on the global scope")
	}
	s.frames = s.frames[:len(s.frames)-1]
}

// Depth returns the number of lexical scopes currently on the stack
// (always >= 1). Callers use this to assert that a statement leaves the
// stack the same depth it found it at, per §3's invariant.
func (s *Scope) Depth() int {
	return len(s.frames)
}
