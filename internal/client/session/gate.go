package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/natman/internal/logging"
)

type State int

const (
	StateChecking State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Gate decides, once per launch, which area the user lands in. It never
// talks to the network: only the stored session is consulted. After the
// decision it follows the Holder, so a later sign-in or logout moves it.
type Gate struct {
	holder *Holder
	log    logging.Logger

	mu       sync.Mutex
	state    State
	watchers map[int]func(State)
	nextID   int

	unsubscribe func()
}

func NewGate(holder *Holder, log logging.Logger) *Gate {
	if log == nil {
		log = logging.Nop()
	}
	g := &Gate{holder: holder, log: log, state: StateChecking, watchers: make(map[int]func(State))}
	g.unsubscribe = holder.Subscribe(g.follow)
	return g
}

// Decide reads the stored session and leaves checking. Any read failure is
// handled like a missing token.
func (g *Gate) Decide(ctx context.Context) State {
	snap, err := g.holder.Init(ctx)
	if err != nil {
		g.log.Warn(ctx, "session check failed, continuing signed out", "error", err)
		g.transition(StateUnauthenticated)
		return StateUnauthenticated
	}
	if snap.Authenticated && snap.Token != "" {
		g.transition(StateAuthenticated)
		return StateAuthenticated
	}
	g.transition(StateUnauthenticated)
	return StateUnauthenticated
}

// Logout clears the session and forces the unauthenticated state even if
// the store could not be cleared; that error is returned.
func (g *Gate) Logout(ctx context.Context) error {
	err := g.holder.Clear(ctx)
	g.transition(StateUnauthenticated)
	return err
}

func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Watch registers fn for state transitions.
func (g *Gate) Watch(fn func(State)) (unwatch func()) {
	g.mu.Lock()
	id := g.nextID
	g.nextID++
	g.watchers[id] = fn
	g.mu.Unlock()

	return func() {
		g.mu.Lock()
		delete(g.watchers, id)
		g.mu.Unlock()
	}
}

// Close detaches the gate from the holder.
func (g *Gate) Close() {
	g.unsubscribe()
}

func (g *Gate) follow(s Snapshot) {
	// Before Decide the holder may be primed by Init itself; the gate stays
	// in checking until Decide finishes.
	if g.State() == StateChecking {
		return
	}
	if s.Authenticated {
		g.transition(StateAuthenticated)
	} else {
		g.transition(StateUnauthenticated)
	}
}

func (g *Gate) transition(to State) {
	g.mu.Lock()
	if g.state == to {
		g.mu.Unlock()
		return
	}
	g.state = to
	fns := make([]func(State), 0, len(g.watchers))
	for _, fn := range g.watchers {
		fns = append(fns, fn)
	}
	g.mu.Unlock()

	for _, fn := range fns {
		fn(to)
	}
}
