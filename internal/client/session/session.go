// Package session owns the signed-in state of the client.
//
// Holder is the single process-wide session: it loads the token and profile
// from the key-value store once (Init), writes them together (Establish) and
// removes them together (Clear). Screens read it through Current and react
// to changes through Subscribe instead of re-reading the store.
//
// Gate makes the launch decision between the authenticated and the
// unauthenticated areas.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/natman/internal/client/models"
	"github.com/dmitrijs2005/natman/internal/client/storage"
	"github.com/dmitrijs2005/natman/internal/logging"
)

// ErrEmptyToken rejects an Establish without a token.
var ErrEmptyToken = errors.New("session token is empty")

// Snapshot is an immutable view of the session.
type Snapshot struct {
	Token         string
	User          models.User
	Authenticated bool
}

type Holder struct {
	store storage.Store
	log   logging.Logger

	// lifeMu spans a store commit and the matching in-memory update.
	lifeMu sync.Mutex

	mu      sync.RWMutex
	current Snapshot

	subMu  sync.Mutex
	subs   map[int]func(Snapshot)
	nextID int
}

func NewHolder(store storage.Store, log logging.Logger) *Holder {
	if log == nil {
		log = logging.Nop()
	}
	return &Holder{store: store, log: log, subs: make(map[int]func(Snapshot))}
}

// Init loads the persisted session. A token without a profile (or the other
// way round) is left over from an interrupted write; it is removed and the
// session starts signed out.
func (h *Holder) Init(ctx context.Context) (Snapshot, error) {
	h.lifeMu.Lock()
	snap, err := h.load(ctx)
	if err != nil {
		h.lifeMu.Unlock()
		return Snapshot{}, err
	}
	h.set(snap)
	h.lifeMu.Unlock()

	h.notify()
	return snap, nil
}

func (h *Holder) load(ctx context.Context) (Snapshot, error) {
	tokenRaw, err := h.store.Get(ctx, storage.KeyUserToken)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read token: %w", err)
	}

	var user models.User
	hasUser, err := storage.GetJSON(ctx, h.store, storage.KeyUserData, &user)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read profile: %w", err)
	}

	token := string(tokenRaw)
	hasToken := token != ""

	snap := Snapshot{}
	switch {
	case hasToken && hasUser:
		snap = Snapshot{Token: token, User: user, Authenticated: true}
	case hasToken || hasUser:
		h.log.Warn(ctx, "discarding partial session", "has_token", hasToken, "has_profile", hasUser)
		if err := h.removeBoth(ctx); err != nil {
			return Snapshot{}, err
		}
	}
	return snap, nil
}

// Establish persists the token and profile as one unit. The profile is
// written first and the token last inside a single store transaction; on any
// failure neither is kept and the in-memory session is unchanged.
func (h *Holder) Establish(ctx context.Context, token string, user models.User) (Snapshot, error) {
	if token == "" {
		return Snapshot{}, ErrEmptyToken
	}

	h.lifeMu.Lock()
	err := h.store.Update(ctx, func(ctx context.Context, tx storage.KV) error {
		if err := storage.SetJSON(ctx, tx, storage.KeyUserData, user); err != nil {
			return err
		}
		return tx.Set(ctx, storage.KeyUserToken, []byte(token))
	})
	if err != nil {
		h.lifeMu.Unlock()
		return Snapshot{}, fmt.Errorf("persist session: %w", err)
	}

	snap := Snapshot{Token: token, User: user, Authenticated: true}
	h.set(snap)
	h.lifeMu.Unlock()

	h.notify()
	h.log.Info(ctx, "session established", "user_id", user.ID, "token", logging.Redact(token))
	return snap, nil
}

// Clear removes the persisted session. Clearing an empty session is a no-op
// that still succeeds.
func (h *Holder) Clear(ctx context.Context) error {
	h.lifeMu.Lock()
	if err := h.removeBoth(ctx); err != nil {
		h.lifeMu.Unlock()
		return err
	}
	h.set(Snapshot{})
	h.lifeMu.Unlock()

	h.notify()
	h.log.Info(ctx, "session cleared")
	return nil
}

func (h *Holder) removeBoth(ctx context.Context) error {
	err := h.store.Update(ctx, func(ctx context.Context, tx storage.KV) error {
		if err := tx.Remove(ctx, storage.KeyUserToken); err != nil {
			return err
		}
		return tx.Remove(ctx, storage.KeyUserData)
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Current returns the session and whether it is signed in.
func (h *Holder) Current() (Snapshot, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current, h.current.Authenticated
}

func (h *Holder) Token() string {
	s, _ := h.Current()
	return s.Token
}

func (h *Holder) User() (models.User, bool) {
	s, ok := h.Current()
	return s.User, ok
}

// Subscribe registers fn for every session change. Subscribers run outside
// the holder's locks and receive the session current at notification time.
// The returned func unregisters it.
func (h *Holder) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	h.subMu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	h.subMu.Unlock()

	return func() {
		h.subMu.Lock()
		delete(h.subs, id)
		h.subMu.Unlock()
	}
}

func (h *Holder) set(s Snapshot) {
	h.mu.Lock()
	h.current = s
	h.mu.Unlock()
}

func (h *Holder) notify() {
	s, _ := h.Current()

	h.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.subMu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}
