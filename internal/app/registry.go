package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/NileshMete/Charcha/internal/core"
	"github.com/NileshMete/Charcha/internal/domain"
)

type sessionEntry struct {
	User     *domain.User
	RoomName domain.RoomName
	Session  core.MemberSession
	Cancel   context.CancelFunc
}

// Registry is the connection registry: one entry per live connection,
// holding the registered user (nil until "add user"), the current room
// ("" when not in one) and the transport session. It also owns the
// process-wide active-user counter, maintained incrementally under the
// same mutex as the map so the two can never drift apart.
type Registry struct {
	mu      sync.RWMutex
	entries map[core.SessionID]*sessionEntry
	active  int
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[core.SessionID]*sessionEntry)}
}

// Bind associates a fresh connection with its transport session.
func (r *Registry) Bind(sid core.SessionID, sess core.MemberSession, cancel context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[sid] = &sessionEntry{Session: sess, Cancel: cancel}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("bound session")
}

// Register assigns the user to the connection and bumps the counter.
// Returns false without touching anything if the connection is unknown
// or already registered: the first name wins.
func (r *Registry) Register(sid core.SessionID, user *domain.User) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[sid]
	if !ok || e.User != nil {
		return false
	}
	e.User = user
	e.Session.Meta().User = user
	r.active++
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("username", user.Username).Int("active", r.active).Msg("registered user")
	return true
}

func (r *Registry) UserOf(sid core.SessionID) (*domain.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.entries[sid]; ok && e.User != nil {
		return e.User, true
	}
	return nil, false
}

func (r *Registry) SessionOf(sid core.SessionID) (core.MemberSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.entries[sid]; ok {
		return e.Session, true
	}
	return nil, false
}

func (r *Registry) RoomOf(sid core.SessionID) (domain.RoomName, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[sid]
	if !ok || e.RoomName == "" {
		return "", false
	}
	return e.RoomName, true
}

func (r *Registry) UpdateRoom(sid core.SessionID, room domain.RoomName) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[sid]
	if !ok {
		return false
	}
	e.RoomName = room
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("room", string(room)).Msg("updated room")
	return true
}

func (r *Registry) ClearRoom(sid core.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[sid]; ok {
		e.RoomName = ""
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("cleared room association")
}

// Unbind drops the connection entry and, if it was registered,
// decrements the active-user counter. Returns the user that was
// registered on the connection, if any.
func (r *Registry) Unbind(sid core.SessionID) (*domain.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[sid]
	if !ok {
		return nil, false
	}
	delete(r.entries, sid)
	if e.User == nil {
		return nil, false
	}
	r.active--
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Int("active", r.active).Msg("unbound session")
	return e.User, true
}

// ActiveUsers reports the number of registered connections.
func (r *Registry) ActiveUsers() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

func (r *Registry) Cancel(sid core.SessionID) bool {
	r.mu.RLock()
	e, ok := r.entries[sid]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("canceled session")
	return true
}
