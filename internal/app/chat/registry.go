/*
Package chat contains the core logic of the CHATON server: the session registry,
group store, invitation ledger, command dispatch and message fan-out.

This file defines the Registry, the single source of truth for who is online.
It binds live sessions to pseudos, owns the pseudo catalog and the durable
per-pseudo user data, and keeps the name index and the session index updated
atomically under one lock.
*/
package chat

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"chaton/internal/pkg/errs"
	"chaton/internal/pkg/logx"
	"chaton/internal/pkg/randx"
)

// UserData is the durable per-pseudo record. It is created on first successful
// name selection and survives disconnects; only process termination removes it.
type UserData struct {
	// Groups lists the group affiliations of the pseudo, in join order.
	Groups []string
}

// Registry maps live sessions to pseudos and back. The pseudo catalog and the
// durable user data are part of its synchronized state, never touched outside
// its lock.
type Registry struct {
	mu sync.Mutex

	// catalog is the fixed list of candidate pseudos; catalogSet indexes it.
	catalog    []string
	catalogSet map[string]struct{}

	// byName and bySession form the bidirectional live-session index.
	byName    map[string]*Session
	bySession map[*Session]string

	// userData holds the durable records, keyed by pseudo.
	userData map[string]*UserData

	logger zerolog.Logger
}

// NewRegistry constructs a Registry seeded with the given pseudo catalog.
func NewRegistry(catalog []string) *Registry {
	catalogSet := make(map[string]struct{}, len(catalog))
	for _, pseudo := range catalog {
		catalogSet[pseudo] = struct{}{}
	}

	return &Registry{
		catalog:    catalog,
		catalogSet: catalogSet,
		byName:     make(map[string]*Session),
		bySession:  make(map[*Session]string),
		userData:   make(map[string]*UserData),
		logger:     logx.Logger().With().Str("component", "Registry").Logger(),
	}
}

// Register binds a session to a pseudo. The pseudo must be in the catalog or
// already have durable user data (reconnection), and must not be bound to
// another live session. A session that already holds a name is rebound; the
// old binding is released. On success the durable user data entry is ensured.
func (r *Registry) Register(s *Session, pseudo string) *errs.CustomError {
	r.mu.Lock()
	defer r.mu.Unlock()

	if bound, ok := r.byName[pseudo]; ok && bound != s {
		return errs.NewError(errs.ErrPseudoUnavailable)
	}

	_, inCatalog := r.catalogSet[pseudo]
	_, hasData := r.userData[pseudo]
	if !inCatalog && !hasData {
		return errs.NewError(errs.ErrPseudoUnavailable)
	}

	if old, ok := r.bySession[s]; ok {
		delete(r.byName, old)
	}

	r.byName[pseudo] = s
	r.bySession[s] = pseudo

	if !hasData {
		r.userData[pseudo] = &UserData{}
	}

	r.logger.Info().Str("pseudo", pseudo).Str("session_id", s.ID()).Msg("Pseudo registered.")
	return nil
}

// Lookup returns the pseudo bound to the session, if any.
func (r *Registry) Lookup(s *Session) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pseudo, ok := r.bySession[s]
	return pseudo, ok
}

// FindSessionByName returns the live session bound to the pseudo, or nil.
func (r *Registry) FindSessionByName(pseudo string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.byName[pseudo]
}

// Rename rebinds the session to newPseudo. It rejects only names currently
// bound to a live session; durable-only names without a live holder are
// allowed. It returns the previous pseudo on success.
func (r *Registry) Rename(s *Session, newPseudo string) (string, *errs.CustomError) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byName[newPseudo]; taken {
		return "", errs.NewError(errs.ErrPseudoTaken)
	}

	old, ok := r.bySession[s]
	if !ok {
		return "", errs.NewError(errs.ErrNotAuthenticated)
	}

	delete(r.byName, old)
	r.byName[newPseudo] = s
	r.bySession[s] = newPseudo

	r.logger.Info().Str("old_pseudo", old).Str("new_pseudo", newPseudo).Msg("Pseudo changed.")
	return old, nil
}

// Unregister removes the session's binding and returns the released pseudo, or
// "" when the session never authenticated. Durable user data is not touched.
func (r *Registry) Unregister(s *Session) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	pseudo, ok := r.bySession[s]
	if !ok {
		return ""
	}

	delete(r.bySession, s)
	delete(r.byName, pseudo)

	r.logger.Info().Str("pseudo", pseudo).Str("session_id", s.ID()).Msg("Pseudo released.")
	return pseudo
}

// AllNames returns the pseudos of every live session, sorted for stable output.
func (r *Registry) AllNames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.byName))
	for pseudo := range r.byName {
		names = append(names, pseudo)
	}
	sort.Strings(names)
	return names
}

// Sessions returns a snapshot of every live session.
func (r *Registry) Sessions() []*Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions := make([]*Session, 0, len(r.bySession))
	for s := range r.bySession {
		sessions = append(sessions, s)
	}
	return sessions
}

// ProposePseudos samples up to n candidate pseudos from the unused portion of
// the catalog: names neither bound to a live session nor claimed by durable
// user data.
func (r *Registry) ProposePseudos(n int) ([]string, error) {
	r.mu.Lock()
	unused := make([]string, 0, len(r.catalog))
	for _, pseudo := range r.catalog {
		if _, live := r.byName[pseudo]; live {
			continue
		}
		if _, claimed := r.userData[pseudo]; claimed {
			continue
		}
		unused = append(unused, pseudo)
	}
	r.mu.Unlock()

	return randx.Sample(unused, n)
}

// RecordGroupJoin appends the group to the pseudo's durable affiliations.
func (r *Registry) RecordGroupJoin(pseudo, group string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, ok := r.userData[pseudo]
	if !ok {
		return
	}
	for _, existing := range data.Groups {
		if existing == group {
			return
		}
	}
	data.Groups = append(data.Groups, group)
}

// RecordGroupLeave removes the group from the pseudo's durable affiliations.
func (r *Registry) RecordGroupLeave(pseudo, group string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, ok := r.userData[pseudo]
	if !ok {
		return
	}
	for i, existing := range data.Groups {
		if existing == group {
			data.Groups = append(data.Groups[:i], data.Groups[i+1:]...)
			return
		}
	}
}

// GroupsOf returns a copy of the pseudo's durable group affiliations.
func (r *Registry) GroupsOf(pseudo string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, ok := r.userData[pseudo]
	if !ok {
		return nil
	}
	groups := make([]string, len(data.Groups))
	copy(groups, data.Groups)
	return groups
}
