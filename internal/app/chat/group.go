/*
Package chat contains the core logic of the CHATON server: the session registry,
group store, invitation ledger, command dispatch and message fan-out.

This file defines the GroupStore. A group is a named, ordered collection of
member pseudos; duplicates are forbidden, and a group whose member collection
empties is deleted in the same step.
*/
package chat

import (
	"sync"

	"github.com/rs/zerolog"

	"chaton/internal/pkg/errs"
	"chaton/internal/pkg/logx"
)

// GroupStore maps group names to their ordered member lists.
type GroupStore struct {
	mu sync.Mutex

	// groups holds member pseudos per group name, in insertion order.
	groups map[string][]string

	logger zerolog.Logger
}

// NewGroupStore constructs an empty GroupStore.
func NewGroupStore() *GroupStore {
	return &GroupStore{
		groups: make(map[string][]string),
		logger: logx.Logger().With().Str("component", "GroupStore").Logger(),
	}
}

// Create makes a new group with the founder as its sole member. An existing
// group with the same name takes precedence; no overwrite happens.
func (g *GroupStore) Create(group, founder string) *errs.CustomError {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.groups[group]; exists {
		g.logger.Warn().Str("group", group).Msg("Attempted to create existing group.")
		return errs.NewError(errs.ErrGroupExists, group)
	}

	g.groups[group] = []string{founder}
	g.logger.Info().Str("group", group).Str("founder", founder).Msg("Group created.")
	return nil
}

// AddMember appends the member to the group. It reports whether the member was
// actually added; adding an existing member is a no-op. A missing group is an
// error.
func (g *GroupStore) AddMember(group, member string) (bool, *errs.CustomError) {
	g.mu.Lock()
	defer g.mu.Unlock()

	members, exists := g.groups[group]
	if !exists {
		return false, errs.NewError(errs.ErrGroupNotFound)
	}

	for _, existing := range members {
		if existing == member {
			return false, nil
		}
	}

	g.groups[group] = append(members, member)
	g.logger.Info().Str("group", group).Str("member", member).Msg("Member added to group.")
	return true, nil
}

// RemoveMember removes the member from the group. When removal empties the
// member collection the group is deleted as a side effect; the first return
// reports that deletion. A missing group or non-member is an error.
func (g *GroupStore) RemoveMember(group, member string) (bool, *errs.CustomError) {
	g.mu.Lock()
	defer g.mu.Unlock()

	members, exists := g.groups[group]
	if !exists {
		return false, errs.NewError(errs.ErrNotInGroup)
	}

	for i, existing := range members {
		if existing != member {
			continue
		}

		members = append(members[:i], members[i+1:]...)
		if len(members) == 0 {
			delete(g.groups, group)
			g.logger.Info().Str("group", group).Msg("Last member left; group deleted.")
			return true, nil
		}

		g.groups[group] = members
		g.logger.Info().Str("group", group).Str("member", member).Msg("Member left group.")
		return false, nil
	}

	return false, errs.NewError(errs.ErrNotInGroup)
}

// IsMember reports whether the pseudo belongs to the group.
func (g *GroupStore) IsMember(group, member string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, existing := range g.groups[group] {
		if existing == member {
			return true
		}
	}
	return false
}

// Members returns a copy of the group's member list in insertion order, and
// whether the group exists.
func (g *GroupStore) Members(group string) ([]string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	members, exists := g.groups[group]
	if !exists {
		return nil, false
	}

	out := make([]string, len(members))
	copy(out, members)
	return out, true
}
