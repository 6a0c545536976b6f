/*
Package chat contains the core logic of the CHATON server: the session registry,
group store, invitation ledger, command dispatch and message fan-out.

This file defines the Notifier, the fan-out primitive command handlers use to
push asynchronous text to one, many, or all sessions. Sends are best effort:
a dead or slow session is logged and skipped, never allowed to disturb the
dispatcher loop or other sessions.
*/
package chat

import (
	"github.com/rs/zerolog"

	"chaton/internal/pkg/logx"
)

// Notifier pushes text lines to live sessions, resolving pseudos through the
// registry.
type Notifier struct {
	registry *Registry
	groups   *GroupStore
	logger   zerolog.Logger
}

// NewNotifier constructs a Notifier over the given stores.
func NewNotifier(registry *Registry, groups *GroupStore) *Notifier {
	return &Notifier{
		registry: registry,
		groups:   groups,
		logger:   logx.Logger().With().Str("component", "Notifier").Logger(),
	}
}

// Unicast queues a line for a single session.
func (n *Notifier) Unicast(s *Session, line string) {
	if s == nil {
		return
	}
	s.Queue(line)
}

// Broadcast queues a line for every live session except exclude (may be nil).
func (n *Notifier) Broadcast(line string, exclude *Session) {
	for _, s := range n.registry.Sessions() {
		if s == exclude {
			continue
		}
		s.Queue(line)
	}
}

// NotifyGroup queues a line for every member of the group except exclude
// (may be nil). Members without a live session are silently skipped.
func (n *Notifier) NotifyGroup(group, line string, exclude *Session) {
	members, ok := n.groups.Members(group)
	if !ok {
		n.logger.Debug().Str("group", group).Msg("Notify skipped, group gone.")
		return
	}

	for _, member := range members {
		s := n.registry.FindSessionByName(member)
		if s == nil || s == exclude {
			continue
		}
		s.Queue(line)
	}
}
