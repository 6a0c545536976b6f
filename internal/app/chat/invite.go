/*
Package chat contains the core logic of the CHATON server: the session registry,
group store, invitation ledger, command dispatch and message fan-out.

This file defines the InviteLedger, the record of group-join offers a pseudo
has neither accepted nor declined. Pending invitations outlive disconnects and
are replayed when the pseudo reconnects.
*/
package chat

import "sync"

// InviteOutcome is the result of answering an invitation.
type InviteOutcome int

const (
	// InviteAccepted means a pending invitation was consumed by a yes.
	InviteAccepted InviteOutcome = iota

	// InviteDeclined means a pending invitation was consumed by a no.
	InviteDeclined

	// NoSuchInvitation means nothing was pending for that pseudo/group pair.
	NoSuchInvitation
)

// InviteLedger maps a pseudo to the groups it has been invited to join.
type InviteLedger struct {
	mu sync.Mutex

	// pending holds group names per pseudo, in invitation order.
	pending map[string][]string
}

// NewInviteLedger constructs an empty InviteLedger.
func NewInviteLedger() *InviteLedger {
	return &InviteLedger{
		pending: make(map[string][]string),
	}
}

// Invite records a pending invitation. At most one pending entry exists per
// pseudo/group pair; re-inviting while one is pending records nothing new.
func (l *InviteLedger) Invite(pseudo, group string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, existing := range l.pending[pseudo] {
		if existing == group {
			return
		}
	}
	l.pending[pseudo] = append(l.pending[pseudo], group)
}

// PendingFor returns the groups the pseudo has unanswered invitations to,
// in invitation order.
func (l *InviteLedger) PendingFor(pseudo string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	pending := l.pending[pseudo]
	out := make([]string, len(pending))
	copy(out, pending)
	return out
}

// Respond consumes the pending entry for the pseudo/group pair. The entry is
// removed on acceptance and on decline alike; the caller is responsible for
// the group mutation and the notifications that follow.
func (l *InviteLedger) Respond(pseudo, group string, accept bool) InviteOutcome {
	l.mu.Lock()
	defer l.mu.Unlock()

	pending := l.pending[pseudo]
	for i, existing := range pending {
		if existing != group {
			continue
		}

		pending = append(pending[:i], pending[i+1:]...)
		if len(pending) == 0 {
			delete(l.pending, pseudo)
		} else {
			l.pending[pseudo] = pending
		}

		if accept {
			return InviteAccepted
		}
		return InviteDeclined
	}

	return NoSuchInvitation
}
