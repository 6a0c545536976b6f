/*
Package chat contains the core logic of the CHATON server: the session registry,
group store, invitation ledger, command dispatch and message fan-out.

This file defines the per-connection command dispatcher. Each input line is
tokenized on whitespace into a case-insensitive command and its parameters;
commands with the wrong argument shape and unknown commands are silently
dropped, while precondition violations are answered with a 403 reject line to
the issuing session only.
*/
package chat

import (
	"strings"

	"chaton/internal/pkg/errs"
	"chaton/internal/pkg/randx"
)

// Protocol command tokens.
const (
	cmdConnect      = "connect"
	cmdSelect       = "select"
	cmdYes          = "yes"
	cmdNo           = "no"
	cmdChangePseudo = "change_pseudo"
	cmdListClients  = "list_all_clients"
	cmdCreateGroup  = "create_group"
	cmdJoinGroup    = "join_group"
	cmdLeaveGroup   = "leave_group"
	cmdMsg          = "msg"
	cmdDisconnect   = "disconnect"

	// groupToken marks a msg payload as group-scoped.
	groupToken = "group"
)

// dispatch routes one input line to its command handler.
func (srv *Server) dispatch(s *Session, line string) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return
	}

	command := strings.ToLower(tokens[0])
	params := tokens[1:]

	switch {
	case command == cmdConnect && len(params) == 0:
		srv.handleConnect(s)

	case command == cmdSelect && len(params) == 1:
		srv.handleSelect(s, params[0])

	case (command == cmdYes || command == cmdNo) && len(params) == 1:
		srv.handleInviteResponse(s, command == cmdYes, params[0])

	case command == cmdChangePseudo && len(params) == 1:
		srv.handleChangePseudo(s, params[0])

	case command == cmdListClients && len(params) == 0:
		srv.handleListAllClients(s)

	case command == cmdCreateGroup && len(params) >= 2:
		srv.handleCreateGroup(s, params[0], params[1:])

	case command == cmdJoinGroup && len(params) == 1:
		srv.handleJoinGroup(s, params[0])

	case command == cmdLeaveGroup && len(params) == 1:
		srv.handleLeaveGroup(s, params[0])

	case command == cmdMsg && len(params) >= 1:
		srv.handleMessage(s, strings.Join(params, " "))

	case command == cmdDisconnect && len(params) == 0:
		s.Close()

	default:
		// minimal protocol: no reply for malformed or unknown commands
		s.logger.Debug().Str("command", command).Int("params", len(params)).Msg("Dropping malformed or unknown command.")
	}
}

// requirePseudo resolves the session's pseudo, rejecting unauthenticated callers.
func (srv *Server) requirePseudo(s *Session) (string, bool) {
	pseudo, ok := srv.registry.Lookup(s)
	if !ok {
		s.Queue(ReplyError(errs.NewError(errs.ErrNotAuthenticated)))
		return "", false
	}
	return pseudo, true
}

// handleConnect proposes candidate pseudos sampled from the unused portion of
// the catalog.
func (srv *Server) handleConnect(s *Session) {
	proposals, err := srv.registry.ProposePseudos(randx.ProposalCount)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to sample pseudo proposals.")
		s.Queue(ReplyError(errs.NewError(errs.ErrUnknown, err)))
		return
	}

	s.Queue(ReplyOK("Choose pseudo: " + strings.Join(proposals, " ")))
}

// handleSelect binds the session to the chosen pseudo, announces the arrival,
// and replays any invitations that went unanswered before this connection.
func (srv *Server) handleSelect(s *Session, pseudo string) {
	if err := srv.registry.Register(s, pseudo); err != nil {
		s.Queue(ReplyError(err))
		return
	}

	s.Queue(ReplyOK("Pseudo selected " + pseudo))
	srv.notifier.Broadcast(Notice(pseudo+" has joined the chat"), s)

	for _, group := range srv.invites.PendingFor(pseudo) {
		s.Queue(Invitation(group))
	}
}

// handleInviteResponse answers a pending invitation. The pending entry is
// consumed by either answer; answering a non-pending invitation changes
// nothing and notifies no one.
func (srv *Server) handleInviteResponse(s *Session, accept bool, group string) {
	pseudo, ok := srv.requirePseudo(s)
	if !ok {
		return
	}

	switch srv.invites.Respond(pseudo, group, accept) {
	case InviteAccepted:
		added, err := srv.groups.AddMember(group, pseudo)
		if err != nil {
			// the group emptied out while the invitation was pending
			s.Queue(ReplyError(errs.NewError(errs.ErrGroupGone, group)))
			return
		}

		srv.registry.RecordGroupJoin(pseudo, group)
		s.Queue(ReplyOK("You joined the group " + group))
		if added {
			srv.notifier.NotifyGroup(group, Notice(pseudo+" has joined the group "+group), s)
		}

	case InviteDeclined:
		s.Queue(ReplyOK("You declined the invitation to " + group))
		srv.notifier.NotifyGroup(group, Notice(pseudo+" has declined the invitation to join the group "+group), s)

	case NoSuchInvitation:
	}
}

// handleChangePseudo rebinds the live session to a new pseudo. Group
// membership and durable data stay under the old name.
func (srv *Server) handleChangePseudo(s *Session, newPseudo string) {
	if _, ok := srv.requirePseudo(s); !ok {
		return
	}

	old, err := srv.registry.Rename(s, newPseudo)
	if err != nil {
		s.Queue(ReplyError(err))
		return
	}

	s.Queue(ReplyOK("Pseudo changed to " + newPseudo))
	srv.notifier.Broadcast(Notice(old+" changed their pseudo to "+newPseudo), s)
}

// handleListAllClients replies with the pseudos of every live session.
func (srv *Server) handleListAllClients(s *Session) {
	if _, ok := srv.requirePseudo(s); !ok {
		return
	}

	s.Queue(ReplyOK("Currently connected users: " + strings.Join(srv.registry.AllNames(), ", ")))
}

// handleCreateGroup creates a group with the caller as sole member and sends
// an invitation to every named member that is online and not already in it.
func (srv *Server) handleCreateGroup(s *Session, group string, members []string) {
	pseudo, ok := srv.requirePseudo(s)
	if !ok {
		return
	}

	if err := srv.groups.Create(group, pseudo); err != nil {
		s.Queue(ReplyError(err))
		return
	}
	srv.registry.RecordGroupJoin(pseudo, group)

	for _, member := range members {
		if srv.groups.IsMember(group, member) {
			continue
		}

		target := srv.registry.FindSessionByName(member)
		if target == nil {
			continue
		}

		srv.invites.Invite(member, group)
		srv.notifier.Unicast(target, Invitation(group))
	}

	s.Queue(ReplyOK("Group " + group + " created. Invitations sent."))
}

// handleJoinGroup performs a direct self-join without an invitation.
func (srv *Server) handleJoinGroup(s *Session, group string) {
	pseudo, ok := srv.requirePseudo(s)
	if !ok {
		return
	}

	added, err := srv.groups.AddMember(group, pseudo)
	if err != nil {
		s.Queue(ReplyError(err))
		return
	}
	if !added {
		s.Queue(ReplyError(errs.NewError(errs.ErrAlreadyInGroup)))
		return
	}

	srv.registry.RecordGroupJoin(pseudo, group)
	s.Queue(ReplyOK("You joined the group " + group))
}

// handleLeaveGroup removes the caller from the group, deleting the group when
// it empties.
func (srv *Server) handleLeaveGroup(s *Session, group string) {
	pseudo, ok := srv.requirePseudo(s)
	if !ok {
		return
	}

	if _, err := srv.groups.RemoveMember(group, pseudo); err != nil {
		s.Queue(ReplyError(err))
		return
	}

	srv.registry.RecordGroupLeave(pseudo, group)
	s.Queue(ReplyOK("You left the group " + group))
}

// handleMessage routes a chat message. A payload of the form
// "group <name> <text>" goes to the other members of that group; anything else
// is broadcast to every other session.
func (srv *Server) handleMessage(s *Session, text string) {
	pseudo, ok := srv.requirePseudo(s)
	if !ok {
		return
	}

	parts := strings.SplitN(text, " ", 3)
	if strings.EqualFold(parts[0], groupToken) && len(parts) == 3 {
		group, body := parts[1], parts[2]

		if !srv.groups.IsMember(group, pseudo) {
			s.Queue(ReplyError(errs.NewError(errs.ErrNotInGroupOrMissing)))
			return
		}

		srv.notifier.NotifyGroup(group, GroupChatLine(pseudo, group, body), s)
		return
	}

	srv.notifier.Broadcast(ChatLine(pseudo, text), s)
}
