/*
Package chat contains the core logic of the CHATON server: the session registry,
group store, invitation ledger, command dispatch and message fan-out.

This file defines the wire-level reply formats. Every outbound protocol line is
plain text; the literal prefixes below are part of the protocol contract.
*/
package chat

import (
	"fmt"
	"net/http"

	"chaton/internal/pkg/errs"
)

// ReplyOK formats a success reply line.
func ReplyOK(detail string) string {
	return "200 OK " + detail
}

// ReplyForbidden formats a protocol-level rejection line.
func ReplyForbidden(detail string) string {
	return "403 Forbidden " + detail
}

// ReplyError formats the reject line for a CustomError. Errors carrying a
// status other than 403 are still surfaced as rejections so the client always
// sees a well-formed line.
func ReplyError(err *errs.CustomError) string {
	if err.Status == http.StatusOK {
		return ReplyOK(err.Message)
	}
	return ReplyForbidden(err.Message)
}

// Notice formats an asynchronous, unsolicited server notice.
func Notice(text string) string {
	return "NOTICE " + text
}

// Invitation formats the group-join offer line sent to an invitee.
func Invitation(group string) string {
	return fmt.Sprintf("INVITATION Group %s: Accept? (YES/NO)", group)
}

// ChatLine formats a global chat delivery.
func ChatLine(sender, text string) string {
	return fmt.Sprintf("%s: %s", sender, text)
}

// GroupChatLine formats a group-scoped chat delivery.
func GroupChatLine(sender, group, text string) string {
	return fmt.Sprintf("%s (in %s): %s", sender, group, text)
}
