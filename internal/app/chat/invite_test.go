package chat

import "testing"

func TestInviteAndPendingFor(t *testing.T) {
	l := NewInviteLedger()

	l.Invite("Pseudo7", "Team")
	l.Invite("Pseudo7", "Chess")
	l.Invite("Pseudo7", "Team") // idempotent per pair

	pending := l.PendingFor("Pseudo7")
	if len(pending) != 2 || pending[0] != "Team" || pending[1] != "Chess" {
		t.Fatalf("PendingFor() = %v, want [Team Chess]", pending)
	}

	if got := l.PendingFor("Pseudo3"); len(got) != 0 {
		t.Errorf("PendingFor(uninvited) = %v, want empty", got)
	}
}

func TestRespond(t *testing.T) {
	tests := []struct {
		name   string
		accept bool
		want   InviteOutcome
	}{
		{"accept", true, InviteAccepted},
		{"decline", false, InviteDeclined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewInviteLedger()
			l.Invite("Pseudo7", "Team")

			if got := l.Respond("Pseudo7", "Team", tt.accept); got != tt.want {
				t.Fatalf("Respond() = %v, want %v", got, tt.want)
			}

			// the pending entry is consumed by either answer
			if got := l.Respond("Pseudo7", "Team", tt.accept); got != NoSuchInvitation {
				t.Errorf("second Respond() = %v, want NoSuchInvitation", got)
			}
			if pending := l.PendingFor("Pseudo7"); len(pending) != 0 {
				t.Errorf("PendingFor() after answer = %v, want empty", pending)
			}
		})
	}
}

func TestRespondWithoutInvitation(t *testing.T) {
	l := NewInviteLedger()
	l.Invite("Pseudo7", "Team")

	if got := l.Respond("Pseudo7", "Ghost", true); got != NoSuchInvitation {
		t.Errorf("Respond(unknown group) = %v, want NoSuchInvitation", got)
	}
	if got := l.Respond("Pseudo3", "Team", true); got != NoSuchInvitation {
		t.Errorf("Respond(uninvited pseudo) = %v, want NoSuchInvitation", got)
	}
	if pending := l.PendingFor("Pseudo7"); len(pending) != 1 {
		t.Errorf("PendingFor() = %v, want the untouched invitation", pending)
	}
}

func TestRespondKeepsOtherInvitations(t *testing.T) {
	l := NewInviteLedger()
	l.Invite("Pseudo7", "Team")
	l.Invite("Pseudo7", "Chess")

	if got := l.Respond("Pseudo7", "Team", false); got != InviteDeclined {
		t.Fatalf("Respond() = %v, want InviteDeclined", got)
	}
	if pending := l.PendingFor("Pseudo7"); len(pending) != 1 || pending[0] != "Chess" {
		t.Errorf("PendingFor() = %v, want [Chess]", pending)
	}
}
