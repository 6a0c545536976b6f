package chat

import (
	"testing"

	"chaton/internal/pkg/errs"
)

func newTestRegistry() *Registry {
	return NewRegistry([]string{"Pseudo1", "Pseudo2", "Pseudo3"})
}

func TestRegisterAndLookup(t *testing.T) {
	r := newTestRegistry()
	s := &Session{}

	if err := r.Register(s, "Pseudo1"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	pseudo, ok := r.Lookup(s)
	if !ok || pseudo != "Pseudo1" {
		t.Errorf("Lookup() = (%q, %v), want (Pseudo1, true)", pseudo, ok)
	}
	if got := r.FindSessionByName("Pseudo1"); got != s {
		t.Error("FindSessionByName() did not return the registered session")
	}
}

func TestRegisterRejectsBoundAndUnknownNames(t *testing.T) {
	r := newTestRegistry()
	first, second := &Session{}, &Session{}

	if err := r.Register(first, "Pseudo1"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := r.Register(second, "Pseudo1"); err == nil || err.Code != errs.ErrPseudoUnavailable {
		t.Errorf("Register(bound name) error = %v, want ErrPseudoUnavailable", err)
	}
	if err := r.Register(second, "NotInCatalog"); err == nil || err.Code != errs.ErrPseudoUnavailable {
		t.Errorf("Register(unknown name) error = %v, want ErrPseudoUnavailable", err)
	}
}

func TestRegisterAllowsReconnection(t *testing.T) {
	r := newTestRegistry()
	s := &Session{}

	if err := r.Register(s, "Pseudo1"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if got := r.Unregister(s); got != "Pseudo1" {
		t.Fatalf("Unregister() = %q, want Pseudo1", got)
	}

	// the name keeps its durable record, so a new session may reclaim it
	reconnected := &Session{}
	if err := r.Register(reconnected, "Pseudo1"); err != nil {
		t.Fatalf("Register(reconnect) error = %v", err)
	}
}

func TestRegisterRebindsSessionWithName(t *testing.T) {
	r := newTestRegistry()
	s := &Session{}

	if err := r.Register(s, "Pseudo1"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := r.Register(s, "Pseudo2"); err != nil {
		t.Fatalf("Register(second name) error = %v", err)
	}

	if got := r.FindSessionByName("Pseudo1"); got != nil {
		t.Error("old binding survived a re-select")
	}
	if pseudo, _ := r.Lookup(s); pseudo != "Pseudo2" {
		t.Errorf("Lookup() = %q, want Pseudo2", pseudo)
	}
}

func TestRename(t *testing.T) {
	r := newTestRegistry()
	a, b := &Session{}, &Session{}

	if err := r.Register(a, "Pseudo1"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := r.Register(b, "Pseudo2"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// collision check is against currently bound names only
	if _, err := r.Rename(a, "Pseudo2"); err == nil || err.Code != errs.ErrPseudoTaken {
		t.Errorf("Rename(taken) error = %v, want ErrPseudoTaken", err)
	}

	old, err := r.Rename(a, "Fancy")
	if err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	if old != "Pseudo1" {
		t.Errorf("Rename() old = %q, want Pseudo1", old)
	}
	if got := r.FindSessionByName("Fancy"); got != a {
		t.Error("new name is not bound after rename")
	}
	if got := r.FindSessionByName("Pseudo1"); got != nil {
		t.Error("old name is still bound after rename")
	}

	// a durable-only name without a live holder is allowed as a new nickname
	r.Unregister(b)
	if _, err := r.Rename(a, "Pseudo2"); err != nil {
		t.Errorf("Rename(durable-only name) error = %v", err)
	}
}

func TestNameUniqueness(t *testing.T) {
	r := newTestRegistry()
	sessions := []*Session{{}, {}, {}}
	names := []string{"Pseudo1", "Pseudo2", "Pseudo3"}

	for i, s := range sessions {
		if err := r.Register(s, names[i]); err != nil {
			t.Fatalf("Register(%s) error = %v", names[i], err)
		}
	}

	all := r.AllNames()
	if len(all) != 3 {
		t.Fatalf("AllNames() = %v, want 3 entries", all)
	}
	seen := make(map[string]struct{})
	for _, name := range all {
		if _, dup := seen[name]; dup {
			t.Errorf("name %q listed twice", name)
		}
		seen[name] = struct{}{}
	}
}

func TestProposePseudosSkipsUsedNames(t *testing.T) {
	r := newTestRegistry()
	s := &Session{}

	if err := r.Register(s, "Pseudo1"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	r.Unregister(s) // Pseudo1 keeps durable data and stays out of the pool

	proposals, err := r.ProposePseudos(10)
	if err != nil {
		t.Fatalf("ProposePseudos() error = %v", err)
	}
	if len(proposals) != 2 {
		t.Fatalf("ProposePseudos() = %v, want the 2 unused names", proposals)
	}
	for _, pseudo := range proposals {
		if pseudo == "Pseudo1" {
			t.Error("proposal includes a name with durable data")
		}
	}
}

func TestGroupAffiliationRecords(t *testing.T) {
	r := newTestRegistry()
	s := &Session{}

	if err := r.Register(s, "Pseudo1"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	r.RecordGroupJoin("Pseudo1", "Team")
	r.RecordGroupJoin("Pseudo1", "Team") // idempotent
	r.RecordGroupJoin("Pseudo1", "Chess")

	if got := r.GroupsOf("Pseudo1"); len(got) != 2 || got[0] != "Team" || got[1] != "Chess" {
		t.Fatalf("GroupsOf() = %v, want [Team Chess]", got)
	}

	r.RecordGroupLeave("Pseudo1", "Team")
	if got := r.GroupsOf("Pseudo1"); len(got) != 1 || got[0] != "Chess" {
		t.Fatalf("GroupsOf() after leave = %v, want [Chess]", got)
	}

	// durable data survives disconnects
	r.Unregister(s)
	if got := r.GroupsOf("Pseudo1"); len(got) != 1 {
		t.Fatalf("GroupsOf() after disconnect = %v, want [Chess]", got)
	}
}
