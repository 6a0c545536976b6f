package chat

import (
	"testing"

	"chaton/internal/pkg/errs"
)

func TestGroupCreate(t *testing.T) {
	g := NewGroupStore()

	if err := g.Create("Team", "Pseudo3"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	members, ok := g.Members("Team")
	if !ok || len(members) != 1 || members[0] != "Pseudo3" {
		t.Fatalf("Members() = (%v, %v), want founder only", members, ok)
	}

	// existing group takes precedence, no overwrite
	if err := g.Create("Team", "Pseudo7"); err == nil || err.Code != errs.ErrGroupExists {
		t.Errorf("Create(existing) error = %v, want ErrGroupExists", err)
	}
	if members, _ := g.Members("Team"); len(members) != 1 {
		t.Errorf("Members() after rejected create = %v", members)
	}
}

func TestGroupAddMember(t *testing.T) {
	g := NewGroupStore()
	if err := g.Create("Team", "Pseudo3"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	added, err := g.AddMember("Team", "Pseudo7")
	if err != nil || !added {
		t.Fatalf("AddMember() = (%v, %v), want (true, nil)", added, err)
	}

	// idempotent
	added, err = g.AddMember("Team", "Pseudo7")
	if err != nil || added {
		t.Fatalf("AddMember(existing) = (%v, %v), want (false, nil)", added, err)
	}

	if _, err := g.AddMember("Ghost", "Pseudo7"); err == nil || err.Code != errs.ErrGroupNotFound {
		t.Errorf("AddMember(absent group) error = %v, want ErrGroupNotFound", err)
	}

	members, _ := g.Members("Team")
	if len(members) != 2 || members[0] != "Pseudo3" || members[1] != "Pseudo7" {
		t.Errorf("Members() = %v, want insertion order without duplicates", members)
	}
}

func TestGroupRemoveMember(t *testing.T) {
	g := NewGroupStore()
	if err := g.Create("Team", "Pseudo3"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := g.AddMember("Team", "Pseudo7"); err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}

	deleted, err := g.RemoveMember("Team", "Pseudo3")
	if err != nil || deleted {
		t.Fatalf("RemoveMember() = (%v, %v), want (false, nil)", deleted, err)
	}

	if _, err := g.RemoveMember("Team", "Pseudo3"); err == nil || err.Code != errs.ErrNotInGroup {
		t.Errorf("RemoveMember(non-member) error = %v, want ErrNotInGroup", err)
	}

	// last member leaving deletes the group
	deleted, err = g.RemoveMember("Team", "Pseudo7")
	if err != nil || !deleted {
		t.Fatalf("RemoveMember(last) = (%v, %v), want (true, nil)", deleted, err)
	}
	if _, ok := g.Members("Team"); ok {
		t.Error("group still exists after its last member left")
	}

	if _, err := g.RemoveMember("Ghost", "Pseudo3"); err == nil || err.Code != errs.ErrNotInGroup {
		t.Errorf("RemoveMember(absent group) error = %v, want ErrNotInGroup", err)
	}
}

func TestGroupIsMember(t *testing.T) {
	g := NewGroupStore()
	if err := g.Create("Team", "Pseudo3"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if !g.IsMember("Team", "Pseudo3") {
		t.Error("IsMember(founder) = false")
	}
	if g.IsMember("Team", "Pseudo7") {
		t.Error("IsMember(stranger) = true")
	}
	if g.IsMember("Ghost", "Pseudo3") {
		t.Error("IsMember(absent group) = true")
	}
}

func TestMembersReturnsCopy(t *testing.T) {
	g := NewGroupStore()
	if err := g.Create("Team", "Pseudo3"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	members, _ := g.Members("Team")
	members[0] = "Tampered"

	fresh, _ := g.Members("Team")
	if fresh[0] != "Pseudo3" {
		t.Error("Members() exposed internal state")
	}
}
