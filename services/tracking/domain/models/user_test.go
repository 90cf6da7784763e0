package models

import "testing"

func TestUser_Roles(t *testing.T) {
	u := NewUser("ada@example.com", "Ada", "Lovelace", "hash")
	admin := NewID[roleTag]()
	viewer := NewID[roleTag]()

	if u.HasRole(admin) {
		t.Fatal("new user must have no roles")
	}

	u.AssignRole(admin)
	u.AssignRole(admin)
	u.AssignRole(viewer)
	if len(u.RoleIDs) != 2 {
		t.Fatalf("expected 2 roles, got %d", len(u.RoleIDs))
	}

	u.UnassignRole(admin)
	if u.HasRole(admin) {
		t.Fatal("admin role should be removed")
	}
	if !u.HasRole(viewer) {
		t.Fatal("viewer role should remain")
	}
}

func TestUser_UpdateDetailsKeepsPasswordWhenEmpty(t *testing.T) {
	u := NewUser("ada@example.com", "Ada", "Lovelace", "old-hash")

	u.UpdateDetails("ada@new.example.com", "Ada", "King", "")
	if u.PasswordHash != "old-hash" {
		t.Fatalf("expected password hash to be kept, got %q", u.PasswordHash)
	}

	u.UpdateDetails("ada@new.example.com", "Ada", "King", "new-hash")
	if u.PasswordHash != "new-hash" {
		t.Fatalf("expected new password hash, got %q", u.PasswordHash)
	}
	if u.Email != "ada@new.example.com" || u.LastName != "King" {
		t.Fatalf("unexpected details: %+v", u)
	}
}
