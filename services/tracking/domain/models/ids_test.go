package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestEmptySentinels(t *testing.T) {
	if !EmptyProjectID.IsEmpty() {
		t.Fatal("EmptyProjectID must be empty")
	}
	if !EmptyTimeEntryID.IsEmpty() {
		t.Fatal("EmptyTimeEntryID must be empty")
	}
	if NewID[projectTag]().IsEmpty() {
		t.Fatal("a minted ID must not be empty")
	}
}

func TestParseID(t *testing.T) {
	t.Run("valid uuid", func(t *testing.T) {
		raw := "550e8400-e29b-41d4-a716-446655440000"
		id, err := ParseID[userTag](raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id.String() != raw {
			t.Fatalf("expected %q, got %q", raw, id.String())
		}
	})

	t.Run("invalid uuid", func(t *testing.T) {
		if _, err := ParseID[userTag]("not-a-uuid"); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

func TestIDFrom(t *testing.T) {
	u := uuid.New()
	if IDFrom[roleTag](u).UUID != u {
		t.Fatal("IDFrom must keep the underlying UUID")
	}
}
