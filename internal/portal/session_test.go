package portal

import (
	"testing"

	"github.com/smartclinic/clinic-system/internal/core/domain"
)

func TestCurrentSession_BothHalvesRequired(t *testing.T) {
	store := NewMemoryStore()

	if _, ok := CurrentSession(store); ok {
		t.Fatalf("expected no session from empty store")
	}

	store.Set(KeyToken, "abc")
	if _, ok := CurrentSession(store); ok {
		t.Fatalf("token without role must not form a session")
	}

	store.Clear()
	store.Set(KeyRole, "doctor")
	if _, ok := CurrentSession(store); ok {
		t.Fatalf("role without token must not form a session")
	}

	store.Set(KeyToken, "abc")
	session, ok := CurrentSession(store)
	if !ok {
		t.Fatalf("expected session with both halves present")
	}
	if session.Token != "abc" || session.Role != domain.RoleDoctor {
		t.Fatalf("unexpected session: %+v", session)
	}
}

func TestCurrentRole_DefaultsToGuest(t *testing.T) {
	store := NewMemoryStore()

	if role := CurrentRole(store); role != domain.RoleGuest {
		t.Fatalf("empty store: expected guest, got %s", role)
	}

	store.Set(KeyRole, "superuser")
	if role := CurrentRole(store); role != domain.RoleGuest {
		t.Fatalf("unknown role: expected guest, got %s", role)
	}

	store.Set(KeyRole, "admin")
	if role := CurrentRole(store); role != domain.RoleAdmin {
		t.Fatalf("expected admin, got %s", role)
	}
}

func TestMemoryStore_LastWriteWins(t *testing.T) {
	store := NewMemoryStore()
	store.Set("k", "one")
	store.Set("k", "two")
	if got := store.Get("k"); got != "two" {
		t.Fatalf("expected two, got %q", got)
	}

	store.Delete("k")
	if got := store.Get("k"); got != "" {
		t.Fatalf("expected empty after delete, got %q", got)
	}
}
