package portal

import (
	"sync"

	"github.com/smartclinic/clinic-system/internal/core/domain"
)

// Well-known store keys. The token and role are written together by
// the authenticator and read by the card renderer and router.
const (
	KeyToken = "token"
	KeyRole  = "userRole"
)

// MemoryStore is an in-process Store. The original surface this models
// was single-threaded, but card action handlers run concurrently here,
// so reads and writes are guarded.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *MemoryStore) Get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

func (s *MemoryStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]string)
}

// CurrentSession reads the session from the store. It returns false
// unless both the token and the role are present: a half-written
// session is treated as no session at all.
func CurrentSession(store Store) (domain.Session, bool) {
	token := store.Get(KeyToken)
	role := store.Get(KeyRole)
	if token == "" || role == "" {
		return domain.Session{}, false
	}
	return domain.Session{Token: token, Role: domain.ParseRole(role)}, true
}

// CurrentRole reads the role from the store, defaulting to guest when
// absent or unrecognised. It never defaults to a privileged role.
func CurrentRole(store Store) domain.Role {
	return domain.ParseRole(store.Get(KeyRole))
}
