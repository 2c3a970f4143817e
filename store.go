package groupsig

import "sync"

// Store is the durable key-value backing of the registries. Lists are
// independent namespaces, keys are member IDs. Implementations must allow
// concurrent use and make individual puts atomic; the registries on top
// never delete or overwrite.
type Store interface {
	// Get returns the entry under list/key, or ErrMemberNotFound.
	Get(list, key string) (*Entry, error)
	// Put records e under list/key.
	Put(list, key string, e *Entry) error
	// ForEach calls fn for every entry of list, stopping at the first
	// error, which it returns.
	ForEach(list string, fn func(key string, e *Entry) error) error
}

// Journaler is implemented by stores that keep bookkeeping records of
// admissions and revocations. The registries feed it on successful
// appends.
type Journaler interface {
	JournalAdmission(id MemberID) error
	JournalRevocation(id MemberID) error
}

// MemStore is an in-memory Store for tests and ephemeral groups. It keeps
// no journal.
type MemStore struct {
	mu    sync.RWMutex
	lists map[string]map[string]*Entry
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{lists: make(map[string]map[string]*Entry)}
}

func (s *MemStore) Get(list, key string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.lists[list][key]
	if !ok {
		return nil, ErrMemberNotFound
	}
	return e, nil
}

func (s *MemStore) Put(list, key string, e *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lists[list] == nil {
		s.lists[list] = make(map[string]*Entry)
	}
	s.lists[list][key] = e
	return nil
}

// ForEach iterates over a point-in-time copy of the list, so fn is free to
// use the store itself.
func (s *MemStore) ForEach(list string, fn func(key string, e *Entry) error) error {
	s.mu.RLock()
	entries := make(map[string]*Entry, len(s.lists[list]))
	for k, e := range s.lists[list] {
		entries[k] = e
	}
	s.mu.RUnlock()

	for k, e := range entries {
		if err := fn(k, e); err != nil {
			return err
		}
	}
	return nil
}
