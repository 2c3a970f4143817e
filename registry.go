package groupsig

import (
	"bytes"
	"sync"

	"github.com/go-errors/errors"
)

// Entry is the registry record of one admitted member: the member's
// credential and the commitment to its signing secret, in the scheme's
// binary element forms. How each field is used is up to the scheme.
type Entry struct {
	Credential []byte `json:"credential"`
	Commitment []byte `json:"commitment"`
}

// Equal reports whether two entries hold the same material.
func (e *Entry) Equal(other *Entry) bool {
	return bytes.Equal(e.Credential, other.Credential) &&
		bytes.Equal(e.Commitment, other.Commitment)
}

const (
	gmlList = "gml"
	crlList = "crl"
)

// registry is an append-only map from member IDs to entries, over one list
// of a Store.
type registry struct {
	mu    sync.Mutex
	store Store
	list  string
}

// GML is the Group Membership List: the append-only record of every
// completed admission, consulted when opening a signature.
type GML struct{ registry }

// CRL is the Certificate Revocation List: entries copied from the GML by a
// scheme's Reveal, consulted when tracing a signature.
type CRL struct{ registry }

// NewGML returns the membership list kept in s.
func NewGML(s Store) *GML {
	return &GML{registry{store: s, list: gmlList}}
}

// NewCRL returns the revocation list kept in s.
func NewCRL(s Store) *CRL {
	return &CRL{registry{store: s, list: crlList}}
}

// Append records e under id and journals the admission when the store
// keeps a journal. Appending the identical entry again is a no-op;
// appending different material under an existing id fails with
// ErrDuplicateEntry. Entries are never overwritten or deleted.
func (l *GML) Append(id MemberID, e *Entry) error {
	return l.append(id, e, Journaler.JournalAdmission)
}

// Append records e under id and journals the revocation when the store
// keeps a journal. Duplicate semantics are those of GML.Append.
func (l *CRL) Append(id MemberID, e *Entry) error {
	return l.append(id, e, Journaler.JournalRevocation)
}

func (r *registry) append(id MemberID, e *Entry, journal func(Journaler, MemberID) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.store.Get(r.list, string(id))
	switch err {
	case nil:
		if existing.Equal(e) {
			return nil
		}
		return errors.Errorf("%w: %s", ErrDuplicateEntry, id)
	case ErrMemberNotFound:
	default:
		return err
	}

	if err := r.store.Put(r.list, string(id), e); err != nil {
		return err
	}
	if j, ok := r.store.(Journaler); ok && journal != nil {
		return journal(j, id)
	}
	return nil
}

// Get returns the entry recorded under id, or ErrMemberNotFound.
func (r *registry) Get(id MemberID) (*Entry, error) {
	return r.store.Get(r.list, string(id))
}

// ForEach calls fn for every entry, stopping at the first error, which it
// returns.
func (r *registry) ForEach(fn func(MemberID, *Entry) error) error {
	return r.store.ForEach(r.list, func(key string, e *Entry) error {
		return fn(MemberID(key), e)
	})
}

// Snapshot is a portable image of one registry. Distribute it wrapped by
// the signed package when consumers must authenticate its origin.
type Snapshot struct {
	List    string              `json:"list"`
	Entries map[MemberID]*Entry `json:"entries"`
}

// Snapshot exports every entry of the registry.
func (r *registry) Snapshot() (*Snapshot, error) {
	snap := &Snapshot{List: r.list, Entries: make(map[MemberID]*Entry)}
	err := r.ForEach(func(id MemberID, e *Entry) error {
		snap.Entries[id] = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Restore appends every entry of snap to the registry, without journaling.
// Restoring on top of conflicting material fails with ErrDuplicateEntry.
func (r *registry) Restore(snap *Snapshot) error {
	if snap.List != r.list {
		return errors.Errorf("cannot restore a %q snapshot into the %q list", snap.List, r.list)
	}
	for id, e := range snap.Entries {
		if err := r.append(id, e, nil); err != nil {
			return err
		}
	}
	return nil
}
