package groupsig

import (
	"time"

	"github.com/timshannon/bolthold"
	bolt "go.etcd.io/bbolt"

	"github.com/Aaron1924/groupsig/cbor"
)

type (
	// BoltStore is a bolt-backed Store. It also keeps a journal of
	// admissions and revocations for the group's bookkeeping.
	BoltStore struct {
		bolt *bolthold.Store
	}

	// JournalRecord is the bookkeeping record of one member, maintained by
	// BoltStore alongside the registry lists.
	JournalRecord struct {
		ID        string
		Admitted  int64 // unix nanoseconds
		RevokedAt int64 // 0 while not revoked
	}
)

// NewBoltStore opens the bolt database at path, creating it if needed.
func NewBoltStore(path string) (*BoltStore, error) {
	b, err := bolthold.Open(path, 0600, &bolthold.Options{Options: &bolt.Options{Timeout: 1 * time.Second}})
	if err != nil {
		return nil, err
	}
	Logger.Debug("opened bolt registry store at ", path)
	return &BoltStore{bolt: b}, nil
}

func (s *BoltStore) Close() error {
	if s.bolt != nil {
		Logger.Debug("closing bolt registry store")
		return s.bolt.Close()
	}
	return nil
}

func (s *BoltStore) Get(list, key string) (*Entry, error) {
	var e Entry
	err := s.bolt.Bolt().View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(list))
		if bucket == nil {
			return ErrMemberNotFound
		}
		raw := bucket.Get([]byte(key))
		if raw == nil {
			return ErrMemberNotFound
		}
		return cbor.Unmarshal(raw, &e)
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *BoltStore) Put(list, key string, e *Entry) error {
	raw, err := cbor.Marshal(e)
	if err != nil {
		return err
	}
	return s.bolt.Bolt().Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(list))
		if err != nil {
			return err
		}
		return bucket.Put([]byte(key), raw)
	})
}

func (s *BoltStore) ForEach(list string, fn func(key string, e *Entry) error) error {
	return s.bolt.Bolt().View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(list))
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			var e Entry
			if err := cbor.Unmarshal(v, &e); err != nil {
				return err
			}
			return fn(string(k), &e)
		})
	})
}

// JournalAdmission records when a member entered the group. A replayed
// admission of the same ID keeps the original record.
func (s *BoltStore) JournalAdmission(id MemberID) error {
	err := s.bolt.Insert([]byte(id), &JournalRecord{
		ID:       string(id),
		Admitted: time.Now().UnixNano(),
	})
	if err == bolthold.ErrKeyExists {
		return nil
	}
	return err
}

// JournalRevocation stamps the member's record with the revocation time,
// creating the record if no admission was journaled here. Revoking twice
// keeps the first timestamp.
func (s *BoltStore) JournalRevocation(id MemberID) error {
	return s.bolt.Bolt().Update(func(tx *bolt.Tx) error {
		var rec JournalRecord
		switch err := s.bolt.TxGet(tx, []byte(id), &rec); err {
		case nil:
		case bolthold.ErrNotFound:
			rec = JournalRecord{ID: string(id)}
		default:
			return err
		}
		if rec.RevokedAt != 0 {
			return nil
		}
		rec.RevokedAt = time.Now().UnixNano()
		return s.bolt.TxUpsert(tx, []byte(id), &rec)
	})
}

// Journal returns the bookkeeping records of all members seen by this
// store.
func (s *BoltStore) Journal() ([]JournalRecord, error) {
	var records []JournalRecord
	if err := s.bolt.Find(&records, nil); err != nil {
		return nil, err
	}
	return records, nil
}
