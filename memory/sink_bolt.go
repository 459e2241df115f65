package memory

import (
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/hupe1980/synapseflow/core"
)

var recordsBucket = []byte("records")

// BoltSink persists the record mapping in a BoltDB file, one key per user.
// Save replaces the whole bucket so the stored state always mirrors the
// in-process mapping.
type BoltSink struct {
	db *bolt.DB
}

// NewBoltSink opens (or creates) a BoltDB database at path.
func NewBoltSink(path string) (*BoltSink, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open bolt sink: %w", err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(recordsBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("create bolt bucket: %w", err)
	}

	return &BoltSink{db: db}, nil
}

// Load implements core.Sink.
func (s *BoltSink) Load() (map[string][]core.Record, error) {
	records := map[string][]core.Record{}

	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(recordsBucket).ForEach(func(k, v []byte) error {
			var recs []core.Record
			if err := json.Unmarshal(v, &recs); err != nil {
				return fmt.Errorf("decode records for %q: %w", k, err)
			}
			records[string(k)] = recs
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Save implements core.Sink.
func (s *BoltSink) Save(records map[string][]core.Record) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(recordsBucket); err != nil {
			return err
		}
		bkt, err := tx.CreateBucket(recordsBucket)
		if err != nil {
			return err
		}
		for user, recs := range records {
			raw, err := json.Marshal(recs)
			if err != nil {
				return fmt.Errorf("encode records for %q: %w", user, err)
			}
			if err := bkt.Put([]byte(user), raw); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close releases the BoltDB file handle.
func (s *BoltSink) Close() error { return s.db.Close() }
