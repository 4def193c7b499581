// Package bbolt implements the ports.BuildState interface using bbolt
// (embedded B+ tree). Build records are JSON values in a single bucket.
// Writes are transactional — a crash mid-write cannot corrupt previously
// committed data.
package bbolt

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/corey/symscan/internal/ports"
)

// Bucket keys
var (
	bucketBuilds = []byte("builds")
	keyLast      = []byte("last")
)

// Store implements ports.BuildState backed by bbolt.
type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveBuild records the outcome of a build attempt, replacing any prior record.
func (s *Store) SaveBuild(rec *ports.BuildRecord) error {
	if rec == nil {
		return fmt.Errorf("nil build record")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal build record: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketBuilds)
		if err != nil {
			return err
		}
		return b.Put(keyLast, data)
	})
}

// LastBuild returns the most recent build record, or nil, nil when no build
// has been recorded.
func (s *Store) LastBuild() (*ports.BuildRecord, error) {
	var rec *ports.BuildRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketBuilds)
		if b == nil {
			return nil
		}
		data := b.Get(keyLast)
		if data == nil {
			return nil
		}
		rec = &ports.BuildRecord{}
		return json.Unmarshal(data, rec)
	})
	if err != nil {
		return nil, fmt.Errorf("load build record: %w", err)
	}
	return rec, nil
}

// Clear removes all recorded build state. Idempotent.
func (s *Store) Clear() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketBuilds) == nil {
			return nil
		}
		return tx.DeleteBucket(bucketBuilds)
	})
}
