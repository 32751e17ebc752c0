package local

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"

	"github.com/cuemby/nebula/pkg/identity"
	bolt "go.etcd.io/bbolt"
)

// BoltQueueStore is an alternate repository.QueueNamespace backed by
// a single BoltDB file, one bucket per queue id created on first use.
// It is a swappable second queue backend for hosts where
// directory-per-message contention on the filesystem queue is
// undesirable; it does not change the wire semantics of Enqueue or
// Dequeue, only how entries are held. Grounded on
// pkg/storage.BoltStore's bucket-per-namespace, json.Marshal-value
// idiom (adapted here to raw blob values, since a notarized document
// is already serialized bytes).
type BoltQueueStore struct {
	db *bolt.DB
}

// NewBoltQueueStore opens (creating if absent) a BoltDB file at
// <dir>/queues.db.
func NewBoltQueueStore(dir string) (*BoltQueueStore, error) {
	dbPath := filepath.Join(dir, "queues.db")
	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("open queue database: %w", err)
	}
	return &BoltQueueStore{db: db}, nil
}

func (s *BoltQueueStore) Close() error {
	return s.db.Close()
}

func (s *BoltQueueStore) Enqueue(ctx context.Context, queueID string, blob []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(queueID))
		if err != nil {
			return err
		}
		key := []byte(identity.NewTag())
		return bucket.Put(key, blob)
	})
}

// Dequeue picks a uniformly random key from the queue's bucket,
// copies its value, deletes it, and returns the copy, all inside one
// transaction — BoltDB's single-writer transactions make this atomic
// without the unlink-race the filesystem backend needs.
func (s *BoltQueueStore) Dequeue(ctx context.Context, queueID string) ([]byte, bool, error) {
	var blob []byte
	var ok bool
	err := s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(queueID))
		if bucket == nil {
			return nil
		}

		var keys [][]byte
		c := bucket.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			keys = append(keys, append([]byte{}, k...))
		}
		if len(keys) == 0 {
			return nil
		}

		key := keys[rand.Intn(len(keys))]
		v := bucket.Get(key)
		blob = append([]byte{}, v...)
		ok = true
		return bucket.Delete(key)
	})
	if err != nil {
		return nil, false, err
	}
	return blob, ok, nil
}
