package local

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/cuemby/nebula/pkg/identity"
)

// fileQueue implements repository.QueueNamespace as one directory per
// queue id holding one file per queued message, named with a random
// tag. At-most-once delivery relies on unlink being atomic and
// failing with ENOENT for whichever racing dequeuer loses (§4.7,
// §5's "Shared resources").
type fileQueue struct {
	root string
}

func (q *fileQueue) dir(queueID string) string {
	return filepath.Join(q.root, sanitize(queueID))
}

func (q *fileQueue) Enqueue(ctx context.Context, queueID string, blob []byte) error {
	dir := q.dir(queueID)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return err
	}
	name := filepath.Join(dir, string(identity.NewTag())+".bali")
	return os.WriteFile(name, withTrailingNewline(blob), mutableMode)
}

// Dequeue loops while the queue directory is non-empty: list entries,
// pick one uniformly at random, read it, attempt to unlink it. A lost
// race (ENOENT, or permission-denied-after-read) is not an error —
// the loop just retries against the remaining entries.
func (q *fileQueue) Dequeue(ctx context.Context, queueID string) ([]byte, bool, error) {
	dir := q.dir(queueID)
	for {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, false, nil
			}
			return nil, false, err
		}
		if len(entries) == 0 {
			return nil, false, nil
		}

		name := entries[rand.Intn(len(entries))].Name()
		path := filepath.Join(dir, name)

		blob, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, false, err
		}

		if err := os.Remove(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			if os.IsPermission(err) {
				continue
			}
			return nil, false, err
		}

		return trimTrailingNewline(blob), true, nil
	}
}
