// Package local implements the filesystem repository binding (§4.7):
// a directory tree under a configured root, one subdirectory per
// namespace, POSIX permission bits distinguishing immutable blobs
// from drafts and queued messages, and exclusive-create semantics
// for the three append-only namespaces.
package local

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/cuemby/nebula/pkg/repository"
)

const (
	dirMode      os.FileMode = 0700
	immutableMode os.FileMode = 0400
	mutableMode  os.FileMode = 0600
)

// DefaultRoot returns "<user-home>/.nebula/" per §6's "Environment"
// clause, mirroring the teacher's NewBoltStore(dataDir) convention of
// taking an explicit directory and falling back to a user-scoped
// default only when the caller passes none.
func DefaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".nebula"), nil
}

// Repository is the filesystem-backed repository.Repository. It is
// safe for concurrent use without locks of its own: concurrent creates
// on an immutable namespace are decided by the exclusive-create open,
// concurrent dequeues by the unlink race, and the one-shot directory
// setup is guarded by sync.Once so that
// repeated construction (or concurrent construction against the same
// root from multiple goroutines in one process) never re-runs it.
type Repository struct {
	root string

	once    sync.Once
	initErr error

	citations    *blobNamespace
	certificates *blobNamespace
	drafts       *draftNamespace
	documents    *blobNamespace
	types        *blobNamespace
	queue        repository.QueueNamespace
}

// New constructs a Repository rooted at dir and runs its one-shot
// directory initialization immediately. If dir is empty, DefaultRoot
// is used. The returned Repository's directories exist and have the
// required permission bits by the time New returns.
func New(dir string) (*Repository, error) {
	if dir == "" {
		d, err := DefaultRoot()
		if err != nil {
			return nil, err
		}
		dir = d
	}

	r := &Repository{root: dir}
	r.citations = &blobNamespace{dir: filepath.Join(dir, "repository", "citations"), immutable: false}
	r.certificates = &blobNamespace{dir: filepath.Join(dir, "repository", "certificates"), immutable: true}
	r.drafts = &draftNamespace{blobNamespace{dir: filepath.Join(dir, "repository", "drafts"), immutable: false}}
	r.documents = &blobNamespace{dir: filepath.Join(dir, "repository", "documents"), immutable: true}
	r.types = &blobNamespace{dir: filepath.Join(dir, "repository", "types"), immutable: true}
	fq := &fileQueue{root: filepath.Join(dir, "repository", "queues")}
	r.queue = fq

	if err := r.initializeAPI(); err != nil {
		return nil, err
	}
	return r, nil
}

// WithQueue swaps the default filesystem queue backend for an
// alternate repository.QueueNamespace implementation (e.g.
// BoltQueueStore). Call after New.
func (r *Repository) WithQueue(q repository.QueueNamespace) *Repository {
	r.queue = q
	return r
}

// initializeAPI creates every namespace directory at 0700. It is
// idempotent and runs at most once per Repository value (§4.7,
// resolving §9's open question as a sync.Once-guarded flag rather
// than the source's self-disabling method slot); a second call
// against the same value is a no-op, and MkdirAll itself tolerates
// concurrent processes racing to create the same directory.
func (r *Repository) initializeAPI() error {
	r.once.Do(func() {
		dirs := []string{
			r.citations.dir,
			r.certificates.dir,
			r.drafts.dir,
			r.documents.dir,
			r.types.dir,
			filepath.Join(r.root, "repository", "queues"),
		}
		for _, d := range dirs {
			if err := os.MkdirAll(d, dirMode); err != nil {
				r.initErr = err
				return
			}
		}
	})
	return r.initErr
}

func (r *Repository) Citation() repository.BlobNamespace    { return r.citations }
func (r *Repository) Certificate() repository.BlobNamespace { return r.certificates }
func (r *Repository) Draft() repository.DraftNamespace      { return r.drafts }
func (r *Repository) Document() repository.BlobNamespace    { return r.documents }
func (r *Repository) Type() repository.BlobNamespace        { return r.types }
func (r *Repository) Queue() repository.QueueNamespace      { return r.queue }

// sanitize replaces path separators so a tag or identifier can never
// escape its namespace directory (§4.7's "Name sanitization").
func sanitize(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		if r == '/' {
			r = '_'
		}
		out = append(out, r)
	}
	return string(out)
}
