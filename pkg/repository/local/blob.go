package local

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/cuemby/nebula/pkg/repository"
)

// blobNamespace stores one file per id under dir. immutable
// namespaces (certificate, document, type) reject a second Create for
// the same id and are written read-only (0400); mutable ones
// (citation, draft) are written 0600.
type blobNamespace struct {
	dir       string
	immutable bool
}

func (b *blobNamespace) path(id string) string {
	return filepath.Join(b.dir, sanitize(id)+".bali")
}

func (b *blobNamespace) Exists(ctx context.Context, id string) (bool, error) {
	_, err := os.Stat(b.path(id))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (b *blobNamespace) Fetch(ctx context.Context, id string) ([]byte, bool, error) {
	blob, err := os.ReadFile(b.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return trimTrailingNewline(blob), true, nil
}

// Create writes blob exclusively: a pre-existing file fails
// KindAlreadyExists regardless of whether the namespace is immutable,
// since citation/draft use Create only as their "create if absent"
// primitive (§4.3). Exclusive-create (O_EXCL) is used rather than a
// probe-then-write to avoid the TOCTOU race the spec calls out as an
// acceptable-but-inferior alternative.
func (b *blobNamespace) Create(ctx context.Context, id string, blob []byte) error {
	mode := mutableMode
	if b.immutable {
		mode = immutableMode
	}
	f, err := os.OpenFile(b.path(id), os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return repository.Wrap(repository.KindAlreadyExists, "create", "", id, err)
		}
		return err
	}
	defer f.Close()
	_, err = f.Write(withTrailingNewline(blob))
	return err
}

func withTrailingNewline(blob []byte) []byte {
	if len(blob) > 0 && blob[len(blob)-1] == '\n' {
		return blob
	}
	return append(append([]byte{}, blob...), '\n')
}

func trimTrailingNewline(blob []byte) []byte {
	if len(blob) > 0 && blob[len(blob)-1] == '\n' {
		return blob[:len(blob)-1]
	}
	return blob
}
