package local

import (
	"context"
	"os"
)

// draftNamespace adds the idempotent overwrite and idempotent-absent
// delete the draft namespace needs on top of the shared blob CRUD
// (§4.3). Drafts are always written 0600 — blobNamespace.immutable is
// left false for the embedded namespace.
type draftNamespace struct {
	blobNamespace
}

func (d *draftNamespace) Save(ctx context.Context, id string, blob []byte) error {
	return os.WriteFile(d.path(id), withTrailingNewline(blob), mutableMode)
}

func (d *draftNamespace) Delete(ctx context.Context, id string) error {
	err := os.Remove(d.path(id))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
