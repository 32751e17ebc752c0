package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// blobNamespace is the client-side repository.BlobNamespace for one
// namespace, issuing HEAD/GET/POST against /<namespace>/<id> (§4.8's
// method/path table).
type blobNamespace struct {
	r         *Repository
	namespace string
}

func (b *blobNamespace) path(id string) string {
	return fmt.Sprintf("/%s/%s", b.namespace, id)
}

func (b *blobNamespace) Exists(ctx context.Context, id string) (bool, error) {
	resp, err := b.r.do(ctx, http.MethodHead, b.path(id), nil)
	if err != nil {
		return false, networkErr("exists", err)
	}
	defer resp.Body.Close()
	return operationError("exists", resp, true)
}

func (b *blobNamespace) Fetch(ctx context.Context, id string) ([]byte, bool, error) {
	resp, err := b.r.do(ctx, http.MethodGet, b.path(id), nil)
	if err != nil {
		return nil, false, networkErr("fetch", err)
	}
	defer resp.Body.Close()

	ok, err := operationError("fetch", resp, true)
	if err != nil || !ok {
		return nil, ok, err
	}

	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, networkErr("fetch", err)
	}
	if len(blob) == 0 {
		return nil, false, nil
	}
	return blob, true, nil
}

func (b *blobNamespace) Create(ctx context.Context, id string, blob []byte) error {
	resp, err := b.r.do(ctx, http.MethodPost, b.path(id), blob)
	if err != nil {
		return networkErr("create", err)
	}
	defer resp.Body.Close()
	_, err = operationError("create", resp, false)
	return err
}
