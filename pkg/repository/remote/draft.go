package remote

import (
	"context"
	"fmt"
	"net/http"
)

// draftNamespace adds the PUT/DELETE draft operations on top of the
// shared blob HEAD/GET/POST (§4.8's method/path table).
type draftNamespace struct {
	blobNamespace
}

func (d *draftNamespace) draftPath(id string) string {
	return fmt.Sprintf("/draft/%s", id)
}

func (d *draftNamespace) Save(ctx context.Context, id string, blob []byte) error {
	resp, err := d.r.do(ctx, http.MethodPut, d.draftPath(id), blob)
	if err != nil {
		return networkErr("save", err)
	}
	defer resp.Body.Close()
	_, err = operationError("save", resp, false)
	return err
}

func (d *draftNamespace) Delete(ctx context.Context, id string) error {
	resp, err := d.r.do(ctx, http.MethodDelete, d.draftPath(id), nil)
	if err != nil {
		return networkErr("delete", err)
	}
	defer resp.Body.Close()
	_, err = operationError("delete", resp, true)
	return err
}
