package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// queueNamespace implements repository.QueueNamespace over
// PUT/GET /queue/<queueId> (§4.8's method/path table).
type queueNamespace struct {
	r *Repository
}

func (q *queueNamespace) path(queueID string) string {
	return fmt.Sprintf("/queue/%s", queueID)
}

func (q *queueNamespace) Enqueue(ctx context.Context, queueID string, blob []byte) error {
	resp, err := q.r.do(ctx, http.MethodPut, q.path(queueID), blob)
	if err != nil {
		return networkErr("enqueue", err)
	}
	defer resp.Body.Close()
	_, err = operationError("enqueue", resp, false)
	return err
}

func (q *queueNamespace) Dequeue(ctx context.Context, queueID string) ([]byte, bool, error) {
	resp, err := q.r.do(ctx, http.MethodGet, q.path(queueID), nil)
	if err != nil {
		return nil, false, networkErr("dequeue", err)
	}
	defer resp.Body.Close()

	ok, err := operationError("dequeue", resp, true)
	if err != nil || !ok {
		return nil, ok, err
	}

	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, networkErr("dequeue", err)
	}
	if len(blob) == 0 {
		return nil, false, nil
	}
	return blob, true, nil
}
