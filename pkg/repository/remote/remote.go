// Package remote implements the HTTP repository binding (§4.8): for
// every operation it derives a fresh credential and issues one
// request against a remote nebula service, translating the response
// status code back into the repository error taxonomy.
package remote

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cuemby/nebula/pkg/notary"
	"github.com/cuemby/nebula/pkg/repository"
	"github.com/hashicorp/go-retryablehttp"
)

const mediaType = "application/bali"

// Repository is the HTTP-backed repository.Repository. One Repository
// talks to one service base URL on behalf of one notary's identity.
type Repository struct {
	baseURL string
	client  *retryablehttp.Client
	notary  notary.Notary

	citations    *blobNamespace
	certificates *blobNamespace
	drafts       *draftNamespace
	documents    *blobNamespace
	types        *blobNamespace
	queue        *queueNamespace
}

// Option configures the underlying retryablehttp.Client before New
// returns.
type Option func(*retryablehttp.Client)

// WithRetryMax overrides the default retry budget, mainly useful in
// tests that want a fast, deterministic single attempt.
func WithRetryMax(n int) Option {
	return func(c *retryablehttp.Client) { c.RetryMax = n }
}

// WithRetryWait overrides the default backoff window.
func WithRetryWait(min, max time.Duration) Option {
	return func(c *retryablehttp.Client) { c.RetryWaitMin = min; c.RetryWaitMax = max }
}

// New constructs a Repository against baseURL (no trailing slash)
// using n to derive a fresh Nebula-Credentials header per request.
func New(baseURL string, n notary.Notary, opts ...Option) *Repository {
	client := retryablehttp.NewClient()
	client.Logger = nil
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	for _, opt := range opts {
		opt(client)
	}

	r := &Repository{baseURL: strings.TrimRight(baseURL, "/"), client: client, notary: n}
	r.citations = &blobNamespace{r: r, namespace: string(repository.NamespaceCitation)}
	r.certificates = &blobNamespace{r: r, namespace: string(repository.NamespaceCertificate)}
	r.drafts = &draftNamespace{blobNamespace{r: r, namespace: string(repository.NamespaceDraft)}}
	r.documents = &blobNamespace{r: r, namespace: string(repository.NamespaceDocument)}
	r.types = &blobNamespace{r: r, namespace: string(repository.NamespaceType)}
	r.queue = &queueNamespace{r: r}
	return r
}

func (r *Repository) Citation() repository.BlobNamespace    { return r.citations }
func (r *Repository) Certificate() repository.BlobNamespace { return r.certificates }
func (r *Repository) Draft() repository.DraftNamespace      { return r.drafts }
func (r *Repository) Document() repository.BlobNamespace    { return r.documents }
func (r *Repository) Type() repository.BlobNamespace        { return r.types }
func (r *Repository) Queue() repository.QueueNamespace      { return r.queue }

// do issues method against path with an optional body, setting a
// freshly-derived Nebula-Credentials header and the Content-Type the
// wire format requires when a body is present.
func (r *Repository) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	cred, err := credentialHeader(r.notary)
	if err != nil {
		return nil, fmt.Errorf("derive credentials: %w", err)
	}

	var reqBody interface{}
	if body != nil {
		reqBody = body
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, method, r.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Nebula-Credentials", cred)
	if body != nil {
		req.Header.Set("Content-Type", mediaType)
	}
	return r.client.Do(req)
}

// operationError classifies a non-2xx response into the repository
// error taxonomy; absentOn404 tells it to instead report success with
// ok=false for the operations (exists, fetch, delete, dequeue) that
// treat a missing resource as a normal outcome rather than an error.
func operationError(operation string, resp *http.Response, absentOn404 bool) (ok bool, err error) {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return true, nil
	}
	if absentOn404 && resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	kind := repository.KindFromHTTPStatus(resp.StatusCode)
	return false, repository.Wrap(kind, operation, "", "", fmt.Errorf("unexpected status %d", resp.StatusCode))
}

// networkErr wraps a transport-level failure (connection refused,
// timeout, retries exhausted) as KindNetworkError, distinct from the
// status-code-derived kinds operationError produces.
func networkErr(operation string, cause error) error {
	return repository.Wrap(repository.KindNetworkError, operation, "", "", cause)
}
