// Package client implements the full Client API operation table (§4.6):
// the single surface applications use to read and write notarized
// documents, types, drafts, and queues against a Repository.
package client

import (
	"context"
	"fmt"

	"github.com/cuemby/nebula/pkg/cache"
	"github.com/cuemby/nebula/pkg/identity"
	"github.com/cuemby/nebula/pkg/language"
	"github.com/cuemby/nebula/pkg/log"
	"github.com/cuemby/nebula/pkg/metrics"
	"github.com/cuemby/nebula/pkg/notary"
	"github.com/cuemby/nebula/pkg/repository"
	"github.com/cuemby/nebula/pkg/validate"
)

// Well-known queue identifiers, per §4.6.
const (
	SendQueue  = "JXT095QY01HBLHPAW04ZR5WSH41MWG4H"
	EventQueue = "3RMGDVN7D6HLAPFXQNPF7DV71V3MAL43"
)

// Client is the facade applications call into. One Client wraps one
// repository, one notary, and a private set of bounded caches; there
// is no process-wide shared state.
type Client struct {
	repo    repository.Repository
	notary  notary.Notary
	caches  *cache.Caches
	engine  *validate.Engine
	account identity.Tag
}

// New builds a Client. caches may be nil to get the standard
// capacities from §4.5.
func New(repo repository.Repository, n notary.Notary, caches *cache.Caches) *Client {
	if caches == nil {
		caches = cache.NewCaches()
	}
	return &Client{
		repo:    repo,
		notary:  n,
		caches:  caches,
		engine:  validate.New(repo, n, caches.Certificates),
		account: n.GetAccountID(),
	}
}

// op logs entry/failure and records per-operation metrics, in the
// teacher's WithComponent/WithNodeID logging idiom (generalized here
// to WithAccountID since this domain has accounts, not nodes).
func (c *Client) op(operation string) (started bool, done func(err error)) {
	logger := log.WithAccountID(string(c.account)).With().Str("component", "client").Logger()
	logger.Debug().Str("operation", operation).Msg("client operation started")
	timer := metrics.NewTimer()
	return true, func(err error) {
		outcome := "ok"
		if err != nil {
			outcome = "error"
			logger.Error().Str("operation", operation).Err(err).Msg("client operation failed")
		}
		metrics.APIRequestsTotal.WithLabelValues(operation, outcome).Inc()
		timer.ObserveDurationVec(metrics.APIRequestDuration, operation)
	}
}

func (c *Client) wrap(kind repository.Kind, operation, identifier string, cause error) error {
	return repository.Wrap(kind, operation, string(c.account), identifier, cause)
}

// GetCitation returns the notary's own certificate citation.
func (c *Client) GetCitation() identity.Citation {
	return c.notary.GetCitation()
}

// fetchValidated is the shared "cache → fetch → parse → validate
// citation → validate chain → cache" shape used by
// RetrieveCertificate, RetrieveType, and RetrieveDocument (§4.6).
func (c *Client) fetchValidated(ctx context.Context, operation string, ns repository.BlobNamespace, fifo *cache.FIFO, citation identity.Citation) (*language.NotarizedDocument, bool, error) {
	id, err := identity.ExtractID(citation)
	if err != nil {
		return nil, false, c.wrap(repository.KindInvalidCitation, operation, "", err)
	}

	if blob, ok := fifo.Get(id); ok {
		doc, err := language.ParseDocument(blob)
		if err != nil {
			return nil, false, c.wrap(repository.KindDocumentInvalid, operation, id, err)
		}
		return doc, true, nil
	}

	blob, ok, err := ns.Fetch(ctx, id)
	if err != nil {
		return nil, false, c.wrap(repository.KindServerError, operation, id, err)
	}
	if !ok {
		return nil, false, nil
	}

	doc, err := language.ParseDocument(blob)
	if err != nil {
		return nil, false, c.wrap(repository.KindDocumentInvalid, operation, id, err)
	}
	if !c.notary.CitationMatches(citation, doc) {
		return nil, false, c.wrap(repository.KindInvalidCitation, operation, id, nil)
	}
	if err := c.engine.Validate(ctx, doc); err != nil {
		return nil, false, err
	}

	fifo.Put(id, blob)
	return doc, true, nil
}

// RetrieveCertificate implements §4.6.
func (c *Client) RetrieveCertificate(ctx context.Context, citation identity.Citation) (*language.Component, bool, error) {
	const operation = "retrieveCertificate"
	_, done := c.op(operation)
	doc, ok, err := c.fetchValidated(ctx, operation, c.repo.Certificate(), c.caches.Certificates, citation)
	done(err)
	if !ok || err != nil {
		return nil, ok, err
	}
	return doc.Component, true, nil
}

// RetrieveType implements §4.6.
func (c *Client) RetrieveType(ctx context.Context, citation identity.Citation) (*language.Component, bool, error) {
	const operation = "retrieveType"
	_, done := c.op(operation)
	doc, ok, err := c.fetchValidated(ctx, operation, c.repo.Type(), c.caches.Types, citation)
	done(err)
	if !ok || err != nil {
		return nil, ok, err
	}
	return doc.Component, true, nil
}

// RetrieveDocument implements §4.6.
func (c *Client) RetrieveDocument(ctx context.Context, citation identity.Citation) (*language.Component, bool, error) {
	const operation = "retrieveDocument"
	_, done := c.op(operation)
	doc, ok, err := c.fetchValidated(ctx, operation, c.repo.Document(), c.caches.Documents, citation)
	done(err)
	if !ok || err != nil {
		return nil, ok, err
	}
	return doc.Component, true, nil
}

// RetrieveDraft implements §4.6. Drafts are mutable and are never cached.
func (c *Client) RetrieveDraft(ctx context.Context, citation identity.Citation) (*language.Component, bool, error) {
	const operation = "retrieveDraft"
	_, done := c.op(operation)
	var err error
	defer func() { done(err) }()

	id, e := identity.ExtractID(citation)
	if e != nil {
		err = c.wrap(repository.KindInvalidCitation, operation, "", e)
		return nil, false, err
	}
	blob, ok, e := c.repo.Draft().Fetch(ctx, id)
	if e != nil {
		err = c.wrap(repository.KindServerError, operation, id, e)
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	doc, e := language.ParseDocument(blob)
	if e != nil {
		err = c.wrap(repository.KindDocumentInvalid, operation, id, e)
		return nil, false, err
	}
	if !c.notary.CitationMatches(citation, doc) {
		err = c.wrap(repository.KindInvalidCitation, operation, id, nil)
		return nil, false, err
	}
	if e := c.engine.Validate(ctx, doc); e != nil {
		err = e
		return nil, false, err
	}
	return doc.Component, true, nil
}

// CommitType implements §4.6: sign, cite, assert absent, create, cache.
func (c *Client) CommitType(ctx context.Context, component *language.Component) (identity.Citation, error) {
	const operation = "commitType"
	_, done := c.op(operation)
	var err error
	defer func() { done(err) }()

	if component == nil {
		err = c.wrap(repository.KindInvalidParameter, operation, "", fmt.Errorf("type component is nil"))
		return identity.Citation{}, err
	}

	citation, blob, id, e := c.signAndSerialize(component, identity.Citation{})
	if e != nil {
		err = e
		return identity.Citation{}, err
	}

	exists, e := c.repo.Type().Exists(ctx, id)
	if e != nil {
		err = c.wrap(repository.KindServerError, operation, id, e)
		return identity.Citation{}, err
	}
	if exists {
		err = c.wrap(repository.KindAlreadyExists, operation, id, nil)
		return identity.Citation{}, err
	}

	if e := c.repo.Type().Create(ctx, id, blob); e != nil {
		err = c.wrap(repository.KindServerError, operation, id, e)
		return identity.Citation{}, err
	}
	c.caches.Types.Put(id, blob)
	return citation, nil
}

// SaveDraft implements §4.6: sign, cite, assert never-committed, save.
func (c *Client) SaveDraft(ctx context.Context, component *language.Component) (identity.Citation, error) {
	const operation = "saveDraft"
	_, done := c.op(operation)
	var err error
	defer func() { done(err) }()

	if component == nil {
		err = c.wrap(repository.KindInvalidParameter, operation, "", fmt.Errorf("draft component is nil"))
		return identity.Citation{}, err
	}

	params := component.GetParameters()
	var previous identity.Citation
	if params != nil && params.Previous != nil {
		previous = *params.Previous
	}

	citation, blob, id, e := c.signAndSerialize(component, previous)
	if e != nil {
		err = e
		return identity.Citation{}, err
	}

	if _, ok := c.caches.Documents.Get(id); ok {
		err = c.wrap(repository.KindAlreadyExists, operation, id, fmt.Errorf("already committed"))
		return identity.Citation{}, err
	}
	committed, e := c.repo.Document().Exists(ctx, id)
	if e != nil {
		err = c.wrap(repository.KindServerError, operation, id, e)
		return identity.Citation{}, err
	}
	if committed {
		err = c.wrap(repository.KindAlreadyExists, operation, id, fmt.Errorf("already committed"))
		return identity.Citation{}, err
	}

	if e := c.repo.Draft().Save(ctx, id, blob); e != nil {
		err = c.wrap(repository.KindServerError, operation, id, e)
		return identity.Citation{}, err
	}
	return citation, nil
}

// DiscardDraft implements §4.6: absent-is-ok delete.
func (c *Client) DiscardDraft(ctx context.Context, citation identity.Citation) error {
	const operation = "discardDraft"
	_, done := c.op(operation)
	var err error
	defer func() { done(err) }()

	id, e := identity.ExtractID(citation)
	if e != nil {
		err = c.wrap(repository.KindInvalidCitation, operation, "", e)
		return err
	}
	if e := c.repo.Draft().Delete(ctx, id); e != nil {
		err = c.wrap(repository.KindServerError, operation, id, e)
		return err
	}
	return nil
}

// CommitDocument implements §4.6: sign, cite, assert never-committed,
// create, cache, then delete the draft at the same id (idempotently).
func (c *Client) CommitDocument(ctx context.Context, draft *language.Component) (identity.Citation, error) {
	const operation = "commitDocument"
	_, done := c.op(operation)
	var err error
	defer func() { done(err) }()

	if draft == nil {
		err = c.wrap(repository.KindInvalidParameter, operation, "", fmt.Errorf("draft component is nil"))
		return identity.Citation{}, err
	}

	params := draft.GetParameters()
	var previous identity.Citation
	if params != nil && params.Previous != nil {
		previous = *params.Previous
	}

	citation, blob, id, e := c.signAndSerialize(draft, previous)
	if e != nil {
		err = e
		return identity.Citation{}, err
	}

	if _, ok := c.caches.Documents.Get(id); ok {
		err = c.wrap(repository.KindAlreadyExists, operation, id, nil)
		return identity.Citation{}, err
	}
	exists, e := c.repo.Document().Exists(ctx, id)
	if e != nil {
		err = c.wrap(repository.KindServerError, operation, id, e)
		return identity.Citation{}, err
	}
	if exists {
		err = c.wrap(repository.KindAlreadyExists, operation, id, nil)
		return identity.Citation{}, err
	}

	if e := c.repo.Document().Create(ctx, id, blob); e != nil {
		err = c.wrap(repository.KindServerError, operation, id, e)
		return identity.Citation{}, err
	}
	c.caches.Documents.Put(id, blob)

	// Idempotent: a crash between create and delete still converges on
	// the next commit attempt (AlreadyExists) or a later discardDraft.
	if e := c.repo.Draft().Delete(ctx, id); e != nil {
		err = c.wrap(repository.KindServerError, operation, id, e)
		return identity.Citation{}, err
	}
	return citation, nil
}

// CheckoutDocument implements §4.6.
func (c *Client) CheckoutDocument(ctx context.Context, citation identity.Citation, level *int) (identity.Citation, error) {
	const operation = "checkoutDocument"
	_, done := c.op(operation)
	var err error
	defer func() { done(err) }()

	lvl := 0
	if level != nil {
		lvl = *level
	}
	draftVersion, e := identity.NextVersion(citation.Version, lvl)
	if e != nil {
		err = c.wrap(repository.KindInvalidParameter, operation, "", e)
		return identity.Citation{}, err
	}
	draftID := string(citation.Tag) + draftVersion.String()

	if _, ok := c.caches.Documents.Get(draftID); ok {
		err = c.wrap(repository.KindAlreadyExists, operation, draftID, nil)
		return identity.Citation{}, err
	}
	for _, exists := range []func(context.Context, string) (bool, error){
		c.repo.Document().Exists,
		c.repo.Draft().Exists,
	} {
		already, e := exists(ctx, draftID)
		if e != nil {
			err = c.wrap(repository.KindServerError, operation, draftID, e)
			return identity.Citation{}, err
		}
		if already {
			err = c.wrap(repository.KindAlreadyExists, operation, draftID, nil)
			return identity.Citation{}, err
		}
	}

	currentDoc, ok, e := c.fetchValidated(ctx, operation, c.repo.Document(), c.caches.Documents, citation)
	if e != nil {
		err = e
		return identity.Citation{}, err
	}
	if !ok {
		err = c.wrap(repository.KindDocumentMissing, operation, "", nil)
		return identity.Citation{}, err
	}

	draftComponent := currentDoc.Component.Clone()
	permissions := ""
	if p := draftComponent.GetParameters(); p != nil {
		permissions = p.Permissions
	}
	draftComponent.Parameters = &language.Parameters{
		Tag:         citation.Tag,
		Version:     draftVersion,
		Permissions: permissions,
		Previous:    &citation,
	}

	draftCitation, blob, _, e := c.signAndSerialize(draftComponent, citation)
	if e != nil {
		err = e
		return identity.Citation{}, err
	}
	if e := c.repo.Draft().Save(ctx, draftID, blob); e != nil {
		err = c.wrap(repository.KindServerError, operation, draftID, e)
		return identity.Citation{}, err
	}
	return draftCitation, nil
}

// PublishEvent implements §4.6: sign and enqueue onto EventQueue.
func (c *Client) PublishEvent(ctx context.Context, event *language.Component) error {
	const operation = "publishEvent"
	_, done := c.op(operation)
	var err error
	defer func() { done(err) }()

	_, blob, _, e := c.signAndSerialize(event, identity.Citation{})
	if e != nil {
		err = e
		return err
	}
	if e := c.repo.Queue().Enqueue(ctx, EventQueue, blob); e != nil {
		err = c.wrap(repository.KindServerError, operation, EventQueue, e)
		return err
	}
	metrics.QueueEnqueuedTotal.WithLabelValues(EventQueue).Inc()
	return nil
}

// SendMessage implements §4.6: set the message's "target" value to
// target, sign, enqueue onto SendQueue.
func (c *Client) SendMessage(ctx context.Context, target identity.Tag, message *language.Component) error {
	const operation = "sendMessage"
	_, done := c.op(operation)
	var err error
	defer func() { done(err) }()

	if message == nil || message.Kind != language.KindCatalog {
		err = c.wrap(repository.KindInvalidParameter, operation, "", fmt.Errorf("message must be a catalog component"))
		return err
	}
	addressed := message.Clone()
	addressed.Values["target"] = language.NewText(string(target))

	_, blob, _, e := c.signAndSerialize(addressed, identity.Citation{})
	if e != nil {
		err = e
		return err
	}
	if e := c.repo.Queue().Enqueue(ctx, SendQueue, blob); e != nil {
		err = c.wrap(repository.KindServerError, operation, SendQueue, e)
		return err
	}
	metrics.QueueEnqueuedTotal.WithLabelValues(SendQueue).Inc()
	return nil
}

// QueueMessage implements §4.6: sign, enqueue on an arbitrary queue.
func (c *Client) QueueMessage(ctx context.Context, queue string, message *language.Component) error {
	const operation = "queueMessage"
	_, done := c.op(operation)
	var err error
	defer func() { done(err) }()

	if queue == "" {
		err = c.wrap(repository.KindInvalidParameter, operation, "", fmt.Errorf("queue id is empty"))
		return err
	}
	_, blob, _, e := c.signAndSerialize(message, identity.Citation{})
	if e != nil {
		err = e
		return err
	}
	if e := c.repo.Queue().Enqueue(ctx, queue, blob); e != nil {
		err = c.wrap(repository.KindServerError, operation, queue, e)
		return err
	}
	log.WithQueueID(queue).Debug().Str("account_id", string(c.account)).Msg("message enqueued")
	metrics.QueueEnqueuedTotal.WithLabelValues(queue).Inc()
	return nil
}

// ReceiveMessage implements §4.6: dequeue; if present, validate the
// chain before returning the payload.
func (c *Client) ReceiveMessage(ctx context.Context, queue string) (*language.Component, bool, error) {
	const operation = "receiveMessage"
	_, done := c.op(operation)
	var err error
	defer func() { done(err) }()

	if queue == "" {
		err = c.wrap(repository.KindInvalidParameter, operation, "", fmt.Errorf("queue id is empty"))
		return nil, false, err
	}
	blob, ok, e := c.repo.Queue().Dequeue(ctx, queue)
	if e != nil {
		err = c.wrap(repository.KindServerError, operation, queue, e)
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	metrics.QueueDequeuedTotal.WithLabelValues(queue).Inc()

	doc, e := language.ParseDocument(blob)
	if e != nil {
		err = c.wrap(repository.KindDocumentInvalid, operation, queue, e)
		return nil, false, err
	}
	if e := c.engine.Validate(ctx, doc); e != nil {
		err = e
		return nil, false, err
	}
	return doc.Component, true, nil
}

// signAndSerialize signs component under this client's notary, cites
// it, serializes it, and returns the flat store id alongside the
// citation and blob.
func (c *Client) signAndSerialize(component *language.Component, previous identity.Citation) (identity.Citation, []byte, string, error) {
	doc, err := c.notary.Sign(component, previous)
	if err != nil {
		return identity.Citation{}, nil, "", repository.Wrap(repository.KindServerError, "sign", string(c.account), "", err)
	}
	citation, err := c.notary.Cite(doc)
	if err != nil {
		return identity.Citation{}, nil, "", repository.Wrap(repository.KindServerError, "sign", string(c.account), "", err)
	}
	id, err := identity.ExtractID(citation)
	if err != nil {
		return identity.Citation{}, nil, "", repository.Wrap(repository.KindInvalidCitation, "sign", string(c.account), "", err)
	}
	blob, err := language.Serialize(doc)
	if err != nil {
		return identity.Citation{}, nil, "", repository.Wrap(repository.KindServerError, "sign", string(c.account), id, err)
	}
	return citation, blob, id, nil
}
