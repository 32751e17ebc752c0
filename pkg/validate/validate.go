// Package validate implements the certificate-chain validation engine
// (§4.4): given a parsed notarized document, walk its certificate
// chain and its nested-document chain, terminating at a self-signed
// root or a NONE citation, and failing ChainTooDeep beyond a
// configured depth.
package validate

import (
	"context"

	"github.com/cuemby/nebula/pkg/cache"
	"github.com/cuemby/nebula/pkg/identity"
	"github.com/cuemby/nebula/pkg/language"
	"github.com/cuemby/nebula/pkg/notary"
	"github.com/cuemby/nebula/pkg/repository"
)

// DefaultMaxDepth is the chain-depth cap named in §4.4.
const DefaultMaxDepth = 16

// Engine walks certificate and nested-document chains against a
// repository and notary, consulting and populating the certificate
// cache as it goes.
type Engine struct {
	repo         repository.Repository
	notary       notary.Notary
	certificates *cache.FIFO
	maxDepth     int
}

// New builds a validation Engine. certificates is the bounded cache
// the engine both reads from and populates; pass cache.New("certificate",
// cache.CertificateCapacity) for the standard configuration.
func New(repo repository.Repository, n notary.Notary, certificates *cache.FIFO) *Engine {
	return &Engine{repo: repo, notary: n, certificates: certificates, maxDepth: DefaultMaxDepth}
}

// WithMaxDepth overrides the chain-depth cap, mainly for tests that
// exercise ChainTooDeep without building 16 certificates.
func (e *Engine) WithMaxDepth(depth int) *Engine {
	e.maxDepth = depth
	return e
}

// Validate walks doc's certificate chain and nested-document chain
// per §4.4, returning a *repository.Error on any failure.
func (e *Engine) Validate(ctx context.Context, doc *language.NotarizedDocument) error {
	return e.validate(ctx, doc, 0)
}

func (e *Engine) validate(ctx context.Context, doc *language.NotarizedDocument, depth int) error {
	if depth > e.maxDepth {
		return repository.Wrap(repository.KindChainTooDeep, "validateDocument", "", "", nil)
	}

	if !doc.Previous.IsNone() {
		prevID, err := identity.ExtractID(doc.Previous)
		if err != nil {
			return repository.Wrap(repository.KindInvalidCitation, "validateDocument", "", "", err)
		}
		blob, ok, err := e.repo.Document().Fetch(ctx, prevID)
		if err != nil {
			return repository.Wrap(repository.KindServerError, "validateDocument", "", prevID, err)
		}
		if !ok {
			return repository.Wrap(repository.KindDocumentMissing, "validateDocument", "", prevID, nil)
		}
		prevDoc, err := language.ParseDocument(blob)
		if err != nil {
			return repository.Wrap(repository.KindDocumentInvalid, "validateDocument", "", prevID, err)
		}
		if !e.notary.CitationMatches(doc.Previous, prevDoc) {
			return repository.Wrap(repository.KindInvalidCitation, "validateDocument", "", prevID, nil)
		}
		// Not cached and not recursively validated: it was validated
		// (or will be) on its own pass, per §4.4 step 2.
	}

	cert := doc.Certificate
	if cert.IsNone() || cert.Digest == identity.NoneDigest {
		if !e.notary.DocumentIsValid(doc, doc) {
			return repository.Wrap(repository.KindDocumentInvalid, "validateDocument", "", "", nil)
		}
		return e.descend(ctx, doc, depth)
	}

	certID, err := identity.ExtractID(cert)
	if err != nil {
		return repository.Wrap(repository.KindInvalidCitation, "validateDocument", "", "", err)
	}

	certDoc, err := e.resolveCertificate(ctx, cert, certID, depth)
	if err != nil {
		return err
	}

	if !e.notary.DocumentIsValid(doc, certDoc) {
		return repository.Wrap(repository.KindDocumentInvalid, "validateDocument", "", certID, nil)
	}

	return e.descend(ctx, doc, depth)
}

// resolveCertificate returns the parsed certificate document named by
// cert, consulting the cache first. On a miss it fetches, validates
// the citation, recursively validates the certificate chain, and only
// then inserts it into the cache (§4.4 step 4).
func (e *Engine) resolveCertificate(ctx context.Context, cert identity.Citation, certID string, depth int) (*language.NotarizedDocument, error) {
	if blob, ok := e.certificates.Get(certID); ok {
		certDoc, err := language.ParseDocument(blob)
		if err != nil {
			return nil, repository.Wrap(repository.KindDocumentInvalid, "validateDocument", "", certID, err)
		}
		return certDoc, nil
	}

	blob, ok, err := e.repo.Certificate().Fetch(ctx, certID)
	if err != nil {
		return nil, repository.Wrap(repository.KindServerError, "validateDocument", "", certID, err)
	}
	if !ok {
		return nil, repository.Wrap(repository.KindCertificateMissing, "validateDocument", "", certID, nil)
	}
	certDoc, err := language.ParseDocument(blob)
	if err != nil {
		return nil, repository.Wrap(repository.KindDocumentInvalid, "validateDocument", "", certID, err)
	}
	if !e.notary.CitationMatches(cert, certDoc) {
		return nil, repository.Wrap(repository.KindInvalidCitation, "validateDocument", "", certID, nil)
	}
	if err := e.validate(ctx, certDoc, depth+1); err != nil {
		return nil, err
	}

	e.certificates.Put(certID, blob)
	return certDoc, nil
}

// descend follows §4.4 step 6: if doc's component is itself a
// notarized document, validate it as the next link in the chain.
func (e *Engine) descend(ctx context.Context, doc *language.NotarizedDocument, depth int) error {
	if doc.Component.Kind != language.KindDocument || doc.Component.Document == nil {
		return nil
	}
	return e.validate(ctx, doc.Component.Document, depth+1)
}
