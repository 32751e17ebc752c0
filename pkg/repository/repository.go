// Package repository defines the key-spaced blob CRUD and queue
// operations the Client API is built on (§4.3), along with the error
// taxonomy shared by every binding.
package repository

import "context"

// Namespace names the five blob namespaces plus the queue namespace
// (§3's "Namespaces" section).
type Namespace string

const (
	NamespaceCitation    Namespace = "citation"
	NamespaceCertificate Namespace = "certificate"
	NamespaceDraft       Namespace = "draft"
	NamespaceDocument    Namespace = "document"
	NamespaceType        Namespace = "type"
)

// BlobNamespace is the CRUD surface shared by all five blob
// namespaces. Create fails with a KindAlreadyExists *Error on the
// three immutable namespaces (certificate, document, type); citation
// and draft use it only as the "create if absent" primitive their
// lifecycles need (§3 Invariants/Lifecycles).
type BlobNamespace interface {
	Exists(ctx context.Context, id string) (bool, error)
	Fetch(ctx context.Context, id string) (blob []byte, ok bool, err error)
	Create(ctx context.Context, id string, blob []byte) error
}

// DraftNamespace additionally supports an idempotent overwrite and an
// idempotent-absent delete (§4.3).
type DraftNamespace interface {
	BlobNamespace
	Save(ctx context.Context, id string, blob []byte) error
	Delete(ctx context.Context, id string) error
}

// QueueNamespace is the multiset-of-blobs interface per queue id
// (§3's Queue namespace, §4.3).
type QueueNamespace interface {
	Enqueue(ctx context.Context, queueID string, blob []byte) error
	Dequeue(ctx context.Context, queueID string) (blob []byte, ok bool, err error)
}

// Repository aggregates the five blob namespaces and the queue
// namespace behind one constructor-injected value (§9: no singleton
// stores, no process-wide mutable state).
type Repository interface {
	Citation() BlobNamespace
	Certificate() BlobNamespace
	Draft() DraftNamespace
	Document() BlobNamespace
	Type() BlobNamespace
	Queue() QueueNamespace
}
