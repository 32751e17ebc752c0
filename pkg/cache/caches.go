package cache

// Caches bundles the three bounded caches the Client API consults
// before going to the repository: certificates, documents, and types
// (§4.5). Citation, draft, and queue lookups are never cached, since
// their contents are either tiny or intentionally transient.
type Caches struct {
	Certificates *FIFO
	Documents    *FIFO
	Types        *FIFO
}

// NewCaches builds the standard three-cache bundle at the capacities
// named in §4.5.
func NewCaches() *Caches {
	return &Caches{
		Certificates: New("certificate", CertificateCapacity),
		Documents:    New("document", DocumentCapacity),
		Types:        New("type", TypeCapacity),
	}
}
