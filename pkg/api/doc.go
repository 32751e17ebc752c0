/*
Package api implements the HTTP repository service (§4.8's "Service").

The service mounts one route group per namespace in front of a
repository.Repository — typically a pkg/repository/local.Repository —
and otherwise adds nothing: it does not validate the blobs it stores
or serves, does not resolve citations, and keeps no state of its own
beyond what the repository already holds.

# Routes

	HEAD/GET/POST   /citation/{id}
	HEAD/GET/POST   /certificate/{id}
	HEAD/GET/POST   /document/{id}
	HEAD/GET/POST   /type/{id}
	HEAD/GET/PUT/DELETE /draft/{id}
	PUT/GET         /queue/{queueId}
	GET             /health
	GET             /ready
	GET             /metrics

Every namespace route requires a valid Nebula-Credentials header;
/health, /ready, and /metrics do not.

# Credentials

Each request carries a single-line, double-quoted notarized document
in its Nebula-Credentials header, freshly derived per call by the
caller's notary (see pkg/repository/remote). The service unquotes,
parses, and runs it through the same validate.Engine used everywhere
else in the system — there is no separate authentication code path.

# Response headers

200 responses on the four immutable namespaces carry
Cache-Control: immutable, since a blob never changes once created at
a given id. Draft fetches and queue dequeues carry Cache-Control:
no-store instead, since both are expected to return different content
on a subsequent call.

# Usage

	repo, _ := local.New("")
	n, _ := notary.GenerateEd25519Notary(identity.Tag("acct-1"), sealKey)
	engine := validate.New(repo, n, cache.New("certificate", cache.CertificateCapacity))
	srv := api.NewServer(repo, n, engine)
	log.Fatal(srv.Start(":8080"))
*/
package api
