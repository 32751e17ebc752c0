/*
Package local implements the filesystem repository binding (§4.7).

Layout under a configured root D:

	D/repository/citations/<sanitized-name>.bali
	D/repository/certificates/<identifier>.bali
	D/repository/drafts/<identifier>.bali
	D/repository/documents/<identifier>.bali
	D/repository/types/<identifier>.bali
	D/repository/queues/<queueId>/<random-tag>.bali

Immutable namespaces (certificate, document, type) are written 0400;
citations, drafts, and queued messages are written 0600; directories
are 0700. Create on an immutable namespace uses an exclusive-create
open, so a racing second create always loses with AlreadyExists rather
than silently overwriting.

	repo, err := local.New("/var/lib/nebula")
	c := client.New(repo, notary, nil)

Passing an empty directory defaults to "<user-home>/.nebula/":

	repo, err := local.New("")

The default queue backend walks D/repository/queues/<id>/ directly.
BoltQueueStore is a drop-in alternative for hosts where many
processes dequeuing from the same queue directory would otherwise
contend on listing it:

	store, err := local.NewBoltQueueStore("/var/lib/nebula")
	repo = repo.WithQueue(store)
*/
package local
