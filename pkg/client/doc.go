/*
Package client implements the full Client API operation table (§4.6)
that applications use to read and write notarized documents, types,
drafts, and queues.

# Architecture

	┌──────────────────── APPLICATION CODE ──────────────────────┐
	│                                                              │
	│  import "github.com/cuemby/nebula/pkg/client"               │
	│                                                              │
	│  c := client.New(repo, notary, nil)                         │
	│  citation, err := c.CommitDocument(ctx, draft)               │
	│                                                              │
	└──────────────────┬───────────────────────────────────────┘
	                   │
	┌──────────────────▼──── pkg/client ─────────────────────────┐
	│                                                              │
	│  ┌──────────────────────────────────────────────┐          │
	│  │                Client                         │          │
	│  │  - one operation per §4.6 table entry         │          │
	│  │  - contextual error wrapping (pkg/repository) │          │
	│  │  - structured logging + metrics per op        │          │
	│  └──────────────────┬───────────────────────────┘          │
	│                     │                                        │
	│       ┌─────────────┼─────────────┐                         │
	│       ▼             ▼             ▼                         │
	│  pkg/cache    pkg/validate    pkg/notary                    │
	│  (bounded     (chain walk)    (sign/cite/verify)            │
	│   FIFO)                                                      │
	└──────────────────────┬───────────────────────────────────────┘
	                       │
	                       ▼
	              repository.Repository
	          (pkg/repository/local or /remote)

# Usage

Committing a document:

	c := client.New(repo, signer, nil)
	tag := identity.NewTag()
	v, _ := identity.ParseVersion("v1")
	draft := language.NewCatalog(map[string]*language.Component{
		"title": language.NewText("hello"),
	}, &language.Parameters{Tag: tag, Version: v})

	citation, err := c.CommitDocument(context.Background(), draft)

Checking out a new draft version from a committed citation:

	draftCitation, err := c.CheckoutDocument(ctx, citation, nil)

Messaging:

	err := c.PublishEvent(ctx, event)
	err := c.SendMessage(ctx, targetAccount, message)
	payload, ok, err := c.ReceiveMessage(ctx, client.SendQueue)
*/
package client
