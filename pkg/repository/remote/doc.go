/*
Package remote implements the HTTP repository binding (§4.8).

For each call, a fresh Nebula-Credentials header is derived from the
notary's own citation and the appropriate request is issued:

	exists              HEAD   /<ns>/<id>
	fetch                GET   /<ns>/<id>
	create (immutable)  POST   /<ns>/<id>   Content-Type: application/bali
	save (draft)         PUT   /draft/<id>
	delete (draft)     DELETE  /draft/<id>
	enqueue              PUT   /queue/<queueId>
	dequeue              GET   /queue/<queueId>

Status codes map back onto the repository error taxonomy: 2xx success,
404 absent for HEAD/GET/DELETE, 409 AlreadyExists, 400 InvalidRequest,
405 NotAllowed, 5xx ServerError; transport-level failures (connection
refused, retries exhausted) surface as NetworkError.

	repo := remote.New("https://nebula.example.com", notary)
	c := client.New(repo, notary, nil)
*/
package remote
