package api

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cuemby/nebula/pkg/repository"
)

const mediaType = "application/bali"

// mountBlobNamespace registers HEAD/GET/POST against /<namespace>/{id}
// for one of the four blob namespaces. Successful GETs on immutable
// namespaces are marked Cache-Control: immutable, since a blob at a
// given id never changes once created (§4.8).
func mountBlobNamespace(r chi.Router, namespace string, ns repository.BlobNamespace, immutable bool) {
	base := "/" + namespace + "/{id}"

	r.Head(base, func(w http.ResponseWriter, r *http.Request) {
		ok, err := ns.Exists(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, namespace+".exists", err)
			return
		}
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Get(base, func(w http.ResponseWriter, r *http.Request) {
		blob, ok, err := ns.Fetch(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, namespace+".fetch", err)
			return
		}
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", mediaType)
		if immutable {
			w.Header().Set("Cache-Control", "immutable")
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(blob)
	})

	r.Post(base, func(w http.ResponseWriter, r *http.Request) {
		blob, err := io.ReadAll(r.Body)
		if err != nil {
			writeStatus(w, http.StatusBadRequest, "unreadable request body")
			return
		}
		if err := ns.Create(r.Context(), chi.URLParam(r, "id"), blob); err != nil {
			writeError(w, namespace+".create", err)
			return
		}
		w.WriteHeader(http.StatusCreated)
	})
}

// mountDraftNamespace registers HEAD/GET/PUT/DELETE against
// /draft/{id}. Draft GETs are never cached: a draft is the one
// namespace that's expected to change underneath a fixed id (§3).
func mountDraftNamespace(r chi.Router, ns repository.DraftNamespace) {
	const base = "/draft/{id}"

	r.Head(base, func(w http.ResponseWriter, r *http.Request) {
		ok, err := ns.Exists(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, "draft.exists", err)
			return
		}
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Get(base, func(w http.ResponseWriter, r *http.Request) {
		blob, ok, err := ns.Fetch(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, "draft.fetch", err)
			return
		}
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", mediaType)
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(blob)
	})

	r.Put(base, func(w http.ResponseWriter, r *http.Request) {
		blob, err := io.ReadAll(r.Body)
		if err != nil {
			writeStatus(w, http.StatusBadRequest, "unreadable request body")
			return
		}
		if err := ns.Save(r.Context(), chi.URLParam(r, "id"), blob); err != nil {
			writeError(w, "draft.save", err)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Delete(base, func(w http.ResponseWriter, r *http.Request) {
		if err := ns.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, "draft.delete", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

// mountQueueNamespace registers PUT (enqueue) and GET (dequeue)
// against /queue/{queueId}. A dequeue response is never cached: two
// requests to the same URL return different, at-most-once messages
// (§3 Queue namespace).
func mountQueueNamespace(r chi.Router, ns repository.QueueNamespace) {
	const base = "/queue/{queueId}"

	r.Put(base, func(w http.ResponseWriter, r *http.Request) {
		blob, err := io.ReadAll(r.Body)
		if err != nil {
			writeStatus(w, http.StatusBadRequest, "unreadable request body")
			return
		}
		if err := ns.Enqueue(r.Context(), chi.URLParam(r, "queueId"), blob); err != nil {
			writeError(w, "queue.enqueue", err)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Get(base, func(w http.ResponseWriter, r *http.Request) {
		blob, ok, err := ns.Dequeue(r.Context(), chi.URLParam(r, "queueId"))
		if err != nil {
			writeError(w, "queue.dequeue", err)
			return
		}
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", mediaType)
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(blob)
	})
}

// writeError classifies err through the repository.Kind taxonomy and
// reports the corresponding HTTP status (§4.8's status mapping table).
// A kind-less error (one that didn't originate from a repository
// binding) falls back to 500.
func writeError(w http.ResponseWriter, operation string, err error) {
	status := http.StatusInternalServerError
	for _, kind := range []repository.Kind{
		repository.KindInvalidParameter,
		repository.KindInvalidCitation,
		repository.KindAlreadyExists,
		repository.KindDocumentMissing,
		repository.KindCertificateMissing,
		repository.KindDocumentInvalid,
		repository.KindChainTooDeep,
		repository.KindServerError,
		repository.KindNetworkError,
		repository.KindInvalidRequest,
		repository.KindNotAllowed,
	} {
		if repository.IsKind(err, kind) {
			status = kind.HTTPStatus()
			break
		}
	}
	writeStatus(w, status, operation+": "+err.Error())
}
