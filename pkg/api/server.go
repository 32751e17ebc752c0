package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cuemby/nebula/pkg/metrics"
	"github.com/cuemby/nebula/pkg/notary"
	"github.com/cuemby/nebula/pkg/repository"
	"github.com/cuemby/nebula/pkg/validate"
)

// Server is the HTTP service mounting one sub-router per namespace
// and delegating to a repository.Repository — typically a
// pkg/repository/local.Repository — per §4.8's "Service".
type Server struct {
	repo   repository.Repository
	notary notary.Notary
	engine *validate.Engine
	router chi.Router
}

// NewServer builds the router. engine validates the Nebula-Credentials
// header on every namespace request; beyond that the service is a
// plain delegate to repo — it does not itself validate the blobs it
// stores or serves, that is the client's job on both ends.
func NewServer(repo repository.Repository, n notary.Notary, engine *validate.Engine) *Server {
	s := &Server{repo: repo, notary: n, engine: engine}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", metrics.HealthHandler().ServeHTTP)
	r.Get("/ready", metrics.ReadyHandler().ServeHTTP)
	r.Handle("/metrics", metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(s.requireCredentials)

		mountBlobNamespace(r, string(repository.NamespaceCitation), repo.Citation(), true)
		mountBlobNamespace(r, string(repository.NamespaceCertificate), repo.Certificate(), true)
		mountBlobNamespace(r, string(repository.NamespaceDocument), repo.Document(), true)
		mountBlobNamespace(r, string(repository.NamespaceType), repo.Type(), true)
		mountDraftNamespace(r, repo.Draft())
		mountQueueNamespace(r, repo.Queue())
	})

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.router.ServeHTTP(w, r) }

// Start runs the service on addr until the process is killed or
// ListenAndServe returns an error.
func (s *Server) Start(addr string) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return server.ListenAndServe()
}
