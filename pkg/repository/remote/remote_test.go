package remote

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cuemby/nebula/pkg/identity"
	"github.com/cuemby/nebula/pkg/repository"

	"github.com/cuemby/nebula/pkg/notary"
)

func testSealKey() []byte { return []byte("01234567890123456789012345678901") }

func testNotary(t *testing.T) notary.Notary {
	t.Helper()
	n, err := notary.GenerateEd25519Notary(identity.Tag("acct-1"), testSealKey())
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func fastRepo(baseURL string, n notary.Notary) *Repository {
	return New(baseURL, n, WithRetryMax(0), WithRetryWait(time.Millisecond, time.Millisecond))
}

func TestExistsTrueOn200AndFalseOn404(t *testing.T) {
	n := testNotary(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead || r.URL.Path != "/document/TAGv1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Header.Get("Nebula-Credentials") == "" {
			t.Error("expected Nebula-Credentials header to be set")
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	repo := fastRepo(srv.URL, n)
	ok, err := repo.Document().Exists(context.Background(), "TAGv1")
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}

	ok, err = repo.Document().Exists(context.Background(), "UNKNOWNv1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected absent on 404")
	}
}

func TestFetchReturnsBlobOn200(t *testing.T) {
	n := testNotary(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", mediaType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("hello"))
	}))
	defer srv.Close()

	repo := fastRepo(srv.URL, n)
	blob, ok, err := repo.Certificate().Fetch(context.Background(), "TAGv1")
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if string(blob) != "hello" {
		t.Errorf("unexpected blob: %q", blob)
	}
}

func TestCreateConflictMapsToAlreadyExists(t *testing.T) {
	n := testNotary(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if string(body) != "payload" {
			t.Errorf("unexpected body: %q", body)
		}
		if got := r.Header.Get("Content-Type"); got != mediaType {
			t.Errorf("Content-Type = %q, want %q", got, mediaType)
		}
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	repo := fastRepo(srv.URL, n)
	err := repo.Type().Create(context.Background(), "TAGv1", []byte("payload"))
	if !repository.IsKind(err, repository.KindAlreadyExists) {
		t.Fatalf("expected KindAlreadyExists, got %v", err)
	}
}

func TestDraftSaveAndDelete(t *testing.T) {
	n := testNotary(t)
	var sawPut, sawDelete bool

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			sawPut = r.URL.Path == "/draft/TAGv2"
			w.WriteHeader(http.StatusOK)
		case http.MethodDelete:
			sawDelete = r.URL.Path == "/draft/TAGv2"
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	repo := fastRepo(srv.URL, n)
	if err := repo.Draft().Save(context.Background(), "TAGv2", []byte("draft")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Draft().Delete(context.Background(), "TAGv2"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !sawPut || !sawDelete {
		t.Errorf("sawPut=%v sawDelete=%v", sawPut, sawDelete)
	}
}

func TestQueueEnqueueDequeue(t *testing.T) {
	n := testNotary(t)
	enqueued := false

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			if r.URL.Path != "/queue/Q1" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			enqueued = true
			w.WriteHeader(http.StatusOK)
		case http.MethodGet:
			if !enqueued {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("message"))
		}
	}))
	defer srv.Close()

	repo := fastRepo(srv.URL, n)
	if err := repo.Queue().Enqueue(context.Background(), "Q1", []byte("message")); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	blob, ok, err := repo.Queue().Dequeue(context.Background(), "Q1")
	if err != nil || !ok {
		t.Fatalf("Dequeue: ok=%v err=%v", ok, err)
	}
	if string(blob) != "message" {
		t.Errorf("unexpected blob: %q", blob)
	}
}

func TestDequeueOnEmptyQueueIsAbsent(t *testing.T) {
	n := testNotary(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	repo := fastRepo(srv.URL, n)
	_, ok, err := repo.Queue().Dequeue(context.Background(), "EMPTY")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected absent on 404")
	}
}

func TestServerErrorMapsToServerErrorKind(t *testing.T) {
	n := testNotary(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	repo := fastRepo(srv.URL, n)
	_, _, err := repo.Document().Fetch(context.Background(), "TAGv1")
	if !repository.IsKind(err, repository.KindServerError) {
		t.Fatalf("expected KindServerError, got %v", err)
	}
}
