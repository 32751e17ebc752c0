package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cuemby/nebula/pkg/repository"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	dir := t.TempDir()
	repo, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return repo
}

func TestNewCreatesDirectoriesWithExpectedMode(t *testing.T) {
	repo := newTestRepo(t)

	for _, sub := range []string{"citations", "certificates", "drafts", "documents", "types", "queues"} {
		dir := filepath.Join(repo.root, "repository", sub)
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("stat %s: %v", sub, err)
		}
		if !info.IsDir() {
			t.Fatalf("%s is not a directory", sub)
		}
		if info.Mode().Perm() != dirMode {
			t.Errorf("%s: mode = %o, want %o", sub, info.Mode().Perm(), dirMode)
		}
	}
}

func TestInitializeAPIIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	if err := repo.initializeAPI(); err != nil {
		t.Fatalf("second initializeAPI call returned an error: %v", err)
	}
}

func TestBlobNamespaceCreateFetchExists(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	ok, err := repo.Document().Exists(ctx, "TAGv1")
	if err != nil || ok {
		t.Fatalf("expected absent before create, got ok=%v err=%v", ok, err)
	}

	if err := repo.Document().Create(ctx, "TAGv1", []byte("hello")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	ok, err = repo.Document().Exists(ctx, "TAGv1")
	if err != nil || !ok {
		t.Fatalf("expected present after create, got ok=%v err=%v", ok, err)
	}

	blob, ok, err := repo.Document().Fetch(ctx, "TAGv1")
	if err != nil || !ok {
		t.Fatalf("Fetch: ok=%v err=%v", ok, err)
	}
	if string(blob) != "hello" {
		t.Errorf("unexpected blob: %q", blob)
	}
}

func TestImmutableNamespaceCreateIsReadOnlyOnDisk(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Document().Create(ctx, "TAGv1", []byte("hello")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	path := repo.documents.path("TAGv1")
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != immutableMode {
		t.Errorf("mode = %o, want %o", info.Mode().Perm(), immutableMode)
	}
}

func TestImmutableNamespaceRejectsSecondCreate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Document().Create(ctx, "TAGv1", []byte("first")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	err := repo.Document().Create(ctx, "TAGv1", []byte("second"))
	if !repository.IsKind(err, repository.KindAlreadyExists) {
		t.Fatalf("expected KindAlreadyExists, got %v", err)
	}

	blob, _, _ := repo.Document().Fetch(ctx, "TAGv1")
	if string(blob) != "first" {
		t.Error("second create must not overwrite the first blob")
	}
}

func TestBlobNamespaceIDWithSlashIsSanitized(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Type().Create(ctx, "acct/1v1", []byte("x")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	path := filepath.Join(repo.root, "repository", "types", "acct_1v1.bali")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected sanitized path to exist: %v", err)
	}
}

func TestDraftSaveOverwriteThenDiscard(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Draft().Save(ctx, "TAGv2", []byte("draft-1")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Draft().Save(ctx, "TAGv2", []byte("draft-2")); err != nil {
		t.Fatalf("Save (overwrite): %v", err)
	}

	blob, ok, err := repo.Draft().Fetch(ctx, "TAGv2")
	if err != nil || !ok {
		t.Fatalf("Fetch: ok=%v err=%v", ok, err)
	}
	if string(blob) != "draft-2" {
		t.Errorf("expected overwritten content, got %q", blob)
	}

	if err := repo.Draft().Delete(ctx, "TAGv2"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Draft().Delete(ctx, "TAGv2"); err != nil {
		t.Fatalf("second Delete must be idempotent-absent, got %v", err)
	}
	_, ok, err = repo.Draft().Fetch(ctx, "TAGv2")
	if err != nil || ok {
		t.Fatalf("expected absent after delete, got ok=%v err=%v", ok, err)
	}
}

func TestFileQueueEnqueueDequeueIsEmptyAfter(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Queue().Enqueue(ctx, "Q1", []byte("m1")); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if err := repo.Queue().Enqueue(ctx, "Q1", []byte("m2")); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		blob, ok, err := repo.Queue().Dequeue(ctx, "Q1")
		if err != nil || !ok {
			t.Fatalf("Dequeue: ok=%v err=%v", ok, err)
		}
		seen[string(blob)] = true
	}
	if !seen["m1"] || !seen["m2"] {
		t.Errorf("expected to see both messages, got %v", seen)
	}

	_, ok, err := repo.Queue().Dequeue(ctx, "Q1")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected queue to be empty after both messages dequeued")
	}
}

func TestFileQueueDequeueOnUnknownQueueIsAbsent(t *testing.T) {
	repo := newTestRepo(t)
	_, ok, err := repo.Queue().Dequeue(context.Background(), "NEVER_ENQUEUED")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected absent on a queue directory that was never created")
	}
}

func TestBoltQueueStoreEnqueueDequeue(t *testing.T) {
	dir := t.TempDir()
	store, err := NewBoltQueueStore(dir)
	if err != nil {
		t.Fatalf("NewBoltQueueStore: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.Enqueue(ctx, "Q1", []byte("hello")); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	blob, ok, err := store.Dequeue(ctx, "Q1")
	if err != nil || !ok {
		t.Fatalf("Dequeue: ok=%v err=%v", ok, err)
	}
	if string(blob) != "hello" {
		t.Errorf("unexpected blob: %q", blob)
	}

	_, ok, err = store.Dequeue(ctx, "Q1")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected empty queue after single dequeue")
	}
}

func TestBoltQueueStoreDequeueOnUnknownQueueIsAbsent(t *testing.T) {
	dir := t.TempDir()
	store, err := NewBoltQueueStore(dir)
	if err != nil {
		t.Fatalf("NewBoltQueueStore: %v", err)
	}
	defer store.Close()

	_, ok, err := store.Dequeue(context.Background(), "NEVER_ENQUEUED")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected absent on a bucket that was never created")
	}
}

func TestWithQueueSwapsBackend(t *testing.T) {
	repo := newTestRepo(t)
	store, err := NewBoltQueueStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	repo = repo.WithQueue(store)
	ctx := context.Background()

	if err := repo.Queue().Enqueue(ctx, "Q1", []byte("via-bolt")); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	blob, ok, err := repo.Queue().Dequeue(ctx, "Q1")
	if err != nil || !ok {
		t.Fatalf("Dequeue: ok=%v err=%v", ok, err)
	}
	if string(blob) != "via-bolt" {
		t.Errorf("unexpected blob: %q", blob)
	}
}
