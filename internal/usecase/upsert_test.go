package usecase

import (
	"context"
	"errors"
	"testing"

	"RepoScout/internal/domain"
)

type memoryStore struct {
	entries     map[string]domain.RankedProject
	existsCalls int
	insertErr   error
	existsErr   error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{entries: map[string]domain.RankedProject{}}
}

func (m *memoryStore) Exists(_ context.Context, repoURL string) (bool, error) {
	m.existsCalls++
	if m.existsErr != nil {
		return false, m.existsErr
	}
	_, ok := m.entries[repoURL]
	return ok, nil
}

func (m *memoryStore) Insert(_ context.Context, project domain.RankedProject) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.entries[project.RepoURL] = project
	return nil
}

func candidate(url string, score int) domain.RankedProject {
	return domain.RankedProject{
		Project: domain.Project{Org: "org", Name: "proj", RepoURL: url},
		Score:   score,
	}
}

func TestUpsertInsertsNewAndSkipsExisting(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	store.entries["https://github.com/o/existing"] = candidate("https://github.com/o/existing", 90)
	sink := NewSink(store, nil)

	result, err := sink.Upsert(context.Background(), []domain.RankedProject{
		candidate("https://github.com/o/new", 80),
		candidate("https://github.com/o/existing", 90),
	})
	if err != nil {
		t.Fatalf("Upsert error: %v", err)
	}

	if result.Inserted != 1 || result.SkippedExists != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(result.URLs) != 1 || result.URLs[0] != "https://github.com/o/new" {
		t.Fatalf("unexpected inserted urls: %v", result.URLs)
	}
}

func TestUpsertIdempotentAcrossRuns(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	sink := NewSink(store, nil)
	input := []domain.RankedProject{candidate("https://github.com/o/repo", 75)}

	first, err := sink.Upsert(context.Background(), input)
	if err != nil {
		t.Fatalf("first Upsert error: %v", err)
	}
	if first.Inserted != 1 || first.SkippedExists != 0 {
		t.Fatalf("unexpected first result: %+v", first)
	}

	second, err := sink.Upsert(context.Background(), input)
	if err != nil {
		t.Fatalf("second Upsert error: %v", err)
	}
	if second.Inserted != 0 || second.SkippedExists != 1 {
		t.Fatalf("unexpected second result: %+v", second)
	}
	if len(store.entries) != 1 {
		t.Fatalf("expected exactly one stored entry, got %d", len(store.entries))
	}
}

func TestUpsertSkipsEmptyURLWithoutStoreCall(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	sink := NewSink(store, nil)

	result, err := sink.Upsert(context.Background(), []domain.RankedProject{candidate("", 99)})
	if err != nil {
		t.Fatalf("Upsert error: %v", err)
	}
	if result.Inserted != 0 || result.SkippedExists != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if store.existsCalls != 0 {
		t.Fatalf("empty URL must not reach the store")
	}
}

func TestUpsertErrorsPropagate(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	store.insertErr = errors.New("store unavailable")
	sink := NewSink(store, nil)

	_, err := sink.Upsert(context.Background(), []domain.RankedProject{candidate("https://github.com/o/r", 70)})
	if err == nil {
		t.Fatalf("expected insert error to propagate")
	}

	store = newMemoryStore()
	store.existsErr = errors.New("search down")
	sink = NewSink(store, nil)

	_, err = sink.Upsert(context.Background(), []domain.RankedProject{candidate("https://github.com/o/r", 70)})
	if err == nil {
		t.Fatalf("expected exists error to propagate")
	}
}

func TestUpsertMatchesExactURLOnly(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	store.entries["https://github.com/o/Repo"] = candidate("https://github.com/o/Repo", 80)
	sink := NewSink(store, nil)

	// the sink matches the exact string; case differences insert a new entry
	result, err := sink.Upsert(context.Background(), []domain.RankedProject{candidate("https://github.com/o/repo", 80)})
	if err != nil {
		t.Fatalf("Upsert error: %v", err)
	}
	if result.Inserted != 1 || result.SkippedExists != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
}
