package discovery

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"RepoScout/internal/domain"
)

type stubProvider struct {
	name     string
	projects []domain.Project
	err      error
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Discover(context.Context) ([]domain.Project, error) {
	return s.projects, s.err
}

func project(url string) domain.Project {
	return domain.Project{Org: "org", Name: "proj", RepoURL: url}
}

func TestSourceDedupsCaseInsensitiveFirstSeen(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register(&stubProvider{name: "github", projects: []domain.Project{
		project("https://github.com/Org/Repo"),
		project("https://github.com/org/repo"),
		project("https://github.com/org/other"),
		project(""),
		project("HTTPS://GITHUB.COM/ORG/REPO"),
	}})

	source := NewSource(registry, []string{"github"}, 0, nil)
	results, err := source.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 unique projects, got %d", len(results))
	}
	if results[0].RepoURL != "https://github.com/Org/Repo" {
		t.Fatalf("first occurrence must win: %s", results[0].RepoURL)
	}
	if results[1].RepoURL != "https://github.com/org/other" {
		t.Fatalf("unexpected second project: %s", results[1].RepoURL)
	}
}

func TestSourceCapsResults(t *testing.T) {
	t.Parallel()

	var projects []domain.Project
	for i := 0; i < 10; i++ {
		projects = append(projects, project(fmt.Sprintf("https://github.com/org/repo%d", i)))
	}

	registry := NewRegistry()
	registry.Register(&stubProvider{name: "github", projects: projects})

	source := NewSource(registry, []string{"github"}, 3, nil)
	results, err := source.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected capped result of 3, got %d", len(results))
	}
}

func TestSourceMergesProvidersInOrder(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register(&stubProvider{name: "github", projects: []domain.Project{
		project("https://github.com/org/a"),
	}})
	registry.Register(&stubProvider{name: "other", projects: []domain.Project{
		project("https://github.com/org/A"),
		project("https://example.org/org/b"),
	}})

	source := NewSource(registry, []string{"github", "other"}, 0, nil)
	results, err := source.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected cross-provider dedup, got %d results", len(results))
	}
	if results[0].RepoURL != "https://github.com/org/a" || results[1].RepoURL != "https://example.org/org/b" {
		t.Fatalf("unexpected merge order: %+v", results)
	}
}

func TestSourceUnknownProvider(t *testing.T) {
	t.Parallel()

	source := NewSource(NewRegistry(), []string{"gitlab"}, 0, nil)
	if _, err := source.Discover(context.Background()); err == nil {
		t.Fatalf("expected error for unregistered provider")
	}
}

func TestSourceProviderErrorPropagates(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register(&stubProvider{name: "github", err: errors.New("credentials rejected")})

	source := NewSource(registry, []string{"github"}, 0, nil)
	if _, err := source.Discover(context.Background()); err == nil {
		t.Fatalf("expected provider error to propagate")
	}
}
