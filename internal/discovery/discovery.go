package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"RepoScout/internal/domain"
	"RepoScout/internal/ports"
)

// Provider is a single repository search backend (GitHub today, other forges
// later).
type Provider interface {
	Name() string
	Discover(ctx context.Context) ([]domain.Project, error)
}

// Registry keeps a mapping from provider names to their implementations.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: map[string]Provider{}}
}

// Register adds or replaces a provider implementation.
func (r *Registry) Register(provider Provider) {
	if r.providers == nil {
		r.providers = map[string]Provider{}
	}
	r.providers[provider.Name()] = provider
}

// Resolve returns a provider by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Provider, error) {
	if provider, ok := r.providers[name]; ok {
		return provider, nil
	}
	return nil, fmt.Errorf("provider %s is not registered", name)
}

// Source aggregates configured providers into one deduplicated candidate list.
// Repository URLs are compared lower-cased, first occurrence wins, and the
// output is capped at maxResults.
type Source struct {
	registry   *Registry
	providers  []string
	maxResults int
	logger     *slog.Logger
}

var _ ports.ProjectSource = (*Source)(nil)

// NewSource wires the provider registry with the configured provider names.
func NewSource(reg *Registry, providers []string, maxResults int, log *slog.Logger) *Source {
	return &Source{
		registry:   reg,
		providers:  providers,
		maxResults: maxResults,
		logger:     log,
	}
}

// Discover runs every configured provider in order and merges the results.
func (s *Source) Discover(ctx context.Context) ([]domain.Project, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("provider registry is not configured")
	}

	seen := map[string]struct{}{}
	results := make([]domain.Project, 0)

	for _, name := range s.providers {
		provider, err := s.registry.Resolve(name)
		if err != nil {
			return nil, fmt.Errorf("discovery source: %w", err)
		}

		found, err := provider.Discover(ctx)
		if err != nil {
			return nil, fmt.Errorf("provider %s: %w", name, err)
		}
		s.debug("provider produced candidates", "provider", name, "count", len(found))

		for _, project := range found {
			key := strings.ToLower(project.RepoURL)
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			results = append(results, project)
		}
	}

	if s.maxResults > 0 && len(results) > s.maxResults {
		results = results[:s.maxResults]
	}

	s.debug("discovery done", "total", len(results))
	return results, nil
}

func (s *Source) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
