package githubsearch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/go-github/v68/github"

	"RepoScout/internal/config"
	"RepoScout/internal/discovery"
	"RepoScout/internal/domain"
)

const defaultPageSize = 100

// Provider queries the GitHub repository search API.
type Provider struct {
	client *github.Client
	cfg    config.SearchConfig
	logger *slog.Logger
}

var _ discovery.Provider = (*Provider)(nil)

// NewProvider wires a GitHub client; pass nil to build one from the token.
func NewProvider(client *github.Client, cfg config.SearchConfig, log *slog.Logger) *Provider {
	if client == nil {
		client = github.NewClient(nil).WithAuthToken(cfg.Token)
	}
	return &Provider{client: client, cfg: cfg, logger: log}
}

// Name identifies the provider inside the registry.
func (p *Provider) Name() string {
	return "github"
}

// Discover pages through search results sorted by recency until the
// configured cap is reached or a short page signals exhaustion.
func (p *Provider) Discover(ctx context.Context) ([]domain.Project, error) {
	query := buildQuery(p.cfg)
	p.debug("searching github", "query", query)

	pageSize := p.cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	pages := (p.cfg.MaxResults + pageSize - 1) / pageSize

	results := make([]domain.Project, 0, p.cfg.MaxResults)
	for page := 1; page <= pages; page++ {
		found, _, err := p.client.Search.Repositories(ctx, query, &github.SearchOptions{
			Sort:  "updated",
			Order: "desc",
			ListOptions: github.ListOptions{
				Page:    page,
				PerPage: pageSize,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("search page %d: %w", page, err)
		}

		for _, repo := range found.Repositories {
			results = append(results, toProject(repo))
		}

		p.debug("fetched page", "page", page, "items", len(found.Repositories))
		if len(found.Repositories) < pageSize {
			break
		}
	}

	return results, nil
}

// buildQuery combines keyword disjunction, language filters, a star floor and
// a freshness floor into one search expression.
func buildQuery(cfg config.SearchConfig) string {
	var parts []string
	if len(cfg.Keywords) > 0 {
		parts = append(parts, fmt.Sprintf("in:readme (%s)", strings.Join(cfg.Keywords, " OR ")))
	}
	for _, lang := range cfg.Languages {
		parts = append(parts, "language:"+lang)
	}
	parts = append(parts, fmt.Sprintf("stars:>%d", cfg.MinStars))
	if cfg.UpdatedSince != "" {
		parts = append(parts, "updated:>="+cfg.UpdatedSince)
	}
	return strings.Join(parts, " ")
}

func toProject(repo *github.Repository) domain.Project {
	return domain.Project{
		Org:         repo.GetOwner().GetLogin(),
		Name:        repo.GetName(),
		RepoURL:     repo.GetHTMLURL(),
		Homepage:    repo.GetHomepage(),
		Description: repo.GetDescription(),
		Language:    repo.GetLanguage(),
		Topics:      repo.Topics,
	}
}

func (p *Provider) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}
