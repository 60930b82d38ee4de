package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"RepoScout/internal/domain"
	"RepoScout/internal/ports"
)

// Sink persists candidates into the project store, insert-if-absent only.
// Existing entries are never updated.
type Sink struct {
	store  ports.ProjectStore
	logger *slog.Logger
}

// NewSink constructs the upsert stage.
func NewSink(store ports.ProjectStore, log *slog.Logger) *Sink {
	return &Sink{store: store, logger: log}
}

// Upsert checks each candidate by exact repository URL and creates missing
// entries in order. Records with an empty URL are skipped without touching
// the store. Store errors are not caught here: the store is the source of
// truth and a half-applied batch beats a silently lost error, so they
// propagate and abort the run.
func (s *Sink) Upsert(ctx context.Context, candidates []domain.RankedProject) (domain.UpsertResult, error) {
	result := domain.UpsertResult{URLs: []string{}}

	for _, candidate := range candidates {
		if candidate.RepoURL == "" {
			continue
		}

		// Exact string match, unlike discovery's lower-cased dedup key.
		exists, err := s.store.Exists(ctx, candidate.RepoURL)
		if err != nil {
			return domain.UpsertResult{}, fmt.Errorf("check %s: %w", candidate.RepoURL, err)
		}
		if exists {
			result.SkippedExists++
			s.debug("already tracked", "repo", candidate.RepoURL)
			continue
		}

		if err := s.store.Insert(ctx, candidate); err != nil {
			return domain.UpsertResult{}, fmt.Errorf("insert %s: %w", candidate.RepoURL, err)
		}
		result.Inserted++
		result.URLs = append(result.URLs, candidate.RepoURL)
	}

	return result, nil
}

func (s *Sink) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
