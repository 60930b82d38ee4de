package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"RepoScout/internal/domain"
	"RepoScout/internal/ports"
)

// Summary aggregates counters from every pipeline stage.
type Summary struct {
	Scanned       int
	Ranked        int
	Kept          int
	Inserted      int
	SkippedExists int
	FilteredOut   int
}

// RunResult carries the final counters plus the kept candidates for reporting.
type RunResult struct {
	Summary    Summary
	Candidates []domain.RankedProject
}

// PipelineDeps wires all driven adapters into the run orchestration.
type PipelineDeps struct {
	Source             ports.ProjectSource
	Ranker             *Ranker
	Sink               *Sink
	Notifier           ports.Notifier
	Logger             *slog.Logger
	CandidateThreshold int
	EmailOnInsert      bool
}

// Pipeline implements the discover-rank-filter-upsert-notify workflow as one
// strictly sequential pass.
type Pipeline struct {
	source        ports.ProjectSource
	ranker        *Ranker
	sink          *Sink
	notifier      ports.Notifier
	logger        *slog.Logger
	threshold     int
	emailOnInsert bool
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		source:        deps.Source,
		ranker:        deps.Ranker,
		sink:          deps.Sink,
		notifier:      deps.Notifier,
		logger:        deps.Logger,
		threshold:     deps.CandidateThreshold,
		emailOnInsert: deps.EmailOnInsert,
	}
}

// Run executes one full discovery-to-summary pass. Discovery and sink errors
// abort the run; ranking degrades per batch and notification is best-effort.
func (p *Pipeline) Run(ctx context.Context) (RunResult, error) {
	projects, err := p.source.Discover(ctx)
	if err != nil {
		return RunResult{}, fmt.Errorf("discover projects: %w", err)
	}
	p.info("discovery finished", "candidates", len(projects))

	ranked := p.ranker.Rank(ctx, projects)

	candidates := FilterByScore(ranked, p.threshold)
	p.info("threshold applied", "kept", len(candidates), "threshold", p.threshold)

	upsert, err := p.sink.Upsert(ctx, candidates)
	if err != nil {
		return RunResult{}, fmt.Errorf("upsert candidates: %w", err)
	}

	p.notify(ctx, candidates, upsert)

	return RunResult{
		Summary: Summary{
			Scanned:       len(projects),
			Ranked:        len(ranked),
			Kept:          len(candidates),
			Inserted:      upsert.Inserted,
			SkippedExists: upsert.SkippedExists,
			FilteredOut:   len(ranked) - len(candidates),
		},
		Candidates: candidates,
	}, nil
}

// notify sends the insertion digest and discards the outcome by policy:
// notification failure must never fail the job.
func (p *Pipeline) notify(ctx context.Context, candidates []domain.RankedProject, upsert domain.UpsertResult) {
	if p.notifier == nil || !p.emailOnInsert || upsert.Inserted == 0 {
		return
	}

	inserted := insertedProjects(candidates, upsert.URLs)
	result := p.notifier.NotifyInserted(ctx, inserted)
	switch result.Outcome {
	case ports.SendSkipped:
		p.info("notification skipped, email credentials not configured")
	case ports.SendFailed:
		if p.logger != nil {
			p.logger.Warn("notification failed", "error", result.Err)
		}
	default:
		p.info("notification sent", "projects", len(inserted))
	}
}

func insertedProjects(candidates []domain.RankedProject, urls []string) []domain.RankedProject {
	set := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		set[u] = struct{}{}
	}

	inserted := make([]domain.RankedProject, 0, len(urls))
	for _, candidate := range candidates {
		if _, ok := set[candidate.RepoURL]; ok {
			inserted = append(inserted, candidate)
		}
	}
	return inserted
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}
