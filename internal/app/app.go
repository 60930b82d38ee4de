package app

import (
	"context"
	"log/slog"
	"os"

	"RepoScout/internal/config"
	"RepoScout/internal/discovery"
	"RepoScout/internal/infrastructure/emailer"
	"RepoScout/internal/infrastructure/githubsearch"
	"RepoScout/internal/infrastructure/llm"
	"RepoScout/internal/infrastructure/notionstore"
	"RepoScout/internal/logging"
	"RepoScout/internal/report"
	"RepoScout/internal/usecase"
)

// Application wires configuration into the run pipeline.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
	printer  *report.Printer
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	registry := discovery.NewRegistry()
	registry.Register(githubsearch.NewProvider(nil, cfg.Search, baseLogger.With("component", "search.github")))

	source := discovery.NewSource(registry, cfg.Search.Providers, cfg.Search.MaxResults,
		baseLogger.With("component", "discovery"))

	printer := report.NewPrinter(os.Stdout, cfg.Report.SummaryOnly)

	var progress usecase.Progress
	if cfg.Report.ShowProgress {
		progress = printer.BatchProgress()
	}

	ranker := usecase.NewRanker(llm.NewClient(cfg.Ranking), cfg.Ranking, progress,
		baseLogger.With("component", "ranker"))
	sink := usecase.NewSink(notionstore.NewStore(nil, cfg.Store),
		baseLogger.With("component", "sink"))

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:             source,
		Ranker:             ranker,
		Sink:               sink,
		Notifier:           emailer.NewNotifier(cfg.Email),
		Logger:             baseLogger.With("component", "pipeline"),
		CandidateThreshold: cfg.Ranking.CandidateThreshold,
		EmailOnInsert:      cfg.Email.OnInsert,
	})

	return &Application{cfg: cfg, pipeline: pipeline, printer: printer}
}

// Run validates mandatory credentials and executes one pipeline pass. The
// summary is printed only when the run reaches completion.
func (a *Application) Run(ctx context.Context) error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	result, err := a.pipeline.Run(ctx)
	if err != nil {
		return err
	}

	a.printer.TopMatches(result.Candidates)
	a.printer.Summary(result.Summary)
	return nil
}
