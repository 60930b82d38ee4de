package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"RepoScout/internal/config"
	"RepoScout/internal/domain"
	"RepoScout/internal/ports"
)

const defaultBatchSize = 20

// Progress receives batch-level ranking notices (1-based batch index, total
// batch count, 1-based item range). May be nil.
type Progress func(batch, totalBatches, start, end int)

// Ranker scores discovered projects in fixed-size batches through an external
// inference service.
type Ranker struct {
	completer ports.ChatCompleter
	cfg       config.RankingConfig
	progress  Progress
	logger    *slog.Logger
}

// NewRanker constructs the batch ranking stage.
func NewRanker(completer ports.ChatCompleter, cfg config.RankingConfig, progress Progress, log *slog.Logger) *Ranker {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	return &Ranker{
		completer: completer,
		cfg:       cfg,
		progress:  progress,
		logger:    log,
	}
}

// Rank returns exactly one RankedProject per input project, in input order.
// A batch whose model call errors or returns unparseable output degrades to
// zero-score defaults for every item in that batch; ranking never fails the
// run, so low scores self-exclude downstream instead of records going missing.
func (r *Ranker) Rank(ctx context.Context, projects []domain.Project) []domain.RankedProject {
	ranked := make([]domain.RankedProject, 0, len(projects))
	if len(projects) == 0 {
		return ranked
	}

	total := len(projects)
	batchSize := r.cfg.BatchSize
	totalBatches := (total + batchSize - 1) / batchSize

	for i := 0; i < total; i += batchSize {
		end := i + batchSize
		if end > total {
			end = total
		}
		batch := projects[i:end]
		batchIndex := i/batchSize + 1

		if r.progress != nil {
			r.progress(batchIndex, totalBatches, i+1, end)
		}

		replies := r.scoreBatch(ctx, batch)
		for j, project := range batch {
			var reply map[string]any
			if j < len(replies) {
				reply = replies[j]
			}
			ranked = append(ranked, r.coerce(project, reply))
		}
	}

	return ranked
}

// scoreBatch asks the model for one JSON array covering the batch. Any failure
// returns nil so the caller aligns every item with an empty reply.
func (r *Ranker) scoreBatch(ctx context.Context, batch []domain.Project) []map[string]any {
	user, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		r.warn("marshal batch", "error", err)
		return nil
	}

	reply, err := r.completer.Complete(ctx, r.systemPrompt(len(batch)), string(user))
	if err != nil {
		r.warn("batch ranking failed, scoring defaults", "error", err)
		return nil
	}

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(reply), &elements); err != nil {
		r.warn("unparseable ranking reply, scoring defaults", "error", err)
		return nil
	}

	replies := make([]map[string]any, len(elements))
	for i, element := range elements {
		var fields map[string]any
		if err := json.Unmarshal(element, &fields); err != nil {
			continue
		}
		replies[i] = fields
	}
	return replies
}

func (r *Ranker) systemPrompt(batchLen int) string {
	skills := strings.Join(r.cfg.Skills, ", ")
	return strings.Join([]string{
		"You are ranking GitHub repositories for student-contribution fit.",
		fmt.Sprintf("Candidate skills: %s.", skills),
		fmt.Sprintf("Return a JSON array with exactly %d objects.", batchLen),
		`Each object: {"score":0-100,"focus":"Backend|Frontend|Infra|AI|DevRel|Tooling|Docs","tech":[3-8 strings],"note":"one-line tip"}.`,
		fmt.Sprintf("Score higher if the repository is relevant to %s.", skills),
		"Do not include any prose, only the JSON array.",
	}, " ")
}

// coerce validates every field of the untrusted reply individually, with
// documented defaults: score 0, focus Tooling, tech empty, note empty. A nil
// reply produces the all-default record.
func (r *Ranker) coerce(project domain.Project, reply map[string]any) domain.RankedProject {
	score := coerceScore(reply["score"])
	return domain.RankedProject{
		Project:    project,
		Score:      score,
		Focus:      coerceFocus(reply["focus"]),
		Tech:       coerceTech(reply["tech"]),
		Note:       coerceNote(reply["note"]),
		IsRelevant: score >= r.cfg.RelevantThreshold,
	}
}

func coerceScore(value any) int {
	switch v := value.(type) {
	case float64:
		return int(v)
	case string:
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return int(n)
		}
	}
	return 0
}

func coerceFocus(value any) domain.Focus {
	if s, ok := value.(string); ok {
		return domain.NormalizeFocus(s)
	}
	return domain.FocusTooling
}

func coerceTech(value any) []string {
	items, ok := value.([]any)
	if !ok {
		return []string{}
	}
	tech := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			tech = append(tech, s)
		}
	}
	return tech
}

func coerceNote(value any) string {
	s, _ := value.(string)
	return s
}

func (r *Ranker) warn(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Warn(msg, args...)
	}
}
