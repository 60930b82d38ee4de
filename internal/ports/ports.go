package ports

import (
	"context"

	"RepoScout/internal/domain"
)

// ProjectSource pulls candidate repositories from upstream search providers.
type ProjectSource interface {
	Discover(ctx context.Context) ([]domain.Project, error)
}

// ChatCompleter sends one system/user prompt pair to an inference API and
// returns the raw text reply.
type ChatCompleter interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// ProjectStore persists ranked projects keyed by repository URL.
type ProjectStore interface {
	Exists(ctx context.Context, repoURL string) (bool, error)
	Insert(ctx context.Context, project domain.RankedProject) error
}

// SendOutcome classifies a notification attempt.
type SendOutcome int

const (
	SendSent SendOutcome = iota
	SendSkipped
	SendFailed
)

// SendResult reports how a notification attempt ended. Err is set only for
// SendFailed. Callers inspect the result and decide what to discard, which
// keeps the never-fail-the-run policy visible instead of hiding it behind a
// swallowed error.
type SendResult struct {
	Outcome SendOutcome
	Err     error
}

// Notifier delivers a digest of newly inserted projects.
type Notifier interface {
	NotifyInserted(ctx context.Context, projects []domain.RankedProject) SendResult
}
