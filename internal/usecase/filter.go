package usecase

import "RepoScout/internal/domain"

// FilterByScore keeps records whose score meets or exceeds the threshold,
// preserving input order. Pure, no side effects.
func FilterByScore(ranked []domain.RankedProject, threshold int) []domain.RankedProject {
	candidates := make([]domain.RankedProject, 0, len(ranked))
	for _, record := range ranked {
		if record.Score >= threshold {
			candidates = append(candidates, record)
		}
	}
	return candidates
}
