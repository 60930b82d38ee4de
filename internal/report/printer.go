package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/fatih/color"

	"RepoScout/internal/domain"
	"RepoScout/internal/usecase"
)

const topMatchesLimit = 10

// Printer writes run progress and the final report to a console.
type Printer struct {
	out         io.Writer
	summaryOnly bool
}

// NewPrinter builds a console printer; pass nil for stdout.
func NewPrinter(out io.Writer, summaryOnly bool) *Printer {
	if out == nil {
		out = os.Stdout
	}
	return &Printer{out: out, summaryOnly: summaryOnly}
}

// BatchProgress returns a ranking progress observer, or nil in summary-only
// mode. Purely informational.
func (p *Printer) BatchProgress() usecase.Progress {
	if p.summaryOnly {
		return nil
	}
	cyan := color.New(color.FgCyan).SprintfFunc()
	return func(batch, totalBatches, start, end int) {
		fmt.Fprintln(p.out, cyan("ranking batch %d of %d (repos %d-%d)", batch, totalBatches, start, end))
	}
}

// TopMatches prints up to ten kept candidates, highest score first.
func (p *Printer) TopMatches(candidates []domain.RankedProject) {
	if p.summaryOnly || len(candidates) == 0 {
		return
	}

	sorted := make([]domain.RankedProject, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })
	if len(sorted) > topMatchesLimit {
		sorted = sorted[:topMatchesLimit]
	}

	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintln(p.out, "Top matches:")
	for _, c := range sorted {
		fmt.Fprintf(p.out, "  - [%s] %s/%s (%s)\n", green(strconv.Itoa(c.Score)), c.Org, c.Name, c.Focus)
		fmt.Fprintf(p.out, "    %s\n", c.RepoURL)
	}
}

// Summary prints the fixed-format final report. Always shown, regardless of
// verbosity settings.
func (p *Printer) Summary(s usecase.Summary) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "================== SUMMARY ==================")
	fmt.Fprintf(p.out, "Scanned from GitHub:      %d\n", s.Scanned)
	fmt.Fprintf(p.out, "Ranked by LLM:            %d\n", s.Ranked)
	fmt.Fprintf(p.out, "Kept (score >= thresh):   %d\n", s.Kept)
	fmt.Fprintf(p.out, "Inserted into store:      %d\n", s.Inserted)
	fmt.Fprintf(p.out, "Skipped (already exist):  %d\n", s.SkippedExists)
	fmt.Fprintf(p.out, "Filtered out (low score): %d\n", s.FilteredOut)
	fmt.Fprintln(p.out, "=============================================")
}
