package emailer

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"RepoScout/internal/config"
	"RepoScout/internal/domain"
	"RepoScout/internal/ports"
)

func insertedProjects() []domain.RankedProject {
	return []domain.RankedProject{
		{
			Project: domain.Project{Org: "orgA", Name: "alpha", RepoURL: "https://github.com/orgA/alpha"},
			Score:   82,
			Note:    "start with the docs issues",
		},
		{
			Project: domain.Project{Org: "orgB", Name: "beta", RepoURL: "https://github.com/orgB/beta"},
			Score:   67,
		},
	}
}

func TestBuildProjectsEmail(t *testing.T) {
	t.Parallel()

	html, err := BuildProjectsEmail(insertedProjects())
	if err != nil {
		t.Fatalf("BuildProjectsEmail error: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}

	items := doc.Find("ul > li")
	if items.Length() != 2 {
		t.Fatalf("expected 2 list items, got %d", items.Length())
	}

	first := items.First()
	if got := first.Find("strong").Text(); got != "orgA/alpha" {
		t.Fatalf("unexpected project heading: %q", got)
	}
	if href, _ := first.Find("a").Attr("href"); href != "https://github.com/orgA/alpha" {
		t.Fatalf("unexpected link: %q", href)
	}
	if !strings.Contains(first.Text(), "score 82") {
		t.Fatalf("score missing from item: %q", first.Text())
	}
	if got := first.Find("div").Text(); !strings.Contains(got, "start with the docs issues") {
		t.Fatalf("note missing: %q", got)
	}

	// second project has no note, so no note div
	if items.Last().Find("div").Length() != 0 {
		t.Fatalf("noteless item must not render a note div")
	}

	if !strings.Contains(doc.Find("p").Text(), "2 new item(s)") {
		t.Fatalf("count line missing: %q", doc.Find("p").Text())
	}
}

func TestBuildProjectsEmailEscapesContent(t *testing.T) {
	t.Parallel()

	html, err := BuildProjectsEmail([]domain.RankedProject{{
		Project: domain.Project{Org: "<script>", Name: "x", RepoURL: "https://github.com/o/x"},
		Note:    "<img src=x>",
	}})
	if err != nil {
		t.Fatalf("BuildProjectsEmail error: %v", err)
	}
	if strings.Contains(html, "<script>") || strings.Contains(html, "<img") {
		t.Fatalf("model-provided text must be escaped: %s", html)
	}
}

func TestNotifySkippedWithoutCredentials(t *testing.T) {
	t.Parallel()

	cases := []config.EmailConfig{
		{},
		{User: "a@b.c"},
		{User: "a@b.c", Password: "p"},
		{Password: "p", Recipient: "r@b.c"},
	}

	for _, cfg := range cases {
		notifier := NewNotifier(cfg)
		result := notifier.NotifyInserted(context.Background(), insertedProjects())
		if result.Outcome != ports.SendSkipped {
			t.Fatalf("config %+v: expected skipped, got %v", cfg, result.Outcome)
		}
		if result.Err != nil {
			t.Fatalf("skipped result must carry no error: %v", result.Err)
		}
	}
}
