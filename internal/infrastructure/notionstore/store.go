package notionstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"RepoScout/internal/config"
	"RepoScout/internal/domain"
	"RepoScout/internal/ports"
)

const (
	defaultBaseURL = "https://api.notion.com"
	notionVersion  = "2022-06-28"

	urlProperty = "GitHub / Project URL"
	unknownOrg  = "(Unknown Org)"
)

// Store implements ports.ProjectStore against the Notion REST API. One page
// per tracked project, looked up by the repository URL property.
type Store struct {
	baseURL    string
	apiKey     string
	databaseID string
	client     *http.Client
	now        func() time.Time
}

var _ ports.ProjectStore = (*Store)(nil)

// NewStore wires an HTTP client; pass nil for a default with a 20s timeout.
func NewStore(client *http.Client, cfg config.StoreConfig) *Store {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Store{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     cfg.APIKey,
		databaseID: cfg.DatabaseID,
		client:     client,
		now:        time.Now,
	}
}

type searchResponse struct {
	Results []struct {
		Properties map[string]struct {
			URL *string `json:"url"`
		} `json:"properties"`
	} `json:"results"`
}

// Exists searches pages whose repository URL property equals repoURL exactly.
func (s *Store) Exists(ctx context.Context, repoURL string) (bool, error) {
	payload := map[string]any{
		"query": repoURL,
		"filter": map[string]string{
			"property": "object",
			"value":    "page",
		},
	}

	var resp searchResponse
	if err := s.post(ctx, "/v1/search", payload, &resp); err != nil {
		return false, fmt.Errorf("search pages: %w", err)
	}

	for _, page := range resp.Results {
		if prop, ok := page.Properties[urlProperty]; ok && prop.URL != nil && *prop.URL == repoURL {
			return true, nil
		}
	}
	return false, nil
}

// Insert creates one page in the tracking database. The score is stored as a
// 0.0-1.0 fraction.
func (s *Store) Insert(ctx context.Context, project domain.RankedProject) error {
	org := project.Org
	if org == "" {
		org = unknownOrg
	}

	tech := make([]map[string]string, 0, len(project.Tech))
	for _, t := range project.Tech {
		tech = append(tech, map[string]string{"name": t})
	}

	notes := []any{}
	if project.Note != "" {
		notes = append(notes, textBlock(project.Note))
	}

	var focus any
	if project.Focus != "" {
		focus = map[string]string{"name": string(project.Focus)}
	}

	payload := map[string]any{
		"parent": map[string]string{"database_id": s.databaseID},
		"properties": map[string]any{
			"Organization Name": map[string]any{
				"title": []any{textBlock(org)},
			},
			"Primary Focus Area": map[string]any{"select": focus},
			"Tech Used":          map[string]any{"multi_select": tech},
			"Tech Match Score":   map[string]any{"number": float64(project.Score) / 100},
			"Is Highly Relevant?": map[string]any{
				"checkbox": project.IsRelevant,
			},
			urlProperty: map[string]any{"url": project.RepoURL},
			"Last Updated": map[string]any{
				"date": map[string]string{"start": s.now().UTC().Format(time.RFC3339)},
			},
			"Notes / Strategy": map[string]any{"rich_text": notes},
		},
	}

	if err := s.post(ctx, "/v1/pages", payload, nil); err != nil {
		return fmt.Errorf("create page: %w", err)
	}
	return nil
}

func textBlock(content string) map[string]any {
	return map[string]any{
		"type": "text",
		"text": map[string]string{"content": content},
	}
}

func (s *Store) post(ctx context.Context, path string, payload any, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Notion-Version", notionVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("notion error %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	if v == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
