package domain

// Focus is the closed set of focus areas a repository can be classified into.
type Focus string

const (
	FocusBackend  Focus = "Backend"
	FocusFrontend Focus = "Frontend"
	FocusInfra    Focus = "Infra"
	FocusAI       Focus = "AI"
	FocusDevRel   Focus = "DevRel"
	FocusTooling  Focus = "Tooling"
	FocusDocs     Focus = "Docs"
)

// NormalizeFocus maps free-form model output onto the closed focus set.
// Anything absent or unknown falls back to Tooling.
func NormalizeFocus(value string) Focus {
	switch Focus(value) {
	case FocusBackend, FocusFrontend, FocusInfra, FocusAI, FocusDevRel, FocusTooling, FocusDocs:
		return Focus(value)
	}
	return FocusTooling
}

// Project is a repository discovered by a search provider. The repo URL is the
// unique key for the whole pipeline; records are never mutated after discovery.
type Project struct {
	Org         string   `json:"org"`
	Name        string   `json:"project"`
	RepoURL     string   `json:"repo"`
	Homepage    string   `json:"homepage,omitempty"`
	Description string   `json:"description,omitempty"`
	Language    string   `json:"lang,omitempty"`
	Topics      []string `json:"topics,omitempty"`
}

// RankedProject extends a Project with model evaluation results. Exactly one
// is produced per discovered project, in discovery order.
type RankedProject struct {
	Project
	Score      int
	Focus      Focus
	Tech       []string
	Note       string
	IsRelevant bool
}

// UpsertResult aggregates the outcome of one sink pass.
type UpsertResult struct {
	Inserted      int
	URLs          []string
	SkippedExists int
}
