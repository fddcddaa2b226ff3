package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for seeding an organization's
// boards, pending tasks and completion history.
type ImportSchema struct {
	Organization string             `json:"organization"`
	Boards       []BoardImport      `json:"boards"`
	Tasks        []TaskImport       `json:"tasks,omitempty"`
	Completions  []CompletionImport `json:"completions,omitempty"`
}

// BoardImport defines one board in the import file.
type BoardImport struct {
	Ref       string  `json:"ref"`
	Name      string  `json:"name"`
	StartDate string  `json:"start_date"`
	DueDate   *string `json:"due_date,omitempty"`
}

// TaskImport defines one pending task in the import file.
type TaskImport struct {
	Ref                   string   `json:"ref"`
	BoardRef              string   `json:"board_ref"`
	Title                 string   `json:"title"`
	Status                string   `json:"status,omitempty"`
	Assignee              *string  `json:"assignee,omitempty"`
	Priority              string   `json:"priority,omitempty"`
	Complexity            int      `json:"complexity"`
	ProgressPct           *float64 `json:"progress_pct,omitempty"`
	RiskScore             *float64 `json:"risk_score,omitempty"`
	DependencyCount       int      `json:"dependency_count,omitempty"`
	RequiresCollaboration bool     `json:"requires_collaboration,omitempty"`
	StartDate             *string  `json:"start_date,omitempty"`
}

// CompletionImport defines one historical completion record.
type CompletionImport struct {
	BoardRef     string   `json:"board_ref"`
	Assignee     *string  `json:"assignee,omitempty"`
	Priority     string   `json:"priority"`
	Complexity   int      `json:"complexity"`
	DurationDays float64  `json:"duration_days"`
	StoryPoints  *float64 `json:"story_points,omitempty"`
	CompletedAt  string   `json:"completed_at"`
}

// LoadImportSchema reads and parses a seed import JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
