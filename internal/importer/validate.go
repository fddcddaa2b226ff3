package importer

import (
	"fmt"
	"time"

	"github.com/paulavishek/prizmai/internal/domain"
)

var validTaskStatuses = map[string]bool{
	"todo": true, "in_progress": true, "done": true, "archived": true,
}

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	if schema.Organization == "" {
		errs = append(errs, fmt.Errorf("organization is required"))
	}
	if len(schema.Boards) == 0 {
		errs = append(errs, fmt.Errorf("at least one board is required"))
	}

	boardRefs := make(map[string]bool)
	errs = append(errs, validateBoards(schema.Boards, boardRefs)...)
	errs = append(errs, validateTasks(schema.Tasks, boardRefs)...)
	errs = append(errs, validateCompletions(schema.Completions, boardRefs)...)

	return errs
}

func validateBoards(boards []BoardImport, boardRefs map[string]bool) []error {
	var errs []error

	for i, b := range boards {
		prefix := fmt.Sprintf("boards[%d]", i)

		if b.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if boardRefs[b.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, b.Ref))
		} else {
			boardRefs[b.Ref] = true
		}

		if b.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if b.StartDate == "" {
			errs = append(errs, fmt.Errorf("%s.start_date is required", prefix))
		} else if _, err := time.Parse("2006-01-02", b.StartDate); err != nil {
			errs = append(errs, fmt.Errorf("%s.start_date: invalid date format %q (expected YYYY-MM-DD)", prefix, b.StartDate))
		}

		if b.DueDate != nil {
			if _, err := time.Parse("2006-01-02", *b.DueDate); err != nil {
				errs = append(errs, fmt.Errorf("%s.due_date: invalid date format %q (expected YYYY-MM-DD)", prefix, *b.DueDate))
			} else if b.StartDate != "" {
				start, startErr := time.Parse("2006-01-02", b.StartDate)
				due, dueErr := time.Parse("2006-01-02", *b.DueDate)
				if startErr == nil && dueErr == nil && !due.After(start) {
					errs = append(errs, fmt.Errorf("%s.due_date %q must be after start_date %q", prefix, *b.DueDate, b.StartDate))
				}
			}
		}
	}

	return errs
}

func validateTasks(tasks []TaskImport, boardRefs map[string]bool) []error {
	var errs []error

	taskRefs := make(map[string]bool)
	for i, t := range tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)

		if t.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if taskRefs[t.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, t.Ref))
		} else {
			taskRefs[t.Ref] = true
		}

		if t.BoardRef == "" {
			errs = append(errs, fmt.Errorf("%s.board_ref is required", prefix))
		} else if !boardRefs[t.BoardRef] {
			errs = append(errs, fmt.Errorf("%s.board_ref: ref %q not found in boards", prefix, t.BoardRef))
		}

		if t.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if t.Status != "" && !validTaskStatuses[t.Status] {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, t.Status))
		}
		if t.Priority != "" && !domain.ValidPriorities[t.Priority] {
			errs = append(errs, fmt.Errorf("%s.priority: invalid value %q", prefix, t.Priority))
		}
		if t.Complexity < 1 || t.Complexity > 10 {
			errs = append(errs, fmt.Errorf("%s.complexity must be between 1 and 10, got %d", prefix, t.Complexity))
		}
		if t.ProgressPct != nil && (*t.ProgressPct < 0 || *t.ProgressPct > 100) {
			errs = append(errs, fmt.Errorf("%s.progress_pct must be between 0 and 100, got %g", prefix, *t.ProgressPct))
		}
		if t.RiskScore != nil && (*t.RiskScore < 0 || *t.RiskScore > 10) {
			errs = append(errs, fmt.Errorf("%s.risk_score must be between 0 and 10, got %g", prefix, *t.RiskScore))
		}
		if t.DependencyCount < 0 {
			errs = append(errs, fmt.Errorf("%s.dependency_count must not be negative", prefix))
		}
		if t.StartDate != nil && *t.StartDate != "" {
			if _, err := time.Parse("2006-01-02", *t.StartDate); err != nil {
				errs = append(errs, fmt.Errorf("%s.start_date: invalid date format %q (expected YYYY-MM-DD)", prefix, *t.StartDate))
			}
		}
	}

	return errs
}

func validateCompletions(completions []CompletionImport, boardRefs map[string]bool) []error {
	var errs []error

	for i, c := range completions {
		prefix := fmt.Sprintf("completions[%d]", i)

		if c.BoardRef == "" {
			errs = append(errs, fmt.Errorf("%s.board_ref is required", prefix))
		} else if !boardRefs[c.BoardRef] {
			errs = append(errs, fmt.Errorf("%s.board_ref: ref %q not found in boards", prefix, c.BoardRef))
		}

		if c.Priority == "" {
			errs = append(errs, fmt.Errorf("%s.priority is required", prefix))
		} else if !domain.ValidPriorities[c.Priority] {
			errs = append(errs, fmt.Errorf("%s.priority: invalid value %q", prefix, c.Priority))
		}
		if c.Complexity < 1 || c.Complexity > 10 {
			errs = append(errs, fmt.Errorf("%s.complexity must be between 1 and 10, got %d", prefix, c.Complexity))
		}
		if c.DurationDays <= 0 {
			errs = append(errs, fmt.Errorf("%s.duration_days must be positive, got %g", prefix, c.DurationDays))
		}
		if c.StoryPoints != nil && *c.StoryPoints < 0 {
			errs = append(errs, fmt.Errorf("%s.story_points must not be negative", prefix))
		}
		if c.CompletedAt == "" {
			errs = append(errs, fmt.Errorf("%s.completed_at is required", prefix))
		} else if _, err := time.Parse("2006-01-02", c.CompletedAt); err != nil {
			errs = append(errs, fmt.Errorf("%s.completed_at: invalid date format %q (expected YYYY-MM-DD)", prefix, c.CompletedAt))
		}
	}

	return errs
}
