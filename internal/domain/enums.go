package domain

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ValidPriorities is the canonical set of accepted priority strings.
var ValidPriorities = map[string]bool{
	"low": true, "medium": true, "high": true, "urgent": true,
}

// Weight maps a priority to its ordinal weight (urgent highest).
func (p Priority) Weight() int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
	TaskArchived   TaskStatus = "archived"
)

type PredictionMethod string

const (
	MethodHistorical PredictionMethod = "historical_analysis"
	MethodRuleBased  PredictionMethod = "rule_based_fallback"
)

// SimilarityTier identifies the specificity level at which comparable
// historical records were found. Lower tiers are more specific and carry a
// confidence bonus.
type SimilarityTier string

const (
	TierAssignee     SimilarityTier = "assignee"
	TierBoard        SimilarityTier = "board"
	TierOrganization SimilarityTier = "organization"
	TierNone         SimilarityTier = "none"
)

type RiskLevel string

const (
	RiskOnTrack  RiskLevel = "on_track"
	RiskAtRisk   RiskLevel = "at_risk"
	RiskCritical RiskLevel = "critical"
)
