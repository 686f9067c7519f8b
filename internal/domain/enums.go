package domain

type Level string

const (
	LevelCompany    Level = "company"
	LevelDepartment Level = "department"
	LevelIndividual Level = "individual"
)

// ValidLevels is the canonical set of accepted objective levels.
var ValidLevels = map[Level]bool{
	LevelCompany: true, LevelDepartment: true, LevelIndividual: true,
}

// ParentLevel returns the level an objective's parent must have.
// The second return value is false for company-level objectives,
// which are roots and must not have a parent.
func ParentLevel(l Level) (Level, bool) {
	switch l {
	case LevelDepartment:
		return LevelCompany, true
	case LevelIndividual:
		return LevelDepartment, true
	default:
		return "", false
	}
}

type Status string

const (
	StatusOnTrack  Status = "on-track"
	StatusAtRisk   Status = "at-risk"
	StatusBehind   Status = "behind"
	StatusArchived Status = "archived"
)

type NotificationType string

const (
	NotificationStatusChange NotificationType = "status_change"
	NotificationObjective    NotificationType = "objective"
)

type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
)
