// Package contract holds the data-transfer types exchanged between the
// service layer and its callers for read-side reports.
package contract

// StatusRequest selects what the tree report includes.
type StatusRequest struct {
	IncludeArchived bool
}

// StatusResponse is the full tree report: every root objective with its
// descendants, plus aggregate counts across the whole tree.
type StatusResponse struct {
	Roots      []*TreeNode
	Total      int
	OnTrack    int
	AtRisk     int
	Behind     int
	Archived   int
	AvgCompany int
}

// TreeNode is one objective in the report with its linked KPIs and
// children, ordered as stored.
type TreeNode struct {
	ID       string
	Title    string
	Level    string
	Status   string
	Progress int
	KPIs     []KPISummary
	Children []*TreeNode
}

// KPISummary is the per-KPI line shown under an objective.
type KPISummary struct {
	ID       string
	Name     string
	Value    float64
	Target   float64
	Unit     string
	Progress int
	Status   string
}
