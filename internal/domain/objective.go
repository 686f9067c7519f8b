package domain

import "time"

type Objective struct {
	ID           string
	Title        string
	Description  string
	Level        Level
	ParentID     *string
	Status       Status
	Progress     int // derived rollup, never set by callers
	KPIIDs       []string
	Contributors []string
	DueDate      *time.Time
	Quarter      int
	Year         int
	ArchivedAt   *time.Time
	Version      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsArchived reports whether the objective has been retired from active
// listings and parent rollups.
func (o *Objective) IsArchived() bool {
	return o.Status == StatusArchived
}

// IsRoot reports whether the objective sits at the top of its tree.
func (o *Objective) IsRoot() bool {
	return o.ParentID == nil
}

// DisplayID returns a short identifier for CLI output.
func (o *Objective) DisplayID() string {
	if len(o.ID) >= 8 {
		return o.ID[:8]
	}
	return o.ID
}

// DedupeIDs returns ids with duplicates and empty entries removed,
// preserving first-occurrence order.
func DedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
