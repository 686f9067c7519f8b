package domain

import "time"

type KPI struct {
	ID           string
	Name         string
	Unit         string
	Value        float64
	Target       float64 // must be non-zero for progress computation
	Progress     int     // derived from Value/Target
	Status       Status
	ObjectiveIDs []string
	Version      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayID returns a short identifier for CLI output.
func (k *KPI) DisplayID() string {
	if len(k.ID) >= 8 {
		return k.ID[:8]
	}
	return k.ID
}

// Recompute refreshes the derived progress and status from Value and Target.
func (k *KPI) Recompute() {
	k.Progress = KPIProgress(k.Value, k.Target)
	k.Status = StatusForProgress(k.Progress)
}
