package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/leuz9/oolu-kpis-sub000/internal/domain"
)

// Objective options
type ObjectiveOption func(*domain.Objective)

func WithLevel(l domain.Level) ObjectiveOption {
	return func(o *domain.Objective) {
		o.Level = l
	}
}

func WithParent(id string) ObjectiveOption {
	return func(o *domain.Objective) {
		o.ParentID = &id
	}
}

func WithContributors(ids ...string) ObjectiveOption {
	return func(o *domain.Objective) {
		o.Contributors = ids
	}
}

func WithObjectiveStatus(s domain.Status) ObjectiveOption {
	return func(o *domain.Objective) {
		o.Status = s
	}
}

func WithProgress(p int) ObjectiveOption {
	return func(o *domain.Objective) {
		o.Progress = p
	}
}

func WithDueDate(d time.Time) ObjectiveOption {
	return func(o *domain.Objective) {
		o.DueDate = &d
	}
}

func WithQuarter(year, quarter int) ObjectiveOption {
	return func(o *domain.Objective) {
		o.Year = year
		o.Quarter = quarter
	}
}

// NewTestObjective builds a company-level objective by default; use
// WithLevel and WithParent to place it deeper in the tree.
func NewTestObjective(title string, opts ...ObjectiveOption) *domain.Objective {
	now := time.Now().UTC()
	o := &domain.Objective{
		ID:           uuid.New().String(),
		Title:        title,
		Level:        domain.LevelCompany,
		Status:       domain.StatusBehind,
		Progress:     0,
		Contributors: []string{"user-1"},
		Quarter:      3,
		Year:         2026,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// KPI options
type KPIOption func(*domain.KPI)

func WithValueTarget(value, target float64) KPIOption {
	return func(k *domain.KPI) {
		k.Value = value
		k.Target = target
		k.Recompute()
	}
}

func WithUnit(unit string) KPIOption {
	return func(k *domain.KPI) {
		k.Unit = unit
	}
}

// NewTestKPI builds a KPI at 0/100 by default.
func NewTestKPI(name string, opts ...KPIOption) *domain.KPI {
	now := time.Now().UTC()
	k := &domain.KPI{
		ID:        uuid.New().String(),
		Name:      name,
		Value:     0,
		Target:    100,
		Status:    domain.StatusBehind,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(k)
	}
	k.Recompute()
	return k
}

// NewTestNotification builds a medium-priority notification.
func NewTestNotification(userID, title string) *domain.Notification {
	return &domain.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Message:   title,
		Type:      domain.NotificationStatusChange,
		Priority:  domain.PriorityMedium,
		CreatedAt: time.Now().UTC(),
	}
}
