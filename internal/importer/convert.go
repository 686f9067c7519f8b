package importer

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/leuz9/oolu-kpis-sub000/internal/domain"
)

// SeedTree holds the converted domain objects ready for persistence.
type SeedTree struct {
	Objectives []*domain.Objective
	KPIs       []*domain.KPI
	Links      []SeedLink
	// RootIDs are the ids of the company-level objectives in the file,
	// the natural starting points for post-import aggregation.
	RootIDs []string
}

// SeedLink is one objective-KPI edge with real ids resolved.
type SeedLink struct {
	ObjectiveID string
	KPIID       string
}

// Convert transforms a validated SeedSchema into domain objects. Call
// ValidateSeedSchema first; Convert assumes the schema is valid. Progress
// and status start at their zero values and are filled in by aggregation
// after persistence.
func Convert(schema *SeedSchema) (*SeedTree, error) {
	now := time.Now().UTC()
	refMap := make(map[string]string) // ref -> UUID

	tree := &SeedTree{}

	for _, seed := range schema.Objectives {
		realID := uuid.New().String()
		refMap[seed.Ref] = realID

		var parentID *string
		if seed.ParentRef != nil && *seed.ParentRef != "" {
			pid, ok := refMap[*seed.ParentRef]
			if !ok {
				return nil, fmt.Errorf("parent_ref %q not found for objective %q", *seed.ParentRef, seed.Ref)
			}
			parentID = &pid
		}

		o := &domain.Objective{
			ID:           realID,
			Title:        seed.Title,
			Description:  seed.Description,
			Level:        domain.Level(seed.Level),
			ParentID:     parentID,
			Status:       domain.StatusForProgress(0),
			Contributors: domain.DedupeIDs(seed.Contributors),
			DueDate:      parseOptionalDate(seed.DueDate),
			Quarter:      seed.Quarter,
			Year:         seed.Year,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		tree.Objectives = append(tree.Objectives, o)
		if o.ParentID == nil {
			tree.RootIDs = append(tree.RootIDs, o.ID)
		}
	}

	for _, seed := range schema.KPIs {
		realID := uuid.New().String()
		refMap[seed.Ref] = realID

		k := &domain.KPI{
			ID:        realID,
			Name:      seed.Name,
			Unit:      seed.Unit,
			Value:     seed.Value,
			Target:    seed.Target,
			CreatedAt: now,
			UpdatedAt: now,
		}
		k.Recompute()
		tree.KPIs = append(tree.KPIs, k)
	}

	for _, seed := range schema.Links {
		objectiveID, ok := refMap[seed.ObjectiveRef]
		if !ok {
			return nil, fmt.Errorf("objective_ref %q not found", seed.ObjectiveRef)
		}
		kpiID, ok := refMap[seed.KPIRef]
		if !ok {
			return nil, fmt.Errorf("kpi_ref %q not found", seed.KPIRef)
		}
		tree.Links = append(tree.Links, SeedLink{ObjectiveID: objectiveID, KPIID: kpiID})
	}

	return tree, nil
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &t
}
