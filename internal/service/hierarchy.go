package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/leuz9/oolu-kpis-sub000/internal/domain"
	"github.com/leuz9/oolu-kpis-sub000/internal/repository"
)

// maxAncestorHops bounds every upward walk through the tree. The hierarchy
// has three levels, so any chain longer than this indicates corrupted data
// and the walk aborts instead of looping.
const maxAncestorHops = 8

var ErrHierarchyCycle = errors.New("hierarchy cycle detected")

// hierarchyValidator enforces the structural rules of the objective tree:
// valid levels, parent exactly one tier above, contributors on non-company
// objectives, and no cycles introduced by a parent change.
type hierarchyValidator struct {
	objectives repository.ObjectiveRepo
}

func newHierarchyValidator(objectives repository.ObjectiveRepo) *hierarchyValidator {
	return &hierarchyValidator{objectives: objectives}
}

// ValidateFields checks everything that can be decided without touching
// storage. It reports all problems at once.
func (v *hierarchyValidator) ValidateFields(o *domain.Objective) error {
	var errs ValidationErrors

	if o.Title == "" {
		errs = append(errs, ValidationError{Field: "title", Message: "is required"})
	}
	if !domain.ValidLevels[o.Level] {
		errs = append(errs, ValidationError{Field: "level", Message: fmt.Sprintf("'%s' is not a valid level", o.Level)})
	}
	if o.Quarter < 1 || o.Quarter > 4 {
		errs = append(errs, ValidationError{Field: "quarter", Message: "must be between 1 and 4"})
	}
	if o.Year < 2000 || o.Year > 2100 {
		errs = append(errs, ValidationError{Field: "year", Message: "is out of range"})
	}

	switch o.Level {
	case domain.LevelCompany:
		if o.ParentID != nil {
			errs = append(errs, ValidationError{Field: "parentId", Message: "company objectives cannot have a parent"})
		}
	default:
		if o.ParentID == nil {
			errs = append(errs, ValidationError{Field: "parentId", Message: fmt.Sprintf("%s objectives require a parent", o.Level)})
		}
		if len(o.Contributors) == 0 {
			errs = append(errs, ValidationError{Field: "contributors", Message: "at least one contributor is required"})
		}
	}

	return errs.OrNil()
}

// ValidateParent loads the declared parent and checks that it exists, is not
// archived, and sits exactly one level above the child.
func (v *hierarchyValidator) ValidateParent(ctx context.Context, o *domain.Objective) (*domain.Objective, error) {
	if o.ParentID == nil {
		return nil, nil
	}

	parent, err := v.objectives.GetByID(ctx, *o.ParentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ValidationErrors{{Field: "parentId", Message: fmt.Sprintf("parent objective '%s' does not exist", *o.ParentID)}}
		}
		return nil, fmt.Errorf("loading parent objective: %w", err)
	}

	var errs ValidationErrors
	if parent.IsArchived() {
		errs = append(errs, ValidationError{Field: "parentId", Message: fmt.Sprintf("parent objective '%s' is archived", parent.ID)})
	}
	if want, ok := domain.ParentLevel(o.Level); !ok || parent.Level != want {
		errs = append(errs, ValidationError{
			Field:   "parentId",
			Message: fmt.Sprintf("parent must be a %s objective, '%s' is %s", want, parent.ID, parent.Level),
		})
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}
	return parent, nil
}

// EnsureNoCycle walks upward from the proposed parent. If the walk reaches
// the objective itself the reparenting would create a cycle; if it exceeds
// the hop bound the stored chain is already malformed. Either way the write
// is rejected before anything is persisted.
func (v *hierarchyValidator) EnsureNoCycle(ctx context.Context, objectiveID string, newParentID *string) error {
	current := newParentID
	for hops := 0; current != nil; hops++ {
		if hops >= maxAncestorHops {
			return fmt.Errorf("ancestor chain exceeds %d hops from '%s': %w", maxAncestorHops, *newParentID, ErrHierarchyCycle)
		}
		if *current == objectiveID {
			return fmt.Errorf("objective '%s' cannot become its own ancestor: %w", objectiveID, ErrHierarchyCycle)
		}
		ancestor, err := v.objectives.GetByID(ctx, *current)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}
			return fmt.Errorf("walking ancestor chain: %w", err)
		}
		current = ancestor.ParentID
	}
	return nil
}
