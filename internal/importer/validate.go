package importer

import (
	"fmt"
	"time"

	"github.com/leuz9/oolu-kpis-sub000/internal/domain"
)

// ValidateSeedSchema checks the seed schema before conversion and returns
// every problem found. Parents must appear earlier in the objectives list
// than their children, which rules out cycles inside the file.
func ValidateSeedSchema(schema *SeedSchema) []error {
	var errs []error

	objectiveRefs := make(map[string]string) // ref -> level
	errs = append(errs, validateObjectives(schema.Objectives, objectiveRefs)...)

	kpiRefs := make(map[string]bool)
	errs = append(errs, validateKPIs(schema.KPIs, kpiRefs)...)

	errs = append(errs, validateLinks(schema.Links, objectiveRefs, kpiRefs)...)

	return errs
}

func validateObjectives(objectives []ObjectiveSeed, refs map[string]string) []error {
	var errs []error

	for i, o := range objectives {
		prefix := fmt.Sprintf("objectives[%d]", i)

		if o.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if _, dup := refs[o.Ref]; dup {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, o.Ref))
		}

		if o.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}

		level := domain.Level(o.Level)
		if !domain.ValidLevels[level] {
			errs = append(errs, fmt.Errorf("%s.level: invalid value %q", prefix, o.Level))
		}

		if o.Quarter < 1 || o.Quarter > 4 {
			errs = append(errs, fmt.Errorf("%s.quarter: must be between 1 and 4", prefix))
		}
		if o.Year < 2000 || o.Year > 2100 {
			errs = append(errs, fmt.Errorf("%s.year: out of range", prefix))
		}

		switch level {
		case domain.LevelCompany:
			if o.ParentRef != nil && *o.ParentRef != "" {
				errs = append(errs, fmt.Errorf("%s.parent_ref: company objectives cannot have a parent", prefix))
			}
		default:
			if o.ParentRef == nil || *o.ParentRef == "" {
				errs = append(errs, fmt.Errorf("%s.parent_ref is required for %s objectives", prefix, o.Level))
			} else if parentLevel, ok := refs[*o.ParentRef]; !ok {
				errs = append(errs, fmt.Errorf("%s.parent_ref: ref %q not found (must appear earlier in objectives list)", prefix, *o.ParentRef))
			} else if want, ok := domain.ParentLevel(level); ok && parentLevel != string(want) {
				errs = append(errs, fmt.Errorf("%s.parent_ref: parent must be a %s objective, %q is %s", prefix, want, *o.ParentRef, parentLevel))
			}
			if len(o.Contributors) == 0 {
				errs = append(errs, fmt.Errorf("%s.contributors: at least one contributor is required", prefix))
			}
		}

		errs = append(errs, validateOptionalDate(prefix+".due_date", o.DueDate)...)

		if o.Ref != "" {
			refs[o.Ref] = o.Level
		}
	}

	return errs
}

func validateKPIs(kpis []KPISeed, refs map[string]bool) []error {
	var errs []error

	for i, k := range kpis {
		prefix := fmt.Sprintf("kpis[%d]", i)

		if k.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if refs[k.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, k.Ref))
		} else {
			refs[k.Ref] = true
		}

		if k.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if k.Target == 0 {
			errs = append(errs, fmt.Errorf("%s.target must be non-zero", prefix))
		}
	}

	return errs
}

func validateLinks(links []LinkSeed, objectiveRefs map[string]string, kpiRefs map[string]bool) []error {
	var errs []error

	for i, l := range links {
		prefix := fmt.Sprintf("links[%d]", i)

		if l.ObjectiveRef == "" {
			errs = append(errs, fmt.Errorf("%s.objective_ref is required", prefix))
		} else if _, ok := objectiveRefs[l.ObjectiveRef]; !ok {
			errs = append(errs, fmt.Errorf("%s.objective_ref: ref %q not found in objectives", prefix, l.ObjectiveRef))
		}

		if l.KPIRef == "" {
			errs = append(errs, fmt.Errorf("%s.kpi_ref is required", prefix))
		} else if !kpiRefs[l.KPIRef] {
			errs = append(errs, fmt.Errorf("%s.kpi_ref: ref %q not found in kpis", prefix, l.KPIRef))
		}
	}

	return errs
}

func validateOptionalDate(field string, dateStr *string) []error {
	if dateStr == nil || *dateStr == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", *dateStr); err != nil {
		return []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, *dateStr)}
	}
	return nil
}
