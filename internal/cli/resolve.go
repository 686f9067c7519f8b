package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveObjectiveID resolves user input to an objective UUID: exact match
// first, then unique id prefix.
func resolveObjectiveID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("objective ID is required")
	}

	objectives, err := app.Objectives.List(ctx, true)
	if err != nil {
		return "", err
	}

	for _, o := range objectives {
		if o.ID == input {
			return o.ID, nil
		}
	}

	var matches []string
	for _, o := range objectives {
		if strings.HasPrefix(o.ID, input) {
			matches = append(matches, o.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("objective not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("objective ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveKPIID resolves user input to a KPI UUID: exact match first, then
// unique id prefix, then unique name match.
func resolveKPIID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("KPI ID is required")
	}

	kpis, err := app.KPIs.List(ctx)
	if err != nil {
		return "", err
	}

	for _, k := range kpis {
		if k.ID == input {
			return k.ID, nil
		}
	}

	var matches []string
	for _, k := range kpis {
		if strings.HasPrefix(k.ID, input) {
			matches = append(matches, k.ID)
		}
	}
	if len(matches) == 0 {
		for _, k := range kpis {
			if strings.EqualFold(k.Name, input) {
				matches = append(matches, k.ID)
			}
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("KPI not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("KPI %q is ambiguous (%d matches)", input, len(matches))
	}
}
