package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/leuz9/oolu-kpis-sub000/internal/contract"
	"github.com/leuz9/oolu-kpis-sub000/internal/domain"
	"github.com/leuz9/oolu-kpis-sub000/internal/repository"
)

type statusService struct {
	objectives repository.ObjectiveRepo
	kpis       repository.KPIRepo
	links      repository.LinkRepo
}

func NewStatusService(objectives repository.ObjectiveRepo, kpis repository.KPIRepo, links repository.LinkRepo) StatusService {
	return &statusService{objectives: objectives, kpis: kpis, links: links}
}

// GetStatus assembles the tree report from stored aggregates. It is a pure
// read; nothing is recomputed here.
func (s *statusService) GetStatus(ctx context.Context, req contract.StatusRequest) (*contract.StatusResponse, error) {
	all, err := s.objectives.List(ctx, req.IncludeArchived)
	if err != nil {
		return nil, fmt.Errorf("listing objectives: %w", err)
	}

	present := make(map[string]bool, len(all))
	for _, o := range all {
		present[o.ID] = true
	}

	// Objectives whose parent was filtered out (an archived parent, by
	// default) surface as roots, so the report never silently drops
	// active nodes.
	byParent := make(map[string][]*domain.Objective)
	var roots []*domain.Objective
	for _, o := range all {
		if o.ParentID == nil || !present[*o.ParentID] {
			roots = append(roots, o)
			continue
		}
		byParent[*o.ParentID] = append(byParent[*o.ParentID], o)
	}

	resp := &contract.StatusResponse{}
	companySum, companyCount := 0, 0
	for _, o := range all {
		resp.Total++
		switch o.Status {
		case domain.StatusOnTrack:
			resp.OnTrack++
		case domain.StatusAtRisk:
			resp.AtRisk++
		case domain.StatusBehind:
			resp.Behind++
		case domain.StatusArchived:
			resp.Archived++
		}
		if o.Level == domain.LevelCompany && !o.IsArchived() {
			companySum += o.Progress
			companyCount++
		}
	}
	if companyCount > 0 {
		resp.AvgCompany = companySum / companyCount
	}

	seen := make(map[string]bool, len(all))
	var walk func(o *domain.Objective, depth int) (*contract.TreeNode, error)
	walk = func(o *domain.Objective, depth int) (*contract.TreeNode, error) {
		if depth >= maxAncestorHops || seen[o.ID] {
			return nil, fmt.Errorf("tree under '%s' exceeds %d levels: %w", o.ID, maxAncestorHops, ErrHierarchyCycle)
		}
		seen[o.ID] = true
		node := &contract.TreeNode{
			ID:       o.ID,
			Title:    o.Title,
			Level:    string(o.Level),
			Status:   string(o.Status),
			Progress: o.Progress,
		}
		summaries, err := s.kpiSummaries(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		node.KPIs = summaries
		for _, child := range byParent[o.ID] {
			childNode, err := walk(child, depth+1)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, childNode)
		}
		return node, nil
	}

	for _, root := range roots {
		node, err := walk(root, 0)
		if err != nil {
			return nil, err
		}
		resp.Roots = append(resp.Roots, node)
	}
	return resp, nil
}

func (s *statusService) kpiSummaries(ctx context.Context, objectiveID string) ([]contract.KPISummary, error) {
	ids, err := s.links.KPIIDsFor(ctx, objectiveID)
	if err != nil {
		return nil, fmt.Errorf("listing KPIs for '%s': %w", objectiveID, err)
	}
	summaries := make([]contract.KPISummary, 0, len(ids))
	for _, id := range ids {
		k, err := s.kpis.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("loading KPI '%s': %w", id, err)
		}
		summaries = append(summaries, contract.KPISummary{
			ID:       k.ID,
			Name:     k.Name,
			Value:    k.Value,
			Target:   k.Target,
			Unit:     k.Unit,
			Progress: k.Progress,
			Status:   string(k.Status),
		})
	}
	return summaries, nil
}
