package formatter

import (
	"fmt"
	"strings"

	"github.com/leuz9/oolu-kpis-sub000/internal/contract"
	"github.com/leuz9/oolu-kpis-sub000/internal/domain"
)

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeGap    = "   "
)

// FormatStatusReport renders the full tree report: summary counters on top,
// then each root objective with its descendants and KPIs as an indented tree.
func FormatStatusReport(resp *contract.StatusResponse) string {
	var b strings.Builder

	b.WriteString(Header("Summary") + "\n")
	b.WriteString(fmt.Sprintf("  %s %d   %s %d   %s %d   %s %d   %s %d\n",
		StyleDim.Render("TOTAL"), resp.Total,
		StyleGreen.Render("ON TRACK"), resp.OnTrack,
		StyleYellow.Render("AT RISK"), resp.AtRisk,
		StyleRed.Render("BEHIND"), resp.Behind,
		StyleDim.Render("ARCHIVED"), resp.Archived))
	b.WriteString(fmt.Sprintf("  %s %s\n", StyleDim.Render("COMPANY AVG"), RenderProgress(resp.AvgCompany, 20)))

	if len(resp.Roots) > 0 {
		b.WriteString("\n" + Header("Objectives") + "\n")
		for _, root := range resp.Roots {
			writeTreeNode(&b, root, "", true, true)
		}
	}

	return RenderBox("Status", b.String())
}

func writeTreeNode(b *strings.Builder, node *contract.TreeNode, prefix string, isLast, isRoot bool) {
	connector := treeBranch
	if isLast {
		connector = treeCorner
	}
	if isRoot {
		connector = ""
	}

	b.WriteString(fmt.Sprintf("%s%s%s %s %s %s\n",
		prefix, connector,
		RenderProgress(node.Progress, 10),
		Bold(node.Title),
		LevelBadge(domain.Level(node.Level)),
		StatusPill(domain.Status(node.Status))))

	childPrefix := prefix
	if !isRoot {
		if isLast {
			childPrefix += treeGap
		} else {
			childPrefix += treePipe
		}
	}

	for _, k := range node.KPIs {
		b.WriteString(fmt.Sprintf("%s%s%s %s\n",
			childPrefix, treeGap,
			Dim(fmt.Sprintf("◦ %s", k.Name)),
			Dim(fmt.Sprintf("%.1f/%.1f %s (%d%%)", k.Value, k.Target, k.Unit, k.Progress))))
	}

	for i, child := range node.Children {
		writeTreeNode(b, child, childPrefix, i == len(node.Children)-1, false)
	}
}
