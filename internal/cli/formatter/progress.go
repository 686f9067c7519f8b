package formatter

import (
	"fmt"
	"strings"

	"github.com/leuz9/oolu-kpis-sub000/internal/domain"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░]  45%.
// The bar is colored by the status the percentage maps to.
func RenderProgress(pct int, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	if width < 2 {
		width = 2
	}

	filled := pct * width / 100
	if filled > width {
		filled = width
	}
	empty := width - filled

	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, empty)
	style := StatusColor(domain.StatusForProgress(pct))

	return fmt.Sprintf("[%s] %3d%%", style.Render(bar), pct)
}
