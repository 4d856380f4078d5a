package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/akyairhashvil/sprintboard/internal/config"
	"github.com/akyairhashvil/sprintboard/internal/models"
)

func truncate(text string, max int) string {
	if max <= 0 {
		return ""
	}
	if ansi.StringWidth(text) <= max {
		return text
	}
	return ansi.Truncate(text, max, config.TruncationSuffix)
}

// FormatDue renders a due date relative to today.
func FormatDue(due, now time.Time) string {
	if due.IsZero() {
		return ""
	}
	days := int(models.Day(due).Sub(models.Day(now)).Hours() / 24)
	switch {
	case days < 0:
		return fmt.Sprintf("%dd late", -days)
	case days == 0:
		return "due today"
	case days == 1:
		return "due tomorrow"
	}
	return "due " + due.Format("Jan 2")
}

// FormatPoints formats done/total story points.
func FormatPoints(done, total int) string {
	if total == 0 {
		return "No points"
	}
	return fmt.Sprintf("%d/%d pts", done, total)
}

func designerName(t models.Task) string {
	if t.Designer == nil || t.Designer.Name == "" {
		return "-"
	}
	return t.Designer.Name
}
