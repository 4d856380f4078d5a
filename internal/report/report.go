// Package report renders a sprint summary of the local store as PDF or text.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/akyairhashvil/sprintboard/internal/board"
	"github.com/akyairhashvil/sprintboard/internal/models"
	"github.com/akyairhashvil/sprintboard/internal/store"
)

// Unassigned labels tasks without a designer.
const Unassigned = "Unassigned"

type Column struct {
	Status models.Status
	Tasks  []models.Task
	Points int
}

type DesignerLoad struct {
	Name       string
	Tasks      int
	Points     int
	DonePoints int
}

// Report is the computed content of one sprint report.
type Report struct {
	Sprint      string
	Active      bool
	GeneratedAt time.Time
	Columns     []Column
	Archived    []models.Task
	Designers   []DesignerLoad
	TotalPoints int
	DonePoints  int
}

// Build collects the tasks of sprint (the active sprint when empty) from
// snap. Columns hold the visible board after archive segmentation.
func Build(snap store.Snapshot, sprint string, now time.Time) (Report, error) {
	r := Report{Sprint: sprint, GeneratedAt: now}
	if r.Sprint == "" {
		for _, s := range snap.Sprints {
			if s.IsActive {
				r.Sprint = s.Name
				r.Active = true
				break
			}
		}
		if r.Sprint == "" {
			return Report{}, fmt.Errorf("no active sprint to report on")
		}
	} else {
		for _, s := range snap.Sprints {
			if strings.EqualFold(s.Name, sprint) {
				r.Sprint = s.Name
				r.Active = s.IsActive
			}
		}
	}

	tasks := board.Filter(snap.Tasks, board.TaskFilter{Sprint: r.Sprint})
	visible, archived := board.Segment(tasks)
	r.Archived = archived

	for _, status := range models.Statuses {
		col := Column{Status: status, Tasks: board.Column(visible, status)}
		for _, t := range col.Tasks {
			col.Points += t.Points
		}
		r.Columns = append(r.Columns, col)
	}

	loads := make(map[string]*DesignerLoad)
	for _, t := range tasks {
		name := Unassigned
		if t.Designer != nil && t.Designer.Name != "" {
			name = t.Designer.Name
		}
		l, ok := loads[name]
		if !ok {
			l = &DesignerLoad{Name: name}
			loads[name] = l
		}
		l.Tasks++
		l.Points += t.Points
		r.TotalPoints += t.Points
		if t.Status == models.StatusDone {
			l.DonePoints += t.Points
			r.DonePoints += t.Points
		}
	}
	for _, l := range loads {
		r.Designers = append(r.Designers, *l)
	}
	sort.Slice(r.Designers, func(i, j int) bool {
		if r.Designers[i].Points != r.Designers[j].Points {
			return r.Designers[i].Points > r.Designers[j].Points
		}
		return r.Designers[i].Name < r.Designers[j].Name
	})
	return r, nil
}

func taskLine(t models.Task) string {
	mark := "[ ]"
	if t.Status == models.StatusDone {
		mark = "[x]"
	}
	designer := Unassigned
	if t.Designer != nil && t.Designer.Name != "" {
		designer = t.Designer.Name
	}
	line := fmt.Sprintf("%s %s (%dpt, %s, %s)", mark, t.Title, t.Points, t.Priority, designer)
	if !t.DueDate.IsZero() {
		line += " due " + t.DueDate.Format(models.DateLayout)
	}
	return line
}

func (r Report) title() string {
	title := "Sprint Report: " + r.Sprint
	if r.Active {
		title += " (Active)"
	}
	return title
}

// WriteText renders r as plain text.
func WriteText(w io.Writer, r Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\nGenerated %s\n\n", r.title(), r.GeneratedAt.Format("2006-01-02 15:04"))
	for _, col := range r.Columns {
		fmt.Fprintf(&b, "%s (%d tasks, %d pts)\n", col.Status, len(col.Tasks), col.Points)
		if len(col.Tasks) == 0 {
			b.WriteString("  - none\n")
		}
		for _, t := range col.Tasks {
			fmt.Fprintf(&b, "  %s\n", taskLine(t))
		}
		b.WriteString("\n")
	}
	if len(r.Archived) > 0 {
		fmt.Fprintf(&b, "Archived (%d)\n", len(r.Archived))
		for _, t := range r.Archived {
			fmt.Fprintf(&b, "  %s\n", taskLine(t))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Points completed: %d/%d\n", r.DonePoints, r.TotalPoints)
	for _, l := range r.Designers {
		fmt.Fprintf(&b, "  %s: %d tasks, %d/%d pts\n", l.Name, l.Tasks, l.DonePoints, l.Points)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WritePDF renders r into dir and returns the absolute file path.
func WritePDF(r Report, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(r.title(), true)
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr(r.title()))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 8, "Generated "+r.GeneratedAt.Format("2006-01-02 15:04"))
	pdf.Ln(12)

	section := func(header string, tasks []models.Task) {
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(0, 10, tr(header))
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 12)
		if len(tasks) == 0 {
			pdf.Cell(0, 8, "  - No tasks.")
			pdf.Ln(8)
		}
		for _, t := range tasks {
			pdf.MultiCell(0, 6, tr("  "+taskLine(t)), "", "", false)
		}
		pdf.Ln(4)
	}
	for _, col := range r.Columns {
		section(fmt.Sprintf("%s (%d pts)", col.Status, col.Points), col.Tasks)
	}
	if len(r.Archived) > 0 {
		section(fmt.Sprintf("Archived (%d)", len(r.Archived)), r.Archived)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Points Completed: %d/%d", r.DonePoints, r.TotalPoints))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 12)
	for _, l := range r.Designers {
		pdf.Cell(0, 8, tr(fmt.Sprintf("%s: %d tasks, %d/%d pts", l.Name, l.Tasks, l.DonePoints, l.Points)))
		pdf.Ln(6)
	}

	name := strings.NewReplacer(" ", "_", "/", "-").Replace(strings.ToLower(r.Sprint))
	filename := filepath.Join(dir, fmt.Sprintf("report_%s_%s.pdf", name, r.GeneratedAt.Format("20060102_150405")))
	if err := pdf.OutputFileAndClose(filename); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}
	return filepath.Abs(filename)
}
