package result

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/riceinspect/internal/inspection"
	"github.com/zjrosen/riceinspect/internal/ui/styles"
)

// Render lays out one inspection: basic information, composition and defect
// tables. width bounds the tables; 0 means no bound. The CLI prints the same
// layout with styles stripped.
func Render(r inspection.Record, width int) string {
	var b strings.Builder

	b.WriteString(styles.SectionStyle.Render("Basic Information"))
	b.WriteString("\n")
	pairs := [][2]string{
		{"Name", r.Name},
		{"Inspection ID", r.ID},
		{"Standard", r.StandardLabel()},
		{"Price", r.PriceLabel()},
		{"Create Date", inspection.FormatTime(r.CreatedAt)},
		{"Update Date", inspection.FormatTime(r.UpdatedAt)},
		{"Sampling Point", r.SamplingLabel()},
		{"Note", r.NoteLabel()},
		{"Total Sample", r.TotalSampleLabel()},
	}
	if r.SamplingDateTime != nil {
		pairs = append(pairs, [2]string{"Sampling Date", inspection.FormatTime(*r.SamplingDateTime)})
	}
	if r.ImageURL != "" {
		pairs = append(pairs, [2]string{"Image", r.ImageURL})
	}
	for _, p := range pairs {
		b.WriteString(styles.LabelStyle.Render(padRight(p[0], 16)))
		b.WriteString(styles.ValueStyle.Render(p[1]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.SectionStyle.Render("Composition"))
	b.WriteString("\n")
	comp := make([][]string, len(r.Result.Composition))
	for i, row := range r.Result.Composition {
		comp[i] = []string{row.Name, row.Length, inspection.FormatPercent(row.Actual)}
	}
	b.WriteString(table([]string{"Name", "Length", "Actual"}, comp, width))

	b.WriteString("\n\n")
	b.WriteString(styles.SectionStyle.Render("Defect Rice"))
	b.WriteString("\n")
	defects := make([][]string, len(r.Result.DefectRice))
	for i, row := range r.Result.DefectRice {
		defects[i] = []string{row.Name, inspection.FormatPercent(row.Actual)}
	}
	b.WriteString(table([]string{"Name", "Actual"}, defects, width))
	return b.String()
}

// PlainText renders r without styling for non-terminal output.
func PlainText(r inspection.Record) string {
	return ansi.Strip(Render(r, 0))
}

func table(header []string, rows [][]string, width int) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = ansi.StringWidth(h)
	}
	for _, row := range rows {
		for i, c := range row {
			widths[i] = max(widths[i], ansi.StringWidth(c))
		}
	}
	// The first column gives way when the table is too wide.
	if width > 0 {
		total := len(widths) * 2
		for _, w := range widths {
			total += w
		}
		if over := total - width; over > 0 {
			widths[0] = max(widths[0]-over, 6)
		}
	}

	line := func(cells []string) string {
		parts := make([]string, len(cells))
		for i, c := range cells {
			c = ansi.Truncate(c, widths[i], "…")
			if i == len(cells)-1 {
				parts[i] = padLeft(c, widths[i])
			} else {
				parts[i] = padRight(c, widths[i])
			}
		}
		return strings.Join(parts, "  ")
	}

	lines := []string{styles.TableHeaderStyle.Render(line(header))}
	if len(rows) == 0 {
		lines = append(lines, styles.MutedStyle.Render("No data"))
	}
	for _, row := range rows {
		lines = append(lines, line(row))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func padRight(s string, w int) string {
	return s + strings.Repeat(" ", max(w-ansi.StringWidth(s), 0))
}

func padLeft(s string, w int) string {
	return strings.Repeat(" ", max(w-ansi.StringWidth(s), 0)) + s
}
