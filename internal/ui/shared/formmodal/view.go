package formmodal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/riceinspect/internal/ui/shared/overlay"
	"github.com/zjrosen/riceinspect/internal/ui/styles"
)

// View renders the form box.
func (m Model) View() string {
	width := m.config.width()
	inner := width - 4

	var sb strings.Builder
	sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(styles.OverlayTitleColor).Render(m.config.Title))
	sb.WriteString("\n")

	for i := range m.fields {
		sb.WriteString("\n")
		sb.WriteString(m.renderField(i, inner))
	}

	if m.formError != "" {
		sb.WriteString("\n\n")
		sb.WriteString(styles.ErrorStyle.Width(inner).Render(m.formError))
	}

	sb.WriteString("\n\n")
	sb.WriteString(m.renderButtons())

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Padding(0, 1).
		Width(width).
		Render(sb.String())

	if m.showPicker {
		return overlay.Place(overlay.Config{Position: overlay.Center}, m.picker.View(), box)
	}
	return box
}

func (m Model) renderField(i, width int) string {
	fs := &m.fields[i]
	focused := i == m.focusedIndex

	labelStyle := styles.LabelStyle
	if focused {
		labelStyle = labelStyle.Foreground(styles.BorderFocusColor).Bold(true)
	}
	label := labelStyle.Render(fs.config.Label)
	if fs.config.Hint != "" {
		label += " " + styles.MutedStyle.Render(fs.config.Hint)
	}

	var body string
	switch fs.config.Type {
	case FieldTypeText:
		inputStyle := styles.BlurredInputStyle
		if focused {
			inputStyle = styles.FocusedInputStyle
		}
		body = inputStyle.Width(width - 2).Render(fs.textInput.View())

	case FieldTypeList:
		rows := make([]string, len(fs.listItems))
		for j, item := range fs.listItems {
			box := "[ ]"
			if item.selected {
				box = "[x]"
			}
			row := box + " " + item.label
			if focused && j == fs.listCursor {
				row = styles.SelectionIndicatorStyle.Render(">") + row
			} else {
				row = " " + row
			}
			rows[j] = row
		}
		body = strings.Join(rows, "\n")

	case FieldTypeSelect:
		text := fs.display()
		if text == "" {
			text = styles.MutedStyle.Render(fs.config.Placeholder)
		}
		inputStyle := styles.BlurredInputStyle
		if focused {
			inputStyle = styles.FocusedInputStyle
		}
		body = inputStyle.Width(width - 2).Render(text + " ▾")
	}

	out := label + "\n" + body
	if msg := m.fieldErrors[fs.config.Key]; msg != "" {
		out += "\n" + styles.ErrorStyle.Render(msg)
	}
	return out
}

func (m Model) renderButtons() string {
	submit := styles.ButtonStyle
	cancel := styles.ButtonStyle
	if m.focusedIndex == -1 {
		if m.focusedButton == buttonSubmit {
			submit = styles.ButtonFocusedStyle
		} else {
			cancel = styles.ButtonFocusedStyle
		}
	}
	label := m.config.submitLabel()
	if m.submitting {
		label = "Saving…"
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		submit.Render(label), " ", cancel.Render(m.config.cancelLabel()))
}

// Overlay draws the form centered over bg.
func (m Model) Overlay(bg string) string {
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}
