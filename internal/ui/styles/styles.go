// Package styles holds the colors and lipgloss styles shared across views.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette. Light/Dark pairs adapt to the terminal background.
var (
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#1F2328", Dark: "#E6EDF3"}
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#57606A", Dark: "#AAB3BC"}
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#8C959F", Dark: "#6E7681"}

	AccentColor = lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#3FB950"}

	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D0D7DE", Dark: "#30363D"}
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#0969DA", Dark: "#58A6FF"}

	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#0969DA", Dark: "#79C0FF"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#8C959F", Dark: "#8B949E"}

	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#3FB950"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#F85149"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#9A6700", Dark: "#D29922"}

	SelectedRowColor = lipgloss.AdaptiveColor{Light: "#DDF4FF", Dark: "#1F3A5F"}
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextPrimaryColor).
			MarginTop(1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor)

	ValueStyle = lipgloss.NewStyle().
			Foreground(TextPrimaryColor)

	MutedStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(StatusSuccessColor)

	WarningStyle = lipgloss.NewStyle().
			Foreground(StatusWarningColor)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(TextSecondaryColor)

	CursorRowStyle = lipgloss.NewStyle().
			Background(SelectedRowColor).
			Foreground(TextPrimaryColor)

	SelectionIndicatorStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(TextPrimaryColor)

	FocusedInputStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(BorderFocusColor).
				Padding(0, 1)

	BlurredInputStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(BorderDefaultColor).
				Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor).
			PaddingLeft(1)

	TabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor).
			Underline(true).
			Padding(0, 1)

	TabInactiveStyle = lipgloss.NewStyle().
				Foreground(TextMutedColor).
				Padding(0, 1)
)

// Button styles.
var (
	ButtonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(TextSecondaryColor).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderDefaultColor)

	ButtonFocusedStyle = ButtonStyle.
				Foreground(TextPrimaryColor).
				BorderForeground(BorderFocusColor).
				Bold(true)

	ButtonDangerFocusedStyle = ButtonStyle.
					Foreground(StatusErrorColor).
					BorderForeground(StatusErrorColor).
					Bold(true)
)
