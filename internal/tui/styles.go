package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/stagehandapp/stagehand/internal/tui/theme"
)

// Styles holds all lipgloss styles used by the grid, derived from a theme.
type Styles struct {
	palette *theme.Palette

	Title      lipgloss.Style
	StatusBar  lipgloss.Style
	StatusErr  lipgloss.Style
	Help       lipgloss.Style
	TimeGutter lipgloss.Style
	TimeLabel  lipgloss.Style

	RoomHeader        lipgloss.Style
	RoomHeaderBlocked lipgloss.Style

	GridCell    lipgloss.Style
	GridLine    lipgloss.Style
	BlockedCell lipgloss.Style
	HoverCell   lipgloss.Style

	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardPreview  lipgloss.Style
	CardBlocked  lipgloss.Style

	ModalBox      lipgloss.Style
	ModalTitle    lipgloss.Style
	ModalLabel    lipgloss.Style
	ModalValue    lipgloss.Style
	ModalHint     lipgloss.Style
	ConfirmDanger lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)

	cell := lipgloss.NewStyle().Background(p.Bg)

	return &Styles{
		palette: p,

		Title: lipgloss.NewStyle().
			Foreground(p.Accent).
			Background(p.Bg).
			Bold(true),
		StatusBar: lipgloss.NewStyle().
			Foreground(p.FgMuted).
			Background(p.Bg),
		StatusErr: lipgloss.NewStyle().
			Foreground(p.Warning).
			Background(p.Bg),
		Help: lipgloss.NewStyle().
			Foreground(p.FgMuted).
			Background(p.Bg),
		TimeGutter: cell,
		TimeLabel: lipgloss.NewStyle().
			Foreground(p.FgMuted).
			Background(p.Bg),

		RoomHeader: lipgloss.NewStyle().
			Foreground(p.Fg).
			Background(p.Bg).
			Bold(true),
		RoomHeaderBlocked: lipgloss.NewStyle().
			Foreground(p.FgMuted).
			Background(p.Bg),

		GridCell: cell,
		GridLine: lipgloss.NewStyle().
			Foreground(p.FgMuted).
			Background(p.Bg),
		BlockedCell: lipgloss.NewStyle().
			Background(p.BlockedBg),
		HoverCell: lipgloss.NewStyle().
			Foreground(p.TextOnAccent).
			Background(p.Accent),

		Card: lipgloss.NewStyle().
			Foreground(p.SessionText).
			Background(p.SessionBg),
		CardSelected: lipgloss.NewStyle().
			Foreground(p.Fg).
			Background(p.SelectedBg).
			Bold(true),
		CardPreview: lipgloss.NewStyle().
			Foreground(p.PreviewText).
			Background(p.PreviewBg),
		CardBlocked: lipgloss.NewStyle().
			Foreground(p.FgMuted).
			Background(p.BlockedBg),

		ModalBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.ModalBorder).
			Background(p.ModalBg).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().
			Foreground(p.Accent).
			Background(p.ModalBg).
			Bold(true),
		ModalLabel: lipgloss.NewStyle().
			Foreground(p.FgMuted).
			Background(p.ModalBg),
		ModalValue: lipgloss.NewStyle().
			Foreground(p.Fg).
			Background(p.ModalBg),
		ModalHint: lipgloss.NewStyle().
			Foreground(p.FgMuted).
			Background(p.ModalBg).
			Italic(true),
		ConfirmDanger: lipgloss.NewStyle().
			Foreground(p.TextOnWarning).
			Background(p.Warning).
			Bold(true),
	}
}
