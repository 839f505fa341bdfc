package theme

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Warning     lipgloss.Color

	SessionBg     lipgloss.Color // card background
	SessionText   lipgloss.Color
	BlockedBg     lipgloss.Color // not-bookable column wash
	PreviewBg     lipgloss.Color // live gesture preview card
	PreviewText   lipgloss.Color
	SelectedBg    lipgloss.Color
	TextOnAccent  lipgloss.Color
	TextOnWarning lipgloss.Color

	ModalBg     lipgloss.Color
	ModalBorder lipgloss.Color
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load("mocha")
	}

	isLight := isLightTheme(t.Bg)
	sessionBg := cardBg(t.Session, t.Bg, isLight)
	previewBg := cardBg(t.Preview, t.Bg, isLight)
	blockedBg := blendColors(t.Blocked, t.Bg, 0.82)

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Warning:     lipgloss.Color(t.Warning),

		SessionBg:     lipgloss.Color(sessionBg),
		SessionText:   lipgloss.Color(chooseTextColor(sessionBg, t.Bg, t.Fg)),
		BlockedBg:     lipgloss.Color(blockedBg),
		PreviewBg:     lipgloss.Color(previewBg),
		PreviewText:   lipgloss.Color(chooseTextColor(previewBg, t.Bg, t.Fg)),
		SelectedBg:    lipgloss.Color(t.BgSelection),
		TextOnAccent:  lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),
		TextOnWarning: lipgloss.Color(chooseTextColor(t.Warning, t.Bg, t.Fg)),

		ModalBg:     lipgloss.Color(t.ModalBg),
		ModalBorder: lipgloss.Color(t.ModalBorder),
	}
}

func isLightTheme(bg string) bool {
	return relativeLuminance(bg) > 0.55
}

// cardBg derives a card background from an accent: a dark shade of the
// accent on dark themes, a light wash of it on light themes.
func cardBg(accent, bg string, isLight bool) string {
	if isLight {
		return blendColors(accent, bg, 0.75)
	}
	return darkenColor(accent)
}

// darkenColor creates a darker version of a hex color for backgrounds.
// It reduces the brightness by blending towards black, with a minimum floor
// to ensure visibility on dark themes.
func darkenColor(hex string) string {
	r, g, b, ok := parseHexColor(hex)
	if !ok {
		return hex
	}

	factor := 0.45
	r = int(float64(r) * factor)
	g = int(float64(g) * factor)
	b = int(float64(b) * factor)

	minBrightness := 40
	if r < minBrightness {
		r = minBrightness
	}
	if g < minBrightness {
		g = minBrightness
	}
	if b < minBrightness {
		b = minBrightness
	}

	return formatHexColor(r, g, b)
}

// blendColors blends color towards base by the given ratio (0 keeps color,
// 1 yields base).
func blendColors(color, base string, ratio float64) string {
	r1, g1, b1, ok1 := parseHexColor(color)
	r2, g2, b2, ok2 := parseHexColor(base)
	if !ok1 || !ok2 {
		return color
	}
	blend := func(a, b int) int {
		return int(float64(a)*(1-ratio) + float64(b)*ratio)
	}
	return formatHexColor(blend(r1, r2), blend(g1, g2), blend(b1, b2))
}

// chooseTextColor picks the dark or light text color with more contrast
// against the given background.
func chooseTextColor(bg, dark, light string) string {
	if relativeLuminance(bg) > 0.5 {
		return dark
	}
	return light
}

func relativeLuminance(hex string) float64 {
	r, g, b, ok := parseHexColor(hex)
	if !ok {
		return 0
	}
	lum := func(c int) float64 {
		v := float64(c) / 255
		if v <= 0.03928 {
			return v / 12.92
		}
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return 0.2126*lum(r) + 0.7152*lum(g) + 0.0722*lum(b)
}

func parseHexColor(hex string) (r, g, b int, ok bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	if _, err := fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, 0, 0, false
	}
	return r, g, b, true
}

func formatHexColor(r, g, b int) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
