package theme

import "testing"

func TestLoadAllAvailableThemes(t *testing.T) {
	for _, name := range Available() {
		th, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q): %v", name, err)
		}
		if th.Name != name {
			t.Errorf("theme name = %q, want %q", th.Name, name)
		}
		if th.Bg == "" || th.Fg == "" || th.Accent == "" {
			t.Errorf("theme %q missing base colors: %+v", name, th)
		}
		// defaults filled in
		if th.ModalBg == "" || th.ModalBorder == "" || th.Preview == "" {
			t.Errorf("theme %q missing derived defaults", name)
		}
	}
}

func TestLoadUnknownFallsBackToMocha(t *testing.T) {
	th, err := Load("no-such-theme")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if th.Name != "mocha" {
		t.Errorf("fallback theme = %q, want mocha", th.Name)
	}
}

func TestLoadEmptyDefaultsToMocha(t *testing.T) {
	th, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if th.Name != "mocha" {
		t.Errorf("theme = %q, want mocha", th.Name)
	}
}

func TestNewPaletteDerivesCardColors(t *testing.T) {
	th, _ := Load("mocha")
	p := NewPalette(th)

	if p.SessionBg == "" || p.PreviewBg == "" || p.BlockedBg == "" {
		t.Errorf("palette missing derived colors: %+v", p)
	}
	if p.SessionBg == p.Bg {
		t.Error("session card background should differ from base background")
	}
}

func TestChooseTextColor(t *testing.T) {
	// dark background gets the light text
	if got := chooseTextColor("#1e1e2e", "#000000", "#ffffff"); got != "#ffffff" {
		t.Errorf("dark bg text = %q", got)
	}
	// light background gets the dark text
	if got := chooseTextColor("#eff1f5", "#000000", "#ffffff"); got != "#000000" {
		t.Errorf("light bg text = %q", got)
	}
}

func TestIsAvailable(t *testing.T) {
	if !IsAvailable("Mocha") {
		t.Error("mocha should be available regardless of case")
	}
	if IsAvailable("solarized") {
		t.Error("solarized is not shipped")
	}
}
