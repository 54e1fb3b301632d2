package teams

import "testing"

func sampleTeam() Team {
	return Team{
		ID:   "1",
		Name: "Arsenal",
		Logos: []Logo{
			{Href: "https://a.test/dark.png", Rel: []string{"full", "dark"}},
			{Href: "https://a.test/default.png", Rel: []string{"full", "default"}},
		},
	}
}

func TestLogoForDarkPrefersDarkVariant(t *testing.T) {
	if got := sampleTeam().LogoFor(ThemeDark); got != "https://a.test/dark.png" {
		t.Fatalf("expected dark logo, got %s", got)
	}
}

func TestLogoForLightPrefersDefault(t *testing.T) {
	if got := sampleTeam().LogoFor(ThemeLight); got != "https://a.test/default.png" {
		t.Fatalf("expected default logo, got %s", got)
	}
}

func TestLogoForFallsBackToFirst(t *testing.T) {
	team := Team{Logos: []Logo{{Href: "only.png", Rel: []string{"full"}}}}
	if got := team.LogoFor(ThemeDark); got != "only.png" {
		t.Fatalf("expected first logo, got %s", got)
	}
	if got := (Team{}).LogoFor(ThemeLight); got != "" {
		t.Fatalf("expected empty logo, got %s", got)
	}
}

func TestParseTheme(t *testing.T) {
	if ParseTheme("DARK") != ThemeDark {
		t.Fatalf("expected dark theme")
	}
	if ParseTheme("") != ThemeLight || ParseTheme("purple") != ThemeLight {
		t.Fatalf("expected light default")
	}
}

func TestDisplayName(t *testing.T) {
	if got := (Team{FullName: "Arsenal FC", Name: "Arsenal"}).DisplayName(); got != "Arsenal FC" {
		t.Fatalf("expected full name, got %s", got)
	}
	if got := (Team{Abbreviation: "ARS"}).DisplayName(); got != "ARS" {
		t.Fatalf("expected abbreviation, got %s", got)
	}
}
