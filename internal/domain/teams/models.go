package teams

import "strings"

// Team represents the normalized team shape for use inside games and team pages.
type Team struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	FullName     string `json:"fullName"`
	Abbreviation string `json:"abbreviation"`
	Location     string `json:"location,omitempty"`
	League       string `json:"league,omitempty"`
	Color        string `json:"color,omitempty"`
	Logos        []Logo `json:"logos,omitempty"`
	Record       string `json:"record,omitempty"`
}

// Logo is one upstream logo variant. Rel carries hints such as "default" or "dark".
type Logo struct {
	Href string   `json:"href"`
	Rel  []string `json:"rel,omitempty"`
}

// Theme is the client color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme maps user input onto a theme, defaulting to light.
func ParseTheme(raw string) Theme {
	if strings.EqualFold(strings.TrimSpace(raw), string(ThemeDark)) {
		return ThemeDark
	}
	return ThemeLight
}

func (l Logo) has(rel string) bool {
	for _, r := range l.Rel {
		if strings.EqualFold(r, rel) {
			return true
		}
	}
	return false
}

// LogoFor picks the logo href best suited to theme.
func (t Team) LogoFor(theme Theme) string {
	if len(t.Logos) == 0 {
		return ""
	}
	for _, logo := range t.Logos {
		if theme == ThemeDark && logo.has("dark") {
			return logo.Href
		}
		if theme != ThemeDark && logo.has("default") && !logo.has("dark") {
			return logo.Href
		}
	}
	return t.Logos[0].Href
}

// DisplayName returns the richest name available.
func (t Team) DisplayName() string {
	switch {
	case t.FullName != "":
		return t.FullName
	case t.Name != "":
		return t.Name
	default:
		return t.Abbreviation
	}
}
