package site

import (
	"fmt"
	"html/template"
	"strings"
)

// Fonts offered by the settings form.
var Fonts = []string{"Inter", "Roboto", "Merriweather", "Lato", "Open Sans", "Playfair Display"}

// Settings are site-wide and apply to every page.
type Settings struct {
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	AccentColor    string `json:"accentColor"`
	Font           string `json:"font"`
	LogoURL        string `json:"logoUrl"`
}

func DefaultSettings() Settings {
	return Settings{
		PrimaryColor:   "#1e40af",
		SecondaryColor: "#f8fafc",
		AccentColor:    "#f59e0b",
		Font:           "Inter",
	}
}

// Merge returns s with every non-empty field of patch applied.
func (s Settings) Merge(patch Settings) Settings {
	if patch.PrimaryColor != "" {
		s.PrimaryColor = patch.PrimaryColor
	}
	if patch.SecondaryColor != "" {
		s.SecondaryColor = patch.SecondaryColor
	}
	if patch.AccentColor != "" {
		s.AccentColor = patch.AccentColor
	}
	if patch.Font != "" {
		s.Font = patch.Font
	}
	if patch.LogoURL != "" {
		s.LogoURL = patch.LogoURL
	}
	return s
}

// CSS renders the settings as custom properties on :root.
func (s Settings) CSS() template.CSS {
	s = DefaultSettings().Merge(s)
	var b strings.Builder
	b.WriteString(":root{")
	fmt.Fprintf(&b, "--color-primary:%s;", cssValue(s.PrimaryColor))
	fmt.Fprintf(&b, "--color-secondary:%s;", cssValue(s.SecondaryColor))
	fmt.Fprintf(&b, "--color-accent:%s;", cssValue(s.AccentColor))
	fmt.Fprintf(&b, "--font-body:'%s',sans-serif;", cssValue(s.Font))
	b.WriteString("}")
	return template.CSS(b.String())
}

// cssValue drops characters that could leave a declaration.
func cssValue(v string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '<', '>', '\'', '"', '\\':
			return -1
		}
		return r
	}, v)
}
