package web

import (
	"fmt"
	"html/template"

	"github.com/nao1215/webaudit/internal/display"
)

// iconPaths holds the SVG bodies of the icon tokens used by the display
// package. Unknown tokens render the activity icon.
var iconPaths = map[string]string{
	display.IconZap:      `<polygon points="13 2 3 14 12 14 11 22 21 10 12 10 13 2"/>`,
	display.IconSearch:   `<circle cx="11" cy="11" r="8"/><line x1="21" y1="21" x2="16.65" y2="16.65"/>`,
	display.IconEye:      `<path d="M1 12s4-8 11-8 11 8 11 8-4 8-11 8-11-8-11-8z"/><circle cx="12" cy="12" r="3"/>`,
	display.IconGlobe:    `<circle cx="12" cy="12" r="10"/><line x1="2" y1="12" x2="22" y2="12"/><path d="M12 2a15.3 15.3 0 0 1 4 10 15.3 15.3 0 0 1-4 10 15.3 15.3 0 0 1-4-10 15.3 15.3 0 0 1 4-10z"/>`,
	display.IconActivity: `<polyline points="22 12 18 12 15 21 9 3 6 12 2 12"/>`,
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"icon":   icon,
		"radius": func() float64 { return display.GaugeRadius },
		"num":    func(f float64) string { return fmt.Sprintf("%.2f", f) },
	}
}

// icon renders an icon token as an inline SVG element.
func icon(name string) template.HTML {
	body, ok := iconPaths[name]
	if !ok {
		body = iconPaths[display.IconActivity]
	}
	// #nosec G203 -- bodies come from the constant table above.
	return template.HTML(`<svg class="icon icon-` + template.HTMLEscapeString(name) +
		`" xmlns="http://www.w3.org/2000/svg" width="20" height="20" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true">` +
		body + `</svg>`)
}
