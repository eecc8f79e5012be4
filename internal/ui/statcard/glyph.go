package statcard

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"
)

// Glyph is anything that can draw itself as an icon at a given pixel size.
// The card only positions and sizes it.
type Glyph interface {
	Glyph(size int, class string) template.HTML
}

// GlyphFunc adapts a plain function to Glyph.
type GlyphFunc func(size int, class string) template.HTML

func (f GlyphFunc) Glyph(size int, class string) template.HTML { return f(size, class) }

// SVGIcon is a stroke-based vector icon on a 24x24 view box.
type SVGIcon struct {
	Name string
	Path string
}

func (i SVGIcon) Glyph(size int, class string) template.HTML {
	return template.HTML(fmt.Sprintf(
		`<svg class="%s" data-icon="%s" width="%d" height="%d" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" aria-hidden="true"><path d="%s"/></svg>`,
		template.HTMLEscapeString(class), template.HTMLEscapeString(i.Name), size, size, template.HTMLEscapeString(i.Path),
	))
}

// ImageIcon is a raster image referenced by URL. Only relative, http and
// https sources are emitted.
type ImageIcon struct {
	Src string
	Alt string
}

// unsafeSrc matches what html/template substitutes for a rejected URL.
const unsafeSrc = "about:invalid#zGo"

func (i ImageIcon) Glyph(size int, class string) template.HTML {
	return template.HTML(fmt.Sprintf(
		`<img class="%s" src="%s" alt="%s" width="%d" height="%d">`,
		template.HTMLEscapeString(class), template.HTMLEscapeString(safeImageSrc(i.Src)), template.HTMLEscapeString(i.Alt), size, size,
	))
}

func safeImageSrc(src string) string {
	u, err := url.Parse(strings.TrimSpace(src))
	if err != nil {
		return unsafeSrc
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https":
		return src
	default:
		return unsafeSrc
	}
}

// FontGlyph renders a ligature from an icon font.
type FontGlyph struct {
	Family   string
	Ligature string
}

func (g FontGlyph) Glyph(size int, class string) template.HTML {
	return template.HTML(fmt.Sprintf(
		`<span class="%s %s" style="font-size:%dpx" aria-hidden="true">%s</span>`,
		template.HTMLEscapeString(class), template.HTMLEscapeString(g.Family), size, template.HTMLEscapeString(g.Ligature),
	))
}

var icons = map[string]Glyph{
	"footprints": SVGIcon{Name: "footprints", Path: "M4 16v-2.4C4 11.5 3 10.5 3 8c0-2.7 1.5-6 4.5-6C9.4 2 10 3.8 10 5.5c0 3.1-2 5.7-2 8.7V16a2 2 0 1 1-4 0Z"},
	"scale":      SVGIcon{Name: "scale", Path: "M16 16l3-8 3 8c-.9.7-1.9 1-3 1s-2.1-.3-3-1ZM2 16l3-8 3 8c-.9.7-1.9 1-3 1s-2.1-.3-3-1ZM7 21h10M12 3v18M3 7h2c2 0 5-1 7-2 2 1 5 2 7 2h2"},
	"moon":       SVGIcon{Name: "moon", Path: "M12 3a6 6 0 0 0 9 9 9 9 0 1 1-9-9Z"},
	"heart":      SVGIcon{Name: "heart", Path: "M19 14c1.5-1.5 3-3.2 3-5.5A5.5 5.5 0 0 0 16.5 3c-1.8 0-3 .5-4.5 2-1.5-1.5-2.7-2-4.5-2A5.5 5.5 0 0 0 2 8.5c0 2.3 1.5 4 3 5.5l7 7Z"},
	"droplet":    SVGIcon{Name: "droplet", Path: "M12 22a7 7 0 0 0 7-7c0-2-1-3.9-3-5.5s-3.5-4-4-6.5c-.5 2.5-2 4.9-4 6.5C6 11.1 5 13 5 15a7 7 0 0 0 7 7Z"},
	"flame":      SVGIcon{Name: "flame", Path: "M8.5 14.5A2.5 2.5 0 0 0 11 12c0-1.4-.5-2-1-3-1.1-2.1-.2-4 2-6 .5 2.5 2 4.9 4 6.5 2 1.6 3 3.5 3 5.5a7 7 0 1 1-14 0c0-1.2.4-2.3 1-3.4.3 1.8 1.4 2.9 2.5 2.9Z"},
	"lotus":      SVGIcon{Name: "lotus", Path: "M12 20c-4 0-8-2-9-6 3 0 6 1 9 4 3-3 6-4 9-4-1 4-5 6-9 6ZM12 18c-2-2-3-5-3-8s1-5 3-7c2 2 3 4 3 7s-1 6-3 8Z"},
	"calendar":   SVGIcon{Name: "calendar", Path: "M8 2v4M16 2v4M3 10h18M5 4h14a2 2 0 0 1 2 2v14a2 2 0 0 1-2 2H5a2 2 0 0 1-2-2V6a2 2 0 0 1 2-2Z"},
	"utensils":   SVGIcon{Name: "utensils", Path: "M3 2v7c0 1.1.9 2 2 2h4a2 2 0 0 0 2-2V2M7 2v20M21 15V2a5 5 0 0 0-5 5v6c0 1.1.9 2 2 2h3Zm0 0v7"},
	"activity":   SVGIcon{Name: "activity", Path: "M22 12h-4l-3 9L9 3l-3 9H2"},
}

// fallbackIcon is used for names missing from the registry.
var fallbackIcon = icons["activity"]

// LookupIcon resolves a registered icon name. Unknown names fall back to a
// generic activity glyph and ok is false.
func LookupIcon(name string) (g Glyph, ok bool) {
	g, ok = icons[name]
	if !ok {
		return fallbackIcon, false
	}
	return g, true
}
