// Package dashboard renders the HTML dashboard page: a header describing the
// signed-in user and a grid of stat cards.
package dashboard

import (
	"html/template"
	"io"

	"github.com/wellnest/wellness-api/internal/core/domain"
	"github.com/wellnest/wellness-api/internal/ui/statcard"
)

// Header is the shared page header.
type Header struct {
	Name      string
	RoleTitle string
	Avatar    statcard.Glyph
}

// Page is the full dashboard view.
type Page struct {
	Header Header
	Days   int
	Cards  []statcard.Card
}

// NewPage renders every stat into a card. Unknown roles get an empty title.
func NewPage(user domain.User, days int, stats []domain.Stat) Page {
	cfg, _ := domain.RoleConfigFor(user.Role)
	h := Header{Name: user.Name, RoleTitle: cfg.Title}
	if user.Avatar != nil && *user.Avatar != "" {
		h.Avatar = statcard.ImageIcon{Src: *user.Avatar, Alt: user.Name}
	}

	cards := make([]statcard.Card, 0, len(stats))
	for _, s := range stats {
		cards = append(cards, statcard.Render(statcard.FromStat(s)))
	}
	return Page{Header: h, Days: days, Cards: cards}
}

type pageData struct {
	Name      string
	RoleTitle string
	Avatar    template.HTML
	Days      int
	Cards     []template.HTML
}

var pageTemplate = template.Must(template.New("dashboard").Parse(`<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Name}} · Dashboard</title></head>
<body>
<header class="dashboard__header">{{.Avatar}}<h1>{{.Name}}</h1><p class="dashboard__role">{{.RoleTitle}}</p></header>
<main class="dashboard__grid" data-days="{{.Days}}">
{{range .Cards}}{{.}}
{{end}}</main>
</body>
</html>
`))

// Write renders the page to w.
func (p Page) Write(w io.Writer) error {
	data := pageData{
		Name:      p.Header.Name,
		RoleTitle: p.Header.RoleTitle,
		Days:      p.Days,
		Cards:     make([]template.HTML, 0, len(p.Cards)),
	}
	if p.Header.Avatar != nil {
		data.Avatar = p.Header.Avatar.Glyph(40, "dashboard__avatar")
	}
	for _, c := range p.Cards {
		html, err := c.HTML()
		if err != nil {
			return err
		}
		data.Cards = append(data.Cards, html)
	}
	return pageTemplate.Execute(w, data)
}
