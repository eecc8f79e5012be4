// Package statcard renders a single statistic as a card: a header with the
// title and an icon badge, then the headline value and an optional secondary
// line carrying a subtitle and a percentage trend.
package statcard

import (
	"bytes"
	"html/template"
	"io"
	"math"

	"github.com/wellnest/wellness-api/internal/core/domain"
)

// IconSize is the pixel size glyphs are drawn at inside the badge.
const IconSize = 20

const iconClass = "stat-card__glyph"

// Tone is the visual category of a trend.
type Tone string

const (
	TonePositive Tone = "positive"
	ToneNegative Tone = "negative"
)

// Props is the input to Render. Title, Value and Icon are required; Subtitle
// and Trend are optional and suppress their region when nil.
type Props struct {
	Title    string
	Value    domain.StatValue
	Subtitle *string
	Icon     Glyph
	Trend    *domain.Trend
}

// TrendView is a formatted trend ready for display.
type TrendView struct {
	Text string `json:"text"`
	Tone Tone   `json:"tone"`
}

// Card is the rendered card, split into its logical regions.
type Card struct {
	Title    string
	Icon     template.HTML
	Value    string
	Subtitle *string
	Trend    *TrendView
}

// HasSecondary reports whether the secondary line has any content.
func (c Card) HasSecondary() bool { return c.Subtitle != nil || c.Trend != nil }

// Render turns props into a Card. It has no side effects; identical props
// always produce an identical card.
func Render(p Props) Card {
	c := Card{
		Title: p.Title,
		Value: p.Value.String(),
	}
	if p.Icon != nil {
		c.Icon = p.Icon.Glyph(IconSize, iconClass)
	}
	// Empty subtitles are treated as absent.
	if p.Subtitle != nil && *p.Subtitle != "" {
		s := *p.Subtitle
		c.Subtitle = &s
	}
	if p.Trend != nil {
		v := FormatTrend(*p.Trend)
		c.Trend = &v
	}
	return c
}

// FormatTrend applies the trend rule: a sign chosen by IsPositive, then the
// absolute value, then "%". The tone depends on IsPositive alone.
func FormatTrend(t domain.Trend) TrendView {
	sign, tone := "-", ToneNegative
	if t.IsPositive {
		sign, tone = "+", TonePositive
	}
	return TrendView{
		Text: sign + domain.FormatNumber(math.Abs(t.Value)) + "%",
		Tone: tone,
	}
}

var cardTemplate = template.Must(template.New("stat-card").Parse(cardHTML))

const cardHTML = `<div class="stat-card">` +
	`<div class="stat-card__header">` +
	`<p class="stat-card__title">{{.Title}}</p>` +
	`<div class="stat-card__icon">{{.Icon}}</div>` +
	`</div>` +
	`<div class="stat-card__body">` +
	`<p class="stat-card__value">{{.Value}}</p>` +
	`{{if .HasSecondary}}<div class="stat-card__secondary">` +
	`{{if .HasSubtitle}}<span class="stat-card__subtitle">{{.Subtitle}}</span>{{end}}` +
	`{{with .Trend}}<span class="stat-card__trend stat-card__trend--{{.Tone}}">{{.Text}}</span>{{end}}` +
	`</div>{{end}}` +
	`</div>` +
	`</div>`

type cardData struct {
	Title        string
	Icon         template.HTML
	Value        string
	HasSecondary bool
	HasSubtitle  bool
	Subtitle     string
	Trend        *TrendView
}

// WriteHTML writes the card markup to w.
func (c Card) WriteHTML(w io.Writer) error {
	data := cardData{
		Title:        c.Title,
		Icon:         c.Icon,
		Value:        c.Value,
		HasSecondary: c.HasSecondary(),
		Trend:        c.Trend,
	}
	if c.Subtitle != nil {
		data.HasSubtitle = true
		data.Subtitle = *c.Subtitle
	}
	return cardTemplate.Execute(w, data)
}

// HTML returns the card markup.
func (c Card) HTML() (template.HTML, error) {
	var buf bytes.Buffer
	if err := c.WriteHTML(&buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
