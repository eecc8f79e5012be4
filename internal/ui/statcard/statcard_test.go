package statcard

import (
	"html/template"
	"strings"
	"testing"

	"github.com/wellnest/wellness-api/internal/core/domain"
)

// stubGlyph records how the card asked it to draw itself.
type stubGlyph struct {
	size  int
	class string
}

func (g *stubGlyph) Glyph(size int, class string) template.HTML {
	g.size, g.class = size, class
	return `<i data-test="glyph"></i>`
}

func strPtr(s string) *string { return &s }

func mustHTML(t *testing.T, c Card) string {
	t.Helper()
	out, err := c.HTML()
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	return string(out)
}

func TestRender_NoSubtitleNoTrend(t *testing.T) {
	card := Render(Props{Title: "Steps", Value: domain.NumberValue(8500), Icon: &stubGlyph{}})

	if card.Title != "Steps" || card.Value != "8500" {
		t.Fatalf("unexpected regions: %+v", card)
	}
	if card.Subtitle != nil || card.Trend != nil {
		t.Fatalf("expected no secondary content, got %+v", card)
	}

	html := mustHTML(t, card)
	if strings.Contains(html, "stat-card__subtitle") || strings.Contains(html, "stat-card__trend") {
		t.Fatalf("unexpected secondary markup: %s", html)
	}
	if strings.Contains(html, "stat-card__secondary") {
		t.Fatalf("secondary line should be omitted: %s", html)
	}
	if !strings.Contains(html, `<p class="stat-card__title">Steps</p>`) ||
		!strings.Contains(html, `<p class="stat-card__value">8500</p>`) {
		t.Fatalf("missing title or value: %s", html)
	}
}

func TestRender_SubtitleAndNegativeTrend(t *testing.T) {
	card := Render(Props{
		Title:    "Weight",
		Value:    domain.StringValue("72 kg"),
		Subtitle: strPtr("Last 7 days"),
		Trend:    &domain.Trend{Value: 3, IsPositive: false},
		Icon:     &stubGlyph{},
	})

	if card.Subtitle == nil || *card.Subtitle != "Last 7 days" {
		t.Fatalf("expected subtitle, got %v", card.Subtitle)
	}
	if card.Trend == nil || card.Trend.Text != "-3%" || card.Trend.Tone != ToneNegative {
		t.Fatalf("unexpected trend: %+v", card.Trend)
	}

	html := mustHTML(t, card)
	if !strings.Contains(html, `<span class="stat-card__subtitle">Last 7 days</span>`) {
		t.Fatalf("missing subtitle markup: %s", html)
	}
	if !strings.Contains(html, `<span class="stat-card__trend stat-card__trend--negative">-3%</span>`) {
		t.Fatalf("missing trend markup: %s", html)
	}
}

func TestRender_ZeroTrendFollowsSignRule(t *testing.T) {
	card := Render(Props{
		Title: "Score",
		Value: domain.NumberValue(0),
		Trend: &domain.Trend{Value: 0, IsPositive: true},
		Icon:  &stubGlyph{},
	})
	if card.Value != "0" {
		t.Fatalf("expected value 0, got %q", card.Value)
	}
	if card.Trend == nil || card.Trend.Text != "+0%" || card.Trend.Tone != TonePositive {
		t.Fatalf("unexpected trend: %+v", card.Trend)
	}
}

func TestFormatTrend_UsesMagnitudeAndDirectionFlag(t *testing.T) {
	cases := []struct {
		in   domain.Trend
		text string
		tone Tone
	}{
		{domain.Trend{Value: 12, IsPositive: true}, "+12%", TonePositive},
		{domain.Trend{Value: -12, IsPositive: true}, "+12%", TonePositive},
		{domain.Trend{Value: 12, IsPositive: false}, "-12%", ToneNegative},
		{domain.Trend{Value: -4.5, IsPositive: false}, "-4.5%", ToneNegative},
		{domain.Trend{Value: 0, IsPositive: false}, "-0%", ToneNegative},
	}
	for _, tc := range cases {
		got := FormatTrend(tc.in)
		if got.Text != tc.text || got.Tone != tc.tone {
			t.Fatalf("FormatTrend(%+v) = %+v, want %s/%s", tc.in, got, tc.text, tc.tone)
		}
	}
}

func TestRender_EmptySubtitleSuppressed(t *testing.T) {
	card := Render(Props{Title: "Water", Value: domain.NumberValue(1), Subtitle: strPtr(""), Icon: &stubGlyph{}})
	if card.Subtitle != nil {
		t.Fatalf("expected empty subtitle to be dropped")
	}
	if strings.Contains(mustHTML(t, card), "stat-card__secondary") {
		t.Fatalf("expected no secondary line")
	}
}

func TestRender_IconAlwaysRenderedAtBadgeSize(t *testing.T) {
	g := &stubGlyph{}
	card := Render(Props{Title: "Sleep", Value: domain.StringValue("7 h"), Icon: g})
	if g.size != IconSize || g.class != iconClass {
		t.Fatalf("glyph drawn with size=%d class=%q", g.size, g.class)
	}
	if !strings.Contains(mustHTML(t, card), `<div class="stat-card__icon"><i data-test="glyph"></i></div>`) {
		t.Fatalf("icon badge missing")
	}
}

func TestRender_Idempotent(t *testing.T) {
	p := Props{
		Title:    "Heart",
		Value:    domain.StringValue("62 bpm"),
		Subtitle: strPtr("Last 7 days"),
		Trend:    &domain.Trend{Value: 5, IsPositive: true},
		Icon:     SVGIcon{Name: "heart", Path: "M0 0"},
	}
	first, second := mustHTML(t, Render(p)), mustHTML(t, Render(p))
	if first != second {
		t.Fatalf("render not idempotent:\n%s\n%s", first, second)
	}
}

func TestRender_EscapesText(t *testing.T) {
	html := mustHTML(t, Render(Props{
		Title:    "<script>",
		Value:    domain.StringValue("a&b"),
		Subtitle: strPtr(`"quoted"`),
		Icon:     &stubGlyph{},
	}))
	if strings.Contains(html, "<script>") {
		t.Fatalf("title not escaped: %s", html)
	}
	if !strings.Contains(html, "a&amp;b") {
		t.Fatalf("value not escaped: %s", html)
	}
}

func TestGlyphImplementations(t *testing.T) {
	svg := string(SVGIcon{Name: "moon", Path: "M1 1"}.Glyph(16, "c"))
	if !strings.Contains(svg, `width="16"`) || !strings.Contains(svg, `data-icon="moon"`) {
		t.Fatalf("unexpected svg: %s", svg)
	}

	img := string(ImageIcon{Src: "/a.png", Alt: "avatar"}.Glyph(24, "c"))
	if !strings.Contains(img, `src="/a.png"`) || !strings.Contains(img, `height="24"`) {
		t.Fatalf("unexpected img: %s", img)
	}

	font := string(FontGlyph{Family: "material-icons", Ligature: "favorite"}.Glyph(18, "c"))
	if !strings.Contains(font, "font-size:18px") || !strings.Contains(font, ">favorite<") {
		t.Fatalf("unexpected font glyph: %s", font)
	}

	fn := GlyphFunc(func(size int, class string) template.HTML { return "x" })
	if fn.Glyph(1, "") != "x" {
		t.Fatalf("GlyphFunc not forwarding")
	}
}

func TestImageIcon_DropsScriptSources(t *testing.T) {
	for _, src := range []string{"javascript:alert(1)", " JavaScript:alert(1)", "data:image/svg+xml,<svg/onload=alert(1)>", "vbscript:x"} {
		img := string(ImageIcon{Src: src, Alt: "avatar"}.Glyph(24, "c"))
		if !strings.Contains(img, `src="about:invalid#zGo"`) {
			t.Fatalf("src %q was emitted: %s", src, img)
		}
	}
	img := string(ImageIcon{Src: "https://cdn.example.com/a.png?x=1&y=2", Alt: "avatar"}.Glyph(24, "c"))
	if !strings.Contains(img, `src="https://cdn.example.com/a.png?x=1&amp;y=2"`) {
		t.Fatalf("https source not kept: %s", img)
	}
}

func TestLookupIcon_FallsBack(t *testing.T) {
	if _, ok := LookupIcon("heart"); !ok {
		t.Fatalf("expected heart to be registered")
	}
	g, ok := LookupIcon("does-not-exist")
	if ok || g == nil {
		t.Fatalf("expected fallback glyph, got ok=%v g=%v", ok, g)
	}
}

func TestFromStat_EveryMetricIconRegistered(t *testing.T) {
	for _, r := range domain.Roles() {
		for _, k := range domain.DashboardKinds(r) {
			def, _ := domain.DefinitionFor(k)
			if _, ok := LookupIcon(def.Icon); !ok {
				t.Fatalf("icon %q for %s not registered", def.Icon, k)
			}
		}
	}

	props := FromStat(domain.Stat{Title: "Steps", Value: domain.NumberValue(10), Icon: "footprints"})
	if props.Icon == nil || props.Title != "Steps" {
		t.Fatalf("unexpected props: %+v", props)
	}
}
