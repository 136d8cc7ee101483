package layout

import (
	"math"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// uniformFont 对所有已知字符返回宽 12、高 10、上升部 8，'中' 视为字体中不存在。
var uniformFont = MetricsProviderFunc(func(r rune, fontSize float64) GlyphMetrics {
	if r == '中' {
		return GlyphMetrics{}
	}
	return GlyphMetrics{Width: 12, Height: 10, Ascender: 8}
})

// scalingFont 的度量与字号成正比。
var scalingFont = MetricsProviderFunc(func(r rune, fontSize float64) GlyphMetrics {
	return GlyphMetrics{Width: fontSize, Height: fontSize, Ascender: fontSize * 0.8}
})

type lineRecorder struct {
	mu    sync.Mutex
	lines []LineDescriptor
}

func (r *lineRecorder) RenderLine(line LineDescriptor) {
	r.mu.Lock()
	r.lines = append(r.lines, line)
	r.mu.Unlock()
}

func helloConfig() Config {
	cfg := DefaultConfig()
	cfg.FontSize = 12
	cfg.WrapGlyphs = " "
	cfg.Texts = []TextRun{{Text: "Hello world"}}
	return cfg
}

func TestParagraphHelloWorld(t *testing.T) {
	rec := &lineRecorder{}
	p, err := NewParagraph(helloConfig(), WithFont(uniformFont), WithLineRenderer(rec))
	if err != nil {
		t.Fatalf("NewParagraph: %v", err)
	}
	box := NewBox(100)
	res, ok := p.Update(box)
	if !ok {
		t.Fatalf("expected layout output")
	}
	if res.TotalHeight != 20 || box.Height() != 20 || box.HeightReports() != 1 {
		t.Fatalf("height: total %g box %g reports %d", res.TotalHeight, box.Height(), box.HeightReports())
	}
	type row struct {
		Content string
		Width   float64
		YPos    float64
	}
	var got []row
	for _, l := range rec.lines {
		got = append(got, row{l.Content, l.Width, l.YPos})
		if l.ContainerWidth != 100 {
			t.Fatalf("container width: %g", l.ContainerWidth)
		}
	}
	want := []row{{"Hello", 60, 2}, {"world", 60, -8}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("emitted lines mismatch (-want +got):\n%s", diff)
	}
}

func TestParagraphInterLine(t *testing.T) {
	cfg := helloConfig()
	cfg.InterLine = 3
	p, err := NewParagraph(cfg, WithFont(uniformFont))
	if err != nil {
		t.Fatalf("NewParagraph: %v", err)
	}
	res, _ := p.Update(NewBox(100))
	if res.TotalHeight != 23 {
		t.Fatalf("total height: got %g want 23", res.TotalHeight)
	}
	if res.Lines[0].YPos != 11.5-8 || res.Lines[1].YPos != 11.5-13-8 {
		t.Fatalf("offsets: %g %g", res.Lines[0].YPos, res.Lines[1].YPos)
	}
}

func TestParagraphTopAligned(t *testing.T) {
	cfg := helloConfig()
	cfg.VerticalCenter = false
	res, ok := Compute(cfg, 100, uniformFont)
	if !ok {
		t.Fatalf("expected layout output")
	}
	if res.Lines[0].YPos != -8 || res.Lines[1].YPos != -18 {
		t.Fatalf("offsets: %g %g", res.Lines[0].YPos, res.Lines[1].YPos)
	}
}

func TestParagraphNoOpWithoutTexts(t *testing.T) {
	rec := &lineRecorder{}
	cfg := DefaultConfig()
	cfg.FontSize = 12
	p, err := NewParagraph(cfg, WithFont(uniformFont), WithLineRenderer(rec))
	if err != nil {
		t.Fatalf("NewParagraph: %v", err)
	}
	box := NewBox(100)
	box.H = 33
	if _, ok := p.Update(box); ok {
		t.Fatalf("expected no-op")
	}
	if box.HeightReports() != 0 || box.Height() != 33 || len(rec.lines) != 0 || len(p.Lines()) != 0 {
		t.Fatalf("no-op produced side effects: reports %d height %g lines %d", box.HeightReports(), box.Height(), len(rec.lines))
	}
}

func TestParagraphNoOpWithoutFont(t *testing.T) {
	p, err := NewParagraph(helloConfig())
	if err != nil {
		t.Fatalf("NewParagraph: %v", err)
	}
	box := NewBox(100)
	if _, ok := p.Update(box); ok || box.HeightReports() != 0 {
		t.Fatalf("expected no-op without font")
	}
	if _, ok := p.Update(nil); ok {
		t.Fatalf("expected no-op without container")
	}
}

// 失败的重排不会覆盖上一次的结果。
func TestParagraphKeepsLinesOnNoOp(t *testing.T) {
	p, err := NewParagraph(helloConfig(), WithFont(uniformFont))
	if err != nil {
		t.Fatalf("NewParagraph: %v", err)
	}
	p.Update(NewBox(100))
	if err := p.SetTexts(nil); err != nil {
		t.Fatalf("SetTexts: %v", err)
	}
	if _, ok := p.Update(NewBox(100)); ok {
		t.Fatalf("expected no-op")
	}
	if len(p.Lines()) != 2 {
		t.Fatalf("previous lines lost: %d", len(p.Lines()))
	}
}

func TestParagraphInheritsFromBox(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Texts = []TextRun{{Text: "ab"}}
	p, err := NewParagraph(cfg)
	if err != nil {
		t.Fatalf("NewParagraph: %v", err)
	}
	box := NewBox(100)
	box.Font = scalingFont
	box.FontSize = 5
	res, ok := p.Update(box)
	if !ok {
		t.Fatalf("expected inherited font to be used")
	}
	if res.Lines[0].Width != 10 || res.TotalHeight != 5 {
		t.Fatalf("inherited size not applied: %+v", res.Lines[0])
	}

	// 显式字体与字号优先于容器。
	cfg.FontSize = 7
	p, _ = NewParagraph(cfg, WithFont(uniformFont))
	res, _ = p.Update(box)
	if res.Lines[0].Width != 24 {
		t.Fatalf("explicit font ignored: %+v", res.Lines[0])
	}
}

func TestParagraphRunFontSizeOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FontSize = 5
	cfg.Texts = []TextRun{{Text: "aa"}, {Text: "bb", FontSize: 20}}
	res, ok := Compute(cfg, 1000, scalingFont)
	if !ok {
		t.Fatalf("expected layout output")
	}
	l := res.Lines[0]
	if l.Content != "aabb" || l.Width != 50 || l.Height != 20 || l.Ascender != 16 {
		t.Fatalf("unexpected line: %+v", l)
	}
}

func TestParagraphUnknownGlyph(t *testing.T) {
	cfg := helloConfig()
	cfg.Texts = []TextRun{{Text: "a中b"}}
	res, _ := Compute(cfg, 100, uniformFont)
	l := res.Lines[0]
	if l.Content != "a中b" || l.Width != 24 {
		t.Fatalf("unknown glyph must measure zero: %+v", l)
	}
	if len(l.Glyphs) != 3 || l.Glyphs[1].Width != 0 {
		t.Fatalf("unknown glyph must be kept: %+v", l.Glyphs)
	}
}

func TestParagraphEmptyRun(t *testing.T) {
	cfg := helloConfig()
	cfg.Texts = []TextRun{{Text: ""}}
	res, ok := Compute(cfg, 100, uniformFont)
	if !ok || len(res.Lines) != 1 || res.TotalHeight != 0 {
		t.Fatalf("empty run: ok %v %+v", ok, res)
	}
}

func TestParagraphSetLayoutHeightDisabled(t *testing.T) {
	cfg := helloConfig()
	cfg.SetLayoutHeight = false
	p, _ := NewParagraph(cfg, WithFont(uniformFont))
	box := NewBox(100)
	box.H = 7
	if _, ok := p.Update(box); !ok {
		t.Fatalf("expected layout output")
	}
	if box.HeightReports() != 0 || box.Height() != 7 {
		t.Fatalf("height must not be reported: %d %g", box.HeightReports(), box.Height())
	}
}

// 每次 Update 都全量重排并恰好回写一次高度。
func TestParagraphRelayoutOnWidthChange(t *testing.T) {
	p, _ := NewParagraph(helloConfig(), WithFont(uniformFont))
	box := NewBox(100)
	p.Update(box)
	box.W = 200
	res, _ := p.Update(box)
	if len(res.Lines) != 1 || res.TotalHeight != 10 {
		t.Fatalf("wider box should fit one line: %+v", res)
	}
	if box.HeightReports() != 2 || box.Height() != 10 {
		t.Fatalf("reports %d height %g", box.HeightReports(), box.Height())
	}
}

func TestParagraphCopiesConfigAndLines(t *testing.T) {
	cfg := helloConfig()
	p, _ := NewParagraph(cfg, WithFont(uniformFont))
	cfg.Texts[0].Text = "mutated"
	if got := p.Config().Texts[0].Text; got != "Hello world" {
		t.Fatalf("config shared with caller: %q", got)
	}

	p.Update(NewBox(100))
	lines := p.Lines()
	lines[0].Content = "changed"
	if p.Lines()[0].Content != "Hello" {
		t.Fatalf("Lines must return a copy")
	}
}

func TestConfigValidate(t *testing.T) {
	bad := []Config{
		{FontSize: math.NaN()},
		{FontSize: -1},
		{FontSize: math.Inf(1)},
		{FontSize: 12, InterLine: math.Inf(-1)},
		{FontSize: 12, Texts: []TextRun{{Text: "x", FontSize: -2}}},
	}
	for i, cfg := range bad {
		if err := cfg.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
		if _, err := NewParagraph(cfg); err == nil {
			t.Fatalf("case %d: NewParagraph accepted invalid config", i)
		}
	}
	if err := helloConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	p, _ := NewParagraph(helloConfig())
	if err := p.SetConfig(bad[0]); err == nil {
		t.Fatalf("SetConfig accepted invalid config")
	}
}

func TestParagraphConcurrentUpdates(t *testing.T) {
	rec := &lineRecorder{}
	p, _ := NewParagraph(helloConfig(), WithFont(uniformFont), WithLineRenderer(rec))
	want, _ := Compute(helloConfig(), 100, uniformFont)

	const workers = 8
	var wg sync.WaitGroup
	results := make([]Result, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = p.Update(NewBox(100))
		}(i)
	}
	wg.Wait()
	for i, res := range results {
		if diff := cmp.Diff(want, res); diff != "" {
			t.Fatalf("worker %d mismatch (-want +got):\n%s", i, diff)
		}
	}
	// 串行执行保证每次排版的行连续地交给渲染器。
	for i := 0; i < len(rec.lines); i += 2 {
		if rec.lines[i].Content != "Hello" || rec.lines[i+1].Content != "world" {
			t.Fatalf("interleaved emission at %d", i)
		}
	}
	if len(rec.lines) != 2*workers {
		t.Fatalf("emitted %d lines", len(rec.lines))
	}
}
