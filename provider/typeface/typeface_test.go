package typeface

import (
	"math"
	"os"
	"strings"
	"testing"

	"github.com/ByLCY/glyphflow/layout"
)

func loadMini(t *testing.T) *Font {
	t.Helper()
	file, err := os.Open("testdata/mini.typeface.json")
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer file.Close()
	f, err := Decode(file)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return f
}

func TestMeasureScalesByResolution(t *testing.T) {
	f := loadMini(t)
	m := f.Measure('a', 10)
	const eps = 1e-9
	if math.Abs(m.Width-5) > eps || math.Abs(m.Height-12) > eps || math.Abs(m.Ascender-8) > eps {
		t.Fatalf("unexpected metrics for 'a' at size 10: %+v", m)
	}
	if m.Geometry == nil {
		t.Fatalf("expected outline geometry for 'a'")
	}
	if sp := f.Measure(' ', 10); math.Abs(sp.Width-2.5) > eps || sp.Geometry != nil {
		t.Fatalf("unexpected metrics for space: %+v", sp)
	}
}

func TestMeasureUnknownGlyph(t *testing.T) {
	f := loadMini(t)
	if m := f.Measure('z', 10); m != (layout.GlyphMetrics{}) {
		t.Fatalf("expected zero metrics, got %+v", m)
	}
	if f.Has('z') {
		t.Fatalf("'z' should not be present")
	}
}

func TestMultiRuneKeysIgnored(t *testing.T) {
	f := loadMini(t)
	if len(f.glyphs) != 4 {
		t.Fatalf("expected 4 single-rune glyphs, got %d", len(f.glyphs))
	}
}

func TestDecodeRequiresResolution(t *testing.T) {
	if _, err := Decode(strings.NewReader(`{"familyName":"X","glyphs":{}}`)); err == nil {
		t.Fatalf("expected error without resolution")
	}
	if _, err := Decode(strings.NewReader(`{`)); err == nil {
		t.Fatalf("expected error for truncated json")
	}
}

// 与排版核心联动：typeface 字体可以直接作为度量提供者。
func TestComputeWithTypeface(t *testing.T) {
	f := loadMini(t)
	cfg := layout.DefaultConfig()
	cfg.FontSize = 10
	cfg.Texts = []layout.TextRun{{Text: "ab ab"}}
	res, ok := layout.Compute(cfg, 12, f)
	if !ok {
		t.Fatalf("expected layout output")
	}
	if len(res.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %+v", len(res.Lines), res.Lines)
	}
	if res.Lines[0].Content != "ab" || res.Lines[1].Content != "ab" {
		t.Fatalf("unexpected contents: %q / %q", res.Lines[0].Content, res.Lines[1].Content)
	}
	if math.Abs(res.TotalHeight-24) > 1e-9 {
		t.Fatalf("total height: got %g want 24", res.TotalHeight)
	}
}
