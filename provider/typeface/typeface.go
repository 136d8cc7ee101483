// Package typeface reads typeface JSON fonts (the format produced by
// facetype.js): per-glyph horizontal advances plus font-wide resolution,
// line height and ascender, all in font units.
package typeface

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ByLCY/glyphflow/layout"
)

// Glyph is one entry of the "glyphs" table.
type Glyph struct {
	HA      float64 `json:"ha"`
	XMin    float64 `json:"x_min"`
	XMax    float64 `json:"x_max"`
	Outline string  `json:"o"`
}

// Font is a decoded typeface JSON document.
type Font struct {
	FamilyName string           `json:"familyName"`
	Resolution float64          `json:"resolution"`
	LineHeight float64          `json:"lineHeight"`
	Ascender   float64          `json:"ascender"`
	Descender  float64          `json:"descender"`
	Glyphs     map[string]Glyph `json:"glyphs"`

	glyphs map[rune]Glyph
}

var _ layout.MetricsProvider = (*Font)(nil)

// Decode reads and validates a typeface JSON document.
func Decode(r io.Reader) (*Font, error) {
	var f Font
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("解析 typeface JSON 失败: %w", err)
	}
	if f.Resolution <= 0 {
		return nil, fmt.Errorf("typeface %q 缺少有效的 resolution", f.FamilyName)
	}
	f.glyphs = make(map[rune]Glyph, len(f.Glyphs))
	for key, g := range f.Glyphs {
		runes := []rune(key)
		if len(runes) != 1 {
			continue
		}
		f.glyphs[runes[0]] = g
	}
	return &f, nil
}

// Measure 按 fontSize/resolution 缩放字宽、行高与上升部；未收录的字符返回零值。
// Geometry 为 Outline。
func (f *Font) Measure(r rune, fontSize float64) layout.GlyphMetrics {
	g, ok := f.glyphs[r]
	if !ok {
		return layout.GlyphMetrics{}
	}
	scale := fontSize / f.Resolution
	m := layout.GlyphMetrics{
		Width:    g.HA * scale,
		Height:   f.LineHeight * scale,
		Ascender: f.Ascender * scale,
	}
	if g.Outline != "" {
		m.Geometry = Outline{Commands: g.Outline, Scale: scale}
	}
	return m
}

// Has reports whether the font has an entry for r.
func (f *Font) Has(r rune) bool {
	_, ok := f.glyphs[r]
	return ok
}
