// Package sfntprovider measures glyphs with golang.org/x/image/font/sfnt.
//
// Font sizes are interpreted as pixels per em in layout units, so a size of
// 4.2 (mm) yields advances and line heights in mm. The geometry handle of a
// measured glyph is its outline as sfnt.Segments, in layout units with Y
// pointing down (the sfnt convention).
package sfntprovider

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/ByLCY/glyphflow/layout"
)

// Provider implements layout.MetricsProvider on top of a parsed sfnt font.
// It is safe for concurrent use; the sfnt.Buffer is shared under a mutex.
type Provider struct {
	font *sfnt.Font
	name string

	mu  sync.Mutex
	buf sfnt.Buffer
}

var _ layout.MetricsProvider = (*Provider)(nil)

// New parses TrueType/OpenType bytes. The bytes must not be modified while
// the provider is in use.
func New(data []byte) (*Provider, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("解析字体失败: %w", err)
	}
	p := &Provider{font: f}
	if name, err := f.Name(&p.buf, sfnt.NameIDFamily); err == nil {
		p.name = name
	}
	return p, nil
}

// Name returns the font family name, if the font declares one.
func (p *Provider) Name() string { return p.name }

// Measure returns the glyph metrics at the given size, or zero metrics if
// the font has no glyph for r.
func (p *Provider) Measure(r rune, fontSize float64) layout.GlyphMetrics {
	if fontSize <= 0 || math.IsInf(fontSize, 0) || math.IsNaN(fontSize) {
		return layout.GlyphMetrics{}
	}
	ppem := fixed.Int26_6(math.Round(fontSize * 64))

	p.mu.Lock()
	defer p.mu.Unlock()

	idx, err := p.font.GlyphIndex(&p.buf, r)
	if err != nil || idx == 0 {
		return layout.GlyphMetrics{}
	}
	advance, err := p.font.GlyphAdvance(&p.buf, idx, ppem, font.HintingNone)
	if err != nil {
		return layout.GlyphMetrics{}
	}
	metrics, err := p.font.Metrics(&p.buf, ppem, font.HintingNone)
	if err != nil {
		return layout.GlyphMetrics{}
	}

	m := layout.GlyphMetrics{
		Width:    fromFixed(advance),
		Height:   fromFixed(metrics.Height),
		Ascender: fromFixed(metrics.Ascent),
	}
	if segs, err := p.font.LoadGlyph(&p.buf, idx, ppem, nil); err == nil {
		// LoadGlyph 返回的切片复用 buf，需要拷贝
		m.Geometry = append(sfnt.Segments(nil), segs...)
	}
	return m
}

func fromFixed(v fixed.Int26_6) float64 { return float64(v) / 64 }
