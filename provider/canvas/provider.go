package canvasprovider

import (
	"fmt"
	"image/color"
	"math"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/glyphflow/layout"
)

// Provider measures glyphs via github.com/tdewolff/canvas.
// 约定：Measure 的字号与返回的度量均为毫米（mm），创建字体面时换算为 pt。
type Provider struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
	color  color.Color

	faceMu sync.Mutex
	faces  map[float64]*canvas.FontFace
}

var _ layout.MetricsProvider = (*Provider)(nil)

// Options configures the provider.
type Options struct {
	Family string // FontFamily 名称，默认 "Body"
	Style  string // 例如 "Bold"、"Italic"
	Color  color.Color
}

// New loads TrueType/OpenType bytes into a canvas font family.
func New(data []byte, opts Options) (*Provider, error) {
	name := opts.Family
	if name == "" {
		name = "Body"
	}
	style := parseFontStyle(opts.Style)
	family := canvas.NewFontFamily(name)
	if err := family.LoadFont(data, 0, style); err != nil {
		return nil, fmt.Errorf("加载字体 %s 失败: %w", name, err)
	}
	col := opts.Color
	if col == nil {
		col = canvas.Black
	}
	return &Provider{
		family: family,
		style:  style,
		color:  col,
		faces:  map[float64]*canvas.FontFace{},
	}, nil
}

// Measure 返回字符 r 在 fontSize（mm）下的度量；字体中不存在的字符返回零值。
// Geometry 为以基线为原点的 *canvas.Path。
func (p *Provider) Measure(r rune, fontSize float64) layout.GlyphMetrics {
	face := p.face(fontSize)
	if face == nil || face.Font.GlyphIndex(r) == 0 {
		return layout.GlyphMetrics{}
	}
	s := string(r)
	metrics := face.Metrics()
	m := layout.GlyphMetrics{
		Width:    face.TextWidth(s),
		Height:   metrics.LineHeight,
		Ascender: metrics.Ascent,
	}
	if path, _, err := face.ToPath(s); err == nil && path != nil && !path.Empty() {
		m.Geometry = path
	}
	return m
}

// Face 返回给定字号（mm）的字体面，供渲染器绘制文本使用。
func (p *Provider) Face(fontSize float64) *canvas.FontFace { return p.face(fontSize) }

func (p *Provider) face(fontSize float64) *canvas.FontFace {
	if fontSize <= 0 || math.IsNaN(fontSize) || math.IsInf(fontSize, 0) {
		return nil
	}
	p.faceMu.Lock()
	defer p.faceMu.Unlock()
	if face, ok := p.faces[fontSize]; ok {
		return face
	}
	face := p.family.Face(toPt(fontSize), p.color, p.style, canvas.FontNormal)
	p.faces[fontSize] = face
	return face
}

func parseFontStyle(style string) canvas.FontStyle {
	if style == "" {
		return canvas.FontRegular
	}
	s := strings.ToLower(style)
	result := canvas.FontRegular
	switch {
	case strings.Contains(s, "black"):
		result = canvas.FontBlack
	case strings.Contains(s, "extrabold"):
		result = canvas.FontExtraBold
	case strings.Contains(s, "semibold"), strings.Contains(s, "demibold"):
		result = canvas.FontSemiBold
	case strings.Contains(s, "bold"):
		result = canvas.FontBold
	case strings.Contains(s, "medium"):
		result = canvas.FontMedium
	case strings.Contains(s, "light"):
		result = canvas.FontLight
	}
	if strings.Contains(s, "italic") || strings.Contains(s, "oblique") {
		result |= canvas.FontItalic
	}
	return result
}

// toPt 将毫米(mm)转换为点(pt)。
func toPt(mm float64) float64 { return mm * layout.MmToPt }
