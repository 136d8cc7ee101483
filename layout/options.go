package layout

import (
	"fmt"
	"math"
)

// DefaultWrapGlyphs 是默认允许在其后折行的字符。
const DefaultWrapGlyphs = " -"

// MetricsProvider 按字符与字号返回字形度量；未知字符返回零值。
type MetricsProvider interface {
	Measure(r rune, fontSize float64) GlyphMetrics
}

// MetricsProviderFunc adapts a plain function to MetricsProvider.
type MetricsProviderFunc func(r rune, fontSize float64) GlyphMetrics

func (f MetricsProviderFunc) Measure(r rune, fontSize float64) GlyphMetrics { return f(r, fontSize) }

// Container 是段落所在的布局盒子：排版前读取宽度，可选地回写总高度。
type Container interface {
	Width() float64
	SetHeight(height float64)
}

// FontInheritor 由能向子段落提供字体的容器实现。
type FontInheritor interface {
	InheritedFont() MetricsProvider
}

// FontSizeInheritor 由能向子段落提供默认字号的容器实现。
type FontSizeInheritor interface {
	InheritedFontSize() float64
}

// LineRenderer 接收排好的行，按从上到下的顺序调用。
type LineRenderer interface {
	RenderLine(line LineDescriptor)
}

// FontResolver 根据字体来源（builtin:*、文件路径等）返回度量提供者。
type FontResolver interface {
	Resolve(src string) (MetricsProvider, error)
}

// Config 是一次排版所需的全部段落参数，构造后不再修改。
type Config struct {
	Texts []TextRun `json:"texts"`
	// FontSize 为 0 时继承容器字号。
	FontSize        float64 `json:"fontSize"`
	InterLine       float64 `json:"interLine"`
	VerticalCenter  bool    `json:"verticalCenter"`
	WrapGlyphs      string  `json:"wrapGlyphs"`
	SetLayoutHeight bool    `json:"setLayoutHeight"`
}

// DefaultConfig 返回带默认值的配置。
func DefaultConfig() Config {
	return Config{
		InterLine:       0,
		VerticalCenter:  true,
		WrapGlyphs:      DefaultWrapGlyphs,
		SetLayoutHeight: true,
	}
}

// Validate 检查数值参数是否可用于排版。
func (c Config) Validate() error {
	if !isFinite(c.FontSize) || c.FontSize < 0 {
		return fmt.Errorf("layout: 非法字号 %g", c.FontSize)
	}
	if !isFinite(c.InterLine) {
		return fmt.Errorf("layout: 非法行间距 %g", c.InterLine)
	}
	for i, run := range c.Texts {
		if !isFinite(run.FontSize) || run.FontSize < 0 {
			return fmt.Errorf("layout: 第 %d 段文本字号非法 %g", i, run.FontSize)
		}
	}
	return nil
}

// clone 返回不与调用方共享切片的副本。
func (c Config) clone() Config {
	out := c
	if c.Texts != nil {
		out.Texts = append([]TextRun(nil), c.Texts...)
	}
	return out
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
