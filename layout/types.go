package layout

// 该文件定义段落排版的输入输出结构，供排版计算、渲染与调试 JSON 共用。

// TextRun 是一段带样式的文本；FontSize 为 0 时使用段落默认字号。
type TextRun struct {
	Text     string  `json:"text"`
	FontSize float64 `json:"fontSize,omitempty"`
}

// GlyphMetrics 是字形度量提供者返回的单字度量，单位为布局单位（mm）。
// 字体中不存在的字符返回零值。
type GlyphMetrics struct {
	Width    float64
	Height   float64
	Ascender float64
	// Geometry 为渲染端持有的字形几何句柄，排版阶段只负责透传。
	Geometry any
}

// MeasuredGlyph 表示输入文本中的一个字符及其度量。
type MeasuredGlyph struct {
	Char     rune    `json:"-"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Ascender float64 `json:"ascender"`
	Geometry any     `json:"-"`
}

// IsSpace reports whether the glyph is the ASCII space used by the wrap rules.
func (g MeasuredGlyph) IsSpace() bool { return g.Char == ' ' }

// Line 是折行后的一行。Height/Ascender 只统计非空格字符，Width 包含空格。
type Line struct {
	Glyphs   []MeasuredGlyph `json:"-"`
	Width    float64         `json:"width"`
	Height   float64         `json:"height"`
	Ascender float64         `json:"ascender"`
}

// Content 返回该行的文本内容。
func (l Line) Content() string {
	return glyphsToString(l.Glyphs)
}

// LineDescriptor 是交给行渲染器的一行：字形序列、宽度与纵向偏移（+Y 向上）。
type LineDescriptor struct {
	Content        string          `json:"content"`
	Width          float64         `json:"width"`
	Height         float64         `json:"height"`
	Ascender       float64         `json:"ascender"`
	YPos           float64         `json:"yPos"`
	ContainerWidth float64         `json:"containerWidth"`
	Glyphs         []MeasuredGlyph `json:"-"`
}

// Result 保存一次完整排版的结果。
type Result struct {
	Lines       []LineDescriptor `json:"lines"`
	TotalHeight float64          `json:"totalHeight"`
}

// Document 是 DSL 文档排版后的页面，块按从上到下的顺序排列（单位：mm）。
type Document struct {
	Width  float64      `json:"width"`
	Height float64      `json:"height"`
	Margin float64      `json:"margin"`
	Meta   DocumentMeta `json:"meta"`
	Blocks []Block      `json:"blocks"`
}

// Block 是一个已定位的段落。X/Y 为块左上角的页面坐标（Y 向下）。
type Block struct {
	Name   string  `json:"name"`
	Font   string  `json:"font"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	// Centered 为 true 时行的 YPos 以块的垂直中点为原点，否则以块顶部为原点。
	Centered bool   `json:"centered"`
	Result   Result `json:"result"`
	// LaidOut 为 false 表示字体无法解析或没有文本，块内没有任何行。
	LaidOut bool `json:"laidOut"`
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}

func glyphsToString(glyphs []MeasuredGlyph) string {
	runes := make([]rune, len(glyphs))
	for i, g := range glyphs {
		runes[i] = g.Char
	}
	return string(runes)
}
