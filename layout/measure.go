package layout

// MeasureGlyphs 将文本段展开为按顺序排列的字形序列。
// 每段按 Unicode 码点拆分，字号取该段 FontSize，未设置时取 defaultSize。
func MeasureGlyphs(runs []TextRun, defaultSize float64, font MetricsProvider) []MeasuredGlyph {
	if font == nil {
		return nil
	}
	n := 0
	for _, run := range runs {
		n += len(run.Text)
	}
	glyphs := make([]MeasuredGlyph, 0, n)
	for _, run := range runs {
		size := run.FontSize
		if size <= 0 {
			size = defaultSize
		}
		for _, r := range run.Text {
			m := font.Measure(r, size)
			glyphs = append(glyphs, MeasuredGlyph{
				Char:     r,
				Width:    m.Width,
				Height:   m.Height,
				Ascender: m.Ascender,
				Geometry: m.Geometry,
			})
		}
	}
	return glyphs
}
