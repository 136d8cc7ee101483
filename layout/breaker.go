package layout

import "strings"

// BreakLines 使用贪心算法并带前瞻地把字形序列切分为行。
//
// 对每个字形：若前一个字形属于 wrapGlyphs，则向后累计到下一个空格或连字符之前的宽度；
// 当前行加上该字形超出 width，或加上这段前瞻宽度超出 width 时换行。换行时去掉当前行
// 末尾的一个空格，新行不以空格开头。行高与上升部只统计非空格字形。
//
// 空行不会再被换行，因此单个宽于容器的字形会独占一行并允许溢出。
func BreakLines(glyphs []MeasuredGlyph, width float64, wrapGlyphs string) []Line {
	lines := []Line{{}}
	for i, g := range glyphs {
		current := &lines[len(lines)-1]

		overflow := current.Width+g.Width > width
		if !overflow && i > 0 && strings.ContainsRune(wrapGlyphs, glyphs[i-1].Char) {
			overflow = lengthToNextWrap(glyphs, i)+current.Width > width
		}

		if overflow && len(current.Glyphs) > 0 {
			trimTrailingSpace(current)
			lines = append(lines, Line{})
			current = &lines[len(lines)-1]
			if g.IsSpace() {
				continue
			}
		}

		if !g.IsSpace() {
			if g.Height > current.Height {
				current.Height = g.Height
			}
			if g.Ascender > current.Ascender {
				current.Ascender = g.Ascender
			}
		}
		current.Width += g.Width
		current.Glyphs = append(current.Glyphs, g)
	}
	return lines
}

// lengthToNextWrap 累计从 start 开始到下一个空格或连字符（不含）之前的宽度。
// 边界固定为 ' ' 与 '-'，与 wrapGlyphs 无关。
func lengthToNextWrap(glyphs []MeasuredGlyph, start int) float64 {
	total := 0.0
	for _, g := range glyphs[start:] {
		if g.Char == ' ' || g.Char == '-' {
			break
		}
		total += g.Width
	}
	return total
}

func trimTrailingSpace(line *Line) {
	n := len(line.Glyphs)
	if n == 0 || !line.Glyphs[n-1].IsSpace() {
		return
	}
	line.Width -= line.Glyphs[n-1].Width
	line.Glyphs = line.Glyphs[:n-1]
}
