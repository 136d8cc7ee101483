package layout

// TotalHeight 返回行高之和加上 (n-1) 个行间距。
func TotalHeight(lines []Line, interLine float64) float64 {
	total := 0.0
	for i, line := range lines {
		total += line.Height
		if i < len(lines)-1 {
			total += interLine
		}
	}
	return total
}

// PlaceLines 计算每行基线的纵向偏移（+Y 向上）。
// 游标从 verticalCenter ? totalHeight/2 : 0 开始，每行取 游标-上升部，之后下移 行高+行间距。
func PlaceLines(lines []Line, interLine float64, verticalCenter bool) ([]float64, float64) {
	total := TotalHeight(lines, interLine)
	cursor := 0.0
	if verticalCenter {
		cursor = total / 2
	}
	offsets := make([]float64, len(lines))
	for i, line := range lines {
		offsets[i] = cursor - line.Ascender
		cursor -= line.Height + interLine
	}
	return offsets, total
}
