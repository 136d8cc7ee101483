package typeface

import (
	"fmt"
	"strconv"
	"strings"
)

// Outline is the geometry handle of a typeface glyph: the raw outline
// command string plus the font-unit to layout-unit scale it was measured at.
type Outline struct {
	Commands string
	Scale    float64
}

// Op is an outline drawing operation.
type Op byte

const (
	OpMoveTo Op = 'm'
	OpLineTo Op = 'l'
	OpQuadTo Op = 'q'
	OpCubeTo Op = 'b'
)

// Segment is one scaled drawing operation. Points are in layout units with
// Y pointing up; control points come first and the end point last.
type Segment struct {
	Op     Op
	Points [][2]float64
}

// Segments parses the outline. typeface stores the end point of q/b
// commands before their control points; Segments reorders them.
func (o Outline) Segments() ([]Segment, error) {
	fields := strings.Fields(o.Commands)
	var out []Segment
	for i := 0; i < len(fields); {
		op := Op(fields[i][0])
		if len(fields[i]) != 1 {
			return nil, fmt.Errorf("非法轮廓命令 %q", fields[i])
		}
		var n int
		switch op {
		case OpMoveTo, OpLineTo:
			n = 1
		case OpQuadTo:
			n = 2
		case OpCubeTo:
			n = 3
		default:
			return nil, fmt.Errorf("非法轮廓命令 %q", fields[i])
		}
		i++
		if i+2*n > len(fields) {
			return nil, fmt.Errorf("轮廓命令 %c 参数不足", op)
		}
		pts := make([][2]float64, n)
		for k := 0; k < n; k++ {
			x, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, err
			}
			y, err := strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				return nil, err
			}
			pts[k] = [2]float64{x * o.Scale, y * o.Scale}
			i += 2
		}
		if n > 1 {
			pts = append(pts[1:], pts[0])
		}
		out = append(out, Segment{Op: op, Points: pts})
	}
	return out, nil
}
