package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/ByLCY/glyphflow/layout"
	"github.com/ByLCY/glyphflow/provider/typeface"
	"github.com/ByLCY/glyphflow/renderer"
)

const lineBoxStrokeWidth = 0.1

// Renderer draws laid-out documents via github.com/tdewolff/canvas.
type Renderer struct {
	opts Options
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options configures the canvas renderer.
type Options struct {
	// TextColor 为字形填充色，默认黑色。
	TextColor color.Color
	// DebugBoxes 为 true 时为每一行描出行框（行高 × 行宽）。
	DebugBoxes bool
}

// NewRenderer creates a renderer with default options.
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions creates a renderer with the given options.
func NewRendererWithOptions(opts Options) *Renderer {
	if opts.TextColor == nil {
		opts.TextColor = canvas.Black
	}
	return &Renderer{opts: opts}
}

// Render renders the document into a single-page PDF byte slice.
func (r *Renderer) Render(doc *layout.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("渲染文档为空")
	}
	if doc.Width <= 0 || doc.Height <= 0 {
		return nil, fmt.Errorf("页面尺寸非法: %gx%g", doc.Width, doc.Height)
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, doc.Width, doc.Height, nil)
	r.applyMeta(writer, doc.Meta)

	c := canvas.New(doc.Width, doc.Height)
	ctx := canvas.NewContext(c)
	for _, block := range doc.Blocks {
		r.drawBlock(ctx, doc.Height, block)
	}
	c.RenderTo(writer)

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	if writer == nil {
		return
	}
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

// BlockOrigin 返回块内行坐标原点在画布中的位置（画布 Y 向上）。
// 居中的块以垂直中点为原点，否则以顶部为原点。
func BlockOrigin(pageHeight float64, block layout.Block) (float64, float64) {
	top := pageHeight - block.Y
	if block.Centered {
		return block.X, top - block.Height/2
	}
	return block.X, top
}

func (r *Renderer) drawBlock(ctx *canvas.Context, pageHeight float64, block layout.Block) {
	if !block.LaidOut {
		return
	}
	originX, originY := BlockOrigin(pageHeight, block)
	for _, line := range block.Result.Lines {
		baseline := originY + line.YPos
		if r.opts.DebugBoxes {
			r.drawLineBox(ctx, originX, baseline, line)
		}
		ctx.SetFillColor(r.opts.TextColor)
		ctx.SetStrokeColor(canvas.Transparent)
		x := originX
		for _, g := range line.Glyphs {
			if path := glyphPath(g.Geometry); path != nil {
				ctx.DrawPath(x, baseline, path)
			}
			x += g.Width
		}
	}
}

// drawLineBox 描出行框：底边为基线下方 (Height-Ascender)。
func (r *Renderer) drawLineBox(ctx *canvas.Context, x, baseline float64, line layout.LineDescriptor) {
	if line.Width <= 0 || line.Height <= 0 {
		return
	}
	ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	ctx.SetStrokeColor(canvas.Hex("#E53935"))
	ctx.SetStrokeWidth(lineBoxStrokeWidth)
	bottom := baseline - (line.Height - line.Ascender)
	ctx.DrawPath(x, bottom, canvas.Rectangle(line.Width, line.Height))
}

// glyphPath 把字形几何句柄转换为以基线为原点、Y 向上的路径；不认识的句柄返回 nil。
func glyphPath(geometry any) *canvas.Path {
	switch g := geometry.(type) {
	case *canvas.Path:
		return g
	case sfnt.Segments:
		return segmentsPath(g)
	case typeface.Outline:
		return outlinePath(g)
	default:
		return nil
	}
}

func segmentsPath(segs sfnt.Segments) *canvas.Path {
	if len(segs) == 0 {
		return nil
	}
	p := &canvas.Path{}
	pt := func(v fixed.Point26_6) (float64, float64) {
		return float64(v.X) / 64, -float64(v.Y) / 64
	}
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if !p.Empty() {
				p.Close()
			}
			p.MoveTo(pt(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			p.LineTo(pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			cx, cy := pt(seg.Args[0])
			x, y := pt(seg.Args[1])
			p.QuadTo(cx, cy, x, y)
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := pt(seg.Args[0])
			c2x, c2y := pt(seg.Args[1])
			x, y := pt(seg.Args[2])
			p.CubeTo(c1x, c1y, c2x, c2y, x, y)
		}
	}
	p.Close()
	return p
}

func outlinePath(o typeface.Outline) *canvas.Path {
	segs, err := o.Segments()
	if err != nil || len(segs) == 0 {
		return nil
	}
	p := &canvas.Path{}
	for _, seg := range segs {
		pts := seg.Points
		switch seg.Op {
		case typeface.OpMoveTo:
			if !p.Empty() {
				p.Close()
			}
			p.MoveTo(pts[0][0], pts[0][1])
		case typeface.OpLineTo:
			p.LineTo(pts[0][0], pts[0][1])
		case typeface.OpQuadTo:
			p.QuadTo(pts[0][0], pts[0][1], pts[1][0], pts[1][1])
		case typeface.OpCubeTo:
			p.CubeTo(pts[0][0], pts[0][1], pts[1][0], pts[1][1], pts[2][0], pts[2][1])
		}
	}
	p.Close()
	return p
}
