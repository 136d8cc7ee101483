package layout

import (
	"fmt"
	"strings"

	"github.com/ByLCY/glyphflow/binding"
	"github.com/ByLCY/glyphflow/dsl"
	"github.com/ByLCY/glyphflow/logger"
)

const (
	blockSpacing     = 3.0
	defaultPageWidth = 210.0
	defaultMargin    = 10.0
	// defaultFontSize 为 12pt（mm）。
	defaultFontSize = 12 * PtToMm
)

// BuildOptions 配置布局阶段所需的依赖。
type BuildOptions struct {
	Fonts FontResolver
	// LineRenderer 可选，接收所有段落排出的行（按文档顺序）。
	LineRenderer LineRenderer
}

// pageSettings 保存 page 段落中的设置，段落未声明时继承 font/size。
type pageSettings struct {
	width    float64
	margin   float64
	font     string
	fontSize float64
	meta     DocumentMeta
}

// Build 根据 DSL AST 排版全部段落，并自上而下堆叠为一页。
func Build(doc *dsl.Document, data any, opts BuildOptions) (*Document, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档为空")
	}
	if opts.Fonts == nil {
		return nil, fmt.Errorf("layout: 缺少字体解析器 FontResolver")
	}

	page, err := resolvePage(doc.Page())
	if err != nil {
		return nil, err
	}
	contentWidth := page.width - 2*page.margin
	if contentWidth <= 0 {
		return nil, fmt.Errorf("页面宽度 %gmm 不足以容纳边距 %gmm", page.width, page.margin)
	}

	out := &Document{
		Width:  page.width,
		Margin: page.margin,
		Meta:   page.meta,
	}
	cursorY := page.margin
	for i, section := range doc.Paragraphs() {
		block, err := buildBlock(section, i, page, contentWidth, data, opts)
		if err != nil {
			return nil, err
		}
		block.X = page.margin
		block.Y = cursorY
		out.Blocks = append(out.Blocks, block)
		cursorY += block.Height + blockSpacing
	}
	if len(out.Blocks) > 0 {
		cursorY -= blockSpacing
	}
	out.Height = cursorY + page.margin
	return out, nil
}

func resolvePage(section *dsl.PageSection) (pageSettings, error) {
	page := pageSettings{
		width:    defaultPageWidth,
		margin:   defaultMargin,
		fontSize: defaultFontSize,
		meta:     DocumentMeta{Creator: "glyphflow"},
	}
	if section == nil || section.Block == nil {
		return page, nil
	}
	for _, st := range section.Block.Statements {
		a := st.Assignment
		if a == nil {
			logger.WarningLogger.Printf("page 段落中的文本段被忽略")
			continue
		}
		raw := a.Value.Raw()
		var err error
		switch strings.ToLower(a.Key) {
		case "width":
			page.width, err = parsePositiveLength(raw)
		case "margin":
			page.margin, err = ParseLengthMM(raw)
			if err == nil && page.margin < 0 {
				err = fmt.Errorf("边距不能为负")
			}
		case "font":
			page.font = raw
		case "size":
			page.fontSize, err = parsePositiveLength(raw)
		case "title":
			page.meta.Title = raw
		case "author":
			page.meta.Author = raw
		case "subject":
			page.meta.Subject = raw
		case "creator":
			page.meta.Creator = raw
		case "keywords":
			page.meta.Keywords = splitKeywords(raw)
		default:
			logger.WarningLogger.Printf("%s: 未知的 page 属性 %q", a.Pos, a.Key)
		}
		if err != nil {
			return page, fmt.Errorf("%s: page.%s: %w", a.Pos, a.Key, err)
		}
	}
	return page, nil
}

// paragraphSettings 是从 DSL 段落解析出的设置。
type paragraphSettings struct {
	cfg    Config
	font   string
	width  float64
	height float64
}

func parseParagraph(section *dsl.ParagraphSection, contentWidth float64) (paragraphSettings, error) {
	settings := paragraphSettings{cfg: DefaultConfig(), width: contentWidth}
	if section.Block == nil {
		return settings, nil
	}
	for _, st := range section.Block.Statements {
		if run := st.Run; run != nil {
			tr := TextRun{Text: string(run.Text)}
			if run.Size != nil {
				size, err := parsePositiveLength(*run.Size)
				if err != nil {
					return settings, fmt.Errorf("%s: text size: %w", run.Pos, err)
				}
				tr.FontSize = size
			}
			settings.cfg.Texts = append(settings.cfg.Texts, tr)
			continue
		}
		a := st.Assignment
		raw := a.Value.Raw()
		var err error
		switch strings.ToLower(a.Key) {
		case "width":
			settings.width, err = parsePositiveLength(raw)
		case "height":
			settings.height, err = ParseLengthMM(raw)
		case "font":
			settings.font = raw
		case "size", "font-size":
			settings.cfg.FontSize, err = parsePositiveLength(raw)
		case "inter-line", "interline":
			settings.cfg.InterLine, err = ParseLengthMM(raw)
		case "vertical-center":
			settings.cfg.VerticalCenter, err = a.Value.Bool()
		case "wrap", "wrap-glyphs":
			settings.cfg.WrapGlyphs = raw
		case "layout-height", "set-layout-height":
			settings.cfg.SetLayoutHeight, err = a.Value.Bool()
		default:
			logger.WarningLogger.Printf("%s: 未知的 paragraph 属性 %q", a.Pos, a.Key)
		}
		if err != nil {
			return settings, fmt.Errorf("%s: paragraph.%s: %w", a.Pos, a.Key, err)
		}
	}
	if settings.width > contentWidth {
		settings.width = contentWidth
	}
	return settings, settings.cfg.Validate()
}

func buildBlock(section *dsl.ParagraphSection, index int, page pageSettings, contentWidth float64, data any, opts BuildOptions) (Block, error) {
	settings, err := parseParagraph(section, contentWidth)
	if err != nil {
		return Block{}, err
	}
	name := section.Name
	if name == "" {
		name = fmt.Sprintf("paragraph-%d", index+1)
	}
	settings.cfg.Texts = interpolateRuns(settings.cfg.Texts, data)

	box := NewBox(settings.width)
	box.H = settings.height
	box.FontSize = page.fontSize

	fontSrc := page.font
	if settings.font != "" {
		fontSrc = settings.font
	}
	var popts []ParagraphOption
	if opts.LineRenderer != nil {
		popts = append(popts, WithLineRenderer(opts.LineRenderer))
	}
	if font, err := opts.Fonts.Resolve(fontSrc); err != nil {
		// 字体无法解析时段落保持"未排版"状态
		logger.WarningLogger.Printf("段落 %s 的字体 %q 无法解析: %v", name, fontSrc, err)
	} else if settings.font != "" {
		popts = append(popts, WithFont(font))
	} else {
		box.Font = font
	}

	para, err := NewParagraph(settings.cfg, popts...)
	if err != nil {
		return Block{}, fmt.Errorf("段落 %s: %w", name, err)
	}
	res, ok := para.Update(box)
	return Block{
		Name:     name,
		Font:     fontSrc,
		Width:    box.Width(),
		Height:   box.Height(),
		Centered: settings.cfg.VerticalCenter,
		Result:   res,
		LaidOut:  ok,
	}, nil
}

func interpolateRuns(runs []TextRun, data any) []TextRun {
	if data == nil {
		return runs
	}
	out := make([]TextRun, len(runs))
	for i, run := range runs {
		out[i] = TextRun{Text: binding.Interpolate(run.Text, data), FontSize: run.FontSize}
	}
	return out
}

func parsePositiveLength(raw string) (float64, error) {
	v, err := ParseLengthMM(raw)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("长度必须为正数：%s", raw)
	}
	return v, nil
}

func splitKeywords(raw string) []string {
	var out []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
