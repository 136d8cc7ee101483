package layout

import "sync"

// Compute 执行一次完整的段落排版，不产生任何副作用。
// 没有文本或没有字体时返回 false，调用方应视为"尚未排版"。
func Compute(cfg Config, containerWidth float64, font MetricsProvider) (Result, bool) {
	if len(cfg.Texts) == 0 || font == nil {
		return Result{}, false
	}
	glyphs := MeasureGlyphs(cfg.Texts, cfg.FontSize, font)
	lines := BreakLines(glyphs, containerWidth, cfg.WrapGlyphs)
	offsets, total := PlaceLines(lines, cfg.InterLine, cfg.VerticalCenter)
	return Result{
		Lines:       emitLines(lines, offsets, containerWidth),
		TotalHeight: total,
	}, true
}

func emitLines(lines []Line, offsets []float64, containerWidth float64) []LineDescriptor {
	out := make([]LineDescriptor, len(lines))
	for i, line := range lines {
		out[i] = LineDescriptor{
			Content:        line.Content(),
			Width:          line.Width,
			Height:         line.Height,
			Ascender:       line.Ascender,
			YPos:           offsets[i],
			ContainerWidth: containerWidth,
			Glyphs:         line.Glyphs,
		}
	}
	return out
}

// Paragraph 持有段落配置与上一次排版产生的行。
// 同一个 Paragraph 上的 Update 串行执行。
type Paragraph struct {
	mu       sync.Mutex
	cfg      Config
	font     MetricsProvider
	renderer LineRenderer
	lines    []LineDescriptor
}

// ParagraphOption configures a Paragraph at construction time.
type ParagraphOption func(*Paragraph)

// WithFont 指定段落字体；未指定时从容器继承。
func WithFont(font MetricsProvider) ParagraphOption {
	return func(p *Paragraph) { p.font = font }
}

// WithLineRenderer 指定接收行描述的渲染器。
func WithLineRenderer(r LineRenderer) ParagraphOption {
	return func(p *Paragraph) { p.renderer = r }
}

// NewParagraph 校验配置并创建段落。
func NewParagraph(cfg Config, opts ...ParagraphOption) (*Paragraph, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Paragraph{cfg: cfg.clone()}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Config 返回段落当前配置的副本。
func (p *Paragraph) Config() Config {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg.clone()
}

// SetConfig 替换段落配置，下一次 Update 时全量重排。
func (p *Paragraph) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	p.mu.Lock()
	p.cfg = cfg.clone()
	p.mu.Unlock()
	return nil
}

// SetTexts 只替换文本段。
func (p *Paragraph) SetTexts(texts []TextRun) error {
	cfg := p.Config()
	cfg.Texts = texts
	return p.SetConfig(cfg)
}

// Update 读取容器宽度并重新排版。
// 开启 SetLayoutHeight 时先把总高度写回容器（每次排版一次），再按顺序把行交给渲染器。
// 无文本或无法解析字体时不做任何事并返回 false，之前的行保持不变。
func (p *Paragraph) Update(container Container) (Result, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if container == nil {
		return Result{}, false
	}
	cfg := p.cfg
	if cfg.FontSize <= 0 {
		if inh, ok := container.(FontSizeInheritor); ok {
			cfg.FontSize = inh.InheritedFontSize()
		}
	}
	font := p.font
	if font == nil {
		if inh, ok := container.(FontInheritor); ok {
			font = inh.InheritedFont()
		}
	}

	width := container.Width()
	res, ok := Compute(cfg, width, font)
	if !ok {
		return Result{}, false
	}

	if cfg.SetLayoutHeight {
		container.SetHeight(res.TotalHeight)
	}
	p.lines = res.Lines
	if p.renderer != nil {
		for _, line := range res.Lines {
			p.renderer.RenderLine(line)
		}
	}
	return res, true
}

// Lines 返回最近一次排版产生的行（只读副本）。
func (p *Paragraph) Lines() []LineDescriptor {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]LineDescriptor(nil), p.lines...)
}
