package layout

// Box 是一个固定宽度的内存容器，记录段落回写的高度。
type Box struct {
	W        float64
	H        float64
	Font     MetricsProvider
	FontSize float64

	// heightReports 统计 SetHeight 的调用次数，便于调试与测试。
	heightReports int
}

var (
	_ Container         = (*Box)(nil)
	_ FontInheritor     = (*Box)(nil)
	_ FontSizeInheritor = (*Box)(nil)
)

// NewBox creates a box of the given width.
func NewBox(width float64) *Box { return &Box{W: width} }

func (b *Box) Width() float64 { return b.W }

func (b *Box) SetHeight(height float64) {
	b.H = height
	b.heightReports++
}

// Height 返回最近一次回写的高度（或初始高度）。
func (b *Box) Height() float64 { return b.H }

// HeightReports 返回 SetHeight 被调用的次数。
func (b *Box) HeightReports() int { return b.heightReports }

func (b *Box) InheritedFont() MetricsProvider { return b.Font }

func (b *Box) InheritedFontSize() float64 { return b.FontSize }
