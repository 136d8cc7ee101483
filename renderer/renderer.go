package renderer

import (
	"sync"

	"github.com/ByLCY/glyphflow/layout"
)

// Renderer 将排版后的文档输出为最终文件，例如 PDF。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(doc *layout.Document) ([]byte, error)
}

// Collector 是一个 layout.LineRenderer，按接收顺序保存行描述。
type Collector struct {
	mu    sync.Mutex
	lines []layout.LineDescriptor
}

var _ layout.LineRenderer = (*Collector)(nil)

func (c *Collector) RenderLine(line layout.LineDescriptor) {
	c.mu.Lock()
	c.lines = append(c.lines, line)
	c.mu.Unlock()
}

// Lines 返回已接收的行。
func (c *Collector) Lines() []layout.LineDescriptor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]layout.LineDescriptor(nil), c.lines...)
}

// Reset 清空已接收的行。
func (c *Collector) Reset() {
	c.mu.Lock()
	c.lines = nil
	c.mu.Unlock()
}
