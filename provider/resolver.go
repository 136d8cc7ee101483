package provider

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ByLCY/glyphflow/fonts"
	"github.com/ByLCY/glyphflow/layout"
	"github.com/ByLCY/glyphflow/logger"
	canvasprovider "github.com/ByLCY/glyphflow/provider/canvas"
	sfntprovider "github.com/ByLCY/glyphflow/provider/sfnt"
	"github.com/ByLCY/glyphflow/provider/typeface"
)

// Backend 选择 TrueType/OpenType 字体的度量后端。
type Backend string

const (
	BackendCanvas Backend = "canvas" // github.com/tdewolff/canvas，字形几何为 *canvas.Path
	BackendSFNT   Backend = "sfnt"   // golang.org/x/image/font/sfnt，字形几何为 sfnt.Segments
)

// Resolver implements layout.FontResolver. Sources are "builtin:<name>",
// .ttf/.otf files (measured by Backend) or .json typeface files. Providers
// are created once per source and wrapped in a Cache.
type Resolver struct {
	BaseDir string
	Backend Backend
	// Fallback 在来源无法加载时使用；为空则直接返回错误。
	Fallback string

	mu        sync.Mutex
	providers map[string]layout.MetricsProvider
}

var _ layout.FontResolver = (*Resolver)(nil)

// NewResolver creates a resolver rooted at baseDir for relative font paths.
func NewResolver(baseDir string, backend Backend) *Resolver {
	if backend == "" {
		backend = BackendCanvas
	}
	return &Resolver{
		BaseDir:   baseDir,
		Backend:   backend,
		Fallback:  fonts.Default,
		providers: map[string]layout.MetricsProvider{},
	}
}

// Resolve returns the cached provider for src, loading it on first use.
func (r *Resolver) Resolve(src string) (layout.MetricsProvider, error) {
	if src == "" {
		src = fonts.Default
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.providers[src]; ok {
		return p, nil
	}

	p, err := r.load(src)
	if err != nil {
		if r.Fallback == "" || r.Fallback == src {
			return nil, err
		}
		logger.WarningLogger.Printf("字体 %s 加载失败，改用 %s: %v", src, r.Fallback, err)
		fb, ok := r.providers[r.Fallback]
		if !ok {
			if fb, err = r.load(r.Fallback); err != nil {
				return nil, err
			}
			r.providers[r.Fallback] = fb
		}
		p = fb
	}
	r.providers[src] = p
	return p, nil
}

func (r *Resolver) load(src string) (layout.MetricsProvider, error) {
	data, err := fonts.Load(src, r.BaseDir)
	if err != nil {
		return nil, err
	}
	if !fonts.IsBuiltin(src) && strings.EqualFold(filepath.Ext(src), ".json") {
		f, err := typeface.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return NewCache(f), nil
	}

	switch r.Backend {
	case BackendSFNT:
		p, err := sfntprovider.New(data)
		if err != nil {
			return nil, err
		}
		return NewCache(p), nil
	case BackendCanvas:
		p, err := canvasprovider.New(data, canvasprovider.Options{Family: familyName(src)})
		if err != nil {
			return nil, err
		}
		return NewCache(p), nil
	default:
		return nil, fmt.Errorf("未知的度量后端 %q", r.Backend)
	}
}

func familyName(src string) string {
	if fonts.IsBuiltin(src) {
		return strings.TrimPrefix(strings.TrimPrefix(src, "built-in:"), "builtin:")
	}
	return strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
}
