package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ByLCY/glyphflow/dsl"
	"github.com/ByLCY/glyphflow/layout"
	"github.com/ByLCY/glyphflow/logger"
	"github.com/ByLCY/glyphflow/provider"
	"github.com/ByLCY/glyphflow/renderer"
	canvasrenderer "github.com/ByLCY/glyphflow/renderer/canvas"
)

func main() {
	input := flag.String("in", "examples/demo.glyph", "段落 DSL 文件路径")
	output := flag.String("out", "output/demo.pdf", "PDF 输出路径")
	debug := flag.String("debug", "", "排版调试 JSON 输出路径")
	debugBoxes := flag.Bool("debug-boxes", false, "在 PDF 中描出每一行的行框")
	backend := flag.String("backend", string(provider.BackendCanvas), "字形度量后端：canvas 或 sfnt")
	dataJSON := flag.String("data", "", "绑定到 DSL 的 JSON 数据")
	flag.Parse()

	switch provider.Backend(*backend) {
	case provider.BackendCanvas, provider.BackendSFNT:
	default:
		log.Fatalf("未知的度量后端 %q（可选 canvas、sfnt）", *backend)
	}

	var inputData any
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &inputData); err != nil {
			log.Fatalf("解析 data JSON 失败: %v", err)
		}
	}

	cfg := runConfig{
		inputPath:  *input,
		outputPath: *output,
		debugPath:  *debug,
		data:       inputData,
		fonts:      provider.NewResolver(filepath.Dir(*input), provider.Backend(*backend)),
	}
	r := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{DebugBoxes: *debugBoxes})
	if err := run(cfg, r); err != nil {
		log.Fatalf("生成 PDF 失败: %v", err)
	}
	fmt.Printf("已生成 PDF：%s\n", *output)
}

type runConfig struct {
	inputPath  string
	outputPath string
	debugPath  string
	data       any
	fonts      layout.FontResolver
}

// run 串联解析、排版与渲染。
func run(cfg runConfig, r renderer.Renderer) error {
	if r == nil {
		return fmt.Errorf("renderer 不能为空")
	}
	file, err := os.Open(cfg.inputPath)
	if err != nil {
		return fmt.Errorf("无法打开 DSL 文件 %s: %w", cfg.inputPath, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return fmt.Errorf("解析 DSL 失败: %w", err)
	}
	logger.ProgressLogger.Printf("已解析 %s：%d 个段落", cfg.inputPath, len(doc.Paragraphs()))

	collector := &renderer.Collector{}
	result, err := layout.Build(doc, cfg.data, layout.BuildOptions{
		Fonts:        cfg.fonts,
		LineRenderer: collector,
	})
	if err != nil {
		return fmt.Errorf("排版失败: %w", err)
	}
	logger.ProgressLogger.Printf("排版完成：%d 行，页面 %.1fx%.1fmm", len(collector.Lines()), result.Width, result.Height)

	if cfg.debugPath != "" {
		if err := writeDebug(result, cfg.debugPath); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(cfg.outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}

	pdfBytes, err := r.Render(result)
	if err != nil {
		return fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	if err := os.WriteFile(cfg.outputPath, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	return nil
}

func writeDebug(result *layout.Document, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
