package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ByLCY/quire/dsl"
	"github.com/ByLCY/quire/page"
	"github.com/ByLCY/quire/renderer"
	"github.com/ByLCY/quire/report"
	"github.com/ByLCY/quire/surface"
)

func main() {
	input := flag.String("in", "examples/report.quire", "DSL 文件路径")
	output := flag.String("out", "output/report.pdf", "输出路径")
	format := flag.String("format", "pdf", "输出格式：pdf 或 json")
	debug := flag.String("debug", "", "绘制调用日志 JSON 输出路径")
	dataJSON := flag.String("data", "", "绑定到 DSL 的 JSON 数据")
	dataFile := flag.String("data-file", "", "绑定到 DSL 的 JSON 数据文件")
	verbose := flag.Bool("v", false, "输出每个 sheet 的页数")
	flag.Parse()

	inputData, err := loadData(*dataJSON, *dataFile)
	if err != nil {
		log.Fatalf("解析 data JSON 失败: %v", err)
	}

	opts := options{format: *format, debugPath: *debug, verbose: *verbose, now: time.Now()}
	if err := run(*input, *output, inputData, opts); err != nil {
		log.Fatalf("生成报表失败: %v", err)
	}
	fmt.Printf("已生成：%s\n", *output)
}

type options struct {
	format    string
	debugPath string
	verbose   bool
	now       time.Time
}

func loadData(inline, path string) (any, error) {
	raw := []byte(inline)
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// run 串联解析、构建与渲染。
func run(inputPath, outputPath string, data any, opts options) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("无法打开 DSL 文件 %s: %w", inputPath, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return fmt.Errorf("解析 DSL 失败: %w", err)
	}

	spec, err := report.Build(doc, data, opts.now)
	if err != nil {
		return fmt.Errorf("构建报表失败: %w", err)
	}

	backend, err := renderer.New(opts.format, spec.Width, spec.Height)
	if err != nil {
		return err
	}
	rec := surface.NewRecorder(backend)
	document, err := page.NewDocumentSize(rec, spec.Width, spec.Height)
	if err != nil {
		return err
	}
	document.Metadata = spec.Metadata

	for _, sheet := range spec.Sheets {
		pages, err := report.Render(document.Canvas(), sheet)
		if err != nil {
			return err
		}
		if opts.verbose {
			log.Printf("sheet %q: %d 页", sheet.Name, pages)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := document.Save(outputPath); err != nil {
		return err
	}

	if opts.debugPath != "" {
		if err := writeDebug(rec, opts.debugPath); err != nil {
			return err
		}
	}
	return nil
}

func writeDebug(rec *surface.Recorder, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := rec.WriteJSON(debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
