package report

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/ByLCY/quire/layout"
	"github.com/ByLCY/quire/page"
	"github.com/ByLCY/quire/surface"
	"github.com/ByLCY/quire/table"
)

func testSheet(t *testing.T, rows int) Sheet {
	t.Helper()
	s := NewSheet("Front")
	for _, spec := range []struct {
		w     float64
		title string
	}{{40, "Bank"}, {25, "Data"}, {30, "Status"}} {
		col, err := table.NewColumn(spec.w, spec.title)
		if err != nil {
			t.Fatal(err)
		}
		s.Columns = append(s.Columns, col)
	}
	for i := 0; i < rows; i++ {
		s.Rows = append(s.Rows, Row{{Column: 0, Text: fmt.Sprintf("bank %d", i+1)}})
	}
	return s
}

func lines(rec *surface.Recorder) []string {
	var out []string
	for _, c := range rec.Named("text.textLine") {
		out = append(out, c.Args[0].(string))
	}
	return out
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

func TestChunks(t *testing.T) {
	rows := make([]Row, 7)
	chunks := Chunks(rows, 3)
	if len(chunks) != 3 || len(chunks[0]) != 3 || len(chunks[2]) != 1 {
		t.Fatalf("7 行按 3 切分结果错误: %d", len(chunks))
	}
	if got := Chunks(nil, 3); len(got) != 1 || got[0] != nil {
		t.Fatalf("空数据也应生成一页: %v", got)
	}
	if got := Chunks(rows[:3], 3); len(got) != 1 {
		t.Fatalf("恰好一页时不应多出空页: %d", len(got))
	}
}

func TestRenderPagination(t *testing.T) {
	rec := surface.NewRecorder(nil)
	c := page.NewA4(rec)
	s := testSheet(t, 60)
	s.PageLabel = DefaultPageLabel

	pages, err := Render(c, s)
	if err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	// (297 - 15) / 11 → 25 行每页
	if pages != 3 {
		t.Fatalf("60 行应占 3 页，实际 %d", pages)
	}
	if got := len(rec.Named("showPage")); got != 2 {
		t.Fatalf("3 页之间应有 2 次 showPage，实际 %d", got)
	}
	text := lines(rec)
	for _, want := range []string{"1 / 3", "2 / 3", "3 / 3", "bank 1", "bank 26", "bank 60"} {
		if !contains(text, want) {
			t.Fatalf("缺少文本 %q", want)
		}
	}
}

func TestRenderDuplexPadsOddSheets(t *testing.T) {
	for _, tc := range []struct {
		rows, pages int
	}{{10, 2}, {30, 2}, {60, 4}} {
		rec := surface.NewRecorder(nil)
		c := page.NewA4(rec)
		s := testSheet(t, tc.rows)
		s.Duplex = true
		s.Watermark = "strona ${page}"

		pages, err := Render(c, s)
		if err != nil {
			t.Fatalf("渲染失败: %v", err)
		}
		if pages != tc.pages {
			t.Fatalf("%d 行双面打印期望 %d 页，实际 %d", tc.rows, tc.pages, pages)
		}
	}

	// 补出的空白页只有水印
	rec := surface.NewRecorder(nil)
	c := page.NewA4(rec)
	s := testSheet(t, 1)
	s.Duplex = true
	s.Watermark = "strona ${page}"
	if _, err := Render(c, s); err != nil {
		t.Fatal(err)
	}
	text := lines(rec)
	if text[len(text)-1] != "strona 2" {
		t.Fatalf("空白页应以水印结束，实际 %q", text[len(text)-1])
	}
	if got := len(rec.Named("grid")); got != 2 {
		t.Fatalf("只有第一页绘制表格（表头+表体两个 grid），实际 %d", got)
	}
}

func TestRenderWatermarkIsTranslucent(t *testing.T) {
	rec := surface.NewRecorder(nil)
	c := page.NewA4(rec)
	s := testSheet(t, 1)
	s.Watermark = "Quire"
	if _, err := Render(c, s); err != nil {
		t.Fatal(err)
	}
	found := false
	for _, call := range rec.Named("setFillColor") {
		if call.Args[1].(float64) == 0.5 {
			found = true
		}
	}
	if !found {
		t.Fatalf("水印应使用 0.5 透明度")
	}
	if got := lines(rec)[0]; got != "Quire" {
		t.Fatalf("水印应最先绘制，实际 %q", got)
	}
}

func TestRenderTitleAndStyledCells(t *testing.T) {
	rec := surface.NewRecorder(nil)
	c := page.NewA4(rec)
	s := testSheet(t, 0)
	s.Title = "Ognivo: "
	s.Subtitle = "odpowiedzi"
	s.Aside = "2026-10-17"
	s.Heading = "Raport"
	s.Rows = []Row{{
		{Column: 0, Text: "PKO", Bold: true},
		{Column: 2, Text: "TAK", HAlign: layout.Right, Size: 4, Alpha: 0.3},
	}}
	if _, err := Render(c, s); err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	text := lines(rec)
	for _, want := range []string{"Raport", "Ognivo: ", "odpowiedzi", "2026-10-17", "PKO", "TAK"} {
		if !contains(text, want) {
			t.Fatalf("缺少文本 %q: %v", want, text)
		}
	}
	fonts := map[string]string{}
	var current string
	for _, call := range rec.Calls {
		switch call.Name {
		case "text.setFont":
			current = fmt.Sprintf("%s %.4f", call.Args[0], call.Args[1])
		case "text.textLine":
			fonts[call.Args[0].(string)] = current
		}
	}
	if want := fmt.Sprintf("SansBold %.4f", layout.Normalize(3)); fonts["PKO"] != want {
		t.Fatalf("加粗单元格字体期望 %s，实际 %s", want, fonts["PKO"])
	}
	if want := fmt.Sprintf("Sans %.4f", layout.Normalize(4)); fonts["TAK"] != want {
		t.Fatalf("放大单元格字体期望 %s，实际 %s", want, fonts["TAK"])
	}
	// 调用方状态在渲染后恢复
	if c.Font().Name() != "Serif" {
		t.Fatalf("渲染后字体应恢复为默认 Serif，实际 %s", c.Font().Name())
	}
}

func TestRenderErrors(t *testing.T) {
	c := page.NewA4(surface.NewRecorder(nil))
	if _, err := Render(c); !errors.Is(err, ErrNoPages) {
		t.Fatalf("没有 sheet 应返回 ErrNoPages，实际 %v", err)
	}
	empty := NewSheet("empty")
	if _, err := Render(c, empty); !errors.Is(err, layout.ErrInvalidArgument) {
		t.Fatalf("没有列的 sheet 应报参数错误，实际 %v", err)
	}
	tall := testSheet(t, 1)
	tall.RowHeight = 300
	_, err := Render(c, tall)
	if err == nil || !strings.Contains(err.Error(), "Front") {
		t.Fatalf("行高超出页面应报错，实际 %v", err)
	}
}
