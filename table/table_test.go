package table

import (
	"errors"
	"math"
	"testing"

	"github.com/ByLCY/quire/graphics"
	"github.com/ByLCY/quire/layout"
	"github.com/ByLCY/quire/page"
	"github.com/ByLCY/quire/surface"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func sameFloats(t *testing.T, label string, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s 数量期望 %d，实际 %d: %v", label, len(want), len(got), got)
	}
	for i := range want {
		if !approx(got[i], want[i]) {
			t.Fatalf("%s[%d] 期望 %v，实际 %v", label, i, want[i], got[i])
		}
	}
}

func testHeader(t *testing.T) *Header {
	t.Helper()
	spec := []struct {
		w     float64
		title string
	}{
		{45, "lorem"},
		{25, "ipsum dolor sit amet"},
		{30, "consectetur adipisicing elit"},
		{25, "incididunt ut labore"},
		{30, "et dolore magna aliqua ut"},
		{25, "enim ad minim veniam"},
	}
	var cols []Column
	for _, s := range spec {
		c, err := NewColumn(s.w, s.title)
		if err != nil {
			t.Fatal(err)
		}
		cols = append(cols, c)
	}
	h, err := NewHeader(15, cols...)
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func newTable(t *testing.T, align Align) (*Table, *page.Canvas, *surface.Recorder) {
	t.Helper()
	rec := surface.NewRecorder(nil)
	c := page.NewA4(rec)
	rec.Reset()
	tbl, err := New(c, testHeader(t), 10, align)
	if err != nil {
		t.Fatalf("建表失败: %v", err)
	}
	return tbl, c, rec
}

func mustAlign(t *testing.T, h layout.HAlign, v layout.VAlign, m Margins) Align {
	t.Helper()
	a, err := NewAlign(h, v, m)
	if err != nil {
		t.Fatalf("对齐参数非法: %v", err)
	}
	return a
}

var (
	centerXs = []float64{42.51968503937, 170.07874015748024, 240.94488188976374, 325.9842519685039, 396.8503937007874, 481.8897637795275, 552.755905511811}
	leftXs   = []float64{1.8425196850393704, 129.40157480314963, 200.2677165354331, 285.3070866141733, 356.17322834645677, 441.2125984251969, 512.0787401574804}
	rightXs  = []float64{83.19685039370064, 210.75590551181088, 281.62204724409435, 366.6614173228345, 437.527559055118, 522.5669291338581, 593.4330708661416}
)

func TestAlignDefaults(t *testing.T) {
	a := DefaultAlign()
	if a.Horizontal != layout.Center || a.Vertical != layout.Middle || a.Margins != (Margins{}) {
		t.Fatalf("默认对齐错误: %+v", a)
	}
}

func TestAlignRejectsMargins(t *testing.T) {
	for _, v := range []layout.VAlign{layout.Top, layout.Middle, layout.Bottom} {
		bad := []struct {
			h layout.HAlign
			m Margins
		}{
			{layout.Center, Margins{Left: 0.1}},
			{layout.Center, Margins{Right: 0.1}},
			{layout.Left, Margins{Right: 0.1}},
			{layout.Right, Margins{Left: 0.1}},
		}
		for _, b := range bad {
			if _, err := NewAlign(b.h, v, b.m); !errors.Is(err, layout.ErrInvalidArgument) {
				t.Fatalf("%s/%s %+v 应被拒绝", b.h, v, b.m)
			}
		}
	}
	if _, err := NewAlign(layout.Left, layout.Top, Margins{Top: -1}); err == nil {
		t.Fatalf("负外边距应被拒绝")
	}
}

func TestAlignMirrorsMiddleMargin(t *testing.T) {
	a := mustAlign(t, layout.Center, layout.Middle, Margins{Top: 5.5})
	if a.Margins != (Margins{Top: 5.5, Bottom: 5.5}) {
		t.Fatalf("上外边距应镜像到下: %+v", a.Margins)
	}
	a = mustAlign(t, layout.Center, layout.Middle, Margins{Bottom: 5.5})
	if a.Margins != (Margins{Top: 5.5, Bottom: 5.5}) {
		t.Fatalf("下外边距应镜像到上: %+v", a.Margins)
	}
	a = mustAlign(t, layout.Left, layout.Top, Margins{Left: 0.1, Top: 0.3, Bottom: 0.4})
	if a.Margins != (Margins{Left: 0.1, Top: 0.3, Bottom: 0.4}) {
		t.Fatalf("非居中不应镜像: %+v", a.Margins)
	}
}

func TestColumnAndHeader(t *testing.T) {
	if _, err := NewColumn(0, "title"); !errors.Is(err, layout.ErrInvalidArgument) {
		t.Fatalf("零宽列应报错")
	}
	c1, _ := NewColumn(10, "lorem")
	c2, _ := NewColumn(20, "ipsum")
	c3, _ := NewColumn(15, "dolor")
	if _, err := NewHeader(0, c1); err == nil {
		t.Fatalf("零高表头应报错")
	}
	if _, err := NewHeader(10); err == nil {
		t.Fatalf("空表头应报错")
	}
	h, err := NewHeader(10, c1, c2, c3)
	if err != nil {
		t.Fatal(err)
	}
	if h.TotalWidth() != 45 || h.Width(2) != 30 || h.Width(0) != 0 {
		t.Fatalf("表头宽度错误: %v %v", h.TotalWidth(), h.Width(2))
	}
}

func TestTableDefaultGeometry(t *testing.T) {
	tbl, _, rec := newTable(t, DefaultAlign())
	if tbl.NumRows() != 28 || tbl.NumCols() != 6 {
		t.Fatalf("期望 28 行 6 列，实际 %d 行 %d 列", tbl.NumRows(), tbl.NumCols())
	}
	if !approx(tbl.X(), 15) || !approx(tbl.Y(), 1) || tbl.Width() != 180 || tbl.Height() != 295 {
		t.Fatalf("表格边界错误: x=%v y=%v w=%v h=%v", tbl.X(), tbl.Y(), tbl.Width(), tbl.Height())
	}

	grids := rec.Named("grid")
	if len(grids) != 2 {
		t.Fatalf("应先画表体再画表头，实际 %d 次 grid", len(grids))
	}
	bodyYs := []float64{796.5354330708662, 768.1889763779528, 739.8425196850394, 711.496062992126, 683.1496062992126, 654.8031496062991, 626.4566929133858, 598.1102362204724, 569.763779527559, 541.4173228346457, 513.0708661417323, 484.72440944881885, 456.3779527559055, 428.03149606299206, 399.6850393700787, 371.33858267716533, 342.9921259842519, 314.64566929133855, 286.29921259842513, 257.95275590551176, 229.60629921259837, 201.25984251968498, 172.9133858267716, 144.5669291338582, 116.22047244094482, 87.87401574803134, 59.527559055117955, 31.181102362204566, 2.8346456692911777}
	sameFloats(t, "body xs", grids[0].Args[0].([]float64), centerXs)
	sameFloats(t, "body ys", grids[0].Args[1].([]float64), bodyYs)
	sameFloats(t, "header xs", grids[1].Args[0].([]float64), centerXs)
	sameFloats(t, "header ys", grids[1].Args[1].([]float64), []float64{839.0551181102363, 796.5354330708662})

	// 标题文本起点 x 即各列左边界
	begins := rec.Named("beginText")
	if len(begins) != 6 {
		t.Fatalf("应绘制 6 个列标题，实际 %d", len(begins))
	}
	for i, b := range begins {
		if !approx(b.Args[0].(float64), centerXs[i]) {
			t.Fatalf("第 %d 列标题 x 期望 %v，实际 %v", i, centerXs[i], b.Args[0])
		}
	}
	// "lorem" 单行，在 15mm 表头内垂直居中
	size := layout.Normalize(HeaderFontSize)
	wantY := layout.Normalize(297-1) - 0.75*size - (layout.Normalize(15)-size)/2
	if !approx(begins[0].Args[1].(float64), wantY) {
		t.Fatalf("首列标题 y 期望 %v，实际 %v", wantY, begins[0].Args[1])
	}
	font := rec.Named("text.setFont")[0].Args
	if font[0] != "SansBold" || !approx(font[1].(float64), size) {
		t.Fatalf("标题应使用 3mm 粗体无衬线: %v", font)
	}
}

func TestTableAlignmentFixtures(t *testing.T) {
	topYs := []float64{797.5275590551181, 769.1811023622047, 740.8346456692913, 712.4881889763778, 684.1417322834644, 655.7952755905511, 627.4488188976377, 599.1023622047243, 570.7559055118109, 542.4094488188975, 514.0629921259841, 485.71653543307076, 457.37007874015734, 429.023622047244, 400.67716535433055, 372.3307086614172, 343.98425196850377, 315.6377952755904, 287.29133858267704, 258.9448818897636, 230.59842519685023, 202.25196850393687, 173.90551181102347, 145.55905511811008}
	middleYs := []float64{711.496062992126, 683.1496062992126, 654.8031496062991, 626.4566929133858, 598.1102362204724, 569.763779527559, 541.4173228346457, 513.0708661417323, 484.72440944881885, 456.3779527559055, 428.03149606299206, 399.6850393700787, 371.33858267716533, 342.9921259842519, 314.64566929133855, 286.29921259842513, 257.95275590551176, 229.60629921259837, 201.25984251968498, 172.9133858267716, 144.5669291338582, 116.22047244094482, 87.87401574803134}
	bottomYs := []float64{653.5275590551182, 625.1811023622048, 596.8346456692914, 568.4881889763781, 540.1417322834646, 511.7952755905513, 483.44881889763786, 455.1023622047245, 426.7559055118111, 398.4094488188977, 370.0629921259843, 341.71653543307093, 313.37007874015757, 285.02362204724415, 256.6771653543308, 228.3307086614174, 199.984251968504, 171.6377952755906, 143.2913385826772, 114.94488188976382, 86.59842519685043, 58.25196850393704, 29.905511811023658, 1.5590551181102685}
	topHeader := []float64{840.0472440944882, 797.5275590551181}
	middleHeader := []float64{754.0157480314962, 711.496062992126}
	bottomHeader := []float64{696.0472440944883, 653.5275590551182}

	cases := []struct {
		name     string
		h        layout.HAlign
		v        layout.VAlign
		m        Margins
		xs       []float64
		ys, head []float64
	}{
		{"top-left", layout.Left, layout.Top, Margins{Left: 0.5, Top: 0.5, Bottom: 50}, leftXs, topYs, topHeader},
		{"middle-left", layout.Left, layout.Middle, Margins{Left: 0.5, Top: 10, Bottom: 50}, leftXs, middleYs, middleHeader},
		{"bottom-left", layout.Left, layout.Bottom, Margins{Left: 0.5, Top: 50, Bottom: 0.5}, leftXs, bottomYs, bottomHeader},
		{"top-right", layout.Right, layout.Top, Margins{Right: 0.5, Top: 0.5, Bottom: 50}, rightXs, topYs, topHeader},
		{"middle-right", layout.Right, layout.Middle, Margins{Right: 0.5, Top: 10, Bottom: 50}, rightXs, middleYs, middleHeader},
		{"bottom-right", layout.Right, layout.Bottom, Margins{Right: 0.5, Top: 50, Bottom: 0.5}, rightXs, bottomYs, bottomHeader},
		{"top-center", layout.Center, layout.Top, Margins{Top: 0.5, Bottom: 50}, centerXs, topYs, topHeader},
		{"middle-center", layout.Center, layout.Middle, Margins{Top: 10, Bottom: 50}, centerXs, middleYs, middleHeader},
		{"bottom-center", layout.Center, layout.Bottom, Margins{Top: 50, Bottom: 0.5}, centerXs, bottomYs, bottomHeader},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, rec := newTable(t, mustAlign(t, c.h, c.v, c.m))
			grids := rec.Named("grid")
			sameFloats(t, "body xs", grids[0].Args[0].([]float64), c.xs)
			sameFloats(t, "body ys", grids[0].Args[1].([]float64), c.ys)
			sameFloats(t, "header xs", grids[1].Args[0].([]float64), c.xs)
			sameFloats(t, "header ys", grids[1].Args[1].([]float64), c.head)
		})
	}
}

func TestTableRendersWithFixedPresentation(t *testing.T) {
	_, _, rec := newTable(t, DefaultAlign())
	var lastWidth float64
	grid := 0
	for _, call := range rec.Calls {
		switch call.Name {
		case "setLineWidth":
			lastWidth = call.Args[0].(float64)
		case "grid":
			want := layout.Normalize(BodyLineWidth)
			if grid > 0 {
				want = layout.Normalize(HeaderLineWidth)
			}
			if !approx(lastWidth, want) {
				t.Fatalf("第 %d 次 grid 线宽期望 %v，实际 %v", grid, want, lastWidth)
			}
			grid++
		}
	}
	caps := rec.Named("setLineCap")
	found := false
	for _, c := range caps {
		if c.Args[0] == int(graphics.SquareCap) {
			found = true
		}
	}
	if !found {
		t.Fatalf("绘制表格时应使用方形线端")
	}
}

func TestTableRestoresCallerState(t *testing.T) {
	rec := surface.NewRecorder(nil)
	c := page.NewA4(rec)
	_ = c.Stroke().SetColor("red")
	c.Stroke().SetLineWidth(1.5)
	_ = c.Fill().SetAlpha(0.4)
	_ = c.Font().SetFamily(graphics.Mono)
	_ = c.Font().SetSizePts(20)
	stroke, fill, font := *c.Stroke(), *c.Fill(), *c.Font()

	if _, err := New(c, testHeader(t), 10, DefaultAlign()); err != nil {
		t.Fatal(err)
	}
	if *c.Stroke() != stroke || *c.Fill() != fill || *c.Font() != font {
		t.Fatalf("建表后应恢复调用方的图形状态")
	}
	widths := rec.Named("setLineWidth")
	if last := widths[len(widths)-1].Args[0].(float64); !approx(last, layout.Normalize(1.5)) {
		t.Fatalf("恢复后应重新下发调用方线宽，实际 %v", last)
	}
}

func TestCell(t *testing.T) {
	tbl, _, rec := newTable(t, DefaultAlign())
	cases := []struct {
		name   string
		opts   []CellOption
		wantX  float64
		wantY  float64
		origin bool
	}{
		{"default", nil, 242.3622047244094, layout.Normalize(297-66.5) - 9, true},
		{"center-middle", []CellOption{WithAlign(layout.Center, layout.Middle)}, 242.3622047244094, layout.Normalize(297-66.5) - 9 - (layout.Normalize(9)-12)/2, true},
		{"no-padding", []CellOption{WithPadding(0)}, 240.94488188976374, layout.Normalize(297-66) - 9, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec.Reset()
			if err := tbl.Cell(2, 5, "lorem ipsum", c.opts...); err != nil {
				t.Fatal(err)
			}
			b := rec.Named("beginText")[0].Args
			if !approx(b[0].(float64), c.wantX) || !approx(b[1].(float64), c.wantY) {
				t.Fatalf("beginText 期望 (%v, %v)，实际 %v", c.wantX, c.wantY, b)
			}
		})
	}
}

func TestCellUsesCurrentFont(t *testing.T) {
	tbl, c, rec := newTable(t, DefaultAlign())
	_ = c.Font().SetWeight(graphics.Bold)
	_ = c.Font().SetStyle(graphics.Italic)
	_ = c.Font().SetSizeMM(5.5)
	rec.Reset()
	if err := tbl.Cell(2, 5, "lorem ipsum"); err != nil {
		t.Fatal(err)
	}
	font := rec.Named("text.setFont")[0].Args
	if font[0] != "SerifBoldItalic" || !approx(font[1].(float64), 15.590551181102363) || !approx(font[2].(float64), 18.708661417322833) {
		t.Fatalf("单元格应使用当前字体: %v", font)
	}
}

func TestCellRejectsOutOfRange(t *testing.T) {
	tbl, _, rec := newTable(t, DefaultAlign())
	rec.Reset()
	for _, idx := range [][2]int{{6, 0}, {-1, 0}, {0, 28}, {0, -1}} {
		if err := tbl.Cell(idx[0], idx[1], "lorem ipsum"); !errors.Is(err, layout.ErrInvalidArgument) {
			t.Fatalf("单元格 %v 应被拒绝", idx)
		}
	}
	if len(rec.Calls) != 0 {
		t.Fatalf("越界单元格不应调用后端")
	}
}

func TestTableTooSmallPage(t *testing.T) {
	rec := surface.NewRecorder(nil)
	c, err := page.New(rec, 210, 20)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := New(c, testHeader(t), 10, DefaultAlign()); !errors.Is(err, layout.ErrInvalidArgument) {
		t.Fatalf("放不下一行的页面应报错: %v", err)
	}
	if _, err := New(c, testHeader(t), 0, DefaultAlign()); !errors.Is(err, layout.ErrInvalidArgument) {
		t.Fatalf("零行高应报错")
	}
}

func TestCapacity(t *testing.T) {
	h := testHeader(t)
	if got := Capacity(297, h, 10, DefaultAlign()); got != 28 {
		t.Fatalf("A4 默认容量期望 28，实际 %d", got)
	}
	a := mustAlign(t, layout.Center, layout.Middle, Margins{Top: 10})
	if got := Capacity(297, h, 11, a); got != 23 {
		t.Fatalf("上下各 10mm、行高 11mm 期望 23 行，实际 %d", got)
	}
}
