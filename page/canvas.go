// Package page 提供毫米坐标下的画布：绘图原语、文本排版与页面管理。
// 画布把所有调用换算为点、翻转 y 轴后交给 surface 后端。
package page

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/ByLCY/quire/graphics"
	"github.com/ByLCY/quire/layout"
	"github.com/ByLCY/quire/surface"
)

// A4 page size in millimeters.
const (
	A4Width  = 210.0
	A4Height = 297.0
)

// Canvas 一个文档对应一个画布，页面尺寸固定。不支持并发使用。
type Canvas struct {
	backend surface.Surface
	width   float64 // pt
	height  float64 // pt
	state   *graphics.State
	pages   int
}

// New creates a canvas of the given size in millimeters. The default
// stroke and fill are sent to the backend immediately.
func New(backend surface.Surface, widthMM, heightMM float64) (*Canvas, error) {
	if !(widthMM > 0) || !(heightMM > 0) {
		return nil, layout.Invalidf("页面尺寸必须大于 0: %gx%g mm", widthMM, heightMM)
	}
	return &Canvas{
		backend: backend,
		width:   layout.Normalize(widthMM),
		height:  layout.Normalize(heightMM),
		state:   graphics.NewState(backend),
	}, nil
}

// NewA4 creates a portrait A4 canvas.
func NewA4(backend surface.Surface) *Canvas {
	c, _ := New(backend, A4Width, A4Height)
	return c
}

func (c *Canvas) Width() float64     { return layout.Denormalize(c.width) }
func (c *Canvas) Height() float64    { return layout.Denormalize(c.height) }
func (c *Canvas) WidthPts() float64  { return c.width }
func (c *Canvas) HeightPts() float64 { return c.height }

// Backend returns the surface the canvas draws on.
func (c *Canvas) Backend() surface.Surface { return c.backend }

func (c *Canvas) Stroke() *graphics.Stroke { return c.state.Stroke() }
func (c *Canvas) Fill() *graphics.Fill     { return c.state.Fill() }
func (c *Canvas) Font() *graphics.Font     { return c.state.Font() }

// Pages returns the number of pages started with AddPage.
func (c *Canvas) Pages() int { return c.pages }

// PageNumber reports the backend's current page number.
func (c *Canvas) PageNumber() int { return c.backend.PageNumber() }

// AddPage starts a new page. The first call only counts; later calls close
// the current page and re-apply stroke and fill, which the backend resets.
// The font is set on every text call and is not re-applied.
func (c *Canvas) AddPage() {
	if c.pages > 0 {
		c.backend.ShowPage()
		c.state.Stroke().Apply()
		c.state.Fill().Apply()
	}
	c.pages++
}

func (c *Canvas) PushState()       { c.state.Push() }
func (c *Canvas) PopState()        { c.state.Pop() }
func (c *Canvas) SetDefaultState() { c.state.SetDefault() }

// y 把自顶向下的毫米坐标翻转为后端坐标（点）。
func (c *Canvas) y(mm float64) float64 { return layout.Normalize(c.Height() - mm) }

// Rect draws a rectangle whose top-left corner is (x, y).
func (c *Canvas) Rect(x, y, width, height float64, stroke, fill bool) {
	c.backend.Rect(
		layout.Normalize(x),
		layout.Normalize(c.Height()-y-height),
		layout.Normalize(width),
		layout.Normalize(height),
		stroke, fill)
}

func (c *Canvas) Line(x1, y1, x2, y2 float64) {
	c.backend.Line(layout.Normalize(x1), c.y(y1), layout.Normalize(x2), c.y(y2))
}

// Polyline draws connected segments through (x0, y0, x1, y1, ...).
// At least two points are required.
func (c *Canvas) Polyline(coords ...float64) error {
	if len(coords)%2 != 0 || len(coords) < 4 {
		return layout.Invalidf("折线需要偶数个且不少于 4 个坐标，实际 %d 个", len(coords))
	}
	points := make([]surface.Point, 0, len(coords)/2)
	for i := 0; i < len(coords); i += 2 {
		points = append(points, surface.Point{X: layout.Normalize(coords[i]), Y: c.y(coords[i+1])})
	}
	c.backend.Path(points[0], points)
	return nil
}

// Grid draws vertical lines at xs and horizontal lines at ys, spanning
// from the first to the last value of the other list.
func (c *Canvas) Grid(xs, ys []float64) error {
	if len(xs) < 2 || len(ys) < 2 {
		return layout.Invalidf("网格至少需要两条竖线与两条横线")
	}
	px := make([]float64, len(xs))
	for i, x := range xs {
		px[i] = layout.Normalize(x)
	}
	py := make([]float64, len(ys))
	for i, y := range ys {
		py[i] = c.y(y)
	}
	c.backend.Grid(px, py)
	return nil
}

// TextBox 文本框参数。零值表示左上对齐、不换行、不限宽高。
type TextBox struct {
	Width    float64 // mm, 0 表示未给定
	Height   float64 // mm, 0 表示未给定
	HAlign   layout.HAlign
	VAlign   layout.VAlign
	WordWrap bool
}

// Text draws (possibly multi-line) text whose visual top-left is (x, y)
// and returns the x coordinate, in millimeters, right of the widest line.
func (c *Canvas) Text(text string, x, y float64, box TextBox) (float64, error) {
	if !box.HAlign.Valid() {
		return 0, layout.Invalidf("无效的水平对齐 %d", int(box.HAlign))
	}
	if !box.VAlign.Valid() {
		return 0, layout.Invalidf("无效的垂直对齐 %d", int(box.VAlign))
	}
	if box.HAlign != layout.Left && !(box.Width > 0) {
		return 0, layout.Invalidf("水平对齐 %s 需要指定宽度", box.HAlign)
	}
	if box.VAlign != layout.Top && !(box.Height > 0) {
		return 0, layout.Invalidf("垂直对齐 %s 需要指定高度", box.VAlign)
	}
	if box.WordWrap && !(box.Width > 0) {
		return 0, layout.Invalidf("自动换行需要指定宽度")
	}

	var lines []string
	if box.WordWrap {
		lines = c.Wrap(text, box.Width)
	} else {
		lines = strings.Split(text, "\n")
	}

	font := c.state.Font()
	n := float64(len(lines))
	textHeight := font.SizePts()*n + font.InterlinePts()*(n-1)

	xPts := layout.Normalize(x)
	yPts := c.y(y) - font.AscentPts(c.backend)
	if box.Height != 0 {
		yPts -= box.VAlign.Offset(textHeight, layout.Normalize(box.Height))
	}

	obj := c.backend.BeginText(xPts, yPts)
	obj.SetFont(font.Name(), font.SizePts(), font.LeadingPts())
	obj.SetTextRenderMode(int(font.RenderMode()))
	obj.SetCharSpace(font.CharSpacePts())
	obj.SetWordSpace(font.WordSpacePts())
	obj.SetRise(font.RisePts())

	cursor := xPts + c.widestPts(lines)
	for _, line := range lines {
		if box.Width != 0 {
			w := c.MeasurePts(line)
			lx := layout.Normalize(x) + box.HAlign.Offset(w, layout.Normalize(box.Width))
			cursor = math.Max(cursor, lx+w)
			obj.SetTextOrigin(lx, obj.Y())
		}
		obj.TextLine(line)
	}
	c.backend.DrawText(obj)

	return layout.Denormalize(cursor), nil
}

// Wrap splits text into lines that fit width (mm) with the current font.
// Starting from all remaining words, the last word is dropped until the
// candidate fits or a single word remains; single words are never split.
func (c *Canvas) Wrap(text string, width float64) []string {
	words := strings.Fields(text)
	limit := layout.Normalize(width)

	var lines []string
	i, j := 0, len(words)
	for i < j {
		line := strings.Join(words[i:j], " ")
		if c.MeasurePts(line) <= limit || i+1 == j {
			lines = append(lines, line)
			i, j = j, len(words)
		} else {
			j--
		}
	}
	if len(lines) == 0 {
		// 空文本仍占一行
		return []string{""}
	}
	return lines
}

// MeasurePts returns the width of a single line in points, including
// character and word spacing of the current font.
func (c *Canvas) MeasurePts(line string) float64 {
	font := c.state.Font()
	return c.backend.MeasureText(line, font.Name(), font.SizePts()) +
		font.CharSpacePts()*float64(utf8.RuneCountInString(line)-1) +
		font.WordSpacePts()*float64(len(strings.Fields(line))-1)
}

// Measure is MeasurePts in millimeters.
func (c *Canvas) Measure(line string) float64 { return layout.Denormalize(c.MeasurePts(line)) }

func (c *Canvas) widestPts(lines []string) float64 {
	widest := math.Inf(-1)
	for _, l := range lines {
		widest = math.Max(widest, c.MeasurePts(l))
	}
	return widest
}
