// Package canvasrenderer 基于 github.com/tdewolff/canvas 实现 surface.Surface，
// 输出 PDF。引擎给出的坐标为点、原点在左下角；canvas 内部使用毫米，
// 默认坐标系同样以左下角为原点，因此只需做 pt→mm 换算。
package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/quire/fonts"
	"github.com/ByLCY/quire/graphics"
	"github.com/ByLCY/quire/layout"
	"github.com/ByLCY/quire/surface"
)

// Renderer draws every page onto a canvas and writes them as one PDF on Save.
type Renderer struct {
	width, height float64 // mm

	pages []*canvas.Canvas
	page  *canvas.Canvas
	ctx   *canvas.Context

	fill   color.RGBA
	stroke color.RGBA
	join   graphics.LineJoin
	miter  float64 // mm, 0 keeps the canvas default
	meta   surface.Metadata

	// 绘制方法没有错误返回值，首个错误在 Save 时返回
	err error

	fontMu       sync.Mutex
	fontFamilies map[string]*canvas.FontFamily
}

var _ surface.Surface = (*Renderer)(nil)

// NewRenderer creates a renderer for pages of the given size in millimeters.
func NewRenderer(widthMM, heightMM float64) (*Renderer, error) {
	if !(widthMM > 0) || !(heightMM > 0) {
		return nil, layout.Invalidf("页面尺寸必须大于 0: %gx%g", widthMM, heightMM)
	}
	fonts.Register()
	r := &Renderer{
		width:        widthMM,
		height:       heightMM,
		fontFamilies: map[string]*canvas.FontFamily{},
	}
	r.newPage()
	return r, nil
}

func (r *Renderer) newPage() {
	r.page = canvas.New(r.width, r.height)
	r.ctx = canvas.NewContext(r.page)
	r.fill = color.RGBA{A: 0xff}
	r.stroke = color.RGBA{A: 0xff}
	r.ctx.SetFillColor(r.fill)
	r.ctx.SetStrokeColor(r.stroke)
	r.join, r.miter = graphics.MiterJoin, 0
}

func (r *Renderer) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// toMm 将点(pt)转换为毫米(mm)。
func toMm(pt float64) float64 { return layout.Denormalize(pt) }

// toPt 将毫米(mm)转换为点(pt)。
func toPt(mm float64) float64 { return layout.Normalize(mm) }

func (r *Renderer) family(name string) (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if family, ok := r.fontFamilies[name]; ok {
		return family, nil
	}
	data, err := fonts.Program(name)
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily(name)
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载字体 %s 失败: %w", name, err)
	}
	r.fontFamilies[name] = family
	return family, nil
}

// fontFace 的 size 为 pt，与 canvas 的约定一致。
func (r *Renderer) fontFace(name string, size float64, col color.Color) (*canvas.FontFace, error) {
	family, err := r.family(name)
	if err != nil {
		return nil, err
	}
	return family.Face(size, col, canvas.FontRegular, canvas.FontNormal), nil
}

func (r *Renderer) MeasureText(text, font string, size float64) float64 {
	face, err := r.fontFace(font, size, r.fill)
	if err != nil {
		r.fail(err)
		return surface.DefaultMetrics.MeasureText(text, font, size)
	}
	return toPt(face.TextWidth(text))
}

func (r *Renderer) FontAscent(font string, size float64) float64 {
	face, err := r.fontFace(font, size, r.fill)
	if err != nil {
		r.fail(err)
		return surface.DefaultMetrics.FontAscent(font, size)
	}
	return toPt(face.Metrics().Ascent)
}

func toRGBA(value string, alpha float64) (color.RGBA, error) {
	c, err := graphics.ParseColor(value)
	if err != nil {
		return color.RGBA{}, err
	}
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, alpha), nil
}

func (r *Renderer) SetFillColor(value string, alpha float64) {
	c, err := toRGBA(value, alpha)
	if err != nil {
		r.fail(err)
		return
	}
	r.fill = c
	r.ctx.SetFillColor(c)
}

func (r *Renderer) SetStrokeColor(value string, alpha float64) {
	c, err := toRGBA(value, alpha)
	if err != nil {
		r.fail(err)
		return
	}
	r.stroke = c
	r.ctx.SetStrokeColor(c)
}

func (r *Renderer) SetLineWidth(pts float64) { r.ctx.SetStrokeWidth(toMm(pts)) }

func (r *Renderer) SetLineCap(lineCap int) {
	switch graphics.LineCap(lineCap) {
	case graphics.RoundCap:
		r.ctx.SetStrokeCapper(canvas.RoundCap)
	case graphics.SquareCap:
		r.ctx.SetStrokeCapper(canvas.SquareCap)
	default:
		r.ctx.SetStrokeCapper(canvas.ButtCap)
	}
}

func (r *Renderer) SetLineJoin(join int) {
	r.join = graphics.LineJoin(join)
	r.applyJoin()
}

// SetMiterLimit only affects the miter join.
func (r *Renderer) SetMiterLimit(pts float64) {
	r.miter = toMm(pts)
	r.applyJoin()
}

func (r *Renderer) applyJoin() {
	switch r.join {
	case graphics.RoundJoin:
		r.ctx.SetStrokeJoiner(canvas.RoundJoin)
	case graphics.BevelJoin:
		r.ctx.SetStrokeJoiner(canvas.BevelJoin)
	default:
		if r.miter > 0 {
			r.ctx.SetStrokeJoiner(canvas.MiterJoiner{GapJoiner: canvas.BevelJoin, Limit: r.miter})
		} else {
			r.ctx.SetStrokeJoiner(canvas.MiterJoin)
		}
	}
}

func (r *Renderer) SetDash(pattern []int) {
	dashes := make([]float64, 0, len(pattern))
	for _, d := range pattern {
		dashes = append(dashes, toMm(float64(d)))
	}
	r.ctx.SetDashes(0, dashes...)
}

// strokeOnly draws p with the current stroke and no fill.
func (r *Renderer) strokeOnly(x, y float64, p *canvas.Path) {
	r.ctx.SetFillColor(canvas.Transparent)
	r.ctx.DrawPath(x, y, p)
	r.ctx.SetFillColor(r.fill)
}

func (r *Renderer) Rect(x, y, width, height float64, stroke, fill bool) {
	if !stroke && !fill {
		return
	}
	if !stroke {
		r.ctx.SetStrokeColor(canvas.Transparent)
		defer r.ctx.SetStrokeColor(r.stroke)
	}
	if !fill {
		r.strokeOnly(toMm(x), toMm(y), canvas.Rectangle(toMm(width), toMm(height)))
		return
	}
	r.ctx.DrawPath(toMm(x), toMm(y), canvas.Rectangle(toMm(width), toMm(height)))
}

func (r *Renderer) Line(x1, y1, x2, y2 float64) {
	p := &canvas.Path{}
	p.MoveTo(toMm(x1), toMm(y1))
	p.LineTo(toMm(x2), toMm(y2))
	r.strokeOnly(0, 0, p)
}

func (r *Renderer) Path(moveTo surface.Point, lineTo []surface.Point) {
	p := &canvas.Path{}
	p.MoveTo(toMm(moveTo.X), toMm(moveTo.Y))
	for _, pt := range lineTo {
		p.LineTo(toMm(pt.X), toMm(pt.Y))
	}
	r.strokeOnly(0, 0, p)
}

// Grid 绘制竖线 xs 与横线 ys，各自跨越另一组的首尾。
func (r *Renderer) Grid(xs, ys []float64) {
	if len(xs) == 0 || len(ys) == 0 {
		return
	}
	p := &canvas.Path{}
	top, bottom := toMm(ys[0]), toMm(ys[len(ys)-1])
	for _, x := range xs {
		p.MoveTo(toMm(x), top)
		p.LineTo(toMm(x), bottom)
	}
	left, right := toMm(xs[0]), toMm(xs[len(xs)-1])
	for _, y := range ys {
		p.MoveTo(left, toMm(y))
		p.LineTo(right, toMm(y))
	}
	r.strokeOnly(0, 0, p)
}

// ShowPage closes the current page; the next one starts with default paint.
func (r *Renderer) ShowPage() {
	r.pages = append(r.pages, r.page)
	r.newPage()
}

func (r *Renderer) PageNumber() int { return len(r.pages) + 1 }

func (r *Renderer) SetMetadata(meta surface.Metadata) { r.meta = meta }

// Save writes all pages, including the open one, into a PDF.
func (r *Renderer) Save() ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	pages := append(append([]*canvas.Canvas(nil), r.pages...), r.page)

	var buf bytes.Buffer
	writer := pdf.New(&buf, r.width, r.height, nil)
	writer.SetInfo(r.meta.Title, r.meta.Subject, r.meta.Keywords, r.meta.Author, r.meta.Creator)
	for i, page := range pages {
		if i > 0 {
			writer.NewPage(r.width, r.height)
		}
		page.RenderTo(writer)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}
