package canvasrenderer

import (
	"github.com/tdewolff/canvas"

	"github.com/ByLCY/quire/graphics"
	"github.com/ByLCY/quire/surface"
)

type textLine struct {
	x, y float64 // pt
	text string
}

// textObject collects lines until DrawText; positions are in points.
type textObject struct {
	x, y    float64
	font    string
	size    float64
	leading float64
	mode    graphics.RenderMode

	charSpace float64
	wordSpace float64
	rise      float64

	lines []textLine
}

func (t *textObject) SetFont(name string, size, leading float64) {
	t.font, t.size, t.leading = name, size, leading
}

func (t *textObject) SetTextRenderMode(mode int) { t.mode = graphics.RenderMode(mode) }
func (t *textObject) SetCharSpace(pts float64)   { t.charSpace = pts }
func (t *textObject) SetWordSpace(pts float64)   { t.wordSpace = pts }
func (t *textObject) SetRise(pts float64)        { t.rise = pts }
func (t *textObject) SetTextOrigin(x, y float64) { t.x, t.y = x, y }
func (t *textObject) Y() float64                 { return t.y }

func (t *textObject) TextLine(s string) {
	t.lines = append(t.lines, textLine{x: t.x, y: t.y, text: s})
	t.y -= t.leading
}

func (r *Renderer) BeginText(x, y float64) surface.TextObject {
	return &textObject{x: x, y: y, size: 12, leading: 12}
}

// DrawText 在当前页绘制文本对象中的所有行。
// 裁剪类渲染模式按对应的可见模式绘制，不建立裁剪路径。
func (r *Renderer) DrawText(obj surface.TextObject) {
	t, ok := obj.(*textObject)
	if !ok || t.font == "" {
		return
	}
	mode := t.mode % 4
	if mode == graphics.RenderInvisible {
		return
	}
	face, err := r.fontFace(t.font, t.size, r.fill)
	if err != nil {
		r.fail(err)
		return
	}
	for _, line := range t.lines {
		if line.text == "" {
			continue
		}
		y := line.y + t.rise
		if t.charSpace == 0 && t.wordSpace == 0 && mode == graphics.RenderFill {
			r.ctx.DrawText(toMm(line.x), toMm(y), canvas.NewTextLine(face, line.text, canvas.Left))
			continue
		}
		r.drawSpaced(face, line.text, line.x, y, t, mode)
	}
}

// drawSpaced places glyphs one by one so character and word spacing apply.
// Stroked modes draw glyph outlines as paths.
func (r *Renderer) drawSpaced(face *canvas.FontFace, text string, x, y float64, t *textObject, mode graphics.RenderMode) {
	for _, ch := range text {
		s := string(ch)
		if mode == graphics.RenderFill {
			r.ctx.DrawText(toMm(x), toMm(y), canvas.NewTextLine(face, s, canvas.Left))
		} else if p, _, err := face.ToPath(s); err == nil {
			r.drawGlyphPath(toMm(x), toMm(y), p, mode == graphics.RenderFillStroke)
		} else {
			r.fail(err)
			return
		}
		x += toPt(face.TextWidth(s)) + t.charSpace
		if ch == ' ' {
			x += t.wordSpace
		}
	}
}

func (r *Renderer) drawGlyphPath(x, y float64, p *canvas.Path, filled bool) {
	if !filled {
		r.strokeOnly(x, y, p)
		return
	}
	r.ctx.DrawPath(x, y, p)
}
