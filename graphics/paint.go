package graphics

import (
	"math"

	"github.com/ByLCY/quire/layout"
)

// DefaultColor is the color of a fresh Fill or Stroke.
const DefaultColor = "#000000"

// FillTarget receives interior paint.
type FillTarget interface {
	SetFillColor(color string, alpha float64)
}

// StrokeTarget receives outline paint and line geometry.
type StrokeTarget interface {
	SetStrokeColor(color string, alpha float64)
	SetLineWidth(pts float64)
	SetLineCap(lineCap int)
	SetLineJoin(join int)
	SetMiterLimit(pts float64)
	SetDash(pattern []int)
}

// paint 是颜色加透明度；apply 钩子决定发送到填充还是描边。
type paint struct {
	color string
	alpha float64
}

func defaultPaint() paint { return paint{color: DefaultColor, alpha: 1} }

func (p paint) Color() string  { return p.color }
func (p paint) Alpha() float64 { return p.alpha }

func (p *paint) setColor(value string) error {
	if _, err := ParseColor(value); err != nil {
		return err
	}
	p.color = value
	return nil
}

func (p *paint) setAlpha(value float64) error {
	if math.IsNaN(value) || value < 0 || value > 1 {
		return layout.Invalidf("透明度 %g 超出 [0,1]", value)
	}
	p.alpha = value
	return nil
}

// Fill 内部填充色。
type Fill struct {
	paint
	target FillTarget
}

// NewFill returns the default fill (#000000, opaque) and sends it to target.
func NewFill(target FillTarget) Fill {
	f := Fill{paint: defaultPaint(), target: target}
	f.Apply()
	return f
}

// Apply re-sends color and alpha, e.g. after a page break or state restore.
func (f Fill) Apply() {
	if f.target != nil {
		f.target.SetFillColor(f.color, f.alpha)
	}
}

func (f *Fill) SetColor(value string) error {
	if err := f.setColor(value); err != nil {
		return err
	}
	f.Apply()
	return nil
}

func (f *Fill) SetAlpha(value float64) error {
	if err := f.setAlpha(value); err != nil {
		return err
	}
	f.Apply()
	return nil
}

// LineCap 线端样式，取值与 PDF 一致。
type LineCap int

const (
	ButtCap LineCap = iota
	RoundCap
	SquareCap
)

func (c LineCap) Valid() bool { return c >= ButtCap && c <= SquareCap }

func (c LineCap) String() string {
	switch c {
	case ButtCap:
		return "butt"
	case RoundCap:
		return "round"
	case SquareCap:
		return "square"
	}
	return "LineCap(" + itoa(int(c)) + ")"
}

// LineJoin 拐角样式。
type LineJoin int

const (
	MiterJoin LineJoin = iota
	RoundJoin
	BevelJoin
)

func (j LineJoin) Valid() bool { return j >= MiterJoin && j <= BevelJoin }

func (j LineJoin) String() string {
	switch j {
	case MiterJoin:
		return "miter"
	case RoundJoin:
		return "round"
	case BevelJoin:
		return "bevel"
	}
	return "LineJoin(" + itoa(int(j)) + ")"
}

// Stroke 描边：颜色、透明度与线条几何。宽度与斜接限制内部以点保存。
type Stroke struct {
	paint
	target StrokeTarget

	width      float64
	lineCap    LineCap
	join       LineJoin
	miterLimit float64
	dash       LineDash
}

// NewStroke returns the default stroke and sends every attribute to target.
func NewStroke(target StrokeTarget) Stroke {
	s := Stroke{
		paint:      defaultPaint(),
		target:     target,
		width:      layout.Normalize(0.1),
		lineCap:    ButtCap,
		join:       MiterJoin,
		miterLimit: layout.Normalize(10),
	}
	s.Apply()
	return s
}

// Apply re-sends color, alpha and all line attributes.
func (s Stroke) Apply() {
	if s.target == nil {
		return
	}
	s.target.SetStrokeColor(s.color, s.alpha)
	s.target.SetLineWidth(s.width)
	s.target.SetLineCap(int(s.lineCap))
	s.target.SetLineJoin(int(s.join))
	s.target.SetMiterLimit(s.miterLimit)
	s.target.SetDash(s.dash.Value())
}

func (s *Stroke) SetColor(value string) error {
	if err := s.setColor(value); err != nil {
		return err
	}
	s.sendColor()
	return nil
}

func (s *Stroke) SetAlpha(value float64) error {
	if err := s.setAlpha(value); err != nil {
		return err
	}
	s.sendColor()
	return nil
}

func (s *Stroke) sendColor() {
	if s.target != nil {
		s.target.SetStrokeColor(s.color, s.alpha)
	}
}

// LineWidth returns the line width in millimeters.
func (s Stroke) LineWidth() float64    { return layout.Denormalize(s.width) }
func (s Stroke) LineWidthPts() float64 { return s.width }

// SetLineWidth sets the width in millimeters.
func (s *Stroke) SetLineWidth(mm float64) {
	s.width = layout.Normalize(mm)
	if s.target != nil {
		s.target.SetLineWidth(s.width)
	}
}

func (s Stroke) LineCap() LineCap { return s.lineCap }

func (s *Stroke) SetLineCap(c LineCap) error {
	if !c.Valid() {
		return layout.Invalidf("无效的线端样式 %d", int(c))
	}
	s.lineCap = c
	if s.target != nil {
		s.target.SetLineCap(int(c))
	}
	return nil
}

func (s Stroke) LineJoin() LineJoin { return s.join }

func (s *Stroke) SetLineJoin(j LineJoin) error {
	if !j.Valid() {
		return layout.Invalidf("无效的拐角样式 %d", int(j))
	}
	s.join = j
	if s.target != nil {
		s.target.SetLineJoin(int(j))
	}
	return nil
}

// MiterLimit returns the miter limit in millimeters.
func (s Stroke) MiterLimit() float64 { return layout.Denormalize(s.miterLimit) }

func (s *Stroke) SetMiterLimit(mm float64) {
	s.miterLimit = layout.Normalize(mm)
	if s.target != nil {
		s.target.SetMiterLimit(s.miterLimit)
	}
}

func (s Stroke) LineDash() LineDash { return s.dash }

// SetLineDash compiles pattern (see ParseLineDash) and sends it.
func (s *Stroke) SetLineDash(pattern string) error {
	d, err := ParseLineDash(pattern)
	if err != nil {
		return err
	}
	s.dash = d
	if s.target != nil {
		s.target.SetDash(d.Value())
	}
	return nil
}
