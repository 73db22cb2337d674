package graphics

import (
	"fmt"

	"github.com/ByLCY/quire/fonts"
	"github.com/ByLCY/quire/layout"
)

// FontFamily 字族。
type FontFamily int

const (
	Mono FontFamily = iota
	Sans
	Serif
)

func (f FontFamily) Valid() bool { return f >= Mono && f <= Serif }

// String returns the registered base name of the family.
func (f FontFamily) String() string {
	switch f {
	case Mono:
		return fonts.Mono
	case Sans:
		return fonts.Sans
	case Serif:
		return fonts.Serif
	}
	return fmt.Sprintf("FontFamily(%d)", int(f))
}

// FontWeight 字重。
type FontWeight int

const (
	WeightNormal FontWeight = iota
	Bold
)

func (w FontWeight) Valid() bool { return w == WeightNormal || w == Bold }

// FontStyle 字形。
type FontStyle int

const (
	StyleNormal FontStyle = iota
	Italic
)

func (s FontStyle) Valid() bool { return s == StyleNormal || s == Italic }

// RenderMode is the PDF text rendering mode (Tr operator, 0..7).
type RenderMode int

const (
	RenderFill RenderMode = iota
	RenderStroke
	RenderFillStroke
	RenderInvisible
	RenderFillClip
	RenderStrokeClip
	RenderFillStrokeClip
	RenderClip
)

func (m RenderMode) Valid() bool { return m >= RenderFill && m <= RenderClip }

// AscentMetrics answers font ascent queries in points.
type AscentMetrics interface {
	FontAscent(font string, size float64) float64
}

// Font 字体状态。纯值类型：赋值即复制，不持有后端状态。
// 尺寸、上标偏移、字距与词距内部以点保存。
type Font struct {
	family    FontFamily
	weight    FontWeight
	style     FontStyle
	mode      RenderMode
	size      float64
	rise      float64
	charSpace float64
	wordSpace float64
	leading   float64
}

// NewFont returns the default font (Serif, 12pt, leading 1.2). The first
// call in the process registers the font programs.
func NewFont() Font {
	fonts.Register()
	return Font{
		family:  Serif,
		weight:  WeightNormal,
		style:   StyleNormal,
		mode:    RenderFill,
		size:    12,
		leading: 1.2,
	}
}

// Name returns the registered font name, e.g. "SansBoldItalic".
func (f Font) Name() string {
	name := f.family.String()
	if f.weight == Bold {
		name += "Bold"
	}
	if f.style == Italic {
		name += "Italic"
	}
	return name
}

func (f Font) Family() FontFamily     { return f.family }
func (f Font) Weight() FontWeight     { return f.weight }
func (f Font) Style() FontStyle       { return f.style }
func (f Font) RenderMode() RenderMode { return f.mode }

func (f *Font) SetFamily(v FontFamily) error {
	if !v.Valid() {
		return layout.Invalidf("无效的字族 %d", int(v))
	}
	f.family = v
	return nil
}

func (f *Font) SetWeight(v FontWeight) error {
	if !v.Valid() {
		return layout.Invalidf("无效的字重 %d", int(v))
	}
	f.weight = v
	return nil
}

func (f *Font) SetStyle(v FontStyle) error {
	if !v.Valid() {
		return layout.Invalidf("无效的字形 %d", int(v))
	}
	f.style = v
	return nil
}

func (f *Font) SetRenderMode(v RenderMode) error {
	if !v.Valid() {
		return layout.Invalidf("无效的渲染模式 %d", int(v))
	}
	f.mode = v
	return nil
}

// AscentPts asks the backend for the ascent of this font at its size.
func (f Font) AscentPts(m AscentMetrics) float64 { return m.FontAscent(f.Name(), f.size) }

func (f Font) SizePts() float64 { return f.size }
func (f Font) SizeMM() float64  { return layout.Denormalize(f.size) }

func (f *Font) SetSizePts(v float64) error {
	if !(v > 0) {
		return layout.Invalidf("字号必须大于 0，实际 %g", v)
	}
	f.size = v
	return nil
}

func (f *Font) SetSizeMM(v float64) error {
	if !(v > 0) {
		return layout.Invalidf("字号必须大于 0，实际 %g", v)
	}
	f.size = layout.Normalize(v)
	return nil
}

func (f Font) RisePts() float64           { return f.rise }
func (f Font) RiseMM() float64            { return layout.Denormalize(f.rise) }
func (f *Font) SetRisePts(v float64)      { f.rise = v }
func (f *Font) SetRiseMM(v float64)       { f.rise = layout.Normalize(v) }
func (f Font) CharSpacePts() float64      { return f.charSpace }
func (f Font) CharSpaceMM() float64       { return layout.Denormalize(f.charSpace) }
func (f *Font) SetCharSpacePts(v float64) { f.charSpace = v }
func (f *Font) SetCharSpaceMM(v float64)  { f.charSpace = layout.Normalize(v) }
func (f Font) WordSpacePts() float64      { return f.wordSpace }
func (f Font) WordSpaceMM() float64       { return layout.Denormalize(f.wordSpace) }
func (f *Font) SetWordSpacePts(v float64) { f.wordSpace = v }
func (f *Font) SetWordSpaceMM(v float64)  { f.wordSpace = layout.Normalize(v) }

// Leading is the line spacing multiplier relative to the font size.
func (f Font) Leading() float64      { return f.leading }
func (f *Font) SetLeading(v float64) { f.leading = v }
func (f Font) LeadingPts() float64   { return f.size * f.leading }
func (f Font) LeadingMM() float64    { return layout.Denormalize(f.LeadingPts()) }

// InterlinePts is the gap between two lines beyond the font size.
func (f Font) InterlinePts() float64 { return f.size * (f.leading - 1) }
func (f Font) InterlineMM() float64  { return layout.Denormalize(f.InterlinePts()) }
