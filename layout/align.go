package layout

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument 标记调用方违反前置条件（编程错误），调用方用 errors.Is 判断。
var ErrInvalidArgument = errors.New("invalid argument")

// Invalidf wraps ErrInvalidArgument with a formatted message.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidArgument)...)
}

// HAlign 水平对齐方式。
type HAlign int

const (
	Left HAlign = iota
	Center
	Right
)

// Offset returns the x offset of content of the given width inside a container.
// Content wider than the container yields a negative offset.
func (h HAlign) Offset(width, containerWidth float64) float64 {
	switch h {
	case Center:
		return (containerWidth - width) / 2
	case Right:
		return containerWidth - width
	default:
		return 0
	}
}

func (h HAlign) Valid() bool { return h >= Left && h <= Right }

func (h HAlign) String() string {
	switch h {
	case Left:
		return "left"
	case Center:
		return "center"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("HAlign(%d)", int(h))
	}
}

// VAlign 垂直对齐方式。
type VAlign int

const (
	Top VAlign = iota
	Middle
	Bottom
)

// Offset returns the y offset (downwards) of content inside a container.
func (v VAlign) Offset(height, containerHeight float64) float64 {
	switch v {
	case Middle:
		return (containerHeight - height) / 2
	case Bottom:
		return containerHeight - height
	default:
		return 0
	}
}

func (v VAlign) Valid() bool { return v >= Top && v <= Bottom }

func (v VAlign) String() string {
	switch v {
	case Top:
		return "top"
	case Middle:
		return "middle"
	case Bottom:
		return "bottom"
	default:
		return fmt.Sprintf("VAlign(%d)", int(v))
	}
}

// ParseHAlign accepts left/center/right (and start/end, as the DSL did for text).
func ParseHAlign(s string) (HAlign, bool) {
	switch strings.ToLower(s) {
	case "left", "start":
		return Left, true
	case "center":
		return Center, true
	case "right", "end":
		return Right, true
	}
	return Left, false
}

// ParseVAlign accepts top/middle/bottom.
func ParseVAlign(s string) (VAlign, bool) {
	switch strings.ToLower(s) {
	case "top":
		return Top, true
	case "middle":
		return Middle, true
	case "bottom":
		return Bottom, true
	}
	return Top, false
}
