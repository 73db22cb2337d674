// Package graphics 保存引擎的绘图状态：描边、填充与字体，以及可入栈/出栈的图形状态。
package graphics

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/ByLCY/quire/layout"
	"golang.org/x/image/colornames"
)

// ParseColor resolves a color reference: "#rgb", "#rrggbb", "#rrggbbaa"
// or a CSS/SVG color name such as "navy". The alpha byte of an 8-digit
// hex value is ignored; alpha is carried separately.
func ParseColor(value string) (color.RGBA, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return color.RGBA{}, layout.Invalidf("颜色值为空")
	}
	if !strings.HasPrefix(v, "#") {
		if c, ok := colornames.Map[strings.ToLower(v)]; ok {
			return c, nil
		}
		return color.RGBA{}, layout.Invalidf("颜色值 %s 无法解析", value)
	}
	hex := v[1:]
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	case 8:
		hex = hex[:6]
	default:
		return color.RGBA{}, layout.Invalidf("颜色值 %s 无法解析", value)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, layout.Invalidf("颜色值 %s 无法解析", value)
	}
	return color.RGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xff}, nil
}
