package table

import "github.com/ByLCY/quire/layout"

// Margins 表格相对页面边缘的外边距（毫米）。
type Margins struct {
	Left, Top, Right, Bottom float64
}

// Align places a table on the page.
type Align struct {
	Horizontal layout.HAlign
	Vertical   layout.VAlign
	Margins    Margins
}

// DefaultAlign centers the table in both directions without margins.
func DefaultAlign() Align {
	return Align{Horizontal: layout.Center, Vertical: layout.Middle}
}

// NewAlign validates the margin combination. A centered table takes no
// horizontal margin; a left-aligned one takes no right margin and vice versa.
// With middle vertical alignment a single given margin is used for both
// top and bottom.
func NewAlign(h layout.HAlign, v layout.VAlign, m Margins) (Align, error) {
	if !h.Valid() || !v.Valid() {
		return Align{}, layout.Invalidf("无效的表格对齐 %s/%s", h, v)
	}
	if m.Left < 0 || m.Top < 0 || m.Right < 0 || m.Bottom < 0 {
		return Align{}, layout.Invalidf("外边距不能为负: %+v", m)
	}
	switch h {
	case layout.Center:
		if m.Left != 0 || m.Right != 0 {
			return Align{}, layout.Invalidf("居中表格不能设置左右外边距")
		}
	case layout.Left:
		if m.Right != 0 {
			return Align{}, layout.Invalidf("左对齐表格不能设置右外边距")
		}
	case layout.Right:
		if m.Left != 0 {
			return Align{}, layout.Invalidf("右对齐表格不能设置左外边距")
		}
	}
	if v == layout.Middle {
		if m.Top == 0 {
			m.Top = m.Bottom
		}
		if m.Bottom == 0 {
			m.Bottom = m.Top
		}
	}
	return Align{Horizontal: h, Vertical: v, Margins: m}, nil
}
