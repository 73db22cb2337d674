package table

import "github.com/ByLCY/quire/layout"

// Column 表头中的一列；X 在表格放置后才确定。
type Column struct {
	Width float64
	Title string
	X     float64
}

func NewColumn(width float64, title string) (Column, error) {
	if !(width > 0) {
		return Column{}, layout.Invalidf("列宽必须大于 0，实际 %g", width)
	}
	return Column{Width: width, Title: title}, nil
}

// Header is the titled first row of a table.
type Header struct {
	height  float64
	columns []Column
}

func NewHeader(height float64, columns ...Column) (*Header, error) {
	if !(height > 0) {
		return nil, layout.Invalidf("表头高度必须大于 0，实际 %g", height)
	}
	if len(columns) == 0 {
		return nil, layout.Invalidf("表头至少需要一列")
	}
	for i, c := range columns {
		if !(c.Width > 0) {
			return nil, layout.Invalidf("第 %d 列宽度必须大于 0", i)
		}
	}
	return &Header{height: height, columns: append([]Column(nil), columns...)}, nil
}

func (h *Header) Height() float64 { return h.height }
func (h *Header) Len() int        { return len(h.columns) }

// Columns returns a copy of the columns.
func (h *Header) Columns() []Column { return append([]Column(nil), h.columns...) }

// Width returns the summed width of the first n columns; n outside
// [0, Len()] means all columns.
func (h *Header) Width(n int) float64 {
	if n < 0 || n > len(h.columns) {
		n = len(h.columns)
	}
	total := 0.0
	for _, c := range h.columns[:n] {
		total += c.Width
	}
	return total
}

// TotalWidth is the width of all columns.
func (h *Header) TotalWidth() float64 { return h.Width(-1) }
