// Package table 在画布上绘制固定列宽、纵向铺满页面的表格。
package table

import (
	"math"

	"github.com/ByLCY/quire/graphics"
	"github.com/ByLCY/quire/layout"
	"github.com/ByLCY/quire/page"
)

// Fixed presentation of every table, in millimeters.
const (
	HeaderFontSize  = 3.0
	HeaderLineWidth = 0.3
	BodyLineWidth   = 0.1
	DefaultPadding  = 0.5
)

// Table 构造时即确定几何并完成绘制，之后只用于往单元格写文本。
type Table struct {
	canvas    *page.Canvas
	header    *Header
	rowHeight float64
	align     Align

	x, y          float64
	width, height float64
	numRows       int
	columns       []Column
}

// New computes the table geometry from the canvas size and draws the body
// grid, the header grid and the column titles. The caller's graphics state
// is restored afterwards.
func New(c *page.Canvas, header *Header, rowHeight float64, align Align) (*Table, error) {
	if header == nil {
		return nil, layout.Invalidf("缺少表头")
	}
	if !(rowHeight > 0) {
		return nil, layout.Invalidf("行高必须大于 0，实际 %g", rowHeight)
	}
	if !align.Horizontal.Valid() || !align.Vertical.Valid() {
		return nil, layout.Invalidf("无效的表格对齐 %s/%s", align.Horizontal, align.Vertical)
	}
	t := &Table{canvas: c, header: header, rowHeight: rowHeight, align: align}
	if err := t.measure(); err != nil {
		return nil, err
	}
	if err := t.render(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Table) measure() error {
	m := t.align.Margins
	t.numRows = Capacity(t.canvas.Height(), t.header, t.rowHeight, t.align)
	if t.numRows < 1 {
		return layout.Invalidf("页面高度 %gmm 放不下一行（行高 %gmm）", t.canvas.Height(), t.rowHeight)
	}

	t.width = t.header.TotalWidth()
	t.height = t.header.Height() + t.rowHeight*float64(t.numRows)

	t.x = t.align.Horizontal.Offset(t.width, t.canvas.Width())
	switch t.align.Horizontal {
	case layout.Left:
		t.x += m.Left + HeaderLineWidth/2
	case layout.Right:
		t.x -= m.Right + HeaderLineWidth/2
	}

	// 上沿是表头粗线，下沿是表体细线
	t.y = t.align.Vertical.Offset(t.height, t.canvas.Height())
	switch t.align.Vertical {
	case layout.Top:
		t.y += m.Top + HeaderLineWidth/2
	case layout.Bottom:
		t.y -= m.Bottom + BodyLineWidth/2
	}

	t.columns = t.header.Columns()
	x := t.x
	for i := range t.columns {
		t.columns[i].X = x
		x += t.columns[i].Width
	}
	return nil
}

// Capacity returns how many body rows fit on a page of the given height
// once the vertical margins and the header are taken off.
func Capacity(pageHeight float64, header *Header, rowHeight float64, align Align) int {
	body := pageHeight - align.Margins.Top - align.Margins.Bottom - header.Height()
	return int(math.Floor(body / rowHeight))
}

func (t *Table) columnsX() []float64 {
	xs := make([]float64, 0, len(t.columns)+1)
	x := t.x
	for _, c := range t.columns {
		xs = append(xs, x)
		x += c.Width
	}
	return append(xs, x)
}

func (t *Table) rowsY() []float64 {
	ys := make([]float64, 0, t.numRows+1)
	y := t.y + t.header.Height()
	for i := 0; i < t.numRows; i++ {
		ys = append(ys, y)
		y += t.rowHeight
	}
	return append(ys, y)
}

func (t *Table) render() error {
	c := t.canvas
	c.PushState()
	defer c.PopState()

	c.SetDefaultState()
	if err := c.Stroke().SetLineCap(graphics.SquareCap); err != nil {
		return err
	}
	if err := c.Font().SetFamily(graphics.Sans); err != nil {
		return err
	}

	c.Stroke().SetLineWidth(BodyLineWidth)
	if err := c.Grid(t.columnsX(), t.rowsY()); err != nil {
		return err
	}
	return t.renderHeader()
}

func (t *Table) renderHeader() error {
	c := t.canvas
	c.PushState()
	defer c.PopState()

	c.Stroke().SetLineWidth(HeaderLineWidth)
	if err := c.Grid(t.columnsX(), []float64{t.y, t.y + t.header.Height()}); err != nil {
		return err
	}
	if err := c.Font().SetSizeMM(HeaderFontSize); err != nil {
		return err
	}
	if err := c.Font().SetWeight(graphics.Bold); err != nil {
		return err
	}
	for _, col := range t.columns {
		box := page.TextBox{
			Width:    col.Width,
			Height:   t.header.Height(),
			HAlign:   layout.Center,
			VAlign:   layout.Middle,
			WordWrap: true,
		}
		if _, err := c.Text(col.Title, col.X, t.y, box); err != nil {
			return err
		}
	}
	return nil
}

// X, Y, Width and Height are the table bounds in millimeters, header included.
func (t *Table) X() float64      { return t.x }
func (t *Table) Y() float64      { return t.y }
func (t *Table) Width() float64  { return t.width }
func (t *Table) Height() float64 { return t.height }

func (t *Table) RowHeight() float64 { return t.rowHeight }
func (t *Table) Header() *Header    { return t.header }

// NumRows is the number of body rows that fit on one page.
func (t *Table) NumRows() int { return t.numRows }
func (t *Table) NumCols() int { return len(t.columns) }

// Columns returns the placed columns with their X coordinates.
func (t *Table) Columns() []Column { return append([]Column(nil), t.columns...) }

type cellOptions struct {
	halign  layout.HAlign
	valign  layout.VAlign
	padding float64
}

// CellOption customizes Cell.
type CellOption func(*cellOptions)

// WithAlign sets the alignment of the text inside the cell.
func WithAlign(h layout.HAlign, v layout.VAlign) CellOption {
	return func(o *cellOptions) { o.halign, o.valign = h, v }
}

// WithPadding sets the inner padding in millimeters.
func WithPadding(mm float64) CellOption {
	return func(o *cellOptions) { o.padding = mm }
}

// CellRect returns the padded rectangle (x, y, width, height) of a body cell.
func (t *Table) CellRect(col, row int, padding float64) (x, y, width, height float64, err error) {
	if col < 0 || col >= len(t.columns) {
		return 0, 0, 0, 0, layout.Invalidf("列号 %d 超出 [0,%d)", col, len(t.columns))
	}
	if row < 0 || row >= t.numRows {
		return 0, 0, 0, 0, layout.Invalidf("行号 %d 超出 [0,%d)", row, t.numRows)
	}
	x = t.x + t.header.Width(col) + padding
	y = t.y + t.header.Height() + float64(row)*t.rowHeight + padding
	width = t.columns[col].Width - padding*2
	height = t.rowHeight - padding*2
	return x, y, width, height, nil
}

// Cell draws word-wrapped text into body cell (col, row) with the caller's
// current font. Defaults: top-left alignment, 0.5mm padding.
func (t *Table) Cell(col, row int, text string, opts ...CellOption) error {
	o := cellOptions{halign: layout.Left, valign: layout.Top, padding: DefaultPadding}
	for _, opt := range opts {
		opt(&o)
	}
	x, y, w, h, err := t.CellRect(col, row, o.padding)
	if err != nil {
		return err
	}
	_, err = t.canvas.Text(text, x, y, page.TextBox{
		Width:    w,
		Height:   h,
		HAlign:   o.halign,
		VAlign:   o.valign,
		WordWrap: true,
	})
	return err
}
