package report

import (
	"errors"
	"fmt"

	"github.com/ByLCY/quire/binding"
	"github.com/ByLCY/quire/graphics"
	"github.com/ByLCY/quire/layout"
	"github.com/ByLCY/quire/page"
	"github.com/ByLCY/quire/table"
)

// ErrNoPages is returned when there is nothing to render.
var ErrNoPages = errors.New("没有可渲染的页面")

// Fixed decoration sizes in millimeters.
const (
	titleSize     = 4.5
	titleGap      = 5.5
	headingSize   = 3.5
	headingY      = 10.0
	watermarkSize = 2.0
	watermarkY    = 2.0
	labelSize     = 2.5
	labelGap      = 1.0
)

// Render draws every sheet onto c and returns the number of pages used.
func Render(c *page.Canvas, sheets ...Sheet) (int, error) {
	if len(sheets) == 0 {
		return 0, ErrNoPages
	}
	start := c.Pages()
	for i := range sheets {
		if err := renderSheet(c, &sheets[i]); err != nil {
			return c.Pages() - start, fmt.Errorf("渲染 sheet %q 失败: %w", sheets[i].Name, err)
		}
	}
	return c.Pages() - start, nil
}

// Chunks splits rows into groups of at most size; no rows still give one
// empty group so the table is printed.
func Chunks(rows []Row, size int) [][]Row {
	if len(rows) == 0 || size < 1 {
		return [][]Row{nil}
	}
	var out [][]Row
	for len(rows) > size {
		out = append(out, rows[:size])
		rows = rows[size:]
	}
	return append(out, rows)
}

func renderSheet(c *page.Canvas, s *Sheet) error {
	if len(s.Columns) == 0 {
		return layout.Invalidf("sheet %q 没有列", s.Name)
	}
	header, err := table.NewHeader(s.HeaderHeight, s.Columns...)
	if err != nil {
		return err
	}
	capacity := table.Capacity(c.Height(), header, s.RowHeight, s.Align)
	if capacity < 1 {
		return layout.Invalidf("页面放不下任何数据行")
	}
	chunks := Chunks(s.Rows, capacity)
	total := len(chunks)

	for i, rows := range chunks {
		vars := binding.Scope{"page": i + 1, "pages": total}
		c.AddPage()
		if err := drawWatermark(c, s, vars); err != nil {
			return err
		}
		tbl, err := table.New(c, header, s.RowHeight, s.Align)
		if err != nil {
			return err
		}
		if err := drawTitle(c, s, tbl); err != nil {
			return err
		}
		if err := drawRows(c, s, tbl, rows); err != nil {
			return err
		}
		if err := drawPageLabel(c, s, tbl, vars); err != nil {
			return err
		}
	}

	if s.Duplex && total%2 == 1 {
		c.AddPage()
		if err := drawWatermark(c, s, binding.Scope{"page": total + 1, "pages": total}); err != nil {
			return err
		}
	}
	return nil
}

// withState runs fn on a default state with the given sans font, restoring
// the caller's state afterwards.
func withState(c *page.Canvas, family graphics.FontFamily, sizeMM float64, fn func() error) error {
	c.PushState()
	defer c.PopState()
	c.SetDefaultState()
	if err := c.Font().SetFamily(family); err != nil {
		return err
	}
	if err := c.Font().SetSizeMM(sizeMM); err != nil {
		return err
	}
	return fn()
}

func drawWatermark(c *page.Canvas, s *Sheet, vars binding.Scope) error {
	text := binding.Interpolate(s.Watermark, vars)
	if text == "" {
		return nil
	}
	return withState(c, graphics.Sans, watermarkSize, func() error {
		if err := c.Fill().SetAlpha(0.5); err != nil {
			return err
		}
		_, err := c.Text(text, 0, watermarkY, page.TextBox{Width: c.Width(), HAlign: layout.Center})
		return err
	})
}

func drawTitle(c *page.Canvas, s *Sheet, tbl *table.Table) error {
	if s.Heading != "" {
		err := withState(c, graphics.Sans, headingSize, func() error {
			if err := c.Font().SetWeight(graphics.Bold); err != nil {
				return err
			}
			_, err := c.Text(s.Heading, 0, headingY, page.TextBox{Width: c.Width(), HAlign: layout.Center})
			return err
		})
		if err != nil {
			return err
		}
	}
	if s.Title == "" && s.Subtitle == "" && s.Aside == "" {
		return nil
	}
	return withState(c, graphics.Sans, titleSize, func() error {
		y := tbl.Y() - titleGap
		x := tbl.X()
		if s.Title != "" {
			if err := c.Font().SetWeight(graphics.Bold); err != nil {
				return err
			}
			var err error
			if x, err = c.Text(s.Title, x, y, page.TextBox{}); err != nil {
				return err
			}
			if err := c.Font().SetWeight(graphics.WeightNormal); err != nil {
				return err
			}
		}
		if s.Subtitle != "" {
			if _, err := c.Text(s.Subtitle, x, y, page.TextBox{}); err != nil {
				return err
			}
		}
		if s.Aside != "" {
			if _, err := c.Text(s.Aside, tbl.X(), y, page.TextBox{Width: tbl.Width(), HAlign: layout.Right}); err != nil {
				return err
			}
		}
		return nil
	})
}

func drawRows(c *page.Canvas, s *Sheet, tbl *table.Table, rows []Row) error {
	return withState(c, s.Family, s.FontSize, func() error {
		if s.Color != "" {
			if err := c.Fill().SetColor(s.Color); err != nil {
				return err
			}
		}
		for r, row := range rows {
			for _, cell := range row {
				if err := drawCell(c, tbl, r, cell); err != nil {
					return fmt.Errorf("第 %d 行第 %d 列: %w", r+1, cell.Column+1, err)
				}
			}
		}
		return nil
	})
}

func drawCell(c *page.Canvas, tbl *table.Table, row int, cell Cell) error {
	styled := cell.Bold || cell.Size > 0 || cell.Alpha > 0
	if styled {
		c.PushState()
		defer c.PopState()
		if cell.Bold {
			if err := c.Font().SetWeight(graphics.Bold); err != nil {
				return err
			}
		}
		if cell.Size > 0 {
			if err := c.Font().SetSizeMM(cell.Size); err != nil {
				return err
			}
		}
		if cell.Alpha > 0 {
			if err := c.Fill().SetAlpha(cell.Alpha); err != nil {
				return err
			}
		}
	}
	return tbl.Cell(cell.Column, row, cell.Text, table.WithAlign(cell.HAlign, cell.VAlign))
}

func drawPageLabel(c *page.Canvas, s *Sheet, tbl *table.Table, vars binding.Scope) error {
	text := binding.Interpolate(s.PageLabel, vars)
	if text == "" {
		return nil
	}
	y := tbl.Y() + tbl.Height() + labelGap
	if limit := c.Height() - labelSize - labelGap; y > limit {
		y = limit
	}
	return withState(c, graphics.Sans, labelSize, func() error {
		_, err := c.Text(text, tbl.X(), y, page.TextBox{Width: tbl.Width(), HAlign: layout.Right})
		return err
	})
}
