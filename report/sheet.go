// Package report 把表格数据按页切分并渲染：每页一张表，附带水印、标题与页码。
package report

import (
	"github.com/ByLCY/quire/graphics"
	"github.com/ByLCY/quire/layout"
	"github.com/ByLCY/quire/page"
	"github.com/ByLCY/quire/table"
)

// DefaultPageLabel numbers pages as "n / total".
const DefaultPageLabel = "${page} / ${pages}"

// Cell is text placed into one column of a row.
type Cell struct {
	Column int
	Text   string
	HAlign layout.HAlign
	VAlign layout.VAlign
	Bold   bool
	// Alpha of the text fill; 0 means opaque.
	Alpha float64
	// Size in millimeters; 0 means the sheet's font size.
	Size float64
}

// Row groups the cells of one table row. Several cells may share a column.
type Row []Cell

// Sheet 描述一张表：列、几何、装饰与数据行。行数超过一页容量时自动分页。
type Sheet struct {
	Name         string
	Columns      []table.Column
	HeaderHeight float64 // mm
	RowHeight    float64 // mm
	Align        table.Align
	Family       graphics.FontFamily
	FontSize     float64 // mm
	// Color of the row text; empty keeps the default black.
	Color string

	// Title is bold and followed by Subtitle in the regular weight; Aside is
	// right-aligned on the same line. The line sits 5.5mm above the table.
	Title    string
	Subtitle string
	Aside    string
	// Heading is centered across the page 10mm from the top.
	Heading string

	// Watermark and PageLabel may refer to ${page} and ${pages}.
	Watermark string
	PageLabel string
	// Duplex pads the sheet with a blank page when it spans an odd number
	// of pages, so the next sheet starts on a front side.
	Duplex bool

	Rows []Row
}

// NewSheet returns a sheet with the usual report geometry.
func NewSheet(name string) Sheet {
	return Sheet{
		Name:         name,
		HeaderHeight: 15,
		RowHeight:    11,
		Align:        table.DefaultAlign(),
		Family:       graphics.Sans,
		FontSize:     3,
	}
}

// Spec is a complete report: paper, metadata and sheets in order.
type Spec struct {
	Metadata page.Metadata
	Width    float64 // mm
	Height   float64 // mm
	Sheets   []Sheet
}
