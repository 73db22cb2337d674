// Package surface 定义排版引擎驱动的页面后端契约。
//
// 后端以点（pt）为单位、原点在页面左下角；引擎负责毫米换算与 y 轴翻转，
// 后端只执行收到的指令。
package surface

// Point is a backend coordinate in points.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Metadata 文档元信息，在最终保存前写入一次。
type Metadata struct {
	Author   string `json:"author,omitempty"`
	Creator  string `json:"creator,omitempty"`
	Keywords string `json:"keywords,omitempty"`
	Subject  string `json:"subject,omitempty"`
	Title    string `json:"title,omitempty"`
}

// Metrics measures text with a registered font.
type Metrics interface {
	// MeasureText returns the advance width of text in points, without
	// character or word spacing.
	MeasureText(text, font string, size float64) float64
	// FontAscent returns the ascent of the font at the given size in points.
	FontAscent(font string, size float64) float64
}

// TextObject 对应一次文本绘制；行由 TextLine 逐行写入，每行后光标下移 leading。
type TextObject interface {
	SetFont(name string, size, leading float64)
	SetTextRenderMode(mode int)
	SetCharSpace(pts float64)
	SetWordSpace(pts float64)
	SetRise(pts float64)
	// SetTextOrigin moves the start of the next line to (x, y).
	SetTextOrigin(x, y float64)
	// Y returns the baseline of the next line.
	Y() float64
	TextLine(s string)
}

// Surface is the page-description backend driven by the engine.
type Surface interface {
	Metrics

	BeginText(x, y float64) TextObject
	DrawText(obj TextObject)

	SetFillColor(color string, alpha float64)
	SetStrokeColor(color string, alpha float64)
	SetLineWidth(pts float64)
	SetLineCap(lineCap int)
	SetLineJoin(join int)
	SetMiterLimit(pts float64)
	SetDash(pattern []int)

	Rect(x, y, width, height float64, stroke, fill bool)
	Line(x1, y1, x2, y2 float64)
	Path(moveTo Point, lineTo []Point)
	Grid(xs, ys []float64)

	// ShowPage closes the current page; paint state does not survive it.
	ShowPage()
	PageNumber() int

	SetMetadata(meta Metadata)
	// Save finishes the document and returns its bytes.
	Save() ([]byte, error)
}
