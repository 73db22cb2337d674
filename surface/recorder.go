package surface

import (
	"encoding/json"
	"os"
	"unicode/utf8"
)

// Call 记录一次后端调用，用于断言调用序列或输出调试 JSON。
type Call struct {
	Name string `json:"name"`
	Args []any  `json:"args,omitempty"`
}

// MonoMetrics 是确定性的度量：每个字符宽 Advance*size，上升部为 Ascent*size。
type MonoMetrics struct {
	Advance float64
	Ascent  float64
}

func (m MonoMetrics) MeasureText(text, font string, size float64) float64 {
	return float64(utf8.RuneCountInString(text)) * m.Advance * size
}

func (m MonoMetrics) FontAscent(font string, size float64) float64 {
	return m.Ascent * size
}

// DefaultMetrics is used by a Recorder without a backend.
var DefaultMetrics = MonoMetrics{Advance: 0.5, Ascent: 0.75}

// Recorder logs every drawing call and forwards it to Next when set.
// Measurement queries are answered but not logged.
type Recorder struct {
	Next    Surface
	Metrics Metrics
	Calls   []Call

	pages int
	meta  Metadata
}

var _ Surface = (*Recorder)(nil)

// NewRecorder wraps next; next may be nil for a dry run.
func NewRecorder(next Surface) *Recorder {
	return &Recorder{Next: next}
}

func (r *Recorder) record(name string, args ...any) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
}

// Named returns the recorded calls with the given name, in order.
func (r *Recorder) Named(name string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Reset drops the recorded calls.
func (r *Recorder) Reset() { r.Calls = nil }

func (r *Recorder) metrics() Metrics {
	if r.Next != nil {
		return r.Next
	}
	if r.Metrics != nil {
		return r.Metrics
	}
	return DefaultMetrics
}

func (r *Recorder) MeasureText(text, font string, size float64) float64 {
	return r.metrics().MeasureText(text, font, size)
}

func (r *Recorder) FontAscent(font string, size float64) float64 {
	return r.metrics().FontAscent(font, size)
}

func (r *Recorder) BeginText(x, y float64) TextObject {
	r.record("beginText", x, y)
	obj := &recordedText{rec: r, x: x, y: y}
	if r.Next != nil {
		obj.inner = r.Next.BeginText(x, y)
	}
	return obj
}

func (r *Recorder) DrawText(obj TextObject) {
	r.record("drawText")
	if r.Next == nil {
		return
	}
	if rt, ok := obj.(*recordedText); ok && rt.inner != nil {
		r.Next.DrawText(rt.inner)
	}
}

func (r *Recorder) SetFillColor(color string, alpha float64) {
	r.record("setFillColor", color, alpha)
	if r.Next != nil {
		r.Next.SetFillColor(color, alpha)
	}
}

func (r *Recorder) SetStrokeColor(color string, alpha float64) {
	r.record("setStrokeColor", color, alpha)
	if r.Next != nil {
		r.Next.SetStrokeColor(color, alpha)
	}
}

func (r *Recorder) SetLineWidth(pts float64) {
	r.record("setLineWidth", pts)
	if r.Next != nil {
		r.Next.SetLineWidth(pts)
	}
}

func (r *Recorder) SetLineCap(lineCap int) {
	r.record("setLineCap", lineCap)
	if r.Next != nil {
		r.Next.SetLineCap(lineCap)
	}
}

func (r *Recorder) SetLineJoin(join int) {
	r.record("setLineJoin", join)
	if r.Next != nil {
		r.Next.SetLineJoin(join)
	}
}

func (r *Recorder) SetMiterLimit(pts float64) {
	r.record("setMiterLimit", pts)
	if r.Next != nil {
		r.Next.SetMiterLimit(pts)
	}
}

func (r *Recorder) SetDash(pattern []int) {
	r.record("setDash", append([]int(nil), pattern...))
	if r.Next != nil {
		r.Next.SetDash(pattern)
	}
}

func (r *Recorder) Rect(x, y, width, height float64, stroke, fill bool) {
	r.record("rect", x, y, width, height, stroke, fill)
	if r.Next != nil {
		r.Next.Rect(x, y, width, height, stroke, fill)
	}
}

func (r *Recorder) Line(x1, y1, x2, y2 float64) {
	r.record("line", x1, y1, x2, y2)
	if r.Next != nil {
		r.Next.Line(x1, y1, x2, y2)
	}
}

func (r *Recorder) Path(moveTo Point, lineTo []Point) {
	r.record("path", moveTo, append([]Point(nil), lineTo...))
	if r.Next != nil {
		r.Next.Path(moveTo, lineTo)
	}
}

func (r *Recorder) Grid(xs, ys []float64) {
	r.record("grid", append([]float64(nil), xs...), append([]float64(nil), ys...))
	if r.Next != nil {
		r.Next.Grid(xs, ys)
	}
}

func (r *Recorder) ShowPage() {
	r.record("showPage")
	r.pages++
	if r.Next != nil {
		r.Next.ShowPage()
	}
}

// PageNumber follows the backend; without one it starts at 1 and grows with ShowPage.
func (r *Recorder) PageNumber() int {
	if r.Next != nil {
		return r.Next.PageNumber()
	}
	return r.pages + 1
}

func (r *Recorder) SetMetadata(meta Metadata) {
	r.record("setMetadata", meta)
	r.meta = meta
	if r.Next != nil {
		r.Next.SetMetadata(meta)
	}
}

// Save returns the backend's bytes, or the JSON call log for a dry run.
func (r *Recorder) Save() ([]byte, error) {
	r.record("save")
	if r.Next != nil {
		return r.Next.Save()
	}
	return r.MarshalJSON()
}

// MarshalJSON encodes the metadata and call log.
func (r *Recorder) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(struct {
		Meta  Metadata `json:"meta"`
		Calls []Call   `json:"calls"`
	}{r.meta, r.Calls}, "", "  ")
}

// WriteJSON 将调用日志写入 JSON 文件，便于调试或比对。
func (r *Recorder) WriteJSON(path string) error {
	data, err := r.MarshalJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

type recordedText struct {
	rec   *Recorder
	inner TextObject

	x, y    float64
	leading float64
}

func (t *recordedText) SetFont(name string, size, leading float64) {
	t.rec.record("text.setFont", name, size, leading)
	t.leading = leading
	if t.inner != nil {
		t.inner.SetFont(name, size, leading)
	}
}

func (t *recordedText) SetTextRenderMode(mode int) {
	t.rec.record("text.setTextRenderMode", mode)
	if t.inner != nil {
		t.inner.SetTextRenderMode(mode)
	}
}

func (t *recordedText) SetCharSpace(pts float64) {
	t.rec.record("text.setCharSpace", pts)
	if t.inner != nil {
		t.inner.SetCharSpace(pts)
	}
}

func (t *recordedText) SetWordSpace(pts float64) {
	t.rec.record("text.setWordSpace", pts)
	if t.inner != nil {
		t.inner.SetWordSpace(pts)
	}
}

func (t *recordedText) SetRise(pts float64) {
	t.rec.record("text.setRise", pts)
	if t.inner != nil {
		t.inner.SetRise(pts)
	}
}

func (t *recordedText) SetTextOrigin(x, y float64) {
	t.rec.record("text.setTextOrigin", x, y)
	t.x, t.y = x, y
	if t.inner != nil {
		t.inner.SetTextOrigin(x, y)
	}
}

func (t *recordedText) Y() float64 { return t.y }

func (t *recordedText) TextLine(s string) {
	t.rec.record("text.textLine", s)
	t.y -= t.leading
	if t.inner != nil {
		t.inner.TextLine(s)
	}
}
