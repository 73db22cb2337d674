package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ByLCY/quire/binding"
	"github.com/ByLCY/quire/dsl"
	"github.com/ByLCY/quire/graphics"
	"github.com/ByLCY/quire/layout"
	"github.com/ByLCY/quire/page"
	"github.com/ByLCY/quire/table"
)

var pagePresets = map[string][2]float64{
	"A3":     {297, 420},
	"A4":     {210, 297},
	"A5":     {148, 210},
	"LETTER": {215.9, 279.4},
	"LEGAL":  {215.9, 355.6},
}

// Build 根据 DSL 文档生成报表描述。data 通过 ${data.xxx} 引用，
// 另有 ${year}、${month}、${day} 取自 now；${page}/${pages} 留到渲染时替换。
func Build(doc *dsl.Document, data any, now time.Time) (*Spec, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档为空")
	}
	b := &builder{
		vars: binding.Scope{
			"data":  data,
			"year":  now.Year(),
			"month": fmt.Sprintf("%02d", int(now.Month())),
			"day":   fmt.Sprintf("%02d", now.Day()),
		},
	}
	spec := &Spec{Width: page.A4Width, Height: page.A4Height}
	spec.Metadata = b.collectMeta(doc)
	for _, section := range doc.Sections {
		switch {
		case section.Page != nil:
			w, h, err := resolvePageSize(section.Page.Params)
			if err != nil {
				return nil, err
			}
			spec.Width, spec.Height = w, h
		case section.Sheet != nil:
			sheet, err := b.buildSheet(section.Sheet)
			if err != nil {
				return nil, err
			}
			spec.Sheets = append(spec.Sheets, sheet)
		}
	}
	if len(spec.Sheets) == 0 {
		return nil, fmt.Errorf("文档中缺少 sheet 段落")
	}
	return spec, nil
}

type builder struct {
	vars binding.Scope
}

func (b *builder) text(s string, scopes ...binding.Scope) string {
	return binding.Interpolate(s, append(scopes, b.vars)...)
}

func (b *builder) collectMeta(doc *dsl.Document) page.Metadata {
	meta := page.Metadata{Creator: "quire"}
	for _, section := range doc.Sections {
		if section.Meta == nil || section.Meta.Block == nil {
			continue
		}
		for _, stmt := range section.Meta.Block.Statements {
			if stmt.Assignment == nil {
				continue
			}
			val := b.text(stmt.Assignment.Value.Text())
			switch strings.ToLower(stmt.Assignment.Key) {
			case "title":
				meta.Title = val
			case "author":
				meta.Author = val
			case "subject":
				meta.Subject = val
			case "creator":
				meta.Creator = val
			case "keywords":
				meta.Keywords = val
			}
		}
	}
	return meta
}

// resolvePageSize accepts a preset name or explicit width and height,
// optionally followed by portrait or landscape.
func resolvePageSize(params []*dsl.Lexeme) (float64, float64, error) {
	if len(params) == 0 {
		return page.A4Width, page.A4Height, nil
	}
	var width, height float64
	rest := params[1:]
	if base, ok := pagePresets[strings.ToUpper(params[0].Value)]; ok {
		width, height = base[0], base[1]
	} else {
		w, okW := layout.ParseLength(params[0].Value)
		if !okW || len(params) < 2 {
			return 0, 0, fmt.Errorf("暂不支持的纸张尺寸：%s", params[0].Value)
		}
		h, okH := layout.ParseLength(params[1].Value)
		if !okH {
			return 0, 0, fmt.Errorf("纸张高度 %s 无法解析", params[1].Value)
		}
		width, height = w.ToMM(), h.ToMM()
		rest = params[2:]
	}
	for _, token := range rest {
		switch strings.ToLower(token.Value) {
		case "landscape":
			if height > width {
				width, height = height, width
			}
		case "portrait":
			if width > height {
				width, height = height, width
			}
		default:
			return 0, 0, fmt.Errorf("%s: 未知的页面参数 %s", token.Pos, token.Value)
		}
	}
	if !(width > 0) || !(height > 0) {
		return 0, 0, fmt.Errorf("纸张尺寸必须大于 0")
	}
	return width, height, nil
}

func (b *builder) buildSheet(section *dsl.SheetSection) (Sheet, error) {
	s := NewSheet(section.Name)
	var margins table.Margins
	h, v := s.Align.Horizontal, s.Align.Vertical

	for _, stmt := range section.Block.Statements {
		switch {
		case stmt.Assignment != nil:
			a := stmt.Assignment
			if err := b.assign(&s, a, &margins, &h, &v); err != nil {
				return Sheet{}, fmt.Errorf("%s: %w", a.Pos, err)
			}
		case stmt.Command != nil:
			cmd := stmt.Command
			if err := b.command(&s, cmd); err != nil {
				return Sheet{}, fmt.Errorf("%s: %w", cmd.Pos, err)
			}
		default:
			return Sheet{}, fmt.Errorf("sheet %q 中不支持裸文本", s.Name)
		}
	}

	align, err := table.NewAlign(h, v, margins)
	if err != nil {
		return Sheet{}, fmt.Errorf("sheet %q: %w", s.Name, err)
	}
	s.Align = align
	if len(s.Columns) == 0 {
		return Sheet{}, fmt.Errorf("sheet %q 缺少 column 定义", s.Name)
	}
	return s, nil
}

func (b *builder) assign(s *Sheet, a *dsl.Assignment, m *table.Margins, h *layout.HAlign, v *layout.VAlign) error {
	raw := a.Value.Text()
	switch strings.ToLower(a.Key) {
	case "title":
		s.Title = b.text(raw)
	case "subtitle":
		s.Subtitle = b.text(raw)
	case "aside":
		s.Aside = b.text(raw)
	case "heading":
		s.Heading = b.text(raw)
	case "watermark":
		s.Watermark = b.text(raw)
	case "numbering":
		switch strings.ToLower(raw) {
		case "true", "yes", "on":
			s.PageLabel = DefaultPageLabel
		case "false", "no", "off", "":
			s.PageLabel = ""
		default:
			s.PageLabel = b.text(raw)
		}
	case "duplex":
		on, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("duplex 需要布尔值，实际 %s", raw)
		}
		s.Duplex = on
	case "header":
		return lengthInto(&s.HeaderHeight, a.Key, raw)
	case "row-height":
		return lengthInto(&s.RowHeight, a.Key, raw)
	case "font-size":
		return lengthInto(&s.FontSize, a.Key, raw)
	case "margin-left":
		return lengthInto(&m.Left, a.Key, raw)
	case "margin-top":
		return lengthInto(&m.Top, a.Key, raw)
	case "margin-right":
		return lengthInto(&m.Right, a.Key, raw)
	case "margin-bottom":
		return lengthInto(&m.Bottom, a.Key, raw)
	case "fill", "color":
		if _, err := graphics.ParseColor(raw); err != nil {
			return err
		}
		s.Color = raw
	case "font":
		f, ok := parseFamily(raw)
		if !ok {
			return fmt.Errorf("未知的字族 %s", raw)
		}
		s.Family = f
	case "align":
		for _, w := range a.Value.Words() {
			if hv, ok := layout.ParseHAlign(w); ok {
				*h = hv
			} else if vv, ok := layout.ParseVAlign(w); ok {
				*v = vv
			} else {
				return fmt.Errorf("未知的对齐方式 %s", w)
			}
		}
	default:
		return fmt.Errorf("sheet 不支持属性 %s", a.Key)
	}
	return nil
}

func lengthInto(dst *float64, key, raw string) error {
	l, ok := layout.ParseLength(raw)
	if !ok {
		return fmt.Errorf("%s 需要长度值，实际 %s", key, raw)
	}
	*dst = l.ToMM()
	return nil
}

func parseFamily(s string) (graphics.FontFamily, bool) {
	switch strings.ToLower(s) {
	case "mono", "monospace":
		return graphics.Mono, true
	case "sans", "sans-serif":
		return graphics.Sans, true
	case "serif":
		return graphics.Serif, true
	}
	return 0, false
}

func (b *builder) command(s *Sheet, cmd *dsl.Command) error {
	switch cmd.Name {
	case "column":
		if len(cmd.Args) != 2 {
			return fmt.Errorf("column 需要宽度与标题两个参数")
		}
		w, ok := layout.ParseLength(cmd.Args[0].Value)
		if !ok {
			return fmt.Errorf("列宽 %s 无法解析", cmd.Args[0].Value)
		}
		col, err := table.NewColumn(w.ToMM(), b.text(cmd.Args[1].Value))
		if err != nil {
			return err
		}
		s.Columns = append(s.Columns, col)
	case "row":
		row, err := b.buildRow(cmd.Block)
		if err != nil {
			return err
		}
		s.Rows = append(s.Rows, row)
	case "rows":
		return b.expandRows(s, cmd)
	default:
		return fmt.Errorf("sheet 不支持命令 %s", cmd.Name)
	}
	return nil
}

// expandRows handles `rows <path> as <name> { cell ... }`: one row per item,
// with the item bound to name and its 1-based position to ${index}.
func (b *builder) expandRows(s *Sheet, cmd *dsl.Command) error {
	var path, alias []*dsl.Lexeme
	dst := &path
	for _, arg := range cmd.Args {
		if arg.Type == "Ident" && arg.Value == "as" && dst == &path {
			dst = &alias
			continue
		}
		*dst = append(*dst, arg)
	}
	if len(path) == 0 || len(alias) != 1 {
		return fmt.Errorf("rows 语法为 rows <路径> as <名称> { ... }")
	}
	items, err := binding.Items(dsl.JoinLexemes(path), b.vars)
	if err != nil {
		return err
	}
	for i, item := range items {
		scope := binding.Scope{alias[0].Value: item, "index": i + 1}
		row, err := b.buildRow(cmd.Block, scope)
		if err != nil {
			return fmt.Errorf("第 %d 项: %w", i+1, err)
		}
		s.Rows = append(s.Rows, row)
	}
	return nil
}

func (b *builder) buildRow(block *dsl.Block, scopes ...binding.Scope) (Row, error) {
	if block == nil {
		return nil, fmt.Errorf("row 缺少单元格")
	}
	var row Row
	for _, stmt := range block.Statements {
		if stmt.Command == nil || stmt.Command.Name != "cell" {
			return nil, fmt.Errorf("row 中只能包含 cell")
		}
		cell, err := b.buildCell(stmt.Command, scopes...)
		if err != nil {
			return nil, err
		}
		row = append(row, cell)
	}
	return row, nil
}

// buildCell parses `cell <column> "<text>" [left|center|right] [top|middle|bottom]
// [bold] [size <len>] [alpha <n>]`. Columns are numbered from 0.
func (b *builder) buildCell(cmd *dsl.Command, scopes ...binding.Scope) (Cell, error) {
	args := cmd.Args
	if len(args) < 2 {
		return Cell{}, fmt.Errorf("cell 需要列号与文本")
	}
	col, err := strconv.Atoi(args[0].Value)
	if err != nil {
		return Cell{}, fmt.Errorf("列号 %s 不是整数", args[0].Value)
	}
	cell := Cell{Column: col, Text: b.text(args[1].Value, scopes...)}
	for i := 2; i < len(args); i++ {
		word := strings.ToLower(args[i].Value)
		switch word {
		case "bold":
			cell.Bold = true
			continue
		case "size", "alpha":
			if i+1 >= len(args) {
				return Cell{}, fmt.Errorf("%s 缺少取值", word)
			}
			i++
			if word == "size" {
				if err := lengthInto(&cell.Size, word, args[i].Value); err != nil {
					return Cell{}, err
				}
				continue
			}
			a, err := strconv.ParseFloat(args[i].Value, 64)
			if err != nil || a < 0 || a > 1 {
				return Cell{}, fmt.Errorf("alpha 需要 [0,1] 之间的数，实际 %s", args[i].Value)
			}
			cell.Alpha = a
			continue
		}
		if h, ok := layout.ParseHAlign(word); ok {
			cell.HAlign = h
		} else if v, ok := layout.ParseVAlign(word); ok {
			cell.VAlign = v
		} else {
			return Cell{}, fmt.Errorf("cell 不支持参数 %s", args[i].Value)
		}
	}
	return cell, nil
}
