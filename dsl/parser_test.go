package dsl_test

import (
	"strings"
	"testing"

	"github.com/ByLCY/quire/dsl"
)

const sampleDSL = `
doc Ognivo v1 {
  meta {
    title: "Replies ${year}"
    keywords: [
      "bank"
      "debtor"
    ]
  }

  page A4 portrait

  sheet Front {
    title: "Ognivo: "
    header: 15mm
    row-height: 11mm
    align: center middle
    fill: #333

    column 40mm "Bank"
    column 25mm "Data złożenia zapytania"

    row {
      cell 0 "PKO" ; cell 0 "1020" right bottom
      cell 5 "TAK" center middle bold size 4mm
    }

    rows data.banks as bank {
      cell 0 "${bank.name}"
    }
  }
}
`

func TestParseDocument(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if doc.Name != "Ognivo" || doc.Version != "v1" {
		t.Fatalf("文档头解析错误: %s %s", doc.Name, doc.Version)
	}
	if len(doc.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(doc.Sections))
	}
	kinds := []string{}
	for _, s := range doc.Sections {
		kinds = append(kinds, s.Kind())
	}
	if strings.Join(kinds, ",") != "meta,page,sheet" {
		t.Fatalf("段落顺序错误: %v", kinds)
	}

	meta := doc.Sections[0].Meta
	title := meta.Block.Statements[0].Assignment
	if title == nil || title.Key != "title" || title.Value.Text() != "Replies ${year}" {
		t.Fatalf("标题解析错误: %+v", meta.Block.Statements[0])
	}
	keywords := meta.Block.Statements[1].Assignment
	if keywords == nil || keywords.Value.Text() != "bank, debtor" {
		t.Fatalf("关键字数组解析错误")
	}

	pg := doc.Sections[1].Page
	if len(pg.Params) != 2 || pg.Params[0].Value != "A4" || pg.Params[1].Value != "portrait" {
		t.Fatalf("页面参数错误: %+v", pg.Params)
	}

	sheet := doc.Sections[2].Sheet
	if sheet.Name != "Front" {
		t.Fatalf("sheet 名称错误: %s", sheet.Name)
	}
	var assigns, commands []string
	for _, st := range sheet.Block.Statements {
		switch {
		case st.Assignment != nil:
			assigns = append(assigns, st.Assignment.Key)
		case st.Command != nil:
			commands = append(commands, st.Command.Name)
		}
	}
	if strings.Join(assigns, ",") != "title,header,row-height,align,fill" {
		t.Fatalf("赋值解析错误: %v", assigns)
	}
	if strings.Join(commands, ",") != "column,column,row,rows" {
		t.Fatalf("命令解析错误: %v", commands)
	}
	align := sheet.Block.Statements[3].Assignment
	if words := align.Value.Words(); len(words) != 2 || words[1] != "middle" {
		t.Fatalf("对齐表达式错误: %v", words)
	}
	if fill := sheet.Block.Statements[4].Assignment; fill.Value.Color == nil || *fill.Value.Color != "#333" {
		t.Fatalf("颜色值应被识别")
	}
}

func TestParseRowsAndCells(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	stmts := doc.Sections[2].Sheet.Block.Statements
	col := stmts[6].Command
	if col.Name != "column" || len(col.Args) != 2 || col.Args[0].Value != "25mm" || col.Args[1].Value != "Data złożenia zapytania" {
		t.Fatalf("列参数错误: %+v", col.Args)
	}

	row := stmts[7].Command
	if row.Block == nil || len(row.Block.Statements) != 3 {
		t.Fatalf("行应包含 3 个单元格")
	}
	second := row.Block.Statements[1].Command
	if second.Name != "cell" || len(second.Args) != 4 || second.Args[3].Value != "bottom" {
		t.Fatalf("分号分隔的单元格解析错误: %+v", second.Args)
	}

	rows := stmts[8].Command
	if rows.Name != "rows" || dsl.JoinLexemes(rows.Args) != "data.banks as bank" {
		t.Fatalf("rows 参数错误: %s", dsl.JoinLexemes(rows.Args))
	}
	cell := rows.Block.Statements[0].Command
	if cell.Args[1].Value != "${bank.name}" {
		t.Fatalf("占位符应原样保留: %s", cell.Args[1].Value)
	}
}

func TestParseErrors(t *testing.T) {
	bad := []string{
		`doc X v1 { sheet { column 10mm "a" `,
		`doc X { meta { } }`,
		`document X v1 { }`,
	}
	for _, src := range bad {
		if _, err := dsl.ParseString(src); err == nil {
			t.Fatalf("应解析失败: %q", src)
		}
	}
}
