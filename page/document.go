package page

import (
	"fmt"
	"os"
	"strings"

	"github.com/ByLCY/quire/surface"
)

// Metadata 文档元信息，保存时一次性写入后端。
type Metadata surface.Metadata

// String lists the non-empty fields in alphabetical order.
func (m Metadata) String() string {
	var parts []string
	for _, kv := range [][2]string{
		{"author", m.Author},
		{"creator", m.Creator},
		{"keywords", m.Keywords},
		{"subject", m.Subject},
		{"title", m.Title},
	} {
		if kv[1] != "" {
			parts = append(parts, fmt.Sprintf("%s=%q", kv[0], kv[1]))
		}
	}
	return "Metadata(" + strings.Join(parts, ", ") + ")"
}

// Document pairs a canvas with its metadata.
type Document struct {
	Metadata Metadata
	canvas   *Canvas
}

// NewDocument creates an A4 document on backend.
func NewDocument(backend surface.Surface) *Document {
	return &Document{canvas: NewA4(backend)}
}

// NewDocumentSize creates a document with a custom page size in millimeters.
func NewDocumentSize(backend surface.Surface, widthMM, heightMM float64) (*Document, error) {
	c, err := New(backend, widthMM, heightMM)
	if err != nil {
		return nil, err
	}
	return &Document{canvas: c}, nil
}

func (d *Document) Canvas() *Canvas { return d.canvas }

// Bytes sends the metadata and finishes the document in memory.
func (d *Document) Bytes() ([]byte, error) {
	backend := d.canvas.Backend()
	backend.SetMetadata(surface.Metadata(d.Metadata))
	data, err := backend.Save()
	if err != nil {
		return nil, fmt.Errorf("生成文档失败: %w", err)
	}
	return data, nil
}

// Save writes the finished document to path in one pass, replacing any
// existing file.
func (d *Document) Save(path string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入 %s 失败: %w", path, err)
	}
	return nil
}
