// Package renderer 根据输出格式选择页面后端。
package renderer

import (
	"fmt"
	"strings"

	canvasrenderer "github.com/ByLCY/quire/renderer/canvas"
	"github.com/ByLCY/quire/surface"
)

// Formats lists the supported output formats.
var Formats = []string{"pdf", "json"}

// New returns a backend for pages of the given size in millimeters.
// "json" is a dry run whose output is the recorded call log.
func New(format string, widthMM, heightMM float64) (surface.Surface, error) {
	switch strings.ToLower(format) {
	case "", "pdf":
		return canvasrenderer.NewRenderer(widthMM, heightMM)
	case "json":
		return surface.NewRecorder(nil), nil
	default:
		return nil, fmt.Errorf("不支持的输出格式 %s（可选 %s）", format, strings.Join(Formats, ", "))
	}
}
