// Package fonts 提供进程级的字体程序注册表：三个字族（等宽、无衬线、衬线）
// 各含常规、粗体、斜体与粗斜体四种字形。
package fonts

import (
	"fmt"
	"sort"
	"sync"

	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10bolditalic"
	"github.com/go-fonts/latin-modern/lmroman10italic"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Base family names; styled names append "Bold" and/or "Italic".
const (
	Mono  = "Mono"
	Sans  = "Sans"
	Serif = "Serif"
)

var (
	once      sync.Once
	programs  map[string][]byte
	loadCount int
)

// Register 构建名称到字体程序的映射，进程内只执行一次，后续调用为空操作。
func Register() {
	once.Do(func() {
		loadCount++
		programs = map[string][]byte{
			Mono:                 gomono.TTF,
			Mono + "Bold":        gomonobold.TTF,
			Mono + "Italic":      gomonoitalic.TTF,
			Mono + "BoldItalic":  gomonobolditalic.TTF,
			Sans:                 goregular.TTF,
			Sans + "Bold":        gobold.TTF,
			Sans + "Italic":      goitalic.TTF,
			Sans + "BoldItalic":  gobolditalic.TTF,
			Serif:                lmroman10regular.TTF,
			Serif + "Bold":       lmroman10bold.TTF,
			Serif + "Italic":     lmroman10italic.TTF,
			Serif + "BoldItalic": lmroman10bolditalic.TTF,
		}
	})
}

// Registrations reports how many times the registry was built (0 or 1).
func Registrations() int { return loadCount }

// Program returns the font program registered under name.
func Program(name string) ([]byte, error) {
	Register()
	data, ok := programs[name]
	if !ok {
		return nil, fmt.Errorf("未注册的字体 %s", name)
	}
	return data, nil
}

// Names lists the registered font names in sorted order.
func Names() []string {
	Register()
	names := make([]string, 0, len(programs))
	for name := range programs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
