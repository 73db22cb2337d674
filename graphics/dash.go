package graphics

import (
	"strconv"

	"github.com/ByLCY/quire/layout"
)

// LineDash 虚线样式，源形式为只含 '-' 与空格、以 '-' 开头的字符串，
// 例如 "-- " 表示 2 单位实线、1 单位空白。
type LineDash struct {
	pattern string
}

// ParseLineDash validates pattern. An empty pattern means a solid line.
func ParseLineDash(pattern string) (LineDash, error) {
	if pattern == "" {
		return LineDash{}, nil
	}
	if pattern[0] != '-' {
		return LineDash{}, layout.Invalidf("虚线样式 %q 必须以 '-' 开头", pattern)
	}
	for _, r := range pattern {
		if r != '-' && r != ' ' {
			return LineDash{}, layout.Invalidf("虚线样式 %q 含非法字符 %q", pattern, r)
		}
	}
	return LineDash{pattern: pattern}, nil
}

func (d LineDash) Pattern() string { return d.pattern }

// Value returns the alternating on/off run lengths; a solid line yields an empty list.
func (d LineDash) Value() []int {
	lengths := []int{}
	for i := 0; i < len(d.pattern); i++ {
		if i > 0 && d.pattern[i] == d.pattern[i-1] {
			lengths[len(lengths)-1]++
			continue
		}
		lengths = append(lengths, 1)
	}
	return lengths
}

func (d LineDash) String() string { return strconv.Quote(d.pattern) }

func itoa(n int) string { return strconv.Itoa(n) }
