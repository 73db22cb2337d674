// Package binding 负责把 ${path.to.value} 占位符替换为数据中的值。
package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Scope is a set of named values; the first path segment selects an entry.
type Scope map[string]any

// Interpolate 将文本中的 ${path} 替换为 scopes 中的值，按顺序查找，先命中者优先。
// 路径不存在时保留原占位符。
func Interpolate(text string, scopes ...Scope) string {
	if len(scopes) == 0 || !strings.Contains(text, "${") {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(exprPattern.FindStringSubmatch(match)[1])
		if path == "" {
			return match
		}
		if val, ok := Lookup(path, scopes...); ok {
			return Format(val)
		}
		return match
	})
}

// Lookup resolves path against each scope in order.
func Lookup(path string, scopes ...Scope) (any, bool) {
	for _, s := range scopes {
		if s == nil {
			continue
		}
		if val, ok := Resolve(map[string]any(s), path); ok {
			return val, true
		}
	}
	return nil, false
}

// Format renders a bound value; whole floats print without a fraction.
func Format(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// Resolve walks a dotted path with optional [i] indexes, e.g. "banks[0].name".
func Resolve(data any, path string) (any, bool) {
	current := data
	for _, segment := range strings.Split(path, ".") {
		name, indexes := parseSegment(segment)
		if name != "" {
			var ok bool
			if current, ok = descendMap(current, name); !ok {
				return nil, false
			}
		}
		for _, idxStr := range indexes {
			idx, err := strconv.Atoi(idxStr)
			if err != nil {
				return nil, false
			}
			var ok bool
			if current, ok = descendArray(current, idx); !ok {
				return nil, false
			}
		}
	}
	return current, true
}

func parseSegment(segment string) (string, []string) {
	i := strings.IndexByte(segment, '[')
	if i == -1 {
		return segment, nil
	}
	name, rest := segment[:i], segment[i:]
	var indexes []string
	for len(rest) > 0 && rest[0] == '[' {
		end := strings.IndexByte(rest, ']')
		if end == -1 {
			break
		}
		indexes = append(indexes, rest[1:end])
		rest = rest[end+1:]
	}
	return name, indexes
}

func descendMap(current any, key string) (any, bool) {
	switch c := current.(type) {
	case map[string]any:
		val, ok := c[key]
		return val, ok
	case Scope:
		val, ok := c[key]
		return val, ok
	case map[string]string:
		val, ok := c[key]
		return val, ok
	}
	return nil, false
}

func descendArray(current any, idx int) (any, bool) {
	c, ok := current.([]any)
	if !ok || idx < 0 || idx >= len(c) {
		return nil, false
	}
	return c[idx], true
}

// Items returns the list at path, for iterating rows over data.
func Items(path string, scopes ...Scope) ([]any, error) {
	val, ok := Lookup(path, scopes...)
	if !ok {
		return nil, fmt.Errorf("数据路径 %s 不存在", path)
	}
	items, ok := val.([]any)
	if !ok {
		return nil, fmt.Errorf("数据路径 %s 不是数组", path)
	}
	return items, nil
}
