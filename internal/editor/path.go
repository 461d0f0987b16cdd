package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/jobdesk/internal/types"
)

// getPath reads a dotted path such as "experience.0.description".
func getPath(content types.CVContent, path string) (any, bool) {
	var cur any = map[string]any(content)
	for _, part := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[part]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

// setPath writes value at a dotted path. Intermediate objects are created;
// list indexes must already exist.
func setPath(content types.CVContent, path string, value any) error {
	parts := strings.Split(path, ".")
	if path == "" {
		return fmt.Errorf("empty field path")
	}
	var cur any = map[string]any(content)
	for i, part := range parts {
		last := i == len(parts)-1
		switch node := cur.(type) {
		case map[string]any:
			if last {
				node[part] = value
				return nil
			}
			next, ok := node[part]
			if !ok || next == nil {
				next = map[string]any{}
				node[part] = next
			}
			cur = next
		case []any:
			idx, err := strconv.Atoi(part)
			if err != nil || idx < 0 || idx >= len(node) {
				return fmt.Errorf("invalid index %q in field path %q", part, path)
			}
			if last {
				node[idx] = value
				return nil
			}
			cur = node[idx]
		default:
			return fmt.Errorf("field path %q does not address an object or list", path)
		}
	}
	return nil
}

// deepCopy copies the JSON-shaped content so edits never reach the caller's maps.
func deepCopy(content types.CVContent) types.CVContent {
	if content == nil {
		return nil
	}
	return copyValue(map[string]any(content)).(map[string]any)
}

func copyValue(v any) any {
	switch node := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(node))
		for k, child := range node {
			out[k] = copyValue(child)
		}
		return out
	case []any:
		out := make([]any, len(node))
		for i, child := range node {
			out[i] = copyValue(child)
		}
		return out
	default:
		return v
	}
}
