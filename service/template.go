package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var templateVarPattern = regexp.MustCompile(`@([^@]+)@`)

// ReplaceTemplateVars substitutes @path.to.value@ placeholders with values
// looked up under the "data" key of a query result. List segments take a
// numeric index; anything else selects the first element. Unresolved paths
// render as an empty string.
func ReplaceTemplateVars(template string, result map[string]any) string {
	data, _ := result["data"].(map[string]any)

	return templateVarPattern.ReplaceAllStringFunc(template, func(match string) string {
		path := strings.Trim(match, "@")
		value, ok := lookupPath(data, strings.Split(path, "."))
		if !ok || value == nil {
			return ""
		}
		return fmt.Sprint(value)
	})
}

func lookupPath(current any, keys []string) (any, bool) {
	for _, key := range keys {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[key]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(key)
			if err != nil {
				idx = 0
			}
			if idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}
