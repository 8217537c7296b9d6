package recorder

import (
	"fmt"
	"sort"
	"strings"
)

// FormatMetadata renders an event metadata mapping as a stable
// string: "{}" for an empty mapping, "{k=v, k=v}" with keys in
// ascending order otherwise. Values are rendered with %v.
func FormatMetadata(meta map[string]any) string {
	if len(meta) == 0 {
		return "{}"
	}

	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", k, meta[k])
	}
	b.WriteByte('}')
	return b.String()
}
