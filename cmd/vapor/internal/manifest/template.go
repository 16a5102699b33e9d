package manifest

import (
	"fmt"
	"strings"
)

// Render substitutes every {{key}} in tpl with the value returned by lookup.
// Missing keys render as empty strings; an unterminated placeholder is kept
// verbatim.
func Render(tpl string, lookup func(key string) (any, bool)) string {
	var b strings.Builder
	for {
		start := strings.Index(tpl, "{{")
		if start < 0 {
			b.WriteString(tpl)
			return b.String()
		}
		end := strings.Index(tpl[start+2:], "}}")
		if end < 0 {
			b.WriteString(tpl)
			return b.String()
		}
		b.WriteString(tpl[:start])
		key := strings.TrimSpace(tpl[start+2 : start+2+end])
		if v, ok := lookup(key); ok && v != nil {
			fmt.Fprint(&b, v)
		}
		tpl = tpl[start+2+end+2:]
	}
}
