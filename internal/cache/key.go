package cache

import (
	"encoding/json"
	"sort"
	"strings"
)

// BuildKey serializes a (resource, scope, params) triple into a deterministic
// cache key: admin:{scope|}{resource}|{json}. Params with nil values are
// dropped and keys are sorted, so insertion order never changes the key.
func BuildKey(resource, scope string, params map[string]any) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == nil {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("admin:")
	if scope != "" {
		b.WriteString(scope)
		b.WriteByte('|')
	}
	b.WriteString(resource)
	b.WriteByte('|')
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		name, _ := json.Marshal(k)
		b.Write(name)
		b.WriteByte(':')
		val, err := json.Marshal(params[k])
		if err != nil {
			val = []byte(`null`)
		}
		b.Write(val)
	}
	b.WriteByte('}')
	return b.String()
}

// TagPrefix maps a cache tag to the key prefix used for bulk invalidation.
func TagPrefix(tag string) string {
	return "admin:" + tag
}
