package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// GenerateKey builds a cache key from segments.
func GenerateKey(segments ...string) string {
	return strings.Join(segments, ":")
}

// GenerateKeyWithParams builds a deterministic key from a base and
// a parameter map. Parameters are sorted by name so equal inputs
// always produce the same key.
func GenerateKeyWithParams(base string, params map[string]interface{}) string {
	if len(params) == 0 {
		return base
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(base)
	for _, name := range names {
		b.WriteString(fmt.Sprintf(":%s=%v", name, params[name]))
	}
	return b.String()
}

// HashKey produces a fixed-length key for long or free-form inputs,
// such as raw question text.
func HashKey(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:16])
}

func decodeString(raw string, dest interface{}) error {
	return json.Unmarshal([]byte(raw), dest)
}
