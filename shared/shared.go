package shared

import "strings"

// BuildCacheKey joins key parts into a single namespaced cache key.
func BuildCacheKey(parts ...string) string {
	return strings.Join(parts, ":")
}
