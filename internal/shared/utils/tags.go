package utils

import "strings"

// SplitTags parses a comma-joined tag string into trimmed, de-duplicated
// tags. The first spelling of a tag wins; comparison ignores case.
func SplitTags(raw string) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.Join(strings.Fields(t), " ")
		key := strings.ToLower(t)
		if t == "" || seen[key] {
			continue
		}
		seen[key] = true
		tags = append(tags, t)
	}
	return tags
}

// NormalizeTags rewrites a tag string into its canonical comma-joined form.
func NormalizeTags(raw string) string {
	return strings.Join(SplitTags(raw), ",")
}
