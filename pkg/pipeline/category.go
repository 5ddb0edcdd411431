package pipeline

import (
	"strings"

	"infoprom/poaudit/pkg/compliance"
)

// CategoryFromFilename infers the procurement category of an input file
// from its name: the name must contain the category identifier, optionally
// with the "group_" prefix the splitting step produces. Matching is
// case-insensitive. The engine itself never infers categories; this is
// driver responsibility.
func CategoryFromFilename(name string) (compliance.Category, bool) {
	lower := strings.ToLower(name)
	for _, cat := range compliance.Categories() {
		if strings.Contains(lower, string(cat)) || strings.HasPrefix(lower, "group_"+string(cat)) {
			return cat, true
		}
	}
	return "", false
}
