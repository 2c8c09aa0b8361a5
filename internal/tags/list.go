package tags

import (
	"strings"

	"golang.org/x/text/cases"
)

// SplitList splits the body of a <...> or {...} list (delimiters already
// stripped) on commas and trims each item.
//
// A blank body is an empty list. ok is false when any item trims to the empty
// string, e.g. "a, , b" or a trailing comma; items then holds only the
// non-empty ones.
func SplitList(body string) (items []string, ok bool) {
	items = []string{}
	if strings.TrimSpace(body) == "" {
		return items, true
	}

	ok = true
	for _, part := range strings.Split(body, ",") {
		item := strings.TrimSpace(part)
		if item == "" {
			ok = false
			continue
		}
		items = append(items, item)
	}
	return items, ok
}

// MatchFields returns the fields that contain any keyword as a
// case-insensitive substring. The result follows the order of fields and
// keeps only the first occurrence of a repeated field name.
func MatchFields(keywords, fields []string) []string {
	fold := cases.Fold()

	folded := make([]string, 0, len(keywords))
	for _, k := range keywords {
		// A blank keyword would match every field.
		if strings.TrimSpace(k) == "" {
			continue
		}
		folded = append(folded, fold.String(k))
	}
	if len(folded) == 0 {
		return nil
	}

	var matched []string
	seen := make(map[string]bool)
	for _, field := range fields {
		if seen[field] {
			continue
		}
		lower := fold.String(field)
		for _, k := range folded {
			if strings.Contains(lower, k) {
				seen[field] = true
				matched = append(matched, field)
				break
			}
		}
	}
	return matched
}

// EnglishJoin joins items as an English disjunction:
// "A", "A or B", "A, B, or C".
func EnglishJoin(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " or " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", or " + items[len(items)-1]
	}
}
