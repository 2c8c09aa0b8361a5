package tags

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// blockPattern matches "<items>content</>" lazily across lines. The items
	// may be empty but never start with '/', so "</>" is not an opening tag.
	blockPattern = regexp.MustCompile(`(?s)<(|[^<>/][^<>]*)>(.*?)</>`)

	groupPattern = regexp.MustCompile(`\{([^{}]*)\}`)

	spaceBeforePunct = regexp.MustCompile(`[ \t]+([,.!?;:])`)
	spaceRun         = regexp.MustCompile(`[ \t]{2,}`)
)

// Rewrite turns tagged notes into plain instructions for the given fields.
//
// A block is kept when any of its opening tag keywords matches a field (see
// MatchFields): its markers are dropped and every {...} group inside it is
// replaced with the EnglishJoin of the fields that group matches, or with
// nothing if it matches none. Blocks that match no field are deleted along
// with their content. Text outside blocks is untouched; the assembled result
// then goes through Cleanup.
//
// Rewrite does not validate. Notes that Validate rejects are rewritten on a
// best-effort basis: spans that do not form "<...>...</>" stay as prose.
func Rewrite(notes string, fields []string) string {
	var b strings.Builder
	b.Grow(len(notes))

	last := 0
	for _, m := range blockPattern.FindAllStringSubmatchIndex(notes, -1) {
		b.WriteString(notes[last:m[0]])
		last = m[1]

		keywords, _ := SplitList(notes[m[2]:m[3]])
		if len(MatchFields(keywords, fields)) == 0 {
			continue
		}
		b.WriteString(rewriteGroups(notes[m[4]:m[5]], fields))
	}
	b.WriteString(notes[last:])

	return Cleanup(b.String())
}

func rewriteGroups(content string, fields []string) string {
	return groupPattern.ReplaceAllStringFunc(content, func(group string) string {
		keywords, _ := SplitList(group[1 : len(group)-1])
		return EnglishJoin(MatchFields(keywords, fields))
	})
}

// Cleanup tidies whitespace left behind by removed markup: spaces or tabs
// before ,.!?;: are dropped, remaining runs of two or more collapse to one
// space, and trailing whitespace is trimmed from every line.
func Cleanup(text string) string {
	text = spaceBeforePunct.ReplaceAllString(text, "$1")
	text = spaceRun.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}
	return strings.Join(lines, "\n")
}
