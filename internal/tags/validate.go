package tags

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const closingMarker = "</>"

// Validate scans notes for well-formed blocks. It never fails: every fault is
// recorded in Result.Errors and scanning continues wherever it can resync.
// Offsets in the result count characters (code points), not bytes.
func Validate(notes string) Result {
	s := &scanner{src: notes}
	s.run()

	if s.open != nil {
		s.fail(MissingClosingTag, "Missing closing tag '</>' for opening tag", s.openAt)
	}

	if len(s.errs) > 0 {
		return Result{Valid: false, Errors: s.errs}
	}
	blocks := s.blocks
	if blocks == nil {
		blocks = []Block{}
	}
	return Result{Valid: true, Blocks: blocks, Errors: []ParseError{}}
}

// scanner is either outside any block (open == nil) or inside exactly one.
// Nested tags are reported, never stacked.
type scanner struct {
	src string
	pos int

	open   *Block
	openAt int  // byte offset of the open block's '<'
	nested bool // nesting already reported for the open block

	blocks []Block
	errs   []ParseError

	// Last byte offset converted to a character offset, and its result.
	markByte int
	markChar int
}

// charOffset converts a byte offset in src to a character offset. Offsets are
// requested in roughly ascending order, so counting from the previous mark
// keeps the whole scan linear.
func (s *scanner) charOffset(at int) int {
	if at >= s.markByte {
		s.markChar += utf8.RuneCountInString(s.src[s.markByte:at])
	} else {
		s.markChar -= utf8.RuneCountInString(s.src[at:s.markByte])
	}
	s.markByte = at
	return s.markChar
}

func (s *scanner) fail(kind ErrorKind, msg string, at int) {
	s.errs = append(s.errs, ParseError{Kind: kind, Message: msg, Offset: s.charOffset(at)})
}

func (s *scanner) run() {
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '<':
			if strings.HasPrefix(s.src[s.pos:], closingMarker) {
				s.closingTag()
				continue
			}
			s.openingTag()
		case '{':
			s.curlyList()
		case '}':
			s.fail(StrayClosingBrace, "Stray '}' without matching '{'", s.pos)
			s.pos++
		default:
			s.pos++
		}
	}
}

func (s *scanner) closingTag() {
	at := s.pos
	s.pos += len(closingMarker)

	if s.open == nil {
		s.fail(UnexpectedClosingTag, "Unexpected closing tag </> with no open tag", at)
		return
	}

	s.open.End = s.charOffset(s.pos)
	s.blocks = append(s.blocks, *s.open)
	s.open = nil
	s.nested = false
}

// openingTag handles a '<' that does not start "</>". The search for '>' stops
// at the next '<', so each stretch of input is examined a bounded number of
// times.
func (s *scanner) openingTag() {
	start := s.pos
	rel := strings.IndexAny(s.src[start+1:], "<>")
	if rel < 0 || s.src[start+1+rel] == '<' {
		// No '>' before the next '<' (which may begin a "</>") or the end of
		// input: the tag never closed.
		s.fail(UnclosedOpeningTag, "Unclosed opening tag '<...>'", start)
		s.pos = start + 1
		return
	}
	end := start + 1 + rel
	body := s.src[start+1 : end]

	items, ok := SplitList(body)
	if !ok {
		s.fail(EmptyListItem, fmt.Sprintf("Empty item in list: %q", s.src[start:end+1]), start)
	}
	s.pos = end + 1

	if s.open != nil {
		if !s.nested {
			s.fail(NestedOpeningTag, "Nested opening tags are not allowed", start)
			s.nested = true
		}
		return
	}

	s.open = &Block{Keywords: items, Start: s.charOffset(start)}
	s.openAt = start
}

func (s *scanner) curlyList() {
	start := s.pos
	rel := strings.IndexAny(s.src[start+1:], "{}<")
	closed := rel >= 0 && s.src[start+1+rel] == '}'

	if !closed {
		s.fail(UnclosedCurlyList, "Unclosed curly list '{...}'", start)
		if rel < 0 {
			s.pos = len(s.src)
		} else {
			s.pos = start + 1 + rel
		}
		return
	}

	end := start + 1 + rel
	s.pos = end + 1
	if s.open == nil {
		s.fail(CurlyListOutsideBlock, "Curly list '{...}' must appear inside an open tag block", start)
		return
	}

	items, ok := SplitList(s.src[start+1 : end])
	if !ok {
		s.fail(EmptyListItem, fmt.Sprintf("Empty item in list: %q", s.src[start:end+1]), start)
	}
	s.open.Groups = append(s.open.Groups, items)
}
