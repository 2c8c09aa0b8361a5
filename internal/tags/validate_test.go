package tags

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate_NoMarkup(t *testing.T) {
	r := Validate("Use the supplier's dimensions, rounded to the nearest inch.")
	if !r.Valid {
		t.Fatalf("expected valid, got errors: %v", r.Errors)
	}
	if r.Blocks == nil || len(r.Blocks) != 0 {
		t.Fatalf("expected empty non-nil blocks, got %#v", r.Blocks)
	}
	if r.Errors == nil || len(r.Errors) != 0 {
		t.Fatalf("expected empty non-nil errors, got %#v", r.Errors)
	}
	if r.Err() != nil {
		t.Fatalf("expected nil Err, got %v", r.Err())
	}
}

func TestValidate_Empty(t *testing.T) {
	r := Validate("")
	if !r.Valid || len(r.Blocks) != 0 {
		t.Fatalf("expected valid empty result, got %#v", r)
	}
}

func TestValidate_Blocks(t *testing.T) {
	notes := "<Finish, Fabric> use {Finish} </> and <Wood> x </>"
	r := Validate(notes)
	if !r.Valid {
		t.Fatalf("expected valid, got errors: %v", r.Errors)
	}
	if len(r.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(r.Blocks))
	}

	first := r.Blocks[0]
	if strings.Join(first.Keywords, "|") != "Finish|Fabric" {
		t.Errorf("unexpected keywords: %#v", first.Keywords)
	}
	if len(first.Groups) != 1 || strings.Join(first.Groups[0], "|") != "Finish" {
		t.Errorf("unexpected groups: %#v", first.Groups)
	}
	if first.Start != 0 || first.End != 33 {
		t.Errorf("expected span [0,33), got [%d,%d)", first.Start, first.End)
	}
	runes := []rune(notes)
	if string(runes[first.Start:first.End]) != "<Finish, Fabric> use {Finish} </>" {
		t.Errorf("span does not cover the block: %q", string(runes[first.Start:first.End]))
	}

	second := r.Blocks[1]
	if strings.Join(second.Keywords, "|") != "Wood" || len(second.Groups) != 0 {
		t.Errorf("unexpected second block: %#v", second)
	}
	if string(runes[second.Start:second.End]) != "<Wood> x </>" {
		t.Errorf("span does not cover the block: %q", string(runes[second.Start:second.End]))
	}
}

func TestValidate_KeepsDuplicateKeywordsInOrder(t *testing.T) {
	r := Validate("<Wood, Metal, Wood> text </>")
	if !r.Valid {
		t.Fatalf("expected valid, got errors: %v", r.Errors)
	}
	if got := strings.Join(r.Blocks[0].Keywords, "|"); got != "Wood|Metal|Wood" {
		t.Fatalf("unexpected keywords: %s", got)
	}
}

func TestValidate_MultipleGroups(t *testing.T) {
	r := Validate("<Color>\nPrefer {Color} over {Finish, Stain}.\n</>")
	if !r.Valid {
		t.Fatalf("expected valid, got errors: %v", r.Errors)
	}
	groups := r.Blocks[0].Groups
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %#v", groups)
	}
	if strings.Join(groups[1], "|") != "Finish|Stain" {
		t.Fatalf("unexpected second group: %#v", groups[1])
	}
}

func TestValidate_EmptyLists(t *testing.T) {
	r := Validate("<> text {} </>")
	if !r.Valid {
		t.Fatalf("expected valid, got errors: %v", r.Errors)
	}
	b := r.Blocks[0]
	if b.Keywords == nil || len(b.Keywords) != 0 {
		t.Errorf("expected empty keyword list, got %#v", b.Keywords)
	}
	if len(b.Groups) != 1 || len(b.Groups[0]) != 0 {
		t.Errorf("expected one empty group, got %#v", b.Groups)
	}
}

func TestValidate_CurlyListOutsideBlock(t *testing.T) {
	r := Validate("Sizes {S, M, L} vary. <Size> use {Size} </>")
	if r.Valid {
		t.Fatal("expected a list outside any block to be rejected")
	}
	if len(r.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", r.Errors)
	}
	if got := r.Errors[0]; got.Kind != CurlyListOutsideBlock || got.Offset != 6 {
		t.Errorf("expected %s at 6, got %s at %d", CurlyListOutsideBlock, got.Kind, got.Offset)
	}
}

func TestValidate_CharacterOffsets(t *testing.T) {
	notes := "Größe × <Maß> in {Maß} </> Ölfarbe"
	r := Validate(notes)
	if !r.Valid {
		t.Fatalf("expected valid, got errors: %v", r.Errors)
	}

	b := r.Blocks[0]
	if b.Start != 8 || b.End != 26 {
		t.Errorf("expected span [8,26), got [%d,%d)", b.Start, b.End)
	}
	runes := []rune(notes)
	if got := string(runes[b.Start:b.End]); got != "<Maß> in {Maß} </>" {
		t.Errorf("span does not cover the block: %q", got)
	}
}

func TestValidate_LongRunOfOpeningBrackets(t *testing.T) {
	const n = 200000
	r := Validate(strings.Repeat("<", n) + ">")

	// Every '<' but the last runs into the next one; the last opens a block
	// that is never closed.
	if len(r.Errors) != n {
		t.Fatalf("expected %d errors, got %d", n, len(r.Errors))
	}
	for i := 0; i < n-1; i++ {
		if got := r.Errors[i]; got.Kind != UnclosedOpeningTag || got.Offset != i {
			t.Fatalf("error %d: expected %s at %d, got %s at %d", i, UnclosedOpeningTag, i, got.Kind, got.Offset)
		}
	}
	if got := r.Errors[n-1]; got.Kind != MissingClosingTag || got.Offset != n-1 {
		t.Errorf("expected %s at %d, got %s at %d", MissingClosingTag, n-1, got.Kind, got.Offset)
	}
}

func TestValidate_Errors(t *testing.T) {
	type wantErr struct {
		kind   ErrorKind
		offset int
	}

	tests := []struct {
		name  string
		notes string
		want  []wantErr
	}{
		{
			name:  "unclosed opening tag",
			notes: "<A, B text",
			want:  []wantErr{{UnclosedOpeningTag, 0}},
		},
		{
			name:  "opening tag running into closing marker",
			notes: "a < b </>",
			want:  []wantErr{{UnclosedOpeningTag, 2}, {UnexpectedClosingTag, 6}},
		},
		{
			name:  "unexpected closing tag then valid block",
			notes: "text </> then <A> ok </>",
			want:  []wantErr{{UnexpectedClosingTag, 5}},
		},
		{
			name:  "nested opening tag",
			notes: "<A> <B> x </> </>",
			want:  []wantErr{{NestedOpeningTag, 4}, {UnexpectedClosingTag, 14}},
		},
		{
			name:  "nesting reported once per block",
			notes: "<A> <B> <C> x </>",
			want:  []wantErr{{NestedOpeningTag, 4}},
		},
		{
			name:  "unclosed curly list resyncs at closing marker",
			notes: "<A> {x, y </>",
			want:  []wantErr{{UnclosedCurlyList, 4}},
		},
		{
			name:  "unclosed curly list before another list",
			notes: "<A> {x {y} </>",
			want:  []wantErr{{UnclosedCurlyList, 4}},
		},
		{
			name:  "unclosed curly list at end of input",
			notes: "<A> {x",
			want:  []wantErr{{UnclosedCurlyList, 4}, {MissingClosingTag, 0}},
		},
		{
			name:  "stray brace inside block",
			notes: "<A> } </>",
			want:  []wantErr{{StrayClosingBrace, 4}},
		},
		{
			name:  "unclosed opening tag counts characters",
			notes: "Größe × <A, B text",
			want:  []wantErr{{UnclosedOpeningTag, 8}},
		},
		{
			name:  "unexpected closing tag counts characters",
			notes: "Ölfarbe </>",
			want:  []wantErr{{UnexpectedClosingTag, 8}},
		},
		{
			name:  "scanning continues after an unclosed opening tag",
			notes: "x < y } z",
			want:  []wantErr{{UnclosedOpeningTag, 2}, {StrayClosingBrace, 6}},
		},
		{
			name:  "curly list outside block",
			notes: "Pick {a, b} then <A> x </>",
			want:  []wantErr{{CurlyListOutsideBlock, 5}},
		},
		{
			name:  "unclosed curly list outside block",
			notes: "Pick {a, b",
			want:  []wantErr{{UnclosedCurlyList, 5}},
		},
		{
			name:  "stray brace outside block",
			notes: "} outside",
			want:  []wantErr{{StrayClosingBrace, 0}},
		},
		{
			name:  "trailing comma in opening tag",
			notes: "<A,> x </>",
			want:  []wantErr{{EmptyListItem, 0}},
		},
		{
			name:  "empty item in keyword group",
			notes: "<A> {a,,b} </>",
			want:  []wantErr{{EmptyListItem, 4}},
		},
		{
			name:  "missing closing tag",
			notes: "<A> never closed",
			want:  []wantErr{{MissingClosingTag, 0}},
		},
		{
			name:  "errors accumulate in one pass",
			notes: "</> <A,> } {b, </>\n<C> open",
			want: []wantErr{
				{UnexpectedClosingTag, 0},
				{EmptyListItem, 4},
				{StrayClosingBrace, 9},
				{UnclosedCurlyList, 11},
				{MissingClosingTag, 19},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Validate(tt.notes)
			if r.Valid {
				t.Fatalf("expected invalid result for %q", tt.notes)
			}
			if r.Blocks != nil {
				t.Errorf("expected nil blocks, got %#v", r.Blocks)
			}
			if len(r.Errors) != len(tt.want) {
				t.Fatalf("expected %d errors, got %d: %v", len(tt.want), len(r.Errors), r.Errors)
			}
			for i, w := range tt.want {
				got := r.Errors[i]
				if got.Kind != w.kind || got.Offset != w.offset {
					t.Errorf("error %d: expected %s at %d, got %s at %d (%s)",
						i, w.kind, w.offset, got.Kind, got.Offset, got.Message)
				}
			}
		})
	}
}

func TestResult_Err(t *testing.T) {
	r := Validate("<A> x </> </>")
	err := r.Err()
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrInvalidMarkup) {
		t.Errorf("expected ErrInvalidMarkup, got %v", err)
	}

	var pe ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected a ParseError in %v", err)
	}
	if pe.Kind != UnexpectedClosingTag || pe.Offset != 10 {
		t.Errorf("unexpected parse error: %#v", pe)
	}
	if !strings.Contains(err.Error(), "(at index 10)") {
		t.Errorf("expected offset in message, got %q", err.Error())
	}
}

func TestValidate_ZeroBlockTextStaysValid(t *testing.T) {
	notes := "Before <A> inside </> between <B, C> more {C} </> after."
	r := Validate(notes)
	if !r.Valid {
		t.Fatalf("expected valid, got errors: %v", r.Errors)
	}

	// Stitch together only the prose between blocks and validate again.
	runes := []rune(notes)
	var prose strings.Builder
	last := 0
	for _, b := range r.Blocks {
		prose.WriteString(string(runes[last:b.Start]))
		last = b.End
	}
	prose.WriteString(string(runes[last:]))

	again := Validate(prose.String())
	if !again.Valid || len(again.Blocks) != 0 {
		t.Fatalf("expected valid zero-block result for %q, got %#v", prose.String(), again)
	}
}
