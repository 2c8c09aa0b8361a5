package tags

import (
	"fmt"
	"sync"
	"testing"
)

func TestRewrite(t *testing.T) {
	tests := []struct {
		name   string
		notes  string
		fields []string
		want   string
	}{
		{
			name:   "irrelevant block is deleted",
			notes:  "Start. <Color> keep {Color, Finish} text. </> End.",
			fields: []string{"Size"},
			want:   "Start. End.",
		},
		{
			name:   "relevant block keeps content and joins two matches",
			notes:  "<Wood> use {Wood, Metal, Stone} here. </>",
			fields: []string{"Wood Type", "Stone Color"},
			want:   " use Wood Type or Stone Color here.",
		},
		{
			name:   "three matches use a serial or",
			notes:  "<Wood> Choose {wood, stone, metal}. </>",
			fields: []string{"Wood Type", "Stone Color", "Metal Finish"},
			want:   " Choose Wood Type, Stone Color, or Metal Finish.",
		},
		{
			name:   "group matches the whole universe not just the block",
			notes:  "Note: <Frame> see {Cushion}. </>",
			fields: []string{"Frame Material", "Cushion Fill"},
			want:   "Note: see Cushion Fill.",
		},
		{
			name:   "group without matches is removed",
			notes:  "<Wood> Use {Glass} finish. </>",
			fields: []string{"Wood"},
			want:   " Use finish.",
		},
		{
			name:   "empty opening tag is always deleted",
			notes:  "A <>text</> B",
			fields: []string{"Anything"},
			want:   "A B",
		},
		{
			name:   "list outside a block is left as prose",
			notes:  "Plain {braces} stay.",
			fields: []string{"braces"},
			want:   "Plain {braces} stay.",
		},
		{
			name:   "field order decides join order",
			notes:  "<Base> {wood, base} </>",
			fields: []string{"Base Color", "Wood Finish", "Base Color"},
			want:   " Base Color or Wood Finish",
		},
		{
			name:   "multiline notes keep line structure",
			notes:  "Line one.\n<Fabric> Fabric: {fabric}. </>\nLine three.  \n",
			fields: []string{"Fabric Type"},
			want:   "Line one.\n Fabric: Fabric Type.\nLine three.\n",
		},
		{
			name:   "block content spans lines",
			notes:  "<Leg>\nLegs: {leg}\n</>",
			fields: []string{"Leg Count"},
			want:   "\nLegs: Leg Count\n",
		},
		{
			name:   "unterminated block is left as prose",
			notes:  "<A> never closed",
			fields: []string{"A"},
			want:   "<A> never closed",
		},
		{
			name:   "stray closing marker is not an opening tag",
			notes:  "</> <A> z </>",
			fields: []string{"A"},
			want:   "</> z",
		},
		{
			name:   "no fields deletes every block",
			notes:  "Keep <A> drop </> this.",
			fields: nil,
			want:   "Keep this.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rewrite(tt.notes, tt.fields)
			if got != tt.want {
				t.Fatalf("Rewrite(%q)\n got: %q\nwant: %q", tt.notes, got, tt.want)
			}
		})
	}
}

func TestCleanup(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a , b", "a, b"},
		{"done .", "done."},
		{"why \t?", "why?"},
		{"x\t\ty", "x y"},
		{"one   two", "one two"},
		{"end   \n\nnext\t", "end\n\nnext"},
		{"trailing newline\n", "trailing newline\n"},
	}
	for _, tt := range tests {
		if got := Cleanup(tt.in); got != tt.want {
			t.Errorf("Cleanup(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRewrite_Concurrent(t *testing.T) {
	notes := "<Wood> use {Wood, Stone} here. </> <Glass> gone </>"
	fields := []string{"Wood Type", "Stone Color"}
	want := Rewrite(notes, fields)

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := Rewrite(notes, fields); got != want {
				errs <- fmt.Errorf("got %q, want %q", got, want)
			}
			if r := Validate(notes); !r.Valid {
				errs <- fmt.Errorf("unexpected errors: %v", r.Errors)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
