package search

import (
	"errors"
	"testing"

	"github.com/dshills/marksearch/internal/engine/cursor"
)

// stubFinder returns fixed matches and records the case policy it saw.
type stubFinder struct {
	matches       []cursor.Span
	caseSensitive bool
}

func (f *stubFinder) FindAll(_ string, caseSensitive bool) []cursor.Span {
	f.caseSensitive = caseSensitive
	return f.matches
}

// "the cat sat on the mat", query "at"
var atMatches = []cursor.Span{{Anchor: 5, Head: 7}, {Anchor: 9, Head: 11}, {Anchor: 20, Head: 22}}

func TestCaseSensitive(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"cat", false},
		{"Cat", true},
		{"CAT", true},
		{"c4t_", false},
		{"ünïcode", false},
		{"Ünïcode", true},
		{"", false},
	}

	for _, tt := range tests {
		if got := CaseSensitive(tt.query); got != tt.want {
			t.Errorf("CaseSensitive(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestSearchFrom(t *testing.T) {
	origin := cursor.NewSpan(10, 14)

	tests := []struct {
		name string
		dir  Direction
		rep  bool
		want int
	}{
		{"forward", Forward, false, 12},
		{"forward repeat", Forward, true, 13},
		{"backward", Backward, false, 12},
		{"backward repeat", Backward, true, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := Request{Query: "ab", Direction: tt.dir, Origin: origin, Repeat: tt.rep}
			if got := SearchFrom(req); got != tt.want {
				t.Errorf("SearchFrom() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestChoose(t *testing.T) {
	tests := []struct {
		name    string
		origin  cursor.Span
		dir     Direction
		repeat  bool
		want    int
		wrapped bool
	}{
		{"forward from start", cursor.NewCursorSpan(0), Forward, false, 0, false},
		{"forward keeps current match", cursor.NewSpan(5, 7), Forward, false, 0, false},
		{"forward repeat advances", cursor.NewSpan(5, 7), Forward, true, 1, false},
		{"forward repeat to last", cursor.NewSpan(9, 11), Forward, true, 2, false},
		{"forward wraps", cursor.NewSpan(20, 22), Forward, true, 0, true},
		{"forward past end wraps", cursor.NewCursorSpan(23), Forward, false, 0, true},
		{"backward from end", cursor.NewCursorSpan(22), Backward, false, 2, false},
		{"backward keeps current match", cursor.NewSpan(9, 11), Backward, false, 1, false},
		{"backward repeat retreats", cursor.NewSpan(9, 11), Backward, true, 0, false},
		{"backward wraps", cursor.NewSpan(5, 7), Backward, true, 2, true},
		{"backward from start wraps", cursor.NewCursorSpan(0), Backward, false, 2, true},
		{"extended origin uses its end", cursor.NewSpan(0, 11), Forward, false, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := Request{Query: "at", Direction: tt.dir, Origin: tt.origin, Repeat: tt.repeat}
			res, err := Choose(atMatches, req)
			if err != nil {
				t.Fatalf("Choose() error: %v", err)
			}
			if !res.Found {
				t.Fatal("expected a match")
			}
			if res.Index != tt.want {
				t.Errorf("Index = %d, want %d", res.Index, tt.want)
			}
			if res.Match != atMatches[tt.want] {
				t.Errorf("Match = %v, want %v", res.Match, atMatches[tt.want])
			}
			if res.Wrapped != tt.wrapped {
				t.Errorf("Wrapped = %v, want %v", res.Wrapped, tt.wrapped)
			}
			if res.Ordinal() != tt.want+1 {
				t.Errorf("Ordinal() = %d", res.Ordinal())
			}
		})
	}
}

func TestChooseIsDeterministic(t *testing.T) {
	req := Request{Query: "at", Direction: Forward, Origin: cursor.NewSpan(9, 11), Repeat: true}
	first, _ := Choose(atMatches, req)
	for i := 0; i < 10; i++ {
		res, _ := Choose(atMatches, req)
		if res.Index != first.Index || res.Wrapped != first.Wrapped {
			t.Fatalf("run %d chose %d, first run chose %d", i, res.Index, first.Index)
		}
	}
}

func TestChooseNoMatches(t *testing.T) {
	res, err := Choose(nil, Request{Query: "zz", Origin: cursor.NewCursorSpan(3)})
	if err != nil {
		t.Fatal(err)
	}
	if res.Found || res.Index != -1 {
		t.Errorf("expected no match, got %+v", res)
	}
}

func TestFindUsesSmartCase(t *testing.T) {
	f := &stubFinder{matches: atMatches}

	if _, err := Find(f, Request{Query: "at"}); err != nil {
		t.Fatal(err)
	}
	if f.caseSensitive {
		t.Error("lowercase query should fold case")
	}

	if _, err := Find(f, Request{Query: "At"}); err != nil {
		t.Fatal(err)
	}
	if !f.caseSensitive {
		t.Error("uppercase query should be case sensitive")
	}
}

func TestFindEmptyQuery(t *testing.T) {
	f := &stubFinder{matches: atMatches}

	res, err := Find(f, Request{})
	if err != nil || res.Found {
		t.Errorf("Find(empty) = %+v, %v", res, err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		matches []cursor.Span
		wantErr bool
	}{
		{"empty", nil, false},
		{"sorted", atMatches, false},
		{"adjacent", []cursor.Span{{Anchor: 0, Head: 2}, {Anchor: 2, Head: 4}}, false},
		{"reversed", []cursor.Span{{Anchor: 7, Head: 5}}, true},
		{"empty match", []cursor.Span{{Anchor: 5, Head: 7}, {Anchor: 9, Head: 9}}, true},
		{"unsorted", []cursor.Span{{Anchor: 9, Head: 11}, {Anchor: 5, Head: 7}}, true},
		{"same start", []cursor.Span{{Anchor: 5, Head: 7}, {Anchor: 5, Head: 6}}, true},
		{"overlapping", []cursor.Span{{Anchor: 5, Head: 8}, {Anchor: 7, Head: 9}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.matches)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrHostContract) {
				t.Errorf("error %v does not wrap ErrHostContract", err)
			}
		})
	}
}

func TestValidateBounds(t *testing.T) {
	tests := []struct {
		name    string
		matches []cursor.Span
		size    int
		wantErr bool
	}{
		{"inside", atMatches, 22, false},
		{"ends at buffer end", []cursor.Span{{Anchor: 20, Head: 22}}, 22, false},
		{"past the end", []cursor.Span{{Anchor: 20, Head: 23}}, 22, true},
		{"negative start", []cursor.Span{{Anchor: -1, Head: 2}}, 22, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBounds(tt.matches, tt.size)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateBounds() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrHostContract) {
				t.Errorf("error %v does not wrap ErrHostContract", err)
			}
		})
	}
}

// sizedFinder is a stubFinder over a buffer of known length.
type sizedFinder struct {
	stubFinder
	size int
}

func (f *sizedFinder) Len() int { return f.size }

func TestFindRejectsMatchesPastBufferEnd(t *testing.T) {
	f := &sizedFinder{stubFinder: stubFinder{matches: atMatches}, size: 21}
	if _, err := Find(f, Request{Query: "at"}); !errors.Is(err, ErrHostContract) {
		t.Errorf("expected ErrHostContract, got %v", err)
	}

	f.size = 22
	if res, err := Find(f, Request{Query: "at"}); err != nil || !res.Found {
		t.Errorf("Find() = %+v, %v", res, err)
	}
}

func TestChooseRejectsInvalidMatches(t *testing.T) {
	_, err := Choose([]cursor.Span{{Anchor: 9, Head: 11}, {Anchor: 5, Head: 7}}, Request{Query: "at"})
	if !errors.Is(err, ErrHostContract) {
		t.Errorf("expected ErrHostContract, got %v", err)
	}
}
