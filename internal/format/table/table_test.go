package table

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormatAlignsColumns(t *testing.T) {
	got := Format([][]string{
		{"hp", "45", "0"},
		{"special-attack", "120", "2"},
	}, []Alignment{AlignLeft, AlignRight, AlignRight})
	want := []string{
		"hp               45  0",
		"special-attack  120  2",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected rows (-want +got):\n%s", diff)
	}
}

func TestFormatMeasuresWideRunes(t *testing.T) {
	got := Format([][]string{
		{"フシギダネ", "ja"},
		{"Bulbasaur", "en"},
	}, nil)
	want := []string{
		"フシギダネ  ja",
		"Bulbasaur   en",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected rows (-want +got):\n%s", diff)
	}
}

func TestFormatEmpty(t *testing.T) {
	if Format(nil, nil) != nil {
		t.Fatalf("expected nil for no rows")
	}
}

func TestBar(t *testing.T) {
	cases := []struct {
		value, limit, width int
		want                string
	}{
		{0, 255, 4, "░░░░"},
		{255, 255, 4, "████"},
		{1, 255, 4, "█░░░"},
		{300, 255, 4, "████"},
		{10, 0, 2, "██"},
		{5, 10, 0, ""},
	}
	for _, c := range cases {
		if got := Bar(c.value, c.limit, c.width); got != c.want {
			t.Fatalf("Bar(%d,%d,%d): expected %q, got %q", c.value, c.limit, c.width, c.want, got)
		}
	}
}
