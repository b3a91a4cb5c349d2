package markdown

import "testing"

func TestWordCount(t *testing.T) {
	cases := map[string]int{
		"":                       0,
		"   \n\t ":               0,
		"one":                    1,
		"one two\nthree\tfour  ": 4,
	}
	for input, want := range cases {
		if got := WordCount([]byte(input)); got != want {
			t.Fatalf("WordCount(%q) = %d, want %d", input, got, want)
		}
	}
}

func TestReadingTime(t *testing.T) {
	cases := []struct {
		words int
		wpm   int
		want  int
	}{
		{0, 200, 0},
		{1, 200, 1},
		{200, 200, 1},
		{201, 200, 2},
		{450, 0, 3},
		{300, 100, 3},
	}
	for _, tc := range cases {
		if got := ReadingTime(tc.words, tc.wpm); got != tc.want {
			t.Fatalf("ReadingTime(%d, %d) = %d, want %d", tc.words, tc.wpm, got, tc.want)
		}
	}
}
