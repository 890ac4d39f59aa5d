package token

import "testing"

func TestJoin(t *testing.T) {
	cases := []struct {
		a, b, want Location
	}{
		{Location{0, 3}, Location{3, 5}, Location{0, 5}},
		{Location{3, 5}, Location{0, 3}, Location{0, 5}},
		{Location{2, 8}, Location{4, 6}, Location{2, 8}},
	}
	for _, c := range cases {
		if got := Join(c.a, c.b); got != c.want {
			t.Errorf("Join(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestLineMap(t *testing.T) {
	src := "ab\ncd\n\nef"
	lm := NewLineMap(src)

	cases := []struct {
		offset   int
		line,col int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{3, 2, 1},
		{5, 2, 3},
		{6, 3, 1},
		{7, 4, 1},
		{8, 4, 2},
	}
	for _, c := range cases {
		line, col := lm.LineCol(c.offset)
		if line != c.line || col != c.col {
			t.Errorf("LineCol(%d) = (%d, %d), want (%d, %d)", c.offset, line, col, c.line, c.col)
		}
	}
}
