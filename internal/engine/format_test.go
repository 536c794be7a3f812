package engine

import "testing"

func TestFormatProfit(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{950, "950"},
		{-950, "-950"},
		{17280, "17.3K"},
		{21600, "21.6K"},
		{-2500, "-2.5K"},
		{1_200_000, "1.2M"},
		{-3_450_000, "-3.5M"},
		{7_800_000_000, "7.8B"},
	}
	for _, c := range cases {
		if got := FormatProfit(c.in); got != c.want {
			t.Errorf("FormatProfit(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}
