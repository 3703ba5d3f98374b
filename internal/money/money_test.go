package money

import (
	"testing"

	"grosz/internal/testutil"
)

func TestParseCents(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cases := []struct {
			in   string
			want int64
		}{
			{"150.50", 15050},
			{"150,50", 15050},
			{"150.5", 15050},
			{"150", 15000},
			{"0", 0},
			{"0.01", 1},
			{".5", 50},
			{" 12.34 ", 1234},
		}
		for _, tc := range cases {
			got, err := ParseCents(tc.in)
			testutil.AssertNoError(t, err)
			if got != tc.want {
				t.Errorf("ParseCents(%q) = %d, want %d", tc.in, got, tc.want)
			}
		}
	})

	t.Run("invalid", func(t *testing.T) {
		for _, in := range []string{"", "-3", "+3", "abc", "1.234", "1.2.3", "1,2,3", "12x"} {
			_, err := ParseCents(in)
			testutil.AssertAppError(t, err, "INVALID_AMOUNT")
		}
	})

	t.Run("non_ascii_digits_rejected", func(t *testing.T) {
		// Arabic-Indic and Devanagari digits are digits to unicode but
		// would decode to garbage cents.
		for _, in := range []string{"1.٣", "١٢", "५.५"} {
			_, err := ParseCents(in)
			testutil.AssertAppError(t, err, "INVALID_AMOUNT")
		}
	})
}

func TestParsePositiveCents(t *testing.T) {
	got, err := ParsePositiveCents("3,99")
	testutil.AssertNoError(t, err)
	if got != 399 {
		t.Errorf("expected 399, got %d", got)
	}

	_, err = ParsePositiveCents("0")
	testutil.AssertAppError(t, err, "INVALID_AMOUNT")

	_, err = ParsePositiveCents("0.00")
	testutil.AssertAppError(t, err, "INVALID_AMOUNT")
}

func TestFormatCents(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{15050, "150.50"},
		{100, "1.00"},
		{1, "0.01"},
		{0, "0.00"},
		{-25050, "-250.50"},
	}
	for _, tc := range cases {
		if got := FormatCents(tc.in); got != tc.want {
			t.Errorf("FormatCents(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
