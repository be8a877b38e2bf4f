package util

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{-time.Second, "0:00"},
		{0, "0:00"},
		{5*time.Second + 900*time.Millisecond, "0:05"},
		{2*time.Minute + 3*time.Second, "2:03"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.in); got != tc.want {
			t.Fatalf("FormatDuration(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
