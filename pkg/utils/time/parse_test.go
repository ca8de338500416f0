package time

import (
	"testing"
	"time"
)

func TestParseFlexibleTime(t *testing.T) {
	want := time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{name: "rfc3339", in: "2024-03-05T10:30:00Z", want: want},
		{name: "rfc1123z", in: "Tue, 05 Mar 2024 10:30:00 +0000", want: want},
		{name: "date only", in: "2024-03-05", want: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{name: "surrounding space", in: "  2024-03-05T10:30:00Z ", want: want},
		{name: "empty", in: "", want: time.Time{}},
		{name: "garbage", in: "yesterday", want: time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseFlexibleTime(tt.in); !got.Equal(tt.want) {
				t.Errorf("ParseFlexibleTime(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
