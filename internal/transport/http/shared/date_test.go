package shared

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
	}{
		{"iso", "2023-06-30"},
		{"rfc3339", "2023-06-30T00:00:00Z"},
		{"day first", "30/06/2023"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDate(tc.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(want) {
				t.Fatalf("got %v want %v", got, want)
			}
		})
	}
}

func TestParseDateEmptyAndInvalid(t *testing.T) {
	got, err := ParseDate("")
	if err != nil || !got.IsZero() {
		t.Fatalf("empty input must yield zero time, got %v %v", got, err)
	}

	if _, err := ParseDate("30-06-2023"); err == nil {
		t.Fatal("expected error for unsupported layout")
	}
	if _, err := ParseDate("no es fecha"); err == nil {
		t.Fatal("expected error for garbage input")
	}
}
