package finiquito

import (
	"errors"
	"testing"
	"time"
)

func testDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("bad test date %q: %v", value, err)
	}
	return parsed
}

func TestComputeTenureDecomposition(t *testing.T) {
	calc := NewCalculator(DefaultLaborConstants())

	tests := []struct {
		name        string
		start       string
		end         string
		subtractDay bool
		want        Tenure
	}{
		{
			name:  "exact years",
			start: "2019-03-01",
			end:   "2021-03-01",
			want:  Tenure{Years: 2, Months: 0, Days: 0, TotalDays: 720},
		},
		{
			name:  "years months and days",
			start: "2019-01-15",
			end:   "2021-04-25",
			want:  Tenure{Years: 2, Months: 3, Days: 10, TotalDays: 820},
		},
		{
			name:  "same day",
			start: "2023-05-10",
			end:   "2023-05-10",
			want:  Tenure{},
		},
		{
			name:  "month end does not overflow",
			start: "2023-01-31",
			end:   "2023-02-28",
			want:  Tenure{Years: 0, Months: 0, Days: 28, TotalDays: 28},
		},
		{
			name:  "leftover days borrow from anchor month",
			start: "2023-01-31",
			end:   "2023-03-30",
			want:  Tenure{Years: 0, Months: 1, Days: 30, TotalDays: 60},
		},
		{
			name:        "subtract one day",
			start:       "2023-01-01",
			end:         "2023-01-03",
			subtractDay: true,
			want:        Tenure{Years: 0, Months: 0, Days: 1, TotalDays: 1},
		},
		{
			name:        "subtract one day across month boundary",
			start:       "2023-02-01",
			end:         "2023-03-01",
			subtractDay: true,
			want:        Tenure{Years: 0, Months: 0, Days: 27, TotalDays: 27},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := calc.ComputeTenure(testDate(t, tc.start), testDate(t, tc.end), tc.subtractDay)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("tenure mismatch: got %+v want %+v", got, tc.want)
			}
		})
	}
}

func TestComputeTenureTotalDaysInvariant(t *testing.T) {
	calc := NewCalculator(DefaultLaborConstants())

	pairs := [][2]string{
		{"2015-06-17", "2024-02-29"},
		{"2019-12-31", "2020-01-01"},
		{"2010-01-01", "2023-11-30"},
		{"2022-08-15", "2023-08-14"},
	}

	for _, pair := range pairs {
		start, end := testDate(t, pair[0]), testDate(t, pair[1])

		full, err := calc.ComputeTenure(start, end, false)
		if err != nil {
			t.Fatalf("%s → %s: %v", pair[0], pair[1], err)
		}
		if got := full.Years*360 + full.Months*30 + full.Days; got != full.TotalDays {
			t.Fatalf("%s → %s: TotalDays %d does not match units %d", pair[0], pair[1], full.TotalDays, got)
		}

		reduced, err := calc.ComputeTenure(start, end, true)
		if err != nil {
			t.Fatalf("%s → %s subtract: %v", pair[0], pair[1], err)
		}
		if reduced.TotalDays > full.TotalDays {
			t.Fatalf("%s → %s: subtractOneDay produced longer tenure (%d > %d)", pair[0], pair[1], reduced.TotalDays, full.TotalDays)
		}
	}
}

func TestComputeTenureInvalidRange(t *testing.T) {
	calc := NewCalculator(DefaultLaborConstants())

	if _, err := calc.ComputeTenure(testDate(t, "2023-05-10"), testDate(t, "2023-05-09"), false); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}

	// The one-day subtraction can itself push end before start; that must
	// surface, not clamp.
	if _, err := calc.ComputeTenure(testDate(t, "2023-05-10"), testDate(t, "2023-05-10"), true); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange after subtraction, got %v", err)
	}
}
