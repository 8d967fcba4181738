// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package names

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain subject", "Quarterly Report", "Quarterly Report"},
		{"unsafe characters", `Re: <important> "stuff"/plans`, "Re important stuff plans"},
		{"collapsed runs", "too   many___underscores", "too many underscores"},
		{"empty input", "", "untitled"},
		{"only unsafe characters", `<>:"/\|?*`, "untitled"},
		{"control characters", "bad\x00\x1fname", "bad name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.input)
			if got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitize_LengthLimit(t *testing.T) {
	long := strings.Repeat("a", 300)
	got := Sanitize(long)
	if len(got) != 100 {
		t.Errorf("len = %d, want 100", len(got))
	}
}

func TestSanitize_LengthLimitMultibyte(t *testing.T) {
	long := strings.Repeat("日", 150)
	got := Sanitize(long)
	if !utf8.ValidString(got) {
		t.Fatalf("Sanitize produced invalid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 100 {
		t.Errorf("rune count = %d, want 100", n)
	}
}

func TestBase(t *testing.T) {
	date := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	used := make(map[string]struct{})

	got := Base(date, "Meeting notes", used)
	want := "2024-03-15 - Meeting notes"
	if got != want {
		t.Errorf("Base = %q, want %q", got, want)
	}

	// Same inputs collide and get numbered suffixes.
	second := Base(date, "Meeting notes", used)
	if second != want+" (1)" {
		t.Errorf("second Base = %q, want %q", second, want+" (1)")
	}
	third := Base(date, "Meeting notes", used)
	if third != want+" (2)" {
		t.Errorf("third Base = %q, want %q", third, want+" (2)")
	}
}

func TestBase_UnknownDate(t *testing.T) {
	used := make(map[string]struct{})
	got := Base(time.Time{}, "No date here", used)
	if !strings.HasPrefix(got, "Unknown_Date - ") {
		t.Errorf("Base = %q, want Unknown_Date prefix", got)
	}
}

func TestBase_TruncatesSubject(t *testing.T) {
	used := make(map[string]struct{})
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	got := Base(date, strings.Repeat("x", 120), used)
	want := "2024-01-01 - " + strings.Repeat("x", 50)
	if got != want {
		t.Errorf("Base = %q, want %q", got, want)
	}
}

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()

	first := UniquePath(dir, "report.txt")
	if first != filepath.Join(dir, "report.txt") {
		t.Errorf("first path = %q", first)
	}
	if err := os.WriteFile(first, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	second := UniquePath(dir, "report.txt")
	if second != filepath.Join(dir, "report_1.txt") {
		t.Errorf("second path = %q", second)
	}
	if err := os.WriteFile(second, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	third := UniquePath(dir, "report.txt")
	if third != filepath.Join(dir, "report_2.txt") {
		t.Errorf("third path = %q", third)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"rfc5322", "Mon, 15 Jan 2024 10:30:00 +0000", false},
		{"missing zone", "Mon, 15 Jan 2024 10:30:00", false},
		{"iso style", "2024-01-15 10:30:00", false},
		{"empty", "", true},
		{"garbage", "not a date at all", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDate(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q): %v", tt.input, err)
			}
			if got.Year() != 2024 || got.Month() != time.January || got.Day() != 15 {
				t.Errorf("ParseDate(%q) = %v, want 2024-01-15", tt.input, got)
			}
		})
	}
}

func TestYearMonth(t *testing.T) {
	year, month := YearMonth(time.Date(2023, 7, 4, 0, 0, 0, 0, time.UTC))
	if year != "2023" || month != "07" {
		t.Errorf("YearMonth = %q/%q, want 2023/07", year, month)
	}

	year, month = YearMonth(time.Time{})
	if year != "Unknown_Year" || month != "Unknown_Month" {
		t.Errorf("zero time YearMonth = %q/%q", year, month)
	}
}
