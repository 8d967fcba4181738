// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package names builds safe, unique output file names from email metadata
// and parses the date headers that drive output organization.
package names

import (
	"errors"
	"fmt"
	"net/mail"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const (
	maxNameLen    = 100
	maxSubjectLen = 50
)

var (
	unsafeChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	runs        = regexp.MustCompile(`[_\s]+`)
)

// Sanitize makes a string safe for use as a file name: unsafe characters
// become underscores, runs of underscores and whitespace collapse to a
// single space, and the result is trimmed and length-limited.
func Sanitize(s string) string {
	safe := unsafeChars.ReplaceAllString(s, "_")
	safe = runs.ReplaceAllString(safe, " ")
	safe = strings.TrimSpace(safe)
	if r := []rune(safe); len(r) > maxNameLen {
		safe = string(r[:maxNameLen])
	}
	if safe == "" {
		return "untitled"
	}
	return safe
}

// Base returns the output base name "YYYY-MM-DD - subject" for an email,
// unique within the run. The subject is truncated before sanitizing and a
// " (N)" suffix resolves collisions. The chosen name is recorded in used.
func Base(date time.Time, subject string, used map[string]struct{}) string {
	datePart := "Unknown_Date"
	if !date.IsZero() {
		datePart = date.Format("2006-01-02")
	}

	r := []rune(subject)
	if len(r) > maxSubjectLen {
		r = r[:maxSubjectLen]
	}
	base := strings.TrimSpace(datePart + " - " + Sanitize(string(r)))

	name := base
	for n := 1; ; n++ {
		if _, taken := used[name]; !taken {
			break
		}
		name = fmt.Sprintf("%s (%d)", base, n)
	}
	used[name] = struct{}{}
	return name
}

// UniquePath returns a path in dir for filename that does not collide with
// an existing file, inserting _N before the extension as needed.
func UniquePath(dir, filename string) string {
	path := filepath.Join(dir, filename)
	if _, err := os.Stat(path); err != nil {
		return path
	}

	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	for n := 1; ; n++ {
		path = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, n, ext))
		if _, err := os.Stat(path); err != nil {
			return path
		}
	}
}

// fallbackLayouts covers date headers that net/mail rejects but that show
// up in real mail archives (missing zone, ISO-style timestamps).
var fallbackLayouts = []string{
	"Mon, 2 Jan 2006 15:04:05",
	"2 Jan 2006 15:04:05",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
}

// ParseDate parses an email Date header. RFC 5322 parsing is tried first,
// then the fallback layouts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty date header")
	}
	if t, err := mail.ParseDate(s); err == nil {
		return t, nil
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format %q", s)
}

// YearMonth returns the folder components for date-organized output.
func YearMonth(t time.Time) (year, month string) {
	if t.IsZero() {
		return "Unknown_Year", "Unknown_Month"
	}
	return t.Format("2006"), t.Format("01")
}
