// Package normalize canonicalises the loosely encoded values found in the
// spreadsheet feeds: dates serialised as Date(Y,M,D) literals, durations with
// comma decimals, and WhatsApp numbers doubling as login identifiers.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	sheetDatePattern = regexp.MustCompile(`Date\((\d+),(\d+),(\d+)(?:,(\d+),(\d+),(\d+))?\)`)
	numberPattern    = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
	nonDigitPattern  = regexp.MustCompile(`\D`)
	whitespace       = regexp.MustCompile(`\s+`)
	headerPunct      = regexp.MustCompile(`[._-]`)
)

// genericLayouts is the ordered fallback list tried when a value is not a
// Date() literal. Slash dates are month-first, matching how the upstream
// frontend interpreted them.
var genericLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006 15:04:05",
	"1/2/2006",
	"2 January 2006",
}

// Header canonicalises a column label: lowercase with whitespace and the
// punctuation marks '.', '_', '-' removed.
func Header(value string) string {
	lowered := strings.ToLower(value)
	lowered = whitespace.ReplaceAllString(lowered, "")
	return headerPunct.ReplaceAllString(lowered, "")
}

// Fold trims and lowercases a value for case-insensitive comparison.
func Fold(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// ParseSheetDate decodes the Date(Y,M,D[,h,m,s]) literal emitted for
// date-typed cells. The month component is zero-based.
func ParseSheetDate(value string) *time.Time {
	match := sheetDatePattern.FindStringSubmatch(value)
	if match == nil {
		return nil
	}

	year, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])
	day, _ := strconv.Atoi(match[3])
	hour, minute, second := 0, 0, 0
	if match[4] != "" {
		hour, _ = strconv.Atoi(match[4])
		minute, _ = strconv.Atoi(match[5])
		second, _ = strconv.Atoi(match[6])
	}

	t := time.Date(year, time.Month(month+1), day, hour, minute, second, 0, time.Local)
	return &t
}

// ParseDate parses a date value (sheet literal or generic encoding) and
// truncates it to midnight. Returns nil when the value cannot be parsed.
func ParseDate(value string) *time.Time {
	parsed := ParseDateTime(value)
	if parsed == nil {
		return nil
	}
	truncated := Midnight(*parsed)
	return &truncated
}

// ParseDateTime parses a date value keeping its time-of-day component.
func ParseDateTime(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	if t := ParseSheetDate(value); t != nil {
		return t
	}

	for _, layout := range genericLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return &t
		}
	}

	return nil
}

// Midnight truncates a timestamp to the start of its calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ISODate reformats a raw date value as YYYY-MM-DD. Unparsable values pass
// through unchanged, empty stays empty.
func ISODate(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	parsed := ParseDate(value)
	if parsed == nil {
		return value
	}
	return parsed.Format("2006-01-02")
}

// DMYDate reformats a raw date value as DD/MM/YYYY. Unparsable values pass
// through unchanged, empty stays empty.
func DMYDate(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	parsed := ParseDate(value)
	if parsed == nil {
		return value
	}
	return parsed.Format("02/01/2006")
}

// ParseDuration extracts a numeric duration from a free-form value. Comma
// decimal separators are normalised to dots; when the whole value is not
// numeric the first embedded number wins; otherwise zero. Never fails.
func ParseDuration(value string) float64 {
	normalized := strings.TrimSpace(strings.ReplaceAll(value, ",", "."))
	if normalized == "" {
		return 0
	}

	if numeric, err := strconv.ParseFloat(normalized, 64); err == nil {
		return numeric
	}

	if match := numberPattern.FindString(normalized); match != "" {
		numeric, err := strconv.ParseFloat(match, 64)
		if err == nil {
			return numeric
		}
	}

	return 0
}

// PhoneToUsername derives the canonical login identifier from a WhatsApp
// number: digits only, with a leading 62 country code or a single leading 0
// trunk prefix stripped. Applied identically at ingestion and profile edits.
func PhoneToUsername(value string) string {
	digits := nonDigitPattern.ReplaceAllString(value, "")
	switch {
	case strings.HasPrefix(digits, "62"):
		return digits[2:]
	case strings.HasPrefix(digits, "0"):
		return digits[1:]
	default:
		return digits
	}
}

// Locale holds the weekday and month display names used by DateLabel.
type Locale struct {
	MonthNames []string
	DayNames   []string
}

// DefaultLocale returns the Indonesian name tables used by the upstream
// spreadsheet.
func DefaultLocale() Locale {
	return Locale{
		MonthNames: []string{
			"Januari", "Februari", "Maret", "April", "Mei", "Juni",
			"Juli", "Agustus", "September", "Oktober", "November", "Desember",
		},
		DayNames: []string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"},
	}
}

// NewLocale builds a Locale from configured name tables, falling back to the
// defaults when a table does not have the expected length.
func NewLocale(monthNames, dayNames []string) Locale {
	locale := DefaultLocale()
	if len(monthNames) == 12 {
		locale.MonthNames = monthNames
	}
	if len(dayNames) == 7 {
		locale.DayNames = dayNames
	}
	return locale
}

// DateLabel renders "Hari, D Bulan YYYY" for a parsed date.
func (l Locale) DateLabel(t time.Time) string {
	return fmt.Sprintf("%s, %d %s %d",
		l.DayNames[int(t.Weekday())], t.Day(), l.MonthNames[int(t.Month())-1], t.Year())
}

// DateLabelValue renders the display label for a raw date value, passing
// unparsable values through unchanged.
func (l Locale) DateLabelValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	parsed := ParseDate(value)
	if parsed == nil {
		return value
	}
	return l.DateLabel(*parsed)
}
