package tools

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100

	maxNameLength        = 150
	maxDescriptionLength = 1000
	maxTermLength        = 200
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// timestampLayouts are the accepted ISO-8601 shapes, tried in order.
// Kimai itself emits the "+0000" offset form.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
}

func validateID(field string, id int) error {
	if id <= 0 {
		return fmt.Errorf("%s must be a positive integer, got %d", field, id)
	}
	return nil
}

func validateOptionalID(field string, id *int) error {
	if id == nil {
		return nil
	}
	return validateID(field, *id)
}

func validatePage(page int) error {
	if page < 1 {
		return fmt.Errorf("page must be >= 1, got %d", page)
	}
	return nil
}

func validateSize(size int) error {
	if size < 1 || size > maxPageSize {
		return fmt.Errorf("size must be between 1 and %d, got %d", maxPageSize, size)
	}
	return nil
}

func validateFormat(format string) error {
	if format != formatJSON && format != formatMarkdown {
		return fmt.Errorf("format must be %q or %q, got %q", formatJSON, formatMarkdown, format)
	}
	return nil
}

func validateName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < 1 || n > maxNameLength {
		return fmt.Errorf("name must be 1-%d characters, got %d", maxNameLength, n)
	}
	return nil
}

func validateDescription(desc string) error {
	if n := utf8.RuneCountInString(desc); n > maxDescriptionLength {
		return fmt.Errorf("description must be at most %d characters, got %d", maxDescriptionLength, n)
	}
	return nil
}

func validateTerm(term string) error {
	if n := utf8.RuneCountInString(term); n > maxTermLength {
		return fmt.Errorf("term must be at most %d characters, got %d", maxTermLength, n)
	}
	return nil
}

func validateColor(color string) error {
	if !colorPattern.MatchString(color) {
		return fmt.Errorf("color must match #RRGGBB, got %q", color)
	}
	return nil
}

func validateCurrency(currency string) error {
	if utf8.RuneCountInString(currency) != 3 {
		return fmt.Errorf("currency must be a 3-letter code, got %q", currency)
	}
	for _, r := range currency {
		if !unicode.IsLetter(r) {
			return fmt.Errorf("currency must be a 3-letter code, got %q", currency)
		}
	}
	return nil
}

func validateTimestamp(field, value string) error {
	for _, layout := range timestampLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return nil
		}
	}
	return fmt.Errorf("%s must be an ISO-8601 datetime like 2025-11-06T09:00:00, got %q", field, value)
}

// normalizeTags splits a comma-separated tag string, trims whitespace,
// and drops empties and duplicates, keeping first-seen order.
func normalizeTags(raw string) string {
	seen := make(map[string]bool)
	var out []string
	for _, tag := range strings.Split(raw, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return strings.Join(out, ",")
}

// getEntityInput is the shared shape of every single-entity read.
type getEntityInput struct {
	ID     int    `json:"id"`
	Format string `json:"format"`
}

func (in getEntityInput) validate() error {
	if err := validateID("id", in.ID); err != nil {
		return err
	}
	return validateFormat(in.Format)
}

// idInput is the shared shape of operations addressed by id alone.
type idInput struct {
	ID int `json:"id"`
}

func (in idInput) validate() error {
	return validateID("id", in.ID)
}
