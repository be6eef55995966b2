package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases a name and collapses every non-alphanumeric run into a
// single dash, trimming leading and trailing dashes.
func Slugify(value string) string {
	slug := strings.ToLower(strings.TrimSpace(value))
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// NewExternalID builds the external payment reference for an item name:
// "{slug}-{epoch-millis}". An empty slug falls back to "license".
func NewExternalID(itemName string, now time.Time) string {
	slug := Slugify(itemName)
	if slug == "" {
		slug = "license"
	}
	return fmt.Sprintf("%s-%d", slug, now.UnixMilli())
}
