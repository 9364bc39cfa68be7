package utils

import (
	"fmt"

	"github.com/gosimple/slug"
)

const fallbackSlug = "post"

// Slugify lower-cases the title and joins its words with dashes.
func Slugify(title string) string {
	s := slug.Make(title)
	if s == "" {
		return fallbackSlug
	}
	return s
}

// SlugCandidate returns base for attempt 0 and base-N afterwards.
func SlugCandidate(base string, attempt int) string {
	if attempt == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, attempt)
}
