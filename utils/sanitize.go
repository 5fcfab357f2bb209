package utils

import "github.com/microcosm-cc/bluemonday"

// Listing and service text fields may carry markup pasted from source sites;
// the UGC policy keeps basic formatting and links while stripping scripts and
// event handlers.
var sanitizer = bluemonday.UGCPolicy()

// Sanitize strips unsafe HTML from user-supplied text before it is stored.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
