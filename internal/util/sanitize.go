package util

import (
	"regexp"
	"strings"
)

// MaxLogValueLength bounds any single user supplied value written to logs.
const MaxLogValueLength = 200

var controlChars = regexp.MustCompile(`[\x00-\x1F\x7F]+`)

// SanitizeForLog removes control characters and newlines from user content before logging.
func SanitizeForLog(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", " ")
	return controlChars.ReplaceAllString(s, " ")
}

// TruncateForLog sanitizes s and cuts it to MaxLogValueLength bytes.
func TruncateForLog(s string) string {
	s = SanitizeForLog(s)
	if len(s) > MaxLogValueLength {
		return s[:MaxLogValueLength]
	}
	return s
}
