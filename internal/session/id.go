package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewSessionID builds "{participant}_{YYYYMMDD}_{6 hex chars}". The
// participant part is reduced to characters safe for file names.
func NewSessionID(participant string, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:6]
	return fmt.Sprintf("%s_%s_%s", SafeName(participant), now.Format("20060102"), suffix)
}

// SafeName replaces whitespace and path separators so the result can be
// embedded in identifiers and file names.
func SafeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "anonymous"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		case ' ', '\t', '\n', '\r':
			return '_'
		}
		return r
	}, s)
}
