// File: internal/group/meal.go
package group

import (
	"strings"
	"time"

	"tigerbites_backend/internal/common"
)

// Layouts accepted for naive meal timestamps, interpreted in the configured
// source timezone.
var naiveMealLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// NormalizeMealTime parses a client-supplied meal timestamp. Values carrying
// an explicit offset or a "Z" suffix pass through unmodified; naive values
// are interpreted in loc and converted to UTC. The store only ever sees the
// result, never the raw string.
func NormalizeMealTime(raw string, loc *time.Location) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if parsed, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return parsed, nil
	}
	for _, layout := range naiveMealLayouts {
		if parsed, err := time.ParseInLocation(layout, trimmed, loc); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, common.ErrBadRequest.WithDetails("Invalid meal timestamp format.")
}
