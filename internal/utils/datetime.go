package utils

import (
	"fmt"
	"strings"
	"time"
)

// Layouts accepted from <input type="datetime-local">; browsers omit the
// seconds unless the step attribute asks for them.
var localDateTimeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

// ParseLocalDateTime interprets a datetime-local value as wall time in loc.
func ParseLocalDateTime(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range localDateTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid datetime-local value %q", value)
}

// FormatLocalDateTime renders t for a datetime-local input in loc.
func FormatLocalDateTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02T15:04")
}
