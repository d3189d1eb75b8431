// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	HeaderTimezone = "X-Timezone"
	LocClientLoc   = "client_loc" // *time.Location
)

// DefaultTimezone is the IANA name used when the caller sends none.
var DefaultTimezone = "UTC"

// GetClientLocation resolves the caller's timezone:
// 1) c.Locals("client_loc") when already resolved
// 2) X-Timezone header
// 3) ?tz= query
// 4) DefaultTimezone, then UTC
func GetClientLocation(c *fiber.Ctx) *time.Location {
	if c == nil {
		return LoadLocation(DefaultTimezone)
	}
	if v, ok := c.Locals(LocClientLoc).(*time.Location); ok && v != nil {
		return v
	}

	loc := LoadLocation(DefaultTimezone)
	for _, name := range []string{c.Get(HeaderTimezone), c.Query("tz")} {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if l, err := time.LoadLocation(name); err == nil {
			loc = l
			break
		}
	}
	c.Locals(LocClientLoc, loc)
	return loc
}

func LoadLocation(name string) *time.Location {
	if l, err := time.LoadLocation(strings.TrimSpace(name)); err == nil && l != nil {
		return l
	}
	return time.UTC
}

// DayBounds returns [00:00, next 00:00) of the calendar day containing t in loc, in UTC.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	lt := t.In(loc)
	start := time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}

var ErrBadDateTime = errors.New("invalid datetime")

var zonelessLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseDateTime accepts RFC3339 or a zone-less ISO form, which is read in loc.
// The result is always UTC.
func ParseDateTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrBadDateTime
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range zonelessLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrBadDateTime
}
