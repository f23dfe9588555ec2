package anytype

import (
	"strconv"
	"strings"
	"time"
)

// DocumentTimes holds the timestamps found in a document's details. A zero field
// was absent or could not be parsed.
type DocumentTimes struct {
	Created  time.Time
	Changed  time.Time
	Modified time.Time
}

// TimesFromDetails reads createdDate (or addedDate), changedDate and
// lastModifiedDate (or modifiedDate).
func TimesFromDetails(details map[string]any) DocumentTimes {
	return DocumentTimes{
		Created:  firstTimestamp(details, "createdDate", "addedDate"),
		Changed:  firstTimestamp(details, "changedDate"),
		Modified: firstTimestamp(details, "lastModifiedDate", "modifiedDate"),
	}
}

// FileTimes picks access and modification times for an exported note. Access
// follows creation and modification follows the last edit, each falling back to
// whatever else is known.
func (t DocumentTimes) FileTimes() (atime, mtime time.Time, ok bool) {
	mtime = firstNonZero(t.Modified, t.Changed, t.Created)
	atime = firstNonZero(t.Created, t.Changed, mtime)
	return atime, mtime, !mtime.IsZero()
}

// CreatedDate returns the document's creation time when its details carry one.
func (d Document) CreatedDate() (time.Time, bool) {
	created := TimesFromDetails(d.Details).Created
	return created, !created.IsZero()
}

func firstTimestamp(details map[string]any, keys ...string) time.Time {
	for _, key := range keys {
		if ts, ok := ParseTimestamp(details[key]); ok {
			return ts
		}
	}
	return time.Time{}
}

func firstNonZero(times ...time.Time) time.Time {
	for _, t := range times {
		if !t.IsZero() {
			return t
		}
	}
	return time.Time{}
}

// millisecondsAbove separates millisecond epochs from second epochs.
const millisecondsAbove = 1_000_000_000_000

func unixTime(n int64) time.Time {
	if n > millisecondsAbove || n < -millisecondsAbove {
		n /= 1000
	}
	return time.Unix(n, 0).UTC()
}

// ParseTimestamp accepts epoch seconds or milliseconds as numbers or digit
// strings, RFC 3339 strings and plain dates.
func ParseTimestamp(v any) (time.Time, bool) {
	switch t := v.(type) {
	case float64:
		return unixTime(int64(t)), true
	case int:
		return unixTime(int64(t)), true
	case int64:
		return unixTime(t), true
	case string:
		s := strings.TrimSpace(t)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return unixTime(n), true
		}
		for _, layout := range []string{time.RFC3339, time.DateOnly} {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts.UTC(), true
			}
		}
	}
	return time.Time{}, false
}
