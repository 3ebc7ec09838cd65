package model

import (
	"strconv"
	"time"
)

// rfc3339Millis is the exact layout Joplin Server expects on the wire:
// millisecond precision, always UTC, always 'Z' suffixed.
const rfc3339Millis = "2006-01-02T15:04:05.000Z"

// Timestamp is a point in time expressed as milliseconds since the Unix
// epoch, the representation used by every *_time field on a model.
type Timestamp int64

// Now returns the current time truncated to millisecond precision.
func Now() Timestamp {
	return Timestamp(time.Now().UnixMilli())
}

// Zero reports whether the timestamp is the unset value.
func (t Timestamp) Zero() bool {
	return t == 0
}

// Time converts the timestamp to a UTC time.Time.
func (t Timestamp) Time() time.Time {
	return time.UnixMilli(int64(t)).UTC()
}

// String renders the millisecond integer, the form used in `key: value`
// wire lines for *_time fields.
func (t Timestamp) String() string {
	return strconv.FormatInt(int64(t), 10)
}

// ParseTimestamp parses the decimal millisecond form used on the wire.
func ParseTimestamp(s string) (Timestamp, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}

	return Timestamp(v), nil
}

// RFC3339 formats a Timestamp the way Joplin Server's delta API and
// info.json payloads expect: millisecond precision, 'Z' suffix.
func RFC3339(t Timestamp) string {
	return t.Time().Format(rfc3339Millis)
}

// ParseRFC3339 parses a millisecond-precision RFC3339 string back into a
// Timestamp, rounding down to whole milliseconds.
func ParseRFC3339(s string) (Timestamp, error) {
	parsed, err := time.Parse(rfc3339Millis, s)
	if err != nil {
		// Some servers omit trailing zero milliseconds; fall back to the
		// canonical RFC3339Nano parser and truncate ourselves.
		parsed, err = time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return 0, err
		}
	}

	return Timestamp(parsed.UnixMilli()), nil
}
