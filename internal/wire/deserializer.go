package wire

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/noteforge/joplin-sync-go/internal/model"
)

// Deserializer holds the three sections recovered from a raw document:
// the title, the body, and the trailing key/value metadata lines.
type Deserializer struct {
	Title string
	Body  string
	kv    map[string]string
}

// Parse splits a raw document into title/body/metadata. It scans lines
// from the end of the document backwards, consuming each line that looks
// like "key: value"; the first line (from the end) that does not match
// stops the scan. Everything before that point is the title/body header —
// this mirrors the original format's tolerance for arbitrary title/body
// text that might itself contain colons or look line-like, since only the
// *trailing contiguous run* of kv-shaped lines is treated as metadata.
func Parse(doc string) *Deserializer {
	lines := strings.Split(doc, "\n")
	kv := make(map[string]string)

	end := len(lines)
	for end > 0 {
		key, value, ok := matchKV(lines[end-1])
		if !ok {
			break
		}

		kv[key] = value
		end--
	}

	header := lines[:end]
	// A single blank line separates the header from the metadata section;
	// it belongs to neither and is dropped.
	if len(header) > 0 && header[len(header)-1] == "" {
		header = header[:len(header)-1]
	}

	d := &Deserializer{kv: kv}

	if len(header) == 0 {
		return d
	}

	d.Title = header[0]

	if len(header) > 1 {
		bodyLines := header[1:]
		if len(bodyLines) > 0 && bodyLines[0] == "" {
			bodyLines = bodyLines[1:]
		}

		d.Body = strings.Join(bodyLines, "\n")
	}

	return d
}

// matchKV reports whether line has the "key: value" (or "key:" for an
// empty value) shape, and if so returns the split key/value.
func matchKV(line string) (key, value string, ok bool) {
	if idx := strings.Index(line, ": "); idx >= 0 {
		key = line[:idx]
		value = line[idx+2:]

		return key, value, isValidKey(key)
	}

	if strings.HasSuffix(line, ":") {
		key = line[:len(line)-1]

		return key, "", isValidKey(key)
	}

	return "", "", false
}

// isValidKey reports whether s looks like a field name: non-empty,
// lowercase letters/digits/underscores only.
func isValidKey(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}

	return true
}

// String returns the raw value for key, and whether it was present at all
// (present-but-empty is a legitimate value distinct from absent).
func (d *Deserializer) String(key string) (string, bool) {
	v, ok := d.kv[key]
	return v, ok
}

// OptString returns the value for key, or "" if absent or present-but-empty.
// Per the wire format, an empty `key: ` line and an absent key both mean
// "no value" for optional string fields.
func (d *Deserializer) OptString(key string) string {
	v := d.kv[key]
	return v
}

// Int parses key as a decimal integer, defaulting to 0 if absent/invalid.
func (d *Deserializer) Int(key string) int {
	v, ok := d.kv[key]
	if !ok || v == "" {
		return 0
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}

	return n
}

// Int64 parses key as a decimal int64, defaulting to 0 if absent/invalid.
func (d *Deserializer) Int64(key string) int64 {
	v, ok := d.kv[key]
	if !ok || v == "" {
		return 0
	}

	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}

	return n
}

// Float parses key as a float64, defaulting to 0 if absent/invalid.
func (d *Deserializer) Float(key string) float64 {
	v, ok := d.kv[key]
	if !ok || v == "" {
		return 0
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}

	return f
}

// Bool parses key as "0"/"1", defaulting to false if absent/invalid.
func (d *Deserializer) Bool(key string) bool {
	return d.kv[key] == "1"
}

// Timestamp parses key as a millisecond epoch integer.
func (d *Deserializer) Timestamp(key string) model.Timestamp {
	return model.Timestamp(d.Int64(key))
}

// Kind parses the mandatory trailing type_ field.
func (d *Deserializer) Kind() (model.Kind, error) {
	v, ok := d.kv["type_"]
	if !ok {
		return model.KindUnsupported, fmt.Errorf("wire: document has no type_ field")
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return model.KindUnsupported, fmt.Errorf("wire: invalid type_ field %q: %w", v, err)
	}

	return model.ParseKind(n), nil
}
