// Package wire implements the line-oriented text format Joplin Server
// stores each item as: an optional title line, an optional blank-separated
// body, then a blank line, then "key: value" metadata lines with the item
// kind tag always last.
package wire

import (
	"strconv"
	"strings"

	"github.com/noteforge/joplin-sync-go/internal/model"
)

// Serializer builds a document field by field, matching the order each
// model type's codec calls them in. Call Finish to get the final text.
type Serializer struct {
	title   string
	body    string
	hasBody bool
	lines   []string
}

// NewSerializer starts a document with an optional title/body header.
// Pass "", false when the kind (e.g. NoteTag) has no title/body at all.
func NewSerializer(title, body string, hasBody bool) *Serializer {
	return &Serializer{title: title, body: body, hasBody: hasBody}
}

// WriteString appends a `key: value` line unconditionally.
func (s *Serializer) WriteString(key, value string) {
	s.lines = append(s.lines, key+": "+value)
}

// WriteOptString appends `key: value` or `key: ` when value is empty —
// both forms round-trip to an absent value on deserialize.
func (s *Serializer) WriteOptString(key string, value string) {
	s.WriteString(key, value)
}

// WriteInt appends a `key: <int>` line.
func (s *Serializer) WriteInt(key string, value int) {
	s.WriteString(key, strconv.Itoa(value))
}

// WriteInt64 appends a `key: <int64>` line.
func (s *Serializer) WriteInt64(key string, value int64) {
	s.WriteString(key, strconv.FormatInt(value, 10))
}

// WriteFloat appends a `key: <float>` line. Joplin's wire format renders
// floats without trailing zeros, matching Rust's default f64 Display.
func (s *Serializer) WriteFloat(key string, value float64) {
	s.WriteString(key, strconv.FormatFloat(value, 'f', -1, 64))
}

// WriteBool appends a `key: 0` or `key: 1` line.
func (s *Serializer) WriteBool(key string, value bool) {
	if value {
		s.WriteString(key, "1")
	} else {
		s.WriteString(key, "0")
	}
}

// WriteTimestamp appends a `key: <millis>` line.
func (s *Serializer) WriteTimestamp(key string, t model.Timestamp) {
	s.WriteString(key, t.String())
}

// WriteOptTimestamp writes the timestamp, or an empty value when t is zero
// (used for optional fields like todo_due/todo_completed).
func (s *Serializer) WriteOptTimestamp(key string, t model.Timestamp) {
	if t.Zero() {
		s.WriteString(key, "")
		return
	}

	s.WriteTimestamp(key, t)
}

// WriteKind appends the final `type_: <n>` line. Callers must call this
// last — Finish does not enforce ordering itself.
func (s *Serializer) WriteKind(k model.Kind) {
	s.WriteInt("type_", int(k))
}

// Finish assembles the full document: title, blank line, body (if any),
// blank line, then the accumulated key/value lines.
func (s *Serializer) Finish() string {
	var b strings.Builder

	b.WriteString(s.title)

	if s.hasBody {
		b.WriteString("\n\n")
		b.WriteString(s.body)
	}

	b.WriteString("\n\n")
	b.WriteString(strings.Join(s.lines, "\n"))

	return b.String()
}
