package wire

import (
	"github.com/noteforge/joplin-sync-go/internal/model"
)

// PeekKind reads just the trailing type_ field without fully decoding the
// document — used by the Synchronizer to route a freshly pulled document
// to the right Decode* function before it knows what kind it holds.
func PeekKind(doc string) (model.Kind, error) {
	return Parse(doc).Kind()
}

// Decode routes doc to the matching Decode* function based on its type_
// field and returns the result as one of *model.Note, *model.Folder,
// *model.Tag, *model.NoteTag, or *model.Resource. Callers type-switch on
// the result. Kind() on any of these pointer types mirrors the dynamic
// type, so a type switch and a Kind() check never disagree.
//
// An unrecognized type_ tag is forward-compatibility, not an error: Decode
// returns (nil, nil) and callers must skip the item silently.
func Decode(doc string) (any, error) {
	k, err := PeekKind(doc)
	if err != nil {
		return nil, err
	}

	switch k {
	case model.KindNote:
		return DecodeNote(doc)
	case model.KindFolder:
		return DecodeFolder(doc)
	case model.KindTag:
		return DecodeTag(doc)
	case model.KindNoteTag:
		return DecodeNoteTag(doc)
	case model.KindResource:
		return DecodeResource(doc)
	default:
		return nil, nil
	}
}
