package sync

import (
	"context"
	"fmt"

	"github.com/noteforge/joplin-sync-go/internal/model"
	"github.com/noteforge/joplin-sync-go/internal/wire"
)

// encodeItem loads id/kind from the store and renders its wire document.
func (e *Engine) encodeItem(ctx context.Context, id model.ID, kind model.Kind) (string, error) {
	switch kind {
	case model.KindNote:
		n, err := e.store.GetNote(ctx, id)
		if err != nil {
			return "", err
		}

		return wire.EncodeNote(n), nil
	case model.KindFolder:
		f, err := e.store.GetFolder(ctx, id)
		if err != nil {
			return "", err
		}

		return wire.EncodeFolder(f), nil
	case model.KindTag:
		t, err := e.store.GetTag(ctx, id)
		if err != nil {
			return "", err
		}

		return wire.EncodeTag(t), nil
	case model.KindNoteTag:
		nt, err := e.store.GetNoteTag(ctx, id)
		if err != nil {
			return "", err
		}

		return wire.EncodeNoteTag(nt), nil
	case model.KindResource:
		r, err := e.store.GetResource(ctx, id)
		if err != nil {
			return "", err
		}

		return wire.EncodeResource(r), nil
	default:
		return "", fmt.Errorf("sync: cannot encode unsupported kind %s", kind)
	}
}

// applyIncomingDoc decodes a document pulled from the remote and writes it
// into the Item Store unconditionally, returning the kind that was applied.
// Phase 3 never runs conflict detection — that is Phase 2's job alone; an
// incoming remote version always overwrites whatever is stored locally. An
// unrecognized type_ tag decodes to (nil, nil) and is reported back as
// model.KindUnsupported so the caller can skip it without error.
func (e *Engine) applyIncomingDoc(ctx context.Context, doc string) (model.Kind, error) {
	decoded, err := wire.Decode(doc)
	if err != nil {
		return model.KindUnsupported, err
	}

	switch v := decoded.(type) {
	case *model.Note:
		return model.KindNote, e.store.PutNote(ctx, v)
	case *model.Folder:
		return model.KindFolder, e.store.PutFolder(ctx, v)
	case *model.Tag:
		return model.KindTag, e.store.PutTag(ctx, v)
	case *model.NoteTag:
		return model.KindNoteTag, e.store.PutNoteTag(ctx, v)
	case *model.Resource:
		return model.KindResource, e.store.PutResource(ctx, v)
	case nil:
		return model.KindUnsupported, nil
	default:
		return model.KindUnsupported, fmt.Errorf("sync: unexpected decoded type %T", v)
	}
}
