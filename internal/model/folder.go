package model

import "strings"

// Folder is a Joplin notebook.
type Folder struct {
	ID    ID
	Title string

	CreatedTime Timestamp
	UpdatedTime Timestamp

	UserCreatedTime Timestamp
	UserUpdatedTime Timestamp

	EncryptionCipherText string
	EncryptionApplied    int

	ParentID ID
	IsShared int
	ShareID  string

	MasterKeyID string
	Icon        string
}

// Kind identifies this record's item type.
func (*Folder) Kind() Kind { return KindFolder }

// SetTitle sets the folder title, collapsing embedded newlines to spaces —
// the wire format's title line cannot contain a line break.
func (f *Folder) SetTitle(title string) {
	f.Title = strings.ReplaceAll(title, "\n", " ")
}

// NewFolder builds a fresh top-level or nested notebook.
func NewFolder(parentID ID, title string) *Folder {
	now := Now()
	f := &Folder{
		ID:              NewID(),
		ParentID:        parentID,
		CreatedTime:     now,
		UpdatedTime:     now,
		UserCreatedTime: now,
		UserUpdatedTime: now,
	}
	f.SetTitle(title)

	return f
}
