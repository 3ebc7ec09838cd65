package model

import "path/filepath"

// Resource is a Joplin attachment. Its binary payload is stored separately
// from its metadata record, under ".resource/<id>.<file_extension>" on the
// remote.
type Resource struct {
	ID       ID
	Mime     string
	Filename string

	CreatedTime Timestamp
	UpdatedTime Timestamp

	UserCreatedTime Timestamp
	UserUpdatedTime Timestamp

	FileExtension string

	EncryptionCipherText       string
	EncryptionApplied          int
	EncryptionBlobEncrypted    int

	Size int64

	IsShared    int
	ShareID     string
	MasterKeyID string
}

// Kind identifies this record's item type.
func (*Resource) Kind() Kind { return KindResource }

// BlobPath returns the remote path of this resource's binary payload,
// relative to the sync root, e.g. ".resource/<id>.png".
func (r *Resource) BlobPath() string {
	name := r.ID.String()
	if r.FileExtension != "" {
		name += "." + r.FileExtension
	}

	return filepath.Join(".resource", name)
}

// NewResource builds a fresh resource record for a local file about to be
// uploaded. size is the blob's byte length.
func NewResource(filename, mime, ext string, size int64) *Resource {
	now := Now()

	return &Resource{
		ID:              NewID(),
		Mime:            mime,
		Filename:        filename,
		FileExtension:   ext,
		Size:            size,
		CreatedTime:     now,
		UpdatedTime:     now,
		UserCreatedTime: now,
		UserUpdatedTime: now,
	}
}
