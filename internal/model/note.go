package model

// Note is a Joplin note. Encryption fields are always carried at their
// zero value in this core (see the module's encryption Non-goal) but are
// part of every struct so the wire format round-trips against a real
// server untouched.
type Note struct {
	ID      ID
	Body    string
	Title   string
	ParentID ID

	CreatedTime Timestamp
	UpdatedTime Timestamp

	IsConflict int // 0 or 1
	Latitude   float64
	Longitude  float64
	Altitude   float64

	Author           string
	SourceURL        string
	IsTodo           int
	TodoDue          Timestamp
	TodoCompleted    Timestamp
	Source           string
	SourceApplication string
	ApplicationData  string
	Order            float64

	UserCreatedTime Timestamp
	UserUpdatedTime Timestamp

	EncryptionCipherText string
	EncryptionApplied    int

	MarkupLanguage int

	IsShared int
	ShareID  string

	ConflictOriginalID ID
	MasterKeyID        string
}

// Kind identifies this record's item type.
func (*Note) Kind() Kind { return KindNote }

// NewNote builds a fresh note owned by parentID, stamping creation and
// update times the way a local edit does.
func NewNote(parentID ID, title, body string) *Note {
	now := Now()

	return &Note{
		ID:              NewID(),
		ParentID:        parentID,
		Title:           title,
		Body:            body,
		CreatedTime:     now,
		UpdatedTime:     now,
		UserCreatedTime: now,
		UserUpdatedTime: now,
		MarkupLanguage:  1, // Markdown
		Order:           0,
	}
}
