package entities

// Record is a single loosely-typed document within a collection. Values are
// whatever JSON decoding produced; callers that need structure use the typed
// views in this package.
type Record map[string]any

// ID returns the record's id field, or "" if absent.
func (r Record) ID() string {
	return r.StringField("id")
}

// StringField returns the named field as a string, or "" when the field is
// absent or not a string.
func (r Record) StringField(key string) string {
	s, _ := r[key].(string)
	return s
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// Merge overlays partial on top of the record: top-level keys of partial
// overwrite, every other key is preserved. The receiver is not modified.
func (r Record) Merge(partial Record) Record {
	merged := r.Clone()
	for k, v := range partial {
		merged[k] = v
	}
	return merged
}

// Document is the single root structure holding every collection plus the
// per-user settings mapping. It is reloaded from disk on every operation and
// rewritten wholesale after every mutation.
type Document struct {
	Users       []Record          `json:"users"`
	Entries     []Record          `json:"entries"`
	Goals       []Record          `json:"goals"`
	ResetTokens []Record          `json:"resetTokens"`
	Invitations []Record          `json:"invitations"`
	Settings    map[string]Record `json:"settings"`
}

// NewDocument returns an empty document with every collection initialized.
func NewDocument() *Document {
	return &Document{
		Users:       []Record{},
		Entries:     []Record{},
		Goals:       []Record{},
		ResetTokens: []Record{},
		Invitations: []Record{},
		Settings:    map[string]Record{},
	}
}

// Normalize replaces nil collections with empty ones. A syntactically valid
// document missing a collection is not corruption; absent means empty.
func (d *Document) Normalize() {
	if d.Users == nil {
		d.Users = []Record{}
	}
	if d.Entries == nil {
		d.Entries = []Record{}
	}
	if d.Goals == nil {
		d.Goals = []Record{}
	}
	if d.ResetTokens == nil {
		d.ResetTokens = []Record{}
	}
	if d.Invitations == nil {
		d.Invitations = []Record{}
	}
	if d.Settings == nil {
		d.Settings = map[string]Record{}
	}
}
