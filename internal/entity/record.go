package entity

// Record is one extracted fact: a key, its value, and optional supporting text.
// Keys are not unique within a document and records are never deduplicated.
type Record struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	Comments string `json:"comments"`
}

// NewRecord builds a record without supporting text.
func NewRecord(key, value string) Record {
	return Record{Key: key, Value: value}
}

// WithComments returns a copy of r carrying the given supporting text.
func (r Record) WithComments(comments string) Record {
	r.Comments = comments
	return r
}
