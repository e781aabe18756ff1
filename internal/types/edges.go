package types

// AuthoredBy links an Author to a Document they authored. The composite
// unique index keeps the relation set-like.
type AuthoredBy struct {
	AuthorID   int `gorm:"not null;column:author_id;uniqueIndex:idx_authored_by_pair" json:"author_id"`
	DocumentID int `gorm:"not null;column:document_id;uniqueIndex:idx_authored_by_pair" json:"document_id"`
}

func (AuthoredBy) TableName() string {
	return "authored_by"
}

// ReferencedBy is the directed reference edge between two documents.
type ReferencedBy struct {
	ReferencingID int `gorm:"not null;column:referencing_id;uniqueIndex:idx_referenced_by_pair" json:"referencing_id"`
	ReferencedID  int `gorm:"not null;column:referenced_id;uniqueIndex:idx_referenced_by_pair" json:"referenced_id"`
}

func (ReferencedBy) TableName() string {
	return "referenced_by"
}
