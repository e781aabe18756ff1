package types

// Document rows never store their edge sets. AuthorIDs and ReferenceIDs are
// hydrated from the edge tables at read time so they can never go stale.
type Document struct {
	ID           int    `gorm:"primaryKey" json:"id"`
	Title        string `gorm:"not null;column:title" json:"title"`
	Body         string `gorm:"not null;column:body" json:"body"`
	AuthorIDs    []int  `gorm:"-" json:"author_ids"`
	ReferenceIDs []int  `gorm:"-" json:"reference_ids"`
}

func (Document) TableName() string {
	return "document"
}
