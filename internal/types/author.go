package types

type Author struct {
	ID        int    `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName string `gorm:"not null;column:first_name" json:"first_name"`
	LastName  string `gorm:"not null;column:last_name" json:"last_name"`
}

func (Author) TableName() string {
	return "author"
}
