package models

// Pizza represents a pizza stored in the PIZZA table
type Pizza struct {
	ID       int      `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Code     string   `json:"code" gorm:"column:code;size:10;uniqueIndex;not null"`
	Name     string   `json:"name" gorm:"column:nom;size:255;not null"`
	Price    float64  `json:"price" gorm:"column:prix;not null"`
	Category Category `json:"category" gorm:"column:categorie;type:varchar(50);not null"`
}

// TableName keeps the table name the pizzeria schema has always used.
// SQL in the store refers to it unquoted as PIZZA, which resolves on both
// sqlite and postgres.
func (Pizza) TableName() string {
	return "pizza"
}
