package entity

import "time"

// Customer owns styles. Names are upper-cased at write time and unique.
type Customer struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	Name      string    `json:"name" gorm:"size:100;not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Styles []Style `json:"styles,omitempty" gorm:"foreignKey:CustomerID"`
}

func (Customer) TableName() string {
	return "customers"
}
