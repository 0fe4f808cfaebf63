package entity

import "time"

// Description is one free-text description line of a style.
type Description struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	StyleID   string    `json:"style_id" gorm:"size:32;not null;index"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Style    *Style    `json:"style,omitempty" gorm:"foreignKey:StyleID"`
	Images   []Image   `json:"images,omitempty" gorm:"foreignKey:DescriptionID"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:DescriptionID"`
}

func (Description) TableName() string {
	return "descriptions"
}
