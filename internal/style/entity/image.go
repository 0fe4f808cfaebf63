package entity

import "time"

// Image is a reference picture attached to a style description. ObjectKey
// points into object storage; several rows may share one key after a style
// is promoted (the clone copies the row, not the blob).
type Image struct {
	ID            string    `json:"id" gorm:"primaryKey;size:32"`
	StyleID       string    `json:"style_id" gorm:"size:32;not null;index"`
	DescriptionID string    `json:"description_id" gorm:"size:32;not null;index"`
	Name          string    `json:"name" gorm:"size:256;not null"`
	ObjectKey     string    `json:"object_key" gorm:"size:512;not null"`
	ContentType   string    `json:"content_type" gorm:"size:128"`
	Size          int64     `json:"size" gorm:"default:0"`
	CreatedAt     time.Time `json:"created_at"`

	// Relations
	Style       *Style       `json:"style,omitempty" gorm:"foreignKey:StyleID"`
	Description *Description `json:"description,omitempty" gorm:"foreignKey:DescriptionID"`
}

func (Image) TableName() string {
	return "images"
}
