package entity

import "time"

// Comment is one review comment for a (style, description, process) key.
// Writes are upsert-by-key: saving the same key again overwrites the text.
// DescriptionID is nil for legacy rows written before descriptions became a
// separate relation.
type Comment struct {
	ID            string    `json:"id" gorm:"primaryKey;size:32"`
	StyleID       string    `json:"style_id" gorm:"size:32;not null;index;uniqueIndex:ux_comments_key"`
	DescriptionID *string   `json:"description_id,omitempty" gorm:"size:32;index;uniqueIndex:ux_comments_key"`
	Process       string    `json:"process" gorm:"size:100;not null;uniqueIndex:ux_comments_key"`
	Responsible   string    `json:"responsible" gorm:"size:100"`
	Text          string    `json:"text" gorm:"type:text"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relations
	Style       *Style       `json:"style,omitempty" gorm:"foreignKey:StyleID"`
	Description *Description `json:"description,omitempty" gorm:"foreignKey:DescriptionID"`
}

func (Comment) TableName() string {
	return "comments"
}
