package entity

import "time"

// Style lifecycle stages. An overview row is the quick-add entry; promoting it
// clones a new detail row and leaves the original untouched.
const (
	SourceOverview = "overview"
	SourceDetail   = "detail"
)

// Style is one production style record. The (customer, style_no) pair is not
// unique: attribute variants and the overview/detail split share it.
type Style struct {
	ID             string `json:"id" gorm:"primaryKey;size:32"`
	CustomerID     string `json:"customer_id" gorm:"size:32;not null;index"`
	Season         string `json:"season" gorm:"size:100"`
	StyleNo        string `json:"style_no" gorm:"size:100;index"`
	Program        string `json:"program" gorm:"size:100"`
	ProductionLine string `json:"production_line" gorm:"size:100"`
	OrderQty       int    `json:"order_qty" gorm:"not null;default:0"`
	APM            string `json:"apm" gorm:"size:100"`
	Technician     string `json:"technician" gorm:"size:100"`
	QC             string `json:"qc" gorm:"size:100"`
	QA             string `json:"qa" gorm:"size:100"`
	TQS            string `json:"tqs" gorm:"size:100"`
	Source         string `json:"source" gorm:"size:16;not null;default:overview;index"`

	CreatedAt time.Time `json:"created_at" gorm:"<-:create"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Customer     *Customer     `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Descriptions []Description `json:"descriptions,omitempty" gorm:"foreignKey:StyleID;constraint:OnDelete:CASCADE"`
	Comments     []Comment     `json:"comments,omitempty" gorm:"foreignKey:StyleID;constraint:OnDelete:CASCADE"`
	Images       []Image       `json:"images,omitempty" gorm:"foreignKey:StyleID;constraint:OnDelete:CASCADE"`
}

func (Style) TableName() string {
	return "styles"
}
