package models

// Cerpen is one published short story. ID is assigned once at creation and
// never changes; Date is an ISO date (yyyy-mm-dd) used for recency sorting.
type Cerpen struct {
	ID       string `gorm:"primaryKey;size:16" json:"id"`
	Title    string `gorm:"not null" json:"title"`
	Category string `json:"category"`
	Date     string `gorm:"index" json:"date"`
	Summary  string `json:"summary"`
	Content  string `gorm:"type:text" json:"content"`
	// Cover is either empty, a data URI, or a resolved blob URL.
	Cover string `gorm:"type:text" json:"cover"`
}

// DefaultCategory is used when a story is submitted without one.
const DefaultCategory = "Umum"
