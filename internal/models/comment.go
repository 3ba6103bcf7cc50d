package models

// Comment is a reader comment on a cerpen. Comments are never edited or
// deleted; newest entries are served first.
type Comment struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	CerpenID string `gorm:"index;size:16;not null" json:"-"`
	Name     string `json:"name"` // empty means anonymous, label applied at render time
	Text     string `gorm:"type:text;not null" json:"text"`
	Date     string `json:"date"` // RFC 3339, set at submission time
}
