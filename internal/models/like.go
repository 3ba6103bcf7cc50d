package models

// LikeCounter holds the shared like count for one cerpen. The Liked flag is
// device-scoped: it lives in the visitor's session, not in the table, and is
// filled in before the counter is returned to a client.
type LikeCounter struct {
	CerpenID string `gorm:"primaryKey;size:16" json:"-"`
	Count    int    `gorm:"not null;default:0" json:"count"`
	Liked    bool   `gorm:"-" json:"liked"`
}
