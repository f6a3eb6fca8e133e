package models

import "time"

// Blog is a marketing post written by an admin or an agent. Visits only ever
// go up, one per detail-page view.
type Blog struct {
	BaseModel
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ImageURL    string    `json:"image"`
	AuthorName  string    `json:"author"`
	AuthorEmail string    `gorm:"index" json:"authorEmail"`
	PublishedAt time.Time `json:"publishDate"`
	Visits      int64     `gorm:"default:0" json:"totalVisit"`
}
