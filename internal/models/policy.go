package models

// Policy is a catalog entry customers can request quotes and apply for.
type Policy struct {
	BaseModel
	Title         string  `json:"title"`
	Category      string  `gorm:"index" json:"category"`
	Details       string  `json:"details"`
	ImageURL      string  `json:"image"`
	Coverage      string  `json:"coverage"`
	Term          string  `json:"term"`
	BaseRate      float64 `gorm:"default:100" json:"baseRate"`
	MinAge        int     `gorm:"default:18" json:"minAge"`
	MaxAge        int     `gorm:"default:70" json:"maxAge"`
	PurchaseCount int64   `gorm:"default:0" json:"purchaseCount"`
}
