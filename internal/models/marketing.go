package models

// Review is customer feedback shown on the landing page.
type Review struct {
	BaseModel
	UserName    string `json:"userName"`
	UserEmail   string `gorm:"index" json:"userEmail"`
	UserPhoto   string `json:"userPhoto"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
	PolicyTitle string `json:"policyTitle,omitempty"`
}

// NewsletterSubscriber holds one opted-in email address.
type NewsletterSubscriber struct {
	BaseModel
	Email string `gorm:"uniqueIndex" json:"email"`
}
