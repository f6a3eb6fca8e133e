package models

// User roles. Role changes happen only through the admin endpoint; a fresh
// registration or first social sign-in always starts as customer.
const (
	RoleCustomer = "customer"
	RoleAgent    = "agent"
	RoleAdmin    = "admin"
)

// User represents a marketplace account. Email is the identity key shared
// with the external identity provider.
type User struct {
	BaseModel
	Name         string `json:"name"`
	Email        string `gorm:"uniqueIndex" json:"email"`
	PhotoURL     string `json:"photoURL"`
	Role         string `gorm:"default:customer" json:"role"`
	PasswordHash string `json:"-"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// IsAgent reports whether the user holds the agent role.
func (u *User) IsAgent() bool { return u.Role == RoleAgent }
