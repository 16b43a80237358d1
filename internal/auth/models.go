package auth

import "time"

const (
	StatusActive  = "active"
	StatusBlocked = "blocked"
)

type Session struct {
	SessionID string    `gorm:"primaryKey" json:"-"`
	UserID    string    `gorm:"not null;unique" json:"-"`
	ExpiresAt time.Time `gorm:"not null"`
}

// Professor is the profile created on a professor's first successful
// sign-in. Identity fields come from the identity provider; only Status is
// mutated afterwards, and only by admin action.
type Professor struct {
	UserID      string    `gorm:"primaryKey" json:"user_id"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	DisplayName string    `gorm:"not null" json:"display_name"`
	PhotoURL    string    `json:"photo_url"`
	EmployeeID  string    `json:"employee_id,omitempty"`
	Role        string    `gorm:"default:'professor'" json:"role"`
	Status      string    `gorm:"default:'active'" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AdminRole membership is what makes a user an admin. It is a side table
// keyed by user ID, deliberately not a field on the professor profile.
// PasswordHash backs the bootstrap admin login only.
type AdminRole struct {
	UserID       string    `gorm:"primaryKey" json:"user_id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Session) TableName() string   { return "app_auth.sessions" }
func (Professor) TableName() string { return "app_auth.professors" }
func (AdminRole) TableName() string { return "app_auth.admin_roles" }
