package models

import "time"

// User represents a back-office user. Password holds a bcrypt hash and is
// never serialized.
type User struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username  string     `json:"username" gorm:"uniqueIndex;type:varchar(100)"`
	Password  string     `json:"-" gorm:"type:varchar(255)"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
