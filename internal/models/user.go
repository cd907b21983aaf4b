package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// User represents a citizen or administrator account
type User struct {
	gorm.Model

	UserID       string `json:"user_id" gorm:"uniqueIndex"`
	Name         string `json:"name" gorm:"not null"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-"`
	Phone        string `json:"phone"`
	Role         string `json:"role" gorm:"default:user"` // "user" or "admin"
	IsVerified   bool   `json:"is_verified" gorm:"default:false"`
}

// Role constants
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// BeforeCreate hook to auto-generate UserID and normalize the email
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == "" {
		u.UserID = fmt.Sprintf("USR%d%03d", time.Now().Unix(), time.Now().Nanosecond()%1000)
	}

	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	if u.Role == "" {
		u.Role = RoleUser
	}

	return nil
}

// IsAdmin reports whether the account holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
