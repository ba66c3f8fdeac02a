package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the authorization role carried by a user account.
type Role string

// Roles assignable to a user. RoleAdmin is only ever set by direct
// administrative action (see cmd/seed); no endpoint mutates roles.
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents an authenticated user account.
//
// PasswordKey and PasswordSalt hold the PBKDF2 material for the current
// password; both are replaced together on every password change.
// ResetTokenHash and ResetTokenExpiry are either both set (an outstanding
// password-reset request) or both nil.
type User struct {
	ID               uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Name             string     `json:"name" gorm:"size:255;not null"`
	Email            string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Role             Role       `json:"role" gorm:"size:50;not null;default:'user'"`
	PasswordKey      []byte     `json:"-" gorm:"type:varbinary(64);not null"` // Never expose in JSON
	PasswordSalt     []byte     `json:"-" gorm:"type:varbinary(16);not null"`
	ResetTokenHash   *string    `json:"-" gorm:"size:64;index"`
	ResetTokenExpiry *time.Time `json:"-"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// BeforeCreate sets UUID and default role before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

// SetResetToken stores the digest of an outstanding reset token and its
// expiry on the user.
func (u *User) SetResetToken(digest string, expiry time.Time) {
	u.ResetTokenHash = &digest
	u.ResetTokenExpiry = &expiry
}

// ClearResetToken removes any outstanding reset token material.
func (u *User) ClearResetToken() {
	u.ResetTokenHash = nil
	u.ResetTokenExpiry = nil
}
