package entity

import "time"

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

// ParseRole maps a caller-supplied value onto the closed role set.
// Unknown values come back empty.
func ParseRole(value string) Role {
	switch Role(value) {
	case RoleAdmin:
		return RoleAdmin
	case RoleUser:
		return RoleUser
	default:
		return ""
	}
}

// User represents a persisted user account.
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	// The hash never leaves the service; it is set only through the bcrypt hasher.
	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	Role         Role   `gorm:"column:role;type:varchar(50);index;not null;default:User" json:"role"`
	IsActive     bool   `gorm:"column:is_active;not null;default:true" json:"is_active"`

	// Password lifecycle bookkeeping. The reset hash and its expiry are set
	// and cleared together.
	PasswordChangedAt      *time.Time `gorm:"column:password_changed_at" json:"-"`
	PasswordResetTokenHash *string    `gorm:"column:password_reset_token_hash;type:varchar(64)" json:"-"`
	PasswordResetExpiresAt *time.Time `gorm:"column:password_reset_expires_at" json:"-"`
}

// TableName overrides default pluralised name.
func (User) TableName() string {
	return "users"
}

// PasswordChangedAfter reports whether the password changed after the given
// token issue time. Comparison is at second granularity, matching the
// resolution of JWT timestamps.
func (u *User) PasswordChangedAfter(issuedAt time.Time) bool {
	if u == nil || u.PasswordChangedAt == nil {
		return false
	}
	return issuedAt.Unix() < u.PasswordChangedAt.Unix()
}
