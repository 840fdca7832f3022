package models

import "time"

// Staff roles. Exactly one owner is expected by operational convention; the
// schema does not enforce it.
const (
	RoleOwner     = "owner"
	RoleModerator = "moderator"
)

// Capabilities is the permission set evaluated per request. Roles map to
// capability sets explicitly instead of via inheritance.
type Capabilities struct {
	CanManagePosts bool
	CanManageUsers bool
}

// CapabilitiesFor returns the capability set for a role. Unknown roles get
// no capabilities.
func CapabilitiesFor(role string) Capabilities {
	switch role {
	case RoleOwner:
		return Capabilities{CanManagePosts: true, CanManageUsers: true}
	case RoleModerator:
		return Capabilities{CanManagePosts: true}
	default:
		return Capabilities{}
	}
}

// UserModel represents a staff account (owner or moderator).
type UserModel struct {
	Base
	Username    string     `json:"username" gorm:"uniqueIndex;not null"`
	Email       string     `json:"email"    gorm:"uniqueIndex;not null"`
	Password    string     `json:"-"        gorm:"not null"`
	FullName    string     `json:"fullName"`
	Role        string     `json:"role"     gorm:"type:varchar(16);default:'moderator';index"`
	IsActive    bool       `json:"isActive" gorm:"default:true"`
	CreatedByID *string    `json:"createdBy"` // nil for the owner account
	LastLogin   *time.Time `json:"lastLogin"`
}

func (UserModel) TableName() string { return "users" }
