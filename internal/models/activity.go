package models

// Audit actions recorded by the activity log.
const (
	ActionLogin          = "login"
	ActionPostCreate     = "post_create"
	ActionPostUpdate     = "post_update"
	ActionPostDelete     = "post_delete"
	ActionPostHardDelete = "post_hard_delete"
	ActionPostRestore    = "post_restore"
	ActionPostFeature    = "post_feature"
	ActionCategoryCreate = "category_create"
	ActionCategoryUpdate = "category_update"
	ActionCategoryDelete = "category_delete"
	ActionUserCreate     = "user_create"
	ActionUserUpdate     = "user_update"
	ActionUserDelete     = "user_delete"
)

// ActivityModel is an append-only audit record of a user action.
type ActivityModel struct {
	Base
	UserID       string     `json:"userId"    gorm:"index;not null"`
	User         *UserModel `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Action       string     `json:"action"    gorm:"index;not null"`
	Resource     string     `json:"resource"  gorm:"index;not null"`
	ResourceID   string     `json:"resourceId,omitempty" gorm:"index"`
	Details      string     `json:"details,omitempty" gorm:"type:text"`
	IPAddress    string     `json:"ipAddress,omitempty"`
	UserAgent    string     `json:"userAgent,omitempty" gorm:"type:text"`
	Success      bool       `json:"success"   gorm:"default:true"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
}

func (ActivityModel) TableName() string { return "activities" }
