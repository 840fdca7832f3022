package models

// Category property types for dynamic per-category schemas.
const (
	PropertyTypeText        = "text"
	PropertyTypeNumber      = "number"
	PropertyTypeBoolean     = "boolean"
	PropertyTypeSelect      = "select"
	PropertyTypeMultiselect = "multiselect"
)

// CategoryProperty declares one field of a category's property schema.
type CategoryProperty struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Options  []string `json:"options,omitempty"`
	Required bool     `json:"required"`
	Unit     string   `json:"unit,omitempty"`
}

// CategoryModel is a node of the hierarchical taxonomy. The parent reference
// forms a tree; cycles are not guarded against.
type CategoryModel struct {
	Base
	Name        string             `json:"name"  gorm:"uniqueIndex;size:100;not null"`
	Slug        string             `json:"slug"  gorm:"uniqueIndex;not null"`
	ParentID    *string            `json:"parentCategory" gorm:"index"`
	Parent      *CategoryModel     `json:"parent,omitempty"   gorm:"foreignKey:ParentID"`
	Children    []CategoryModel    `json:"children,omitempty" gorm:"foreignKey:ParentID"`
	Properties  []CategoryProperty `json:"properties" gorm:"type:json;serializer:json"`
	IsActive    bool               `json:"isActive"  gorm:"default:true;index"`
	SortOrder   int                `json:"sortOrder" gorm:"default:0"`
	CreatedByID string             `json:"createdBy"`
	UpdatedByID string             `json:"updatedBy"`
}

func (CategoryModel) TableName() string { return "categories" }
