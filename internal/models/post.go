package models

import "strings"

// Post statuses. Soft delete flips status to deleted and is reversible;
// inactive is a separately-managed state that still excludes the post from
// default listings.
const (
	PostStatusActive   = "active"
	PostStatusInactive = "inactive"
	PostStatusDeleted  = "deleted"
)

// FileInfo describes a stored upload. Embedded as JSON on the owning post,
// not persisted as its own table.
type FileInfo struct {
	OriginalName string `json:"originalName"`
	FileName     string `json:"fileName"`
	ThumbName    string `json:"thumbName,omitempty"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mimeType"`
	Path         string `json:"path"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
}

// PostModel is a product listing.
type PostModel struct {
	Base
	Title      string         `json:"title"      gorm:"not null"`
	Body       string         `json:"body"       gorm:"type:text;not null"`
	Price      float64        `json:"price"      gorm:"not null;default:0"`
	CategoryID string         `json:"categoryId" gorm:"index;not null"`
	Category   *CategoryModel `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Properties PropertyMap    `json:"categoryProperties" gorm:"type:json;serializer:json"`
	Tags       StringSlice    `json:"tags"       gorm:"type:json;serializer:json"`
	// TagsText mirrors Tags as a space-joined string so the FULLTEXT index
	// covers tag terms. Maintained on every write.
	TagsText    string     `json:"-"          gorm:"type:text"`
	Status      string     `json:"status"     gorm:"type:varchar(16);default:'active';index"`
	Views       int        `json:"views"      gorm:"default:0"`
	Featured    bool       `json:"featured"   gorm:"default:false;index"`
	Image       *FileInfo  `json:"image"      gorm:"type:json;serializer:json"`
	CreatedByID string     `json:"createdBy"  gorm:"index"`
	UpdatedByID string     `json:"updatedBy"`
	CreatedBy   *UserModel `json:"-" gorm:"foreignKey:CreatedByID"`
}

func (PostModel) TableName() string { return "posts" }

// SyncTagsText refreshes the derived full-text tag column.
func (p *PostModel) SyncTagsText() {
	p.TagsText = strings.Join(p.Tags, " ")
}

// IsDeleted reports whether the post is soft-deleted.
func (p *PostModel) IsDeleted() bool { return p.Status == PostStatusDeleted }
