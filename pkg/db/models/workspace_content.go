package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkspaceContent is a seller's workspace story post (The Kitchen, The
// Garden, The Studio).
type WorkspaceContent struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SellerProfileID uuid.UUID `gorm:"column:seller_profile_id;type:uuid;not null"`
	Section         string    `gorm:"column:section;not null"`
	Title           *string   `gorm:"column:title"`
	Body            *string   `gorm:"column:body"`
	IsPublished     bool      `gorm:"column:is_published;not null;default:false"`

	Media []WorkspaceContentMedia `gorm:"foreignKey:WorkspaceContentID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// WorkspaceContentMedia is a photo or video attached to a workspace post.
type WorkspaceContentMedia struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	WorkspaceContentID uuid.UUID `gorm:"column:workspace_content_id;type:uuid;not null"`
	URL                string    `gorm:"column:url;not null"`
	Kind               string    `gorm:"column:kind;not null;default:'image'"`
	SortOrder          int       `gorm:"column:sort_order;not null;default:0"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime"`
}
