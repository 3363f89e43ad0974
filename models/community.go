// models/community.go
package models

import "time"

// LikeTargetType distinguishes what a like points at. Likes are polymorphic
// over posts and comments; only post likes count toward likes_received.
type LikeTargetType string

const (
	LikeTargetPost    LikeTargetType = "post"
	LikeTargetComment LikeTargetType = "comment"
)

type Post struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	Title         string    `gorm:"not null" json:"title"`
	Content       string    `gorm:"not null" json:"content"`
	Images        string    `json:"images"` // JSON array of image filenames
	LikesCount    int       `gorm:"default:0" json:"likes_count"`
	CommentsCount int       `gorm:"default:0" json:"comments_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	User     User      `gorm:"foreignKey:UserID" json:"-"`
	Comments []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
}

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Content   string    `gorm:"not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`

	Post Post `gorm:"foreignKey:PostID" json:"-"`
	User User `gorm:"foreignKey:UserID" json:"-"`
}

type Like struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"not null;uniqueIndex:idx_like_target" json:"user_id"`
	TargetType LikeTargetType `gorm:"not null;uniqueIndex:idx_like_target" json:"target_type"`
	TargetID   uint           `gorm:"not null;uniqueIndex:idx_like_target" json:"target_id"`
	CreatedAt  time.Time      `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// RedesignProject status values.
const (
	ProjectStatusDraft     = "draft"
	ProjectStatusCompleted = "completed"
)

type RedesignProject struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	Title         string    `gorm:"not null" json:"title"`
	UploadToken   string    `gorm:"uniqueIndex" json:"upload_token"`
	OriginalImage string    `json:"original_image"`
	FinalImage    string    `json:"final_image"`
	TargetStyle   string    `json:"target_style"`
	Status        string    `gorm:"default:draft;index" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
