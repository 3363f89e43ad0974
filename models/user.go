// models/user.go
package models

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Avatar       string `json:"avatar"`
	Bio          string `json:"bio"`
	Points       int    `gorm:"default:0" json:"points"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`

	// SkillLevel is a cached copy of the tier computed from Points. It can
	// lag behind; read paths always recompute via SkillLevelForPoints and
	// this column is only refreshed opportunistically.
	SkillLevel string `gorm:"default:beginner" json:"skill_level"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Achievements []UserAchievement `gorm:"foreignKey:UserID" json:"achievements,omitempty"`
	Posts        []Post            `gorm:"foreignKey:UserID" json:"-"`
	Projects     []RedesignProject `gorm:"foreignKey:UserID" json:"-"`
}
