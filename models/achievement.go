// models/achievement.go
package models

import "time"

// ConditionType is the category of user activity an achievement threshold
// is measured against. It is a closed set: the progress evaluator switches
// exhaustively over these values and rejects anything else.
type ConditionType string

const (
	ConditionPostCount     ConditionType = "post_count"
	ConditionLikesReceived ConditionType = "likes_received"
	ConditionCommentCount  ConditionType = "comment_count"
	ConditionProjectCount  ConditionType = "project_count"
)

type Achievement struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	Name           string        `gorm:"not null;uniqueIndex" json:"name"`
	Description    string        `gorm:"not null" json:"description"`
	Icon           string        `json:"icon"`
	ConditionType  ConditionType `gorm:"not null;index" json:"condition_type"`
	ConditionValue int           `gorm:"not null" json:"condition_value"`

	// Points is the reward the points-awarding subsystem pays out on grant.
	// This service never mutates user points itself.
	Points int `gorm:"default:10" json:"points"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserAchievement records one irreversible grant. The composite unique
// index is what makes concurrent check-and-grant calls safe: the insert
// either lands exactly once or conflicts.
type UserAchievement struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;uniqueIndex:idx_user_achievement" json:"user_id"`
	AchievementID uint      `gorm:"not null;uniqueIndex:idx_user_achievement" json:"achievement_id"`
	EarnedAt      time.Time `json:"earned_at"`

	// Relationships
	User        User        `gorm:"foreignKey:UserID" json:"-"`
	Achievement Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
}
