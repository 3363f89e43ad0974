// gamification/counters.go
package gamification

import (
	"errors"
	"fmt"

	"greenmorph/models"

	"gorm.io/gorm"
)

// ErrCountersUnavailable means the activity counter queries failed and the
// whole achievement check must be aborted. Safe to retry.
var ErrCountersUnavailable = errors.New("activity counters unavailable")

// ActivityCounters is a read-only snapshot of a user's aggregate activity.
// The counters are owned by the community and redesign subsystems; this
// package only reads them.
type ActivityCounters struct {
	PostsCount         int64 `json:"posts_count"`
	TotalLikesReceived int64 `json:"total_likes_received"`
	CommentsCount      int64 `json:"comments_count"`
	ProjectsCount      int64 `json:"projects_count"`
}

// GetActivityCounters loads the counter snapshot for one user. Likes
// received are counted across the user's posts, not likes the user gave.
func GetActivityCounters(db *gorm.DB, userID uint) (ActivityCounters, error) {
	var c ActivityCounters

	if err := db.Model(&models.Post{}).
		Where("user_id = ?", userID).
		Count(&c.PostsCount).Error; err != nil {
		return c, fmt.Errorf("%w: posts: %v", ErrCountersUnavailable, err)
	}

	if err := db.Model(&models.Like{}).
		Where("target_type = ? AND target_id IN (?)",
			models.LikeTargetPost,
			db.Model(&models.Post{}).Select("id").Where("user_id = ?", userID)).
		Count(&c.TotalLikesReceived).Error; err != nil {
		return c, fmt.Errorf("%w: likes: %v", ErrCountersUnavailable, err)
	}

	if err := db.Model(&models.Comment{}).
		Where("user_id = ?", userID).
		Count(&c.CommentsCount).Error; err != nil {
		return c, fmt.Errorf("%w: comments: %v", ErrCountersUnavailable, err)
	}

	if err := db.Model(&models.RedesignProject{}).
		Where("user_id = ? AND status = ?", userID, models.ProjectStatusCompleted).
		Count(&c.ProjectsCount).Error; err != nil {
		return c, fmt.Errorf("%w: projects: %v", ErrCountersUnavailable, err)
	}

	return c, nil
}

// counterFor maps a condition type to its counter value. Unknown types are
// a programmer error, not bad input.
func (c ActivityCounters) counterFor(ct models.ConditionType) (int64, error) {
	switch ct {
	case models.ConditionPostCount:
		return c.PostsCount, nil
	case models.ConditionLikesReceived:
		return c.TotalLikesReceived, nil
	case models.ConditionCommentCount:
		return c.CommentsCount, nil
	case models.ConditionProjectCount:
		return c.ProjectsCount, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedCondition, ct)
	}
}
