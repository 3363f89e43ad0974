// database/seed.go - Achievement Catalog Seed
package database

import (
	"log"

	"greenmorph/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedAchievements inserts the initial achievement catalog. Idempotent:
// existing rows (matched by unique name) are left untouched, so it is safe
// on every startup. Definitions are never mutated after seeding.
func SeedAchievements(db *gorm.DB) {
	catalog := []models.Achievement{
		{
			Name:           "新手改造师",
			Description:    "完成第一个改造项目",
			Icon:           "badge-first-project",
			ConditionType:  models.ConditionProjectCount,
			ConditionValue: 1,
			Points:         10,
		},
		{
			Name:           "社区活跃者",
			Description:    "发布第一个帖子",
			Icon:           "badge-first-post",
			ConditionType:  models.ConditionPostCount,
			ConditionValue: 1,
			Points:         5,
		},
		{
			Name:           "改造达人",
			Description:    "完成10个改造项目",
			Icon:           "badge-project-master",
			ConditionType:  models.ConditionProjectCount,
			ConditionValue: 10,
			Points:         50,
		},
		{
			Name:           "社区明星",
			Description:    "获得100个点赞",
			Icon:           "badge-community-star",
			ConditionType:  models.ConditionLikesReceived,
			ConditionValue: 100,
			Points:         100,
		},
		{
			Name:           "热心评论员",
			Description:    "发表10条评论",
			Icon:           "badge-commenter",
			ConditionType:  models.ConditionCommentCount,
			ConditionValue: 10,
			Points:         20,
		},
	}

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&catalog)

	if result.Error != nil {
		log.Printf("❌ Failed to seed achievements: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("✅ Seeded %d achievements", result.RowsAffected)
	}
}
