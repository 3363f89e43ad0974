// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"greenmorph/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.RedesignProject{},
		&models.Achievement{},
		&models.UserAchievement{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()

	log.Println("✅ Migrations completed successfully")
}

// createIndexes creates supporting indexes. The (user_id, achievement_id)
// unique index comes from the UserAchievement model tags and is what backs
// grant-once; everything here is read-path only.
func createIndexes() {
	db := GetDB()
	log.Println("Creating indexes...")

	// Leaderboard ordering
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_points ON users(points DESC, id ASC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_active ON users(is_active)")

	// Counter sources
	db.Exec("CREATE INDEX IF NOT EXISTS idx_posts_user ON posts(user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_comments_user ON comments(user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_comments_post ON comments(post_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_likes_target ON likes(target_type, target_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_projects_user_status ON redesign_projects(user_id, status)")

	// Achievement lookups
	db.Exec("CREATE INDEX IF NOT EXISTS idx_user_achievements_user ON user_achievements(user_id)")

	log.Println("✅ Indexes created successfully")
}
