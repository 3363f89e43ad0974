// gamification/grant_test.go
package gamification

import (
	"fmt"
	"sync"
	"testing"

	"greenmorph/database"
	"greenmorph/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB spins up an in-memory sqlite database with the production
// schema. A single connection keeps every goroutine on the same memory
// database and lets the unique index arbitrate grant races exactly as the
// postgres constraint does.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.RedesignProject{},
		&models.Achievement{},
		&models.UserAchievement{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string, points int) models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Points:       points,
		IsActive:     true,
		SkillLevel:   models.SkillBeginner,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func grantedNames(res CheckResult) []string {
	names := make([]string, 0, len(res.NewlyGranted))
	for _, a := range res.NewlyGranted {
		names = append(names, a.Name)
	}
	return names
}

// First post crosses the 社区活跃者 threshold; the first check grants it and
// an immediate second check reports nothing new.
func TestCheckAndGrantFirstPostScenario(t *testing.T) {
	db := openTestDB(t)
	database.SeedAchievements(db)
	user := createTestUser(t, db, "alice", 0)

	res, err := CheckAndGrant(db, user.ID)
	require.NoError(t, err)
	assert.Empty(t, res.NewlyGranted)
	assert.Equal(t, 0, res.TotalEarned)

	require.NoError(t, db.Create(&models.Post{UserID: user.ID, Title: "t", Content: "c"}).Error)

	res, err = CheckAndGrant(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"社区活跃者"}, grantedNames(res))
	assert.Equal(t, 1, res.TotalEarned)
	assert.Equal(t, 5, res.PointsAwarded)

	// Idempotent: counters unchanged, nothing to announce
	res, err = CheckAndGrant(db, user.ID)
	require.NoError(t, err)
	assert.Empty(t, res.NewlyGranted)
	assert.Equal(t, 1, res.TotalEarned)

	var rows int64
	db.Model(&models.UserAchievement{}).Where("user_id = ?", user.ID).Count(&rows)
	assert.Equal(t, int64(1), rows)
}

func TestCheckAndGrantMultipleAtOnce(t *testing.T) {
	db := openTestDB(t)
	database.SeedAchievements(db)
	user := createTestUser(t, db, "bob", 0)

	require.NoError(t, db.Create(&models.Post{UserID: user.ID, Title: "t", Content: "c"}).Error)
	for i := 0; i < 10; i++ {
		require.NoError(t, db.Create(&models.RedesignProject{
			UserID:      user.ID,
			Title:       fmt.Sprintf("project %d", i),
			UploadToken: fmt.Sprintf("tok-%d", i),
			Status:      models.ProjectStatusCompleted,
		}).Error)
	}

	res, err := CheckAndGrant(db, user.ID)
	require.NoError(t, err)
	// 社区活跃者 + 新手改造师 + 改造达人 in one call
	assert.Len(t, res.NewlyGranted, 3)
	assert.Equal(t, 3, res.TotalEarned)
	assert.Equal(t, 5+10+50, res.PointsAwarded)
}

// N concurrent checks for a user who just crossed one threshold: the
// achievement shows up in exactly one response, and exactly one grant row
// exists afterward.
func TestCheckAndGrantExactlyOnceUnderConcurrency(t *testing.T) {
	db := openTestDB(t)
	database.SeedAchievements(db)
	user := createTestUser(t, db, "carol", 0)
	require.NoError(t, db.Create(&models.Post{UserID: user.ID, Title: "t", Content: "c"}).Error)

	const n = 8
	results := make([]CheckResult, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = CheckAndGrant(db, user.ID)
		}(i)
	}
	wg.Wait()

	grantedBy := 0
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		if len(results[i].NewlyGranted) > 0 {
			grantedBy++
			assert.Equal(t, []string{"社区活跃者"}, grantedNames(results[i]))
		}
	}
	assert.Equal(t, 1, grantedBy, "exactly one invocation must report the grant")

	var rows int64
	db.Model(&models.UserAchievement{}).Where("user_id = ?", user.ID).Count(&rows)
	assert.Equal(t, int64(1), rows)
}

func TestCheckAndGrantProgressSnapshot(t *testing.T) {
	db := openTestDB(t)
	database.SeedAchievements(db)
	user := createTestUser(t, db, "dave", 0)

	require.NoError(t, db.Create(&models.RedesignProject{
		UserID: user.ID, Title: "p", UploadToken: "tok", Status: models.ProjectStatusCompleted,
	}).Error)

	res, err := CheckAndGrant(db, user.ID)
	require.NoError(t, err)
	require.Len(t, res.Progress, 5)

	for _, v := range res.Progress {
		switch v.Achievement.Name {
		case "新手改造师":
			assert.Equal(t, StatusAchieved, v.Status)
			require.NotNil(t, v.EarnedAt)
		case "改造达人":
			assert.Equal(t, StatusLocked, v.Status)
			assert.Equal(t, 10, v.ProgressPercentage)
			assert.Nil(t, v.EarnedAt)
		default:
			assert.Equal(t, StatusLocked, v.Status)
		}
	}
}

// Draft projects do not count toward project_count.
func TestCheckAndGrantIgnoresDraftProjects(t *testing.T) {
	db := openTestDB(t)
	database.SeedAchievements(db)
	user := createTestUser(t, db, "erin", 0)

	require.NoError(t, db.Create(&models.RedesignProject{
		UserID: user.ID, Title: "p", UploadToken: "tok", Status: models.ProjectStatusDraft,
	}).Error)

	res, err := CheckAndGrant(db, user.ID)
	require.NoError(t, err)
	assert.Empty(t, res.NewlyGranted)
}

func TestUserAchievementViewsOrdering(t *testing.T) {
	db := openTestDB(t)
	database.SeedAchievements(db)
	user := createTestUser(t, db, "frank", 0)

	// One post (grants 社区活跃者), 3 comments (30% toward 热心评论员),
	// 1 completed project (grants 新手改造师, 10% toward 改造达人).
	require.NoError(t, db.Create(&models.Post{UserID: user.ID, Title: "t", Content: "c"}).Error)
	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.Comment{PostID: 1, UserID: user.ID, Content: "c"}).Error)
	}
	require.NoError(t, db.Create(&models.RedesignProject{
		UserID: user.ID, Title: "p", UploadToken: "tok", Status: models.ProjectStatusCompleted,
	}).Error)

	_, err := CheckAndGrant(db, user.ID)
	require.NoError(t, err)

	list, err := UserAchievementViews(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, list.TotalAchievements)
	assert.Equal(t, 2, list.EarnedCount)
	require.Len(t, list.Achievements, 5)

	// Unachieved first, by progress percentage descending
	assert.Equal(t, StatusLocked, list.Achievements[0].Status)
	assert.Equal(t, "热心评论员", list.Achievements[0].Achievement.Name)
	assert.Equal(t, 30, list.Achievements[0].ProgressPercentage)
	assert.Equal(t, "改造达人", list.Achievements[1].Achievement.Name)
	assert.Equal(t, "社区明星", list.Achievements[2].Achievement.Name)

	// Achieved last, chronological
	assert.Equal(t, StatusAchieved, list.Achievements[3].Status)
	assert.Equal(t, StatusAchieved, list.Achievements[4].Status)
}

func TestCheckAndGrantRefreshesSkillLevelCache(t *testing.T) {
	db := openTestDB(t)
	database.SeedAchievements(db)
	user := createTestUser(t, db, "grace", 250)

	// Simulate a stale cache: points say advanced, column says beginner.
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("skill_level", models.SkillBeginner).Error)

	_, err := CheckAndGrant(db, user.ID)
	require.NoError(t, err)

	var refreshed models.User
	require.NoError(t, db.First(&refreshed, user.ID).Error)
	assert.Equal(t, models.SkillAdvanced, refreshed.SkillLevel)
}
