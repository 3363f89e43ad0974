// handlers/community.go
package handlers

import (
	"log"
	"strconv"

	"greenmorph/database"
	"greenmorph/gamification"
	"greenmorph/middleware"
	"greenmorph/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Images  string `json:"images"`
}

type CreateCommentRequest struct {
	Content string `json:"content"`
}

type LikeRequest struct {
	TargetType models.LikeTargetType `json:"target_type"`
	TargetID   uint                  `json:"target_id"`
}

type CreateProjectRequest struct {
	Title       string `json:"title"`
	TargetStyle string `json:"target_style"`
}

// checkAchievementsAsync runs check-and-grant after a counter-moving action
// has committed. Best effort: failures are logged and never surface to the
// action that triggered them. The celebration UI only reacts to the
// explicit POST /api/achievements/check response, so a grant that happens
// here is picked up as already-earned, never re-announced.
func checkAchievementsAsync(db *gorm.DB, userID uint) {
	go func() {
		if _, err := gamification.CheckAndGrant(db, userID); err != nil {
			log.Printf("background achievement check failed for user=%d: %v", userID, err)
		}
	}()
}

// CreatePost publishes a community post
// POST /api/posts
func CreatePost(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Title == "" || req.Content == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Title and content are required"})
	}

	db := database.GetDB()
	post := models.Post{
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
		Images:  req.Images,
	}
	if err := db.Create(&post).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create post"})
	}

	checkAchievementsAsync(db, userID)

	return c.Status(201).JSON(fiber.Map{"success": true, "post": post})
}

// CreateComment adds a comment to a post
// POST /api/posts/:id/comments
func CreateComment(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	postID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid post id"})
	}

	var req CreateCommentRequest
	if err := c.BodyParser(&req); err != nil || req.Content == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Comment content is required"})
	}

	db := database.GetDB()
	var post models.Post
	if err := db.First(&post, uint(postID)).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Post not found"})
	}

	comment := models.Comment{
		PostID:  post.ID,
		UserID:  userID,
		Content: req.Content,
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return tx.Model(&post).UpdateColumn("comments_count", gorm.Expr("comments_count + 1")).Error
	}); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create comment"})
	}

	checkAchievementsAsync(db, userID)

	return c.Status(201).JSON(fiber.Map{"success": true, "comment": comment})
}

// CreateLike likes a post or comment. Liking twice is a no-op thanks to the
// unique (user, target) index.
// POST /api/likes
func CreateLike(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req LikeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.TargetType != models.LikeTargetPost && req.TargetType != models.LikeTargetComment {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid like target type"})
	}

	db := database.GetDB()

	var post models.Post
	if req.TargetType == models.LikeTargetPost {
		if err := db.First(&post, req.TargetID).Error; err != nil {
			return c.Status(404).JSON(fiber.Map{"error": "Post not found"})
		}
	}

	like := models.Like{
		UserID:     userID,
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
	}
	insert := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "target_type"}, {Name: "target_id"}},
		DoNothing: true,
	}).Create(&like)
	if insert.Error != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record like"})
	}

	if insert.RowsAffected == 0 {
		return c.JSON(fiber.Map{"success": true, "already_liked": true})
	}

	if req.TargetType == models.LikeTargetPost {
		db.Model(&post).UpdateColumn("likes_count", gorm.Expr("likes_count + 1"))
		// The like moves the post author's counters, not the liker's.
		checkAchievementsAsync(db, post.UserID)
	}

	return c.Status(201).JSON(fiber.Map{"success": true})
}

// CreateProject starts a redesign project
// POST /api/projects
func CreateProject(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req CreateProjectRequest
	if err := c.BodyParser(&req); err != nil || req.Title == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Project title is required"})
	}

	db := database.GetDB()
	project := models.RedesignProject{
		UserID:      userID,
		Title:       req.Title,
		TargetStyle: req.TargetStyle,
		UploadToken: uuid.New().String(),
		Status:      models.ProjectStatusDraft,
	}
	if err := db.Create(&project).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create project"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "project": project})
}

// CompleteProject marks a redesign project as completed
// PUT /api/projects/:id/complete
func CompleteProject(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	projectID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid project id"})
	}

	db := database.GetDB()
	var project models.RedesignProject
	if err := db.Where("id = ? AND user_id = ?", uint(projectID), userID).First(&project).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Project not found"})
	}

	if project.Status != models.ProjectStatusCompleted {
		project.Status = models.ProjectStatusCompleted
		if err := db.Save(&project).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to complete project"})
		}
		checkAchievementsAsync(db, userID)
	}

	return c.JSON(fiber.Map{"success": true, "project": project})
}
