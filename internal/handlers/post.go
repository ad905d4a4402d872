package handlers

import (
	"errors"
	"net/http"

	"github.com/Gundeep-repos/Developer-Connector/internal/db"
	"github.com/Gundeep-repos/Developer-Connector/internal/middleware"
	"github.com/Gundeep-repos/Developer-Connector/internal/models"
	"github.com/Gundeep-repos/Developer-Connector/internal/utils"
	"github.com/Gundeep-repos/Developer-Connector/internal/validate"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PostHandler struct{}

func NewPostHandler() *PostHandler {
	return &PostHandler{}
}

// postQuery preloads likes and comments newest-first, matching the
// head-insertion order of the API.
func postQuery() *gorm.DB {
	return db.DB.
		Preload("Likes", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("id DESC")
		}).
		Preload("Comments", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("id DESC")
		})
}

func loadPost(id uint) (*models.Post, error) {
	var post models.Post
	if err := postQuery().First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

type createPostRequest struct {
	Text string `json:"text"`
}

// Create stores a post with a snapshot of the author's name and avatar.
// POST /api/posts
func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validate.Required(
		validate.Rule{Param: "text", Value: req.Text, Message: "Text is required"},
	); len(errs) > 0 {
		ValidationError(c, errs)
		return
	}

	var user models.User
	if err := db.DB.First(&user, middleware.CurrentUserID(c)).Error; err != nil {
		JSONError(c, http.StatusNotFound, "User not found")
		return
	}

	post := models.Post{
		UserID:   user.ID,
		Text:     req.Text,
		Name:     user.Name,
		Avatar:   user.Avatar,
		Likes:    []models.Like{},
		Comments: []models.Comment{},
	}
	if err := db.DB.Create(&post).Error; err != nil {
		ServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// List returns all posts newest first. GET /api/posts
func (h *PostHandler) List(c *gin.Context) {
	var posts []models.Post
	if err := postQuery().Order("created_at DESC, id DESC").Find(&posts).Error; err != nil {
		ServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Get returns one post. GET /api/posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	post, err := loadPost(utils.StringToUint(c.Param("id")))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			JSONError(c, http.StatusNotFound, "Post not found")
			return
		}
		ServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// Delete removes a post and its likes and comments. Owner only.
// DELETE /api/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	var post models.Post
	if err := db.DB.First(&post, utils.StringToUint(c.Param("id"))).Error; err != nil {
		JSONError(c, http.StatusNotFound, "Post not found")
		return
	}

	if post.UserID != middleware.CurrentUserID(c) {
		JSONError(c, http.StatusForbidden, "User not authorized")
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		ServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Post removed"})
}

// Like records the caller's like. The unique (post_id, user_id) index makes
// a concurrent duplicate a constraint violation rather than a lost update.
// PUT /api/posts/like/:id
func (h *PostHandler) Like(c *gin.Context) {
	postID := utils.StringToUint(c.Param("id"))
	userID := middleware.CurrentUserID(c)

	var post models.Post
	if err := db.DB.First(&post, postID).Error; err != nil {
		JSONError(c, http.StatusNotFound, "Post not found")
		return
	}

	var existing models.Like
	if err := db.DB.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error; err == nil {
		JSONError(c, http.StatusBadRequest, "Post already liked")
		return
	}

	like := models.Like{PostID: postID, UserID: userID}
	if err := db.DB.Create(&like).Error; err != nil {
		// Lost the race against another like from the same user
		JSONError(c, http.StatusBadRequest, "Post already liked")
		return
	}

	h.respondLikes(c, postID)
}

// Unlike removes exactly the caller's like. PUT /api/posts/unlike/:id
func (h *PostHandler) Unlike(c *gin.Context) {
	postID := utils.StringToUint(c.Param("id"))
	userID := middleware.CurrentUserID(c)

	var post models.Post
	if err := db.DB.First(&post, postID).Error; err != nil {
		JSONError(c, http.StatusNotFound, "Post not found")
		return
	}

	res := db.DB.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Like{})
	if res.Error != nil {
		ServerError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		JSONError(c, http.StatusBadRequest, "Post has not yet been liked")
		return
	}

	h.respondLikes(c, postID)
}

type commentRequest struct {
	Text string `json:"text"`
}

// AddComment prepends a comment carrying a snapshot of the author's name
// and avatar. POST /api/posts/comment/:id
func (h *PostHandler) AddComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validate.Required(
		validate.Rule{Param: "text", Value: req.Text, Message: "Text is required"},
	); len(errs) > 0 {
		ValidationError(c, errs)
		return
	}

	postID := utils.StringToUint(c.Param("id"))
	var post models.Post
	if err := db.DB.First(&post, postID).Error; err != nil {
		JSONError(c, http.StatusNotFound, "Post not found")
		return
	}

	var user models.User
	if err := db.DB.First(&user, middleware.CurrentUserID(c)).Error; err != nil {
		JSONError(c, http.StatusNotFound, "User not found")
		return
	}

	comment := models.Comment{
		PostID: postID,
		UserID: user.ID,
		Text:   req.Text,
		Name:   user.Name,
		Avatar: user.Avatar,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		ServerError(c, err)
		return
	}

	h.respondComments(c, postID)
}

// DeleteComment removes one comment by its id. Only the comment's author may
// delete it, and the delete targets the matched row, never an index derived
// from the caller. DELETE /api/posts/comment/:id/:comment_id
func (h *PostHandler) DeleteComment(c *gin.Context) {
	postID := utils.StringToUint(c.Param("id"))
	commentID := utils.StringToUint(c.Param("comment_id"))

	var comment models.Comment
	if err := db.DB.Where("id = ? AND post_id = ?", commentID, postID).First(&comment).Error; err != nil {
		JSONError(c, http.StatusNotFound, "Comment does not exist")
		return
	}

	if comment.UserID != middleware.CurrentUserID(c) {
		JSONError(c, http.StatusForbidden, "User not authorized")
		return
	}

	if err := db.DB.Delete(&comment).Error; err != nil {
		ServerError(c, err)
		return
	}

	h.respondComments(c, postID)
}

func (h *PostHandler) respondLikes(c *gin.Context, postID uint) {
	likes := []models.Like{}
	if err := db.DB.Where("post_id = ?", postID).Order("id DESC").Find(&likes).Error; err != nil {
		ServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, likes)
}

func (h *PostHandler) respondComments(c *gin.Context, postID uint) {
	comments := []models.Comment{}
	if err := db.DB.Where("post_id = ?", postID).Order("id DESC").Find(&comments).Error; err != nil {
		ServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}
