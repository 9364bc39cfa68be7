package controllers

import (
	"net/http"
	"strconv"

	"archblog/models"
	"archblog/services"

	"github.com/gin-gonic/gin"
)

// AdminController serves the moderation dashboard. Every route sits behind
// middleware.AdminRequired.
type AdminController struct {
	postService       *services.PostService
	commentService    *services.CommentService
	newsletterService *services.NewsletterService
}

func NewAdminController(postService *services.PostService, commentService *services.CommentService, newsletterService *services.NewsletterService) *AdminController {
	return &AdminController{
		postService:       postService,
		commentService:    commentService,
		newsletterService: newsletterService,
	}
}

// ListPosts godoc
// @Summary List all posts for moderation
// @Tags admin
// @Produce json
// @Security SessionAuth
// @Success 200 {array} models.Post
// @Router /admin/posts [get]
func (ac *AdminController) ListPosts(c *gin.Context) {
	posts, err := ac.postService.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch posts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": posts})
}

func (ac *AdminController) GetPost(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	post, err := ac.postService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to fetch post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": post})
}

// UpdatePostStatus godoc
// @Summary Set a post's moderation status
// @Tags admin
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path int true "Post ID"
// @Param status body models.UpdateStatusRequest true "PENDING, APPROVED or REJECTED"
// @Success 200 {object} models.Post
// @Router /admin/posts/{id} [patch]
func (ac *AdminController) UpdatePostStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	status, ok := bindStatus(c)
	if !ok {
		return
	}

	post, err := ac.postService.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		respondError(c, err, "Failed to update post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": post})
}

// DeletePost godoc
// @Summary Delete a post and its comments
// @Tags admin
// @Security SessionAuth
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]string
// @Router /admin/posts/{id} [delete]
func (ac *AdminController) DeletePost(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ac.postService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// ListComments godoc
// @Summary List all comments for moderation
// @Tags admin
// @Produce json
// @Security SessionAuth
// @Success 200 {array} models.AdminComment
// @Router /admin/comments [get]
func (ac *AdminController) ListComments(c *gin.Context) {
	comments, err := ac.commentService.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch comments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": comments})
}

// UpdateCommentStatus godoc
// @Summary Approve or reject a comment
// @Tags admin
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path int true "Comment ID"
// @Param status body models.UpdateStatusRequest true "APPROVED or REJECTED"
// @Success 200 {object} models.Comment
// @Router /admin/comments/{id} [patch]
func (ac *AdminController) UpdateCommentStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	status, ok := bindStatus(c)
	if !ok {
		return
	}

	comment, err := ac.commentService.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		respondError(c, err, "Failed to update comment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": comment})
}

func (ac *AdminController) DeleteComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ac.commentService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete comment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}

// ListSubscribers godoc
// @Summary List newsletter subscriptions
// @Tags admin
// @Produce json
// @Security SessionAuth
// @Success 200 {object} models.SubscriptionList
// @Router /admin/newsletter [get]
func (ac *AdminController) ListSubscribers(c *gin.Context) {
	list, err := ac.newsletterService.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch subscribers")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": list})
}

// DeleteSubscriber accepts the id as a path segment or as ?id=.
func (ac *AdminController) DeleteSubscriber(c *gin.Context) {
	raw := c.Param("id")
	if raw == "" {
		raw = c.Query("id")
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	if err := ac.newsletterService.Delete(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err, "Failed to delete subscriber")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscriber deleted successfully"})
}

func bindStatus(c *gin.Context) (models.Status, bool) {
	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return "", false
	}

	status, err := models.ParseStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return "", false
	}
	return status, true
}
