package controllers

import (
	"net/http"

	"archblog/models"
	"archblog/services"

	"github.com/gin-gonic/gin"
)

type CommentController struct {
	commentService *services.CommentService
}

func NewCommentController(commentService *services.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

// ListComments godoc
// @Summary List approved comments of an approved post
// @Tags comments
// @Produce json
// @Param postId path int true "Post ID"
// @Success 200 {array} models.Comment
// @Failure 404 {object} map[string]string
// @Router /comments/{postId} [get]
func (cc *CommentController) ListComments(c *gin.Context) {
	postID, ok := parseID(c, "postId")
	if !ok {
		return
	}

	comments, err := cc.commentService.ListApproved(c.Request.Context(), postID)
	if err != nil {
		respondError(c, err, "Failed to fetch comments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": comments})
}

// CreateComment godoc
// @Summary Submit a comment for moderation
// @Tags comments
// @Accept json
// @Produce json
// @Param postId path int true "Post ID"
// @Param comment body models.CreateCommentRequest true "Comment"
// @Success 201 {object} models.Comment
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /comments/{postId} [post]
func (cc *CommentController) CreateComment(c *gin.Context) {
	postID, ok := parseID(c, "postId")
	if !ok {
		return
	}

	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	comment, err := cc.commentService.Create(c.Request.Context(), postID, req.Content)
	if err != nil {
		respondError(c, err, "Failed to create comment")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Comment submitted and awaiting moderation",
		"data":    comment,
	})
}
