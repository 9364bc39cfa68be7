package controllers

import (
	"net/http"
	"strconv"

	"archblog/models"
	"archblog/services"

	"github.com/gin-gonic/gin"
)

type PostController struct {
	postService       *services.PostService
	submissionService *services.SubmissionService
}

func NewPostController(postService *services.PostService, submissionService *services.SubmissionService) *PostController {
	return &PostController{
		postService:       postService,
		submissionService: submissionService,
	}
}

// ListPosts godoc
// @Summary List approved posts
// @Tags posts
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 50)"
// @Success 200 {object} map[string]interface{} "data: []models.PostListItem, pagination: {page, limit, total}"
// @Router /posts [get]
func (pc *PostController) ListPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(services.DefaultPageSize)))

	list, err := pc.postService.ListApproved(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err, "Failed to fetch posts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": list.Posts,
		"pagination": gin.H{
			"page":  list.Page,
			"limit": list.Limit,
			"total": list.Total,
		},
	})
}

// GetPost godoc
// @Summary Get an approved post by slug
// @Tags posts
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} models.Post
// @Failure 404 {object} map[string]string
// @Router /posts/{slug} [get]
func (pc *PostController) GetPost(c *gin.Context) {
	post, err := pc.postService.GetApprovedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err, "Failed to fetch post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": post})
}

// SubmitPost godoc
// @Summary Submit a post for email verification
// @Tags posts
// @Accept json
// @Produce json
// @Param post body models.SubmitPostRequest true "Draft post"
// @Success 200 {object} models.SubmissionResponse
// @Failure 400 {object} map[string]string
// @Router /posts [post]
func (pc *PostController) SubmitPost(c *gin.Context) {
	var req models.SubmitPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := pc.submissionService.Submit(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to submit post")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// VerifyPost godoc
// @Summary Confirm a submission with the emailed code
// @Tags posts
// @Accept json
// @Produce json
// @Param verification body models.VerifyPostRequest true "Email and code"
// @Success 201 {object} models.Post
// @Failure 400 {object} map[string]string
// @Router /posts/verify [post]
func (pc *PostController) VerifyPost(c *gin.Context) {
	var req models.VerifyPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	post, err := pc.submissionService.Verify(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		respondError(c, err, "Failed to verify post")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Email verified. Your post has been submitted for review",
		"data":    post,
	})
}

// Cleanup godoc
// @Summary Delete expired and consumed verification records
// @Tags posts
// @Produce json
// @Security SessionAuth
// @Success 200 {object} map[string]int64
// @Router /posts/cleanup [post]
func (pc *PostController) Cleanup(c *gin.Context) {
	deleted, err := pc.submissionService.Cleanup(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to clean up verifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
