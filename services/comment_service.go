package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"archblog/models"

	"gorm.io/gorm"
)

type CommentService struct {
	db   *gorm.DB
	mail *MailService
}

func NewCommentService(db *gorm.DB, mail *MailService) *CommentService {
	return &CommentService{db: db, mail: mail}
}

// ListApproved returns the public comments of a public post, oldest first.
func (s *CommentService) ListApproved(ctx context.Context, postID uint) ([]models.Comment, error) {
	if _, err := s.approvedPost(ctx, postID); err != nil {
		return nil, err
	}

	comments := []models.Comment{}
	err := s.db.WithContext(ctx).
		Where("post_id = ? AND status = ?", postID, models.StatusApproved).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// Create stores a PENDING comment on an approved post. Content is checked
// before anything touches the database.
func (s *CommentService) Create(ctx context.Context, postID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalid("Comment content is required")
	}
	if utf8.RuneCountInString(content) > models.MaxCommentLength {
		return nil, invalid("Comment must be %d characters or fewer", models.MaxCommentLength)
	}

	post, err := s.approvedPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content: content,
		Status:  models.StatusPending,
		PostID:  post.ID,
	}
	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	if err := s.mail.NotifyNewComment(ctx, post, comment); err != nil {
		log.Printf("admin notification for comment %d failed: %v", comment.ID, err)
	}
	return comment, nil
}

func (s *CommentService) approvedPost(ctx context.Context, postID uint) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).
		Where("id = ? AND status = ?", postID, models.StatusApproved).
		First(&post).Error
	if err != nil {
		return nil, notFound(err, ErrPostNotFound)
	}
	return &post, nil
}

// ListAll returns every comment with its post, pending first then newest.
func (s *CommentService) ListAll(ctx context.Context) ([]models.AdminComment, error) {
	var rows []struct {
		ID         uint
		Content    string
		Status     models.Status
		CreatedAt  time.Time
		PostID     uint
		PostTitle  string
		PostSlug   string
		PostStatus models.Status
	}
	err := s.db.WithContext(ctx).
		Table("comments").
		Select("comments.id, comments.content, comments.status, comments.created_at, comments.post_id, " +
			"posts.title AS post_title, posts.slug AS post_slug, posts.status AS post_status").
		Joins("JOIN posts ON posts.id = comments.post_id").
		Order(models.ModerationOrder("comments.status")).
		Order("comments.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list all comments: %w", err)
	}

	out := make([]models.AdminComment, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.AdminComment{
			ID:        r.ID,
			Content:   r.Content,
			Status:    r.Status,
			CreatedAt: r.CreatedAt,
			Post: models.CommentPostRef{
				ID:     r.PostID,
				Title:  r.PostTitle,
				Slug:   r.PostSlug,
				Status: r.PostStatus,
			},
		})
	}
	return out, nil
}

func (s *CommentService) UpdateStatus(ctx context.Context, id uint, status models.Status) (*models.Comment, error) {
	if !commentStatusAllowed(status) {
		return nil, ErrInvalidStatus
	}

	var comment models.Comment
	db := s.db.WithContext(ctx)
	if err := db.First(&comment, id).Error; err != nil {
		return nil, notFound(err, ErrCommentNotFound)
	}
	if err := db.Model(&comment).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("update comment status: %w", err)
	}
	comment.Status = status
	return &comment, nil
}

func (s *CommentService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

// commentStatusAllowed: moderation moves a comment to APPROVED or REJECTED;
// PENDING is only ever the creation state.
func commentStatusAllowed(status models.Status) bool {
	switch status {
	case models.StatusApproved, models.StatusRejected:
		return true
	case models.StatusPending:
		return false
	default:
		return false
	}
}
