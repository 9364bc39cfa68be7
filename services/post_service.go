package services

import (
	"context"
	"fmt"
	"math"

	"archblog/models"
	"archblog/utils"

	"gorm.io/gorm"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50

	// MaxPage keeps the row offset within int32.
	MaxPage = math.MaxInt32 / MaxPageSize
)

type PostService struct {
	db *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// ListApproved returns one page of publicly visible posts, newest first.
func (s *PostService) ListApproved(ctx context.Context, page, limit int) (*models.PostList, error) {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	db := s.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Post{}).Where("status = ?", models.StatusApproved).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	var posts []models.Post
	err := db.Where("status = ?", models.StatusApproved).
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	counts, err := s.approvedCommentCounts(ctx, posts)
	if err != nil {
		return nil, err
	}

	items := make([]models.PostListItem, 0, len(posts))
	for _, p := range posts {
		items = append(items, models.PostListItem{
			ID:           p.ID,
			Title:        p.Title,
			Slug:         p.Slug,
			Content:      p.Content,
			AuthorName:   p.AuthorName,
			ImageURL:     p.ImageURL,
			CreatedAt:    p.CreatedAt,
			CommentCount: counts[p.ID],
		})
	}

	return &models.PostList{Posts: items, Page: page, Limit: limit, Total: total}, nil
}

func (s *PostService) approvedCommentCounts(ctx context.Context, posts []models.Post) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(posts))
	if len(posts) == 0 {
		return counts, nil
	}

	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}

	var rows []struct {
		PostID uint
		Total  int64
	}
	err := s.db.WithContext(ctx).Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ? AND status = ?", ids, models.StatusApproved).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	for _, r := range rows {
		counts[r.PostID] = r.Total
	}
	return counts, nil
}

// GetApprovedBySlug returns a public post with its approved comments.
func (s *PostService) GetApprovedBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", models.StatusApproved).Order("created_at ASC")
		}).
		Where("slug = ? AND status = ?", slug, models.StatusApproved).
		First(&post).Error
	if err != nil {
		return nil, notFound(err, ErrPostNotFound)
	}
	return &post, nil
}

func (s *PostService) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).Preload("Comments").First(&post, id).Error; err != nil {
		return nil, notFound(err, ErrPostNotFound)
	}
	return &post, nil
}

// ListAll returns every post for moderation, pending first then newest.
func (s *PostService) ListAll(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.WithContext(ctx).
		Order(models.ModerationOrder("status")).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list all posts: %w", err)
	}
	return posts, nil
}

func (s *PostService) UpdateStatus(ctx context.Context, id uint, status models.Status) (*models.Post, error) {
	if !postStatusAllowed(status) {
		return nil, ErrInvalidStatus
	}

	var post models.Post
	db := s.db.WithContext(ctx)
	if err := db.First(&post, id).Error; err != nil {
		return nil, notFound(err, ErrPostNotFound)
	}
	if err := db.Model(&post).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("update post status: %w", err)
	}
	post.Status = status
	return &post, nil
}

// Delete removes the post and its comments.
func (s *PostService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete post: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrPostNotFound
		}
		return nil
	})
}

// UniqueSlug probes base, base-1, base-2, ... against existing posts using db,
// which may be a transaction.
func (s *PostService) UniqueSlug(ctx context.Context, db *gorm.DB, base string) (string, error) {
	for attempt := 0; ; attempt++ {
		candidate := utils.SlugCandidate(base, attempt)
		taken, err := slugTaken(ctx, db, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}

func slugTaken(ctx context.Context, db *gorm.DB, slug string) (bool, error) {
	var n int64
	if err := db.WithContext(ctx).Model(&models.Post{}).Where("slug = ?", slug).Count(&n).Error; err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return n > 0, nil
}

func postStatusAllowed(status models.Status) bool {
	switch status {
	case models.StatusPending, models.StatusApproved, models.StatusRejected:
		return true
	default:
		return false
	}
}
