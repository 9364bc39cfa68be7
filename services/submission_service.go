package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"archblog/models"
	"archblog/utils"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

const DefaultVerificationTTL = 10 * time.Minute

// SubmissionService runs the author workflow: a draft is parked in an
// EmailVerification record until the emailed code is confirmed, then it
// becomes a PENDING post.
type SubmissionService struct {
	db      *gorm.DB
	posts   *PostService
	mail    *MailService
	policy  *bluemonday.Policy
	ttl     time.Duration
	now     func() time.Time
	newCode func() (string, error)
}

func NewSubmissionService(db *gorm.DB, posts *PostService, mail *MailService, ttl time.Duration) *SubmissionService {
	if ttl <= 0 {
		ttl = DefaultVerificationTTL
	}
	return &SubmissionService{
		db:      db,
		posts:   posts,
		mail:    mail,
		policy:  bluemonday.UGCPolicy(),
		ttl:     ttl,
		now:     func() time.Time { return time.Now().UTC() },
		newCode: utils.GenerateVerificationCode,
	}
}

func (s *SubmissionService) Submit(ctx context.Context, req *models.SubmitPostRequest) (*models.SubmissionResponse, error) {
	draft, err := s.buildDraft(req)
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	slug, err := s.posts.UniqueSlug(ctx, db, utils.Slugify(draft.Title))
	if err != nil {
		return nil, err
	}
	draft.Slug = slug

	now := s.now()
	s.deleteExpired(ctx, draft.AuthorEmail, now)

	code, err := s.newCode()
	if err != nil {
		return nil, fmt.Errorf("generate code: %w", err)
	}

	record, err := models.NewEmailVerification(draft, code, now.Add(s.ttl))
	if err != nil {
		return nil, fmt.Errorf("encode draft: %w", err)
	}
	if err := db.Create(record).Error; err != nil {
		return nil, fmt.Errorf("create verification: %w", err)
	}

	if err := s.mail.SendVerificationCode(ctx, draft, code, s.ttl); err != nil {
		log.Printf("verification email to %s failed: %v", draft.AuthorEmail, err)
		if delErr := db.Delete(record).Error; delErr != nil {
			log.Printf("rollback verification %d failed: %v", record.ID, delErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrEmailDelivery, err)
	}

	return &models.SubmissionResponse{
		Message:   "Verification code sent to your email",
		Email:     draft.AuthorEmail,
		ExpiresAt: record.ExpiresAt,
	}, nil
}

func (s *SubmissionService) buildDraft(req *models.SubmitPostRequest) (models.PostDraft, error) {
	draft := models.PostDraft{
		Title:       strings.TrimSpace(req.Title),
		AuthorName:  strings.TrimSpace(req.AuthorName),
		AuthorEmail: utils.NormalizeEmail(req.AuthorEmail),
		AuthorPhone: strings.TrimSpace(req.AuthorPhone),
		ImageURL:    strings.TrimSpace(req.ImageURL),
	}
	draft.Content = strings.TrimSpace(s.policy.Sanitize(req.Content))

	switch {
	case draft.Title == "":
		return draft, invalid("Title is required")
	case draft.Content == "":
		return draft, invalid("Content is required")
	case draft.AuthorName == "":
		return draft, invalid("Author name is required")
	case draft.AuthorEmail == "":
		return draft, invalid("Author email is required")
	case !utils.ValidEmail(draft.AuthorEmail):
		return draft, invalid("Invalid email address")
	}
	return draft, nil
}

// Verify consumes a matching, unexpired, unverified record and materializes
// its draft as a PENDING post in the same transaction.
func (s *SubmissionService) Verify(ctx context.Context, email, code string) (*models.Post, error) {
	email = utils.NormalizeEmail(email)
	code = strings.TrimSpace(code)
	now := s.now()

	var post *models.Post
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record models.EmailVerification
		err := tx.Where("email = ? AND code = ? AND verified = ? AND expires_at > ?", email, code, false, now).
			Order("created_at DESC").
			First(&record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCode
		}
		if err != nil {
			return fmt.Errorf("find verification: %w", err)
		}

		res := tx.Model(&record).Where("verified = ?", false).Update("verified", true)
		if res.Error != nil {
			return fmt.Errorf("mark verified: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrInvalidCode
		}

		draft, err := record.Draft()
		if err != nil {
			return fmt.Errorf("decode draft: %w", err)
		}

		slug, err := s.availableSlug(ctx, tx, draft)
		if err != nil {
			return err
		}

		p := draft.ToPost()
		p.Slug = slug
		if err := tx.Create(p).Error; err != nil {
			return fmt.Errorf("create post: %w", err)
		}

		err = tx.Where("email = ? AND verified = ? AND expires_at <= ?", email, false, now).
			Delete(&models.EmailVerification{}).Error
		if err != nil {
			return fmt.Errorf("delete expired verifications: %w", err)
		}

		post = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.mail.NotifyNewPost(ctx, post); err != nil {
		log.Printf("admin notification for post %d failed: %v", post.ID, err)
	}
	return post, nil
}

// availableSlug keeps the slug reserved at submission time unless another
// post claimed it in the meantime.
func (s *SubmissionService) availableSlug(ctx context.Context, tx *gorm.DB, draft models.PostDraft) (string, error) {
	if draft.Slug != "" {
		taken, err := slugTaken(ctx, tx, draft.Slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return draft.Slug, nil
		}
	}
	return s.posts.UniqueSlug(ctx, tx, utils.Slugify(draft.Title))
}

// Cleanup removes verification records that can no longer be consumed.
func (s *SubmissionService) Cleanup(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("expires_at <= ? OR verified = ?", s.now(), true).
		Delete(&models.EmailVerification{})
	if res.Error != nil {
		return 0, fmt.Errorf("cleanup verifications: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *SubmissionService) deleteExpired(ctx context.Context, email string, now time.Time) {
	err := s.db.WithContext(ctx).
		Where("email = ? AND verified = ? AND expires_at <= ?", email, false, now).
		Delete(&models.EmailVerification{}).Error
	if err != nil {
		log.Printf("delete expired verifications for %s: %v", email, err)
	}
}
