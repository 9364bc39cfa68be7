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

	"gorm.io/gorm"
)

type NewsletterService struct {
	db   *gorm.DB
	mail *MailService
	now  func() time.Time
}

func NewNewsletterService(db *gorm.DB, mail *MailService) *NewsletterService {
	return &NewsletterService{
		db:   db,
		mail: mail,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Subscribe is idempotent for active addresses and reactivates inactive ones.
func (s *NewsletterService) Subscribe(ctx context.Context, email string) (*models.SubscribeResult, error) {
	email = utils.NormalizeEmail(email)
	if !utils.ValidEmail(email) {
		return nil, invalid("Invalid email address")
	}

	db := s.db.WithContext(ctx)
	now := s.now()

	var sub models.NewsletterSubscription
	err := db.Where("email = ?", email).First(&sub).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		sub = models.NewsletterSubscription{
			Email:            email,
			IsActive:         true,
			SubscribedAt:     now,
			UnsubscribeToken: utils.GenerateUnsubscribeToken(),
		}
		if err := db.Create(&sub).Error; err != nil {
			return nil, fmt.Errorf("create subscription: %w", err)
		}
		s.welcome(ctx, &sub)
		return &models.SubscribeResult{Subscription: &sub}, nil
	case err != nil:
		return nil, fmt.Errorf("find subscription: %w", err)
	}

	if sub.IsActive {
		return &models.SubscribeResult{Subscription: &sub, AlreadySubscribed: true}, nil
	}

	sub.IsActive = true
	sub.SubscribedAt = now
	sub.UnsubscribedAt = nil
	sub.UnsubscribeToken = utils.GenerateUnsubscribeToken()
	err = db.Model(&sub).Select("is_active", "subscribed_at", "unsubscribed_at", "unsubscribe_token").Updates(&sub).Error
	if err != nil {
		return nil, fmt.Errorf("reactivate subscription: %w", err)
	}
	s.welcome(ctx, &sub)
	return &models.SubscribeResult{Subscription: &sub, Reactivated: true}, nil
}

func (s *NewsletterService) welcome(ctx context.Context, sub *models.NewsletterSubscription) {
	if err := s.mail.SendWelcome(ctx, sub); err != nil {
		log.Printf("welcome email to %s failed: %v", sub.Email, err)
	}
}

func (s *NewsletterService) UnsubscribeByToken(ctx context.Context, token string) (*models.NewsletterSubscription, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, invalid("Unsubscribe token is required")
	}
	return s.unsubscribe(ctx, "unsubscribe_token = ?", token)
}

func (s *NewsletterService) UnsubscribeByEmail(ctx context.Context, email string) (*models.NewsletterSubscription, error) {
	email = utils.NormalizeEmail(email)
	if !utils.ValidEmail(email) {
		return nil, invalid("Invalid email address")
	}
	return s.unsubscribe(ctx, "email = ?", email)
}

func (s *NewsletterService) unsubscribe(ctx context.Context, query string, arg string) (*models.NewsletterSubscription, error) {
	db := s.db.WithContext(ctx)

	var sub models.NewsletterSubscription
	if err := db.Where(query, arg).First(&sub).Error; err != nil {
		return nil, notFound(err, ErrSubscriptionNotFound)
	}
	if !sub.IsActive {
		return &sub, ErrAlreadyUnsubscribed
	}

	now := s.now()
	sub.IsActive = false
	sub.UnsubscribedAt = &now
	if err := db.Model(&sub).Select("is_active", "unsubscribed_at").Updates(&sub).Error; err != nil {
		return nil, fmt.Errorf("unsubscribe: %w", err)
	}
	return &sub, nil
}

func (s *NewsletterService) List(ctx context.Context) (*models.SubscriptionList, error) {
	subs := []models.NewsletterSubscription{}
	if err := s.db.WithContext(ctx).Order("subscribed_at DESC").Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}

	active := 0
	for _, sub := range subs {
		if sub.IsActive {
			active++
		}
	}
	return &models.SubscriptionList{Subscriptions: subs, Total: len(subs), Active: active}, nil
}

func (s *NewsletterService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.NewsletterSubscription{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete subscription: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}
