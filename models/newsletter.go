package models

import "time"

type NewsletterSubscription struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	Email            string     `json:"email" gorm:"size:255;uniqueIndex;not null"`
	IsActive         bool       `json:"isActive" gorm:"not null;default:true"`
	SubscribedAt     time.Time  `json:"subscribedAt"`
	UnsubscribedAt   *time.Time `json:"unsubscribedAt"`
	UnsubscribeToken string     `json:"-" gorm:"size:64;uniqueIndex;not null"`
}

type NewsletterRequest struct {
	Email string `json:"email" binding:"required,max=255"`
}

type SubscribeResult struct {
	Subscription      *NewsletterSubscription
	AlreadySubscribed bool
	Reactivated       bool
}

type SubscriptionList struct {
	Subscriptions []NewsletterSubscription `json:"subscriptions"`
	Total         int                      `json:"total"`
	Active        int                      `json:"active"`
}
