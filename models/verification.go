package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type EmailVerification struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Email     string         `json:"email" gorm:"size:255;not null;index"`
	Code      string         `json:"-" gorm:"size:6;not null"`
	PostData  datatypes.JSON `json:"-" gorm:"not null"`
	ExpiresAt time.Time      `json:"expiresAt" gorm:"not null;index"`
	Verified  bool           `json:"verified" gorm:"not null;default:false"`
	CreatedAt time.Time      `json:"createdAt"`
}

func NewEmailVerification(draft PostDraft, code string, expiresAt time.Time) (*EmailVerification, error) {
	payload, err := json.Marshal(draft)
	if err != nil {
		return nil, err
	}
	return &EmailVerification{
		Email:     draft.AuthorEmail,
		Code:      code,
		PostData:  datatypes.JSON(payload),
		ExpiresAt: expiresAt,
	}, nil
}

func (v *EmailVerification) Draft() (PostDraft, error) {
	var draft PostDraft
	err := json.Unmarshal(v.PostData, &draft)
	return draft, err
}

func (v *EmailVerification) IsExpired(now time.Time) bool {
	return !now.Before(v.ExpiresAt)
}

// Consumable reports whether the record may still promote its draft.
func (v *EmailVerification) Consumable(now time.Time) bool {
	return !v.Verified && !v.IsExpired(now)
}
