package models

import "time"

const MaxCommentLength = 1000

type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Status    Status    `json:"status" gorm:"size:16;not null;default:PENDING;index"`
	PostID    uint      `json:"postId" gorm:"not null;index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CommentPostRef is the slice of the parent post shown next to a comment in
// the moderation list.
type CommentPostRef struct {
	ID     uint   `json:"id"`
	Title  string `json:"title"`
	Slug   string `json:"slug"`
	Status Status `json:"status"`
}

type AdminComment struct {
	ID        uint           `json:"id"`
	Content   string         `json:"content"`
	Status    Status         `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
	Post      CommentPostRef `json:"post"`
}
