package models

import (
	"time"
)

type Post struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:200;not null"`
	Slug        string    `json:"slug" gorm:"size:255;uniqueIndex;not null"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	AuthorName  string    `json:"authorName" gorm:"size:120;not null"`
	AuthorEmail string    `json:"authorEmail" gorm:"size:255;not null"`
	AuthorPhone string    `json:"authorPhone,omitempty" gorm:"size:32"`
	ImageURL    string    `json:"imageUrl,omitempty" gorm:"size:1024"`
	Status      Status    `json:"status" gorm:"size:16;not null;default:PENDING;index"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Comments    []Comment `json:"comments,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

// PostDraft is the author-supplied payload held in an EmailVerification until
// the author confirms their address.
type PostDraft struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Content     string `json:"content"`
	AuthorName  string `json:"authorName"`
	AuthorEmail string `json:"authorEmail"`
	AuthorPhone string `json:"authorPhone,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

func (d PostDraft) ToPost() *Post {
	return &Post{
		Title:       d.Title,
		Slug:        d.Slug,
		Content:     d.Content,
		AuthorName:  d.AuthorName,
		AuthorEmail: d.AuthorEmail,
		AuthorPhone: d.AuthorPhone,
		ImageURL:    d.ImageURL,
		Status:      StatusPending,
	}
}

type SubmitPostRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Content     string `json:"content" binding:"required"`
	AuthorName  string `json:"authorName" binding:"required,max=120"`
	AuthorEmail string `json:"authorEmail" binding:"required,max=255"`
	AuthorPhone string `json:"authorPhone" binding:"omitempty,max=32"`
	ImageURL    string `json:"imageUrl" binding:"omitempty,url,max=1024"`
}

type VerifyPostRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type PostListItem struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Content      string    `json:"content"`
	AuthorName   string    `json:"authorName"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	CommentCount int64     `json:"commentCount"`
}

type PostList struct {
	Posts []PostListItem `json:"posts"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
	Total int64          `json:"total"`
}

type SubmissionResponse struct {
	Message   string    `json:"message"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}
