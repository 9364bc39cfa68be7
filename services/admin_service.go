package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"archblog/models"
	"archblog/utils"

	"gorm.io/gorm"
)

const MinPasswordLength = 8

type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

func (s *AdminService) Create(ctx context.Context, email, name, password string) (*models.Admin, error) {
	email = utils.NormalizeEmail(email)
	if !utils.ValidEmail(email) {
		return nil, invalid("Invalid email address")
	}
	if len(password) < MinPasswordLength {
		return nil, invalid("Password must be at least %d characters", MinPasswordLength)
	}

	db := s.db.WithContext(ctx)

	var n int64
	if err := db.Model(&models.Admin{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return nil, fmt.Errorf("check admin: %w", err)
	}
	if n > 0 {
		return nil, ErrAdminExists
	}

	admin := &models.Admin{
		Email:    email,
		Name:     strings.TrimSpace(name),
		Password: password,
	}
	if err := admin.HashPassword(); err != nil {
		return nil, err
	}
	if err := db.Create(admin).Error; err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return admin, nil
}

// Authenticate does not reveal whether the email or the password was wrong.
func (s *AdminService) Authenticate(ctx context.Context, email, password string) (*models.Admin, error) {
	var admin models.Admin
	err := s.db.WithContext(ctx).Where("email = ?", utils.NormalizeEmail(email)).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find admin: %w", err)
	}

	if !admin.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return &admin, nil
}

func (s *AdminService) GetByID(ctx context.Context, id uint) (*models.Admin, error) {
	var admin models.Admin
	if err := s.db.WithContext(ctx).First(&admin, id).Error; err != nil {
		return nil, notFound(err, ErrAdminNotFound)
	}
	return &admin, nil
}
