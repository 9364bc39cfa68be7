package services

import (
	"context"
	"testing"

	"archblog/database/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminCreateAndAuthenticate(t *testing.T) {
	svc := NewAdminService(dbtest.New(t))
	ctx := context.Background()

	admin, err := svc.Create(ctx, " Editor@Studio.test ", "Editor", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "editor@studio.test", admin.Email)
	assert.NotEqual(t, "correct horse", admin.Password, "password is stored hashed")

	_, err = svc.Create(ctx, "editor@studio.test", "Again", "another one")
	assert.ErrorIs(t, err, ErrAdminExists)

	got, err := svc.Authenticate(ctx, "EDITOR@studio.test", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)

	_, err = svc.Authenticate(ctx, "editor@studio.test", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "nobody@studio.test", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrAdminNotFound)
}

func TestAdminCreateValidation(t *testing.T) {
	svc := NewAdminService(dbtest.New(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, "bad", "x", "long enough")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, "a@b.co", "x", "short")
	assert.ErrorIs(t, err, ErrValidation)
}
