package services

import (
	"context"
	"fmt"
	"math"
	"testing"

	"archblog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListApprovedHidesUnmoderatedPosts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	published := env.publish(t, "Published", "one@example.com")

	_, err := env.submissions.Submit(ctx, submitRequest("Waiting", "two@example.com"))
	require.NoError(t, err)
	_, err = env.submissions.Verify(ctx, "two@example.com", "123456")
	require.NoError(t, err)

	list, err := env.posts.ListApproved(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, list.Posts, 1)
	assert.Equal(t, published.ID, list.Posts[0].ID)
	assert.EqualValues(t, 1, list.Total)

	_, err = env.posts.GetApprovedBySlug(ctx, "waiting")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestListApprovedPaginates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		env.publish(t, fmt.Sprintf("Post %d", i), fmt.Sprintf("a%d@example.com", i))
	}

	list, err := env.posts.ListApproved(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, list.Posts, 1)
	assert.EqualValues(t, 3, list.Total)
	assert.Equal(t, 2, list.Page)

	list, err = env.posts.ListApproved(ctx, 0, 500)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, MaxPageSize, list.Limit)
}

func TestListApprovedCountsApprovedComments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	post := env.publish(t, "Counting", "author@example.com")

	c1, err := env.comments.Create(ctx, post.ID, "one")
	require.NoError(t, err)
	_, err = env.comments.Create(ctx, post.ID, "two")
	require.NoError(t, err)
	_, err = env.comments.UpdateStatus(ctx, c1.ID, models.StatusApproved)
	require.NoError(t, err)

	list, err := env.posts.ListApproved(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, list.Posts, 1)
	assert.EqualValues(t, 1, list.Posts[0].CommentCount)

	full, err := env.posts.GetApprovedBySlug(ctx, "counting")
	require.NoError(t, err)
	require.Len(t, full.Comments, 1)
	assert.Equal(t, "one", full.Comments[0].Content)
}

func TestUpdatePostStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	post := env.publish(t, "Status", "author@example.com")

	updated, err := env.posts.UpdateStatus(ctx, post.ID, models.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, updated.Status)

	_, err = env.posts.UpdateStatus(ctx, post.ID, models.Status("ARCHIVED"))
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = env.posts.UpdateStatus(ctx, 999, models.StatusApproved)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestListAllOrdersPendingFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.publish(t, "Approved", "one@example.com")
	_, err := env.submissions.Submit(ctx, submitRequest("Pending", "two@example.com"))
	require.NoError(t, err)
	pending, err := env.submissions.Verify(ctx, "two@example.com", "123456")
	require.NoError(t, err)

	all, err := env.posts.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, pending.ID, all[0].ID)
}

func TestDeletePostRemovesComments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	post := env.publish(t, "Doomed", "author@example.com")
	_, err := env.comments.Create(ctx, post.ID, "bye")
	require.NoError(t, err)

	require.NoError(t, env.posts.Delete(ctx, post.ID))

	var n int64
	require.NoError(t, env.db.Model(&models.Comment{}).Count(&n).Error)
	assert.Zero(t, n)
	assert.ErrorIs(t, env.posts.Delete(ctx, post.ID), ErrPostNotFound)
}

func TestListApprovedClampsHugePage(t *testing.T) {
	env := newTestEnv(t)
	env.publish(t, "Only", "author@example.com")

	list, err := env.posts.ListApproved(context.Background(), math.MaxInt, MaxPageSize)
	require.NoError(t, err)
	assert.Equal(t, MaxPage, list.Page)
	assert.Empty(t, list.Posts)
	assert.EqualValues(t, 1, list.Total)
}
