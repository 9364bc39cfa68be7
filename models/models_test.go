package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, in := range []string{"PENDING", "approved", " Rejected "} {
		s, err := ParseStatus(in)
		require.NoError(t, err, in)
		assert.True(t, s.Valid())
	}

	_, err := ParseStatus("ARCHIVED")
	assert.Error(t, err)
	assert.False(t, Status("ARCHIVED").Valid())
}

func TestStatusPublic(t *testing.T) {
	assert.True(t, StatusApproved.Public())
	assert.False(t, StatusPending.Public())
	assert.False(t, StatusRejected.Public())
}

func TestModerationOrder(t *testing.T) {
	assert.Equal(t,
		"CASE comments.status WHEN 'PENDING' THEN 0 WHEN 'APPROVED' THEN 1 ELSE 2 END",
		ModerationOrder("comments.status"))
}

func TestEmailVerificationDraft(t *testing.T) {
	draft := PostDraft{
		Title:       "Hello World",
		Slug:        "hello-world",
		Content:     "<p>Body</p>",
		AuthorName:  "Sam",
		AuthorEmail: "sam@example.com",
	}
	expires := time.Date(2026, 3, 2, 9, 10, 0, 0, time.UTC)

	v, err := NewEmailVerification(draft, "123456", expires)
	require.NoError(t, err)
	assert.Equal(t, "sam@example.com", v.Email)

	got, err := v.Draft()
	require.NoError(t, err)
	assert.Equal(t, draft, got)

	assert.True(t, v.Consumable(expires.Add(-time.Second)))
	assert.False(t, v.Consumable(expires), "expiry is exclusive")
	v.Verified = true
	assert.False(t, v.Consumable(expires.Add(-time.Minute)))
}

func TestDraftToPostIsPending(t *testing.T) {
	p := PostDraft{Title: "T", Slug: "t"}.ToPost()
	assert.Equal(t, StatusPending, p.Status)
	assert.Equal(t, "t", p.Slug)
}

func TestAdminPassword(t *testing.T) {
	a := &Admin{Password: "correct horse"}
	require.NoError(t, a.HashPassword())
	assert.True(t, a.CheckPassword("correct horse"))
	assert.False(t, a.CheckPassword("wrong"))
}
