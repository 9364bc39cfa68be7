package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"archblog/database/dbtest"
	"archblog/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type sentMail struct {
	To      string
	Subject string
	HTML    string
}

// fakeMailer records every message. failTo makes sends to that address fail.
type fakeMailer struct {
	mu     sync.Mutex
	sent   []sentMail
	failTo map[string]bool
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{failTo: map[string]bool{}}
}

func (m *fakeMailer) Send(_ context.Context, to, subject, html string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failTo[to] {
		return errors.New("smtp: connection refused")
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, HTML: html})
	return nil
}

func (m *fakeMailer) To(addr string) []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []sentMail
	for _, s := range m.sent {
		if s.To == addr {
			out = append(out, s)
		}
	}
	return out
}

const adminInbox = "editor@studio.test"

type testEnv struct {
	db          *gorm.DB
	mailer      *fakeMailer
	clock       time.Time
	posts       *PostService
	submissions *SubmissionService
	comments    *CommentService
	newsletter  *NewsletterService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		db:     dbtest.New(t),
		mailer: newFakeMailer(),
		clock:  time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	}
	mail := NewMailService(env.mailer, "https://studio.test", adminInbox)

	env.posts = NewPostService(env.db)
	env.submissions = NewSubmissionService(env.db, env.posts, mail, 10*time.Minute)
	env.submissions.now = func() time.Time { return env.clock }
	env.submissions.newCode = func() (string, error) { return "123456", nil }
	env.comments = NewCommentService(env.db, mail)
	env.newsletter = NewNewsletterService(env.db, mail)
	env.newsletter.now = func() time.Time { return env.clock }
	return env
}

func (e *testEnv) advance(d time.Duration) {
	e.clock = e.clock.Add(d)
}

func submitRequest(title, email string) *models.SubmitPostRequest {
	return &models.SubmitPostRequest{
		Title:       title,
		Content:     "<p>Notes on timber framing.</p>",
		AuthorName:  "Sam Rivera",
		AuthorEmail: email,
	}
}

// publish runs a draft through submission, verification and approval.
func (e *testEnv) publish(t *testing.T, title, email string) *models.Post {
	t.Helper()
	ctx := context.Background()

	_, err := e.submissions.Submit(ctx, submitRequest(title, email))
	require.NoError(t, err)
	post, err := e.submissions.Verify(ctx, email, "123456")
	require.NoError(t, err)
	post, err = e.posts.UpdateStatus(ctx, post.ID, models.StatusApproved)
	require.NoError(t, err)
	return post
}
