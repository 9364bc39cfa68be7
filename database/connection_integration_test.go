//go:build integration

package database_test

import (
	"context"
	"testing"
	"time"

	"archblog/config"
	"archblog/database"
	"archblog/models"
	"archblog/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type nopMailer struct{}

func (nopMailer) Send(context.Context, string, string, string) error { return nil }

func TestPostgresWorkflow(t *testing.T) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("archblog"),
		postgres.WithUsername("archblog"),
		postgres.WithPassword("archblog"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	cfg := config.Default()
	cfg.DatabaseURL = connStr
	cfg.DBLogLevel = "silent"

	db, err := database.Connect(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Migrate(db), "migrations are repeatable")

	mail := services.NewMailService(nopMailer{}, "https://studio.test", "")
	posts := services.NewPostService(db)
	submissions := services.NewSubmissionService(db, posts, mail, time.Minute)

	var slugs []string
	for _, email := range []string{"one@example.com", "two@example.com"} {
		_, err := submissions.Submit(ctx, &models.SubmitPostRequest{
			Title:       "Hello World",
			Content:     "<p>Concrete and light.</p>",
			AuthorName:  "Sam",
			AuthorEmail: email,
		})
		require.NoError(t, err)

		var record models.EmailVerification
		require.NoError(t, db.Where("email = ?", email).First(&record).Error)

		post, err := submissions.Verify(ctx, email, record.Code)
		require.NoError(t, err)
		slugs = append(slugs, post.Slug)
	}
	assert.Equal(t, []string{"hello-world", "hello-world-1"}, slugs)

	dup := models.Post{Title: "x", Slug: "hello-world", Content: "x", AuthorName: "x", AuthorEmail: "x@example.com", Status: models.StatusPending}
	assert.Error(t, db.Create(&dup).Error, "slug is unique at the database level")

	all, err := posts.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	n, err := submissions.Cleanup(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n, "consumed records are purged")
}
