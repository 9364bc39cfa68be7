package routes

import (
	"net/http"

	"archblog/controllers"
	"archblog/limiter"
	"archblog/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Controllers struct {
	Posts      *controllers.PostController
	Comments   *controllers.CommentController
	Auth       *controllers.AuthController
	Admin      *controllers.AdminController
	Newsletter *controllers.NewsletterController
	Upload     *controllers.UploadController
}

func SetupRoutes(r *gin.Engine, ctl Controllers, sessionSecret string, uploadLimiter *limiter.FixedWindow) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	adminRequired := middleware.AdminRequired(sessionSecret)

	api := r.Group("/api")
	{
		posts := api.Group("/posts")
		{
			posts.GET("", ctl.Posts.ListPosts)
			posts.POST("", ctl.Posts.SubmitPost)
			posts.GET("/:slug", ctl.Posts.GetPost)
			posts.POST("/verify", ctl.Posts.VerifyPost)
			posts.POST("/cleanup", adminRequired, ctl.Posts.Cleanup)
		}

		comments := api.Group("/comments")
		{
			comments.GET("/:postId", ctl.Comments.ListComments)
			comments.POST("/:postId", ctl.Comments.CreateComment)
		}

		auth := api.Group("/auth")
		{
			auth.POST("/login", ctl.Auth.Login)
			auth.POST("/logout", ctl.Auth.Logout)
			auth.GET("/me", adminRequired, ctl.Auth.Me)
		}

		newsletter := api.Group("/newsletter")
		{
			newsletter.POST("", ctl.Newsletter.Subscribe)
			newsletter.DELETE("", ctl.Newsletter.Unsubscribe)
			newsletter.GET("/unsubscribe", ctl.Newsletter.UnsubscribeByToken)
		}

		api.POST("/upload",
			middleware.RateLimit(uploadLimiter, "upload", "Too many upload attempts. Please try again later."),
			ctl.Upload.Upload,
		)

		admin := api.Group("/admin")
		admin.Use(adminRequired)
		{
			admin.GET("/posts", ctl.Admin.ListPosts)
			admin.GET("/posts/:id", ctl.Admin.GetPost)
			admin.PATCH("/posts/:id", ctl.Admin.UpdatePostStatus)
			admin.DELETE("/posts/:id", ctl.Admin.DeletePost)

			admin.GET("/comments", ctl.Admin.ListComments)
			admin.PATCH("/comments/:id", ctl.Admin.UpdateCommentStatus)
			admin.DELETE("/comments/:id", ctl.Admin.DeleteComment)

			admin.GET("/newsletter", ctl.Admin.ListSubscribers)
			admin.DELETE("/newsletter", ctl.Admin.DeleteSubscriber)
			admin.DELETE("/newsletter/:id", ctl.Admin.DeleteSubscriber)
		}
	}
}
