package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"archblog/config"
	"archblog/controllers"
	"archblog/database"
	"archblog/limiter"
	"archblog/middleware"
	"archblog/routes"
	"archblog/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	_ "archblog/docs"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, db, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		return err
	}

	store, closeStore, err := limiterStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	gin.SetMode(cfg.GinMode)
	r, err := newEngine(cfg)
	if err != nil {
		return err
	}

	routes.SetupRoutes(r, buildControllers(cfg, db, mailer(cfg), imageHost(cfg)), cfg.SigningSecret(),
		limiter.NewFixedWindow(store, cfg.UploadLimit, cfg.UploadWindow))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		log.Printf("Swagger docs available at: http://localhost:%s/swagger/index.html", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Println("Shutting down server")
	return srv.Shutdown(shutdownCtx)
}

// newEngine builds the gin engine with the global middlewares. Forwarding
// headers are honoured only from cfg.TrustedProxies; with none configured the
// client IP is the socket peer.
func newEngine(cfg *config.Config) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(middleware.Logger())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	return r, nil
}

func buildControllers(cfg *config.Config, db *gorm.DB, m services.Mailer, host services.ImageHost) routes.Controllers {
	mail := services.NewMailService(m, cfg.SiteURL, cfg.AdminNotifyEmail)

	postService := services.NewPostService(db)
	submissionService := services.NewSubmissionService(db, postService, mail, cfg.VerificationTTL)
	commentService := services.NewCommentService(db, mail)
	newsletterService := services.NewNewsletterService(db, mail)
	adminService := services.NewAdminService(db)
	uploadService := services.NewUploadService(host, cfg.UploadMaxBytes)

	return routes.Controllers{
		Posts:      controllers.NewPostController(postService, submissionService),
		Comments:   controllers.NewCommentController(commentService),
		Auth:       controllers.NewAuthController(adminService, cfg.SigningSecret(), cfg.SessionTTL, cfg.GinMode == gin.ReleaseMode),
		Admin:      controllers.NewAdminController(postService, commentService, newsletterService),
		Newsletter: controllers.NewNewsletterController(newsletterService),
		Upload:     controllers.NewUploadController(uploadService),
	}
}

func limiterStore(cfg *config.Config) (limiter.Store, func(), error) {
	if cfg.RateLimitBackend != "redis" {
		return limiter.NewMemoryStore(), func() {}, nil
	}

	client := limiter.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, err
	}

	log.Printf("Rate limiter using redis at %s", cfg.RedisAddr)
	store := limiter.NewRedisStore(client, "archblog:ratelimit:")
	return store, func() { store.Close() }, nil
}

func mailer(cfg *config.Config) services.Mailer {
	if cfg.SMTPHost == "" {
		log.Println("SMTP_HOST not set, emails will be logged instead of sent")
		return services.LogMailer{}
	}
	return services.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom).
		WithTimeout(cfg.SMTPTimeout)
}

func imageHost(cfg *config.Config) services.ImageHost {
	if cfg.CloudinaryCloudName == "" {
		log.Println("Cloudinary not configured, uploads will be rejected")
		return services.UnconfiguredHost{}
	}

	host, err := services.NewCloudinaryHost(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
	if err != nil {
		log.Printf("Cloudinary setup failed, uploads will be rejected: %v", err)
		return services.UnconfiguredHost{}
	}
	return host
}
