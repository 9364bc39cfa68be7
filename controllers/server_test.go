package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"regexp"
	"sync"
	"testing"
	"time"

	"archblog/controllers"
	"archblog/database/dbtest"
	"archblog/limiter"
	"archblog/routes"
	"archblog/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testSecret  = "test-secret"
	adminEmail  = "editor@studio.test"
	adminPass   = "correct horse"
	notifyInbox = "notify@studio.test"
)

type inbox struct {
	mu   sync.Mutex
	msgs map[string][]string
}

func (i *inbox) Send(_ context.Context, to, _, html string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.msgs[to] = append(i.msgs[to], html)
	return nil
}

var codePattern = regexp.MustCompile(`>(\d{6})<`)

func (i *inbox) lastCode(t *testing.T, to string) string {
	t.Helper()
	i.mu.Lock()
	defer i.mu.Unlock()
	msgs := i.msgs[to]
	require.NotEmpty(t, msgs, "no mail sent to %s", to)
	m := codePattern.FindStringSubmatch(msgs[len(msgs)-1])
	require.Len(t, m, 2, "no code in mail")
	return m[1]
}

type stubHost struct{}

func (stubHost) Upload(_ context.Context, _ []byte, filename string) (string, error) {
	return "https://images.test/" + filename, nil
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	db     *gorm.DB
	mail   *inbox
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerBehind(t, nil)
}

// newTestServerBehind trusts forwarding headers only from the given proxies.
func newTestServerBehind(t *testing.T, trustedProxies []string) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.New(t)
	mail := &inbox{msgs: map[string][]string{}}
	mailService := services.NewMailService(mail, "https://studio.test", notifyInbox)

	postService := services.NewPostService(db)
	submissionService := services.NewSubmissionService(db, postService, mailService, 10*time.Minute)
	commentService := services.NewCommentService(db, mailService)
	newsletterService := services.NewNewsletterService(db, mailService)
	adminService := services.NewAdminService(db)

	_, err := adminService.Create(context.Background(), adminEmail, "Editor", adminPass)
	require.NoError(t, err)

	r := gin.New()
	require.NoError(t, r.SetTrustedProxies(trustedProxies))
	routes.SetupRoutes(r, routes.Controllers{
		Posts:      controllers.NewPostController(postService, submissionService),
		Comments:   controllers.NewCommentController(commentService),
		Auth:       controllers.NewAuthController(adminService, testSecret, time.Hour, false),
		Admin:      controllers.NewAdminController(postService, commentService, newsletterService),
		Newsletter: controllers.NewNewsletterController(newsletterService),
		Upload:     controllers.NewUploadController(services.NewUploadService(stubHost{}, 0)),
	}, testSecret, limiter.NewFixedWindow(limiter.NewMemoryStore(), 5, 15*time.Minute))

	return &testServer{t: t, engine: r, db: db, mail: mail}
}

type response struct {
	*httptest.ResponseRecorder
}

func (r response) decode(t *testing.T) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(r.Body.Bytes(), &body), r.Body.String())
	return body
}

func (s *testServer) do(req *http.Request) response {
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return response{w}
}

func (s *testServer) json(method, path string, body interface{}, cookies ...*http.Cookie) response {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return s.do(req)
}

// login returns the session cookie set by POST /api/auth/login.
func (s *testServer) login() *http.Cookie {
	s.t.Helper()
	res := s.json(http.MethodPost, "/api/auth/login", map[string]string{"email": adminEmail, "password": adminPass})
	require.Equal(s.t, http.StatusOK, res.Code, res.Body.String())
	for _, c := range res.Result().Cookies() {
		if c.Name == "admin_session" {
			return c
		}
	}
	s.t.Fatal("no session cookie")
	return nil
}

func (s *testServer) upload(contentType string, data []byte, opts ...func(*http.Request)) response {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="plan.png"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(s.t, err)
	_, err = part.Write(data)
	require.NoError(s.t, err)
	require.NoError(s.t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	for _, opt := range opts {
		opt(req)
	}
	return s.do(req)
}

func submission(title, email string) map[string]string {
	return map[string]string{
		"title":       title,
		"content":     "<p>On concrete.</p>",
		"authorName":  "Sam Rivera",
		"authorEmail": email,
	}
}

func idOf(t *testing.T, body map[string]interface{}) uint {
	t.Helper()
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "missing data: %v", body)
	return uint(data["id"].(float64))
}

func path(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}

// from sets the socket peer and, when given, the X-Forwarded-For header.
func from(remoteAddr, forwardedFor string) func(*http.Request) {
	return func(req *http.Request) {
		req.RemoteAddr = remoteAddr
		if forwardedFor != "" {
			req.Header.Set("X-Forwarded-For", forwardedFor)
		}
	}
}
