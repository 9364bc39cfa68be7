package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	"archblog/models"

	"gopkg.in/gomail.v2"
)

// Mailer delivers a single HTML email.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

const DefaultSMTPTimeout = 30 * time.Second

type SMTPMailer struct {
	dialer  *gomail.Dialer
	from    string
	timeout time.Duration
}

func NewSMTPMailer(host string, port int, user, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer:  gomail.NewDialer(host, port, user, password),
		from:    from,
		timeout: DefaultSMTPTimeout,
	}
}

// WithTimeout bounds each send, dial and SMTP conversation included.
func (m *SMTPMailer) WithTimeout(d time.Duration) *SMTPMailer {
	if d > 0 {
		m.timeout = d
	}
	return m
}

// Send gives up when ctx is done or the timeout elapses. gomail cannot abort a
// conversation in flight, so a stalled one finishes in the background.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, html string) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	done := make(chan error, 1)
	go func() { done <- m.dialer.DialAndSend(msg) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send to %s: %w", to, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("smtp send to %s: %w", to, ctx.Err())
	}
}

// LogMailer prints emails instead of sending them. Used when no SMTP host is configured.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, to, subject, html string) error {
	log.Printf("[mail] to=%s subject=%q\n%s", to, subject, html)
	return nil
}

// MailService renders and sends the transactional emails of the site.
type MailService struct {
	mailer     Mailer
	siteURL    string
	adminEmail string
}

func NewMailService(mailer Mailer, siteURL, adminEmail string) *MailService {
	return &MailService{mailer: mailer, siteURL: siteURL, adminEmail: adminEmail}
}

func (s *MailService) SendVerificationCode(ctx context.Context, draft models.PostDraft, code string, ttl time.Duration) error {
	html, err := render(verificationTemplate, map[string]interface{}{
		"Name":    draft.AuthorName,
		"Title":   draft.Title,
		"Code":    code,
		"Minutes": int(ttl.Minutes()),
	})
	if err != nil {
		return err
	}
	return s.mailer.Send(ctx, draft.AuthorEmail, "Your verification code", html)
}

func (s *MailService) NotifyNewPost(ctx context.Context, post *models.Post) error {
	if s.adminEmail == "" {
		return nil
	}
	html, err := render(newPostTemplate, map[string]interface{}{
		"Post":     post,
		"AdminURL": s.siteURL + "/admin",
	})
	if err != nil {
		return err
	}
	return s.mailer.Send(ctx, s.adminEmail, "New blog post awaiting review: "+post.Title, html)
}

func (s *MailService) NotifyNewComment(ctx context.Context, post *models.Post, comment *models.Comment) error {
	if s.adminEmail == "" {
		return nil
	}
	html, err := render(newCommentTemplate, map[string]interface{}{
		"Post":     post,
		"Comment":  comment,
		"AdminURL": s.siteURL + "/admin",
	})
	if err != nil {
		return err
	}
	return s.mailer.Send(ctx, s.adminEmail, "New comment awaiting review on "+post.Title, html)
}

func (s *MailService) SendWelcome(ctx context.Context, sub *models.NewsletterSubscription) error {
	html, err := render(welcomeTemplate, map[string]interface{}{
		"UnsubscribeURL": s.UnsubscribeURL(sub.UnsubscribeToken),
		"SiteURL":        s.siteURL,
	})
	if err != nil {
		return err
	}
	return s.mailer.Send(ctx, sub.Email, "Welcome to our newsletter", html)
}

func (s *MailService) UnsubscribeURL(token string) string {
	return s.siteURL + "/api/newsletter/unsubscribe?token=" + token
}

func render(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render email: %w", err)
	}
	return buf.String(), nil
}
